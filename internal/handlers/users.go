package handlers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/linkhive/backend/internal/middleware"
	"github.com/linkhive/backend/internal/models"
	"github.com/linkhive/backend/internal/services"
	"github.com/linkhive/backend/pkg/logger"
	"github.com/linkhive/backend/pkg/utils"
)

type UsersHandler struct {
	users *services.UsersService
}

func NewUsersHandler(users *services.UsersService) *UsersHandler {
	return &UsersHandler{users: users}
}

// userView is the caller-facing projection of a user; password material and
// the confirmation token never leave the service.
type userView struct {
	ID             uuid.UUID       `json:"id"`
	FirstName      string          `json:"firstName"`
	LastName       string          `json:"lastName"`
	Email          string          `json:"email"`
	EmailConfirmed bool            `json:"emailConfirmed"`
	Role           models.UserRole `json:"role"`
	IsActive       bool            `json:"isActive"`
	Avatar         *string         `json:"avatar,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      *time.Time      `json:"updatedAt"`
}

func newUserView(user models.User) userView {
	return userView{
		ID:             user.ID,
		FirstName:      user.FirstName,
		LastName:       user.LastName,
		Email:          user.Email,
		EmailConfirmed: user.EmailConfirmed,
		Role:           user.Role,
		IsActive:       user.IsActive,
		Avatar:         user.Avatar,
		CreatedAt:      user.CreatedAt,
		UpdatedAt:      user.UpdatedAt,
	}
}

type userInfoResponse struct {
	userView
	Teams []teamView `json:"teams"`
	URLs  []urlView  `json:"urls"`
}

func (h *UsersHandler) MyInfo(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	user, teams, serr := h.users.GetInfo(currentUser.ID)
	if serr != nil {
		return respondServiceError(c, serr)
	}

	teamViews := make([]teamView, 0, len(teams))
	for _, team := range teams {
		teamViews = append(teamViews, newTeamView(&team))
	}

	urls := make([]urlView, 0, len(user.URLs))
	for _, link := range user.URLs {
		urls = append(urls, newURLView(link))
	}

	return utils.Success(c, fiber.StatusOK, userInfoResponse{
		userView: newUserView(*user),
		Teams:    teamViews,
		URLs:     urls,
	})
}

type updateUserRequest struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Avatar    *string `json:"avatar"`
}

func (h *UsersHandler) Update(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var req updateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	patch := services.ProfilePatch{Avatar: req.Avatar}
	if req.FirstName != nil {
		value := strings.TrimSpace(*req.FirstName)
		if value == "" {
			return utils.Error(c, fiber.StatusBadRequest, "firstName cannot be empty")
		}
		patch.FirstName = &value
	}
	if req.LastName != nil {
		value := strings.TrimSpace(*req.LastName)
		if value == "" {
			return utils.Error(c, fiber.StatusBadRequest, "lastName cannot be empty")
		}
		patch.LastName = &value
	}

	user, serr := h.users.UpdateProfile(currentUser.ID, patch)
	if serr != nil {
		return respondServiceError(c, serr)
	}

	return utils.Success(c, fiber.StatusOK, newUserView(*user))
}

func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	if serr := h.users.DeleteAccount(currentUser.ID); serr != nil {
		return respondServiceError(c, serr)
	}

	logger.InfoWithUser(currentUser.ID.String(), "account_deleted", nil)

	return utils.Success(c, fiber.StatusOK, fiber.Map{"message": "user deleted"})
}
