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

type TeamsHandler struct {
	teams *services.TeamsService
}

func NewTeamsHandler(teams *services.TeamsService) *TeamsHandler {
	return &TeamsHandler{teams: teams}
}

// teamView flattens memberships into a users array, the shape the API has
// always served.
type teamView struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Icon      *string    `json:"icon,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt"`
	Users     []userView `json:"users"`
}

func newTeamView(team *models.Team) teamView {
	users := make([]userView, 0, len(team.Memberships))
	for _, membership := range team.Memberships {
		users = append(users, newUserView(membership.User))
	}
	return teamView{
		ID:        team.ID,
		Name:      team.Name,
		Icon:      team.Icon,
		CreatedAt: team.CreatedAt,
		UpdatedAt: team.UpdatedAt,
		Users:     users,
	}
}

type createTeamRequest struct {
	Name string  `json:"name"`
	Icon *string `json:"icon"`
}

func (h *TeamsHandler) Create(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var req createTeamRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	team, serr := h.teams.CreateTeam(currentUser.ID, strings.TrimSpace(req.Name), req.Icon)
	if serr != nil {
		return respondServiceError(c, serr)
	}

	logger.InfoWithUser(currentUser.ID.String(), "team_created", map[string]interface{}{
		"team_id":   team.ID.String(),
		"team_name": team.Name,
	})

	return utils.Success(c, fiber.StatusCreated, newTeamView(team))
}

type updateTeamRequest struct {
	Name *string `json:"name"`
	Icon *string `json:"icon"`
}

func (h *TeamsHandler) Update(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	teamID, err := parseUUID(c.Params("teamId"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid team id")
	}

	var req updateTeamRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	patch := services.TeamPatch{Icon: req.Icon}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return utils.Error(c, fiber.StatusBadRequest, "name cannot be empty")
		}
		patch.Name = &name
	}

	team, serr := h.teams.UpdateTeam(currentUser.ID, teamID, patch)
	if serr != nil {
		return respondServiceError(c, serr)
	}

	return utils.Success(c, fiber.StatusOK, newTeamView(team))
}

func (h *TeamsHandler) Delete(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	teamID, err := parseUUID(c.Params("teamId"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid team id")
	}

	if serr := h.teams.DeleteTeam(currentUser.ID, teamID); serr != nil {
		return respondServiceError(c, serr)
	}

	logger.InfoWithUser(currentUser.ID.String(), "team_deleted", map[string]interface{}{
		"team_id": teamID.String(),
	})

	return utils.Success(c, fiber.StatusOK, fiber.Map{"message": "team deleted"})
}

type membersRequest struct {
	MembersEmails []string `json:"membersEmails"`
}

func (r *membersRequest) normalized() []string {
	emails := make([]string, 0, len(r.MembersEmails))
	for _, email := range r.MembersEmails {
		trimmed := strings.TrimSpace(email)
		if trimmed != "" {
			emails = append(emails, trimmed)
		}
	}
	return emails
}

func (h *TeamsHandler) AddMembers(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	teamID, err := parseUUID(c.Params("teamId"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid team id")
	}

	var req membersRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	if serr := h.teams.AddMembers(currentUser.ID, teamID, req.normalized()); serr != nil {
		return respondServiceError(c, serr)
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{"message": "members added"})
}

func (h *TeamsHandler) RemoveMembers(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	teamID, err := parseUUID(c.Params("teamId"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid team id")
	}

	var req membersRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	message, serr := h.teams.RemoveMembers(currentUser.ID, teamID, req.normalized())
	if serr != nil {
		return respondServiceError(c, serr)
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{"message": message})
}

func (h *TeamsHandler) Get(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	teamID, err := parseUUID(c.Params("teamId"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid team id")
	}

	team, serr := h.teams.GetTeam(currentUser.ID, teamID)
	if serr != nil {
		return respondServiceError(c, serr)
	}

	return utils.Success(c, fiber.StatusOK, newTeamView(team))
}

func (h *TeamsHandler) All(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	teams, serr := h.teams.ListTeamsForUser(currentUser.ID)
	if serr != nil {
		return respondServiceError(c, serr)
	}

	views := make([]teamView, 0, len(teams))
	for _, team := range teams {
		views = append(views, newTeamView(&team))
	}

	return utils.Success(c, fiber.StatusOK, views)
}
