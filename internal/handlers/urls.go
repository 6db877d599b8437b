package handlers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/linkhive/backend/internal/metrics"
	"github.com/linkhive/backend/internal/middleware"
	"github.com/linkhive/backend/internal/models"
	"github.com/linkhive/backend/internal/services"
	"github.com/linkhive/backend/pkg/logger"
	"github.com/linkhive/backend/pkg/utils"
)

type URLsHandler struct {
	urls      *services.URLsService
	collector *metrics.Collector
}

func NewURLsHandler(urls *services.URLsService, collector *metrics.Collector) *URLsHandler {
	return &URLsHandler{urls: urls, collector: collector}
}

// urlView is the caller-facing projection of a short link.
type urlView struct {
	ID               uuid.UUID      `json:"id"`
	Code             string         `json:"code"`
	OriginalURL      string         `json:"originalUrl"`
	Alias            *string        `json:"alias,omitempty"`
	Type             models.URLType `json:"type"`
	RedirectionCount *int           `json:"redirectionCount,omitempty"`
	IsActive         bool           `json:"isActive"`
	ExpiresAt        *time.Time     `json:"expiresAt,omitempty"`
	UserID           *uuid.UUID     `json:"userID,omitempty"`
	TeamID           uuid.UUID      `json:"teamID"`
	CreatedAt        time.Time      `json:"createdAt"`
	UpdatedAt        *time.Time     `json:"updatedAt"`
}

func newURLView(link models.URL) urlView {
	return urlView{
		ID:               link.ID,
		Code:             link.Code,
		OriginalURL:      link.OriginalURL,
		Alias:            link.Alias,
		Type:             link.Type,
		RedirectionCount: link.RedirectionCount,
		IsActive:         link.IsActive,
		ExpiresAt:        link.ExpiresAt,
		UserID:           link.UserID,
		TeamID:           link.TeamID,
		CreatedAt:        link.CreatedAt,
		UpdatedAt:        link.UpdatedAt,
	}
}

type createURLRequest struct {
	OriginalURL string     `json:"originalUrl"`
	Alias       *string    `json:"alias"`
	Type        *string    `json:"type"`
	ExpiresAt   *time.Time `json:"expiresAt"`
}

func (h *URLsHandler) Create(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	teamID, err := parseUUID(c.Params("teamId"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid team id")
	}

	var req createURLRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	input := services.CreateURLInput{
		OriginalURL: strings.TrimSpace(req.OriginalURL),
		Alias:       req.Alias,
		ExpiresAt:   req.ExpiresAt,
	}
	if req.Type != nil {
		urlType := models.URLType(*req.Type)
		input.Type = &urlType
	}

	link, serr := h.urls.CreateURL(currentUser.ID, teamID, input)
	if serr != nil {
		return respondServiceError(c, serr)
	}

	logger.InfoWithUser(currentUser.ID.String(), "url_created", map[string]interface{}{
		"url_id": link.ID.String(),
		"code":   link.Code,
	})

	return utils.Success(c, fiber.StatusCreated, newURLView(*link))
}

func (h *URLsHandler) Get(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	urlID, err := parseUUID(c.Params("urlId"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid url id")
	}

	link, serr := h.urls.GetByID(urlID)
	if serr != nil {
		return respondServiceError(c, serr)
	}

	return utils.Success(c, fiber.StatusOK, newURLView(*link))
}

func (h *URLsHandler) List(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	p := utils.ParsePagination(c)

	urls, total, serr := h.urls.ListForUser(currentUser.ID, p)
	if serr != nil {
		return respondServiceError(c, serr)
	}

	views := make([]urlView, 0, len(urls))
	for _, link := range urls {
		views = append(views, newURLView(link))
	}

	return utils.Paginated(c, views, p.Page, p.Limit, total)
}

type updateURLRequest struct {
	OriginalURL *string    `json:"originalUrl"`
	Alias       *string    `json:"alias"`
	Type        *string    `json:"type"`
	ExpiresAt   *time.Time `json:"expiresAt"`
}

func (h *URLsHandler) Update(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	urlID, err := parseUUID(c.Params("urlId"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid url id")
	}

	var req updateURLRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	patch := services.URLPatch{
		Alias:     req.Alias,
		ExpiresAt: req.ExpiresAt,
	}
	if req.OriginalURL != nil {
		trimmed := strings.TrimSpace(*req.OriginalURL)
		patch.OriginalURL = &trimmed
	}
	if req.Type != nil {
		urlType := models.URLType(*req.Type)
		patch.Type = &urlType
	}

	link, serr := h.urls.UpdateURL(urlID, patch)
	if serr != nil {
		return respondServiceError(c, serr)
	}

	return utils.Success(c, fiber.StatusOK, newURLView(*link))
}

// Redirect is the public resolution endpoint. Unresolved codes surface as
// 400, the shape the API has always had.
func (h *URLsHandler) Redirect(c *fiber.Ctx) error {
	code := strings.TrimSpace(c.Params("shortCode"))

	target, serr := h.urls.Redirect(code)
	if serr != nil {
		h.collector.RecordRedirect(metrics.RedirectUnresolved)
		return respondServiceError(c, serr)
	}

	h.collector.RecordRedirect(metrics.RedirectOK)
	return c.Redirect(target, fiber.StatusFound)
}
