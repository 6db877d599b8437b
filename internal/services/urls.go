package services

import (
	"errors"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/linkhive/backend/internal/config"
	"github.com/linkhive/backend/internal/models"
	"github.com/linkhive/backend/internal/store"
	"github.com/linkhive/backend/pkg/utils"
	"gorm.io/gorm"
)

type URLsService struct {
	stores *store.Stores
	cfg    config.ShortLinkConfig
}

func NewURLsService(stores *store.Stores, cfg config.ShortLinkConfig) *URLsService {
	return &URLsService{stores: stores, cfg: cfg}
}

type CreateURLInput struct {
	OriginalURL string
	Alias       *string
	Type        *models.URLType
	ExpiresAt   *time.Time
}

// CreateURL generates the short code at creation time; the unique index on
// url.code is the final arbiter, a collision surfaces as a Conflict.
func (s *URLsService) CreateURL(userID, teamID uuid.UUID, input CreateURLInput) (*models.URL, *Error) {
	if !isWellFormedURL(input.OriginalURL) {
		return nil, errValidation("originalUrl must be a valid URL")
	}

	urlType := models.URLTypePermanent
	if input.Type != nil {
		if !models.ValidURLType(*input.Type) {
			return nil, errValidation("invalid url type")
		}
		urlType = *input.Type
	}

	user, err := s.stores.Users.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errNotFound("User not found")
		}
		return nil, errInternal("failed loading user", err)
	}

	code, err := utils.GenerateShortCode(s.cfg.CodeLength)
	if err != nil {
		return nil, errInternal("failed generating code", err)
	}

	link := &models.URL{
		Code:        code,
		OriginalURL: input.OriginalURL,
		Alias:       input.Alias,
		Type:        urlType,
		IsActive:    true,
		ExpiresAt:   input.ExpiresAt,
		UserID:      &user.ID,
		TeamID:      teamID,
	}

	if err := s.stores.URLs.Create(link); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errConflict("short code collision, retry the request")
		}
		return nil, errInternal("failed creating url", err)
	}

	return link, nil
}

// ListForUser returns one offset page of the user's links plus the total
// count for client-side page math.
func (s *URLsService) ListForUser(userID uuid.UUID, p utils.Pagination) ([]models.URL, int64, *Error) {
	urls, total, err := s.stores.URLs.ListByUser(userID, p)
	if err != nil {
		return nil, 0, errInternal("failed listing urls", err)
	}
	return urls, total, nil
}

func (s *URLsService) GetByID(urlID uuid.UUID) (*models.URL, *Error) {
	link, err := s.stores.URLs.FindByID(urlID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errNotFound("URL not found.")
		}
		return nil, errInternal("failed loading url", err)
	}
	return link, nil
}

// GetByCode reports a missing code as a validation failure, not NotFound.
// The original API maps unresolved redirects to 400 and that shape is kept.
func (s *URLsService) GetByCode(code string) (*models.URL, *Error) {
	link, err := s.stores.URLs.FindByCode(code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errValidation("URL not found.")
		}
		return nil, errInternal("failed loading url", err)
	}
	return link, nil
}

type URLPatch struct {
	OriginalURL *string
	Alias       *string
	Type        *models.URLType
	ExpiresAt   *time.Time
}

// UpdateURL applies only the provided fields. Code is immutable.
func (s *URLsService) UpdateURL(urlID uuid.UUID, patch URLPatch) (*models.URL, *Error) {
	link, serr := s.GetByID(urlID)
	if serr != nil {
		return nil, serr
	}

	if patch.OriginalURL != nil {
		if !isWellFormedURL(*patch.OriginalURL) {
			return nil, errValidation("originalUrl must be a valid URL")
		}
		link.OriginalURL = *patch.OriginalURL
	}
	if patch.Alias != nil {
		link.Alias = patch.Alias
	}
	if patch.Type != nil {
		if !models.ValidURLType(*patch.Type) {
			return nil, errValidation("invalid url type")
		}
		link.Type = *patch.Type
	}
	if patch.ExpiresAt != nil {
		link.ExpiresAt = patch.ExpiresAt
	}

	if err := s.stores.URLs.Save(link); err != nil {
		return nil, errInternal("failed updating url", err)
	}

	return link, nil
}

// Redirect resolves a code to its target. IsActive, ExpiresAt and
// RedirectionCount are not consulted; redirection serves whatever the
// row holds.
func (s *URLsService) Redirect(code string) (string, *Error) {
	link, serr := s.GetByCode(code)
	if serr != nil {
		return "", serr
	}
	return link.OriginalURL, nil
}

func isWellFormedURL(raw string) bool {
	parsed, err := url.ParseRequestURI(raw)
	if err != nil {
		return false
	}
	return parsed.Scheme != "" && parsed.Host != ""
}
