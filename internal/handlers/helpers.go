package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/linkhive/backend/internal/services"
	"github.com/linkhive/backend/pkg/logger"
	"github.com/linkhive/backend/pkg/utils"
)

func parseUUID(value string) (uuid.UUID, error) {
	return uuid.Parse(strings.TrimSpace(value))
}

// respondServiceError maps a service failure kind onto an HTTP status.
// Internal causes are logged here and never leaked to the caller.
func respondServiceError(c *fiber.Ctx, serr *services.Error) error {
	switch serr.Kind {
	case services.KindValidation, services.KindConflict:
		return utils.Error(c, fiber.StatusBadRequest, serr.Message)
	case services.KindUnauthorized:
		return utils.Error(c, fiber.StatusUnauthorized, serr.Message)
	case services.KindNotFound:
		return utils.Error(c, fiber.StatusNotFound, serr.Message)
	default:
		fields := map[string]interface{}{"path": c.Path()}
		if serr.Err != nil {
			fields["error"] = serr.Err.Error()
		}
		logger.Error("internal_error", fields)
		return utils.Error(c, fiber.StatusInternalServerError, serr.Message)
	}
}
