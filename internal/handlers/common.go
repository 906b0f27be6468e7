package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/DmitriiShilkin/creative-hub/internal/httpx"
	"github.com/DmitriiShilkin/creative-hub/internal/models"
	"github.com/DmitriiShilkin/creative-hub/internal/service"
)

// currentViewer builds the request identity. Authenticated requests carry a
// userID local set by the viewer middleware; everything else falls back to
// the client IP.
func currentViewer(c *fiber.Ctx) models.Viewer {
	if userID, err := httpx.LocalUint(c, "userID"); err == nil {
		return models.AuthenticatedViewer(userID, c.IP())
	}
	return models.AnonymousViewer(c.IP())
}

func respondServiceError(c *fiber.Ctx, err error, internalCode string) error {
	if nf, ok := service.AsNotFound(err); ok {
		return httpx.NotFound(c, "not_found", nf.Kind+" not found", nf.IDs)
	}
	switch {
	case errors.Is(err, service.ErrAlreadyFavorite):
		return httpx.Conflict(c, "already_favorite", "Already in favorites")
	case errors.Is(err, service.ErrNotFavorite):
		return httpx.Conflict(c, "not_favorite", "Not in favorites")
	case errors.Is(err, service.ErrAlreadyParticipant):
		return httpx.Conflict(c, "already_participant", "Already joined")
	case errors.Is(err, service.ErrNotParticipant):
		return httpx.Conflict(c, "not_participant", "Not a participant")
	case errors.Is(err, service.ErrAlreadyApplied):
		return httpx.Conflict(c, "already_applied", "Proposal already submitted")
	case errors.Is(err, service.ErrOwnItem):
		return httpx.Forbidden(c, "own_item", "Cannot apply to your own listing")
	}
	return httpx.Internal(c, internalCode)
}

func parseIDParam(c *fiber.Ctx, name string) (uint, error) {
	id, err := c.ParamsInt(name)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}
