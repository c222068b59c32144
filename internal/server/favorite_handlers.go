// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"time"

	"dananglover/internal/models"

	"github.com/gofiber/fiber/v2"
)

// ToggleFavorite handles POST /api/places/:id/favorite
// This endpoint toggles the favorite - if already favorited, it removes; if not, it adds
func (s *Server) ToggleFavorite(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	placeID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	favorited, err := s.placeService.ToggleFavorite(ctx, userID, placeID)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	s.publishUserEvent(userID, EventFavoriteToggled, map[string]interface{}{
		"place_id":   placeID,
		"favorited":  favorited,
		"updated_at": time.Now().UTC().Format(time.RFC3339Nano),
	})

	return c.JSON(fiber.Map{"favorited": favorited})
}

// GetMyFavorites handles GET /api/users/me/favorites
func (s *Server) GetMyFavorites(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	places, err := s.placeService.ListFavorites(ctx, userID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(places)
}
