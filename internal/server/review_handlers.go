// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"time"

	"dananglover/internal/models"
	"dananglover/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetReviews handles GET /api/places/:id/reviews
func (s *Server) GetReviews(c *fiber.Ctx) error {
	ctx := c.Context()
	placeID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	reviews, err := s.placeService.ListReviews(ctx, placeID)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(reviews)
}

// CreateReview handles POST /api/places/:id/reviews
// @Summary Create review
// @Description Add a 1-5 star review to a place; the place rating is recomputed
// @Tags reviews
// @Accept json
// @Produce json
// @Success 201 {object} models.Review
// @Failure 400 {object} models.ErrorResponse
// @Router /places/{id}/reviews [post]
func (s *Server) CreateReview(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	placeID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Rating  int    `json:"rating"`
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	review, err := s.placeService.CreateReview(ctx, service.CreateReviewInput{
		UserID:  userID,
		PlaceID: placeID,
		Rating:  req.Rating,
		Content: req.Content,
	})
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	s.publishBroadcastEvent(EventReviewCreated, map[string]interface{}{
		"review_id":  review.ID,
		"place_id":   review.PlaceID,
		"author_id":  review.UserID,
		"rating":     review.Rating,
		"created_at": time.Now().UTC().Format(time.RFC3339Nano),
	})

	return c.Status(fiber.StatusCreated).JSON(review)
}

// DeleteReview handles DELETE /api/reviews/:id
func (s *Server) DeleteReview(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	reviewID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.placeService.DeleteReview(ctx, reviewID, userID); err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
