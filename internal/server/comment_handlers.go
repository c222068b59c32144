// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"time"

	"dananglover/internal/models"
	"dananglover/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetComments handles GET /api/blog/:id/comments
func (s *Server) GetComments(c *fiber.Ctx) error {
	ctx := c.Context()
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	viewerID, _ := s.optionalUserID(c)

	comments, err := s.blogService.ListComments(ctx, postID, viewerID)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(comments)
}

// CreateComment handles POST /api/blog/:id/comments
func (s *Server) CreateComment(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	comment, err := s.blogService.CreateComment(ctx, service.CreateCommentInput{
		UserID:  userID,
		PostID:  postID,
		Content: req.Content,
	})
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	// Tell the post author about the new comment
	if post, getErr := s.blogService.GetPost(ctx, postID); getErr == nil && post.UserID != userID {
		s.publishUserEvent(post.UserID, EventCommentCreated, map[string]interface{}{
			"comment_id": comment.ID,
			"post_id":    comment.PostID,
			"author_id":  comment.UserID,
			"created_at": time.Now().UTC().Format(time.RFC3339Nano),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(comment)
}

// DeleteComment handles DELETE /api/blog/:id/comments/:commentId
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	commentID, err := s.parseID(c, "commentId")
	if err != nil {
		return nil
	}

	if err := s.blogService.DeleteComment(ctx, commentID, postID, userID); err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
