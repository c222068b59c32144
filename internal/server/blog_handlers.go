// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"io"
	"time"

	"dananglover/internal/models"
	"dananglover/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetBlogPosts handles GET /api/blog
// @Summary List published blog posts
// @Tags blog
// @Produce json
// @Param page query int false "Page (1-based)"
// @Param limit query int false "Page size"
// @Success 200 {object} object{data=[]models.BlogPost,pagination=models.Pagination}
// @Router /blog [get]
func (s *Server) GetBlogPosts(c *fiber.Ctx) error {
	ctx := c.Context()
	page := parsePageQuery(c, 10)

	posts, pagination, err := s.blogService.ListPosts(ctx, service.ListPostsInput{
		Page:  page.Page,
		Limit: page.Limit,
	})
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(pagedResponse(posts, pagination))
}

// GetBlogPost handles GET /api/blog/:id
func (s *Server) GetBlogPost(c *fiber.Ctx) error {
	ctx := c.Context()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.blogService.GetPost(ctx, id)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	// Drafts are only visible to their author
	if !post.Published {
		userID, authed := s.optionalUserID(c)
		if !authed || userID != post.UserID {
			return models.RespondWithError(c, fiber.StatusNotFound,
				models.NewNotFoundError("Blog post", id))
		}
	}

	return c.JSON(post)
}

// GetMyBlogPosts handles GET /api/users/me/blog
func (s *Server) GetMyBlogPosts(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	posts, err := s.blogService.ListMyPosts(ctx, userID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(posts)
}

// CreateBlogPost handles POST /api/blog
func (s *Server) CreateBlogPost(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	var req struct {
		Title    string   `json:"title"`
		Content  string   `json:"content"`
		Excerpt  string   `json:"excerpt"`
		CoverURL string   `json:"coverUrl"`
		Images   []string `json:"images"`
		Publish  bool     `json:"publish"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.blogService.CreatePost(ctx, service.CreatePostInput{
		UserID:   userID,
		Title:    req.Title,
		Content:  req.Content,
		Excerpt:  req.Excerpt,
		CoverURL: req.CoverURL,
		Images:   req.Images,
		Publish:  req.Publish,
	})
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	if post.Published {
		s.publishBroadcastEvent(EventPostPublished, map[string]interface{}{
			"post_id":      post.ID,
			"author_id":    post.UserID,
			"title":        post.Title,
			"published_at": post.PublishedAt.UTC().Format(time.RFC3339Nano),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

// UpdateBlogPost handles PUT /api/blog/:id
func (s *Server) UpdateBlogPost(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Title    string   `json:"title"`
		Content  string   `json:"content"`
		Excerpt  string   `json:"excerpt"`
		CoverURL string   `json:"coverUrl"`
		Images   []string `json:"images"`
		Publish  bool     `json:"publish"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	wasDraft := false
	if existing, getErr := s.blogService.GetPost(ctx, postID); getErr == nil {
		wasDraft = !existing.Published
	}

	post, err := s.blogService.UpdatePost(ctx, service.UpdatePostInput{
		UserID:   userID,
		PostID:   postID,
		Title:    req.Title,
		Content:  req.Content,
		Excerpt:  req.Excerpt,
		CoverURL: req.CoverURL,
		Images:   req.Images,
		Publish:  req.Publish,
	})
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	// Announce only the draft -> published transition, not routine edits
	if wasDraft && post.Published {
		s.publishBroadcastEvent(EventPostPublished, map[string]interface{}{
			"post_id":      post.ID,
			"author_id":    post.UserID,
			"title":        post.Title,
			"published_at": post.PublishedAt.UTC().Format(time.RFC3339Nano),
		})
	}

	return c.JSON(post)
}

// DeleteBlogPost handles DELETE /api/blog/:id
func (s *Server) DeleteBlogPost(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.blogService.DeletePost(ctx, postID, userID); err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// UploadBlogImage handles POST /api/blog/images
func (s *Server) UploadBlogImage(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	file, err := c.FormFile("image")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("No file uploaded"))
	}

	src, err := file.Open()
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Unable to read uploaded file"))
	}
	defer func() { _ = src.Close() }()

	content, err := io.ReadAll(src)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Unable to read uploaded file"))
	}

	stored, err := s.blogService.UploadImage(c.UserContext(), userID, file.Filename,
		file.Header.Get("Content-Type"), content)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(stored)
}
