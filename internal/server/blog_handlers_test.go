package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"dananglover/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

func TestGetBlogPosts(t *testing.T) {
	app := fiber.New()
	s, deps := newTestServer()
	app.Get("/blog", s.GetBlogPosts)

	now := time.Now()
	deps.blogRepo.On("ListPublished", mock.Anything, 10, 0).
		Return([]*models.BlogPost{
			{ID: 2, Title: "Street food crawl", Published: true, PublishedAt: &now},
		}, int64(1), nil)

	req := httptest.NewRequest(http.MethodGet, "/blog", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Data       []models.BlogPost `json:"data"`
		Pagination models.Pagination `json:"pagination"`
	}
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Len(t, body.Data, 1)
	assert.Equal(t, 1, body.Pagination.TotalPages)
}

func TestGetBlogPost_DraftVisibility(t *testing.T) {
	app := fiber.New()
	s, deps := newTestServer()
	app.Get("/blog/:id", s.GetBlogPost)

	now := time.Now()
	deps.blogRepo.On("GetByID", mock.Anything, uint(1)).
		Return(&models.BlogPost{ID: 1, Title: "Published", UserID: 7, Published: true, PublishedAt: &now}, nil)
	deps.blogRepo.On("GetByID", mock.Anything, uint(2)).
		Return(&models.BlogPost{ID: 2, Title: "Draft", UserID: 7}, nil)
	deps.blogRepo.On("GetByID", mock.Anything, uint(3)).
		Return(nil, gorm.ErrRecordNotFound)

	t.Run("Published post is public", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/blog/1", nil)
		resp, err := app.Test(req)
		assert.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("Draft is hidden from anonymous readers", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/blog/2", nil)
		resp, err := app.Test(req)
		assert.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("Missing post is 404", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/blog/3", nil)
		resp, err := app.Test(req)
		assert.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestCreateBlogPost(t *testing.T) {
	app := authedApp(7)
	s, deps := newTestServer()
	app.Post("/blog", s.CreateBlogPost)

	deps.blogRepo.On("Create", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			args.Get(1).(*models.BlogPost).ID = 9
		}).Return(nil)
	deps.blogRepo.On("GetByID", mock.Anything, uint(9)).
		Return(&models.BlogPost{ID: 9, Title: "Hidden gems", UserID: 7}, nil)

	tests := []struct {
		name           string
		body           map[string]interface{}
		expectedStatus int
	}{
		{
			name:           "Success",
			body:           map[string]interface{}{"title": "Hidden gems", "content": "# Guide\n\nSome places."},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "Missing Title",
			body:           map[string]interface{}{"content": "text"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Missing Content",
			body:           map[string]interface{}{"title": "Hidden gems"},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, _ := json.Marshal(tt.body)
			req := httptest.NewRequest(http.MethodPost, "/blog", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req)
			assert.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}

func TestCreateComment(t *testing.T) {
	app := authedApp(7)
	s, deps := newTestServer()
	app.Post("/blog/:id/comments", s.CreateComment)

	now := time.Now()
	deps.blogRepo.On("GetByID", mock.Anything, uint(1)).
		Return(&models.BlogPost{ID: 1, UserID: 3, Published: true, PublishedAt: &now}, nil)
	deps.commentRepo.On("Create", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			args.Get(1).(*models.Comment).ID = 4
		}).Return(nil)

	t.Run("Success", func(t *testing.T) {
		body, _ := json.Marshal(map[string]string{"content": "Love this place too"})
		req := httptest.NewRequest(http.MethodPost, "/blog/1/comments", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		assert.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var comment models.Comment
		assert.NoError(t, json.NewDecoder(resp.Body).Decode(&comment))
		assert.Equal(t, uint(4), comment.ID)
		assert.Equal(t, uint(7), comment.UserID)
	})

	t.Run("Empty Content", func(t *testing.T) {
		body, _ := json.Marshal(map[string]string{"content": "   "})
		req := httptest.NewRequest(http.MethodPost, "/blog/1/comments", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		assert.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestGetMyBlogPosts(t *testing.T) {
	app := authedApp(7)
	s, deps := newTestServer()
	app.Get("/users/me/blog", s.GetMyBlogPosts)

	deps.blogRepo.On("ListByUser", mock.Anything, uint(7)).
		Return([]*models.BlogPost{{ID: 1, UserID: 7}, {ID: 2, UserID: 7}}, nil)

	req := httptest.NewRequest(http.MethodGet, "/users/me/blog", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var posts []models.BlogPost
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&posts))
	assert.Len(t, posts, 2)
}

func TestDeleteComment_OwnerScoped(t *testing.T) {
	app := authedApp(7)
	s, deps := newTestServer()
	app.Delete("/blog/:id/comments/:commentId", s.DeleteComment)

	deps.commentRepo.On("Delete", mock.Anything, uint(4), uint(1), uint(7)).Return(nil)
	deps.commentRepo.On("Delete", mock.Anything, uint(5), uint(1), uint(7)).
		Return(gorm.ErrRecordNotFound)
	deps.commentRepo.On("Delete", mock.Anything, uint(4), uint(2), uint(7)).
		Return(gorm.ErrRecordNotFound)

	req := httptest.NewRequest(http.MethodDelete, "/blog/1/comments/4", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	req = httptest.NewRequest(http.MethodDelete, "/blog/1/comments/5", nil)
	resp, err = app.Test(req)
	assert.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// A comment reached through another post's URL reads as missing
	req = httptest.NewRequest(http.MethodDelete, "/blog/2/comments/4", nil)
	resp, err = app.Test(req)
	assert.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetComments_DraftVisibility(t *testing.T) {
	app := fiber.New()
	s, deps := newTestServer()
	app.Get("/blog/:id/comments", s.GetComments)

	now := time.Now()
	deps.blogRepo.On("GetByID", mock.Anything, uint(1)).
		Return(&models.BlogPost{ID: 1, UserID: 3, Published: true, PublishedAt: &now}, nil)
	deps.blogRepo.On("GetByID", mock.Anything, uint(2)).
		Return(&models.BlogPost{ID: 2, UserID: 3}, nil)
	deps.commentRepo.On("ListByPost", mock.Anything, uint(1)).
		Return([]*models.Comment{{ID: 4, PostID: 1, UserID: 7, Content: "nice"}}, nil)

	t.Run("Published post lists comments", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/blog/1/comments", nil)
		resp, err := app.Test(req)
		assert.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var comments []models.Comment
		assert.NoError(t, json.NewDecoder(resp.Body).Decode(&comments))
		assert.Len(t, comments, 1)
	})

	t.Run("Draft comments hidden from anonymous readers", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/blog/2/comments", nil)
		resp, err := app.Test(req)
		assert.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}
