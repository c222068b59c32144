package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"dananglover/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

func authedApp(userID uint) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userID", userID)
		return c.Next()
	})
	return app
}

func TestGetPlaces(t *testing.T) {
	app := fiber.New()
	s, deps := newTestServer()
	app.Get("/places", s.GetPlaces)

	places := []*models.Place{
		{ID: 2, Name: "Banh Mi Corner"},
		{ID: 1, Name: "My Khe Beach"},
	}
	deps.placeRepo.On("List", mock.Anything, 12, 0, uint(0), uint(0)).
		Return(places, int64(25), nil)

	req := httptest.NewRequest(http.MethodGet, "/places", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Data       []models.Place    `json:"data"`
		Pagination models.Pagination `json:"pagination"`
	}
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Len(t, body.Data, 2)
	assert.Equal(t, int64(25), body.Pagination.Total)
	assert.Equal(t, 3, body.Pagination.TotalPages)
}

func TestGetPlaces_TypeFilterAndPaging(t *testing.T) {
	app := fiber.New()
	s, deps := newTestServer()
	app.Get("/places", s.GetPlaces)

	deps.placeRepo.On("List", mock.Anything, 6, 6, uint(3), uint(0)).
		Return([]*models.Place{}, int64(0), nil)

	req := httptest.NewRequest(http.MethodGet, "/places?page=2&limit=6&type=3", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	deps.placeRepo.AssertExpectations(t)
}

func TestGetPlace(t *testing.T) {
	app := fiber.New()
	s, deps := newTestServer()
	app.Get("/places/:id", s.GetPlace)

	deps.placeRepo.On("GetByID", mock.Anything, uint(1), uint(0)).
		Return(&models.Place{ID: 1, Name: "My Khe Beach"}, nil)
	deps.placeRepo.On("GetByID", mock.Anything, uint(99), uint(0)).
		Return(nil, gorm.ErrRecordNotFound)

	tests := []struct {
		name           string
		url            string
		expectedStatus int
	}{
		{"Found", "/places/1", http.StatusOK},
		{"Not Found", "/places/99", http.StatusNotFound},
		{"Invalid ID", "/places/zero", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			resp, err := app.Test(req)
			assert.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}

func TestCreateReview(t *testing.T) {
	app := authedApp(7)
	s, deps := newTestServer()
	app.Post("/places/:id/reviews", s.CreateReview)

	deps.placeRepo.On("GetByID", mock.Anything, uint(1), uint(0)).
		Return(&models.Place{ID: 1}, nil)
	deps.reviewRepo.On("Create", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			args.Get(1).(*models.Review).ID = 5
		}).Return(nil)
	deps.placeRepo.On("RecomputeRating", mock.Anything, uint(1)).Return(nil)
	deps.reviewRepo.On("GetByID", mock.Anything, uint(5)).
		Return(&models.Review{ID: 5, PlaceID: 1, UserID: 7, Rating: 4}, nil)

	tests := []struct {
		name           string
		body           map[string]interface{}
		expectedStatus int
	}{
		{"Success", map[string]interface{}{"rating": 4, "content": "Great views"}, http.StatusCreated},
		{"Rating Too High", map[string]interface{}{"rating": 6, "content": "x"}, http.StatusBadRequest},
		{"Missing Content", map[string]interface{}{"rating": 3}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, _ := json.Marshal(tt.body)
			req := httptest.NewRequest(http.MethodPost, "/places/1/reviews", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req)
			assert.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}

func TestToggleFavorite(t *testing.T) {
	app := authedApp(7)
	s, deps := newTestServer()
	app.Post("/places/:id/favorite", s.ToggleFavorite)

	deps.placeRepo.On("GetByID", mock.Anything, uint(1), uint(0)).
		Return(&models.Place{ID: 1}, nil)
	deps.placeRepo.On("IsFavorited", mock.Anything, uint(7), uint(1)).Return(false, nil)
	deps.placeRepo.On("Favorite", mock.Anything, uint(7), uint(1)).Return(nil)

	req := httptest.NewRequest(http.MethodPost, "/places/1/favorite", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]bool
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body["favorited"])
	deps.placeRepo.AssertExpectations(t)
}

func TestGetMyFavorites(t *testing.T) {
	app := authedApp(7)
	s, deps := newTestServer()
	app.Get("/users/me/favorites", s.GetMyFavorites)

	deps.placeRepo.On("ListFavorites", mock.Anything, uint(7)).
		Return([]*models.Place{{ID: 3, Favorited: true}}, nil)

	req := httptest.NewRequest(http.MethodGet, "/users/me/favorites", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body []models.Place
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Len(t, body, 1)
	assert.True(t, body[0].Favorited)
}

func TestDeletePlace_OwnerScoped(t *testing.T) {
	app := authedApp(7)
	s, deps := newTestServer()
	app.Delete("/places/:id", s.DeletePlace)

	deps.placeRepo.On("Delete", mock.Anything, uint(1), uint(7)).Return(nil)
	deps.placeRepo.On("Delete", mock.Anything, uint(2), uint(7)).
		Return(gorm.ErrRecordNotFound)

	req := httptest.NewRequest(http.MethodDelete, "/places/1", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	// Someone else's place looks like a missing place, not a forbidden one
	req = httptest.NewRequest(http.MethodDelete, "/places/2", nil)
	resp, err = app.Test(req)
	assert.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetPlaceTypes(t *testing.T) {
	app := fiber.New()
	s, deps := newTestServer()
	app.Get("/place-types", s.GetPlaceTypes)

	deps.placeRepo.On("ListPlaceTypes", mock.Anything).
		Return([]*models.PlaceType{{ID: 1, Name: "cafe", Description: "Cafe"}}, nil)

	req := httptest.NewRequest(http.MethodGet, "/place-types", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestGetReviews_PlaceMissing(t *testing.T) {
	app := fiber.New()
	s, deps := newTestServer()
	app.Get("/places/:id/reviews", s.GetReviews)

	deps.placeRepo.On("GetByID", mock.Anything, uint(42), uint(0)).
		Return(nil, gorm.ErrRecordNotFound)

	req := httptest.NewRequest(http.MethodGet, "/places/42/reviews", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetPlaces_RepoError(t *testing.T) {
	app := fiber.New()
	s, deps := newTestServer()
	app.Get("/places", s.GetPlaces)

	deps.placeRepo.On("List", mock.Anything, 12, 0, uint(0), uint(0)).
		Return([]*models.Place{}, int64(0), errors.New("connection reset"))

	req := httptest.NewRequest(http.MethodGet, "/places", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}
