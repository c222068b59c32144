package server

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"dananglover/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestParsePageQuery(t *testing.T) {
	app := fiber.New()
	var got PageQuery
	app.Get("/items", func(c *fiber.Ctx) error {
		got = parsePageQuery(c, 12)
		return c.SendStatus(http.StatusOK)
	})

	tests := []struct {
		name     string
		url      string
		expected PageQuery
	}{
		{"Defaults", "/items", PageQuery{Page: 1, Limit: 12}},
		{"Explicit", "/items?page=3&limit=5", PageQuery{Page: 3, Limit: 5}},
		{"Zero Page Clamped", "/items?page=0", PageQuery{Page: 1, Limit: 12}},
		{"Negative Limit Clamped", "/items?limit=-4", PageQuery{Page: 1, Limit: 12}},
		{"Limit Capped", "/items?limit=5000", PageQuery{Page: 1, Limit: 100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			resp, err := app.Test(req)
			assert.NoError(t, err)
			_ = resp.Body.Close()
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestHumanizeParam(t *testing.T) {
	assert.Equal(t, "ID", humanizeParam("id"))
	assert.Equal(t, "comment ID", humanizeParam("commentId"))
	assert.Equal(t, "place type ID", humanizeParam("placeTypeId"))
	assert.Equal(t, "slug", humanizeParam("slug"))
}

func TestMapServiceError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"Validation", models.NewValidationError("bad"), http.StatusBadRequest},
		{"Unauthorized", models.NewUnauthorizedError("who"), http.StatusUnauthorized},
		{"Forbidden", models.NewForbiddenError("no"), http.StatusForbidden},
		{"Not Found", models.NewNotFoundError("Place", 1), http.StatusNotFound},
		{"Conflict", models.NewConflictError("dup"), http.StatusConflict},
		{"Internal", models.NewInternalError(errors.New("boom")), http.StatusInternalServerError},
		{"Plain Error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, mapServiceError(tt.err))
		})
	}
}
