// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"io"
	"mime/multipart"
	"strconv"
	"time"

	"dananglover/internal/models"
	"dananglover/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetPlaces handles GET /api/places
// @Summary List places
// @Description Paginated place listing, newest first, optionally filtered by type
// @Tags places
// @Produce json
// @Param page query int false "Page (1-based)"
// @Param limit query int false "Page size"
// @Param type query int false "Place type ID filter"
// @Success 200 {object} object{data=[]models.Place,pagination=models.Pagination}
// @Router /places [get]
func (s *Server) GetPlaces(c *fiber.Ctx) error {
	ctx := c.Context()
	page := parsePageQuery(c, 12)
	userID, _ := s.optionalUserID(c)

	typeID := c.QueryInt("type", 0)
	if typeID < 0 {
		typeID = 0
	}

	places, pagination, err := s.placeService.ListPlaces(ctx, service.ListPlacesInput{
		Page:          page.Page,
		Limit:         page.Limit,
		PlaceTypeID:   uint(typeID),
		CurrentUserID: userID,
	})
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(pagedResponse(places, pagination))
}

// GetPlace handles GET /api/places/:id
func (s *Server) GetPlace(c *fiber.Ctx) error {
	ctx := c.Context()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID, _ := s.optionalUserID(c)

	place, err := s.placeService.GetPlace(ctx, id, userID)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(place)
}

// GetPlaceTypes handles GET /api/place-types
func (s *Server) GetPlaceTypes(c *fiber.Ctx) error {
	types, err := s.placeService.ListPlaceTypes(c.Context())
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(types)
}

// CreatePlace handles POST /api/places (multipart/form-data)
// @Summary Create place
// @Description Create a place with one or more photos in a single multipart request
// @Tags places
// @Accept multipart/form-data
// @Produce json
// @Success 201 {object} models.Place
// @Failure 400 {object} models.ErrorResponse
// @Router /places [post]
func (s *Server) CreatePlace(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	form, err := c.MultipartForm()
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Expected multipart form data"))
	}

	placeTypeID, _ := strconv.ParseUint(formValue(form, "placeTypeId"), 10, 32)

	photos, err := readPhotoUploads(form.File["photos"], s.mediaService.MaxUploadBytes())
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, err)
	}

	place, err := s.placeService.CreatePlace(ctx, service.CreatePlaceInput{
		UserID:         userID,
		Name:           formValue(form, "name"),
		Description:    formValue(form, "description"),
		Price:          formValue(form, "price"),
		Location:       formValue(form, "location"),
		GoogleMapsLink: formValue(form, "googleMapsLink"),
		PlaceTypeID:    uint(placeTypeID),
		Photos:         photos,
	})
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	s.publishBroadcastEvent(EventPlaceCreated, map[string]interface{}{
		"place_id":   place.ID,
		"author_id":  place.UserID,
		"name":       place.Name,
		"created_at": time.Now().UTC().Format(time.RFC3339Nano),
	})

	return c.Status(fiber.StatusCreated).JSON(place)
}

// UpdatePlace handles PUT /api/places/:id (multipart/form-data)
// Existing photo URLs survive in the "photos" field; new files arrive in "newPhotos".
func (s *Server) UpdatePlace(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	placeID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	form, err := c.MultipartForm()
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Expected multipart form data"))
	}

	placeTypeID, _ := strconv.ParseUint(formValue(form, "placeTypeId"), 10, 32)

	newPhotos, err := readPhotoUploads(form.File["newPhotos"], s.mediaService.MaxUploadBytes())
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, err)
	}

	place, err := s.placeService.UpdatePlace(ctx, service.UpdatePlaceInput{
		UserID:         userID,
		PlaceID:        placeID,
		Name:           formValue(form, "name"),
		Description:    formValue(form, "description"),
		Price:          formValue(form, "price"),
		Location:       formValue(form, "location"),
		GoogleMapsLink: formValue(form, "googleMapsLink"),
		PlaceTypeID:    uint(placeTypeID),
		Photos:         form.Value["photos"],
		NewPhotos:      newPhotos,
	})
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(place)
}

// DeletePlace handles DELETE /api/places/:id
func (s *Server) DeletePlace(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	placeID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.placeService.DeletePlace(ctx, placeID, userID); err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// formValue returns the first value for a multipart form field, or "".
func formValue(form *multipart.Form, key string) string {
	values := form.Value[key]
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

// readPhotoUploads reads multipart file headers into memory, rejecting
// oversized files before any image decoding happens.
func readPhotoUploads(headers []*multipart.FileHeader, maxBytes int64) ([]service.PhotoUpload, error) {
	uploads := make([]service.PhotoUpload, 0, len(headers))
	for _, header := range headers {
		if header.Size > maxBytes {
			return nil, models.NewValidationError("Uploaded file is too large")
		}
		src, err := header.Open()
		if err != nil {
			return nil, models.NewValidationError("Unable to read uploaded file")
		}
		content, err := io.ReadAll(src)
		_ = src.Close()
		if err != nil {
			return nil, models.NewValidationError("Unable to read uploaded file")
		}
		uploads = append(uploads, service.PhotoUpload{
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Content:     content,
		})
	}
	return uploads, nil
}
