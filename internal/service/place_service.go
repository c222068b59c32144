package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"dananglover/internal/models"
	"dananglover/internal/repository"

	"gorm.io/gorm"
)

// MediaUploader is the slice of the media pipeline the content services need.
type MediaUploader interface {
	Upload(ctx context.Context, in UploadMediaInput) (*StoredFile, error)
	MaxUploadBytes() int64
}

type PlaceService struct {
	placeRepo  repository.PlaceRepository
	reviewRepo repository.ReviewRepository
	media      MediaUploader
}

// PhotoUpload is one multipart file attached to a place.
type PhotoUpload struct {
	Filename    string
	ContentType string
	Content     []byte
}

type CreatePlaceInput struct {
	UserID         uint
	Name           string
	Description    string
	Price          string
	Location       string
	GoogleMapsLink string
	PlaceTypeID    uint
	Photos         []PhotoUpload
}

type UpdatePlaceInput struct {
	UserID         uint
	PlaceID        uint
	Name           string
	Description    string
	Price          string
	Location       string
	GoogleMapsLink string
	PlaceTypeID    uint
	Photos         []string
	NewPhotos      []PhotoUpload
}

type ListPlacesInput struct {
	Page          int
	Limit         int
	PlaceTypeID   uint
	CurrentUserID uint
}

type CreateReviewInput struct {
	UserID  uint
	PlaceID uint
	Rating  int
	Content string
}

func NewPlaceService(
	placeRepo repository.PlaceRepository,
	reviewRepo repository.ReviewRepository,
	media MediaUploader,
) *PlaceService {
	return &PlaceService{
		placeRepo:  placeRepo,
		reviewRepo: reviewRepo,
		media:      media,
	}
}

func (s *PlaceService) ListPlaces(ctx context.Context, in ListPlacesInput) ([]*models.Place, models.Pagination, error) {
	page := in.Page
	if page < 1 {
		page = 1
	}
	limit := in.Limit
	if limit < 1 || limit > 100 {
		limit = 12
	}
	offset := (page - 1) * limit

	places, total, err := s.placeRepo.List(ctx, limit, offset, in.PlaceTypeID, in.CurrentUserID)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	return places, models.NewPagination(page, limit, total), nil
}

func (s *PlaceService) GetPlace(ctx context.Context, id uint, currentUserID uint) (*models.Place, error) {
	place, err := s.placeRepo.GetByID(ctx, id, currentUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Place", id)
		}
		return nil, err
	}
	return place, nil
}

func (s *PlaceService) validatePlaceFields(name, description, price, location string, placeTypeID uint) error {
	if strings.TrimSpace(name) == "" {
		return models.NewValidationError("Name is required")
	}
	if strings.TrimSpace(description) == "" {
		return models.NewValidationError("Description is required")
	}
	if strings.TrimSpace(price) == "" {
		return models.NewValidationError("Price is required")
	}
	if strings.TrimSpace(location) == "" {
		return models.NewValidationError("Location is required")
	}
	if placeTypeID == 0 {
		return models.NewValidationError("Place type is required")
	}
	return nil
}

func (s *PlaceService) validatePhotos(photos []PhotoUpload) error {
	if len(photos) == 0 {
		return models.NewValidationError("At least one photo is required")
	}
	max := s.media.MaxUploadBytes()
	for _, p := range photos {
		if int64(len(p.Content)) > max {
			return models.NewValidationError(fmt.Sprintf("Photo %q is too large (max %dMB)", p.Filename, max/(1024*1024)))
		}
	}
	return nil
}

// uploadPhotos stores each photo and returns its public URL. Files written
// before a later failure are left behind; orphans are cheap and the row
// insert only happens after every upload succeeded.
func (s *PlaceService) uploadPhotos(ctx context.Context, photos []PhotoUpload) ([]string, error) {
	urls := make([]string, 0, len(photos))
	for _, p := range photos {
		stored, err := s.media.Upload(ctx, UploadMediaInput{
			Bucket:      BucketPlacePhotos,
			Filename:    p.Filename,
			ContentType: p.ContentType,
			Content:     p.Content,
		})
		if err != nil {
			return nil, err
		}
		urls = append(urls, stored.URL)
	}
	return urls, nil
}

func (s *PlaceService) CreatePlace(ctx context.Context, in CreatePlaceInput) (*models.Place, error) {
	if in.UserID == 0 {
		return nil, models.NewUnauthorizedError("Authentication required")
	}
	if err := s.validatePlaceFields(in.Name, in.Description, in.Price, in.Location, in.PlaceTypeID); err != nil {
		return nil, err
	}
	if err := s.validatePhotos(in.Photos); err != nil {
		return nil, err
	}

	urls, err := s.uploadPhotos(ctx, in.Photos)
	if err != nil {
		return nil, err
	}

	place := &models.Place{
		Name:           strings.TrimSpace(in.Name),
		Description:    in.Description,
		Price:          in.Price,
		Location:       in.Location,
		GoogleMapsLink: in.GoogleMapsLink,
		Photos:         urls,
		PlaceTypeID:    in.PlaceTypeID,
		UserID:         in.UserID,
	}
	if err := s.placeRepo.Create(ctx, place); err != nil {
		return nil, models.NewInternalError(err)
	}
	return s.GetPlace(ctx, place.ID, in.UserID)
}

func (s *PlaceService) UpdatePlace(ctx context.Context, in UpdatePlaceInput) (*models.Place, error) {
	if in.UserID == 0 {
		return nil, models.NewUnauthorizedError("Authentication required")
	}
	if err := s.validatePlaceFields(in.Name, in.Description, in.Price, in.Location, in.PlaceTypeID); err != nil {
		return nil, err
	}

	photos := in.Photos
	if len(in.NewPhotos) > 0 {
		for _, p := range in.NewPhotos {
			if int64(len(p.Content)) > s.media.MaxUploadBytes() {
				return nil, models.NewValidationError(fmt.Sprintf("Photo %q is too large", p.Filename))
			}
		}
		uploaded, err := s.uploadPhotos(ctx, in.NewPhotos)
		if err != nil {
			return nil, err
		}
		photos = append(photos, uploaded...)
	}
	if len(photos) == 0 {
		return nil, models.NewValidationError("At least one photo is required")
	}

	place := &models.Place{
		ID:             in.PlaceID,
		UserID:         in.UserID,
		Name:           strings.TrimSpace(in.Name),
		Description:    in.Description,
		Price:          in.Price,
		Location:       in.Location,
		GoogleMapsLink: in.GoogleMapsLink,
		Photos:         photos,
		PlaceTypeID:    in.PlaceTypeID,
	}
	if err := s.placeRepo.Update(ctx, place); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Place", in.PlaceID)
		}
		return nil, err
	}
	return s.GetPlace(ctx, in.PlaceID, in.UserID)
}

func (s *PlaceService) DeletePlace(ctx context.Context, placeID, userID uint) error {
	if userID == 0 {
		return models.NewUnauthorizedError("Authentication required")
	}
	if err := s.placeRepo.Delete(ctx, placeID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Place", placeID)
		}
		return err
	}
	return nil
}

func (s *PlaceService) ListReviews(ctx context.Context, placeID uint) ([]*models.Review, error) {
	if _, err := s.GetPlace(ctx, placeID, 0); err != nil {
		return nil, err
	}
	return s.reviewRepo.ListByPlace(ctx, placeID)
}

func (s *PlaceService) CreateReview(ctx context.Context, in CreateReviewInput) (*models.Review, error) {
	if in.UserID == 0 {
		return nil, models.NewUnauthorizedError("Authentication required")
	}
	if in.Rating < 1 || in.Rating > 5 {
		return nil, models.NewValidationError("Rating must be between 1 and 5")
	}
	if strings.TrimSpace(in.Content) == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if _, err := s.GetPlace(ctx, in.PlaceID, 0); err != nil {
		return nil, err
	}

	review := &models.Review{
		PlaceID: in.PlaceID,
		UserID:  in.UserID,
		Rating:  in.Rating,
		Content: in.Content,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, models.NewInternalError(err)
	}
	if err := s.placeRepo.RecomputeRating(ctx, in.PlaceID); err != nil {
		return nil, models.NewInternalError(err)
	}
	return s.reviewRepo.GetByID(ctx, review.ID)
}

func (s *PlaceService) DeleteReview(ctx context.Context, reviewID, userID uint) error {
	if userID == 0 {
		return models.NewUnauthorizedError("Authentication required")
	}
	review, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Review", reviewID)
		}
		return err
	}
	if err := s.reviewRepo.Delete(ctx, reviewID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Review", reviewID)
		}
		return err
	}
	if err := s.placeRepo.RecomputeRating(ctx, review.PlaceID); err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// ToggleFavorite flips the saved state and reports the new value.
func (s *PlaceService) ToggleFavorite(ctx context.Context, userID, placeID uint) (bool, error) {
	if userID == 0 {
		return false, models.NewUnauthorizedError("Authentication required")
	}
	if _, err := s.GetPlace(ctx, placeID, 0); err != nil {
		return false, err
	}

	favorited, err := s.placeRepo.IsFavorited(ctx, userID, placeID)
	if err != nil {
		return false, models.NewInternalError(err)
	}
	if favorited {
		if err := s.placeRepo.Unfavorite(ctx, userID, placeID); err != nil {
			return false, models.NewInternalError(err)
		}
		return false, nil
	}
	if err := s.placeRepo.Favorite(ctx, userID, placeID); err != nil {
		return false, models.NewInternalError(err)
	}
	return true, nil
}

func (s *PlaceService) ListFavorites(ctx context.Context, userID uint) ([]*models.Place, error) {
	if userID == 0 {
		return nil, models.NewUnauthorizedError("Authentication required")
	}
	return s.placeRepo.ListFavorites(ctx, userID)
}

func (s *PlaceService) ListPlaceTypes(ctx context.Context) ([]*models.PlaceType, error) {
	return s.placeRepo.ListPlaceTypes(ctx)
}
