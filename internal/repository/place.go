package repository

import (
	"context"
	"math"

	"dananglover/internal/cache"
	"dananglover/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PlaceRepository defines the interface for place data operations
type PlaceRepository interface {
	Create(ctx context.Context, place *models.Place) error
	GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Place, error)
	List(ctx context.Context, limit, offset int, placeTypeID uint, currentUserID uint) ([]*models.Place, int64, error)
	Update(ctx context.Context, place *models.Place) error
	Delete(ctx context.Context, id uint, userID uint) error
	RecomputeRating(ctx context.Context, placeID uint) error
	IsFavorited(ctx context.Context, userID, placeID uint) (bool, error)
	Favorite(ctx context.Context, userID, placeID uint) error
	Unfavorite(ctx context.Context, userID, placeID uint) error
	ListFavorites(ctx context.Context, userID uint) ([]*models.Place, error)
	ListPlaceTypes(ctx context.Context) ([]*models.PlaceType, error)
}

// placeRepository implements PlaceRepository
type placeRepository struct {
	db *gorm.DB
}

// NewPlaceRepository creates a new place repository
func NewPlaceRepository(db *gorm.DB) PlaceRepository {
	return &placeRepository{db: db}
}

func (r *placeRepository) Create(ctx context.Context, place *models.Place) error {
	return r.db.WithContext(ctx).Create(place).Error
}

func (r *placeRepository) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Place, error) {
	var place models.Place
	key := cache.PlaceKey(id)

	var err error
	if currentUserID == 0 {
		err = cache.Aside(ctx, key, &place, cache.PlaceTTL, func() error {
			return r.applyPlaceDetails(r.db.WithContext(ctx), 0).
				Preload("PlaceType").
				Preload("User").
				First(&place, id).Error
		})
	} else {
		err = r.applyPlaceDetails(r.db.WithContext(ctx), currentUserID).
			Preload("PlaceType").
			Preload("User").
			First(&place, id).Error
	}

	if err != nil {
		return nil, err
	}
	return &place, nil
}

func (r *placeRepository) List(ctx context.Context, limit, offset int, placeTypeID uint, currentUserID uint) ([]*models.Place, int64, error) {
	countQuery := r.db.WithContext(ctx).Model(&models.Place{})
	if placeTypeID != 0 {
		countQuery = countQuery.Where("place_type_id = ?", placeTypeID)
	}

	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := r.applyPlaceDetails(r.db.WithContext(ctx), currentUserID).
		Preload("PlaceType").
		Preload("User")
	if placeTypeID != 0 {
		query = query.Where("place_type_id = ?", placeTypeID)
	}

	var places []*models.Place
	err := query.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&places).Error
	if err != nil {
		return nil, 0, err
	}
	return places, total, nil
}

// applyPlaceDetails adds a subquery to fetch the favorited flag in a single query.
func (r *placeRepository) applyPlaceDetails(db *gorm.DB, currentUserID uint) *gorm.DB {
	if currentUserID != 0 {
		return db.Select("places.*, EXISTS(SELECT 1 FROM favorites WHERE favorites.place_id = places.id AND favorites.user_id = ?) as favorited", currentUserID)
	}
	return db.Select("places.*, false as favorited")
}

// Update writes the place only when it belongs to the given owner.
// Zero affected rows means the place does not exist or is someone else's.
func (r *placeRepository) Update(ctx context.Context, place *models.Place) error {
	// Struct updates go through field serializers, so photos lands as JSON.
	// A column map would write the raw slice and brick subsequent reads.
	result := r.db.WithContext(ctx).
		Model(&models.Place{}).
		Where("id = ? AND user_id = ?", place.ID, place.UserID).
		Select("name", "description", "price", "location", "google_maps_link", "photos", "place_type_id").
		Updates(place)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	cache.InvalidatePlace(ctx, place.ID)
	return nil
}

func (r *placeRepository) Delete(ctx context.Context, id uint, userID uint) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Place{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	cache.InvalidatePlace(ctx, id)
	return nil
}

// RecomputeRating refreshes the place aggregates from its current reviews.
// The place row is locked for the duration of the transaction so concurrent
// review writes cannot interleave their reads and writes.
func (r *placeRepository) RecomputeRating(ctx context.Context, placeID uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		query := tx
		if tx.Dialector.Name() == "postgres" {
			query = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var place models.Place
		if err := query.First(&place, placeID).Error; err != nil {
			return err
		}

		var stats struct {
			Count int64
			Mean  float64
		}
		if err := tx.Model(&models.Review{}).
			Select("COUNT(*) as count, COALESCE(AVG(rating), 0) as mean").
			Where("place_id = ?", placeID).
			Scan(&stats).Error; err != nil {
			return err
		}

		// Aggregates keep their last value once the final review is gone.
		if stats.Count == 0 {
			return nil
		}

		return tx.Model(&models.Place{}).
			Where("id = ?", placeID).
			Updates(map[string]interface{}{
				"rating":        math.Round(stats.Mean*10) / 10,
				"reviews_count": stats.Count,
			}).Error
	})
	if err != nil {
		return err
	}
	cache.InvalidatePlace(ctx, placeID)
	return nil
}

func (r *placeRepository) IsFavorited(ctx context.Context, userID, placeID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Favorite{}).
		Where("user_id = ? AND place_id = ?", userID, placeID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *placeRepository) Favorite(ctx context.Context, userID, placeID uint) error {
	// ON CONFLICT DO NOTHING keeps the pair unique under concurrent toggles
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.Favorite{UserID: userID, PlaceID: placeID}).Error
	if err == nil {
		cache.InvalidateFavorites(ctx, userID)
		cache.InvalidatePlace(ctx, placeID)
	}
	return err
}

func (r *placeRepository) Unfavorite(ctx context.Context, userID, placeID uint) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND place_id = ?", userID, placeID).
		Delete(&models.Favorite{}).Error
	if err == nil {
		cache.InvalidateFavorites(ctx, userID)
		cache.InvalidatePlace(ctx, placeID)
	}
	return err
}

func (r *placeRepository) ListFavorites(ctx context.Context, userID uint) ([]*models.Place, error) {
	var places []*models.Place
	err := r.db.WithContext(ctx).
		Select("places.*, true as favorited").
		Joins("JOIN favorites ON favorites.place_id = places.id").
		Where("favorites.user_id = ?", userID).
		Preload("PlaceType").
		Preload("User").
		Order("favorites.created_at DESC").
		Find(&places).Error
	if err != nil {
		return nil, err
	}
	return places, nil
}

func (r *placeRepository) ListPlaceTypes(ctx context.Context) ([]*models.PlaceType, error) {
	var types []*models.PlaceType
	err := cache.Aside(ctx, cache.PlaceTypesKey, &types, cache.PlaceTypesTTL, func() error {
		return r.db.WithContext(ctx).Order("name ASC").Find(&types).Error
	})
	if err != nil {
		return nil, err
	}
	return types, nil
}
