// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"

	"dananglover/internal/cache"
	"dananglover/internal/models"

	"gorm.io/gorm"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Upsert(ctx context.Context, user *models.User) error
}

// userRepository implements UserRepository
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := cache.Aside(ctx, cache.UserKey(id), &user, cache.UserTTL, func() error {
		return r.db.WithContext(ctx).First(&user, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		return err
	}
	cache.InvalidateUser(ctx, user.ID)
	return nil
}

// Upsert inserts the user when no row exists for its ID yet, otherwise
// updates the existing row. Lookups go through the primary connection so
// a just-created row is always visible.
func (r *userRepository) Upsert(ctx context.Context, user *models.User) error {
	var existing models.User
	err := r.db.WithContext(ctx).First(&existing, user.ID).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return r.db.WithContext(ctx).Create(user).Error
	case err != nil:
		return err
	default:
		if err := r.db.WithContext(ctx).Model(&existing).Updates(map[string]interface{}{
			"name":       user.Name,
			"avatar_url": user.AvatarURL,
		}).Error; err != nil {
			return err
		}
		cache.InvalidateUser(ctx, user.ID)
		return nil
	}
}
