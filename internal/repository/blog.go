package repository

import (
	"context"

	"dananglover/internal/cache"
	"dananglover/internal/models"

	"gorm.io/gorm"
)

// BlogRepository defines the interface for blog post data operations
type BlogRepository interface {
	Create(ctx context.Context, post *models.BlogPost) error
	GetByID(ctx context.Context, id uint) (*models.BlogPost, error)
	ListPublished(ctx context.Context, limit, offset int) ([]*models.BlogPost, int64, error)
	ListByUser(ctx context.Context, userID uint) ([]*models.BlogPost, error)
	Update(ctx context.Context, post *models.BlogPost) error
	Delete(ctx context.Context, id uint, userID uint) error
}

// blogRepository implements BlogRepository
type blogRepository struct {
	db *gorm.DB
}

// NewBlogRepository creates a new blog repository
func NewBlogRepository(db *gorm.DB) BlogRepository {
	return &blogRepository{db: db}
}

// applyPostDetails adds a subquery to fetch the comment count in a single query.
func (r *blogRepository) applyPostDetails(db *gorm.DB) *gorm.DB {
	return db.Select("blog_posts.*, " +
		"(SELECT COUNT(*) FROM comments WHERE comments.post_id = blog_posts.id AND comments.deleted_at IS NULL) as comments_count")
}

func (r *blogRepository) Create(ctx context.Context, post *models.BlogPost) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *blogRepository) GetByID(ctx context.Context, id uint) (*models.BlogPost, error) {
	var post models.BlogPost
	err := cache.Aside(ctx, cache.PostKey(id), &post, cache.PostTTL, func() error {
		return r.applyPostDetails(r.db.WithContext(ctx)).
			Preload("User").
			First(&post, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *blogRepository) ListPublished(ctx context.Context, limit, offset int) ([]*models.BlogPost, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&models.BlogPost{}).
		Where("published = ?", true).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []*models.BlogPost
	err := r.applyPostDetails(r.db.WithContext(ctx)).
		Preload("User").
		Where("published = ?", true).
		Order("published_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (r *blogRepository) ListByUser(ctx context.Context, userID uint) ([]*models.BlogPost, error) {
	var posts []*models.BlogPost
	err := r.applyPostDetails(r.db.WithContext(ctx)).
		Preload("User").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// Update writes the post only when it belongs to the given owner.
func (r *blogRepository) Update(ctx context.Context, post *models.BlogPost) error {
	// Struct updates go through field serializers, so images lands as JSON.
	// A column map would write the raw slice and brick subsequent reads.
	result := r.db.WithContext(ctx).
		Model(&models.BlogPost{}).
		Where("id = ? AND user_id = ?", post.ID, post.UserID).
		Select("title", "content", "excerpt", "cover_url", "images", "published", "published_at").
		Updates(post)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	cache.InvalidatePost(ctx, post.ID)
	return nil
}

func (r *blogRepository) Delete(ctx context.Context, id uint, userID uint) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.BlogPost{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	cache.InvalidatePost(ctx, id)
	return nil
}
