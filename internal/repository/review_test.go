package repository

import (
	"context"
	"testing"
	"time"

	"dananglover/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestReviewRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReviewRepository(db)
	ctx := context.Background()

	owner := &models.User{Email: "owner@example.com", Password: "x", Name: "Owner"}
	visitor := &models.User{Email: "visitor@example.com", Password: "x", Name: "Visitor"}
	db.Create(owner)
	db.Create(visitor)

	placeType := &models.PlaceType{Name: "restaurant", Description: "Restaurant"}
	db.Create(placeType)
	place := seedPlace(t, db, owner.ID, placeType.ID, "Madame Lan")

	t.Run("CreateAndListNewestFirst", func(t *testing.T) {
		older := &models.Review{PlaceID: place.ID, UserID: owner.ID, Rating: 4, Content: "solid"}
		require.NoError(t, repo.Create(ctx, older))
		db.Model(older).Update("created_at", time.Now().Add(-time.Minute))

		require.NoError(t, repo.Create(ctx, &models.Review{
			PlaceID: place.ID, UserID: visitor.ID, Rating: 5, Content: "amazing mi quang",
		}))

		reviews, err := repo.ListByPlace(ctx, place.ID)
		require.NoError(t, err)
		require.Len(t, reviews, 2)
		assert.Equal(t, "Visitor", reviews[0].User.Name)
	})

	t.Run("GetByID", func(t *testing.T) {
		review := &models.Review{PlaceID: place.ID, UserID: visitor.ID, Rating: 3, Content: "busy"}
		require.NoError(t, repo.Create(ctx, review))

		fetched, err := repo.GetByID(ctx, review.ID)
		require.NoError(t, err)
		assert.Equal(t, place.ID, fetched.PlaceID)
		assert.Equal(t, 3, fetched.Rating)
	})

	t.Run("DeleteOwnerScoped", func(t *testing.T) {
		review := &models.Review{PlaceID: place.ID, UserID: visitor.ID, Rating: 2, Content: "meh"}
		require.NoError(t, repo.Create(ctx, review))

		err := repo.Delete(ctx, review.ID, owner.ID)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

		require.NoError(t, repo.Delete(ctx, review.ID, visitor.ID))
		_, err = repo.GetByID(ctx, review.ID)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})
}
