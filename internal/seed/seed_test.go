package seed

import (
	"testing"

	"dananglover/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupSeedDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.PlaceType{},
		&models.Place{},
		&models.Review{},
		&models.Favorite{},
		&models.BlogPost{},
		&models.Comment{},
	))
	return db
}

func TestBuiltInPlaceTypesParse(t *testing.T) {
	defs, err := BuiltInPlaceTypes()
	require.NoError(t, err)
	assert.NotEmpty(t, defs)
	for _, def := range defs {
		assert.NotEmpty(t, def.Name)
		assert.NotEmpty(t, def.Description)
	}
}

func TestPlaceTypesIdempotent(t *testing.T) {
	db := setupSeedDB(t)

	require.NoError(t, PlaceTypes(db))
	var first int64
	db.Model(&models.PlaceType{}).Count(&first)
	assert.Greater(t, first, int64(0))

	require.NoError(t, PlaceTypes(db))
	var second int64
	db.Model(&models.PlaceType{}).Count(&second)
	assert.Equal(t, first, second)
}

func TestRunSeedsContent(t *testing.T) {
	db := setupSeedDB(t)

	require.NoError(t, Run(db, Options{NumUsers: 3, NumPlaces: 4, NumPosts: 2}))

	var users, places, posts int64
	db.Model(&models.User{}).Count(&users)
	db.Model(&models.Place{}).Count(&places)
	db.Model(&models.BlogPost{}).Count(&posts)
	assert.Equal(t, int64(3), users)
	assert.Equal(t, int64(4), places)
	assert.Equal(t, int64(2), posts)

	// Aggregates match the actual review rows
	var checked []models.Place
	require.NoError(t, db.Find(&checked).Error)
	for _, place := range checked {
		var reviews int64
		db.Model(&models.Review{}).Where("place_id = ?", place.ID).Count(&reviews)
		if reviews > 0 {
			assert.Equal(t, int(reviews), place.ReviewsCount)
			assert.GreaterOrEqual(t, place.Rating, 1.0)
			assert.LessOrEqual(t, place.Rating, 5.0)
		}
	}
}

func TestFactoryCreateUserOverride(t *testing.T) {
	db := setupSeedDB(t)
	f := NewFactory(db)

	user, err := f.CreateUser(func(u *models.User) {
		u.Email = "fixed@example.com"
	})
	require.NoError(t, err)
	assert.Equal(t, "fixed@example.com", user.Email)
	assert.NotEmpty(t, user.Name)
}
