package repository

import (
	"context"
	"regexp"
	"testing"

	"dananglover/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

func TestUserRepository_GetByID(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	tests := []struct {
		name          string
		userID        uint
		mockBehavior  func()
		expectedEmail string
		expectedError bool
	}{
		{
			name:   "Success",
			userID: 1,
			mockBehavior: func() {
				rows := sqlmock.NewRows([]string{"id", "email", "name"}).
					AddRow(1, "linh@example.com", "Linh")
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" = $1 AND "users"."deleted_at" IS NULL ORDER BY "users"."id" LIMIT $2`)).
					WithArgs(1, 1).
					WillReturnRows(rows)
			},
			expectedEmail: "linh@example.com",
		},
		{
			name:   "Not Found",
			userID: 99,
			mockBehavior: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" = $1 AND "users"."deleted_at" IS NULL ORDER BY "users"."id" LIMIT $2`)).
					WithArgs(99, 1).
					WillReturnError(gorm.ErrRecordNotFound)
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockBehavior()

			user, err := repo.GetByID(ctx, tt.userID)
			if tt.expectedError {
				assert.Error(t, err)
				assert.Nil(t, user)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expectedEmail, user.Email)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_GetByEmail(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	rows := sqlmock.NewRows([]string{"id", "email", "name"}).
		AddRow(2, "chi@example.com", "Chi")
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE email = $1 AND "users"."deleted_at" IS NULL ORDER BY "users"."id" LIMIT $2`)).
		WithArgs("chi@example.com", 1).
		WillReturnRows(rows)

	user, err := repo.GetByEmail(ctx, "chi@example.com")
	require.NoError(t, err)
	assert.Equal(t, uint(2), user.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Upsert(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	t.Run("InsertsWhenMissing", func(t *testing.T) {
		user := &models.User{Email: "new@example.com", Password: "x", Name: "New"}
		require.NoError(t, repo.Upsert(ctx, user))
		assert.NotZero(t, user.ID)
	})

	t.Run("UpdatesWhenPresent", func(t *testing.T) {
		user := &models.User{Email: "upd@example.com", Password: "x", Name: "Old Name"}
		require.NoError(t, db.Create(user).Error)

		user.Name = "New Name"
		user.AvatarURL = "/media/blog-images/avatar.webp"
		require.NoError(t, repo.Upsert(ctx, user))

		fetched, err := repo.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, "New Name", fetched.Name)
		assert.Equal(t, "/media/blog-images/avatar.webp", fetched.AvatarURL)
		assert.Equal(t, "upd@example.com", fetched.Email)
	})
}
