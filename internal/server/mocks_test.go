package server

import (
	"context"

	"dananglover/internal/config"
	"dananglover/internal/models"
	"dananglover/internal/service"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock of the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Upsert(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// MockPlaceRepository is a mock of the PlaceRepository interface
type MockPlaceRepository struct {
	mock.Mock
}

func (m *MockPlaceRepository) Create(ctx context.Context, place *models.Place) error {
	args := m.Called(ctx, place)
	return args.Error(0)
}

func (m *MockPlaceRepository) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Place, error) {
	args := m.Called(ctx, id, currentUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Place), args.Error(1)
}

func (m *MockPlaceRepository) List(ctx context.Context, limit, offset int, placeTypeID uint, currentUserID uint) ([]*models.Place, int64, error) {
	args := m.Called(ctx, limit, offset, placeTypeID, currentUserID)
	return args.Get(0).([]*models.Place), args.Get(1).(int64), args.Error(2)
}

func (m *MockPlaceRepository) Update(ctx context.Context, place *models.Place) error {
	args := m.Called(ctx, place)
	return args.Error(0)
}

func (m *MockPlaceRepository) Delete(ctx context.Context, id uint, userID uint) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

func (m *MockPlaceRepository) RecomputeRating(ctx context.Context, placeID uint) error {
	args := m.Called(ctx, placeID)
	return args.Error(0)
}

func (m *MockPlaceRepository) IsFavorited(ctx context.Context, userID, placeID uint) (bool, error) {
	args := m.Called(ctx, userID, placeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockPlaceRepository) Favorite(ctx context.Context, userID, placeID uint) error {
	args := m.Called(ctx, userID, placeID)
	return args.Error(0)
}

func (m *MockPlaceRepository) Unfavorite(ctx context.Context, userID, placeID uint) error {
	args := m.Called(ctx, userID, placeID)
	return args.Error(0)
}

func (m *MockPlaceRepository) ListFavorites(ctx context.Context, userID uint) ([]*models.Place, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]*models.Place), args.Error(1)
}

func (m *MockPlaceRepository) ListPlaceTypes(ctx context.Context) ([]*models.PlaceType, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.PlaceType), args.Error(1)
}

// MockReviewRepository is a mock of the ReviewRepository interface
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Create(ctx context.Context, review *models.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *MockReviewRepository) GetByID(ctx context.Context, id uint) (*models.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *MockReviewRepository) ListByPlace(ctx context.Context, placeID uint) ([]*models.Review, error) {
	args := m.Called(ctx, placeID)
	return args.Get(0).([]*models.Review), args.Error(1)
}

func (m *MockReviewRepository) Delete(ctx context.Context, id uint, userID uint) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

// MockBlogRepository is a mock of the BlogRepository interface
type MockBlogRepository struct {
	mock.Mock
}

func (m *MockBlogRepository) Create(ctx context.Context, post *models.BlogPost) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockBlogRepository) GetByID(ctx context.Context, id uint) (*models.BlogPost, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BlogPost), args.Error(1)
}

func (m *MockBlogRepository) ListPublished(ctx context.Context, limit, offset int) ([]*models.BlogPost, int64, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]*models.BlogPost), args.Get(1).(int64), args.Error(2)
}

func (m *MockBlogRepository) ListByUser(ctx context.Context, userID uint) ([]*models.BlogPost, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]*models.BlogPost), args.Error(1)
}

func (m *MockBlogRepository) Update(ctx context.Context, post *models.BlogPost) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockBlogRepository) Delete(ctx context.Context, id uint, userID uint) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

// MockCommentRepository is a mock of the CommentRepository interface
type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) ListByPost(ctx context.Context, postID uint) ([]*models.Comment, error) {
	args := m.Called(ctx, postID)
	return args.Get(0).([]*models.Comment), args.Error(1)
}

func (m *MockCommentRepository) Delete(ctx context.Context, id uint, postID uint, userID uint) error {
	args := m.Called(ctx, id, postID, userID)
	return args.Error(0)
}

// fakeMedia satisfies service.MediaUploader without touching the filesystem.
type fakeMedia struct{}

func (fakeMedia) Upload(_ context.Context, in service.UploadMediaInput) (*service.StoredFile, error) {
	return &service.StoredFile{URL: "/media/" + in.Bucket + "/" + in.Filename}, nil
}

func (fakeMedia) MaxUploadBytes() int64 { return 10 << 20 }

// testServerDeps bundles the mocks behind a Server wired with real services.
type testServerDeps struct {
	userRepo    *MockUserRepository
	placeRepo   *MockPlaceRepository
	reviewRepo  *MockReviewRepository
	blogRepo    *MockBlogRepository
	commentRepo *MockCommentRepository
}

func newTestServer() (*Server, *testServerDeps) {
	deps := &testServerDeps{
		userRepo:    new(MockUserRepository),
		placeRepo:   new(MockPlaceRepository),
		reviewRepo:  new(MockReviewRepository),
		blogRepo:    new(MockBlogRepository),
		commentRepo: new(MockCommentRepository),
	}

	s := &Server{
		config:      &config.Config{JWTSecret: "test-secret", Env: "test"},
		userRepo:    deps.userRepo,
		placeRepo:   deps.placeRepo,
		reviewRepo:  deps.reviewRepo,
		blogRepo:    deps.blogRepo,
		commentRepo: deps.commentRepo,
	}
	s.placeService = service.NewPlaceService(deps.placeRepo, deps.reviewRepo, fakeMedia{})
	s.blogService = service.NewBlogService(deps.blogRepo, deps.commentRepo, fakeMedia{})
	s.userService = service.NewUserService(deps.userRepo)
	return s, deps
}
