// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development and testing only.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"dananglover/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db *gorm.DB
	r  *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db: db,
		r:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// spreadCreatedAt returns a timestamp up to maxDays in the past for a
// realistic feed.
func (f *Factory) spreadCreatedAt(maxDays int) time.Time {
	if maxDays <= 0 {
		maxDays = 90
	}
	daysBack := f.r.Intn(maxDays)
	hoursBack := f.r.Intn(24)
	minsBack := f.r.Intn(60)
	return time.Now().Add(-time.Duration(daysBack)*24*time.Hour -
		time.Duration(hoursBack)*time.Hour -
		time.Duration(minsBack)*time.Minute)
}

// CreateUser constructs and persists a sample user.
// Optional override functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("demo-password-1"), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:     gofakeit.Email(),
		Password:  string(hashed),
		Name:      gofakeit.Name(),
		AvatarURL: fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
	}
	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

var priceRanges = []string{
	"under 30k VND", "30k-80k VND", "80k-150k VND", "150k-300k VND", "300k+ VND",
}

var districts = []string{
	"Hai Chau", "Son Tra", "Ngu Hanh Son", "Thanh Khe", "Lien Chieu", "Cam Le",
}

// CreatePlace constructs and persists a sample place owned by user.
func (f *Factory) CreatePlace(user *models.User, placeType *models.PlaceType, overrides ...func(*models.Place)) (*models.Place, error) {
	place := &models.Place{
		Name:        gofakeit.Company(),
		Description: gofakeit.Paragraph(1, 3, 8, "\n"),
		Price:       priceRanges[f.r.Intn(len(priceRanges))],
		Location: fmt.Sprintf("%s %s, %s, Da Nang",
			gofakeit.StreetNumber(), gofakeit.StreetName(), districts[f.r.Intn(len(districts))]),
		Photos: []string{
			fmt.Sprintf("https://picsum.photos/seed/%s/1200/800", gofakeit.UUID()),
			fmt.Sprintf("https://picsum.photos/seed/%s/1200/800", gofakeit.UUID()),
		},
		PlaceTypeID: placeType.ID,
		UserID:      user.ID,
		CreatedAt:   f.spreadCreatedAt(180),
	}
	for _, override := range overrides {
		override(place)
	}

	if err := f.db.Create(place).Error; err != nil {
		return nil, err
	}
	return place, nil
}

// CreateReview constructs and persists a sample review on place by user.
func (f *Factory) CreateReview(user *models.User, place *models.Place, overrides ...func(*models.Review)) (*models.Review, error) {
	review := &models.Review{
		PlaceID:   place.ID,
		UserID:    user.ID,
		Rating:    gofakeit.Number(1, 5),
		Content:   gofakeit.Sentence(12),
		CreatedAt: f.spreadCreatedAt(60),
	}
	for _, override := range overrides {
		override(review)
	}

	if err := f.db.Create(review).Error; err != nil {
		return nil, err
	}
	return review, nil
}

// CreateBlogPost constructs and persists a sample blog post by user.
// Roughly four out of five generated posts are published.
func (f *Factory) CreateBlogPost(user *models.User, overrides ...func(*models.BlogPost)) (*models.BlogPost, error) {
	content := fmt.Sprintf("# %s\n\n%s\n\n## %s\n\n%s",
		gofakeit.Sentence(4),
		gofakeit.Paragraph(2, 4, 10, "\n\n"),
		gofakeit.Sentence(3),
		gofakeit.Paragraph(2, 4, 10, "\n\n"))

	post := &models.BlogPost{
		Title:     gofakeit.Sentence(5),
		Content:   content,
		CoverURL:  fmt.Sprintf("https://picsum.photos/seed/%s/1600/900", gofakeit.UUID()),
		UserID:    user.ID,
		CreatedAt: f.spreadCreatedAt(120),
	}
	if f.r.Intn(5) != 0 {
		publishedAt := post.CreatedAt.Add(time.Duration(f.r.Intn(48)) * time.Hour)
		post.Published = true
		post.PublishedAt = &publishedAt
	}
	for _, override := range overrides {
		override(post)
	}

	if err := f.db.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// CreateComment constructs and persists a sample comment on post by user.
func (f *Factory) CreateComment(user *models.User, post *models.BlogPost, overrides ...func(*models.Comment)) (*models.Comment, error) {
	comment := &models.Comment{
		PostID:    post.ID,
		UserID:    user.ID,
		Content:   gofakeit.Sentence(10),
		CreatedAt: f.spreadCreatedAt(30),
	}
	for _, override := range overrides {
		override(comment)
	}

	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}
