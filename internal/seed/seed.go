package seed

import (
	"context"
	"fmt"
	"log"

	"dananglover/internal/models"
	"dananglover/internal/repository"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPlaces   int
	NumPosts    int
	ShouldClean bool
}

// Run populates the database with demo content: users, places with reviews
// and favorites, and blog posts with comments.
func Run(db *gorm.DB, opts Options) error {
	if opts.NumUsers <= 0 {
		opts.NumUsers = 10
	}
	if opts.NumPlaces <= 0 {
		opts.NumPlaces = 30
	}
	if opts.NumPosts <= 0 {
		opts.NumPosts = 15
	}

	if opts.ShouldClean {
		if err := Clean(db); err != nil {
			return fmt.Errorf("clean: %w", err)
		}
	}

	if err := PlaceTypes(db); err != nil {
		return err
	}

	var placeTypes []*models.PlaceType
	if err := db.Find(&placeTypes).Error; err != nil {
		return err
	}

	f := NewFactory(db)
	ctx := context.Background()
	placeRepo := repository.NewPlaceRepository(db)

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user, err := f.CreateUser()
		if err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		users = append(users, user)
	}
	log.Printf("Seeded %d users", len(users))

	places := make([]*models.Place, 0, opts.NumPlaces)
	for i := 0; i < opts.NumPlaces; i++ {
		owner := users[f.r.Intn(len(users))]
		placeType := placeTypes[f.r.Intn(len(placeTypes))]
		place, err := f.CreatePlace(owner, placeType)
		if err != nil {
			return fmt.Errorf("create place: %w", err)
		}
		places = append(places, place)

		// A few reviews and favorites per place, then fix up the aggregates
		for _, user := range users {
			if f.r.Intn(3) == 0 {
				if _, err := f.CreateReview(user, place); err != nil {
					return fmt.Errorf("create review: %w", err)
				}
			}
			if f.r.Intn(4) == 0 {
				if err := placeRepo.Favorite(ctx, user.ID, place.ID); err != nil {
					return fmt.Errorf("create favorite: %w", err)
				}
			}
		}
		if err := placeRepo.RecomputeRating(ctx, place.ID); err != nil {
			return fmt.Errorf("recompute rating: %w", err)
		}
	}
	log.Printf("Seeded %d places", len(places))

	posts := 0
	for i := 0; i < opts.NumPosts; i++ {
		author := users[f.r.Intn(len(users))]
		post, err := f.CreateBlogPost(author)
		if err != nil {
			return fmt.Errorf("create post: %w", err)
		}
		posts++

		if post.Published {
			for _, user := range users {
				if f.r.Intn(4) == 0 {
					if _, err := f.CreateComment(user, post); err != nil {
						return fmt.Errorf("create comment: %w", err)
					}
				}
			}
		}
	}
	log.Printf("Seeded %d blog posts", posts)

	return nil
}

// Clean removes all seeded content. Place types survive since they are
// part of the permanent catalog.
func Clean(db *gorm.DB) error {
	tables := []string{"comments", "blog_posts", "favorites", "reviews", "places", "users"}
	for _, table := range tables {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("clean %s: %w", table, err)
		}
	}
	return nil
}
