// Command main runs the database seeder for Danang Lover.
package main

import (
	"flag"
	"log"

	"dananglover/internal/config"
	"dananglover/internal/database"
	"dananglover/internal/seed"
)

func main() {
	// Parse command line flags
	numUsers := flag.Int("users", 10, "Number of users to create")
	numPlaces := flag.Int("places", 30, "Number of places to create")
	numPosts := flag.Int("posts", 15, "Number of blog posts to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	log.Println("🌱 Database Seeder")
	log.Println("==================")
	log.Printf("Target: %d users, %d places, %d posts, clean=%v\n",
		*numUsers, *numPlaces, *numPosts, *shouldClean)

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	if _, err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run seeder
	if err := seed.Run(database.DB, seed.Options{
		NumUsers:    *numUsers,
		NumPlaces:   *numPlaces,
		NumPosts:    *numPosts,
		ShouldClean: *shouldClean,
	}); err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}

	log.Println("✨ All done! Your database is now populated with demo data.")
	log.Println("📧 All demo users have the password: demo-password-1")
}
