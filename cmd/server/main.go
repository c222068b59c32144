// Command main is the entry point for the Danang Lover backend server.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dananglover/internal/bootstrap"
	"dananglover/internal/config"
	"dananglover/internal/server"
)

// @title Danang Lover API
// @version 1.0
// @description Community guide to Da Nang with places, reviews, favorites and a blog

// @contact.name API Support
// @contact.email support@dananglover.dev

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8473
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Establish DB, Redis and tracing; seed the place-type lookup table
	db, redisClient, shutdownTracing, err := bootstrap.InitRuntime(cfg, bootstrap.Options{
		SeedBuiltIns: true,
	})
	if err != nil {
		log.Fatalf("Failed to initialize runtime: %v", err)
	}

	// Create server with dependency injection
	srv, err := server.NewServerWithDeps(cfg, db, redisClient)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down server...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Printf("Server resource shutdown error: %v", err)
		}
		if err := shutdownTracing(ctx); err != nil {
			log.Printf("Tracing shutdown error: %v", err)
		}
	}()

	// Start server (blocks until shutdown)
	log.Fatal(srv.Start())
}
