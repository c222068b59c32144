// Package bootstrap wires external resources for binaries that need the full
// runtime (DB, Redis, tracing, built-in seed data) without starting a server.
package bootstrap

import (
	"context"
	"fmt"

	"dananglover/internal/cache"
	"dananglover/internal/config"
	"dananglover/internal/database"
	"dananglover/internal/observability"
	"dananglover/internal/seed"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	SeedBuiltIns bool
}

// InitRuntime connects to DB and Redis, starts tracing when enabled, and
// optionally seeds the built-in place types. The returned shutdown func
// flushes the trace exporter and must be called on exit.
func InitRuntime(cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, func(context.Context) error, error) {
	// Connect DB
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	// Init Redis (may result in nil client if unreachable)
	cache.InitRedis(cfg.RedisURL)
	r := cache.GetClient()

	shutdownTracing, err := observability.InitTracing(observability.TracingConfig{
		ServiceName:    "danang-lover-api",
		ServiceVersion: "1.0.0",
		Environment:    cfg.Env,
		Enabled:        cfg.TracingEnabled,
		Exporter:       cfg.TracingExporter,
		OTLPEndpoint:   cfg.TracingEndpoint,
		SamplerRatio:   cfg.TracingSampleRatio,
	})
	if err != nil {
		return nil, nil, nil, fmt.Errorf("tracing init failed: %w", err)
	}

	if opts.SeedBuiltIns {
		if err := seed.PlaceTypes(db); err != nil {
			return nil, nil, nil, fmt.Errorf("failed to seed built-in place types: %w", err)
		}
	}

	return db, r, shutdownTracing, nil
}
