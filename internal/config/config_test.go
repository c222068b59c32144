package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validConfig() *Config {
	return &Config{
		Port:             "8473",
		JWTSecret:        "a-development-secret-that-is-long-enough",
		DBPassword:       "password",
		MediaMaxUploadMB: 10,
		Env:              "development",
	}
}

func TestConfigValidate(t *testing.T) {
	t.Run("valid development config", func(t *testing.T) {
		assert.NoError(t, validConfig().Validate())
	})

	t.Run("missing port", func(t *testing.T) {
		cfg := validConfig()
		cfg.Port = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("missing jwt secret", func(t *testing.T) {
		cfg := validConfig()
		cfg.JWTSecret = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("non-positive upload ceiling", func(t *testing.T) {
		cfg := validConfig()
		cfg.MediaMaxUploadMB = 0
		assert.Error(t, cfg.Validate())
	})

	t.Run("production rejects default secret", func(t *testing.T) {
		cfg := validConfig()
		cfg.Env = "production"
		cfg.JWTSecret = "your-secret-key-change-in-production"
		cfg.DBPassword = "something-strong"
		assert.Error(t, cfg.Validate())
	})

	t.Run("production rejects short secret", func(t *testing.T) {
		cfg := validConfig()
		cfg.Env = "production"
		cfg.JWTSecret = "short"
		cfg.DBPassword = "something-strong"
		assert.Error(t, cfg.Validate())
	})

	t.Run("production rejects default db password", func(t *testing.T) {
		cfg := validConfig()
		cfg.Env = "production"
		cfg.JWTSecret = "a-very-long-production-secret-value-0123456789"
		cfg.DBPassword = "password"
		assert.Error(t, cfg.Validate())
	})

	t.Run("valid production config", func(t *testing.T) {
		cfg := validConfig()
		cfg.Env = "production"
		cfg.JWTSecret = "a-very-long-production-secret-value-0123456789"
		cfg.DBPassword = "something-strong"
		cfg.DBSSLMode = "require"
		assert.NoError(t, cfg.Validate())
	})
}
