package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, "profiles", cfg.Database.Name)
	assert.Equal(t, "reviews.events", cfg.NATS.Subject)
	assert.Equal(t, 120*time.Second, cfg.Cache.UserReviewsTTL)
	assert.Equal(t, 300*time.Second, cfg.Cache.ProductTTL)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, time.Second, cfg.Worker.Debounce)
	assert.Equal(t, 10, cfg.Worker.BatchSize)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:8080"}, cfg.Server.AllowedOrigins)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("CACHE_TTL_USER_REVIEWS", "1m")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://shop.example.com , https://admin.example.com")
	t.Setenv("METRICS_ENABLED", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, time.Minute, cfg.Cache.UserReviewsTTL)
	assert.Equal(t, []string{"https://shop.example.com", "https://admin.example.com"}, cfg.Server.AllowedOrigins)
	assert.False(t, cfg.Metrics.Enabled)
}

func TestLoad_InvalidDuration(t *testing.T) {
	t.Setenv("SERVER_READ_TIMEOUT", "soon")

	cfg, err := Load()

	assert.Nil(t, cfg)
	assert.ErrorContains(t, err, "invalid SERVER_READ_TIMEOUT")
}

func TestLoad_ProductionRequiresSecret(t *testing.T) {
	t.Setenv("ENV", "production")

	_, err := Load()
	assert.Error(t, err)

	t.Setenv("JWT_SECRET", "a-real-secret")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "a-real-secret", cfg.Auth.JWTSecret)
}

func TestConfig_ConnectionStrings(t *testing.T) {
	cfg := &Config{
		Database: DatabaseConfig{
			Host:     "db",
			Port:     "5432",
			User:     "app",
			Password: "p@ss word",
			Name:     "profiles",
			SSLMode:  "disable",
		},
		Redis: RedisConfig{Host: "cache", Port: "6379"},
	}

	assert.Equal(t, "host=db port=5432 user=app password=p@ss word dbname=profiles sslmode=disable", cfg.GetDSN())
	assert.Equal(t, "postgres://app:p%40ss%20word@db:5432/profiles?sslmode=disable", cfg.GetDatabaseURL())
	assert.Equal(t, "cache:6379", cfg.GetRedisAddr())
}
