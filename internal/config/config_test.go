package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	// Clear anything the environment may carry; envconfig falls back to the
	// struct-tag default when the variable is empty
	t.Setenv("PORT", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DATABASE_NAME", "")
	t.Setenv("LOG_LEVEL", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, 30, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "mongodb://localhost:27017", cfg.Mongo.URI)
	assert.Equal(t, "coupons", cfg.Mongo.Name)
	assert.Equal(t, 5, cfg.Mongo.MaxRetries)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Log.Pretty)
}

func TestLoad_CustomValues(t *testing.T) {
	// Use t.Setenv which auto-restores after test
	t.Setenv("PORT", "9000")
	t.Setenv("SHUTDOWN_TIMEOUT", "60")
	t.Setenv("DATABASE_URL", "mongodb://db.example.com:27017")
	t.Setenv("DATABASE_NAME", "coupons_prod")
	t.Setenv("DATABASE_MAX_RETRIES", "3")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_PRETTY", "true")

	cfg, err := Load()
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, 60, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "mongodb://db.example.com:27017", cfg.Mongo.URI)
	assert.Equal(t, "coupons_prod", cfg.Mongo.Name)
	assert.Equal(t, 3, cfg.Mongo.MaxRetries)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Log.Pretty)
}

func TestLoad_PartialOverride(t *testing.T) {
	// Only override some values, leave others as default
	t.Setenv("PORT", "3001")
	t.Setenv("DATABASE_NAME", "custom_db")

	cfg, err := Load()
	require.NoError(t, err)
	require.NotNil(t, cfg)

	// Overridden values
	assert.Equal(t, "3001", cfg.Server.Port)
	assert.Equal(t, "custom_db", cfg.Mongo.Name)

	// Default values should still work
	assert.Equal(t, 30, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "mongodb://localhost:27017", cfg.Mongo.URI)
	assert.Equal(t, "info", cfg.Log.Level)
}
