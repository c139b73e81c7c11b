package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("MONGODB_URI", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("ENVIRONMENT", "")

	cfg := Load()
	assert.Equal(t, "8009", cfg.Port)
	assert.Equal(t, "mongodb://localhost:27017/luminawell", cfg.MongoURI)
	assert.Empty(t, cfg.AuthSecret)
	assert.Equal(t, "development", cfg.Environment)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("MONGODB_URI", "mongodb://db:27017/wellness")
	t.Setenv("JWT_SECRET", "super-secret")
	t.Setenv("ENVIRONMENT", "production")

	cfg := Load()
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "mongodb://db:27017/wellness", cfg.MongoURI)
	assert.Equal(t, "super-secret", cfg.AuthSecret)
	assert.Equal(t, "production", cfg.Environment)
}
