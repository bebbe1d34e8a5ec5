package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/icare-app/icare-server/internal/config"
)

func TestLoad(t *testing.T) {
	t.Run("requires JWT secret", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")

		_, err := config.Load()
		assert.Error(t, err)
	})

	t.Run("defaults", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "secret")

		cfg, err := config.Load()
		require.NoError(t, err)

		assert.Equal(t, "8080", cfg.Port)
		assert.Equal(t, "development", cfg.Environment)
		assert.Equal(t, 168, cfg.JWTExpirationHours)
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "secret")
		t.Setenv("PORT", "9000")
		t.Setenv("JWT_EXPIRATION_HOURS", "24")

		cfg, err := config.Load()
		require.NoError(t, err)

		assert.Equal(t, "9000", cfg.Port)
		assert.Equal(t, 24, cfg.JWTExpirationHours)
	})

	t.Run("non-numeric expiration falls back to default", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "secret")
		t.Setenv("JWT_EXPIRATION_HOURS", "soon")

		cfg, err := config.Load()
		require.NoError(t, err)

		assert.Equal(t, 168, cfg.JWTExpirationHours)
	})
}
