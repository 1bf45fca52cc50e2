package config_test

import (
	"testing"
	"time"

	"github.com/rei/cms-backend/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 7*24*time.Hour, cfg.SessionDuration)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_SessionDuration(t *testing.T) {
	t.Setenv("SESSION_DURATION_DAYS", "30")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, 30*24*time.Hour, cfg.SessionDuration)
}

func TestLoad_RejectsNonPositiveDuration(t *testing.T) {
	t.Setenv("SESSION_DURATION_DAYS", "0")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestIsProduction(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
}
