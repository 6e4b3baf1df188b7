package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("ENVIRONMENT", "")
	t.Setenv("SERVER_PORT", "")
	t.Setenv("BASE_URL", "")
	t.Setenv("SHORT_CODE_LENGTH", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.ServerPort)
	assert.Equal(t, "http://localhost:5000", cfg.BaseURL)
	assert.Equal(t, 8, cfg.ShortCodeLength)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SHORT_CODE_LENGTH", "10")
	t.Setenv("BASE_URL", "https://sho.rt")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, 10, cfg.ShortCodeLength)
	assert.Equal(t, "https://sho.rt", cfg.BaseURL)
}

func TestValidateRejectsBadCodeLength(t *testing.T) {
	t.Setenv("SHORT_CODE_LENGTH", "2")

	_, err := LoadConfig()
	assert.Error(t, err)

	t.Setenv("SHORT_CODE_LENGTH", "20")

	_, err = LoadConfig()
	assert.Error(t, err)
}

func TestValidateRequiresProductionPassword(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("DB_PASSWORD", "")

	_, err := LoadConfig()
	assert.Error(t, err)
}
