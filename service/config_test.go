package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	config, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8000", config.Port)
	assert.Equal(t, "./db/gearshelf.db", config.DBPath)
	assert.Equal(t, "https://api.asindataapi.com/request", config.Provider.APIBase)
	assert.Empty(t, config.Provider.APIKey)
	assert.Equal(t, 20*time.Second, config.Import.Timeout)
	assert.Equal(t, 50, config.Import.MaxReviews)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("PROVIDER_API_KEY", "test-key")
	t.Setenv("IMPORT_TIMEOUT_SECONDS", "5")
	t.Setenv("IMPORT_MAX_REVIEWS", "10")

	config, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9000", config.Port)
	assert.Equal(t, "test-key", config.Provider.APIKey)
	assert.Equal(t, 5*time.Second, config.Import.Timeout)
	assert.Equal(t, 10, config.Import.MaxReviews)
}

func TestLoadConfig_InvalidNumbersFallBack(t *testing.T) {
	t.Setenv("IMPORT_TIMEOUT_SECONDS", "soon")
	t.Setenv("IMPORT_MAX_REVIEWS", "-3")

	config, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 20*time.Second, config.Import.Timeout)
	assert.Equal(t, 50, config.Import.MaxReviews)
}
