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
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, "http://localhost:5173", cfg.App.Origin)
	assert.Equal(t, ".roomify.site", cfg.App.HostedSuffix)
	assert.Equal(t, "/worker-api", cfg.Worker.ProxyPrefix)
	assert.Equal(t, 120*time.Second, cfg.Render.Timeout)
	assert.Equal(t, 768, cfg.Render.MaxDim)
	assert.False(t, cfg.Render.Disabled)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("WORKER_BASE_URL", "https://worker.roomify.site")
	t.Setenv("WORKER_RATE_PER_SECOND", "2.5")
	t.Setenv("RENDER_TIMEOUT", "90s")
	t.Setenv("RENDER_DISABLED", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.Equal(t, "https://worker.roomify.site", cfg.Worker.BaseURL)
	assert.Equal(t, 2.5, cfg.Worker.RatePerSecond)
	assert.Equal(t, 90*time.Second, cfg.Render.Timeout)
	assert.True(t, cfg.Render.Disabled)
}

func TestLoad_InvalidValuesFallBackToDefaults(t *testing.T) {
	t.Setenv("REDIS_DB", "not-a-number")
	t.Setenv("RENDER_TIMEOUT", "soon")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 0, cfg.Redis.DB)
	assert.Equal(t, 120*time.Second, cfg.Render.Timeout)
}

func TestValidate(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	cfg.Redis.Addr = ""
	assert.Error(t, cfg.Validate())

	cfg.Redis.Addr = "localhost:6379"
	cfg.Render.Timeout = 0
	assert.Error(t, cfg.Validate())
}
