package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8000", cfg.Server.Addr)
	assert.Equal(t, "storeseed.db", cfg.Storage.Path)
	assert.Equal(t, 10, cfg.Seeder.Baseline)
	assert.Equal(t, 10, cfg.Seeder.PollAttempts)
	assert.Equal(t, time.Second, cfg.Seeder.PollInterval)
	assert.Equal(t, 50, cfg.Seeder.ClearPageSize)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("STORESEED_HTTP_ADDR", ":9000")
	t.Setenv("STORESEED_DB_PATH", "/tmp/audit.db")
	t.Setenv("STORESEED_BASELINE", "25")
	t.Setenv("STORESEED_POLL_ATTEMPTS", "5")
	t.Setenv("STORESEED_POLL_INTERVAL_MS", "250")
	t.Setenv("STORESEED_CLEAR_PAGE_SIZE", "100")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, "/tmp/audit.db", cfg.Storage.Path)
	assert.Equal(t, 25, cfg.Seeder.Baseline)
	assert.Equal(t, 5, cfg.Seeder.PollAttempts)
	assert.Equal(t, 250*time.Millisecond, cfg.Seeder.PollInterval)
	assert.Equal(t, 100, cfg.Seeder.ClearPageSize)
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"non-numeric baseline", "STORESEED_BASELINE", "many"},
		{"negative baseline", "STORESEED_BASELINE", "-1"},
		{"zero poll attempts", "STORESEED_POLL_ATTEMPTS", "0"},
		{"zero poll interval", "STORESEED_POLL_INTERVAL_MS", "0"},
		{"oversized page", "STORESEED_CLEAR_PAGE_SIZE", "500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
