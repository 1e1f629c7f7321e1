package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"APP_ENV", "LOG_LEVEL", "PORT", "DATA_SOURCE", "DATA_SQLITE_TABLE",
		"RELOAD_INTERVAL", "HTTP_TIMEOUT", "DATASET_MAX_HISTORY", "DATASET_HISTORY_MAX_AGE",
		"S3_ENDPOINT", "S3_ACCESS_KEY_ID", "S3_SECRET_ACCESS_KEY", "S3_REGION",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "dev", cfg.AppEnv)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, DefaultDataSource, cfg.DataSource)
	assert.Equal(t, "observations", cfg.SQLiteTable)
	assert.Zero(t, cfg.ReloadInterval)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 20, cfg.HistoryMax)
	assert.Equal(t, "us-east-1", cfg.S3Region)
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_ENV", "prod")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("DATA_SOURCE", "s3://air/all_data.csv.zst")
	t.Setenv("RELOAD_INTERVAL", "15m")
	t.Setenv("DATASET_MAX_HISTORY", "5")
	t.Setenv("S3_ENDPOINT", "http://localhost:9000")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "prod", cfg.AppEnv)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, "s3://air/all_data.csv.zst", cfg.DataSource)
	assert.Equal(t, 15*time.Minute, cfg.ReloadInterval)
	assert.Equal(t, 5, cfg.HistoryMax)
	assert.Equal(t, "http://localhost:9000", cfg.S3Endpoint)
}

func TestLoadInvalid(t *testing.T) {
	cases := map[string]string{
		"APP_ENV":         "staging",
		"LOG_LEVEL":       "loud",
		"RELOAD_INTERVAL": "-1m",
		"HTTP_TIMEOUT":    "soon",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, value)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	lvl, err := ParseLogLevel(" warning ")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, lvl)

	_, err = ParseLogLevel("trace")
	assert.Error(t, err)
}
