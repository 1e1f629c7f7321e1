package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultDataSource is where the cleaned station dataset is read from.
const DefaultDataSource = "Dashboard/all_data.csv"

type AppConfig struct {
	AppEnv   string
	LogLevel slog.Level
	Port     string

	// DataSource is a file path or an s3://, http(s):// or sqlite:// location.
	DataSource string
	// SQLiteTable is the table read for sqlite:// sources.
	SQLiteTable string

	// ReloadInterval controls how often the dataset is re-read (0 = never).
	ReloadInterval time.Duration
	// HTTPTimeout bounds remote dataset downloads.
	HTTPTimeout time.Duration

	// Load history retention.
	HistoryMax    int           // max number of load records (0 = unlimited)
	HistoryMaxAge time.Duration // max age of load records (0 = unlimited)

	S3Endpoint        string
	S3AccessKeyID     string
	S3SecretAccessKey string
	S3Region          string
}

// Load reads configuration from the environment (and an optional .env file)
// with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "error", err)
	}
	cfg := &AppConfig{}

	cfg.AppEnv = getenvDefault("APP_ENV", "dev")
	switch cfg.AppEnv {
	case "dev", "prod":
	default:
		return nil, fmt.Errorf("invalid APP_ENV %q (allowed: dev, prod)", cfg.AppEnv)
	}

	level, err := ParseLogLevel(getenvDefault("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}
	cfg.LogLevel = level

	cfg.Port = getenvDefault("PORT", "8080")
	cfg.DataSource = getenvDefault("DATA_SOURCE", DefaultDataSource)
	cfg.SQLiteTable = getenvDefault("DATA_SQLITE_TABLE", "observations")

	if cfg.ReloadInterval, err = getenvDuration("RELOAD_INTERVAL", "0"); err != nil {
		return nil, err
	}
	if cfg.ReloadInterval < 0 {
		return nil, fmt.Errorf("invalid RELOAD_INTERVAL: must not be negative")
	}
	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", "30s"); err != nil {
		return nil, err
	}

	cfg.HistoryMax = getenvInt("DATASET_MAX_HISTORY", 20)
	if cfg.HistoryMaxAge, err = getenvDuration("DATASET_HISTORY_MAX_AGE", "0"); err != nil {
		return nil, err
	}

	cfg.S3Endpoint = getenvDefault("S3_ENDPOINT", "")
	cfg.S3AccessKeyID = getenvDefault("S3_ACCESS_KEY_ID", "")
	cfg.S3SecretAccessKey = getenvDefault("S3_SECRET_ACCESS_KEY", "")
	cfg.S3Region = getenvDefault("S3_REGION", "us-east-1")

	return cfg, nil
}

// ParseLogLevel maps a LOG_LEVEL value to a slog level.
func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid LOG_LEVEL %q (allowed: debug, info, warn, error)", s)
	}
}

func getenvDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	s := getenvDefault(key, def)
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
