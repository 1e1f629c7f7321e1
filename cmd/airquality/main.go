package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/i474232898/air-quality-dashboard/internal/airquality"
	"github.com/i474232898/air-quality-dashboard/internal/config"
	"github.com/i474232898/air-quality-dashboard/internal/dataset"
	"github.com/i474232898/air-quality-dashboard/internal/logging"
	"github.com/i474232898/air-quality-dashboard/internal/store"
)

const appName = "air-quality-dashboard"

var cfg *config.AppConfig

var rootCmd = &cobra.Command{
	Use:   "airquality",
	Short: "Air quality dashboard for a single monitoring station",
	Long: `airquality serves an interactive dashboard of historical pollutant
measurements (PM2.5, PM10, SO2, NO2, CO, O3) filtered by year, temperature,
pressure and rainfall, and prints the same charts from the command line.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if source, _ := cmd.Flags().GetString("source"); source != "" {
			cfg.DataSource = source
		}
		slog.SetDefault(logging.New(os.Stderr, cfg, appName))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("source", "", "dataset location (overrides DATA_SOURCE)")
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newService builds the dataset source, the in-memory store and the service
// from the loaded configuration. The dataset is not loaded yet.
func newService(cfg *config.AppConfig) (*airquality.Service, error) {
	source, err := dataset.Open(cfg.DataSource, dataset.Options{
		HTTPClient:  &http.Client{Timeout: cfg.HTTPTimeout},
		SQLiteTable: cfg.SQLiteTable,
		S3: dataset.S3Config{
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
			Region:          cfg.S3Region,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset source: %w", err)
	}

	memStore := store.NewMemoryStore(cfg.HistoryMax, cfg.HistoryMaxAge)
	return airquality.NewService(memStore, source), nil
}
