package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/i474232898/air-quality-dashboard/internal/airquality"
)

var chartsCmd = &cobra.Command{
	Use:   "charts",
	Short: "Print the dashboard charts",
	Long: `Load the dataset, apply the bound flags (unset bounds default to the
dataset domain) and print every chart, or a single one with --chart.`,
	RunE: runCharts,
}

// boundFlags maps flag names to the bound they override.
var boundFlags = []struct {
	name  string
	usage string
	dst   func(*airquality.BoundsOverride) **int
}{
	{"year-min", "lowest year", func(o *airquality.BoundsOverride) **int { return &o.YearMin }},
	{"year-max", "highest year", func(o *airquality.BoundsOverride) **int { return &o.YearMax }},
	{"temp-min", "lowest temperature", func(o *airquality.BoundsOverride) **int { return &o.TempMin }},
	{"temp-max", "highest temperature", func(o *airquality.BoundsOverride) **int { return &o.TempMax }},
	{"pres-min", "lowest pressure", func(o *airquality.BoundsOverride) **int { return &o.PresMin }},
	{"pres-max", "highest pressure", func(o *airquality.BoundsOverride) **int { return &o.PresMax }},
	{"rain-min", "lowest rainfall", func(o *airquality.BoundsOverride) **int { return &o.RainMin }},
	{"rain-max", "highest rainfall", func(o *airquality.BoundsOverride) **int { return &o.RainMax }},
}

func init() {
	for _, f := range boundFlags {
		chartsCmd.Flags().Int(f.name, 0, f.usage)
	}
	chartsCmd.Flags().String("chart", "", "print only this chart ("+strings.Join(airquality.ChartIDs(), ", ")+")")
	chartsCmd.Flags().String("format", "json", "output format: json or csv (csv needs --chart)")
	rootCmd.AddCommand(chartsCmd)
}

func runCharts(cmd *cobra.Command, args []string) error {
	chartID, _ := cmd.Flags().GetString("chart")
	format, _ := cmd.Flags().GetString("format")
	format = strings.ToLower(format)
	switch format {
	case "json":
	case "csv":
		if chartID == "" {
			return fmt.Errorf("--format csv requires --chart")
		}
	default:
		return fmt.Errorf("invalid --format %q (allowed: json, csv)", format)
	}

	var override airquality.BoundsOverride
	for _, f := range boundFlags {
		if !cmd.Flags().Changed(f.name) {
			continue
		}
		n, err := cmd.Flags().GetInt(f.name)
		if err != nil {
			return err
		}
		*f.dst(&override) = &n
	}

	service, err := newService(cfg)
	if err != nil {
		return err
	}
	if err := service.Load(cmd.Context()); err != nil {
		return err
	}
	bounds := override.Apply(service.Domain())

	out := cmd.OutOrStdout()
	if chartID == "" {
		return writeJSON(out, service.Charts(bounds))
	}

	chart, err := service.Chart(chartID, bounds)
	if err != nil {
		return err
	}
	if format == "csv" {
		return airquality.WriteChartCSV(out, chart)
	}
	return writeJSON(out, chart)
}

var boundsCmd = &cobra.Command{
	Use:   "bounds",
	Short: "Print the dataset's default filter bounds",
	RunE: func(cmd *cobra.Command, args []string) error {
		service, err := newService(cfg)
		if err != nil {
			return err
		}
		if err := service.Load(cmd.Context()); err != nil {
			return err
		}
		return writeJSON(cmd.OutOrStdout(), map[string]any{
			"dataset": service.Info(),
			"domain":  service.Domain(),
		})
	},
}

func init() {
	rootCmd.AddCommand(boundsCmd)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
