package airquality

import (
	"errors"
	"fmt"
)

// ErrUnknownChart is returned when a chart ID is not registered.
var ErrUnknownChart = errors.New("unknown chart")

// Grouping selects the time period a chart aggregates over.
type Grouping string

const (
	Yearly  Grouping = "yearly"
	Monthly Grouping = "monthly"
)

// KeyFunc returns the grouping key function for g.
func (g Grouping) KeyFunc() KeyFunc {
	if g == Monthly {
		return ByYearMonth
	}
	return ByYear
}

const (
	ChartCOYearly   = "co-yearly"
	ChartCOMonthly  = "co-monthly"
	ChartNO2Yearly  = "no2-yearly"
	ChartSO2Yearly  = "so2-yearly"
	ChartSO2Monthly = "so2-monthly"
	ChartNO2Monthly = "no2-monthly"
	ChartO3Monthly  = "o3-monthly"
)

// ChartSpec describes one series shown on the dashboard.
type ChartSpec struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Pollutant Pollutant `json:"pollutant"`
	Grouping  Grouping  `json:"grouping"`
	Unit      string    `json:"unit,omitempty"`
}

// ChartSpecs is the fixed set of dashboard series, in page order.
var ChartSpecs = []ChartSpec{
	{ID: ChartCOYearly, Title: "CO trend by year", Pollutant: CO, Grouping: Yearly},
	{ID: ChartCOMonthly, Title: "CO trend by month", Pollutant: CO, Grouping: Monthly, Unit: "ppb"},
	{ID: ChartNO2Yearly, Title: "NO2 trend by year", Pollutant: NO2, Grouping: Yearly, Unit: "ppm"},
	{ID: ChartSO2Yearly, Title: "SO2 trend by year", Pollutant: SO2, Grouping: Yearly, Unit: "ppm"},
	{ID: ChartSO2Monthly, Title: "SO2 trend by month", Pollutant: SO2, Grouping: Monthly, Unit: "ppm"},
	{ID: ChartNO2Monthly, Title: "NO2 trend by month", Pollutant: NO2, Grouping: Monthly, Unit: "ppm"},
	{ID: ChartO3Monthly, Title: "O3 trend by month", Pollutant: O3, Grouping: Monthly, Unit: "ppm"},
}

// LookupChart finds a registered chart by ID.
func LookupChart(id string) (ChartSpec, error) {
	for _, spec := range ChartSpecs {
		if spec.ID == id {
			return spec, nil
		}
	}
	return ChartSpec{}, fmt.Errorf("%w: %q", ErrUnknownChart, id)
}

// ChartIDs returns the registered IDs in page order.
func ChartIDs() []string {
	ids := make([]string, 0, len(ChartSpecs))
	for _, spec := range ChartSpecs {
		ids = append(ids, spec.ID)
	}
	return ids
}

// Chart is a ChartSpec with its computed series.
type Chart struct {
	ChartSpec
	Series Series `json:"series"`
}

// ChartSet is every dashboard chart computed from one filtered table.
type ChartSet struct {
	Bounds FilterBounds `json:"bounds"`
	Rows   int          `json:"rows"`
	Charts []Chart      `json:"charts"`
}

// Get returns the chart with the given ID.
func (cs ChartSet) Get(id string) (Chart, bool) {
	for _, c := range cs.Charts {
		if c.ID == id {
			return c, true
		}
	}
	return Chart{}, false
}

// BuildChart filters obs once and aggregates the single chart spec.
func BuildChart(obs []Observation, bounds FilterBounds, spec ChartSpec) Chart {
	filtered := ApplyFilters(obs, bounds)
	return aggregateChart(filtered, spec)
}

// BuildCharts filters obs once and aggregates every registered chart from
// the same filtered table.
func BuildCharts(obs []Observation, bounds FilterBounds) ChartSet {
	filtered := ApplyFilters(obs, bounds)
	charts := make([]Chart, 0, len(ChartSpecs))
	for _, spec := range ChartSpecs {
		charts = append(charts, aggregateChart(filtered, spec))
	}
	return ChartSet{
		Bounds: bounds,
		Rows:   len(filtered),
		Charts: charts,
	}
}

func aggregateChart(filtered []Observation, spec ChartSpec) Chart {
	return Chart{
		ChartSpec: spec,
		Series:    AggregateBy(filtered, spec.Grouping.KeyFunc(), []Pollutant{spec.Pollutant}),
	}
}
