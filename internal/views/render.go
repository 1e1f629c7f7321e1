package views

import (
	"embed"
	"errors"
	"html/template"
	"io"
	"io/fs"

	"github.com/i474232898/air-quality-dashboard/internal/airquality"
)

//go:embed templates
var viewsFS embed.FS

var dashboardTmpl *template.Template

// loadTemplatesFromFS loads dashboard templates from the given fs and dir.
func loadTemplatesFromFS(fsys fs.FS, dir string) error {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		return err
	}
	tmpl, err := template.ParseFS(sub, "*.html", "partials/*.html")
	if err != nil {
		return err
	}
	dashboardTmpl = tmpl
	return nil
}

// LoadTemplates loads the embedded templates. Call during startup before
// serving requests.
func LoadTemplates() error {
	return loadTemplatesFromFS(viewsFS, "templates")
}

// Series colors of the combined monthly chart.
const (
	colorSO2 = "red"
	colorNO2 = "blue"
	colorO3  = "green"
	colorOne = "steelblue"
)

// FilterField is one range control of the sidebar.
type FilterField struct {
	Name   string
	Label  string
	Domain airquality.IntRange
	Value  airquality.IntRange
}

// ChartSection is a row of the page; Pair sections place their charts side
// by side.
type ChartSection struct {
	Pair   bool
	Charts []LineChart
}

// DashboardData is the view model of the dashboard page.
type DashboardData struct {
	Station  string
	Dataset  airquality.DatasetInfo
	NotFound bool
	Rows     int
	Filters  []FilterField
	Charts   []LineChart
	Sections []ChartSection
}

// NewDashboardData builds the page model from the domain (slider limits) and
// the charts computed for the active bounds.
func NewDashboardData(info airquality.DatasetInfo, domain airquality.FilterBounds, set airquality.ChartSet) *DashboardData {
	station := info.Station
	if station == "" {
		station = "the station"
	}
	data := &DashboardData{
		Station:  station,
		Dataset:  info,
		NotFound: info.Rows == 0 && info.Error != "",
		Rows:     set.Rows,
		Filters: []FilterField{
			{Name: "year", Label: "Year", Domain: domain.Year, Value: set.Bounds.Year},
			{Name: "temp", Label: "Temperature", Domain: domain.Temp, Value: set.Bounds.Temp},
			{Name: "pres", Label: "Pressure", Domain: domain.Pres, Value: set.Bounds.Pres},
			{Name: "rain", Label: "Rainfall", Domain: domain.Rain, Value: set.Bounds.Rain},
		},
	}

	single := func(id string) []LineChart {
		c, ok := set.Get(id)
		if !ok {
			return nil
		}
		xLabel := "year"
		if c.Grouping == airquality.Monthly {
			xLabel = "year-month"
		}
		return []LineChart{NewLineChart(c.ID, c.Title, xLabel, unitCaption(c.Unit),
			c.Series.Labels(),
			[]LineData{{Name: string(c.Pollutant), Color: colorOne, Values: c.Series.Column(c.Pollutant)}},
		)}
	}
	section := func(pair bool, charts []LineChart) {
		if len(charts) == 0 {
			return
		}
		data.Charts = append(data.Charts, charts...)
		data.Sections = append(data.Sections, ChartSection{Pair: pair, Charts: charts})
	}
	section(false, single(airquality.ChartCOYearly))
	section(false, single(airquality.ChartCOMonthly))
	section(true, append(single(airquality.ChartNO2Yearly), single(airquality.ChartSO2Yearly)...))

	so2, ok1 := set.Get(airquality.ChartSO2Monthly)
	no2, ok2 := set.Get(airquality.ChartNO2Monthly)
	o3, ok3 := set.Get(airquality.ChartO3Monthly)
	if ok1 && ok2 && ok3 {
		section(false, []LineChart{NewLineChart("pollutants-monthly",
			"SO2, NO2 and O3 trend by month", "year-month", unitCaption("ppm"),
			so2.Series.Labels(),
			[]LineData{
				{Name: "SO2", Color: colorSO2, Values: so2.Series.Column(airquality.SO2)},
				{Name: "NO2", Color: colorNO2, Values: no2.Series.Column(airquality.NO2)},
				{Name: "O3", Color: colorO3, Values: o3.Series.Column(airquality.O3)},
			},
		)})
	}
	return data
}

func unitCaption(unit string) string {
	if unit == "" {
		return ""
	}
	return "concentration (" + unit + ")"
}

// RenderDashboard executes the full page into w.
func RenderDashboard(w io.Writer, data *DashboardData) error {
	if dashboardTmpl == nil {
		return errors.New("dashboard template not loaded: call views.LoadTemplates during startup")
	}
	return dashboardTmpl.ExecuteTemplate(w, "dashboard.html", data)
}

// RenderCharts executes only the charts partial into w.
func RenderCharts(w io.Writer, data *DashboardData) error {
	if dashboardTmpl == nil {
		return errors.New("dashboard template not loaded: call views.LoadTemplates during startup")
	}
	return dashboardTmpl.ExecuteTemplate(w, "partials/charts.html", data)
}
