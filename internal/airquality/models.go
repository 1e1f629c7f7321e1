package airquality

import (
	"encoding/json"
	"math"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Pollutant names a concentration column of the station dataset.
type Pollutant string

const (
	PM25 Pollutant = "PM2.5"
	PM10 Pollutant = "PM10"
	SO2  Pollutant = "SO2"
	NO2  Pollutant = "NO2"
	CO   Pollutant = "CO"
	O3   Pollutant = "O3"
)

// Pollutants lists every pollutant column in dataset order.
var Pollutants = []Pollutant{PM25, PM10, SO2, NO2, CO, O3}

// NullFloat is a float64 where NaN marks a missing measurement.
// It marshals to JSON null when missing.
type NullFloat float64

// Missing returns a NullFloat that represents an absent value.
func Missing() NullFloat {
	return NullFloat(math.NaN())
}

// IsMissing reports whether the value is absent.
func (f NullFloat) IsMissing() bool {
	return math.IsNaN(float64(f))
}

// Float returns the raw value; NaN when missing.
func (f NullFloat) Float() float64 {
	return float64(f)
}

func (f NullFloat) MarshalJSON() ([]byte, error) {
	if f.IsMissing() || math.IsInf(float64(f), 0) {
		return []byte("null"), nil
	}
	return json.Marshal(float64(f))
}

func (f *NullFloat) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = Missing()
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = NullFloat(v)
	return nil
}

// Observation is one row of station measurements.
// A zero Year, Month, Day or Hour means the field was missing in the source.
type Observation struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day,omitempty"`
	Hour  int `json:"hour,omitempty"`

	PM25 NullFloat `json:"PM2.5"`
	PM10 NullFloat `json:"PM10"`
	SO2  NullFloat `json:"SO2"`
	NO2  NullFloat `json:"NO2"`
	CO   NullFloat `json:"CO"`
	O3   NullFloat `json:"O3"`

	Temp NullFloat `json:"TEMP"`
	Pres NullFloat `json:"PRES"`
	Rain NullFloat `json:"RAIN"`
}

// Value returns the concentration for p, or a missing value for an unknown pollutant.
func (o Observation) Value(p Pollutant) NullFloat {
	switch p {
	case PM25:
		return o.PM25
	case PM10:
		return o.PM10
	case SO2:
		return o.SO2
	case NO2:
		return o.NO2
	case CO:
		return o.CO
	case O3:
		return o.O3
	default:
		return Missing()
	}
}

// Table is the raw result of reading a dataset source.
type Table struct {
	Station      string
	Observations []Observation
}

// Dataset is an immutable, loaded snapshot of a Table.
type Dataset struct {
	ID       uuid.UUID
	Source   string
	Station  string
	LoadedAt time.Time

	Observations []Observation
}

// EmptyDataset returns a zero-row dataset for source. It is what the pipeline
// sees when the source could not be read.
func EmptyDataset(source string) Dataset {
	return Dataset{
		ID:           uuid.New(),
		Source:       source,
		LoadedAt:     time.Now().UTC(),
		Observations: []Observation{},
	}
}

// Len returns the number of rows.
func (d Dataset) Len() int {
	return len(d.Observations)
}

// DatasetInfo describes one load attempt of a dataset.
type DatasetInfo struct {
	ID       uuid.UUID `json:"id"`
	Source   string    `json:"source"`
	Station  string    `json:"station,omitempty"`
	Rows     int       `json:"rows"`
	Empty    bool      `json:"empty"`
	LoadedAt time.Time `json:"loadedAt"`
	Error    string    `json:"error,omitempty"`
}

// Info summarizes the dataset; loadErr is recorded when the load failed.
func (d Dataset) Info(loadErr error) DatasetInfo {
	info := DatasetInfo{
		ID:       d.ID,
		Source:   d.Source,
		Station:  d.Station,
		Rows:     d.Len(),
		Empty:    d.Len() == 0,
		LoadedAt: d.LoadedAt,
	}
	if loadErr != nil {
		info.Error = loadErr.Error()
	}
	return info
}

// IntRange is a closed integer interval.
type IntRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Contains reports whether v lies in [Min, Max]. Missing values never do.
func (r IntRange) Contains(v NullFloat) bool {
	if v.IsMissing() {
		return false
	}
	f := v.Float()
	return f >= float64(r.Min) && f <= float64(r.Max)
}

// ContainsInt reports whether v lies in [Min, Max].
func (r IntRange) ContainsInt(v int) bool {
	return v >= r.Min && v <= r.Max
}

// FilterBounds are the four active range constraints of the dashboard.
type FilterBounds struct {
	Year IntRange `json:"year"`
	Temp IntRange `json:"temp"`
	Pres IntRange `json:"pres"`
	Rain IntRange `json:"rain"`
}

// GroupKey identifies an aggregation bucket. Month is 0 for yearly keys.
type GroupKey struct {
	Year  int `json:"year"`
	Month int `json:"month,omitempty"`
}

// Monthly reports whether the key is a (year, month) pair.
func (k GroupKey) Monthly() bool {
	return k.Month != 0
}

// Label renders the key for chart axes: "2013" or "2013-1".
func (k GroupKey) Label() string {
	if !k.Monthly() {
		return strconv.Itoa(k.Year)
	}
	return strconv.Itoa(k.Year) + "-" + strconv.Itoa(k.Month)
}

// Less orders keys by year, then month.
func (k GroupKey) Less(other GroupKey) bool {
	if k.Year != other.Year {
		return k.Year < other.Year
	}
	return k.Month < other.Month
}

// SeriesEntry is the per-group mean of each requested pollutant.
type SeriesEntry struct {
	Key    GroupKey                `json:"key"`
	Label  string                  `json:"label"`
	Count  int                     `json:"count"`
	Values map[Pollutant]NullFloat `json:"values"`
}

// Series is an aggregated series ordered ascending by key.
type Series struct {
	Columns []Pollutant   `json:"columns"`
	Entries []SeriesEntry `json:"entries"`
}

// Labels returns the x-axis labels of the series.
func (s Series) Labels() []string {
	labels := make([]string, 0, len(s.Entries))
	for _, e := range s.Entries {
		labels = append(labels, e.Label)
	}
	return labels
}

// Column returns the values of p in entry order; missing where absent.
func (s Series) Column(p Pollutant) []NullFloat {
	values := make([]NullFloat, 0, len(s.Entries))
	for _, e := range s.Entries {
		v, ok := e.Values[p]
		if !ok {
			v = Missing()
		}
		values = append(values, v)
	}
	return values
}
