package dataset

import (
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/i474232898/air-quality-dashboard/internal/airquality"
)

const (
	colYear    = "year"
	colMonth   = "month"
	colDay     = "day"
	colHour    = "hour"
	colPM25    = "pm2.5"
	colPM10    = "pm10"
	colSO2     = "so2"
	colNO2     = "no2"
	colCO      = "co"
	colO3      = "o3"
	colTemp    = "temp"
	colPres    = "pres"
	colRain    = "rain"
	colStation = "station"
)

var requiredColumns = []string{
	colYear, colMonth,
	colPM25, colPM10, colSO2, colNO2, colCO, colO3,
	colTemp, colPres, colRain,
}

// Cell values read as missing, as most dataframe tools do.
var missingTokens = map[string]bool{
	"":     true,
	"na":   true,
	"n/a":  true,
	"nan":  true,
	"-nan": true,
	"null": true,
	"none": true,
	"#n/a": true,
	"<na>": true,
}

type columnIndex map[string]int

func indexHeader(header []string) (columnIndex, error) {
	idx := make(columnIndex, len(header))
	for i, name := range header {
		name = strings.TrimPrefix(name, "\ufeff")
		name = strings.ToLower(strings.TrimSpace(name))
		if _, dup := idx[name]; !dup {
			idx[name] = i
		}
	}

	var missing []string
	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", airquality.ErrInvalidSchema, strings.Join(missing, ", "))
	}
	return idx, nil
}

// decoder turns header-mapped string records into observations.
type decoder struct {
	idx      columnIndex
	station  string
	badCells int
	table    airquality.Table
}

func newDecoder(header []string) (*decoder, error) {
	idx, err := indexHeader(header)
	if err != nil {
		return nil, err
	}
	return &decoder{
		idx:   idx,
		table: airquality.Table{Observations: []airquality.Observation{}},
	}, nil
}

func (d *decoder) cell(record []string, col string) string {
	i, ok := d.idx[col]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

func (d *decoder) float(record []string, col string) airquality.NullFloat {
	s := d.cell(record, col)
	if missingTokens[strings.ToLower(s)] {
		return airquality.Missing()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		d.badCells++
		return airquality.Missing()
	}
	return airquality.NullFloat(v)
}

// int parses whole numbers, also when written as "2013.0". Zero means missing.
func (d *decoder) int(record []string, col string) int {
	s := d.cell(record, col)
	if missingTokens[strings.ToLower(s)] {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) || math.IsInf(f, 0) {
		d.badCells++
		return 0
	}
	return int(f)
}

func (d *decoder) add(record []string) {
	o := airquality.Observation{
		Year:  d.int(record, colYear),
		Month: d.int(record, colMonth),
		Day:   d.int(record, colDay),
		Hour:  d.int(record, colHour),
		PM25:  d.float(record, colPM25),
		PM10:  d.float(record, colPM10),
		SO2:   d.float(record, colSO2),
		NO2:   d.float(record, colNO2),
		CO:    d.float(record, colCO),
		O3:    d.float(record, colO3),
		Temp:  d.float(record, colTemp),
		Pres:  d.float(record, colPres),
		Rain:  d.float(record, colRain),
	}
	if d.station == "" {
		d.station = d.cell(record, colStation)
	}
	d.table.Observations = append(d.table.Observations, o)
}

func (d *decoder) finish(name string) airquality.Table {
	if d.badCells > 0 {
		slog.Warn("dataset has unparseable cells; treated as missing",
			"source", name, "cells", d.badCells)
	}
	d.table.Station = d.station
	return d.table
}

// decodeRecords decodes a header row followed by data rows.
func decodeRecords(name string, records [][]string) (airquality.Table, error) {
	if len(records) == 0 {
		return airquality.Table{}, fmt.Errorf("%w: no header row", airquality.ErrInvalidSchema)
	}
	dec, err := newDecoder(records[0])
	if err != nil {
		return airquality.Table{}, err
	}
	for _, record := range records[1:] {
		dec.add(record)
	}
	return dec.finish(name), nil
}
