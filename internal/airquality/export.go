package airquality

import (
	"encoding/csv"
	"io"
	"strconv"
)

// WriteChartCSV writes a chart as "label,<pollutant>" rows. Missing means
// are empty cells.
func WriteChartCSV(w io.Writer, chart Chart) error {
	cw := csv.NewWriter(w)

	header := []string{"label"}
	for _, p := range chart.Series.Columns {
		header = append(header, string(p))
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, e := range chart.Series.Entries {
		row := []string{e.Label}
		for _, p := range chart.Series.Columns {
			v, ok := e.Values[p]
			if !ok || v.IsMissing() {
				row = append(row, "")
				continue
			}
			row = append(row, strconv.FormatFloat(v.Float(), 'f', -1, 64))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
