package views

import (
	"math"
	"strconv"
	"strings"

	"github.com/i474232898/air-quality-dashboard/internal/airquality"
)

// Plot geometry of a line chart, in SVG user units.
const (
	chartWidth   = 960
	chartHeight  = 320
	marginLeft   = 64
	marginRight  = 16
	marginTop    = 16
	marginBottom = 72
	yTickCount   = 5
)

// LineData is one named series to draw.
type LineData struct {
	Name   string
	Color  string
	Values []airquality.NullFloat
}

// Point is a marker position.
type Point struct {
	X, Y float64
}

// LineView is a drawable series: polyline segments broken at missing values.
type LineView struct {
	Name     string
	Color    string
	Segments []string
	Points   []Point
}

// AxisLabel is a positioned axis caption.
type AxisLabel struct {
	Pos  float64
	Text string
}

// LineChart is the view model of one SVG line chart.
type LineChart struct {
	ID     string
	Title  string
	XLabel string
	YLabel string

	Width, Height       int
	PlotLeft, PlotRight float64
	PlotTop, PlotBottom float64
	XLabels             []AxisLabel
	YTicks              []AxisLabel
	Lines               []LineView
	Legend              bool
	Empty               bool
}

// NewLineChart lays out lines over the shared x labels. Values are scaled to
// the combined extent of every line.
func NewLineChart(id, title, xLabel, yLabel string, labels []string, lines []LineData) LineChart {
	c := LineChart{
		ID:         id,
		Title:      title,
		XLabel:     xLabel,
		YLabel:     yLabel,
		Width:      chartWidth,
		Height:     chartHeight,
		PlotLeft:   marginLeft,
		PlotRight:  chartWidth - marginRight,
		PlotTop:    marginTop,
		PlotBottom: chartHeight - marginBottom,
		Legend:     len(lines) > 1,
	}

	lo, hi, ok := extent(lines)
	if len(labels) == 0 || !ok {
		c.Empty = true
		for _, l := range lines {
			c.Lines = append(c.Lines, LineView{Name: l.Name, Color: l.Color})
		}
		return c
	}
	if lo == hi {
		lo, hi = lo-1, hi+1
	}

	x := func(i int) float64 {
		if len(labels) == 1 {
			return (c.PlotLeft + c.PlotRight) / 2
		}
		return c.PlotLeft + float64(i)*(c.PlotRight-c.PlotLeft)/float64(len(labels)-1)
	}
	y := func(v float64) float64 {
		return c.PlotBottom - (v-lo)/(hi-lo)*(c.PlotBottom-c.PlotTop)
	}

	for i, text := range labels {
		c.XLabels = append(c.XLabels, AxisLabel{Pos: round(x(i)), Text: text})
	}
	for t := 0; t < yTickCount; t++ {
		v := lo + float64(t)*(hi-lo)/float64(yTickCount-1)
		c.YTicks = append(c.YTicks, AxisLabel{Pos: round(y(v)), Text: formatTick(v)})
	}

	for _, l := range lines {
		view := LineView{Name: l.Name, Color: l.Color}
		var seg []string
		flush := func() {
			if len(seg) > 0 {
				view.Segments = append(view.Segments, strings.Join(seg, " "))
				seg = nil
			}
		}
		for i, v := range l.Values {
			if i >= len(labels) || v.IsMissing() {
				flush()
				continue
			}
			p := Point{X: round(x(i)), Y: round(y(v.Float()))}
			view.Points = append(view.Points, p)
			seg = append(seg, formatCoord(p.X)+","+formatCoord(p.Y))
		}
		flush()
		c.Lines = append(c.Lines, view)
	}
	return c
}

func extent(lines []LineData) (lo, hi float64, ok bool) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, l := range lines {
		for _, v := range l.Values {
			if v.IsMissing() {
				continue
			}
			lo = math.Min(lo, v.Float())
			hi = math.Max(hi, v.Float())
			ok = true
		}
	}
	return lo, hi, ok
}

func round(v float64) float64 {
	return math.Round(v*100) / 100
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatTick(v float64) string {
	switch a := math.Abs(v); {
	case a >= 100:
		return strconv.FormatFloat(v, 'f', 0, 64)
	case a >= 1:
		return strconv.FormatFloat(v, 'f', 1, 64)
	default:
		return strconv.FormatFloat(v, 'f', 3, 64)
	}
}
