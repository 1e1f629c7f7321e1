package airquality

import "math"

// ApplyFilters returns the observations that satisfy every range in b.
// An observation missing any filtered field is excluded. Inverted ranges
// simply match nothing. The input slice is never modified.
func ApplyFilters(obs []Observation, b FilterBounds) []Observation {
	out := make([]Observation, 0, len(obs))
	for _, o := range obs {
		if b.Match(o) {
			out = append(out, o)
		}
	}
	return out
}

// Match reports whether o passes all four range checks.
func (b FilterBounds) Match(o Observation) bool {
	return o.Year != 0 && b.Year.ContainsInt(o.Year) &&
		b.Temp.Contains(o.Temp) &&
		b.Pres.Contains(o.Pres) &&
		b.Rain.Contains(o.Rain)
}

// DomainOf returns the min/max of year, TEMP, PRES and RAIN over obs.
// Float columns are truncated toward zero, matching the integer sliders of
// the dashboard. Missing values are ignored; a column with no values yields
// the zero range.
func DomainOf(obs []Observation) FilterBounds {
	var (
		year             IntRange
		temp, pres, rain floatExtent
		seenYear         bool
	)
	for _, o := range obs {
		if o.Year != 0 {
			if !seenYear {
				year = IntRange{Min: o.Year, Max: o.Year}
				seenYear = true
			}
			year.Min = min(year.Min, o.Year)
			year.Max = max(year.Max, o.Year)
		}
		temp.add(o.Temp)
		pres.add(o.Pres)
		rain.add(o.Rain)
	}
	return FilterBounds{
		Year: year,
		Temp: temp.truncated(),
		Pres: pres.truncated(),
		Rain: rain.truncated(),
	}
}

type floatExtent struct {
	lo, hi float64
	seen   bool
}

func (e *floatExtent) add(v NullFloat) {
	if v.IsMissing() {
		return
	}
	f := v.Float()
	if !e.seen {
		e.lo, e.hi, e.seen = f, f, true
		return
	}
	e.lo = math.Min(e.lo, f)
	e.hi = math.Max(e.hi, f)
}

func (e floatExtent) truncated() IntRange {
	if !e.seen {
		return IntRange{}
	}
	return IntRange{Min: int(math.Trunc(e.lo)), Max: int(math.Trunc(e.hi))}
}
