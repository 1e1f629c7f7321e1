package airquality

import "sort"

// KeyFunc maps an observation to its group. ok is false when the fields the
// key is built from are missing; such observations are left out.
type KeyFunc func(o Observation) (key GroupKey, ok bool)

// ByYear groups observations by calendar year.
func ByYear(o Observation) (GroupKey, bool) {
	if o.Year == 0 {
		return GroupKey{}, false
	}
	return GroupKey{Year: o.Year}, true
}

// ByYearMonth groups observations by (year, month).
func ByYearMonth(o Observation) (GroupKey, bool) {
	if o.Year == 0 || o.Month < 1 || o.Month > 12 {
		return GroupKey{}, false
	}
	return GroupKey{Year: o.Year, Month: o.Month}, true
}

type meanAccumulator struct {
	rows  int
	sums  []float64
	count []int
}

// AggregateBy groups obs with key and averages each of cols per group.
// Missing values are excluded from the mean; a group with no value for a
// column gets a missing mean. Entries are sorted by (year, month).
func AggregateBy(obs []Observation, key KeyFunc, cols []Pollutant) Series {
	cols = dedupe(cols)

	groups := make(map[GroupKey]*meanAccumulator)
	for _, o := range obs {
		k, ok := key(o)
		if !ok {
			continue
		}
		acc, exists := groups[k]
		if !exists {
			acc = &meanAccumulator{
				sums:  make([]float64, len(cols)),
				count: make([]int, len(cols)),
			}
			groups[k] = acc
		}
		acc.rows++
		for i, p := range cols {
			v := o.Value(p)
			if v.IsMissing() {
				continue
			}
			acc.sums[i] += v.Float()
			acc.count[i]++
		}
	}

	keys := make([]GroupKey, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })

	entries := make([]SeriesEntry, 0, len(keys))
	for _, k := range keys {
		acc := groups[k]
		values := make(map[Pollutant]NullFloat, len(cols))
		for i, p := range cols {
			if acc.count[i] == 0 {
				values[p] = Missing()
				continue
			}
			values[p] = NullFloat(acc.sums[i] / float64(acc.count[i]))
		}
		entries = append(entries, SeriesEntry{
			Key:    k,
			Label:  k.Label(),
			Count:  acc.rows,
			Values: values,
		})
	}

	return Series{Columns: cols, Entries: entries}
}

func dedupe(cols []Pollutant) []Pollutant {
	seen := make(map[Pollutant]bool, len(cols))
	out := make([]Pollutant, 0, len(cols))
	for _, p := range cols {
		if seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}
