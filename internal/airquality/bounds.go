package airquality

// BoundsOverride carries user-supplied bounds; nil fields keep the default.
type BoundsOverride struct {
	YearMin, YearMax *int
	TempMin, TempMax *int
	PresMin, PresMax *int
	RainMin, RainMax *int
}

// Apply returns defaults with every non-nil override applied.
func (o BoundsOverride) Apply(defaults FilterBounds) FilterBounds {
	b := defaults
	set(&b.Year.Min, o.YearMin)
	set(&b.Year.Max, o.YearMax)
	set(&b.Temp.Min, o.TempMin)
	set(&b.Temp.Max, o.TempMax)
	set(&b.Pres.Min, o.PresMin)
	set(&b.Pres.Max, o.PresMax)
	set(&b.Rain.Min, o.RainMin)
	set(&b.Rain.Max, o.RainMax)
	return b
}

func set(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}
