package airquality

// obs builds an observation with all weather covariates present so it passes
// the default bounds of the tests.
func obs(year, month int, co, no2 float64) Observation {
	return Observation{
		Year:  year,
		Month: month,
		PM25:  Missing(),
		PM10:  Missing(),
		SO2:   Missing(),
		NO2:   NullFloat(no2),
		CO:    NullFloat(co),
		O3:    Missing(),
		Temp:  10,
		Pres:  1000,
		Rain:  0,
	}
}

// wideBounds accepts every observation built by obs.
func wideBounds() FilterBounds {
	return FilterBounds{
		Year: IntRange{Min: 2000, Max: 2100},
		Temp: IntRange{Min: -50, Max: 50},
		Pres: IntRange{Min: 900, Max: 1100},
		Rain: IntRange{Min: 0, Max: 100},
	}
}
