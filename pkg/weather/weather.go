// Package weather holds the observations weather sources report, in the
// source's native units.
package weather

import "time"

// Observation is the weather at one instant, current or forecast.
type Observation struct {
	Time time.Time
	// Fahrenheit
	TempF float64
	// Condition keyword, e.g. "Clear", "Clouds", "Rain".
	Condition string
	WindMPH   float64
	// Bearing the wind blows from, in degrees.
	WindDeg float64
	// Percent
	Humidity int
	// Meters. Negative when the source did not report it.
	VisibilityMeters float64
	PressureHPa      float64
}

// Report combines a current snapshot with a time ordered forecast.
type Report struct {
	Current  Observation
	Forecast []Observation
	// Spacing of forecast entries.
	Step time.Duration
}
