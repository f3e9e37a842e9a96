// Package units converts the raw units weather services report into the
// units shown on the dashboard.
package units

import "math"

const (
	metersPerMile   = 1609.34
	feetPerMeter    = 3.28084
	mphPerMPS       = 2.23694
	inHgPerHPa      = 0.02953
	degreesPerPoint = 22.5
)

var compass = [16]string{
	"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW",
}

// MetersPerSecondToMPH converts a wind speed.
func MetersPerSecondToMPH(mps float64) float64 {
	return mps * mphPerMPS
}

// MetersToMiles converts a visibility distance.
func MetersToMiles(m float64) float64 {
	return m / metersPerMile
}

// MetersToFeet converts a water height.
func MetersToFeet(m float64) float64 {
	return m * feetPerMeter
}

// HPaToInHg converts barometric pressure.
func HPaToInHg(hpa float64) float64 {
	return hpa * inHgPerHPa
}

// VisibilityMiles is the whole number of miles shown for a visibility in meters.
func VisibilityMiles(m float64) float64 {
	return math.Round(MetersToMiles(m))
}

// PressureInHg is the pressure in hPa shown in inHg with two decimals.
func PressureInHg(hpa float64) float64 {
	return math.Round(HPaToInHg(hpa)*100) / 100
}

// Compass maps a bearing in degrees to one of the 16 compass points. Bearings
// outside [0, 360) wrap around.
func Compass(deg float64) string {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	i := int(math.Round(deg/degreesPerPoint)) % len(compass)
	return compass[i]
}
