// Package geo holds the coordinates every data source is queried with.
package geo

import (
	"fmt"
	"math"
)

// Coordinates is a point on the Earth in decimal degrees.
type Coordinates struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lon float64 `json:"lon" yaml:"lon"`
}

// Valid reports whether c is a usable point.
func (c Coordinates) Valid() bool {
	for _, v := range []float64{c.Lat, c.Lon} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return math.Abs(c.Lat) <= 90 && math.Abs(c.Lon) <= 180
}

func (c Coordinates) String() string {
	return fmt.Sprintf("%.4f,%.4f", c.Lat, c.Lon)
}
