// Package noaa queries NOAA CO-OPS tide predictions for a station. Predictions
// are requested either as highs and lows (interval=hilo), which are joined
// with splines to draw a height chart, or as an hourly series (interval=h)
// whose extrema are found by scanning. Times are requested and parsed in GMT.
package noaa
