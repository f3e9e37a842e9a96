package visualize

import (
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/spencer-p/fishdash/pkg/aggregate"
)

// missing is how echarts is told a point has no value.
const missing = "-"

// Forecast renders the forecast entries as a line chart of temperature, wind,
// waves and tide, as a standalone HTML page.
func Forecast(w io.Writer, title string, entries []aggregate.ForecastEntry) error {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: title,
			Width:     "1200px",
			Height:    "400px",
		}),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)

	labels := make([]string, len(entries))
	temp := make([]opts.LineData, len(entries))
	wind := make([]opts.LineData, len(entries))
	waves := make([]opts.LineData, len(entries))
	tide := make([]opts.LineData, len(entries))
	for i, e := range entries {
		labels[i] = e.Label
		temp[i] = opts.LineData{Value: e.TempF}
		wind[i] = opts.LineData{Value: e.WindMPH}
		waves[i] = opts.LineData{Value: missing}
		if ft, ok := e.WaveHeight.Feet(); ok {
			waves[i] = opts.LineData{Value: ft}
		}
		tide[i] = opts.LineData{Value: missing}
		if e.TideHeight != nil {
			tide[i] = opts.LineData{Value: *e.TideHeight}
		}
	}

	smooth := charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)})
	line.SetXAxis(labels).
		AddSeries("Temperature (°F)", temp, smooth).
		AddSeries("Wind (mph)", wind, smooth).
		AddSeries("Waves (ft)", waves, smooth).
		AddSeries("Tide (ft)", tide, smooth)
	return line.Render(w)
}
