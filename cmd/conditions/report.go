package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/spencer-p/fishdash/pkg/aggregate"
	"github.com/spencer-p/fishdash/pkg/timetricks"
)

const clockFmt = "3:04 PM"

// render lays out a result as terminal sections.
func render(place string, r *aggregate.Result) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(place))
	b.WriteString("  ")
	b.WriteString(ratingStyle(r.Rating).Render("Fishing is " + r.Rating.Status.String()))
	b.WriteString("\n\n")

	b.WriteString(sectionBoxStyle.Render(current(r)))
	b.WriteString("\n")
	b.WriteString(sectionBoxStyle.Render(tideTable(r)))
	b.WriteString("\n")
	b.WriteString(sectionBoxStyle.Render(forecast(r)))
	b.WriteString("\n")
	return b.String()
}

func row(label, value string) string {
	return labelStyle.Render(fmt.Sprintf("%-12s", label)) + value
}

func current(r *aggregate.Result) string {
	c := r.Current
	waves := fmt.Sprintf("%s ft %s", c.WaveHeight, c.WaveDirection)
	if c.WavePeriod > 0 {
		waves += fmt.Sprintf(", %ds", c.WavePeriod)
	}
	if c.WaveSource != "" {
		waves += " (" + c.WaveSource + ")"
	}
	tide := c.TideStatus.String()
	if c.TideHeight != nil {
		tide += fmt.Sprintf(", %.1f ft", *c.TideHeight)
	}

	lines := []string{
		titleStyle.Render("Current conditions"),
		row("Weather", fmt.Sprintf("%d°F, %s", c.TempF, c.Condition)),
		row("Wind", fmt.Sprintf("%d mph %s", c.WindMPH, c.WindDirection)),
		row("Humidity", fmt.Sprintf("%d%%", c.Humidity)),
		row("Visibility", fmt.Sprintf("%g mi", c.VisibilityMiles)),
		row("Pressure", fmt.Sprintf("%.2f inHg", c.PressureInHg)),
		row("Waves", waves),
		row("Tide", tide),
		row("Next tide", c.NextTide),
	}
	if c.Sunrise != nil && c.Sunset != nil {
		lines = append(lines, row("Sun", fmt.Sprintf("%s to %s", c.Sunrise.Format(clockFmt), c.Sunset.Format(clockFmt))))
	}
	return strings.Join(lines, "\n")
}

func tideTable(r *aggregate.Result) string {
	lines := []string{titleStyle.Render("Tides")}
	if !r.TidesAvailable || len(r.Extrema) == 0 {
		lines = append(lines, mutedStyle.Render("Tide data unavailable"))
		return strings.Join(lines, "\n")
	}
	loc := zone(r)
	day := r.Generated.In(loc)
	if len(r.Forecast) > 0 {
		day = r.Forecast[0].Time.In(loc)
	}
	for _, e := range r.Extrema {
		if t := e.Time.In(loc); timetricks.SameDay(t, day) {
			lines = append(lines, row(e.Kind.String(), fmt.Sprintf("%s  %.1f ft", t.Format(clockFmt), e.Height)))
		}
	}
	if r.TideCopyright != "" {
		lines = append(lines, mutedStyle.Render(r.TideCopyright))
	}
	return strings.Join(lines, "\n")
}

func forecast(r *aggregate.Result) string {
	lines := []string{titleStyle.Render("Forecast")}
	for _, f := range r.Forecast {
		tide := "N/A"
		if f.TideHeight != nil {
			tide = fmt.Sprintf("%.1f", *f.TideHeight)
		}
		lines = append(lines, fmt.Sprintf("%-24s %3d°F %3d mph  waves %4s ft  tide %4s ft  %s",
			f.Label, f.TempF, f.WindMPH, f.WaveHeight, tide, f.Condition))
	}
	if len(r.GoodTimes) > 0 {
		lines = append(lines, "", titleStyle.Render("Good times"))
		for i := range r.GoodTimes {
			lines = append(lines, "• "+r.GoodTimes[i].String())
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func zone(r *aggregate.Result) *time.Location {
	if r.Zone != nil {
		return r.Zone
	}
	return time.Local
}
