// Package visualize draws the dashboard's charts: an SVG tide chart for one
// day and an interactive forecast chart.
package visualize

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spencer-p/fishdash/pkg/sunset"
	"github.com/spencer-p/fishdash/pkg/tides"
	"github.com/spencer-p/fishdash/pkg/timetricks"
)

const (
	width  = 1200
	height = 300
)

var ErrNoSunData = errors.New("not enough sun data")

// Tidal is a day of tide heights over day and night shading.
type Tidal struct {
	date      time.Time
	samples   []tides.Sample
	extrema   []tides.Extremum
	sunEvents sunset.SunEvents
}

func NewTidal(samples []tides.Sample, extrema []tides.Extremum, sunEvents sunset.SunEvents) *Tidal {
	return &Tidal{
		samples:   samples,
		extrema:   extrema,
		sunEvents: sunEvents,
	}
}

// SetDate picks the day drawn, in t's location.
func (img *Tidal) SetDate(t time.Time) {
	img.date = timetricks.TrimClock(t)
}

func (img *Tidal) Encode(w io.Writer) (int, error) {
	var n int
	var err error
	io := func(nextn int, nexterr error) {
		n += nextn
		if nexterr != nil {
			err = nexterr
		}
	}

	// Calculate dawn/dusk before writing anything.
	sunupIndex, ok := img.sunup(img.date)
	if !ok || sunupIndex+1 >= len(img.sunEvents) {
		return n, ErrNoSunData
	}
	sunup := img.sunEvents[sunupIndex]
	sundown := img.sunEvents[sunupIndex+1]
	risex := img.timeToX(sunup.Time)
	setx := img.timeToX(sundown.Time)

	io(fmt.Fprintf(w, `<svg viewBox="0 0 %d %d" onclick="" xmlns="http://www.w3.org/2000/svg">`, width, height))
	io(fmt.Fprintf(w, `<rect class="daytime" fill="lightyellow" x="%d" y="%d" width="%d" height="%d"/>`,
		risex, 0,
		setx-risex, height))

	// Draw markers for tide levels.
	io(fmt.Fprintf(w, `<rect class="two_foot" fill="#e76f51" x="%d" y="%d" width="%d" height="%d"/>`,
		0, tideHeightToY(2),
		width, tideHeightToY(1)-tideHeightToY(2)+1))
	io(fmt.Fprintf(w, `<rect class="one_foot" fill="#f4a261" x="%d" y="%d" width="%d" height="%d"/>`,
		0, tideHeightToY(1),
		width, tideHeightToY(0)-tideHeightToY(1)+1))
	io(fmt.Fprintf(w, `<rect class="zero_foot" fill="#e9c46a" x="%d" y="%d" width="%d" height="%d"/>`,
		0, tideHeightToY(0),
		width, tideHeightToY(-2)-tideHeightToY(0)+1))

	// The water is one closed path under the sampled heights.
	day := tides.Day(img.samples, img.date)
	if len(day) > 1 {
		first, last := day[0], day[len(day)-1]
		io(fmt.Fprintf(w, `<path class="tide" fill="skyblue" d="M %d,%d `, img.timeToX(first.Time), height))
		for _, s := range day {
			io(fmt.Fprintf(w, `L %d,%d `, img.timeToX(s.Time), tideHeightToY(s.Height)))
		}
		io(fmt.Fprintf(w, `L %d,%d z"/>`, img.timeToX(last.Time), height))
	}

	// Label the highs and lows of the day.
	for _, e := range img.extrema {
		if !timetricks.SameDay(e.Time.In(img.date.Location()), img.date) {
			continue
		}
		io(fmt.Fprintf(w, `<text class="extremum" x="%d" y="%d">%s %.1f ft</text>`,
			img.timeToX(e.Time), tideHeightToY(e.Height)-8,
			e.Kind, e.Height))
	}

	// Draw the night time shadows.
	io(fmt.Fprintf(w, `<rect class="night" fill="blue" fill-opacity="25%%" x="%d" y="%d" width="%d" height="%d"/>`,
		0, 0,
		risex, height))
	io(fmt.Fprintf(w, `<rect class="night" fill="blue" fill-opacity="25%%" x="%d" y="%d" width="%d" height="%d"/>`,
		setx, 0,
		width-setx, height))

	// Insert the heights as JSON for the page's hover readout.
	heights, encErr := json.Marshal(day)
	if encErr != nil {
		return n, encErr
	}
	io(fmt.Fprintf(w, `<text class="heights" visibility="hidden">%s</text>`, heights))

	// Insert date of this graph as unix.
	io(fmt.Fprintf(w, `<text class="unixtime" visibility="hidden">%d</text>`, img.date.Unix()))

	io(fmt.Fprintf(w, `</svg>`))

	return n, err
}

// sunup finds the first sunrise after t.
func (img *Tidal) sunup(t time.Time) (int, bool) {
	for i := 0; i < len(img.sunEvents); i++ {
		if img.sunEvents[i].Event == sunset.Sunrise && img.sunEvents[i].Time.After(t) {
			return i, true
		}
	}
	return 0, false
}

func tideHeightToY(tideHeight float64) int {
	return height - int((tideHeight+2)*(height/10)) // scaling ratio of img height to 10 feet of tide variance
}

func (img *Tidal) timeToX(t time.Time) int {
	return int(t.Unix()-img.date.Unix()) * width / (60 * 60 * 24)
}
