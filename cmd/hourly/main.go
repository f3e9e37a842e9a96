// Command hourly prints tide heights for a NOAA station, interpolated between
// the predicted highs and lows.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/spencer-p/fishdash/pkg/noaa"
	"github.com/spencer-p/fishdash/pkg/noaa/splines"
)

func main() {
	station := flag.String("station", "9414290", "NOAA CO-OPS station id")
	days := flag.Int("days", 14, "days of predictions")
	step := flag.Duration("step", 2*time.Hour, "spacing between printed heights")
	url := flag.String("url", "", "datagetter url override")
	flag.Parse()

	dur := time.Duration(*days) * 24 * time.Hour
	query := noaa.PredictionQuery{
		Start:    time.Now(),
		Duration: dur,
		Station:  *station,
		Interval: noaa.HiLo,
	}

	client := noaa.NewClient(*url, noaa.HiLo, 30*time.Second)
	preds, err := client.Predictions(context.Background(), &query)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to fetch from NOAA: %v\n", err)
		os.Exit(1)
	}

	spl := splines.CurvesBetween(preds.Extrema())
	for _, s := range spl.Samples(*step) {
		fmt.Printf("%s %.2f\n", s.Time.Local().Format("Mon 01/02 15:04"), s.Height)
	}
}
