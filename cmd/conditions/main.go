// Command conditions prints the fishing conditions for one place to the
// terminal.
//
// It reads the same environment as the server. With -search it reads place
// names from stdin, suggests matches as typing settles, and reports on the
// numbered suggestion entered next.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/spencer-p/fishdash/pkg/aggregate"
	"github.com/spencer-p/fishdash/pkg/config"
	"github.com/spencer-p/fishdash/pkg/geo"
	"github.com/spencer-p/fishdash/pkg/locate"
)

type options struct {
	location string
	lat, lon float64
	station  string
	date     string
	limit    int
	search   bool
}

func main() {
	var opts options
	flag.StringVar(&opts.location, "location", "", "fixed location name (default DEFAULT_LOCATION)")
	flag.Float64Var(&opts.lat, "lat", 0, "latitude, with -lon instead of -location")
	flag.Float64Var(&opts.lon, "lon", 0, "longitude")
	flag.StringVar(&opts.station, "station", "", "tide station id for -lat/-lon")
	flag.StringVar(&opts.date, "date", "", "forecast date as YYYY-MM-DD")
	flag.IntVar(&opts.limit, "limit", 8, "forecast entries to show")
	flag.BoolVar(&opts.search, "search", false, "search for the place interactively")
	flag.Parse()

	if err := run(context.Background(), opts, os.Stdin, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options, in io.Reader, out io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := cfg.NewLogger(os.Stderr)
	zone, err := cfg.Zone()
	if err != nil {
		return err
	}
	fixed, err := config.LoadLocations(cfg.LocationsFile)
	if err != nil {
		return err
	}
	agg, geocoder, err := cfg.NewAggregator(logger, nil)
	if err != nil {
		return err
	}
	resolver := locate.NewResolver(fixed, geocoder, cfg.SearchLimit, logger)

	req := aggregate.Request{Limit: opts.limit}
	if opts.date != "" {
		req.Date, err = time.ParseInLocation("2006-01-02", opts.date, zone)
		if err != nil {
			return fmt.Errorf("invalid -date %q: %w", opts.date, err)
		}
	}

	var loc locate.Location
	switch {
	case opts.search:
		loc, err = interactive(ctx, resolver, cfg.SearchDebounce, in, out)
	case opts.lat != 0 || opts.lon != 0:
		loc = locate.Location{
			Coordinates: geo.Coordinates{Lat: opts.lat, Lon: opts.lon},
			StationID:   opts.station,
		}
		loc.DisplayName = loc.Coordinates.String()
	case opts.location != "":
		loc, err = resolver.Lookup(opts.location)
	default:
		loc, err = resolver.Lookup(cfg.DefaultLocation)
	}
	if err != nil {
		return err
	}

	req.Coordinates = loc.Coordinates
	req.StationID = loc.StationID
	req.BuoyID = loc.BuoyID
	result, err := agg.Aggregate(ctx, req)
	if err != nil {
		return err
	}
	_, err = io.WriteString(out, render(loc.Label(), result))
	return err
}

// interactive suggests places for each line read from in until a line picks
// one of the current suggestions by number.
func interactive(ctx context.Context, search locate.Searcher, debounce time.Duration, in io.Reader, out io.Writer) (locate.Location, error) {
	var (
		mu      sync.Mutex
		current []locate.Location
	)
	s := locate.NewSuggester(ctx, search, nil, debounce, func(sg locate.Suggestions) {
		mu.Lock()
		defer mu.Unlock()
		if sg.Err != nil {
			fmt.Fprintln(out, mutedStyle.Render("search failed: "+sg.Err.Error()))
			return
		}
		current = sg.Locations
		if len(current) == 0 {
			fmt.Fprintln(out, mutedStyle.Render("no matches for "+strconv.Quote(sg.Term)))
			return
		}
		for i, l := range current {
			fmt.Fprintf(out, "%s %s\n", labelStyle.Render(fmt.Sprintf("%2d.", i+1)), l.DisplayName)
		}
	})
	defer s.Stop()

	fmt.Fprintln(out, mutedStyle.Render("Type a place, then the number of a suggestion."))
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if n, err := strconv.Atoi(line); err == nil {
			mu.Lock()
			picked := n >= 1 && n <= len(current)
			var loc locate.Location
			if picked {
				loc = current[n-1]
			}
			mu.Unlock()
			if picked {
				return loc, nil
			}
		}
		s.Type(line)
	}
	if err := scanner.Err(); err != nil {
		return locate.Location{}, err
	}
	return locate.Location{}, fmt.Errorf("no location chosen")
}
