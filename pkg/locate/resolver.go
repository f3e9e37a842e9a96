package locate

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sahilm/fuzzy"
)

const DefaultLimit = 5

// Resolver turns search text into candidate locations. Fixed locations are
// always searched; the geocoder is optional.
type Resolver struct {
	fixed    []Location
	geocoder Geocoder
	limit    int
	logger   *slog.Logger
}

// NewResolver searches fixed first and then geocoder, which may be nil. A
// limit of zero or less means DefaultLimit.
func NewResolver(fixed []Location, geocoder Geocoder, limit int, logger *slog.Logger) *Resolver {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if logger == nil {
		logger = slog.Default()
	}
	labeled := make([]Location, len(fixed))
	for i, l := range fixed {
		labeled[i] = l.WithLabel()
	}
	return &Resolver{fixed: labeled, geocoder: geocoder, limit: limit, logger: logger}
}

// Fixed returns the fixed locations in table order.
func (r *Resolver) Fixed() []Location {
	out := make([]Location, len(r.fixed))
	copy(out, r.fixed)
	return out
}

// Search ranks fixed locations matching term ahead of geocoder candidates.
// An empty term finds nothing and is not an error. A failing geocoder is
// logged and leaves only the fixed matches.
func (r *Resolver) Search(ctx context.Context, term string) ([]Location, error) {
	term = strings.TrimSpace(term)
	results := []Location{}
	if term == "" {
		return results, nil
	}

	seen := make(map[string]bool)
	add := func(l Location) {
		l = l.WithLabel()
		key := strings.ToLower(l.DisplayName)
		if seen[key] || len(results) >= r.limit {
			return
		}
		seen[key] = true
		results = append(results, l)
	}

	for _, m := range fuzzy.FindFrom(term, names(r.fixed)) {
		add(r.fixed[m.Index])
	}

	if r.geocoder == nil || len(results) >= r.limit {
		return results, nil
	}
	found, err := r.geocoder.Direct(ctx, term, r.limit)
	if err != nil {
		r.logger.Warn("geocoding failed", "term", term, "error", err)
		return results, nil
	}
	for _, l := range found {
		add(l)
	}
	return results, nil
}

// Lookup finds a fixed location by name or display name, ignoring case.
func (r *Resolver) Lookup(name string) (Location, error) {
	name = strings.TrimSpace(name)
	for _, l := range r.fixed {
		if strings.EqualFold(l.Name, name) || strings.EqualFold(l.DisplayName, name) {
			return l, nil
		}
	}
	return Location{}, fmt.Errorf("%w: %q", ErrUnknownLocation, name)
}

// names adapts locations to fuzzy.Source.
type names []Location

func (n names) String(i int) string { return n[i].DisplayName }
func (n names) Len() int            { return len(n) }
