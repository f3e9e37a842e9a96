package locate

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

const DefaultDebounce = 300 * time.Millisecond

// Searcher is what a Suggester queries once typing settles.
type Searcher interface {
	Search(ctx context.Context, term string) ([]Location, error)
}

// Suggestions are the results for one typed term.
type Suggestions struct {
	Term      string
	Locations []Location
	Err       error
}

// Suggester debounces typed search terms. Only the newest term is searched
// once the quiescence window passes, and results for a term that has since
// been superseded are dropped before apply sees them.
type Suggester struct {
	search   Searcher
	clock    clockwork.Clock
	debounce time.Duration
	apply    func(Suggestions)
	ctx      context.Context

	mu    sync.Mutex
	gen   uint64
	timer clockwork.Timer
}

// NewSuggester calls apply with search results on the searching goroutine.
// apply runs while the suggester is locked and must not call Type. A nil
// clock means real time; a debounce of zero or less means DefaultDebounce.
func NewSuggester(ctx context.Context, search Searcher, clock clockwork.Clock, debounce time.Duration, apply func(Suggestions)) *Suggester {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Suggester{
		search:   search,
		clock:    clock,
		debounce: debounce,
		apply:    apply,
		ctx:      ctx,
	}
}

// Type records a new term and restarts the quiescence window.
func (s *Suggester) Type(term string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	gen := s.gen
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = s.clock.AfterFunc(s.debounce, func() {
		s.run(gen, term)
	})
}

// Stop cancels a pending search and drops any in flight.
func (s *Suggester) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *Suggester) run(gen uint64, term string) {
	locs, err := s.search.Search(s.ctx, term)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return
	}
	s.apply(Suggestions{Term: term, Locations: locs, Err: err})
}
