// Package mapview implements the client side of the incremental map
// loading protocol: deciding when a pan or zoom should trigger a
// bounded fetch of aggregated places and merging results into the local
// collection without duplicating markers. It is UI-framework-free so
// the protocol can be tested on its own.
package mapview

import (
	"context"
	"sync"
	"time"

	"github.com/jaeyun/matzip-map/internal/aggregate"
	"github.com/jaeyun/matzip-map/internal/model"
)

// DefaultDebounce is the quiet window applied to view-settle bursts:
// only the last pending fetch within a burst of rapid panning reaches
// the network.
const DefaultDebounce = 500 * time.Millisecond

// Fetcher loads aggregated place groups for a viewport rectangle.
type Fetcher interface {
	FetchBounded(ctx context.Context, b aggregate.Bounds) ([]model.PlaceGroup, error)
}

// Loader tracks viewport state and the merged place collection. The
// unbounded dataset is assumed loaded once at startup via SetInitial;
// bounded incremental loads only happen while panning at the minimum
// ("fully zoomed out") zoom level.
type Loader struct {
	mu       sync.Mutex
	fetcher  Fetcher
	minZoom  int
	debounce time.Duration

	zoom     int
	hasZoom  bool
	inFlight bool
	timer    *time.Timer

	places map[string]model.PlaceGroup
	order  []string // insertion order, for stable listing
}

// Option configures a Loader.
type Option func(*Loader)

// WithDebounce overrides the quiet window; tests use short windows.
func WithDebounce(d time.Duration) Option {
	return func(l *Loader) { l.debounce = d }
}

// NewLoader builds a Loader that fetches through f when the view
// settles while panning at minZoom.
func NewLoader(f Fetcher, minZoom int, opts ...Option) *Loader {
	l := &Loader{
		fetcher:  f,
		minZoom:  minZoom,
		debounce: DefaultDebounce,
		places:   make(map[string]model.PlaceGroup),
	}
	for _, o := range opts {
		o(l)
	}
	return l
}

// SetInitial merges the startup unbounded dataset into the collection.
func (l *Loader) SetInitial(groups []model.PlaceGroup) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.merge(groups)
}

// ViewSettled is called after every pan/zoom motion completes.
//
// A zoom change only records the new level; it never fetches. Settling
// at any level other than the minimum does nothing, since the unbounded
// startup load is a superset of every zoomed-in view. A pan at the
// minimum level schedules a debounced bounded fetch, replacing any
// fetch still pending from an earlier settle. While a fetch is in
// flight new events are dropped entirely; the in-flight result is still
// merged when it lands, even if stale, which is an accepted tradeoff.
func (l *Loader) ViewSettled(b aggregate.Bounds, zoom int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.hasZoom || zoom != l.zoom {
		l.zoom = zoom
		l.hasZoom = true
		return
	}
	if zoom != l.minZoom {
		return
	}
	if l.inFlight {
		return
	}
	if l.timer != nil {
		l.timer.Stop()
	}
	l.timer = time.AfterFunc(l.debounce, func() { l.fire(b) })
}

// fire runs on the debounce timer goroutine once the quiet window ends.
func (l *Loader) fire(b aggregate.Bounds) {
	l.mu.Lock()
	if l.inFlight {
		l.mu.Unlock()
		return
	}
	l.inFlight = true
	l.timer = nil
	l.mu.Unlock()

	groups, err := l.fetcher.FetchBounded(context.Background(), b)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.inFlight = false
	if err != nil {
		return // terminal per-request; the next pan will retry naturally
	}
	l.merge(groups)
}

// merge adds groups whose key is not yet present. Existing entries are
// never overwritten: the bounded-fetch protocol is additive-only.
func (l *Loader) merge(groups []model.PlaceGroup) {
	for _, g := range groups {
		if _, ok := l.places[g.PlaceKey]; ok {
			continue
		}
		l.places[g.PlaceKey] = g
		l.order = append(l.order, g.PlaceKey)
	}
}

// Places returns the merged collection in first-seen order.
func (l *Loader) Places() []model.PlaceGroup {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]model.PlaceGroup, 0, len(l.order))
	for _, k := range l.order {
		out = append(out, l.places[k])
	}
	return out
}

// Get returns the group stored under key, if any.
func (l *Loader) Get(key string) (model.PlaceGroup, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	g, ok := l.places[key]
	return g, ok
}

// Flush waits for any pending debounce timer and in-flight fetch to
// finish. It exists for tests and shutdown paths.
func (l *Loader) Flush(timeout time.Duration) {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		l.mu.Lock()
		idle := l.timer == nil && !l.inFlight
		l.mu.Unlock()
		if idle {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
}
