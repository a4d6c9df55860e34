package search

import (
	"context"
	"strings"
	"sync"
	"time"
)

const (
	debounceDelay  = 300 * time.Millisecond
	minQueryLength = 3
)

// SearchFunc performs the actual remote group search.
type SearchFunc func(ctx context.Context, query string) (interface{}, error)

// ResultFunc receives the results for the query that produced them.
type ResultFunc func(query string, results interface{}, err error)

// Debouncer coalesces keystrokes into one search per pause and drops
// responses that arrive after a newer query fired. Queries shorter than
// three trimmed characters never fire.
type Debouncer struct {
	delay  time.Duration
	search SearchFunc
	onDone ResultFunc

	mu    sync.Mutex
	timer *time.Timer
	gen   uint64
}

func NewDebouncer(search SearchFunc, onDone ResultFunc) *Debouncer {
	return &Debouncer{
		delay:  debounceDelay,
		search: search,
		onDone: onDone,
	}
}

// NewDebouncerWithDelay exists for tests running on short clocks.
func NewDebouncerWithDelay(delay time.Duration, search SearchFunc, onDone ResultFunc) *Debouncer {
	d := NewDebouncer(search, onDone)
	d.delay = delay
	return d
}

// QueryChanged feeds the current search-box text. Each call supersedes
// any pending or in-flight search.
func (d *Debouncer) QueryChanged(ctx context.Context, query string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.gen++
	gen := d.gen

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}

	trimmed := strings.TrimSpace(query)
	if len(trimmed) < minQueryLength {
		return
	}

	d.timer = time.AfterFunc(d.delay, func() {
		d.fire(ctx, trimmed, gen)
	})
}

// Cancel stops any pending search and invalidates in-flight responses.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

func (d *Debouncer) fire(ctx context.Context, query string, gen uint64) {
	if d.stale(gen) {
		return
	}

	results, err := d.search(ctx, query)

	// A slow early response must not clobber a faster later one.
	if d.stale(gen) {
		return
	}
	d.onDone(query, results, err)
}

func (d *Debouncer) stale(gen uint64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return gen != d.gen
}
