package search

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu      sync.Mutex
	queries []string
	results []string
}

func (r *recorder) searched(q string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queries = append(r.queries, q)
}

func (r *recorder) done(q string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results = append(r.results, q)
}

func (r *recorder) snapshot() ([]string, []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.queries...), append([]string(nil), r.results...)
}

func TestDebouncerCoalescesKeystrokes(t *testing.T) {
	rec := &recorder{}
	d := NewDebouncerWithDelay(20*time.Millisecond,
		func(ctx context.Context, q string) (interface{}, error) {
			rec.searched(q)
			return q, nil
		},
		func(q string, results interface{}, err error) {
			rec.done(q)
		})

	ctx := context.Background()
	d.QueryChanged(ctx, "off")
	d.QueryChanged(ctx, "offi")
	d.QueryChanged(ctx, "office")

	time.Sleep(100 * time.Millisecond)

	queries, results := rec.snapshot()
	require.Equal(t, []string{"office"}, queries, "only the final keystroke searches")
	assert.Equal(t, []string{"office"}, results)
}

func TestDebouncerMinLength(t *testing.T) {
	rec := &recorder{}
	d := NewDebouncerWithDelay(10*time.Millisecond,
		func(ctx context.Context, q string) (interface{}, error) {
			rec.searched(q)
			return nil, nil
		},
		func(q string, results interface{}, err error) {})

	ctx := context.Background()
	d.QueryChanged(ctx, "ab")
	d.QueryChanged(ctx, "  a  ") // trims below the minimum

	time.Sleep(50 * time.Millisecond)
	queries, _ := rec.snapshot()
	assert.Empty(t, queries)
}

func TestDebouncerDropsStaleResponse(t *testing.T) {
	rec := &recorder{}
	release := make(chan struct{})
	d := NewDebouncerWithDelay(5*time.Millisecond,
		func(ctx context.Context, q string) (interface{}, error) {
			if q == "slow query" {
				<-release
			}
			return q, nil
		},
		func(q string, results interface{}, err error) {
			rec.done(q)
		})

	ctx := context.Background()
	d.QueryChanged(ctx, "slow query")
	time.Sleep(20 * time.Millisecond) // let the slow search start

	d.QueryChanged(ctx, "fast query")
	time.Sleep(20 * time.Millisecond)
	close(release) // slow response arrives after the fast one

	time.Sleep(20 * time.Millisecond)
	_, results := rec.snapshot()
	assert.Equal(t, []string{"fast query"}, results, "the superseded response is discarded")
}

func TestDebouncerCancel(t *testing.T) {
	rec := &recorder{}
	d := NewDebouncerWithDelay(20*time.Millisecond,
		func(ctx context.Context, q string) (interface{}, error) {
			rec.searched(q)
			return nil, nil
		},
		func(q string, results interface{}, err error) {})

	d.QueryChanged(context.Background(), "office")
	d.Cancel()

	time.Sleep(60 * time.Millisecond)
	queries, _ := rec.snapshot()
	assert.Empty(t, queries)
}
