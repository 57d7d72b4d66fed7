package search

import (
	"context"
	"sync"
)

// State tells a consumer which of the distinct feed situations it is looking at, so an
// error is never mistaken for an empty result.
type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateReady   State = "ready"
	StateEmpty   State = "empty"
	StateError   State = "error"
)

type LoadFunc[T any] func(ctx context.Context, offset int) (Page[T], error)

// Snapshot is a copy of a feed's state at one moment.
type Snapshot[T any] struct {
	Items      []T    `json:"items"`
	TotalCount int    `json:"totalCount"`
	HasMore    bool   `json:"hasMore"`
	Loading    bool   `json:"loading"`
	State      State  `json:"state"`
	Error      string `json:"error,omitempty"`
	Fallback   bool   `json:"fallback"`
}

// Feed accumulates offset-paginated results for one consumer.
//
// A load at offset 0 replaces the items; any other offset appends to them. Every load
// takes a sequence number and its response is applied only while that number is still
// the latest, so a slow response to an old query cannot overwrite a newer one.
type Feed[T any] struct {
	mu       sync.Mutex
	fallback func() []T

	seq          uint64
	items        []T
	totalCount   int
	hasMore      bool
	state        State
	err          error
	usedFallback bool
}

// NewFeed creates an idle feed. When fallback is non-nil a failed load that leaves the
// feed without items fills it with fallback() and marks the snapshot as Fallback.
func NewFeed[T any](fallback func() []T) *Feed[T] {
	return &Feed[T]{fallback: fallback, state: StateIdle}
}

// Load runs load at offset and applies its result. The returned error is the load's own
// failure; a response that arrived after a newer load started is dropped and reported
// with a nil error alongside the current snapshot.
func (f *Feed[T]) Load(ctx context.Context, offset int, load LoadFunc[T]) (Snapshot[T], error) {
	f.mu.Lock()
	f.seq++
	seq := f.seq
	f.state = StateLoading
	f.mu.Unlock()

	page, err := load(ctx, offset)

	f.mu.Lock()
	defer f.mu.Unlock()

	if seq != f.seq {
		return f.snapshotLocked(), nil
	}
	if err != nil {
		f.failLocked(offset, err)
		return f.snapshotLocked(), err
	}

	// canned items never mix with real ones
	if offset == 0 || f.usedFallback {
		f.items = append([]T(nil), page.Items...)
	} else {
		f.items = append(f.items, page.Items...)
	}
	f.totalCount = page.TotalCount
	f.hasMore = page.HasMore
	f.err = nil
	f.usedFallback = false
	if len(f.items) == 0 {
		f.state = StateEmpty
	} else {
		f.state = StateReady
	}

	return f.snapshotLocked(), nil
}

// LoadMore continues from the number of items already held. It is a no-op once the
// server has reported there is nothing more.
func (f *Feed[T]) LoadMore(ctx context.Context, load LoadFunc[T]) (Snapshot[T], error) {
	f.mu.Lock()
	offset := len(f.items)
	if f.usedFallback {
		offset = 0
	}
	done := f.state == StateReady && !f.hasMore
	snap := f.snapshotLocked()
	f.mu.Unlock()

	if done {
		return snap, nil
	}
	return f.Load(ctx, offset, load)
}

// Reset drops all items and invalidates loads still in flight.
func (f *Feed[T]) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	f.items = nil
	f.totalCount = 0
	f.hasMore = false
	f.err = nil
	f.usedFallback = false
	f.state = StateIdle
}

func (f *Feed[T]) Snapshot() Snapshot[T] {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshotLocked()
}

func (f *Feed[T]) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

func (f *Feed[T]) failLocked(offset int, err error) {
	f.err = err
	f.state = StateError

	if offset == 0 {
		f.items = nil
		f.totalCount = 0
		f.hasMore = false
		f.usedFallback = false
	}
	if len(f.items) == 0 && f.fallback != nil {
		f.items = f.fallback()
		f.totalCount = len(f.items)
		f.hasMore = false
		f.usedFallback = true
	}
}

func (f *Feed[T]) snapshotLocked() Snapshot[T] {
	items := make([]T, len(f.items))
	copy(items, f.items)

	snap := Snapshot[T]{
		Items:      items,
		TotalCount: f.totalCount,
		HasMore:    f.hasMore,
		Loading:    f.state == StateLoading,
		State:      f.state,
		Fallback:   f.usedFallback,
	}
	if f.err != nil {
		snap.Error = f.err.Error()
	}
	return snap
}
