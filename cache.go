package main

import (
	"log/slog"
	"sync"
	"time"
)

// SnapshotCache is the time-windowed cache in front of the process sampler.
// The stored snapshot is replaced wholesale under the lock, so readers never
// observe a half-updated process list. Background refreshes go through a
// small semaphore so a slow OS query can never pile up goroutines or block
// a classification pass.
type SnapshotCache struct {
	mu         sync.RWMutex
	snap       Snapshot
	lastSample time.Time

	ttl    time.Duration
	sample func() ([]ProcessRecord, error)

	// inFlight guarantees at most one refresh at a time; workers bounds the
	// number of queued background requests.
	inFlight chan struct{}
	workers  chan struct{}
}

// NewSnapshotCache builds a cache around sample with the given TTL and
// background worker budget.
func NewSnapshotCache(ttl time.Duration, workers int, sample func() ([]ProcessRecord, error)) *SnapshotCache {
	if workers < 1 {
		workers = 1
	}
	return &SnapshotCache{
		ttl:      ttl,
		sample:   sample,
		inFlight: make(chan struct{}, 1),
		workers:  make(chan struct{}, workers),
	}
}

// Get returns the current snapshot, refreshing it first when the TTL has
// expired. If another refresh is already in flight the existing snapshot is
// returned as-is; callers never wait on a sample they did not trigger.
func (c *SnapshotCache) Get(now time.Time) Snapshot {
	c.mu.RLock()
	snap, last := c.snap, c.lastSample
	c.mu.RUnlock()

	if now.Sub(last) <= c.ttl {
		return snap
	}

	select {
	case c.inFlight <- struct{}{}:
		defer func() { <-c.inFlight }()
		c.refresh()
	default:
		// A refresh is running; serve the last completed snapshot.
		return snap
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snap
}

// ForceRefresh bypasses the TTL unconditionally. Used after a kill action so
// the next classification pass does not show terminated processes.
func (c *SnapshotCache) ForceRefresh() {
	c.inFlight <- struct{}{}
	defer func() { <-c.inFlight }()
	c.refresh()
}

// RefreshAsync schedules a background refresh and returns immediately. The
// request is dropped when the worker budget is exhausted; the periodic
// scheduler will simply fire again.
func (c *SnapshotCache) RefreshAsync() {
	select {
	case c.workers <- struct{}{}:
	default:
		return
	}

	go func() {
		defer func() { <-c.workers }()
		select {
		case c.inFlight <- struct{}{}:
			defer func() { <-c.inFlight }()
			c.refresh()
		default:
		}
	}()
}

// LastSample reports when the stored snapshot was taken.
func (c *SnapshotCache) LastSample() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastSample
}

func (c *SnapshotCache) refresh() {
	records, err := c.sample()
	if err != nil {
		// Keep serving the previous snapshot; the next tick retries.
		slog.Error("Process sample failed", "err", err)
		return
	}

	now := time.Now()
	c.mu.Lock()
	c.snap = newSnapshot(records, now)
	c.lastSample = now
	c.mu.Unlock()
}
