// Package querycache is a read-through cache for backend collections. Reads
// for one key share a single in-flight request, invalidation is per resource
// family and refetches in the background, and a result that arrives for a key
// nobody holds anymore is dropped on the floor.
package querycache

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Key identifies one cached read: a resource name plus its canonical filter
// string. Distinct filters over the same resource are distinct entries but
// belong to the same family for invalidation.
type Key struct {
	Resource string
	Filter   string
}

func (k Key) String() string {
	if k.Filter == "" {
		return k.Resource
	}
	return k.Resource + "?" + k.Filter
}

type Status int

const (
	StatusPending Status = iota
	StatusSuccess
	StatusError
)

// FetchFunc loads fresh data for a key.
type FetchFunc func(ctx context.Context) (any, error)

type entry struct {
	status        Status
	data          any
	err           error
	lastFetchedAt time.Time

	stale    bool
	fetching bool
	// dirty records an invalidation that landed while a refetch was already
	// in flight; it coalesces into exactly one follow-up refetch.
	dirty bool

	fetch FetchFunc
}

type Cache struct {
	mu      sync.Mutex
	entries map[Key]*entry
	group   singleflight.Group
}

func New() *Cache {
	return &Cache{entries: make(map[Key]*entry)}
}

// Read returns the cached value for key, fetching it when the entry is
// missing, stale, or errored. Concurrent readers of one key share a single
// network call.
func Read[T any](ctx context.Context, c *Cache, key Key, fetch func(ctx context.Context) (T, error)) (T, error) {
	v, err := c.read(ctx, key, func(ctx context.Context) (any, error) {
		return fetch(ctx)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}

func (c *Cache) read(ctx context.Context, key Key, fetch FetchFunc) (any, error) {
	c.mu.Lock()
	e, ok := c.entries[key]
	if !ok {
		e = &entry{status: StatusPending}
		c.entries[key] = e
	}
	e.fetch = fetch

	if e.status == StatusSuccess && !e.stale {
		data := e.data
		c.mu.Unlock()
		return data, nil
	}

	e.fetching = true
	c.mu.Unlock()

	return c.fetchShared(ctx, key, e, fetch)
}

// fetchShared funnels every fetch for a key through the singleflight group,
// so a background refetch and any number of concurrent readers end up on one
// network request.
func (c *Cache) fetchShared(ctx context.Context, key Key, e *entry, fetch FetchFunc) (any, error) {
	v, err, _ := c.group.Do(key.String(), func() (any, error) {
		data, ferr := fetch(ctx)
		c.commit(key, e, data, ferr)
		return data, ferr
	})
	return v, err
}

// commit applies a finished fetch. If the entry was dropped in the meantime
// (logout, 401 reset), the result is discarded. An invalidation that arrived
// mid-flight triggers one more refetch.
func (c *Cache) commit(key Key, e *entry, data any, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	cur, ok := c.entries[key]
	if !ok || cur != e {
		return
	}

	e.fetching = false
	e.stale = false
	e.lastFetchedAt = time.Now()
	if err != nil {
		e.status = StatusError
		e.err = err
		e.data = nil
	} else {
		e.status = StatusSuccess
		e.data = data
		e.err = nil
	}

	if e.dirty {
		e.dirty = false
		e.stale = true
		// the finished singleflight call may still be winding down; forget it
		// so the follow-up refetch starts a fresh request
		c.group.Forget(key.String())
		c.refetchLocked(key, e)
	}
}

// Invalidate marks every entry of the resource family stale and refetches
// each one in the background. It never blocks the caller. An entry already
// mid-refetch is only flagged; its follow-up runs once the current request
// finishes, keeping at most one request per key in flight.
func (c *Cache) Invalidate(resource string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k, e := range c.entries {
		if k.Resource != resource {
			continue
		}
		e.stale = true
		if e.fetching {
			e.dirty = true
			continue
		}
		c.refetchLocked(k, e)
	}
}

func (c *Cache) refetchLocked(key Key, e *entry) {
	if e.fetch == nil {
		return
	}
	e.fetching = true
	fetch := e.fetch
	// background refetch is not tied to any caller's context
	go func() {
		_, _ = c.fetchShared(context.Background(), key, e, fetch)
	}()
}

// Forget drops a single entry. A fetch still in flight for it will be
// discarded on completion.
func (c *Cache) Forget(key Key) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Clear drops everything. Used on logout and by the 401 hook.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[Key]*entry)
}

// Snapshot reports the current state of an entry without touching it.
func (c *Cache) Snapshot(key Key) (data any, status Status, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return nil, StatusPending, false
	}
	return e.data, e.status, true
}
