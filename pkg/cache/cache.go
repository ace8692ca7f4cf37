// Package cache provides a thread-safe generic read-through cache whose
// freshness is decided by a pluggable expiration policy.
// Stale entries are treated as absent and evicted when read.
package cache

import (
	"sync"
	"time"
)

// Policy decides whether an entry stored at storedAt is still fresh at now.
type Policy interface {
	Fresh(storedAt, now time.Time) bool
}

// TTL is a Policy that keeps entries fresh until they are older than the
// duration. An entry exactly TTL old is still fresh.
type TTL time.Duration

// Fresh implements Policy.
func (t TTL) Fresh(storedAt, now time.Time) bool {
	return now.Sub(storedAt) <= time.Duration(t)
}

// PolicyFunc adapts a function to the Policy interface.
type PolicyFunc func(storedAt, now time.Time) bool

// Fresh implements Policy.
func (f PolicyFunc) Fresh(storedAt, now time.Time) bool {
	return f(storedAt, now)
}

// Never is a Policy under which entries never expire.
var Never Policy = PolicyFunc(func(time.Time, time.Time) bool { return true })

// Entry represents a cached value with the time it was stored.
type Entry[T any] struct {
	Value    T         // The cached value
	StoredAt time.Time // When this entry was written
}

// Option configures a Cache.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// call tracks a computation in progress so concurrent callers share its result.
type call[V any] struct {
	done  chan struct{}
	value V
	err   error
}

// Cache provides a thread-safe generic cache implementation.
type Cache[K comparable, V any] struct {
	mu      sync.Mutex
	entries map[K]Entry[V]
	policy  Policy
	now     func() time.Time

	flightMu sync.Mutex
	inFlight map[K]*call[V]
}

// New creates a new cache that judges freshness with policy.
// A nil policy keeps entries forever.
func New[K comparable, V any](policy Policy, opts ...Option) *Cache[K, V] {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	if policy == nil {
		policy = Never
	}
	return &Cache[K, V]{
		entries:  make(map[K]Entry[V]),
		policy:   policy,
		now:      o.now,
		inFlight: make(map[K]*call[V]),
	}
}

// Get retrieves a value from the cache by key.
// Returns the value and true if found and fresh under the cache policy.
// A stale entry is evicted and reported as missing.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	return c.get(key, c.policy)
}

// GetWithin is like Get but accepts entries no older than maxAge,
// regardless of the cache policy.
func (c *Cache[K, V]) GetWithin(key K, maxAge time.Duration) (V, bool) {
	return c.get(key, TTL(maxAge))
}

func (c *Cache[K, V]) get(key K, policy Policy) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, exists := c.entries[key]
	if !exists {
		var zero V
		return zero, false
	}
	if !policy.Fresh(entry.StoredAt, c.now()) {
		delete(c.entries, key)
		var zero V
		return zero, false
	}

	return entry.Value, true
}

// Set stores a value in the cache stamped with the current time,
// replacing any existing value for key.
func (c *Cache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = Entry[V]{
		Value:    value,
		StoredAt: c.now(),
	}
}

// Delete removes a value from the cache by key.
func (c *Cache[K, V]) Delete(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, key)
}

// Clear removes all entries from the cache.
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	clear(c.entries)
}

// Len returns the number of stored entries, stale ones included.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}

// CleanExpired removes all entries the policy no longer considers fresh.
func (c *Cache[K, V]) CleanExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for key, entry := range c.entries {
		if !c.policy.Fresh(entry.StoredAt, now) {
			delete(c.entries, key)
		}
	}
}

// GetOrCompute returns the fresh cached value for key or runs compute to
// produce it. Concurrent callers for the same key wait for the computation in
// flight and share its value. When that computation fails, each waiter runs
// its own compute instead. Errors are never cached.
func (c *Cache[K, V]) GetOrCompute(key K, compute func() (V, error)) (V, error) {
	if value, ok := c.Get(key); ok {
		return value, nil
	}

	c.flightMu.Lock()
	// Value might have been stored while waiting for the lock
	if value, ok := c.Get(key); ok {
		c.flightMu.Unlock()
		return value, nil
	}
	if inflight, ok := c.inFlight[key]; ok {
		c.flightMu.Unlock()
		<-inflight.done
		if inflight.err == nil {
			return inflight.value, nil
		}
		// Only successes are shared
		return c.computeAndStore(key, compute)
	}
	cl := &call[V]{done: make(chan struct{})}
	c.inFlight[key] = cl
	c.flightMu.Unlock()

	cl.value, cl.err = c.computeAndStore(key, compute)

	c.flightMu.Lock()
	delete(c.inFlight, key)
	c.flightMu.Unlock()
	close(cl.done)

	return cl.value, cl.err
}

func (c *Cache[K, V]) computeAndStore(key K, compute func() (V, error)) (V, error) {
	value, err := compute()
	if err != nil {
		var zero V
		return zero, err
	}
	c.Set(key, value)
	return value, nil
}
