package cache

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fakeClock is a manually advanced clock.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestTTLPolicy(t *testing.T) {
	stored := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		age  time.Duration
		want bool
	}{
		{name: "Fresh", age: time.Minute, want: true},
		{name: "JustBeforeTTL", age: 5*time.Minute - time.Millisecond, want: true},
		{name: "ExactlyAtTTL", age: 5 * time.Minute, want: true},
		{name: "JustPastTTL", age: 5*time.Minute + time.Millisecond, want: false},
		{name: "LongExpired", age: time.Hour, want: false},
	}

	policy := TTL(5 * time.Minute)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := policy.Fresh(stored, stored.Add(tt.age)); got != tt.want {
				t.Errorf("Fresh(age=%v) = %v, want %v", tt.age, got, tt.want)
			}
		})
	}
}

func TestGetSet(t *testing.T) {
	clock := newFakeClock()
	c := New[string, string](TTL(5*time.Minute), WithClock(clock.Now))

	if _, ok := c.Get("jobs"); ok {
		t.Fatal("Get on empty cache should miss")
	}

	c.Set("jobs", "payload")
	clock.Advance(4 * time.Minute)

	got, ok := c.Get("jobs")
	if !ok || got != "payload" {
		t.Fatalf("Get() = %q, %v; want payload, true", got, ok)
	}

	clock.Advance(2 * time.Minute)
	if _, ok := c.Get("jobs"); ok {
		t.Error("Get should miss once the entry is older than the TTL")
	}
	if c.Len() != 0 {
		t.Errorf("stale entry should be evicted on read, Len() = %d", c.Len())
	}
}

func TestGetAtExactTTL(t *testing.T) {
	clock := newFakeClock()
	c := New[string, string](TTL(5*time.Minute), WithClock(clock.Now))

	c.Set("k", "v")
	clock.Advance(5 * time.Minute)
	if got, ok := c.Get("k"); !ok || got != "v" {
		t.Fatalf("Get() at exactly the TTL = %q, %v; want v, true", got, ok)
	}

	clock.Advance(time.Nanosecond)
	if _, ok := c.Get("k"); ok {
		t.Error("Get should miss once the entry is past the TTL")
	}
}

func TestSetRefreshesTimestamp(t *testing.T) {
	clock := newFakeClock()
	c := New[string, int](TTL(time.Minute), WithClock(clock.Now))

	c.Set("k", 1)
	clock.Advance(50 * time.Second)
	c.Set("k", 2)
	clock.Advance(50 * time.Second)

	got, ok := c.Get("k")
	if !ok || got != 2 {
		t.Errorf("Get() = %d, %v; want 2, true", got, ok)
	}
}

func TestGetWithin(t *testing.T) {
	clock := newFakeClock()
	c := New[string, string](TTL(time.Hour), WithClock(clock.Now))

	c.Set("projects", "p")
	clock.Advance(2 * time.Second)

	if _, ok := c.GetWithin("projects", 5*time.Second); !ok {
		t.Error("GetWithin should hit for an entry younger than maxAge")
	}
	if _, ok := c.GetWithin("projects", 2*time.Second); !ok {
		t.Error("GetWithin should hit for an entry exactly maxAge old")
	}
	if _, ok := c.GetWithin("projects", time.Second); ok {
		t.Error("GetWithin should miss for an entry older than maxAge")
	}
	if _, ok := c.Get("projects"); ok {
		t.Error("GetWithin evicts the stale entry, so a later Get should miss")
	}
}

func TestCustomPolicy(t *testing.T) {
	clock := newFakeClock()
	var checks int
	policy := PolicyFunc(func(storedAt, now time.Time) bool {
		checks++
		return now.Sub(storedAt) < 10*time.Second
	})
	c := New[string, string](policy, WithClock(clock.Now))

	c.Set("k", "v")
	clock.Advance(10 * time.Second)
	if _, ok := c.Get("k"); ok {
		t.Error("custom policy should reject an entry 10s old")
	}
	if checks != 1 {
		t.Errorf("policy consulted %d times, want 1", checks)
	}
}

func TestNilPolicyNeverExpires(t *testing.T) {
	clock := newFakeClock()
	c := New[string, string](nil, WithClock(clock.Now))

	c.Set("k", "v")
	clock.Advance(24 * 365 * time.Hour)
	if _, ok := c.Get("k"); !ok {
		t.Error("nil policy should keep entries forever")
	}
}

func TestDeleteAndClear(t *testing.T) {
	c := New[string, int](TTL(time.Minute))
	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("c", 3)

	c.Delete("a")
	if _, ok := c.Get("a"); ok {
		t.Error("deleted key should miss")
	}
	c.Delete("missing")

	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Len() after Clear = %d, want 0", c.Len())
	}
}

func TestCleanExpired(t *testing.T) {
	clock := newFakeClock()
	c := New[string, int](TTL(time.Minute), WithClock(clock.Now))

	c.Set("old", 1)
	clock.Advance(2 * time.Minute)
	c.Set("new", 2)

	c.CleanExpired()
	if c.Len() != 1 {
		t.Fatalf("Len() after CleanExpired = %d, want 1", c.Len())
	}
	if _, ok := c.Get("new"); !ok {
		t.Error("fresh entry should survive CleanExpired")
	}
}

func TestGetOrCompute(t *testing.T) {
	t.Run("CachesSuccess", func(t *testing.T) {
		c := New[string, string](TTL(time.Minute))
		var calls int
		compute := func() (string, error) {
			calls++
			return "value", nil
		}

		for j := 0; j < 3; j++ {
			got, err := c.GetOrCompute("k", compute)
			if err != nil || got != "value" {
				t.Fatalf("GetOrCompute() = %q, %v", got, err)
			}
		}
		if calls != 1 {
			t.Errorf("compute called %d times, want 1", calls)
		}
	})

	t.Run("DoesNotCacheErrors", func(t *testing.T) {
		c := New[string, string](TTL(time.Minute))
		wantErr := errors.New("boom")
		var calls int

		_, err := c.GetOrCompute("k", func() (string, error) {
			calls++
			return "", wantErr
		})
		if !errors.Is(err, wantErr) {
			t.Fatalf("GetOrCompute() error = %v, want %v", err, wantErr)
		}
		if c.Len() != 0 {
			t.Errorf("failed compute should not populate the cache")
		}

		got, err := c.GetOrCompute("k", func() (string, error) {
			calls++
			return "ok", nil
		})
		if err != nil || got != "ok" {
			t.Errorf("GetOrCompute() after failure = %q, %v", got, err)
		}
		if calls != 2 {
			t.Errorf("compute called %d times, want 2", calls)
		}
	})

	t.Run("SharesConcurrentComputation", func(t *testing.T) {
		c := New[string, int](TTL(time.Minute))
		var calls atomic.Int32
		release := make(chan struct{})

		const workers = 8
		var wg sync.WaitGroup
		results := make([]int, workers)
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				v, err := c.GetOrCompute("k", func() (int, error) {
					calls.Add(1)
					<-release
					return 42, nil
				})
				if err != nil {
					t.Errorf("GetOrCompute() error = %v", err)
				}
				results[i] = v
			}(i)
		}

		// Give the workers a moment to queue up behind the first compute.
		time.Sleep(20 * time.Millisecond)
		close(release)
		wg.Wait()

		if n := calls.Load(); n != 1 {
			t.Errorf("compute called %d times, want 1", n)
		}
		for i, v := range results {
			if v != 42 {
				t.Errorf("worker %d got %d, want 42", i, v)
			}
		}
	})

	t.Run("WaiterRecomputesAfterLeaderFailure", func(t *testing.T) {
		c := New[string, int](TTL(time.Minute))
		leaderErr := errors.New("leader context canceled")
		started := make(chan struct{})
		release := make(chan struct{})

		leaderDone := make(chan error, 1)
		go func() {
			_, err := c.GetOrCompute("k", func() (int, error) {
				close(started)
				<-release
				return 0, leaderErr
			})
			leaderDone <- err
		}()
		<-started

		waiterDone := make(chan struct{})
		var got int
		var waiterErr error
		go func() {
			defer close(waiterDone)
			got, waiterErr = c.GetOrCompute("k", func() (int, error) {
				return 42, nil
			})
		}()

		// Give the waiter a moment to queue up behind the failing compute.
		time.Sleep(20 * time.Millisecond)
		close(release)

		if err := <-leaderDone; !errors.Is(err, leaderErr) {
			t.Errorf("leader error = %v, want %v", err, leaderErr)
		}
		<-waiterDone
		if waiterErr != nil || got != 42 {
			t.Errorf("waiter GetOrCompute() = %d, %v; want 42, nil", got, waiterErr)
		}
		if v, ok := c.Get("k"); !ok || v != 42 {
			t.Errorf("Get() after waiter recompute = %d, %v; want 42, true", v, ok)
		}
	})
}
