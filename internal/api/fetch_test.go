package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackoff(t *testing.T) {
	tests := []struct {
		name     string
		attempts int
		want     []time.Duration
	}{
		{name: "ThreeAttempts", attempts: 3, want: []time.Duration{100 * time.Millisecond, 200 * time.Millisecond}},
		{name: "FourAttempts", attempts: 4, want: []time.Duration{100 * time.Millisecond, 200 * time.Millisecond, 400 * time.Millisecond}},
		{name: "SingleAttempt", attempts: 1, want: nil},
		{name: "ZeroTreatedAsOne", attempts: 0, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := Backoff(100*time.Millisecond, tt.attempts)
			var got []time.Duration
			for {
				next, stop := b.Next()
				if stop {
					break
				}
				got = append(got, next)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

// statusSequence answers with the given statuses in order, repeating the last.
func statusSequence(calls *atomic.Int32, statuses ...int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n := int(calls.Add(1))
		status := statuses[len(statuses)-1]
		if n <= len(statuses) {
			status = statuses[n-1]
		}
		w.WriteHeader(status)
		if status == http.StatusOK {
			_, _ = w.Write([]byte(`{"ok":true}`))
		}
	}
}

func TestFetchWithRetry(t *testing.T) {
	ctx := context.Background()

	t.Run("SucceedsFirstTry", func(t *testing.T) {
		var calls atomic.Int32
		ts := httptest.NewServer(statusSequence(&calls, http.StatusOK))
		defer ts.Close()

		c := New(ts.URL, WithBackoff(time.Millisecond))
		body, err := c.FetchWithRetry(ctx, ts.URL, http.MethodGet)
		require.NoError(t, err)
		assert.JSONEq(t, `{"ok":true}`, string(body))
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("RecoversAfterFailures", func(t *testing.T) {
		var calls atomic.Int32
		ts := httptest.NewServer(statusSequence(&calls,
			http.StatusInternalServerError, http.StatusBadGateway, http.StatusOK))
		defer ts.Close()

		c := New(ts.URL, WithBackoff(time.Millisecond), WithRetries(3))
		body, err := c.FetchWithRetry(ctx, ts.URL, http.MethodGet)
		require.NoError(t, err)
		assert.JSONEq(t, `{"ok":true}`, string(body))
		assert.Equal(t, int32(3), calls.Load())
	})

	t.Run("SurfacesLastStatusAfterExhaustion", func(t *testing.T) {
		var calls atomic.Int32
		ts := httptest.NewServer(statusSequence(&calls, http.StatusServiceUnavailable))
		defer ts.Close()

		c := New(ts.URL, WithBackoff(time.Millisecond), WithRetries(3))
		_, err := c.FetchWithRetry(ctx, ts.URL, http.MethodGet)
		require.Error(t, err)

		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusServiceUnavailable, apiErr.Status)
		assert.Equal(t, "API request failed: Service Unavailable", apiErr.Message)
		assert.Equal(t, int32(3), calls.Load(), "never more than the configured attempts")
	})

	t.Run("TimeoutIsRetriedAndReported", func(t *testing.T) {
		var calls atomic.Int32
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			select {
			case <-r.Context().Done():
			case <-time.After(2 * time.Second):
			}
		}))
		defer ts.Close()

		c := New(ts.URL,
			WithTimeout(20*time.Millisecond),
			WithBackoff(time.Millisecond),
			WithRetries(2),
		)
		_, err := c.FetchWithRetry(ctx, ts.URL, http.MethodGet)
		require.Error(t, err)
		assert.Equal(t, http.StatusRequestTimeout, StatusOf(err))
		assert.Equal(t, "Request timeout", err.Error())
		assert.Equal(t, int32(2), calls.Load())
	})

	t.Run("NoAttemptsConfigured", func(t *testing.T) {
		var calls atomic.Int32
		ts := httptest.NewServer(statusSequence(&calls, http.StatusOK))
		defer ts.Close()

		c := New(ts.URL, WithRetries(0))
		_, err := c.FetchWithRetry(ctx, ts.URL, http.MethodGet)
		require.Error(t, err)
		assert.Equal(t, "Maximum retries reached", err.Error())
		assert.Zero(t, calls.Load())
	})

	t.Run("CancelledContextStops", func(t *testing.T) {
		var calls atomic.Int32
		ts := httptest.NewServer(statusSequence(&calls, http.StatusOK))
		defer ts.Close()

		cctx, cancel := context.WithCancel(ctx)
		cancel()

		c := New(ts.URL)
		_, err := c.FetchWithRetry(cctx, ts.URL, http.MethodGet)
		require.ErrorIs(t, err, context.Canceled)
		assert.Zero(t, calls.Load())
	})

	t.Run("NetworkErrorIsRetried", func(t *testing.T) {
		ts := httptest.NewServer(http.NotFoundHandler())
		url := ts.URL
		ts.Close()

		c := New(url, WithBackoff(time.Millisecond), WithRetries(2))
		_, err := c.FetchWithRetry(ctx, url, http.MethodGet)
		require.Error(t, err)
		assert.Zero(t, StatusOf(err))
	})

	t.Run("DelaysGrowExponentially", func(t *testing.T) {
		var (
			mu    sync.Mutex
			times []time.Time
		)
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			mu.Lock()
			times = append(times, time.Now())
			mu.Unlock()
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer ts.Close()

		base := 20 * time.Millisecond
		c := New(ts.URL, WithBackoff(base), WithRetries(3))
		_, err := c.FetchWithRetry(ctx, ts.URL, http.MethodGet)
		require.Error(t, err)

		mu.Lock()
		defer mu.Unlock()
		require.Len(t, times, 3)
		assert.GreaterOrEqual(t, times[1].Sub(times[0]), base)
		assert.GreaterOrEqual(t, times[2].Sub(times[1]), 2*base)
	})
}
