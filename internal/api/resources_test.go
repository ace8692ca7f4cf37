package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/d-kuro/termfolio/pkg/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const jobsJSON = `[{"id":1,"company":"Acme","title":"Engineer","start_date":"2022-01-01","end_date":null,"is_current":true,"technologies":[],"achievements":[]}]`

// recorder is a fake content API that counts requests and remembers the last URL.
type recorder struct {
	calls   atomic.Int32
	mu      sync.Mutex
	lastURL string
	status  int
	body    string
}

func (r *recorder) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.calls.Add(1)
	r.mu.Lock()
	r.lastURL = req.URL.String()
	status, body := r.status, r.body
	r.mu.Unlock()

	if status == 0 {
		status = http.StatusOK
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func (r *recorder) URL() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastURL
}

func (r *recorder) set(status int, body string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.status, r.body = status, body
}

func newTestClient(t *testing.T, body string, opts ...Option) (*Client, *recorder) {
	t.Helper()
	rec := &recorder{body: body}
	ts := httptest.NewServer(rec)
	t.Cleanup(ts.Close)

	opts = append([]Option{WithBackoff(time.Millisecond)}, opts...)
	return New(ts.URL, opts...), rec
}

func TestJobsCached(t *testing.T) {
	c, rec := newTestClient(t, jobsJSON)
	ctx := context.Background()

	first, err := c.Jobs(ctx)
	require.NoError(t, err)
	second, err := c.Jobs(ctx)
	require.NoError(t, err)

	assert.Equal(t, int32(1), rec.calls.Load())
	assert.Equal(t, first, second)
	require.Len(t, first, 1)
	assert.Equal(t, "Acme", first[0].Company)
	assert.Nil(t, first[0].EndDate)
	assert.Equal(t, "/jobs/", rec.URL())
}

func TestJobsConcurrentMissesShareRequest(t *testing.T) {
	rec := &recorder{body: jobsJSON}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(50 * time.Millisecond)
		rec.ServeHTTP(w, r)
	}))
	defer ts.Close()

	c := New(ts.URL)
	var wg sync.WaitGroup
	for j := 0; j < 5; j++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.Jobs(context.Background())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), rec.calls.Load())
}

func TestCancelledLeaderDoesNotFailWaiters(t *testing.T) {
	var calls atomic.Int32
	firstArrived := make(chan struct{})
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			close(firstArrived)
			<-r.Context().Done()
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	t.Cleanup(ts.Close)
	c := New(ts.URL, WithBackoff(time.Millisecond))

	leaderCtx, cancel := context.WithCancel(context.Background())
	leaderErr := make(chan error, 1)
	go func() {
		_, err := c.Categories(leaderCtx)
		leaderErr <- err
	}()
	<-firstArrived

	waiterErr := make(chan error, 1)
	go func() {
		_, err := c.Categories(context.Background())
		waiterErr <- err
	}()

	// Let the waiter queue behind the in-flight request before cancelling it.
	time.Sleep(20 * time.Millisecond)
	cancel()

	require.Error(t, <-leaderErr)
	require.NoError(t, <-waiterErr, "waiter with a live context should fetch on its own")
	assert.Equal(t, int32(2), calls.Load())
}

func TestCacheExpiry(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	var mu sync.Mutex
	clock := func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return now
	}
	store := cache.New[string, []byte](cache.TTL(5*time.Minute), cache.WithClock(clock))
	c, rec := newTestClient(t, jobsJSON, WithCache(store))
	ctx := context.Background()

	_, err := c.Jobs(ctx)
	require.NoError(t, err)

	mu.Lock()
	now = now.Add(5*time.Minute - time.Millisecond)
	mu.Unlock()
	_, err = c.Jobs(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(1), rec.calls.Load(), "entry younger than the TTL is fresh")

	mu.Lock()
	now = now.Add(time.Millisecond)
	mu.Unlock()
	_, err = c.Jobs(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(1), rec.calls.Load(), "entry exactly TTL old is still fresh")

	mu.Lock()
	now = now.Add(time.Millisecond)
	mu.Unlock()
	_, err = c.Jobs(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(2), rec.calls.Load(), "entry past the TTL is refetched")
}

func TestClearCache(t *testing.T) {
	c, rec := newTestClient(t, `[]`)
	ctx := context.Background()

	_, err := c.Projects(ctx)
	require.NoError(t, err)
	c.ClearCache()
	_, err = c.Projects(ctx)
	require.NoError(t, err)

	assert.Equal(t, int32(2), rec.calls.Load())
}

func TestFailuresAreNotCached(t *testing.T) {
	c, rec := newTestClient(t, "", WithRetries(1))
	rec.set(http.StatusInternalServerError, "")
	ctx := context.Background()

	_, err := c.Categories(ctx)
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, StatusOf(err))

	rec.set(http.StatusOK, `[{"id":1,"name":"Infrastructure & Cloud","subcategories":[]}]`)
	cats, err := c.Categories(ctx)
	require.NoError(t, err)
	require.Len(t, cats, 1)
	assert.Equal(t, int32(2), rec.calls.Load())
}

func TestInvalidJSONIsNotCached(t *testing.T) {
	c, rec := newTestClient(t, "<html>", WithRetries(1))
	ctx := context.Background()

	_, err := c.Technologies(ctx)
	require.Error(t, err)

	rec.set(http.StatusOK, `[{"id":1,"name":"Go"}]`)
	techs, err := c.Technologies(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Go", techs[0].Name)
}

func TestValidationSkipsNetwork(t *testing.T) {
	c, rec := newTestClient(t, `[]`)
	ctx := context.Background()

	tests := []struct {
		name    string
		call    func() error
		message string
	}{
		{
			name:    "NegativeTechnologyID",
			call:    func() error { _, err := c.JobsByTechnology(ctx, -1); return err },
			message: "Invalid technology ID",
		},
		{
			name:    "ZeroTechnologyID",
			call:    func() error { _, err := c.JobsByTechnology(ctx, 0); return err },
			message: "Invalid technology ID",
		},
		{
			name:    "UnparsableDate",
			call:    func() error { _, err := c.JobsByDateRange(ctx, "not-a-date", "2024-01-01"); return err },
			message: "Invalid date format",
		},
		{
			name:    "EmptyDate",
			call:    func() error { _, err := c.JobsByDateRange(ctx, "2024-01-01", ""); return err },
			message: "Invalid date format",
		},
		{
			name:    "StartAfterEnd",
			call:    func() error { _, err := c.JobsByDateRange(ctx, "2024-02-01", "2024-01-01"); return err },
			message: "Start date must be before end date",
		},
		{
			name:    "UnknownProjectCategory",
			call:    func() error { _, err := c.ProjectsByCategory(ctx, "frontend"); return err },
			message: "Invalid category name",
		},
		{
			name:    "InvalidSubcategoryID",
			call:    func() error { _, err := c.TechnologiesBySubcategory(ctx, -4); return err },
			message: "Invalid subcategory ID",
		},
		{
			name:    "BlankTechnologyCategory",
			call:    func() error { _, err := c.TechnologiesByCategory(ctx, "   "); return err },
			message: "Category name is required",
		},
		{
			name:    "BlankSkillCategory",
			call:    func() error { _, err := c.SkillsByCategory(ctx, ""); return err },
			message: "Category name is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			require.Error(t, err)
			assert.True(t, IsValidation(err))
			assert.Equal(t, tt.message, err.Error())
		})
	}
	assert.Zero(t, rec.calls.Load(), "validation failures must not reach the network")
}

func TestResourceEndpoints(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		body    string
		call    func(c *Client) error
		wantURL string
	}{
		{
			name:    "JobsByTechnology",
			body:    jobsJSON,
			call:    func(c *Client) error { _, err := c.JobsByTechnology(ctx, 3); return err },
			wantURL: "/jobs/?technology=3",
		},
		{
			name:    "JobsByDateRange",
			body:    jobsJSON,
			call:    func(c *Client) error { _, err := c.JobsByDateRange(ctx, "2021-01-01", "2023-12-31"); return err },
			wantURL: "/jobs/?start_date=2021-01-01&end_date=2023-12-31",
		},
		{
			name:    "ProjectsByCategory",
			body:    `[]`,
			call:    func(c *Client) error { _, err := c.ProjectsByCategory(ctx, "mlops"); return err },
			wantURL: "/projects/?category=MLOps+%26+Model+Deployment",
		},
		{
			name:    "Subcategories",
			body:    `[]`,
			call:    func(c *Client) error { _, err := c.Subcategories(ctx); return err },
			wantURL: "/subcategories/",
		},
		{
			name:    "TechnologiesBySubcategory",
			body:    `[]`,
			call:    func(c *Client) error { _, err := c.TechnologiesBySubcategory(ctx, 4); return err },
			wantURL: "/subcategories/4/technologies/",
		},
		{
			name:    "TechnologiesByCategory",
			body:    `[]`,
			call:    func(c *Client) error { _, err := c.TechnologiesByCategory(ctx, "Data Engineering"); return err },
			wantURL: "/technologies/?category=Data+Engineering",
		},
		{
			name:    "Categories",
			body:    `[]`,
			call:    func(c *Client) error { _, err := c.Categories(ctx); return err },
			wantURL: "/categories/",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newTestClient(t, tt.body)
			require.NoError(t, tt.call(c))
			assert.Equal(t, tt.wantURL, rec.URL())

			// Second call is served from the cache.
			require.NoError(t, tt.call(c))
			assert.Equal(t, int32(1), rec.calls.Load())
		})
	}
}

func TestSkillsByCategory(t *testing.T) {
	body := `[
	  {"id":1,"name":"Infrastructure & Cloud","subcategories":[{"id":2,"name":"Containers","category":1,"technologies":[{"id":3,"name":"Docker"}]}]},
	  {"id":4,"name":"Data Engineering","subcategories":[]}
	]`
	c, _ := newTestClient(t, body)
	ctx := context.Background()

	cat, err := c.SkillsByCategory(ctx, "Infrastructure & Cloud")
	require.NoError(t, err)
	require.Len(t, cat.Subcategories, 1)
	assert.Equal(t, "Docker", cat.Subcategories[0].Technologies[0].Name)

	_, err = c.SkillsByCategory(ctx, "Quantum")
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, StatusOf(err))
	assert.Equal(t, "Category Quantum not found", err.Error())
}
