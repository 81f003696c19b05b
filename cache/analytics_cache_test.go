package analytics_cache

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shitiandmw/e-commerce-sub001/models"
)

// fakeClock is a manually advanced clock for staleness tests.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)}
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

func sampleData(revenue float64) *models.AnalyticsData {
	return &models.AnalyticsData{TotalRevenue: revenue}
}

func TestKeyDistinguishesQueries(t *testing.T) {
	from := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, time.January, 31, 23, 59, 59, 0, time.UTC)

	base := Key(models.AnalyticsQuery{Granularity: models.GranularityDay, From: from, To: to})
	assert.NotEqual(t, base, Key(models.AnalyticsQuery{Granularity: models.GranularityWeek, From: from, To: to}))
	assert.NotEqual(t, base, Key(models.AnalyticsQuery{Granularity: models.GranularityDay, From: from, To: to.AddDate(0, 0, 1)}))
	assert.Equal(t, base, Key(models.AnalyticsQuery{Granularity: models.GranularityDay, From: from, To: to}))
}

func TestCacheExpiresByTTL(t *testing.T) {
	clock := newFakeClock()
	c := New(time.Minute, clock)

	c.Set("k", sampleData(42))

	got, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, float64(42), got.TotalRevenue)

	clock.Advance(59 * time.Second)
	_, ok = c.Get("k")
	assert.True(t, ok, "still fresh one second before TTL")

	clock.Advance(time.Second)
	_, ok = c.Get("k")
	assert.False(t, ok, "stale exactly at TTL")
}

func TestCacheMissOnUnknownKey(t *testing.T) {
	c := New(time.Minute, newFakeClock())
	_, ok := c.Get("missing")
	assert.False(t, ok)
}

func TestGetOrComputeCachesResult(t *testing.T) {
	clock := newFakeClock()
	c := New(time.Minute, clock)

	calls := 0
	compute := func() (*models.AnalyticsData, error) {
		calls++
		return sampleData(7), nil
	}

	got, err := c.GetOrCompute("k", compute)
	require.NoError(t, err)
	assert.Equal(t, float64(7), got.TotalRevenue)

	_, err = c.GetOrCompute("k", compute)
	require.NoError(t, err)
	assert.Equal(t, 1, calls, "second call served from cache")

	clock.Advance(2 * time.Minute)
	_, err = c.GetOrCompute("k", compute)
	require.NoError(t, err)
	assert.Equal(t, 2, calls, "recomputed after expiry")
}

func TestGetOrComputeDoesNotCacheErrors(t *testing.T) {
	c := New(time.Minute, newFakeClock())

	boom := errors.New("upstream down")
	calls := 0

	_, err := c.GetOrCompute("k", func() (*models.AnalyticsData, error) {
		calls++
		return nil, boom
	})
	require.ErrorIs(t, err, boom)

	got, err := c.GetOrCompute("k", func() (*models.AnalyticsData, error) {
		calls++
		return sampleData(1), nil
	})
	require.NoError(t, err)
	assert.Equal(t, float64(1), got.TotalRevenue)
	assert.Equal(t, 2, calls, "failed computation left no entry behind")
}

func TestGetOrComputeDeduplicatesConcurrentCallers(t *testing.T) {
	c := New(time.Minute, newFakeClock())

	var mu sync.Mutex
	calls := 0
	release := make(chan struct{})
	compute := func() (*models.AnalyticsData, error) {
		mu.Lock()
		calls++
		mu.Unlock()
		<-release
		return sampleData(9), nil
	}

	const workers = 8
	var wg sync.WaitGroup
	results := make([]*models.AnalyticsData, workers)
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = c.GetOrCompute("k", compute)
		}(i)
	}

	// let the goroutines pile up on the flight group before releasing
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	for i := 0; i < workers; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, float64(9), results[i].TotalRevenue)
	}
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, calls, "all concurrent callers share one computation")
}

func TestInvalidateDropsEntries(t *testing.T) {
	c := New(time.Minute, newFakeClock())
	c.Set("a", sampleData(1))
	c.Set("b", sampleData(2))

	c.Invalidate()

	_, ok := c.Get("a")
	assert.False(t, ok)
	_, ok = c.Get("b")
	assert.False(t, ok)
}

func TestNewDefaults(t *testing.T) {
	c := New(0, nil)
	require.NotNil(t, c)
	assert.Equal(t, DefaultTTL, c.ttl)
	assert.NotNil(t, c.clock)
}
