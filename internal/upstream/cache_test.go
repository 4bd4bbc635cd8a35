package upstream

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/earthlens/nasa-data-proxy/internal/store"
)

type countingFetcher struct {
	payload string
	err     error
	calls   int
}

func (f *countingFetcher) FetchSeries(context.Context, string, float64, float64, string, string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.payload, nil
}

func TestCachedFetcherHit(t *testing.T) {
	inner := &countingFetcher{payload: "2025-01-01,1.0"}
	fetcher := NewCachedFetcher(inner, store.NewPayloadCache(10, time.Minute))

	for i := 0; i < 3; i++ {
		payload, err := fetcher.FetchSeries(context.Background(), "ds", 1.2345, 2.3456, "2025-01-01", "2025-01-02")
		require.NoError(t, err)
		assert.Equal(t, "2025-01-01,1.0", payload)
	}

	assert.Equal(t, 1, inner.calls, "repeated identical requests must hit the cache")
}

func TestCachedFetcherKeyIncludesAllParams(t *testing.T) {
	inner := &countingFetcher{payload: "x"}
	fetcher := NewCachedFetcher(inner, store.NewPayloadCache(10, time.Minute))

	_, _ = fetcher.FetchSeries(context.Background(), "ds", 1, 2, "2025-01-01", "2025-01-02")
	_, _ = fetcher.FetchSeries(context.Background(), "ds", 1, 2, "2025-01-01", "2025-01-03")
	_, _ = fetcher.FetchSeries(context.Background(), "other", 1, 2, "2025-01-01", "2025-01-02")

	assert.Equal(t, 3, inner.calls)
}

func TestCachedFetcherDoesNotCacheErrors(t *testing.T) {
	inner := &countingFetcher{err: errors.New("boom")}
	fetcher := NewCachedFetcher(inner, store.NewPayloadCache(10, time.Minute))

	_, err1 := fetcher.FetchSeries(context.Background(), "ds", 1, 2, "2025-01-01", "2025-01-02")
	_, err2 := fetcher.FetchSeries(context.Background(), "ds", 1, 2, "2025-01-01", "2025-01-02")

	require.Error(t, err1)
	require.Error(t, err2)
	assert.Equal(t, 2, inner.calls, "failures are retried, not cached")
}
