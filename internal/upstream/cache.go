package upstream

import (
	"context"
	"fmt"

	"github.com/earthlens/nasa-data-proxy/internal/hydrology"
	"github.com/earthlens/nasa-data-proxy/internal/store"
)

// CachedFetcher decorates a fetcher with a TTL payload cache. Only successful
// fetches are cached so transient upstream failures can be retried on the
// next request.
type CachedFetcher struct {
	inner hydrology.Fetcher
	cache *store.PayloadCache
}

// NewCachedFetcher wraps inner with the given cache.
func NewCachedFetcher(inner hydrology.Fetcher, cache *store.PayloadCache) *CachedFetcher {
	return &CachedFetcher{inner: inner, cache: cache}
}

// FetchSeries returns the cached payload when present, otherwise delegates.
func (c *CachedFetcher) FetchSeries(ctx context.Context, dataset string, lat, lng float64, startDate, endDate string) (string, error) {
	key := fmt.Sprintf("%s|%.4f|%.4f|%s|%s", dataset, lat, lng, startDate, endDate)
	if payload, ok := c.cache.Get(key); ok {
		return payload, nil
	}

	payload, err := c.inner.FetchSeries(ctx, dataset, lat, lng, startDate, endDate)
	if err != nil {
		return "", err
	}
	c.cache.Put(key, payload)
	return payload, nil
}
