package catalog

import (
	"context"
	"encoding/json"
	"time"

	"github.com/adamacoulibaly/orderdesk/pkg/logger"
)

type cacheStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	CatalogKey() string
}

// CachedClient memoizes one catalog fetch cycle in Redis. Cache trouble is
// never fatal: every miss or Redis failure falls through to the live fetch.
type CachedClient struct {
	next  Fetcher
	store cacheStore
	ttl   time.Duration
	logg  *logger.Logger
}

func NewCachedClient(next Fetcher, store cacheStore, ttl time.Duration, logg *logger.Logger) *CachedClient {
	return &CachedClient{next: next, store: store, ttl: ttl, logg: logg}
}

func (c *CachedClient) FetchCatalog(ctx context.Context) ([]Product, error) {
	key := c.store.CatalogKey()

	if cached, err := c.store.Get(ctx, key); err == nil && cached != "" {
		var products []Product
		if err := json.Unmarshal([]byte(cached), &products); err == nil {
			return products, nil
		}
		// Unreadable cache entry gets replaced below.
	}

	products, err := c.next.FetchCatalog(ctx)
	if err != nil {
		return nil, err
	}

	// An empty list is the degraded-fetch outcome; caching it would pin the
	// degradation for a full TTL.
	if len(products) > 0 {
		if payload, err := json.Marshal(products); err == nil {
			if err := c.store.Set(ctx, key, string(payload), c.ttl); err != nil && c.logg != nil {
				c.logg.Warn(c.logg.WithField(ctx, "error", err.Error()), "catalog cache write failed")
			}
		}
	}
	return products, nil
}
