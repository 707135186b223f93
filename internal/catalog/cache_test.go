package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

type fakeFetcher struct {
	calls    int
	products []Product
	err      error
}

func (f *fakeFetcher) FetchCatalog(ctx context.Context) ([]Product, error) {
	f.calls++
	return f.products, f.err
}

type fakeCache struct {
	data map[string]string
	sets int
}

func (f *fakeCache) Get(ctx context.Context, key string) (string, error) {
	v, ok := f.data[key]
	if !ok {
		return "", errors.New("miss")
	}
	return v, nil
}

func (f *fakeCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	f.data[key] = value.(string)
	f.sets++
	return nil
}

func (f *fakeCache) CatalogKey() string { return "od:catalog:products" }

func TestCachedClient_SecondFetchServedFromCache(t *testing.T) {
	fetcher := &fakeFetcher{products: []Product{{ID: "1", Name: "Rice", Price: decimal.NewFromInt(1200), Unit: "KG"}}}
	cache := &fakeCache{data: map[string]string{}}
	client := NewCachedClient(fetcher, cache, time.Minute, testLogger())

	first, err := client.FetchCatalog(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := client.FetchCatalog(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if fetcher.calls != 1 {
		t.Fatalf("expected one live fetch, got %d", fetcher.calls)
	}
	if len(first) != 1 || len(second) != 1 {
		t.Fatalf("expected one product from both paths")
	}
	if !second[0].Price.Equal(decimal.NewFromInt(1200)) {
		t.Fatalf("price lost through the cache round trip: %s", second[0].Price)
	}
}

func TestCachedClient_EmptyResultIsNotCached(t *testing.T) {
	fetcher := &fakeFetcher{products: nil}
	cache := &fakeCache{data: map[string]string{}}
	client := NewCachedClient(fetcher, cache, time.Minute, testLogger())

	if _, err := client.FetchCatalog(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cache.sets != 0 {
		t.Fatalf("degraded empty fetch must not be cached")
	}

	if _, err := client.FetchCatalog(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fetcher.calls != 2 {
		t.Fatalf("expected a live retry after empty result, got %d calls", fetcher.calls)
	}
}

func TestCachedClient_FetchErrorPropagates(t *testing.T) {
	fetcher := &fakeFetcher{err: errors.New("contract break")}
	cache := &fakeCache{data: map[string]string{}}
	client := NewCachedClient(fetcher, cache, time.Minute, testLogger())

	if _, err := client.FetchCatalog(context.Background()); err == nil {
		t.Fatal("expected error to propagate")
	}
}
