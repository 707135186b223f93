package catalog

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/adamacoulibaly/orderdesk/pkg/config"
	pkgerrors "github.com/adamacoulibaly/orderdesk/pkg/errors"
	"github.com/adamacoulibaly/orderdesk/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("debug"), Output: io.Discard})
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := NewClient(config.CatalogConfig{URL: srv.URL, FallbackUnit: "KG"}, testLogger())
	return client, srv
}

func TestFetchCatalog_FlatArray(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"id":"1","name":"Rice","price":"1200"},
			{"id":2,"name":"Oil","price":5000},
			{"id":"3","name":"Sugar"}
		]`))
	})

	products, err := client.FetchCatalog(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(products) != 3 {
		t.Fatalf("expected 3 products, got %d", len(products))
	}

	if !products[0].Price.Equal(decimal.NewFromInt(1200)) {
		t.Fatalf("string price not parsed, got %s", products[0].Price)
	}
	if products[1].ID != "2" {
		t.Fatalf("numeric id not normalized to string, got %q", products[1].ID)
	}
	if !products[1].Price.Equal(decimal.NewFromInt(5000)) {
		t.Fatalf("numeric price not parsed, got %s", products[1].Price)
	}
	if !products[2].Price.IsZero() {
		t.Fatalf("absent price should default to zero, got %s", products[2].Price)
	}
	if products[2].Unit != "KG" {
		t.Fatalf("absent unit should use the fallback, got %q", products[2].Unit)
	}
}

func TestFetchCatalog_PagingEnvelope(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"data":[
			{"id":7,"name":"Millet","price":"800","unit":{"translation":{"title":"SAC"}}}
		],"current_page":1}}`))
	})

	products, err := client.FetchCatalog(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(products) != 1 {
		t.Fatalf("expected 1 product, got %d", len(products))
	}
	if products[0].Unit != "SAC" {
		t.Fatalf("expected translated unit title, got %q", products[0].Unit)
	}
}

func TestFetchCatalog_PricesListShape(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":"9","name":"Maize","prices":[{"value":"2500"},{"value":"9999"}]}]`))
	})

	products, err := client.FetchCatalog(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(products) != 1 {
		t.Fatalf("expected 1 product, got %d", len(products))
	}
	if !products[0].Price.Equal(decimal.NewFromInt(2500)) {
		t.Fatalf("expected first prices entry, got %s", products[0].Price)
	}
}

func TestFetchCatalog_UnknownEnvelopeIsContractError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"products":[{"id":"1"}]}`))
	})

	_, err := client.FetchCatalog(context.Background())
	if err == nil {
		t.Fatal("expected contract error for unknown envelope")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUpstreamContract {
		t.Fatalf("expected UPSTREAM_CONTRACT, got %v", err)
	}
}

func TestFetchCatalog_TransportFailureDegradesToEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	client := NewClient(config.CatalogConfig{URL: srv.URL}, testLogger())
	products, err := client.FetchCatalog(context.Background())
	if err != nil {
		t.Fatalf("transport failure must not surface as error, got %v", err)
	}
	if len(products) != 0 {
		t.Fatalf("expected empty list, got %d products", len(products))
	}
}

func TestFetchCatalog_ServerErrorDegradesToEmpty(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	products, err := client.FetchCatalog(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(products) != 0 {
		t.Fatalf("expected empty list on 500, got %d", len(products))
	}
}

func TestFetchCatalog_NonJSONDegradesToEmpty(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>maintenance</html>`))
	})

	products, err := client.FetchCatalog(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(products) != 0 {
		t.Fatalf("expected empty list for non-JSON body, got %d", len(products))
	}
}

func TestFetchCatalog_SkipsItemsWithoutID(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"name":"Ghost","price":100},{"id":"1","name":"Rice","price":100}]`))
	})

	products, err := client.FetchCatalog(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(products) != 1 || products[0].Name != "Rice" {
		t.Fatalf("expected id-less item skipped, got %+v", products)
	}
}
