package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/adamacoulibaly/orderdesk/pkg/config"
	pkgerrors "github.com/adamacoulibaly/orderdesk/pkg/errors"
	"github.com/adamacoulibaly/orderdesk/pkg/logger"
)

// Fetcher is the contract the rest of the system depends on: one catalog
// fetch cycle resolving to a flat product list.
type Fetcher interface {
	FetchCatalog(ctx context.Context) ([]Product, error)
}

// Client fetches and normalizes the external product catalog.
//
// Failure policy: transport trouble and unparsable payloads degrade to an
// empty list so the browse step stays usable; a payload that parses but does
// not match any tolerated envelope is a contract break and errors out.
type Client struct {
	httpClient   *http.Client
	url          string
	fallbackUnit string
	logg         *logger.Logger
}

func NewClient(cfg config.CatalogConfig, logg *logger.Logger) *Client {
	fallback := cfg.FallbackUnit
	if fallback == "" {
		fallback = "KG"
	}
	return &Client{
		httpClient:   &http.Client{Timeout: cfg.Timeout},
		url:          cfg.URL,
		fallbackUnit: fallback,
		logg:         logg,
	}
}

// FetchCatalog performs one outbound read and resolves whichever envelope the
// live endpoint returns into a flat product list.
func (c *Client) FetchCatalog(ctx context.Context) ([]Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build catalog request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.warn(ctx, "catalog fetch failed, serving empty product list", err)
		return []Product{}, nil
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.warn(ctx, "catalog body read failed, serving empty product list", err)
		return []Product{}, nil
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.warn(ctx, fmt.Sprintf("catalog returned status %d, serving empty product list", resp.StatusCode), nil)
		return []Product{}, nil
	}

	items, err := resolveEnvelope(body)
	if err != nil {
		return nil, err
	}
	if items == nil {
		// Body was not valid JSON at all; degraded browse, not a contract break.
		c.warn(ctx, "catalog payload was not JSON, serving empty product list", nil)
		return []Product{}, nil
	}

	products := make([]Product, 0, len(items))
	for _, raw := range items {
		var wire productWire
		if err := json.Unmarshal(raw, &wire); err != nil {
			c.warn(ctx, "skipping malformed catalog item", err)
			continue
		}
		if p, ok := wire.toProduct(c.fallbackUnit); ok {
			products = append(products, p)
		}
	}
	return products, nil
}

// resolveEnvelope accepts the two documented catalog response shapes: a flat
// array of products, or a paging wrapper nesting the array under data.data.
// A bare data array is tolerated as the halfway case between the two.
// Returns (nil, nil) when the body is not JSON.
func resolveEnvelope(body []byte) ([]json.RawMessage, error) {
	var flat []json.RawMessage
	if err := json.Unmarshal(body, &flat); err == nil {
		return flat, nil
	}

	var wrapped struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &wrapped); err != nil {
		return nil, nil
	}

	if len(wrapped.Data) > 0 {
		var inner []json.RawMessage
		if err := json.Unmarshal(wrapped.Data, &inner); err == nil {
			return inner, nil
		}
		var nested struct {
			Data []json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(wrapped.Data, &nested); err == nil && nested.Data != nil {
			return nested.Data, nil
		}
	}

	return nil, pkgerrors.New(pkgerrors.CodeUpstreamContract,
		"catalog response matched no tolerated envelope (expected flat array or data.data wrapper)")
}

func (c *Client) warn(ctx context.Context, msg string, err error) {
	if c.logg == nil {
		return
	}
	if err != nil {
		ctx = c.logg.WithField(ctx, "error", err.Error())
	}
	c.logg.Warn(ctx, msg)
}
