package orders

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/adamacoulibaly/orderdesk/pkg/config"
	pkgerrors "github.com/adamacoulibaly/orderdesk/pkg/errors"
	"github.com/adamacoulibaly/orderdesk/pkg/logger"
)

// API is the order-store surface the rest of the system depends on.
type API interface {
	List(ctx context.Context) ([]Order, error)
	Get(ctx context.Context, id int64) (*Order, error)
	Create(ctx context.Context, draft Draft) (*Order, error)
	Update(ctx context.Context, id int64, draft Draft) (*Order, error)
	Delete(ctx context.Context, id int64) error
}

// Client performs order CRUD against the backend store with centralized
// logging, vocabulary translation, and error mapping.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logg       *logger.Logger
}

func NewClient(cfg config.OrderAPIConfig, logg *logger.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		logg:       logg,
	}
}

// List returns every order. A transport failure surfaces as an error; the
// caller must be able to tell it apart from zero orders.
func (c *Client) List(ctx context.Context) ([]Order, error) {
	c.log(ctx, "request", "list_orders", nil)

	body, err := c.do(ctx, http.MethodGet, c.baseURL, nil, "list orders", 0)
	if err != nil {
		return nil, err
	}

	var wires []orderWire
	if err := json.Unmarshal(body, &wires); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUpstreamContract, err, "order list payload is not an array")
	}

	orders := make([]Order, 0, len(wires))
	for _, w := range wires {
		orders = append(orders, w.toOrder())
	}
	c.log(ctx, "response", "list_orders", map[string]any{"count": len(orders)})
	return orders, nil
}

func (c *Client) Get(ctx context.Context, id int64) (*Order, error) {
	c.log(ctx, "request", "get_order", map[string]any{"order_id": id})

	body, err := c.do(ctx, http.MethodGet, c.orderURL(id), nil, fmt.Sprintf("get order #%d", id), id)
	if err != nil {
		return nil, err
	}

	return c.decodeOrder(ctx, "get_order", body, id)
}

func (c *Client) Create(ctx context.Context, draft Draft) (*Order, error) {
	c.log(ctx, "request", "create_order", map[string]any{
		"client_name": draft.ClientName,
		"items":       len(draft.Items),
	})

	body, err := c.do(ctx, http.MethodPost, c.baseURL, encodeDraft(draft), "create order", 0)
	if err != nil {
		return nil, err
	}

	return c.decodeOrder(ctx, "create_order", body, 0)
}

// Update sends the entire item set; the store replaces any prior content.
func (c *Client) Update(ctx context.Context, id int64, draft Draft) (*Order, error) {
	c.log(ctx, "request", "update_order", map[string]any{
		"order_id": id,
		"items":    len(draft.Items),
	})

	body, err := c.do(ctx, http.MethodPut, c.orderURL(id), encodeDraft(draft), fmt.Sprintf("update order #%d", id), id)
	if err != nil {
		return nil, err
	}

	return c.decodeOrder(ctx, "update_order", body, id)
}

func (c *Client) Delete(ctx context.Context, id int64) error {
	c.log(ctx, "request", "delete_order", map[string]any{"order_id": id})

	_, err := c.do(ctx, http.MethodDelete, c.orderURL(id), nil, fmt.Sprintf("delete order #%d", id), id)
	if err != nil {
		return err
	}
	c.log(ctx, "response", "delete_order", map[string]any{"order_id": id})
	return nil
}

func (c *Client) orderURL(id int64) string {
	return fmt.Sprintf("%s/%d", c.baseURL, id)
}

// do issues one request/response cycle and maps every failure class onto the
// domain error taxonomy. A nil byte slice is only returned alongside an error.
func (c *Client) do(ctx context.Context, method, url string, payload any, op string, id int64) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, fmt.Sprintf("encode payload: %s", op))
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, fmt.Sprintf("build request: %s", op))
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log(ctx, "error", op, map[string]any{"error": err.Error()})
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, fmt.Sprintf("%s failed", op))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, fmt.Sprintf("%s: reading response", op))
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return body, nil
	}

	return nil, c.mapStatusError(ctx, resp.StatusCode, body, op, id)
}

// mapStatusError translates backend rejections into the domain taxonomy.
// Validation rejections keep their full backend detail in the logs only; the
// caller gets a generic, actionable message.
func (c *Client) mapStatusError(ctx context.Context, status int, body []byte, op string, id int64) error {
	switch status {
	case http.StatusUnprocessableEntity:
		c.log(ctx, "error", op, map[string]any{
			"status":           status,
			"validation_error": json.RawMessage(body),
		})
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("%s rejected by the order store, check your input", op))
	case http.StatusNotFound:
		if id > 0 {
			return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("order #%d not found", id))
		}
		return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("%s: resource not found", op))
	default:
		c.log(ctx, "error", op, map[string]any{"status": status, "body": truncate(string(body), 512)})
		return pkgerrors.New(pkgerrors.CodeDependency, fmt.Sprintf("%s failed with status %d", op, status))
	}
}

func (c *Client) decodeOrder(ctx context.Context, op string, body []byte, id int64) (*Order, error) {
	var wire orderWire
	if err := json.Unmarshal(body, &wire); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUpstreamContract, err, fmt.Sprintf("%s: undecodable order payload", op))
	}
	order := wire.toOrder()
	if order.ID == 0 && id > 0 {
		order.ID = id
	}
	c.log(ctx, "response", op, map[string]any{"order_id": order.ID})
	return &order, nil
}

func (c *Client) log(ctx context.Context, phase, op string, fields map[string]any) {
	if c.logg == nil {
		return
	}
	logFields := map[string]any{
		"operation": op,
		"phase":     phase,
	}
	for k, v := range fields {
		logFields[k] = v
	}
	ctx = c.logg.WithFields(ctx, logFields)
	switch phase {
	case "error":
		c.logg.Error(ctx, fmt.Sprintf("order store %s", op), nil)
	default:
		c.logg.Debug(ctx, fmt.Sprintf("order store %s", phase))
	}
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}
