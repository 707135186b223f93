package cart

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/adamacoulibaly/orderdesk/internal/catalog"
	"github.com/adamacoulibaly/orderdesk/internal/orders"
	pkgerrors "github.com/adamacoulibaly/orderdesk/pkg/errors"
)

// Line is one product selected into a pending order. Name, price, and unit
// are snapshots of the product at selection time, not live references.
type Line struct {
	Key         string          `json:"key"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
	Unit        string          `json:"unit_name"`
}

// Cart is the in-memory draft an order is composed in. It holds no network
// concerns; persistence between requests is the Store's job.
type Cart struct {
	ID string `json:"id"`
	// OrderID is set when the cart was seeded from an existing order; its
	// checkout then resubmits that order instead of creating a new one.
	OrderID   int64     `json:"order_id,omitempty"`
	Lines     []Line    `json:"lines"`
	CreatedAt time.Time `json:"created_at"`
}

func New() *Cart {
	return &Cart{
		ID:        uuid.NewString(),
		Lines:     []Line{},
		CreatedAt: time.Now().UTC(),
	}
}

// NewFromOrder seeds a cart with snapshot copies of an order's persisted
// items. Later edits to the lines never touch the order until a checkout
// succeeds.
func NewFromOrder(order orders.Order, fallbackUnit string) *Cart {
	c := New()
	c.OrderID = order.ID
	for _, item := range order.Items {
		c.Lines = append(c.Lines, Line{
			Key:         uuid.NewString(),
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
			Unit:        fallbackUnit,
		})
	}
	return c
}

// AddOrIncrement folds a product into the cart. At most one line exists per
// product id: a duplicate add sums quantities instead of inserting.
func (c *Cart) AddOrIncrement(product catalog.Product, quantity int) (*Line, error) {
	if product.ID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "a resolvable product is required")
	}
	if quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("quantity must be at least 1, got %d", quantity))
	}

	for i := range c.Lines {
		if c.Lines[i].ProductID == product.ID {
			c.Lines[i].Quantity += quantity
			return &c.Lines[i], nil
		}
	}

	line := Line{
		Key:         uuid.NewString(),
		ProductID:   product.ID,
		ProductName: product.Name,
		UnitPrice:   product.Price,
		Quantity:    quantity,
		Unit:        product.Unit,
	}
	c.Lines = append(c.Lines, line)
	return &c.Lines[len(c.Lines)-1], nil
}

// Remove drops the line with the given key. Absent keys are a no-op.
func (c *Cart) Remove(key string) {
	for i := range c.Lines {
		if c.Lines[i].Key == key {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return
		}
	}
}

// Total recomputes quantity x unit price over the current lines on every
// call; caching it would go stale after a mutation.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range c.Lines {
		total = total.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return total
}

// ToOrderDraft projects the lines into the order store's write shape. The
// empty-cart check runs here, before any network call can be attempted.
func (c *Cart) ToOrderDraft(clientName, clientPhone string) (orders.Draft, error) {
	if len(c.Lines) == 0 {
		return orders.Draft{}, pkgerrors.New(pkgerrors.CodeEmptyCart,
			fmt.Sprintf("cart %s has no lines, add at least one product", c.ID))
	}

	draft := orders.Draft{
		ClientName:  clientName,
		ClientPhone: clientPhone,
		Items:       make([]orders.OrderItem, 0, len(c.Lines)),
	}
	for _, line := range c.Lines {
		draft.Items = append(draft.Items, orders.OrderItem{
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
		})
	}
	return draft, nil
}
