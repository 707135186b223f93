package cart

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/adamacoulibaly/orderdesk/internal/catalog"
	"github.com/adamacoulibaly/orderdesk/internal/orders"
	pkgerrors "github.com/adamacoulibaly/orderdesk/pkg/errors"
)

func product(id, name string, price int64) catalog.Product {
	return catalog.Product{
		ID:    id,
		Name:  name,
		Price: decimal.NewFromInt(price),
		Unit:  "KG",
	}
}

func TestAddOrIncrementDedupesByProduct(t *testing.T) {
	c := New()

	if _, err := c.AddOrIncrement(product("1", "Tomate", 1200), 3); err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	if _, err := c.AddOrIncrement(product("1", "Tomate", 1200), 2); err != nil {
		t.Fatalf("second add failed: %v", err)
	}

	if len(c.Lines) != 1 {
		t.Fatalf("expected a single line, got %d", len(c.Lines))
	}
	if c.Lines[0].Quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", c.Lines[0].Quantity)
	}
	if got := c.Total(); !got.Equal(decimal.NewFromInt(6000)) {
		t.Fatalf("expected total 6000, got %s", got)
	}
}

func TestAddOrIncrementKeepsDistinctProductsApart(t *testing.T) {
	c := New()

	if _, err := c.AddOrIncrement(product("1", "Tomate", 1200), 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if _, err := c.AddOrIncrement(product("2", "Oignon", 800), 2); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	if len(c.Lines) != 2 {
		t.Fatalf("expected two lines, got %d", len(c.Lines))
	}
	if c.Lines[0].Key == c.Lines[1].Key {
		t.Fatalf("line keys must be unique")
	}
	if got := c.Total(); !got.Equal(decimal.NewFromInt(2800)) {
		t.Fatalf("expected total 2800, got %s", got)
	}
}

func TestAddOrIncrementRejectsBadInput(t *testing.T) {
	c := New()

	if _, err := c.AddOrIncrement(product("1", "Tomate", 1200), 0); err == nil {
		t.Fatalf("expected an error for zero quantity")
	} else if e := pkgerrors.As(err); e == nil || e.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected a validation error, got %v", err)
	}

	if _, err := c.AddOrIncrement(catalog.Product{}, 1); err == nil {
		t.Fatalf("expected an error for a product without an id")
	}
	if len(c.Lines) != 0 {
		t.Fatalf("rejected adds must not mutate the cart")
	}
}

func TestRemoveIsNoOpForUnknownKey(t *testing.T) {
	c := New()
	line, err := c.AddOrIncrement(product("1", "Tomate", 1200), 1)
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}

	c.Remove("not-a-key")
	if len(c.Lines) != 1 {
		t.Fatalf("unknown key must not remove anything")
	}

	c.Remove(line.Key)
	if len(c.Lines) != 0 {
		t.Fatalf("expected the line to be removed")
	}
	if !c.Total().IsZero() {
		t.Fatalf("expected a zero total after removal, got %s", c.Total())
	}
}

func TestTotalRecomputesAfterMutation(t *testing.T) {
	c := New()
	if _, err := c.AddOrIncrement(product("1", "Tomate", 1200), 2); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if got := c.Total(); !got.Equal(decimal.NewFromInt(2400)) {
		t.Fatalf("expected total 2400, got %s", got)
	}

	if _, err := c.AddOrIncrement(product("1", "Tomate", 1200), 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if got := c.Total(); !got.Equal(decimal.NewFromInt(3600)) {
		t.Fatalf("expected total 3600, got %s", got)
	}
}

func TestToOrderDraftRefusesEmptyCart(t *testing.T) {
	c := New()

	_, err := c.ToOrderDraft("Awa", "+22370000000")
	if err == nil {
		t.Fatalf("expected an empty-cart error")
	}
	e := pkgerrors.As(err)
	if e == nil || e.Code() != pkgerrors.CodeEmptyCart {
		t.Fatalf("expected the empty-cart code, got %v", err)
	}
}

func TestToOrderDraftProjectsLines(t *testing.T) {
	c := New()
	if _, err := c.AddOrIncrement(product("7", "Banane", 500), 4); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	draft, err := c.ToOrderDraft("Awa", "+22370000000")
	if err != nil {
		t.Fatalf("draft failed: %v", err)
	}
	if draft.ClientName != "Awa" || draft.ClientPhone != "+22370000000" {
		t.Fatalf("unexpected client fields: %+v", draft)
	}
	if len(draft.Items) != 1 {
		t.Fatalf("expected one item, got %d", len(draft.Items))
	}
	item := draft.Items[0]
	if item.ProductID != "7" || item.ProductName != "Banane" || item.Quantity != 4 {
		t.Fatalf("unexpected item: %+v", item)
	}
	if !item.UnitPrice.Equal(decimal.NewFromInt(500)) {
		t.Fatalf("expected unit price 500, got %s", item.UnitPrice)
	}
}

func TestNewFromOrderSnapshotsItems(t *testing.T) {
	now := time.Now()
	order := orders.Order{
		ID:          42,
		ClientName:  "Awa",
		ClientPhone: "+22370000000",
		TotalAmount: decimal.NewFromInt(2400),
		Items: []orders.OrderItem{
			{ProductID: "1", ProductName: "Tomate", Quantity: 2, UnitPrice: decimal.NewFromInt(1200)},
		},
		CreatedAt: &now,
	}

	c := NewFromOrder(order, "KG")
	if c.OrderID != 42 {
		t.Fatalf("expected the seeded order id, got %d", c.OrderID)
	}
	if len(c.Lines) != 1 {
		t.Fatalf("expected one line, got %d", len(c.Lines))
	}
	if c.Lines[0].Unit != "KG" {
		t.Fatalf("expected the fallback unit, got %q", c.Lines[0].Unit)
	}

	// Mutating the cart must leave the source order untouched.
	c.Lines[0].Quantity = 9
	if order.Items[0].Quantity != 2 {
		t.Fatalf("seeding must copy items, not alias them")
	}
}
