package orders

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is the canonical aggregate as seen by every internal component.
// The dual field vocabularies of the backend never leak past this package.
type Order struct {
	ID          int64           `json:"id"`
	ClientName  string          `json:"client_name"`
	ClientPhone string          `json:"client_phone"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Items       []OrderItem     `json:"items"`
	CreatedAt   *time.Time      `json:"created_at,omitempty"`
	UpdatedAt   *time.Time      `json:"updated_at,omitempty"`
}

// OrderItem is one persisted line. Name and unit price are snapshots taken at
// order time; they never re-link to the live catalog.
type OrderItem struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// Draft is the not-yet-persisted write shape consumed by Create and Update.
type Draft struct {
	ClientName  string      `json:"client_name"`
	ClientPhone string      `json:"client_phone"`
	Items       []OrderItem `json:"items"`
}
