package orders

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/adamacoulibaly/orderdesk/pkg/types"
)

// The backend speaks two parallel vocabularies for the same semantic fields.
// Write requests always use the canonical one; read responses may carry
// either, so the wire structs name both explicitly and normalization picks a
// value once, here, at the boundary.
//
//	canonical      legacy
//	client_name    Nom
//	client_phone   Téléphone
//	total_amount   Montant_Total
//	product_id_djoli  produit_id_djoli
//	product_name   Nom_du_produit
//	quantity       Quantité
//	unit_price     Prix_unitaire
type orderWire struct {
	ID types.FlexInt `json:"id"`

	ClientName  *string `json:"client_name"`
	LegacyName  *string `json:"Nom"`
	ClientPhone *string `json:"client_phone"`
	LegacyPhone *string `json:"Téléphone"`

	TotalAmount *types.FlexDecimal `json:"total_amount"`
	LegacyTotal *types.FlexDecimal `json:"Montant_Total"`

	Items []itemWire `json:"items"`

	CreatedAt *string `json:"created_at"`
	UpdatedAt *string `json:"updated_at"`
}

type itemWire struct {
	ProductID       *types.FlexString `json:"product_id_djoli"`
	LegacyProductID *types.FlexString `json:"produit_id_djoli"`

	ProductName       *string `json:"product_name"`
	LegacyProductName *string `json:"Nom_du_produit"`

	Quantity       *types.FlexInt `json:"quantity"`
	LegacyQuantity *types.FlexInt `json:"Quantité"`

	UnitPrice       *types.FlexDecimal `json:"unit_price"`
	LegacyUnitPrice *types.FlexDecimal `json:"Prix_unitaire"`
}

func (w orderWire) toOrder() Order {
	order := Order{
		ID:          int64(w.ID.Int()),
		ClientName:  pickString(w.ClientName, w.LegacyName),
		ClientPhone: pickString(w.ClientPhone, w.LegacyPhone),
		TotalAmount: pickDecimal(w.TotalAmount, w.LegacyTotal),
		Items:       make([]OrderItem, 0, len(w.Items)),
		CreatedAt:   parseBackendTime(w.CreatedAt),
		UpdatedAt:   parseBackendTime(w.UpdatedAt),
	}
	for _, item := range w.Items {
		order.Items = append(order.Items, item.toItem())
	}
	return order
}

func (w itemWire) toItem() OrderItem {
	return OrderItem{
		ProductID:   pickFlexString(w.ProductID, w.LegacyProductID),
		ProductName: pickString(w.ProductName, w.LegacyProductName),
		Quantity:    pickInt(w.Quantity, w.LegacyQuantity),
		UnitPrice:   pickDecimal(w.UnitPrice, w.LegacyUnitPrice),
	}
}

func pickString(canonical, legacy *string) string {
	if canonical != nil && strings.TrimSpace(*canonical) != "" {
		return *canonical
	}
	if legacy != nil {
		return *legacy
	}
	return ""
}

func pickFlexString(canonical, legacy *types.FlexString) string {
	if canonical != nil && canonical.String() != "" {
		return canonical.String()
	}
	if legacy != nil {
		return legacy.String()
	}
	return ""
}

func pickInt(canonical, legacy *types.FlexInt) int {
	if canonical != nil {
		return canonical.Int()
	}
	if legacy != nil {
		return legacy.Int()
	}
	return 0
}

func pickDecimal(canonical, legacy *types.FlexDecimal) decimal.Decimal {
	if canonical != nil {
		return canonical.Decimal()
	}
	if legacy != nil {
		return legacy.Decimal()
	}
	return decimal.Zero
}

var backendTimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
}

func parseBackendTime(value *string) *time.Time {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil
	}
	for _, layout := range backendTimeLayouts {
		if ts, err := time.Parse(layout, *value); err == nil {
			return &ts
		}
	}
	return nil
}

// writePayload is the canonical write vocabulary. The historical integration
// used a second, translated vocabulary on the update path; that was an
// inconsistency, not a contract, and the store accepts the canonical keys on
// both paths.
type writePayload struct {
	ClientName  string      `json:"client_name"`
	ClientPhone string      `json:"client_phone"`
	Items       []writeItem `json:"items"`
}

type writeItem struct {
	ProductID   string      `json:"product_id_djoli"`
	ProductName string      `json:"product_name"`
	Quantity    int         `json:"quantity"`
	UnitPrice   json.Number `json:"unit_price"`
}

func encodeDraft(draft Draft) writePayload {
	payload := writePayload{
		ClientName:  draft.ClientName,
		ClientPhone: draft.ClientPhone,
		Items:       make([]writeItem, 0, len(draft.Items)),
	}
	for _, item := range draft.Items {
		payload.Items = append(payload.Items, writeItem{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   json.Number(item.UnitPrice.String()),
		})
	}
	return payload
}
