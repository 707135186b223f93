package orderstore

import (
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/adamacoulibaly/orderdesk/pkg/types"
)

// orderRequest tolerates both field vocabularies on writes, the same way
// the historical backend did. Normalization into orderInput picks a value
// per field, canonical key first.
type orderRequest struct {
	ClientName  *string `json:"client_name"`
	LegacyName  *string `json:"Nom"`
	ClientPhone *string `json:"client_phone"`
	LegacyPhone *string `json:"Téléphone"`

	Items []itemRequest `json:"items"`
}

type itemRequest struct {
	ProductID       *types.FlexString `json:"product_id_djoli"`
	LegacyProductID *types.FlexString `json:"produit_id_djoli"`

	ProductName       *string `json:"product_name"`
	LegacyProductName *string `json:"Nom_du_produit"`

	Quantity       *types.FlexInt `json:"quantity"`
	LegacyQuantity *types.FlexInt `json:"Quantité"`

	UnitPrice       *types.FlexDecimal `json:"unit_price"`
	LegacyUnitPrice *types.FlexDecimal `json:"Prix_unitaire"`
}

type orderInput struct {
	ClientName  string      `json:"client_name" validate:"required"`
	ClientPhone string      `json:"client_phone" validate:"required"`
	Items       []itemInput `json:"items" validate:"required,min=1,dive"`
}

type itemInput struct {
	ProductID   string          `json:"product_id_djoli" validate:"required"`
	ProductName string          `json:"product_name" validate:"required"`
	Quantity    int             `json:"quantity" validate:"required,min=1"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

func (r orderRequest) toInput() orderInput {
	input := orderInput{
		ClientName:  firstString(r.ClientName, r.LegacyName),
		ClientPhone: firstString(r.ClientPhone, r.LegacyPhone),
		Items:       make([]itemInput, 0, len(r.Items)),
	}
	for _, item := range r.Items {
		input.Items = append(input.Items, itemInput{
			ProductID:   firstFlexString(item.ProductID, item.LegacyProductID),
			ProductName: firstString(item.ProductName, item.LegacyProductName),
			Quantity:    firstFlexInt(item.Quantity, item.LegacyQuantity),
			UnitPrice:   firstFlexDecimal(item.UnitPrice, item.LegacyUnitPrice),
		})
	}
	return input
}

func (in orderInput) toRecord() *OrderRecord {
	record := &OrderRecord{
		ClientName:  in.ClientName,
		ClientPhone: in.ClientPhone,
		Items:       make([]ItemRecord, 0, len(in.Items)),
	}
	for _, item := range in.Items {
		record.Items = append(record.Items, ItemRecord{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		})
	}
	return record
}

func firstString(canonical, legacy *string) string {
	if canonical != nil && strings.TrimSpace(*canonical) != "" {
		return *canonical
	}
	if legacy != nil {
		return *legacy
	}
	return ""
}

func firstFlexString(canonical, legacy *types.FlexString) string {
	if canonical != nil && canonical.String() != "" {
		return canonical.String()
	}
	if legacy != nil {
		return legacy.String()
	}
	return ""
}

func firstFlexInt(canonical, legacy *types.FlexInt) int {
	if canonical != nil {
		return canonical.Int()
	}
	if legacy != nil {
		return legacy.Int()
	}
	return 0
}

func firstFlexDecimal(canonical, legacy *types.FlexDecimal) decimal.Decimal {
	if canonical != nil {
		return canonical.Decimal()
	}
	if legacy != nil {
		return legacy.Decimal()
	}
	return decimal.Zero
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	return v
}

// validationErrors turns validator failures into the historical error map,
// keyed by dotted field paths ("items.0.quantity").
func validationErrors(err error) map[string][]string {
	out := map[string][]string{}
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		out["body"] = []string{"is invalid"}
		return out
	}
	for _, fieldErr := range errs {
		field := fieldPath(fieldErr.Namespace())
		out[field] = append(out[field], validationMessage(fieldErr))
	}
	return out
}

// fieldPath rewrites a validator namespace like "orderInput.items[0].quantity"
// into "items.0.quantity".
func fieldPath(namespace string) string {
	if idx := strings.Index(namespace, "."); idx >= 0 {
		namespace = namespace[idx+1:]
	}
	namespace = strings.ReplaceAll(namespace, "[", ".")
	return strings.ReplaceAll(namespace, "]", "")
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "The " + fe.Field() + " field is required."
	case "min":
		if fe.Kind() == reflect.Slice {
			return "The " + fe.Field() + " field must have at least " + fe.Param() + " items."
		}
		return "The " + fe.Field() + " field must be at least " + fe.Param() + "."
	}
	return "The " + fe.Field() + " field is invalid."
}

// Read views. The store can answer in either vocabulary; the default is the
// legacy one the historical backend emitted.

type legacyOrderView struct {
	ID           int64            `json:"id"`
	Nom          string           `json:"Nom"`
	Telephone    string           `json:"Téléphone"`
	MontantTotal string           `json:"Montant_Total"`
	Items        []legacyItemView `json:"items"`
	CreatedAt    string           `json:"created_at"`
	UpdatedAt    string           `json:"updated_at"`
}

type legacyItemView struct {
	ProduitID    string `json:"produit_id_djoli"`
	NomDuProduit string `json:"Nom_du_produit"`
	Quantite     int    `json:"Quantité"`
	PrixUnitaire string `json:"Prix_unitaire"`
}

type canonicalOrderView struct {
	ID          int64               `json:"id"`
	ClientName  string              `json:"client_name"`
	ClientPhone string              `json:"client_phone"`
	TotalAmount decimal.Decimal     `json:"total_amount"`
	Items       []canonicalItemView `json:"items"`
	CreatedAt   string              `json:"created_at"`
	UpdatedAt   string              `json:"updated_at"`
}

type canonicalItemView struct {
	ProductID   string          `json:"product_id_djoli"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

const legacyTimeLayout = "2006-01-02 15:04:05"

func renderOrder(record OrderRecord, legacy bool) any {
	if legacy {
		view := legacyOrderView{
			ID:           record.ID,
			Nom:          record.ClientName,
			Telephone:    record.ClientPhone,
			MontantTotal: record.TotalAmount.StringFixed(2),
			Items:        make([]legacyItemView, 0, len(record.Items)),
			CreatedAt:    record.CreatedAt.UTC().Format(legacyTimeLayout),
			UpdatedAt:    record.UpdatedAt.UTC().Format(legacyTimeLayout),
		}
		for _, item := range record.Items {
			view.Items = append(view.Items, legacyItemView{
				ProduitID:    item.ProductID,
				NomDuProduit: item.ProductName,
				Quantite:     item.Quantity,
				PrixUnitaire: item.UnitPrice.StringFixed(2),
			})
		}
		return view
	}

	view := canonicalOrderView{
		ID:          record.ID,
		ClientName:  record.ClientName,
		ClientPhone: record.ClientPhone,
		TotalAmount: record.TotalAmount,
		Items:       make([]canonicalItemView, 0, len(record.Items)),
		CreatedAt:   record.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   record.UpdatedAt.UTC().Format(time.RFC3339),
	}
	for _, item := range record.Items {
		view.Items = append(view.Items, canonicalItemView{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		})
	}
	return view
}

func renderOrders(records []OrderRecord, legacy bool) []any {
	out := make([]any, 0, len(records))
	for _, record := range records {
		out = append(out, renderOrder(record, legacy))
	}
	return out
}
