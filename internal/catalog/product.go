package catalog

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/adamacoulibaly/orderdesk/pkg/types"
)

// Product is the normalized catalog record handed to the rest of the system.
// It is a snapshot of one fetch cycle; nothing mutates it after parsing.
type Product struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Unit  string          `json:"unit_name"`
}

// productWire names every field shape the live catalog has been observed to
// emit: price as a number, a numeric string, absent, or tucked inside a
// prices[].value list; ids as numbers or strings; the unit label nested under
// a translation object.
type productWire struct {
	ID     types.FlexString   `json:"id"`
	Name   string             `json:"name"`
	Price  *types.FlexDecimal `json:"price"`
	Prices []priceEntry       `json:"prices"`
	Unit   *unitWire          `json:"unit"`
}

type priceEntry struct {
	Value types.FlexDecimal `json:"value"`
}

type unitWire struct {
	Translation *struct {
		Title string `json:"title"`
	} `json:"translation"`
}

func (w productWire) toProduct(fallbackUnit string) (Product, bool) {
	id := w.ID.String()
	if id == "" {
		return Product{}, false
	}

	price := decimal.Zero
	switch {
	case w.Price != nil:
		price = w.Price.Decimal()
	case len(w.Prices) > 0:
		price = w.Prices[0].Value.Decimal()
	}

	unit := fallbackUnit
	if w.Unit != nil && w.Unit.Translation != nil && strings.TrimSpace(w.Unit.Translation.Title) != "" {
		unit = w.Unit.Translation.Title
	}

	return Product{
		ID:    id,
		Name:  w.Name,
		Price: price,
		Unit:  unit,
	}, true
}
