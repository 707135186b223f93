package orders

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func TestOrderWire_CanonicalVocabulary(t *testing.T) {
	payload := `{
		"id": 12,
		"client_name": "Adama Coulibaly",
		"client_phone": "0707070707",
		"total_amount": 6000,
		"items": [
			{"product_id_djoli": "1", "product_name": "Rice", "quantity": 5, "unit_price": "1200"}
		],
		"created_at": "2024-03-01T10:15:00.000000Z"
	}`

	var wire orderWire
	if err := json.Unmarshal([]byte(payload), &wire); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	order := wire.toOrder()

	if order.ID != 12 {
		t.Fatalf("unexpected id %d", order.ID)
	}
	if order.ClientName != "Adama Coulibaly" {
		t.Fatalf("unexpected client name %q", order.ClientName)
	}
	if !order.TotalAmount.Equal(decimal.NewFromInt(6000)) {
		t.Fatalf("unexpected total %s", order.TotalAmount)
	}
	if len(order.Items) != 1 {
		t.Fatalf("expected one item, got %d", len(order.Items))
	}
	item := order.Items[0]
	if item.ProductID != "1" || item.ProductName != "Rice" || item.Quantity != 5 {
		t.Fatalf("item not normalized: %+v", item)
	}
	if !item.UnitPrice.Equal(decimal.NewFromInt(1200)) {
		t.Fatalf("string unit price not parsed: %s", item.UnitPrice)
	}
	if order.CreatedAt == nil {
		t.Fatal("expected created_at to parse")
	}
}

func TestOrderWire_LegacyVocabulary(t *testing.T) {
	payload := `{
		"id": "12",
		"Nom": "Adama Coulibaly",
		"Téléphone": "0707070707",
		"Montant_Total": "6000",
		"items": [
			{"produit_id_djoli": 1, "Nom_du_produit": "Rice", "Quantité": "5", "Prix_unitaire": 1200}
		]
	}`

	var wire orderWire
	if err := json.Unmarshal([]byte(payload), &wire); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	order := wire.toOrder()

	if order.ID != 12 {
		t.Fatalf("unexpected id %d", order.ID)
	}
	if order.ClientName != "Adama Coulibaly" {
		t.Fatalf("legacy name not normalized, got %q", order.ClientName)
	}
	if order.ClientPhone != "0707070707" {
		t.Fatalf("legacy phone not normalized, got %q", order.ClientPhone)
	}
	if !order.TotalAmount.Equal(decimal.NewFromInt(6000)) {
		t.Fatalf("legacy total not normalized, got %s", order.TotalAmount)
	}
	item := order.Items[0]
	if item.ProductID != "1" {
		t.Fatalf("legacy product id not normalized, got %q", item.ProductID)
	}
	if item.ProductName != "Rice" || item.Quantity != 5 {
		t.Fatalf("legacy item fields not normalized: %+v", item)
	}
	if !item.UnitPrice.Equal(decimal.NewFromInt(1200)) {
		t.Fatalf("legacy unit price not normalized: %s", item.UnitPrice)
	}
}

func TestOrderWire_CanonicalWinsWhenBothPresent(t *testing.T) {
	payload := `{"id":1,"client_name":"Canonical","Nom":"Legacy"}`

	var wire orderWire
	if err := json.Unmarshal([]byte(payload), &wire); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := wire.toOrder().ClientName; got != "Canonical" {
		t.Fatalf("expected canonical key to win, got %q", got)
	}
}

func TestEncodeDraft_CanonicalWriteVocabulary(t *testing.T) {
	draft := Draft{
		ClientName:  "Awa",
		ClientPhone: "0101010101",
		Items: []OrderItem{
			{ProductID: "9", ProductName: "Maize", Quantity: 2, UnitPrice: decimal.NewFromInt(2500)},
		},
	}

	encoded, err := json.Marshal(encodeDraft(draft))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(encoded, &raw); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, key := range []string{"client_name", "client_phone", "items"} {
		if _, ok := raw[key]; !ok {
			t.Fatalf("missing canonical key %q in %s", key, encoded)
		}
	}
	for _, legacyKey := range []string{"Nom", "Téléphone"} {
		if _, ok := raw[legacyKey]; ok {
			t.Fatalf("legacy key %q must not appear on the write path", legacyKey)
		}
	}

	var items []map[string]json.RawMessage
	if err := json.Unmarshal(raw["items"], &items); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(items[0]["unit_price"]) != "2500" {
		t.Fatalf("unit price should encode as a bare number, got %s", items[0]["unit_price"])
	}
	if string(items[0]["product_id_djoli"]) != `"9"` {
		t.Fatalf("unexpected product id encoding %s", items[0]["product_id_djoli"])
	}
}
