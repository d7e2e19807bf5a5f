package ledger

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PriceField names one of the duck-typed price fields a catalog record may
// carry. Upstream records are inconsistent about which of these is populated,
// so each document type resolves a price through an explicit priority list
// instead of an ad hoc fallback chain.
type PriceField string

const (
	FieldRate         PriceField = "rate"
	FieldUnitPrice    PriceField = "unit_price"
	FieldSellingPrice PriceField = "selling_price"
	FieldBuyingPrice  PriceField = "buying_price"
)

// Price priorities per document type. These preserve the preference each
// screen of the original system applied: sales documents favour the explicit
// rate, POS favours the selling price, damage records cost out at buying
// price.
var (
	SalesPricePriority  = []PriceField{FieldRate, FieldUnitPrice}
	RetailPricePriority = []PriceField{FieldSellingPrice, FieldUnitPrice}
	DamagePricePriority = []PriceField{FieldBuyingPrice, FieldUnitPrice}
)

// Pick is the catalog item shape the ledger consumes when a line is seeded or
// re-selected. Prices holds the raw numeric strings keyed by field name, as
// received from the catalog API; malformed values coerce to zero during
// resolution.
type Pick struct {
	ItemID      uuid.UUID
	Code        string
	Description string
	Unit        string
	Prices      map[PriceField]string
	Stock       decimal.Decimal
}

// Amount parses a raw numeric string, coercing malformed input to zero.
// This is the silent-recovery policy for numeric fields: a value that fails
// to parse contributes 0 to every aggregate instead of propagating an error.
func Amount(raw string) decimal.Decimal {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ResolvePrice returns the first present, parseable price field in priority
// order, falling back to zero when none resolves
func ResolvePrice(pick Pick, priority []PriceField) decimal.Decimal {
	for _, field := range priority {
		raw, ok := pick.Prices[field]
		if !ok || strings.TrimSpace(raw) == "" {
			continue
		}
		if d, err := decimal.NewFromString(strings.TrimSpace(raw)); err == nil {
			return d
		}
	}
	return decimal.Zero
}
