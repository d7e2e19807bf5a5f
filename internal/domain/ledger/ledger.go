package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultTaxRate is the flat VAT rate applied over a document subtotal.
// Kept configurable per ledger so existing tenants keep their computed totals.
var DefaultTaxRate = decimal.New(16, -2)

// Entry represents one line of a document: a catalog item (or free-text item)
// with quantity and price. Code, description and unit are copied from the
// catalog item at selection time; later catalog changes do not retroactively
// affect existing lines.
type Entry struct {
	ItemID      *uuid.UUID      `json:"item_id"`
	Code        string          `json:"code"`
	Description string          `json:"description"`
	Unit        string          `json:"uom"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Total       decimal.Decimal `json:"total"`
	CreatedAt   time.Time       `json:"-"`
	UpdatedAt   time.Time       `json:"-"`
}

// recompute derives the line total from the current quantity and price.
// Total is never independently settable.
func (e *Entry) recompute() {
	e.Total = e.Quantity.Mul(e.UnitPrice)
	e.UpdatedAt = time.Now()
}

// IsValid reports whether the entry counts towards document totals.
// Placeholder lines (empty description) and non-positive quantities are kept
// visible for editing but excluded from sums.
func (e *Entry) IsValid() bool {
	return e.Description != "" && e.Quantity.IsPositive()
}

// Totals holds the derived document totals. All three values are recomputed
// from current line state on every read; nothing is cached.
type Totals struct {
	Subtotal   decimal.Decimal `json:"subtotal"`
	TaxAmount  decimal.Decimal `json:"tax_amount"`
	GrandTotal decimal.Decimal `json:"grand_total"`
}

// Ledger maintains the ordered set of line entries for one document and keeps
// derived totals consistent with every mutation. Insertion order is display
// order. The ledger itself never returns an error: malformed numeric input is
// coerced to zero and out-of-range indices are ignored; submission-time
// validation belongs to the calling service.
type Ledger struct {
	entries  []Entry
	taxRate  decimal.Decimal
	priority []PriceField
}

// Option configures a Ledger
type Option func(*Ledger)

// WithTaxRate overrides the default VAT rate
func WithTaxRate(rate decimal.Decimal) Option {
	return func(l *Ledger) {
		l.taxRate = rate
	}
}

// WithPricePriority sets the catalog price resolution order for this ledger.
// Different document types prefer different price fields (selling price for
// sales documents, buying price for damage cost).
func WithPricePriority(priority []PriceField) Option {
	return func(l *Ledger) {
		l.priority = priority
	}
}

// New creates an empty ledger with the default 16% VAT rate and the sales
// price priority
func New(opts ...Option) *Ledger {
	l := &Ledger{
		entries:  make([]Entry, 0),
		taxRate:  DefaultTaxRate,
		priority: SalesPricePriority,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load replaces the ledger's entries, recomputing each line total from its
// quantity and price. Stored totals are never trusted.
func (l *Ledger) Load(entries []Entry) {
	l.entries = make([]Entry, len(entries))
	copy(l.entries, entries)
	for i := range l.entries {
		l.entries[i].recompute()
	}
}

// AddFromCatalog adds a line seeded from a catalog pick. If an entry for the
// same item already exists its quantity is incremented by 1 instead of
// appending a duplicate row.
func (l *Ledger) AddFromCatalog(pick Pick) {
	if pick.ItemID != uuid.Nil {
		for i := range l.entries {
			if l.entries[i].ItemID != nil && *l.entries[i].ItemID == pick.ItemID {
				l.entries[i].Quantity = l.entries[i].Quantity.Add(decimal.NewFromInt(1))
				l.entries[i].recompute()
				return
			}
		}
	}

	itemID := pick.ItemID
	entry := Entry{
		ItemID:      &itemID,
		Code:        pick.Code,
		Description: pick.Description,
		Unit:        pick.Unit,
		Quantity:    decimal.NewFromInt(1),
		UnitPrice:   ResolvePrice(pick, l.priority),
		CreatedAt:   time.Now(),
	}
	entry.recompute()
	l.entries = append(l.entries, entry)
}

// AddBlank appends an entry with no item selected, quantity 1 and price 0,
// for manual fill-in
func (l *Ledger) AddBlank() {
	entry := Entry{
		Quantity:  decimal.NewFromInt(1),
		UnitPrice: decimal.Zero,
		CreatedAt: time.Now(),
	}
	entry.recompute()
	l.entries = append(l.entries, entry)
}

// UpdateQuantity sets the quantity of the line at index and recomputes its
// total. A quantity of zero or less removes the line entirely.
func (l *Ledger) UpdateQuantity(index int, quantity decimal.Decimal) {
	if index < 0 || index >= len(l.entries) {
		return
	}
	if !quantity.IsPositive() {
		l.RemoveLine(index)
		return
	}
	l.entries[index].Quantity = quantity
	l.entries[index].recompute()
}

// UpdatePrice sets the unit price of the line at index and recomputes its
// total. Clamping to >= 0 is the input layer's concern, not the ledger's.
func (l *Ledger) UpdatePrice(index int, unitPrice decimal.Decimal) {
	if index < 0 || index >= len(l.entries) {
		return
	}
	l.entries[index].UnitPrice = unitPrice
	l.entries[index].recompute()
}

// SelectCatalogItem overwrites the line's snapshot fields from the given
// catalog pick, or clears them when pick is nil. The current quantity is kept
// and the total recomputed against the resolved price.
func (l *Ledger) SelectCatalogItem(index int, pick *Pick) {
	if index < 0 || index >= len(l.entries) {
		return
	}
	entry := &l.entries[index]
	if pick == nil {
		entry.ItemID = nil
		entry.Code = ""
		entry.Description = ""
		entry.Unit = ""
		entry.UnitPrice = decimal.Zero
		entry.recompute()
		return
	}
	itemID := pick.ItemID
	entry.ItemID = &itemID
	entry.Code = pick.Code
	entry.Description = pick.Description
	entry.Unit = pick.Unit
	entry.UnitPrice = ResolvePrice(*pick, l.priority)
	entry.recompute()
}

// RemoveLine deletes the entry at index. Keeping at least one row on screen
// is a presentation policy; the ledger operation itself is unconditional.
func (l *Ledger) RemoveLine(index int) {
	if index < 0 || index >= len(l.entries) {
		return
	}
	l.entries = append(l.entries[:index], l.entries[index+1:]...)
}

// Entries returns a copy of the current line entries in display order
func (l *Ledger) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of lines, valid or not
func (l *Ledger) Len() int {
	return len(l.entries)
}

// TaxRate returns the VAT rate applied by this ledger
func (l *Ledger) TaxRate() decimal.Decimal {
	return l.taxRate
}

// Totals computes subtotal, tax and grand total over valid lines only.
// Decimal arithmetic cannot produce NaN, so the coercion guard lives at the
// parse boundary (see Amount); by the time a value is stored on an entry it
// is a well-formed number or zero.
func (l *Ledger) Totals() Totals {
	subtotal := decimal.Zero
	for i := range l.entries {
		if l.entries[i].IsValid() {
			subtotal = subtotal.Add(l.entries[i].Total)
		}
	}
	tax := subtotal.Mul(l.taxRate)
	return Totals{
		Subtotal:   subtotal,
		TaxAmount:  tax,
		GrandTotal: subtotal.Add(tax),
	}
}

// HasSubmittableLines reports whether every line carries an item selection and
// a positive quantity, and at least one line exists. Services use this for
// the single pre-submit validation message.
func (l *Ledger) HasSubmittableLines() bool {
	if len(l.entries) == 0 {
		return false
	}
	for i := range l.entries {
		if l.entries[i].ItemID == nil || *l.entries[i].ItemID == uuid.Nil {
			return false
		}
		if !l.entries[i].Quantity.IsPositive() {
			return false
		}
	}
	return true
}
