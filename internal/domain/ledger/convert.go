package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RawLine is a stored document line as persisted or received over the wire.
// Quantity, unit price and total arrive as raw strings because the original
// inputs were free-form; Rehydrate parses them defensively.
type RawLine struct {
	ItemID      *uuid.UUID `json:"item_id"`
	Code        string     `json:"code"`
	Description string     `json:"description"`
	Unit        string     `json:"uom"`
	Quantity    string     `json:"quantity"`
	UnitPrice   string     `json:"unit_price"`
	Total       string     `json:"total"`
}

// Rehydrate materializes ledger entries from stored document lines,
// recomputing every line total from the parsed quantity and unit price. The
// stored total is discarded entirely: totals persisted at creation time may
// have been corrupted or computed under different rounding. Applied
// identically when loading a quotation or invoice for editing and when
// converting a quotation into invoice draft lines (quantity carries over
// unchanged).
func Rehydrate(lines []RawLine) []Entry {
	entries := make([]Entry, 0, len(lines))
	for _, line := range lines {
		qty := Amount(line.Quantity)
		price := Amount(line.UnitPrice)
		entry := Entry{
			ItemID:      line.ItemID,
			Code:        line.Code,
			Description: line.Description,
			Unit:        line.Unit,
			Quantity:    qty,
			UnitPrice:   price,
			Total:       qty.Mul(price),
			CreatedAt:   time.Now(),
			UpdatedAt:   time.Now(),
		}
		entries = append(entries, entry)
	}
	return entries
}

// ToRawLines converts ledger entries back to the stored wire shape, keeping
// the stored total alongside quantity and price. Round-tripping through
// Rehydrate is how conversion flows guarantee totals are recomputed rather
// than trusted.
func ToRawLines(entries []Entry) []RawLine {
	lines := make([]RawLine, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, RawLine{
			ItemID:      e.ItemID,
			Code:        e.Code,
			Description: e.Description,
			Unit:        e.Unit,
			Quantity:    e.Quantity.String(),
			UnitPrice:   e.UnitPrice.String(),
			Total:       e.Total.String(),
		})
	}
	return lines
}

// ReturnPrefill materializes goods-return lines from invoice lines. Price and
// catalog metadata carry over but every quantity is reset to zero: the
// operator must explicitly enter how many units are being returned. This is a
// deliberate asymmetry against the quotation-to-invoice flow.
func ReturnPrefill(lines []RawLine) []Entry {
	entries := Rehydrate(lines)
	for i := range entries {
		entries[i].Quantity = decimal.Zero
		entries[i].recompute()
	}
	return entries
}
