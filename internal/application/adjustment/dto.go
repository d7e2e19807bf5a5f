package adjustment

import (
	"time"

	"github.com/google/uuid"

	"github.com/dukabook/backend/internal/domain/adjustment"
	"github.com/dukabook/backend/internal/domain/ledger"
)

// CreateReturnRequest opens a goods return against an issued invoice
type CreateReturnRequest struct {
	InvoiceID uuid.UUID `json:"invoice_id" binding:"required"`
	Reason    string    `json:"reason" binding:"max=500"`
}

// SetReturnQuantityRequest sets the returned units for one pre-filled line.
// Malformed quantities coerce to zero, meaning nothing of that item returns.
type SetReturnQuantityRequest struct {
	Quantity string `json:"quantity" binding:"required"`
}

// SetReasonRequest records why the adjustment happened
type SetReasonRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
}

// CreateDamageRequest opens a damage record
type CreateDamageRequest struct {
	Reason     string     `json:"reason" binding:"max=500"`
	ReportedBy *uuid.UUID `json:"reported_by"`
}

// AddCatalogLineRequest adds a catalog item to a damage record
type AddCatalogLineRequest struct {
	ItemID uuid.UUID `json:"item_id" binding:"required"`
}

// UpdateLineQuantityRequest changes a damage line's quantity; zero or
// malformed input removes the line
type UpdateLineQuantityRequest struct {
	Quantity string `json:"quantity" binding:"required"`
}

// LineResponse represents a document line in API responses
type LineResponse struct {
	Index       int        `json:"index"`
	ItemID      *uuid.UUID `json:"item_id"`
	Code        string     `json:"code"`
	Description string     `json:"description"`
	Unit        string     `json:"uom"`
	Quantity    string     `json:"quantity"`
	UnitPrice   string     `json:"unit_price"`
	Total       string     `json:"total"`
}

// TotalsResponse represents document totals in API responses
type TotalsResponse struct {
	Subtotal   string `json:"subtotal"`
	TaxAmount  string `json:"tax_amount"`
	GrandTotal string `json:"grand_total"`
}

// GoodsReturnResponse represents a goods return in API responses
type GoodsReturnResponse struct {
	ID              uuid.UUID      `json:"id"`
	Number          string         `json:"number"`
	SourceInvoiceID uuid.UUID      `json:"source_invoice_id"`
	CustomerID      uuid.UUID      `json:"customer_id"`
	CustomerName    string         `json:"customer_name"`
	Status          string         `json:"status"`
	Reason          string         `json:"reason"`
	Lines           []LineResponse `json:"lines"`
	Totals          TotalsResponse `json:"totals"`
	ProcessedAt     *time.Time     `json:"processed_at"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// DamageRecordResponse represents a damage record in API responses
type DamageRecordResponse struct {
	ID          uuid.UUID      `json:"id"`
	Number      string         `json:"number"`
	Status      string         `json:"status"`
	Reason      string         `json:"reason"`
	Lines       []LineResponse `json:"lines"`
	TotalCost   string         `json:"total_cost"`
	ReportedBy  *uuid.UUID     `json:"reported_by"`
	ProcessedAt *time.Time     `json:"processed_at"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

func toLineResponses(entries []ledger.Entry) []LineResponse {
	lines := make([]LineResponse, len(entries))
	for i, e := range entries {
		lines[i] = LineResponse{
			Index:       i,
			ItemID:      e.ItemID,
			Code:        e.Code,
			Description: e.Description,
			Unit:        e.Unit,
			Quantity:    e.Quantity.String(),
			UnitPrice:   e.UnitPrice.StringFixed(2),
			Total:       e.Total.StringFixed(2),
		}
	}
	return lines
}

// ToGoodsReturnResponse converts a domain goods return to its API representation
func ToGoodsReturnResponse(r *adjustment.GoodsReturn) *GoodsReturnResponse {
	totals := r.Totals()
	return &GoodsReturnResponse{
		ID:              r.ID,
		Number:          r.Number,
		SourceInvoiceID: r.SourceInvoiceID,
		CustomerID:      r.CustomerID,
		CustomerName:    r.CustomerName,
		Status:          string(r.Status),
		Reason:          r.Reason,
		Lines:           toLineResponses(r.Lines),
		Totals: TotalsResponse{
			Subtotal:   totals.Subtotal.StringFixed(2),
			TaxAmount:  totals.TaxAmount.StringFixed(2),
			GrandTotal: totals.GrandTotal.StringFixed(2),
		},
		ProcessedAt: r.ProcessedAt,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

// ToDamageRecordResponse converts a domain damage record to its API representation
func ToDamageRecordResponse(d *adjustment.DamageRecord) *DamageRecordResponse {
	return &DamageRecordResponse{
		ID:          d.ID,
		Number:      d.Number,
		Status:      string(d.Status),
		Reason:      d.Reason,
		Lines:       toLineResponses(d.Lines),
		TotalCost:   d.TotalCost().StringFixed(2),
		ReportedBy:  d.ReportedBy,
		ProcessedAt: d.ProcessedAt,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}
