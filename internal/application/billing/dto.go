package billing

import (
	"time"

	"github.com/google/uuid"

	"github.com/dukabook/backend/internal/domain/billing"
	"github.com/dukabook/backend/internal/domain/ledger"
)

// CreateInvoiceRequest represents a request to open a draft invoice
type CreateInvoiceRequest struct {
	CustomerID   uuid.UUID `json:"customer_id" binding:"required"`
	CustomerName string    `json:"customer_name" binding:"required,min=1,max=200"`
	TaxRate      *string   `json:"tax_rate"`
}

// CreateQuotationRequest represents a request to open a draft quotation
type CreateQuotationRequest struct {
	CustomerID   uuid.UUID `json:"customer_id" binding:"required"`
	CustomerName string    `json:"customer_name" binding:"required,min=1,max=200"`
	TaxRate      *string   `json:"tax_rate"`
	ValidUntil   *time.Time `json:"valid_until"`
}

// OpenSaleRequest represents a request to open a POS sale
type OpenSaleRequest struct {
	CashierID uuid.UUID  `json:"cashier_id" binding:"required"`
	ShiftID   *uuid.UUID `json:"shift_id"`
	TaxRate   *string    `json:"tax_rate"`
}

// AddCatalogLineRequest adds a catalog item as a new line
type AddCatalogLineRequest struct {
	ItemID uuid.UUID `json:"item_id" binding:"required"`
}

// UpdateLineQuantityRequest changes a line's quantity. The quantity is a
// raw string, malformed input is coerced to zero which removes the line.
type UpdateLineQuantityRequest struct {
	Quantity string `json:"quantity"`
}

// UpdateLinePriceRequest overrides a line's unit price
type UpdateLinePriceRequest struct {
	UnitPrice string `json:"unit_price"`
}

// SelectLineItemRequest binds a line to a catalog item, or clears the
// binding when item_id is null
type SelectLineItemRequest struct {
	ItemID *uuid.UUID `json:"item_id"`
}

// RecordPaymentRequest records a payment against an invoice
type RecordPaymentRequest struct {
	Amount string `json:"amount" binding:"required"`
	Method string `json:"method"`
}

// CompleteSaleRequest settles a POS sale
type CompleteSaleRequest struct {
	Tendered string `json:"tendered" binding:"required"`
	Method   string `json:"method" binding:"required"`
}

// VoidSaleRequest voids a completed POS sale
type VoidSaleRequest struct {
	Reason string `json:"reason" binding:"required,min=1,max=500"`
}

// LineResponse represents one document line in API responses
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

// InvoiceResponse represents an invoice in API responses
type InvoiceResponse struct {
	ID            uuid.UUID      `json:"id"`
	Number        string         `json:"number"`
	CustomerID    uuid.UUID      `json:"customer_id"`
	CustomerName  string         `json:"customer_name"`
	Status        string         `json:"status"`
	Lines         []LineResponse `json:"lines"`
	Totals        TotalsResponse `json:"totals"`
	TaxRate       string         `json:"tax_rate"`
	AmountPaid    string         `json:"amount_paid"`
	BalanceDue    string         `json:"balance_due"`
	PaymentStatus string         `json:"payment_status"`
	PaymentMethod string         `json:"payment_method"`
	SourceQuoteID *uuid.UUID     `json:"source_quote_id"`
	Remark        string         `json:"remark"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// QuotationResponse represents a quotation in API responses
type QuotationResponse struct {
	ID           uuid.UUID      `json:"id"`
	Number       string         `json:"number"`
	CustomerID   uuid.UUID      `json:"customer_id"`
	CustomerName string         `json:"customer_name"`
	Status       string         `json:"status"`
	Lines        []LineResponse `json:"lines"`
	Totals       TotalsResponse `json:"totals"`
	TaxRate      string         `json:"tax_rate"`
	ValidUntil   *time.Time     `json:"valid_until"`
	Remark       string         `json:"remark"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// POSSaleResponse represents a POS sale in API responses
type POSSaleResponse struct {
	ID             uuid.UUID      `json:"id"`
	Number         string         `json:"number"`
	CashierID      uuid.UUID      `json:"cashier_id"`
	ShiftID        *uuid.UUID     `json:"shift_id"`
	Status         string         `json:"status"`
	Lines          []LineResponse `json:"lines"`
	Totals         TotalsResponse `json:"totals"`
	AmountTendered string         `json:"amount_tendered"`
	ChangeGiven    string         `json:"change_given"`
	PaymentMethod  string         `json:"payment_method"`
	VoidReason     string         `json:"void_reason,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// toLineResponses converts ledger entries to their API representation
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

// toTotalsResponse converts ledger totals to their API representation
func toTotalsResponse(t ledger.Totals) TotalsResponse {
	return TotalsResponse{
		Subtotal:   t.Subtotal.StringFixed(2),
		TaxAmount:  t.TaxAmount.StringFixed(2),
		GrandTotal: t.GrandTotal.StringFixed(2),
	}
}

// ToInvoiceResponse converts a domain invoice to its API representation
func ToInvoiceResponse(inv *billing.Invoice) *InvoiceResponse {
	return &InvoiceResponse{
		ID:            inv.ID,
		Number:        inv.Number,
		CustomerID:    inv.CustomerID,
		CustomerName:  inv.CustomerName,
		Status:        string(inv.Status),
		Lines:         toLineResponses(inv.Lines),
		Totals:        toTotalsResponse(inv.Totals()),
		TaxRate:       inv.TaxRate.String(),
		AmountPaid:    inv.AmountPaid.StringFixed(2),
		BalanceDue:    inv.BalanceDue().StringFixed(2),
		PaymentStatus: inv.PaymentStatus().Label(),
		PaymentMethod: string(inv.PaymentMethod),
		SourceQuoteID: inv.SourceQuoteID,
		Remark:        inv.Remark,
		CreatedAt:     inv.CreatedAt,
		UpdatedAt:     inv.UpdatedAt,
	}
}

// ToQuotationResponse converts a domain quotation to its API representation
func ToQuotationResponse(q *billing.Quotation) *QuotationResponse {
	return &QuotationResponse{
		ID:           q.ID,
		Number:       q.Number,
		CustomerID:   q.CustomerID,
		CustomerName: q.CustomerName,
		Status:       string(q.Status),
		Lines:        toLineResponses(q.Lines),
		Totals:       toTotalsResponse(q.Totals()),
		TaxRate:      q.TaxRate.String(),
		ValidUntil:   q.ValidUntil,
		Remark:       q.Remark,
		CreatedAt:    q.CreatedAt,
		UpdatedAt:    q.UpdatedAt,
	}
}

// ToPOSSaleResponse converts a domain POS sale to its API representation
func ToPOSSaleResponse(s *billing.POSSale) *POSSaleResponse {
	return &POSSaleResponse{
		ID:             s.ID,
		Number:         s.Number,
		CashierID:      s.CashierID,
		ShiftID:        s.ShiftID,
		Status:         string(s.Status),
		Lines:          toLineResponses(s.Lines),
		Totals:         toTotalsResponse(s.Totals()),
		AmountTendered: s.AmountTendered.StringFixed(2),
		ChangeGiven:    s.ChangeGiven.StringFixed(2),
		PaymentMethod:  string(s.PaymentMethod),
		VoidReason:     s.VoidReason,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}
