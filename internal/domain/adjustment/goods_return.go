package adjustment

import (
	"fmt"
	"time"

	"github.com/dukabook/backend/internal/domain/billing"
	"github.com/dukabook/backend/internal/domain/ledger"
	"github.com/dukabook/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// GoodsReturn represents goods coming back from a customer against an
// invoice. Lines are pre-filled from the source invoice with quantity reset
// to zero; the operator enters the returned units per line.
type GoodsReturn struct {
	shared.TenantAggregateRoot
	Number          string           `gorm:"size:50;not null;uniqueIndex:idx_goods_returns_tenant_number,priority:2"`
	SourceInvoiceID uuid.UUID        `gorm:"type:uuid;not null;index"`
	CustomerID      uuid.UUID        `gorm:"type:uuid;not null;index"`
	CustomerName    string           `gorm:"size:200;not null"`
	Lines           billing.Lines    `gorm:"type:jsonb"`
	TaxRate         decimal.Decimal  `gorm:"type:decimal(6,4);not null"`
	Reason          string           `gorm:"size:500"`
	Status          ProcessingStatus `gorm:"size:20;not null;default:'PENDING'"`
	ProcessedAt     *time.Time
	CancelledAt     *time.Time
}

// NewGoodsReturn creates a pending return pre-filled from an invoice. Each
// line carries the invoice's price and catalog metadata but starts at
// quantity zero.
func NewGoodsReturn(tenantID uuid.UUID, number string, inv *billing.Invoice) (*GoodsReturn, error) {
	if number == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Return number cannot be empty")
	}
	if inv == nil {
		return nil, shared.NewDomainError("INVALID_SOURCE", "Source invoice is required")
	}

	return &GoodsReturn{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Number:              number,
		SourceInvoiceID:     inv.ID,
		CustomerID:          inv.CustomerID,
		CustomerName:        inv.CustomerName,
		Lines:               ledger.ReturnPrefill(ledger.ToRawLines(inv.Lines)),
		TaxRate:             inv.TaxRate,
		Status:              StatusPending,
	}, nil
}

// Ledger materializes a working ledger over the return's current lines
func (r *GoodsReturn) Ledger() *ledger.Ledger {
	l := ledger.New(ledger.WithTaxRate(r.TaxRate))
	l.Load(r.Lines)
	return l
}

// SetLineQuantity sets the returned quantity for one line. Unlike document
// editing, a zero quantity keeps the line: it simply means nothing of that
// item is being returned.
func (r *GoodsReturn) SetLineQuantity(index int, quantity decimal.Decimal) error {
	if !r.Status.CanProcess() {
		return shared.NewDomainError("INVALID_STATE", "Cannot edit a settled return")
	}
	if index < 0 || index >= len(r.Lines) {
		return shared.NewDomainError("LINE_NOT_FOUND", "Return line not found")
	}
	if quantity.IsNegative() {
		return shared.NewDomainError("INVALID_QUANTITY", "Returned quantity cannot be negative")
	}
	r.Lines[index].Quantity = quantity
	r.Lines[index].Total = quantity.Mul(r.Lines[index].UnitPrice)
	r.UpdatedAt = time.Now()
	return nil
}

// SetReason records why the goods are coming back
func (r *GoodsReturn) SetReason(reason string) {
	r.Reason = reason
	r.UpdatedAt = time.Now()
}

// Totals recomputes totals over lines with a positive returned quantity
func (r *GoodsReturn) Totals() ledger.Totals {
	return r.Ledger().Totals()
}

// ReturnedLines returns only the lines the operator actually filled in
func (r *GoodsReturn) ReturnedLines() []ledger.Entry {
	out := make([]ledger.Entry, 0, len(r.Lines))
	for _, line := range r.Lines {
		if line.Quantity.IsPositive() {
			out = append(out, line)
		}
	}
	return out
}

// Process marks the return as processed. The stock and account adjustments
// happen first in the application service; the status flips only after they
// succeed.
func (r *GoodsReturn) Process() error {
	if !r.Status.CanTransitionTo(StatusProcessed) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot process return in %s status", r.Status))
	}
	if len(r.ReturnedLines()) == 0 {
		return shared.NewDomainError("NO_LINES", "Enter a returned quantity for at least one line")
	}

	now := time.Now()
	r.Status = StatusProcessed
	r.ProcessedAt = &now
	r.UpdatedAt = now
	return nil
}

// Cancel abandons the return before processing
func (r *GoodsReturn) Cancel() error {
	if !r.Status.CanTransitionTo(StatusCancelled) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot cancel return in %s status", r.Status))
	}

	now := time.Now()
	r.Status = StatusCancelled
	r.CancelledAt = &now
	r.UpdatedAt = now
	return nil
}

// TableName returns the database table name for GoodsReturn
func (GoodsReturn) TableName() string {
	return "goods_returns"
}
