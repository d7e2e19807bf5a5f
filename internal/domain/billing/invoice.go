package billing

import (
	"fmt"
	"time"

	"github.com/dukabook/backend/internal/domain/ledger"
	"github.com/dukabook/backend/internal/domain/shared"
	"github.com/dukabook/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceStatus represents the lifecycle status of an invoice
type InvoiceStatus string

const (
	InvoiceStatusDraft     InvoiceStatus = "DRAFT"
	InvoiceStatusIssued    InvoiceStatus = "ISSUED"
	InvoiceStatusCancelled InvoiceStatus = "CANCELLED"
)

// IsValid checks if the status is a valid InvoiceStatus
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusIssued, InvoiceStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo checks if the status can transition to the target status
func (s InvoiceStatus) CanTransitionTo(target InvoiceStatus) bool {
	switch s {
	case InvoiceStatusDraft:
		return target == InvoiceStatusIssued || target == InvoiceStatusCancelled
	case InvoiceStatusIssued:
		return target == InvoiceStatusCancelled
	case InvoiceStatusCancelled:
		return false
	}
	return false
}

// Invoice represents a customer invoice aggregate root. Lines are held in the
// shared ledger shape; totals are never persisted independently of the lines
// and every read recomputes them.
type Invoice struct {
	shared.TenantAggregateRoot
	Number        string          `gorm:"size:50;not null;uniqueIndex:idx_invoices_tenant_number,priority:2"`
	CustomerID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	CustomerName  string          `gorm:"size:200;not null"`
	Lines         Lines           `gorm:"type:jsonb"`
	TaxRate       decimal.Decimal `gorm:"type:decimal(6,4);not null"`
	AmountPaid    decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	PaymentMethod PaymentMethod   `gorm:"size:30"`
	PaymentTerms  string          `gorm:"size:100"`
	DueDate       *time.Time
	Status        InvoiceStatus `gorm:"size:20;not null;default:'DRAFT'"`
	SourceQuoteID *uuid.UUID    `gorm:"type:uuid;index"`
	Remark        string        `gorm:"size:500"`
	IssuedAt      *time.Time
	CancelledAt   *time.Time
}

// NewInvoice creates a new draft invoice
func NewInvoice(tenantID uuid.UUID, number string, customerID uuid.UUID, customerName string, taxRate decimal.Decimal) (*Invoice, error) {
	if number == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Invoice number cannot be empty")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if customerName == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_NAME", "Customer name cannot be empty")
	}

	return &Invoice{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Number:              number,
		CustomerID:          customerID,
		CustomerName:        customerName,
		Lines:               Lines{},
		TaxRate:             taxRate,
		AmountPaid:          decimal.Zero,
		Status:              InvoiceStatusDraft,
	}, nil
}

// Ledger materializes a working ledger over the invoice's current lines
func (inv *Invoice) Ledger() *ledger.Ledger {
	l := ledger.New(ledger.WithTaxRate(inv.TaxRate))
	l.Load(inv.Lines)
	return l
}

// SetLines replaces the invoice's lines from a working ledger
// Only allowed in DRAFT status
func (inv *Invoice) SetLines(entries []ledger.Entry) error {
	if inv.Status != InvoiceStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Cannot modify lines of a non-draft invoice")
	}
	inv.Lines = entries
	inv.UpdatedAt = time.Now()
	return nil
}

// Totals recomputes subtotal, tax and grand total from current line state
func (inv *Invoice) Totals() ledger.Totals {
	return inv.Ledger().Totals()
}

// BalanceDue returns the grand total minus the amount paid
func (inv *Invoice) BalanceDue() decimal.Decimal {
	return inv.Totals().GrandTotal.Sub(inv.AmountPaid)
}

// PaymentStatus derives the payment status label from current state
func (inv *Invoice) PaymentStatus() PaymentStatus {
	return DerivePaymentStatus(inv.Totals().GrandTotal, inv.AmountPaid)
}

// RecordPayment records an amount paid against the invoice. A payment method
// is required whenever the amount paid is positive.
func (inv *Invoice) RecordPayment(amount valueobject.Money, method PaymentMethod) error {
	if inv.Status == InvoiceStatusCancelled {
		return shared.NewDomainError("INVALID_STATE", "Cannot record payment on a cancelled invoice")
	}
	if amount.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Payment amount cannot be negative")
	}
	if amount.IsPositive() && !method.IsValid() {
		return shared.NewDomainError("PAYMENT_METHOD_REQUIRED", "Payment method is required when amount paid is greater than zero")
	}

	inv.AmountPaid = amount.Amount()
	if amount.IsPositive() {
		inv.PaymentMethod = method
	}
	inv.UpdatedAt = time.Now()
	return nil
}

// SetTerms sets payment terms and due date
func (inv *Invoice) SetTerms(terms string, dueDate *time.Time) {
	inv.PaymentTerms = terms
	inv.DueDate = dueDate
	inv.UpdatedAt = time.Now()
}

// SetRemark sets the invoice remark
func (inv *Invoice) SetRemark(remark string) {
	inv.Remark = remark
	inv.UpdatedAt = time.Now()
}

// Issue transitions the invoice from DRAFT to ISSUED. Every line must carry
// an item selection and a positive quantity; the failure surfaces as a single
// message rather than per-line errors.
func (inv *Invoice) Issue() error {
	if !inv.Status.CanTransitionTo(InvoiceStatusIssued) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot issue invoice in %s status", inv.Status))
	}
	if !inv.Ledger().HasSubmittableLines() {
		return shared.NewDomainError("INVALID_LINES", "Every line needs an item and a quantity greater than zero")
	}

	now := time.Now()
	inv.Status = InvoiceStatusIssued
	inv.IssuedAt = &now
	inv.UpdatedAt = now
	return nil
}

// Cancel cancels the invoice
func (inv *Invoice) Cancel() error {
	if !inv.Status.CanTransitionTo(InvoiceStatusCancelled) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot cancel invoice in %s status", inv.Status))
	}

	now := time.Now()
	inv.Status = InvoiceStatusCancelled
	inv.CancelledAt = &now
	inv.UpdatedAt = now
	return nil
}

// IsDraft returns true if the invoice is still editable
func (inv *Invoice) IsDraft() bool {
	return inv.Status == InvoiceStatusDraft
}

// TableName returns the database table name for Invoice
func (Invoice) TableName() string {
	return "invoices"
}
