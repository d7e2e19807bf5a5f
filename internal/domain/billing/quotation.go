package billing

import (
	"fmt"
	"time"

	"github.com/dukabook/backend/internal/domain/ledger"
	"github.com/dukabook/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// QuotationStatus represents the status of a quotation
type QuotationStatus string

const (
	QuotationStatusDraft     QuotationStatus = "DRAFT"
	QuotationStatusSent      QuotationStatus = "SENT"
	QuotationStatusAccepted  QuotationStatus = "ACCEPTED"
	QuotationStatusDeclined  QuotationStatus = "DECLINED"
	QuotationStatusConverted QuotationStatus = "CONVERTED"
)

// IsValid checks if the status is a valid QuotationStatus
func (s QuotationStatus) IsValid() bool {
	switch s {
	case QuotationStatusDraft, QuotationStatusSent, QuotationStatusAccepted,
		QuotationStatusDeclined, QuotationStatusConverted:
		return true
	}
	return false
}

// String returns the string representation of QuotationStatus
func (s QuotationStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status.
// The UI only offers actions legal for the current state; this table is the
// single source of truth for those actions.
func (s QuotationStatus) CanTransitionTo(target QuotationStatus) bool {
	switch s {
	case QuotationStatusDraft:
		return target == QuotationStatusSent || target == QuotationStatusDeclined
	case QuotationStatusSent:
		return target == QuotationStatusAccepted || target == QuotationStatusDeclined
	case QuotationStatusAccepted:
		return target == QuotationStatusConverted
	case QuotationStatusDeclined, QuotationStatusConverted:
		return false // Terminal states
	}
	return false
}

// Quotation represents a sales quotation aggregate root
type Quotation struct {
	shared.TenantAggregateRoot
	Number       string          `gorm:"size:50;not null;uniqueIndex:idx_quotations_tenant_number,priority:2"`
	CustomerID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	CustomerName string          `gorm:"size:200;not null"`
	Lines        Lines           `gorm:"type:jsonb"`
	TaxRate      decimal.Decimal `gorm:"type:decimal(6,4);not null"`
	ValidUntil   *time.Time
	Status       QuotationStatus `gorm:"size:20;not null;default:'DRAFT'"`
	Remark       string          `gorm:"size:500"`
	SentAt       *time.Time
	AcceptedAt   *time.Time
	ConvertedAt  *time.Time
}

// NewQuotation creates a new draft quotation
func NewQuotation(tenantID uuid.UUID, number string, customerID uuid.UUID, customerName string, taxRate decimal.Decimal) (*Quotation, error) {
	if number == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Quotation number cannot be empty")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if customerName == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_NAME", "Customer name cannot be empty")
	}

	return &Quotation{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Number:              number,
		CustomerID:          customerID,
		CustomerName:        customerName,
		Lines:               Lines{},
		TaxRate:             taxRate,
		Status:              QuotationStatusDraft,
	}, nil
}

// Ledger materializes a working ledger over the quotation's current lines
func (q *Quotation) Ledger() *ledger.Ledger {
	l := ledger.New(ledger.WithTaxRate(q.TaxRate))
	l.Load(q.Lines)
	return l
}

// SetLines replaces the quotation's lines from a working ledger
// Only allowed in DRAFT status
func (q *Quotation) SetLines(entries []ledger.Entry) error {
	if q.Status != QuotationStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Cannot modify lines of a non-draft quotation")
	}
	q.Lines = entries
	q.UpdatedAt = time.Now()
	return nil
}

// Totals recomputes subtotal, tax and grand total from current line state
func (q *Quotation) Totals() ledger.Totals {
	return q.Ledger().Totals()
}

// SetValidity sets the valid-until date
func (q *Quotation) SetValidity(validUntil *time.Time) {
	q.ValidUntil = validUntil
	q.UpdatedAt = time.Now()
}

// SetRemark sets the quotation remark
func (q *Quotation) SetRemark(remark string) {
	q.Remark = remark
	q.UpdatedAt = time.Now()
}

// Send marks the quotation as sent to the customer
func (q *Quotation) Send() error {
	if !q.Status.CanTransitionTo(QuotationStatusSent) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot send quotation in %s status", q.Status))
	}
	if !q.Ledger().HasSubmittableLines() {
		return shared.NewDomainError("INVALID_LINES", "Every line needs an item and a quantity greater than zero")
	}

	now := time.Now()
	q.Status = QuotationStatusSent
	q.SentAt = &now
	q.UpdatedAt = now
	return nil
}

// Accept marks the quotation as accepted by the customer
func (q *Quotation) Accept() error {
	if !q.Status.CanTransitionTo(QuotationStatusAccepted) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot accept quotation in %s status", q.Status))
	}

	now := time.Now()
	q.Status = QuotationStatusAccepted
	q.AcceptedAt = &now
	q.UpdatedAt = now
	return nil
}

// Decline marks the quotation as declined
func (q *Quotation) Decline() error {
	if !q.Status.CanTransitionTo(QuotationStatusDeclined) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot decline quotation in %s status", q.Status))
	}

	q.Status = QuotationStatusDeclined
	q.UpdatedAt = time.Now()
	return nil
}

// ConvertToInvoice materializes a draft invoice from the quotation's lines.
// Each line total is recomputed from quantity and unit price on the way
// through, discarding whatever total was stored with the quotation; quantity
// carries over unchanged. The quotation moves to CONVERTED.
func (q *Quotation) ConvertToInvoice(invoiceNumber string) (*Invoice, error) {
	if !q.Status.CanTransitionTo(QuotationStatusConverted) {
		return nil, shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot convert quotation in %s status", q.Status))
	}

	inv, err := NewInvoice(q.TenantID, invoiceNumber, q.CustomerID, q.CustomerName, q.TaxRate)
	if err != nil {
		return nil, err
	}
	inv.Lines = ledger.Rehydrate(ledger.ToRawLines(q.Lines))
	sourceID := q.ID
	inv.SourceQuoteID = &sourceID

	now := time.Now()
	q.Status = QuotationStatusConverted
	q.ConvertedAt = &now
	q.UpdatedAt = now

	return inv, nil
}

// TableName returns the database table name for Quotation
func (Quotation) TableName() string {
	return "quotations"
}
