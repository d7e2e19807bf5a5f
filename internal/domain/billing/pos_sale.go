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

// POSSaleStatus represents the status of a point-of-sale transaction
type POSSaleStatus string

const (
	POSSaleStatusOpen      POSSaleStatus = "OPEN"
	POSSaleStatusCompleted POSSaleStatus = "COMPLETED"
	POSSaleStatusVoided    POSSaleStatus = "VOIDED"
)

// IsValid checks if the status is a valid POSSaleStatus
func (s POSSaleStatus) IsValid() bool {
	switch s {
	case POSSaleStatusOpen, POSSaleStatusCompleted, POSSaleStatusVoided:
		return true
	}
	return false
}

// CanTransitionTo checks if the status can transition to the target status
func (s POSSaleStatus) CanTransitionTo(target POSSaleStatus) bool {
	switch s {
	case POSSaleStatusOpen:
		return target == POSSaleStatusCompleted || target == POSSaleStatusVoided
	case POSSaleStatusCompleted:
		return target == POSSaleStatusVoided
	case POSSaleStatusVoided:
		return false
	}
	return false
}

// POSSale represents a point-of-sale transaction. It rides the same ledger
// shape as invoices; walk-in sales have no customer record and settle
// immediately at the till.
type POSSale struct {
	shared.TenantAggregateRoot
	Number         string          `gorm:"size:50;not null;uniqueIndex:idx_pos_sales_tenant_number,priority:2"`
	CashierID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	ShiftID        *uuid.UUID      `gorm:"type:uuid;index"`
	Lines          Lines           `gorm:"type:jsonb"`
	TaxRate        decimal.Decimal `gorm:"type:decimal(6,4);not null"`
	AmountTendered decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	ChangeGiven    decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	PaymentMethod  PaymentMethod   `gorm:"size:30"`
	Status         POSSaleStatus   `gorm:"size:20;not null;default:'OPEN'"`
	CompletedAt    *time.Time
	VoidedAt       *time.Time
	VoidReason     string `gorm:"size:500"`
}

// NewPOSSale opens a new till transaction
func NewPOSSale(tenantID uuid.UUID, number string, cashierID uuid.UUID, taxRate decimal.Decimal) (*POSSale, error) {
	if number == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Sale number cannot be empty")
	}
	if cashierID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CASHIER", "Cashier ID cannot be empty")
	}

	return &POSSale{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Number:              number,
		CashierID:           cashierID,
		Lines:               Lines{},
		TaxRate:             taxRate,
		AmountTendered:      decimal.Zero,
		ChangeGiven:         decimal.Zero,
		Status:              POSSaleStatusOpen,
	}, nil
}

// AttachShift links the sale to a salon/barbershop shift for commission
// accrual
func (s *POSSale) AttachShift(shiftID uuid.UUID) {
	s.ShiftID = &shiftID
	s.UpdatedAt = time.Now()
}

// Ledger materializes a working ledger over the sale's current lines.
// POS resolves prices through the retail priority (selling price first).
func (s *POSSale) Ledger() *ledger.Ledger {
	l := ledger.New(
		ledger.WithTaxRate(s.TaxRate),
		ledger.WithPricePriority(ledger.RetailPricePriority),
	)
	l.Load(s.Lines)
	return l
}

// SetLines replaces the sale's lines from a working ledger
// Only allowed while the sale is open
func (s *POSSale) SetLines(entries []ledger.Entry) error {
	if s.Status != POSSaleStatusOpen {
		return shared.NewDomainError("INVALID_STATE", "Cannot modify lines of a settled sale")
	}
	s.Lines = entries
	s.UpdatedAt = time.Now()
	return nil
}

// Totals recomputes subtotal, tax and grand total from current line state
func (s *POSSale) Totals() ledger.Totals {
	return s.Ledger().Totals()
}

// Complete settles the sale. The tendered amount must cover the grand total
// and a payment method is required.
func (s *POSSale) Complete(tendered valueobject.Money, method PaymentMethod) error {
	if !s.Status.CanTransitionTo(POSSaleStatusCompleted) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot complete sale in %s status", s.Status))
	}
	if !s.Ledger().HasSubmittableLines() {
		return shared.NewDomainError("INVALID_LINES", "Every line needs an item and a quantity greater than zero")
	}
	if !method.IsValid() {
		return shared.NewDomainError("PAYMENT_METHOD_REQUIRED", "Payment method is required to settle a sale")
	}

	grand := s.Totals().GrandTotal
	if tendered.Amount().LessThan(grand) {
		return shared.NewDomainError("INSUFFICIENT_TENDER", "Amount tendered does not cover the sale total")
	}

	now := time.Now()
	s.AmountTendered = tendered.Amount()
	s.ChangeGiven = tendered.Amount().Sub(grand)
	s.PaymentMethod = method
	s.Status = POSSaleStatusCompleted
	s.CompletedAt = &now
	s.UpdatedAt = now
	return nil
}

// Void cancels the sale; a completed sale may be voided for till corrections
func (s *POSSale) Void(reason string) error {
	if !s.Status.CanTransitionTo(POSSaleStatusVoided) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot void sale in %s status", s.Status))
	}
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Void reason is required")
	}

	now := time.Now()
	s.Status = POSSaleStatusVoided
	s.VoidedAt = &now
	s.VoidReason = reason
	s.UpdatedAt = now
	return nil
}

// IsCompleted returns true if the sale has been settled
func (s *POSSale) IsCompleted() bool {
	return s.Status == POSSaleStatusCompleted
}

// TableName returns the database table name for POSSale
func (POSSale) TableName() string {
	return "pos_sales"
}
