package salon

import (
	"fmt"
	"time"

	"github.com/dukabook/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ShiftStatus represents the status of a staff shift
type ShiftStatus string

const (
	ShiftStatusOpen   ShiftStatus = "OPEN"
	ShiftStatusClosed ShiftStatus = "CLOSED"
)

// IsValid checks if the status is a valid ShiftStatus
func (s ShiftStatus) IsValid() bool {
	return s == ShiftStatusOpen || s == ShiftStatusClosed
}

// Shift represents one staff member's working shift at the salon. Completed
// sales recorded against the shift accrue commission at the shift's rate;
// voided sales never reach the shift.
type Shift struct {
	shared.TenantAggregateRoot
	StaffID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	StaffName      string          `gorm:"size:200;not null"`
	CommissionRate decimal.Decimal `gorm:"type:decimal(6,4);not null;default:0"`
	SalesTotal     decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	SalesCount     int             `gorm:"not null;default:0"`
	Status         ShiftStatus     `gorm:"size:20;not null;default:'OPEN'"`
	OpenedAt       time.Time       `gorm:"not null"`
	ClosedAt       *time.Time
}

// OpenShift starts a shift for a staff member. The commission rate is a
// fraction (0.10 for 10%) and must sit in [0, 1].
func OpenShift(tenantID, staffID uuid.UUID, staffName string, commissionRate decimal.Decimal) (*Shift, error) {
	if staffID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_STAFF", "Staff ID cannot be empty")
	}
	if staffName == "" {
		return nil, shared.NewDomainError("INVALID_STAFF_NAME", "Staff name cannot be empty")
	}
	if commissionRate.IsNegative() || commissionRate.GreaterThan(decimal.NewFromInt(1)) {
		return nil, shared.NewDomainError("INVALID_RATE", "Commission rate must be between 0 and 1")
	}

	return &Shift{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		StaffID:             staffID,
		StaffName:           staffName,
		CommissionRate:      commissionRate,
		SalesTotal:          decimal.Zero,
		Status:              ShiftStatusOpen,
		OpenedAt:            time.Now(),
	}, nil
}

// RecordSale accrues a completed sale's grand total against the shift
func (s *Shift) RecordSale(saleTotal decimal.Decimal) error {
	if s.Status != ShiftStatusOpen {
		return shared.NewDomainError("INVALID_STATE", "Cannot record a sale on a closed shift")
	}
	if saleTotal.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Sale total cannot be negative")
	}

	s.SalesTotal = s.SalesTotal.Add(saleTotal)
	s.SalesCount++
	s.UpdatedAt = time.Now()
	return nil
}

// CommissionEarned derives the commission from the accrued sales total.
// Derived on read, never stored.
func (s *Shift) CommissionEarned() decimal.Decimal {
	return s.SalesTotal.Mul(s.CommissionRate).Round(2)
}

// Close ends the shift
func (s *Shift) Close() error {
	if s.Status != ShiftStatusOpen {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot close shift in %s status", s.Status))
	}

	now := time.Now()
	s.Status = ShiftStatusClosed
	s.ClosedAt = &now
	s.UpdatedAt = now
	return nil
}

// IsOpen returns true while the shift accepts sales
func (s *Shift) IsOpen() bool {
	return s.Status == ShiftStatusOpen
}

// TableName returns the database table name for Shift
func (Shift) TableName() string {
	return "salon_shifts"
}
