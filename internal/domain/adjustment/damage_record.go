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

// DamageRecord represents stock written off as damaged. Lines cost out at
// buying price rather than selling price, since the loss is the replacement
// cost.
type DamageRecord struct {
	shared.TenantAggregateRoot
	Number      string           `gorm:"size:50;not null;uniqueIndex:idx_damage_records_tenant_number,priority:2"`
	Lines       billing.Lines    `gorm:"type:jsonb"`
	Reason      string           `gorm:"size:500"`
	Status      ProcessingStatus `gorm:"size:20;not null;default:'PENDING'"`
	ReportedBy  *uuid.UUID       `gorm:"type:uuid"`
	ProcessedAt *time.Time
	CancelledAt *time.Time
}

// NewDamageRecord creates a pending damage record
func NewDamageRecord(tenantID uuid.UUID, number string) (*DamageRecord, error) {
	if number == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Damage record number cannot be empty")
	}

	return &DamageRecord{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Number:              number,
		Lines:               billing.Lines{},
		Status:              StatusPending,
	}, nil
}

// Ledger materializes a working ledger over the record's lines. Damage
// resolves catalog prices through the buying-price priority and applies no
// VAT: a write-off is a cost, not a sale.
func (d *DamageRecord) Ledger() *ledger.Ledger {
	l := ledger.New(
		ledger.WithTaxRate(decimal.Zero),
		ledger.WithPricePriority(ledger.DamagePricePriority),
	)
	l.Load(d.Lines)
	return l
}

// SetLines replaces the record's lines from a working ledger
func (d *DamageRecord) SetLines(entries []ledger.Entry) error {
	if !d.Status.CanProcess() {
		return shared.NewDomainError("INVALID_STATE", "Cannot edit a settled damage record")
	}
	d.Lines = entries
	d.UpdatedAt = time.Now()
	return nil
}

// SetReason records what happened to the stock
func (d *DamageRecord) SetReason(reason string) {
	d.Reason = reason
	d.UpdatedAt = time.Now()
}

// TotalCost returns the write-off cost over valid lines
func (d *DamageRecord) TotalCost() decimal.Decimal {
	return d.Ledger().Totals().GrandTotal
}

// Process marks the record as processed. The stock deduction happens first in
// the application service; the status flips only after it succeeds.
func (d *DamageRecord) Process() error {
	if !d.Status.CanTransitionTo(StatusProcessed) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot process damage record in %s status", d.Status))
	}
	if !d.Ledger().HasSubmittableLines() {
		return shared.NewDomainError("INVALID_LINES", "Every line needs an item and a quantity greater than zero")
	}

	now := time.Now()
	d.Status = StatusProcessed
	d.ProcessedAt = &now
	d.UpdatedAt = now
	return nil
}

// Cancel abandons the record before processing
func (d *DamageRecord) Cancel() error {
	if !d.Status.CanTransitionTo(StatusCancelled) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot cancel damage record in %s status", d.Status))
	}

	now := time.Now()
	d.Status = StatusCancelled
	d.CancelledAt = &now
	d.UpdatedAt = now
	return nil
}

// TableName returns the database table name for DamageRecord
func (DamageRecord) TableName() string {
	return "damage_records"
}
