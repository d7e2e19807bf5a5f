package hospital

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/dukabook/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PrescriptionLine is one prescribed drug with its fulfillment state. Each
// line carries an independent availability toggle; the pharmacist enters the
// dispensed quantity, which is clamped against both the prescribed quantity
// and the stock on hand.
type PrescriptionLine struct {
	ItemID         uuid.UUID       `json:"item_id"`
	DrugName       string          `json:"drug_name"`
	Dosage         string          `json:"dosage"`
	PrescribedQty  decimal.Decimal `json:"prescribed_qty"`
	AvailableStock decimal.Decimal `json:"available_stock"`
	Available      bool            `json:"available"`
	EnteredQty     decimal.Decimal `json:"entered_qty"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
}

// FinalQty is the quantity actually dispensed:
// min(enteredQty, prescribedQty, availableStock)
func (l PrescriptionLine) FinalQty() decimal.Decimal {
	final := l.EnteredQty
	limit := decimal.Min(l.PrescribedQty, l.AvailableStock)
	if final.GreaterThan(limit) {
		final = limit
	}
	if final.IsNegative() {
		return decimal.Zero
	}
	return final
}

// Amount is the billable amount for this line
func (l PrescriptionLine) Amount() decimal.Decimal {
	return l.FinalQty().Mul(l.UnitPrice)
}

// PrescriptionLines is stored as JSONB within the prescription aggregate
type PrescriptionLines []PrescriptionLine

// Value implements driver.Valuer for GORM to store as JSONB
func (p PrescriptionLines) Value() (driver.Value, error) {
	if p == nil {
		return "[]", nil
	}
	return json.Marshal(p)
}

// Scan implements sql.Scanner for GORM to read from JSONB
func (p *PrescriptionLines) Scan(value interface{}) error {
	if value == nil {
		*p = PrescriptionLines{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to scan PrescriptionLines: unsupported type")
	}

	if len(bytes) == 0 {
		*p = PrescriptionLines{}
		return nil
	}

	return json.Unmarshal(bytes, p)
}

// PrescriptionStatus represents the fulfillment status of a prescription
type PrescriptionStatus string

const (
	PrescriptionStatusPending   PrescriptionStatus = "PENDING"
	PrescriptionStatusFulfilled PrescriptionStatus = "FULFILLED"
)

// Prescription represents a doctor's prescription being fulfilled at the
// pharmacy counter
type Prescription struct {
	shared.TenantAggregateRoot
	VisitID     uuid.UUID          `gorm:"type:uuid;not null;index"`
	PatientName string             `gorm:"size:200;not null"`
	Lines       PrescriptionLines  `gorm:"type:jsonb"`
	Status      PrescriptionStatus `gorm:"size:20;not null;default:'PENDING'"`
	FulfilledAt *time.Time
}

// NewPrescription creates a pending prescription for a visit
func NewPrescription(tenantID, visitID uuid.UUID, patientName string) (*Prescription, error) {
	if visitID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_VISIT", "Visit ID cannot be empty")
	}

	return &Prescription{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		VisitID:             visitID,
		PatientName:         patientName,
		Lines:               PrescriptionLines{},
		Status:              PrescriptionStatusPending,
	}, nil
}

// AddLine adds a prescribed drug
func (p *Prescription) AddLine(itemID uuid.UUID, drugName, dosage string, prescribedQty, availableStock, unitPrice decimal.Decimal) error {
	if p.Status != PrescriptionStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Cannot edit a fulfilled prescription")
	}
	if itemID == uuid.Nil {
		return shared.NewDomainError("INVALID_ITEM", "Drug item ID cannot be empty")
	}
	if !prescribedQty.IsPositive() {
		return shared.NewDomainError("INVALID_QUANTITY", "Prescribed quantity must be positive")
	}

	p.Lines = append(p.Lines, PrescriptionLine{
		ItemID:         itemID,
		DrugName:       drugName,
		Dosage:         dosage,
		PrescribedQty:  prescribedQty,
		AvailableStock: availableStock,
		Available:      availableStock.IsPositive(),
		EnteredQty:     prescribedQty,
		UnitPrice:      unitPrice,
	})
	p.UpdatedAt = time.Now()
	return nil
}

// SetAvailability toggles whether a line will be dispensed
func (p *Prescription) SetAvailability(index int, available bool) error {
	if index < 0 || index >= len(p.Lines) {
		return shared.NewDomainError("LINE_NOT_FOUND", "Prescription line not found")
	}
	p.Lines[index].Available = available
	p.UpdatedAt = time.Now()
	return nil
}

// SetEnteredQty records the quantity the pharmacist intends to dispense.
// The effective dispensed quantity remains clamped by FinalQty.
func (p *Prescription) SetEnteredQty(index int, qty decimal.Decimal) error {
	if index < 0 || index >= len(p.Lines) {
		return shared.NewDomainError("LINE_NOT_FOUND", "Prescription line not found")
	}
	if qty.IsNegative() {
		qty = decimal.Zero
	}
	p.Lines[index].EnteredQty = qty
	p.UpdatedAt = time.Now()
	return nil
}

// BilledTotal sums amounts over lines marked available only
func (p *Prescription) BilledTotal() decimal.Decimal {
	total := decimal.Zero
	for _, line := range p.Lines {
		if line.Available {
			total = total.Add(line.Amount())
		}
	}
	return total
}

// Fulfill closes out the prescription after dispensing
func (p *Prescription) Fulfill() error {
	if p.Status != PrescriptionStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Prescription has already been fulfilled")
	}

	now := time.Now()
	p.Status = PrescriptionStatusFulfilled
	p.FulfilledAt = &now
	p.UpdatedAt = now
	return nil
}

// TableName returns the database table name for Prescription
func (Prescription) TableName() string {
	return "prescriptions"
}
