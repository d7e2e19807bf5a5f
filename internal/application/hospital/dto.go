package hospital

import (
	"time"

	"github.com/google/uuid"

	"github.com/dukabook/backend/internal/domain/hospital"
)

// RegisterVisitRequest checks a patient into the waiting queue
type RegisterVisitRequest struct {
	PatientID   uuid.UUID `json:"patient_id" binding:"required"`
	PatientName string    `json:"patient_name" binding:"required,min=1,max=200"`
	Complaint   string    `json:"complaint" binding:"max=500"`
}

// AdvanceVisitRequest moves a visit to the next pipeline stage
type AdvanceVisitRequest struct {
	Stage string `json:"stage" binding:"required"`
}

// AssignDoctorRequest records the attending doctor
type AssignDoctorRequest struct {
	DoctorID uuid.UUID `json:"doctor_id" binding:"required"`
}

// CreatePrescriptionRequest opens a prescription against a visit
type CreatePrescriptionRequest struct {
	VisitID uuid.UUID `json:"visit_id" binding:"required"`
}

// AddPrescriptionLineRequest prescribes one drug. Quantity arrives as a raw
// string; malformed input coerces to zero and is rejected by the aggregate.
type AddPrescriptionLineRequest struct {
	ItemID   uuid.UUID `json:"item_id" binding:"required"`
	Dosage   string    `json:"dosage" binding:"max=200"`
	Quantity string    `json:"quantity" binding:"required"`
}

// SetEnteredQtyRequest records the quantity the pharmacist will dispense
type SetEnteredQtyRequest struct {
	Quantity string `json:"quantity" binding:"required"`
}

// SetAvailabilityRequest toggles whether a line will be dispensed
type SetAvailabilityRequest struct {
	Available *bool `json:"available" binding:"required"`
}

// VisitResponse represents a visit in API responses
type VisitResponse struct {
	ID          uuid.UUID  `json:"id"`
	PatientID   uuid.UUID  `json:"patient_id"`
	PatientName string     `json:"patient_name"`
	Stage       string     `json:"stage"`
	Complaint   string     `json:"complaint"`
	DoctorID    *uuid.UUID `json:"doctor_id"`
	BilledAt    *time.Time `json:"billed_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// PrescriptionLineResponse represents one prescribed drug in API responses
type PrescriptionLineResponse struct {
	Index          int       `json:"index"`
	ItemID         uuid.UUID `json:"item_id"`
	DrugName       string    `json:"drug_name"`
	Dosage         string    `json:"dosage"`
	PrescribedQty  string    `json:"prescribed_qty"`
	AvailableStock string    `json:"available_stock"`
	Available      bool      `json:"available"`
	EnteredQty     string    `json:"entered_qty"`
	FinalQty       string    `json:"final_qty"`
	UnitPrice      string    `json:"unit_price"`
	Amount         string    `json:"amount"`
}

// PrescriptionResponse represents a prescription in API responses
type PrescriptionResponse struct {
	ID          uuid.UUID                  `json:"id"`
	VisitID     uuid.UUID                  `json:"visit_id"`
	PatientName string                     `json:"patient_name"`
	Status      string                     `json:"status"`
	Lines       []PrescriptionLineResponse `json:"lines"`
	BilledTotal string                     `json:"billed_total"`
	FulfilledAt *time.Time                 `json:"fulfilled_at"`
	CreatedAt   time.Time                  `json:"created_at"`
	UpdatedAt   time.Time                  `json:"updated_at"`
}

// ToVisitResponse converts a domain visit to its API representation
func ToVisitResponse(v *hospital.Visit) *VisitResponse {
	return &VisitResponse{
		ID:          v.ID,
		PatientID:   v.PatientID,
		PatientName: v.PatientName,
		Stage:       string(v.Stage),
		Complaint:   v.Complaint,
		DoctorID:    v.DoctorID,
		BilledAt:    v.BilledAt,
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   v.UpdatedAt,
	}
}

// ToPrescriptionResponse converts a domain prescription to its API representation
func ToPrescriptionResponse(p *hospital.Prescription) *PrescriptionResponse {
	lines := make([]PrescriptionLineResponse, len(p.Lines))
	for i, l := range p.Lines {
		lines[i] = PrescriptionLineResponse{
			Index:          i,
			ItemID:         l.ItemID,
			DrugName:       l.DrugName,
			Dosage:         l.Dosage,
			PrescribedQty:  l.PrescribedQty.String(),
			AvailableStock: l.AvailableStock.String(),
			Available:      l.Available,
			EnteredQty:     l.EnteredQty.String(),
			FinalQty:       l.FinalQty().String(),
			UnitPrice:      l.UnitPrice.StringFixed(2),
			Amount:         l.Amount().StringFixed(2),
		}
	}

	return &PrescriptionResponse{
		ID:          p.ID,
		VisitID:     p.VisitID,
		PatientName: p.PatientName,
		Status:      string(p.Status),
		Lines:       lines,
		BilledTotal: p.BilledTotal().StringFixed(2),
		FulfilledAt: p.FulfilledAt,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
