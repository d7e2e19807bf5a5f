package hospital

import (
	"fmt"
	"time"

	"github.com/dukabook/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// VisitStage tracks a patient through the clinic pipeline
type VisitStage string

const (
	StageWaiting  VisitStage = "WAITING"
	StageTriage   VisitStage = "TRIAGE"
	StageDoctor   VisitStage = "DOCTOR"
	StageLab      VisitStage = "LAB"
	StagePharmacy VisitStage = "PHARMACY"
	StageBilled   VisitStage = "BILLED"
)

// IsValid checks if the stage is a valid VisitStage
func (s VisitStage) IsValid() bool {
	switch s {
	case StageWaiting, StageTriage, StageDoctor, StageLab, StagePharmacy, StageBilled:
		return true
	}
	return false
}

// CanTransitionTo checks if the stage can transition to the target stage.
// Lab is optional: the doctor may send a patient straight to pharmacy or
// billing, and lab results return the patient to the doctor.
func (s VisitStage) CanTransitionTo(target VisitStage) bool {
	switch s {
	case StageWaiting:
		return target == StageTriage
	case StageTriage:
		return target == StageDoctor
	case StageDoctor:
		return target == StageLab || target == StagePharmacy || target == StageBilled
	case StageLab:
		return target == StageDoctor
	case StagePharmacy:
		return target == StageBilled
	case StageBilled:
		return false // Terminal
	}
	return false
}

// Visit represents one patient's trip through the clinic
type Visit struct {
	shared.TenantAggregateRoot
	PatientID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	PatientName string     `gorm:"size:200;not null"`
	Stage       VisitStage `gorm:"size:20;not null;default:'WAITING'"`
	Complaint   string     `gorm:"size:500"`
	DoctorID    *uuid.UUID `gorm:"type:uuid;index"`
	BilledAt    *time.Time
}

// NewVisit checks a patient into the waiting queue
func NewVisit(tenantID, patientID uuid.UUID, patientName string) (*Visit, error) {
	if patientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PATIENT", "Patient ID cannot be empty")
	}
	if patientName == "" {
		return nil, shared.NewDomainError("INVALID_PATIENT_NAME", "Patient name cannot be empty")
	}

	return &Visit{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		PatientID:           patientID,
		PatientName:         patientName,
		Stage:               StageWaiting,
	}, nil
}

// Advance moves the visit to the target stage
func (v *Visit) Advance(target VisitStage) error {
	if !v.Stage.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STAGE", fmt.Sprintf("Cannot move visit from %s to %s", v.Stage, target))
	}

	v.Stage = target
	if target == StageBilled {
		now := time.Now()
		v.BilledAt = &now
	}
	v.UpdatedAt = time.Now()
	return nil
}

// AssignDoctor records the attending doctor
func (v *Visit) AssignDoctor(doctorID uuid.UUID) error {
	if doctorID == uuid.Nil {
		return shared.NewDomainError("INVALID_DOCTOR", "Doctor ID cannot be empty")
	}
	v.DoctorID = &doctorID
	v.UpdatedAt = time.Now()
	return nil
}

// IsOpen returns true while the visit has not been billed out
func (v *Visit) IsOpen() bool {
	return v.Stage != StageBilled
}

// TableName returns the database table name for Visit
func (Visit) TableName() string {
	return "hospital_visits"
}
