package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dukabook/backend/internal/domain/hospital"
)

// GormVisitRepository implements hospital.VisitRepository using GORM
type GormVisitRepository struct {
	tenantStore[hospital.Visit]
}

// NewGormVisitRepository creates a new GormVisitRepository
func NewGormVisitRepository(db *gorm.DB) *GormVisitRepository {
	return &GormVisitRepository{tenantStore: newTenantStore[hospital.Visit](db, "patient_name")}
}

// FindOpenByStage finds visits currently parked at the given stage
func (r *GormVisitRepository) FindOpenByStage(ctx context.Context, tenantID uuid.UUID, stage hospital.VisitStage) ([]hospital.Visit, error) {
	var visits []hospital.Visit
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND stage = ?", tenantID, stage).
		Order("created_at ASC").
		Find(&visits).Error; err != nil {
		return nil, err
	}
	return visits, nil
}

// GormPrescriptionRepository implements hospital.PrescriptionRepository using GORM
type GormPrescriptionRepository struct {
	tenantStore[hospital.Prescription]
}

// NewGormPrescriptionRepository creates a new GormPrescriptionRepository
func NewGormPrescriptionRepository(db *gorm.DB) *GormPrescriptionRepository {
	return &GormPrescriptionRepository{tenantStore: newTenantStore[hospital.Prescription](db, "patient_name")}
}

// FindByVisit finds all prescriptions written during a visit
func (r *GormPrescriptionRepository) FindByVisit(ctx context.Context, tenantID, visitID uuid.UUID) ([]hospital.Prescription, error) {
	var prescriptions []hospital.Prescription
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND visit_id = ?", tenantID, visitID).
		Order("created_at ASC").
		Find(&prescriptions).Error; err != nil {
		return nil, err
	}
	return prescriptions, nil
}

// Ensure the repositories satisfy their domain interfaces
var (
	_ hospital.VisitRepository        = (*GormVisitRepository)(nil)
	_ hospital.PrescriptionRepository = (*GormPrescriptionRepository)(nil)
)
