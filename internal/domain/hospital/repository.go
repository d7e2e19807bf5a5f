package hospital

import (
	"context"

	"github.com/dukabook/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// VisitRepository defines the persistence interface for visits
type VisitRepository interface {
	shared.TenantRepository[Visit]
	FindOpenByStage(ctx context.Context, tenantID uuid.UUID, stage VisitStage) ([]Visit, error)
}

// PrescriptionRepository defines the persistence interface for prescriptions
type PrescriptionRepository interface {
	shared.TenantRepository[Prescription]
	FindByVisit(ctx context.Context, tenantID, visitID uuid.UUID) ([]Prescription, error)
}

// LabResult is the shape returned by the lab system for an open visit
type LabResult struct {
	VisitID     uuid.UUID `json:"visit_id"`
	TestName    string    `json:"test_name"`
	Result      string    `json:"result"`
	CompletedAt string    `json:"completed_at"`
}

// LabResultSource fetches pending lab results; implementations poll the lab
// system on behalf of an open doctor visit
type LabResultSource interface {
	FetchResults(ctx context.Context, tenantID, visitID uuid.UUID) ([]LabResult, error)
}
