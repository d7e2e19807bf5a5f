package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dukabook/backend/internal/domain/billing"
)

// GormPOSSaleRepository implements billing.POSSaleRepository using GORM
type GormPOSSaleRepository struct {
	tenantStore[billing.POSSale]
}

// NewGormPOSSaleRepository creates a new GormPOSSaleRepository
func NewGormPOSSaleRepository(db *gorm.DB) *GormPOSSaleRepository {
	return &GormPOSSaleRepository{tenantStore: newTenantStore[billing.POSSale](db, "number")}
}

// FindByShift finds all sales recorded against a shift
func (r *GormPOSSaleRepository) FindByShift(ctx context.Context, tenantID, shiftID uuid.UUID) ([]billing.POSSale, error) {
	var sales []billing.POSSale
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND shift_id = ?", tenantID, shiftID).
		Order("created_at ASC").
		Find(&sales).Error; err != nil {
		return nil, err
	}
	return sales, nil
}

// GenerateNumber allocates the next sale number for a tenant
func (r *GormPOSSaleRepository) GenerateNumber(ctx context.Context, tenantID uuid.UUID) (string, error) {
	return nextDocumentNumber(ctx, r.db, &billing.POSSale{}, "POS", tenantID)
}

// Ensure GormPOSSaleRepository implements POSSaleRepository
var _ billing.POSSaleRepository = (*GormPOSSaleRepository)(nil)
