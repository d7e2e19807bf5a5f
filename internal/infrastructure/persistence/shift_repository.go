package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dukabook/backend/internal/domain/salon"
	"github.com/dukabook/backend/internal/domain/shared"
)

// GormShiftRepository implements salon.ShiftRepository using GORM
type GormShiftRepository struct {
	tenantStore[salon.Shift]
}

// NewGormShiftRepository creates a new GormShiftRepository
func NewGormShiftRepository(db *gorm.DB) *GormShiftRepository {
	return &GormShiftRepository{tenantStore: newTenantStore[salon.Shift](db, "staff_name")}
}

// FindOpenByStaff finds the staff member's currently open shift
func (r *GormShiftRepository) FindOpenByStaff(ctx context.Context, tenantID, staffID uuid.UUID) (*salon.Shift, error) {
	var shift salon.Shift
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND staff_id = ? AND status = ?", tenantID, staffID, salon.ShiftStatusOpen).
		First(&shift).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &shift, nil
}

// Ensure GormShiftRepository implements ShiftRepository
var _ salon.ShiftRepository = (*GormShiftRepository)(nil)
