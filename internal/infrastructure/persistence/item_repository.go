package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dukabook/backend/internal/domain/catalog"
	"github.com/dukabook/backend/internal/domain/shared"
)

// GormItemRepository implements catalog.ItemRepository using GORM
type GormItemRepository struct {
	tenantStore[catalog.Item]
}

// NewGormItemRepository creates a new GormItemRepository
func NewGormItemRepository(db *gorm.DB) *GormItemRepository {
	return &GormItemRepository{tenantStore: newTenantStore[catalog.Item](db, "name", "code")}
}

// FindByCode finds an item by its code within a tenant
func (r *GormItemRepository) FindByCode(ctx context.Context, tenantID uuid.UUID, code string) (*catalog.Item, error) {
	var item catalog.Item
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND code = ?", tenantID, strings.ToUpper(code)).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// Search finds items matching the term along with the unpaged total
func (r *GormItemRepository) Search(ctx context.Context, tenantID uuid.UUID, term string, filter shared.Filter) ([]catalog.Item, int64, error) {
	filter.Search = term

	var total int64
	if err := applyFilterWithoutPagination(
		r.db.WithContext(ctx).Model(&catalog.Item{}).Where("tenant_id = ?", tenantID),
		filter, "name", "code",
	).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []catalog.Item
	if err := applyFilter(
		r.db.WithContext(ctx).Model(&catalog.Item{}).Where("tenant_id = ?", tenantID),
		filter, "name", "code",
	).Find(&items).Error; err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

// Ensure GormItemRepository implements ItemRepository
var _ catalog.ItemRepository = (*GormItemRepository)(nil)
