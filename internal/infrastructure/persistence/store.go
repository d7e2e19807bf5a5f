package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dukabook/backend/internal/domain/shared"
)

// tenantStore provides the CRUD portion of shared.TenantRepository for a
// GORM-mapped aggregate. Document repositories embed it and add their
// own lookups.
type tenantStore[T any] struct {
	db            *gorm.DB
	searchColumns []string
}

func newTenantStore[T any](db *gorm.DB, searchColumns ...string) tenantStore[T] {
	return tenantStore[T]{db: db, searchColumns: searchColumns}
}

func (s *tenantStore[T]) FindByID(ctx context.Context, id uuid.UUID) (*T, error) {
	var entity T
	if err := s.db.WithContext(ctx).First(&entity, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &entity, nil
}

func (s *tenantStore[T]) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*T, error) {
	var entity T
	if err := s.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &entity, nil
}

func (s *tenantStore[T]) FindAll(ctx context.Context, filter shared.Filter) ([]T, error) {
	var entities []T
	var model T
	query := applyFilter(s.db.WithContext(ctx).Model(&model), filter, s.searchColumns...)
	if err := query.Find(&entities).Error; err != nil {
		return nil, err
	}
	return entities, nil
}

func (s *tenantStore[T]) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]T, error) {
	var entities []T
	var model T
	query := applyFilter(
		s.db.WithContext(ctx).Model(&model).Where("tenant_id = ?", tenantID),
		filter, s.searchColumns...,
	)
	if err := query.Find(&entities).Error; err != nil {
		return nil, err
	}
	return entities, nil
}

func (s *tenantStore[T]) Save(ctx context.Context, entity *T) error {
	return s.db.WithContext(ctx).Save(entity).Error
}

func (s *tenantStore[T]) Delete(ctx context.Context, id uuid.UUID) error {
	var model T
	return s.db.WithContext(ctx).Delete(&model, "id = ?", id).Error
}

func (s *tenantStore[T]) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	var model T
	query := applyFilterWithoutPagination(s.db.WithContext(ctx).Model(&model), filter, s.searchColumns...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
