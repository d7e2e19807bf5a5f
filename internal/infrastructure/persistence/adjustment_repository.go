package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dukabook/backend/internal/domain/adjustment"
)

// GormGoodsReturnRepository implements adjustment.GoodsReturnRepository using GORM
type GormGoodsReturnRepository struct {
	tenantStore[adjustment.GoodsReturn]
}

// NewGormGoodsReturnRepository creates a new GormGoodsReturnRepository
func NewGormGoodsReturnRepository(db *gorm.DB) *GormGoodsReturnRepository {
	return &GormGoodsReturnRepository{tenantStore: newTenantStore[adjustment.GoodsReturn](db, "number", "customer_name")}
}

// FindByInvoice finds all returns raised against an invoice
func (r *GormGoodsReturnRepository) FindByInvoice(ctx context.Context, tenantID, invoiceID uuid.UUID) ([]adjustment.GoodsReturn, error) {
	var returns []adjustment.GoodsReturn
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND source_invoice_id = ?", tenantID, invoiceID).
		Order("created_at ASC").
		Find(&returns).Error; err != nil {
		return nil, err
	}
	return returns, nil
}

// GenerateNumber allocates the next return number for a tenant
func (r *GormGoodsReturnRepository) GenerateNumber(ctx context.Context, tenantID uuid.UUID) (string, error) {
	return nextDocumentNumber(ctx, r.db, &adjustment.GoodsReturn{}, "RET", tenantID)
}

// GormDamageRecordRepository implements adjustment.DamageRecordRepository using GORM
type GormDamageRecordRepository struct {
	tenantStore[adjustment.DamageRecord]
}

// NewGormDamageRecordRepository creates a new GormDamageRecordRepository
func NewGormDamageRecordRepository(db *gorm.DB) *GormDamageRecordRepository {
	return &GormDamageRecordRepository{tenantStore: newTenantStore[adjustment.DamageRecord](db, "number")}
}

// GenerateNumber allocates the next damage record number for a tenant
func (r *GormDamageRecordRepository) GenerateNumber(ctx context.Context, tenantID uuid.UUID) (string, error) {
	return nextDocumentNumber(ctx, r.db, &adjustment.DamageRecord{}, "DMG", tenantID)
}

// Ensure the repositories satisfy their domain interfaces
var (
	_ adjustment.GoodsReturnRepository  = (*GormGoodsReturnRepository)(nil)
	_ adjustment.DamageRecordRepository = (*GormDamageRecordRepository)(nil)
)
