package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dukabook/backend/internal/domain/billing"
	"github.com/dukabook/backend/internal/domain/shared"
)

// GormQuotationRepository implements billing.QuotationRepository using GORM
type GormQuotationRepository struct {
	tenantStore[billing.Quotation]
}

// NewGormQuotationRepository creates a new GormQuotationRepository
func NewGormQuotationRepository(db *gorm.DB) *GormQuotationRepository {
	return &GormQuotationRepository{tenantStore: newTenantStore[billing.Quotation](db, "number", "customer_name")}
}

// FindByNumber finds a quotation by its document number within a tenant
func (r *GormQuotationRepository) FindByNumber(ctx context.Context, tenantID uuid.UUID, number string) (*billing.Quotation, error) {
	var quotation billing.Quotation
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND number = ?", tenantID, number).
		First(&quotation).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &quotation, nil
}

// GenerateNumber allocates the next quotation number for a tenant
func (r *GormQuotationRepository) GenerateNumber(ctx context.Context, tenantID uuid.UUID) (string, error) {
	return nextDocumentNumber(ctx, r.db, &billing.Quotation{}, "QUO", tenantID)
}

// Ensure GormQuotationRepository implements QuotationRepository
var _ billing.QuotationRepository = (*GormQuotationRepository)(nil)
