package adjustment

import (
	"context"

	"github.com/dukabook/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// GoodsReturnRepository defines the persistence interface for goods returns
type GoodsReturnRepository interface {
	shared.TenantRepository[GoodsReturn]
	FindByInvoice(ctx context.Context, tenantID, invoiceID uuid.UUID) ([]GoodsReturn, error)
	GenerateNumber(ctx context.Context, tenantID uuid.UUID) (string, error)
}

// DamageRecordRepository defines the persistence interface for damage records
type DamageRecordRepository interface {
	shared.TenantRepository[DamageRecord]
	GenerateNumber(ctx context.Context, tenantID uuid.UUID) (string, error)
}
