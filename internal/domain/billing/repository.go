package billing

import (
	"context"

	"github.com/dukabook/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// InvoiceRepository defines the persistence interface for invoices
type InvoiceRepository interface {
	shared.TenantRepository[Invoice]
	FindByNumber(ctx context.Context, tenantID uuid.UUID, number string) (*Invoice, error)
	GenerateNumber(ctx context.Context, tenantID uuid.UUID) (string, error)
}

// QuotationRepository defines the persistence interface for quotations
type QuotationRepository interface {
	shared.TenantRepository[Quotation]
	FindByNumber(ctx context.Context, tenantID uuid.UUID, number string) (*Quotation, error)
	GenerateNumber(ctx context.Context, tenantID uuid.UUID) (string, error)
}

// POSSaleRepository defines the persistence interface for POS sales
type POSSaleRepository interface {
	shared.TenantRepository[POSSale]
	FindByShift(ctx context.Context, tenantID, shiftID uuid.UUID) ([]POSSale, error)
	GenerateNumber(ctx context.Context, tenantID uuid.UUID) (string, error)
}
