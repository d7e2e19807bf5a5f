package catalog

import (
	"context"

	"github.com/dukabook/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ItemRepository defines the persistence interface for catalog items
type ItemRepository interface {
	shared.TenantRepository[Item]
	FindByCode(ctx context.Context, tenantID uuid.UUID, code string) (*Item, error)
	Search(ctx context.Context, tenantID uuid.UUID, term string, filter shared.Filter) ([]Item, int64, error)
}
