package salon

import (
	"context"

	"github.com/dukabook/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ShiftRepository defines the persistence interface for shifts
type ShiftRepository interface {
	shared.TenantRepository[Shift]
	FindOpenByStaff(ctx context.Context, tenantID, staffID uuid.UUID) (*Shift, error)
}
