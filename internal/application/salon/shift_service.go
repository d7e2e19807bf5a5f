package salon

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/dukabook/backend/internal/domain/billing"
	"github.com/dukabook/backend/internal/domain/ledger"
	"github.com/dukabook/backend/internal/domain/salon"
	"github.com/dukabook/backend/internal/domain/shared"
)

// ShiftService handles salon shift business operations
type ShiftService struct {
	shifts salon.ShiftRepository
	sales  billing.POSSaleRepository
}

// NewShiftService creates a new ShiftService
func NewShiftService(shifts salon.ShiftRepository, sales billing.POSSaleRepository) *ShiftService {
	return &ShiftService{
		shifts: shifts,
		sales:  sales,
	}
}

// Open starts a shift for a staff member. A staff member can hold only one
// open shift at a time.
func (s *ShiftService) Open(ctx context.Context, tenantID uuid.UUID, req OpenShiftRequest) (*ShiftResponse, error) {
	existing, err := s.shifts.FindOpenByStaff(ctx, tenantID, req.StaffID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("SHIFT_ALREADY_OPEN", "Staff member already has an open shift")
	}

	shift, err := salon.OpenShift(tenantID, req.StaffID, req.StaffName, ledger.Amount(req.CommissionRate))
	if err != nil {
		return nil, err
	}

	if err := s.shifts.Save(ctx, shift); err != nil {
		return nil, err
	}
	return ToShiftResponse(shift), nil
}

// Get returns a single shift for a tenant
func (s *ShiftService) Get(ctx context.Context, tenantID, shiftID uuid.UUID) (*ShiftResponse, error) {
	shift, err := s.shifts.FindByIDForTenant(ctx, tenantID, shiftID)
	if err != nil {
		return nil, err
	}
	return ToShiftResponse(shift), nil
}

// List returns a page of shifts for a tenant
func (s *ShiftService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (*shared.Paginated[ShiftResponse], error) {
	shifts, err := s.shifts.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}

	countFilter := filter
	countFilter.Filters = map[string]interface{}{"tenant_id": tenantID}
	total, err := s.shifts.Count(ctx, countFilter)
	if err != nil {
		return nil, err
	}

	responses := make([]ShiftResponse, len(shifts))
	for i := range shifts {
		responses[i] = *ToShiftResponse(&shifts[i])
	}

	page := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &page, nil
}

// Close ends a shift
func (s *ShiftService) Close(ctx context.Context, tenantID, shiftID uuid.UUID) (*ShiftResponse, error) {
	shift, err := s.shifts.FindByIDForTenant(ctx, tenantID, shiftID)
	if err != nil {
		return nil, err
	}

	if err := shift.Close(); err != nil {
		return nil, err
	}

	if err := s.shifts.Save(ctx, shift); err != nil {
		return nil, err
	}
	return ToShiftResponse(shift), nil
}

// Report returns the shift with the completed sales behind its totals
func (s *ShiftService) Report(ctx context.Context, tenantID, shiftID uuid.UUID) (*ShiftReportResponse, error) {
	shift, err := s.shifts.FindByIDForTenant(ctx, tenantID, shiftID)
	if err != nil {
		return nil, err
	}

	sales, err := s.sales.FindByShift(ctx, tenantID, shiftID)
	if err != nil {
		return nil, err
	}

	lines := make([]ShiftSaleResponse, 0, len(sales))
	for i := range sales {
		sale := &sales[i]
		if sale.Status != billing.POSSaleStatusCompleted {
			continue
		}
		soldAt := sale.UpdatedAt
		if sale.CompletedAt != nil {
			soldAt = *sale.CompletedAt
		}
		lines = append(lines, ShiftSaleResponse{
			SaleID:     sale.ID,
			Number:     sale.Number,
			GrandTotal: sale.Totals().GrandTotal.StringFixed(2),
			SoldAt:     soldAt,
		})
	}

	return &ShiftReportResponse{
		Shift: *ToShiftResponse(shift),
		Sales: lines,
	}, nil
}
