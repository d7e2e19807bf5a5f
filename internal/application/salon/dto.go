package salon

import (
	"time"

	"github.com/google/uuid"

	"github.com/dukabook/backend/internal/domain/salon"
)

// OpenShiftRequest starts a shift for a staff member. The commission rate
// arrives as a raw string fraction ("0.10" for 10%); malformed input coerces
// to zero.
type OpenShiftRequest struct {
	StaffID        uuid.UUID `json:"staff_id" binding:"required"`
	StaffName      string    `json:"staff_name" binding:"required,min=1,max=200"`
	CommissionRate string    `json:"commission_rate"`
}

// ShiftResponse represents a shift in API responses
type ShiftResponse struct {
	ID               uuid.UUID  `json:"id"`
	StaffID          uuid.UUID  `json:"staff_id"`
	StaffName        string     `json:"staff_name"`
	Status           string     `json:"status"`
	CommissionRate   string     `json:"commission_rate"`
	SalesTotal       string     `json:"sales_total"`
	SalesCount       int        `json:"sales_count"`
	CommissionEarned string     `json:"commission_earned"`
	OpenedAt         time.Time  `json:"opened_at"`
	ClosedAt         *time.Time `json:"closed_at"`
}

// ShiftSaleResponse is one completed sale on a shift report
type ShiftSaleResponse struct {
	SaleID     uuid.UUID `json:"sale_id"`
	Number     string    `json:"number"`
	GrandTotal string    `json:"grand_total"`
	SoldAt     time.Time `json:"sold_at"`
}

// ShiftReportResponse is the close-out view of a shift: the shift itself
// plus the completed sales behind its totals
type ShiftReportResponse struct {
	Shift ShiftResponse       `json:"shift"`
	Sales []ShiftSaleResponse `json:"sales"`
}

// ToShiftResponse converts a domain shift to its API representation
func ToShiftResponse(s *salon.Shift) *ShiftResponse {
	return &ShiftResponse{
		ID:               s.ID,
		StaffID:          s.StaffID,
		StaffName:        s.StaffName,
		Status:           string(s.Status),
		CommissionRate:   s.CommissionRate.String(),
		SalesTotal:       s.SalesTotal.StringFixed(2),
		SalesCount:       s.SalesCount,
		CommissionEarned: s.CommissionEarned().StringFixed(2),
		OpenedAt:         s.OpenedAt,
		ClosedAt:         s.ClosedAt,
	}
}
