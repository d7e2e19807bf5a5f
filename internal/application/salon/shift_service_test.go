package salon

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukabook/backend/internal/domain/billing"
	"github.com/dukabook/backend/internal/domain/ledger"
	"github.com/dukabook/backend/internal/domain/shared/valueobject"
)

func newShiftServiceForTest() (*ShiftService, *fakeShiftRepo, *fakePOSSaleRepo) {
	shifts := newFakeShiftRepo()
	sales := newFakePOSSaleRepo()
	svc := NewShiftService(shifts, sales)
	return svc, shifts, sales
}

func TestShiftServiceOpen(t *testing.T) {
	svc, _, _ := newShiftServiceForTest()
	tenantID := uuid.New()

	resp, err := svc.Open(context.Background(), tenantID, OpenShiftRequest{
		StaffID: uuid.New(), StaffName: "Achieng", CommissionRate: "0.10",
	})

	require.NoError(t, err)
	assert.Equal(t, "OPEN", resp.Status)
	assert.Equal(t, "0.1", resp.CommissionRate)
	assert.Equal(t, "0.00", resp.SalesTotal)
	assert.Zero(t, resp.SalesCount)
}

func TestShiftServiceOpenCoercesMalformedRate(t *testing.T) {
	svc, _, _ := newShiftServiceForTest()
	tenantID := uuid.New()

	resp, err := svc.Open(context.Background(), tenantID, OpenShiftRequest{
		StaffID: uuid.New(), StaffName: "Achieng", CommissionRate: "ten percent",
	})

	require.NoError(t, err)
	assert.Equal(t, "0", resp.CommissionRate)
}

func TestShiftServiceOnePerStaff(t *testing.T) {
	svc, _, _ := newShiftServiceForTest()
	tenantID := uuid.New()
	staffID := uuid.New()

	first, err := svc.Open(context.Background(), tenantID, OpenShiftRequest{
		StaffID: staffID, StaffName: "Achieng", CommissionRate: "0.10",
	})
	require.NoError(t, err)

	_, err = svc.Open(context.Background(), tenantID, OpenShiftRequest{
		StaffID: staffID, StaffName: "Achieng", CommissionRate: "0.10",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already has an open shift")

	// Closing the first shift frees the staff member up again
	_, err = svc.Close(context.Background(), tenantID, first.ID)
	require.NoError(t, err)

	_, err = svc.Open(context.Background(), tenantID, OpenShiftRequest{
		StaffID: staffID, StaffName: "Achieng", CommissionRate: "0.10",
	})
	require.NoError(t, err)
}

func TestShiftServiceClose(t *testing.T) {
	svc, _, _ := newShiftServiceForTest()
	tenantID := uuid.New()

	shift, err := svc.Open(context.Background(), tenantID, OpenShiftRequest{
		StaffID: uuid.New(), StaffName: "Achieng", CommissionRate: "0.10",
	})
	require.NoError(t, err)

	resp, err := svc.Close(context.Background(), tenantID, shift.ID)
	require.NoError(t, err)
	assert.Equal(t, "CLOSED", resp.Status)
	require.NotNil(t, resp.ClosedAt)

	_, err = svc.Close(context.Background(), tenantID, shift.ID)
	require.Error(t, err)
}

func TestShiftServiceReport(t *testing.T) {
	svc, shifts, sales := newShiftServiceForTest()
	tenantID := uuid.New()

	resp, err := svc.Open(context.Background(), tenantID, OpenShiftRequest{
		StaffID: uuid.New(), StaffName: "Achieng", CommissionRate: "0.10",
	})
	require.NoError(t, err)

	shift, err := shifts.FindByID(context.Background(), resp.ID)
	require.NoError(t, err)

	completed := sellOnShift(t, tenantID, shift.ID, "POS-2026-00001", 800)
	require.NoError(t, shift.RecordSale(completed.Totals().GrandTotal))
	require.NoError(t, sales.Save(context.Background(), completed))

	open, err := billing.NewPOSSale(tenantID, "POS-2026-00002", uuid.New(), decimal.Zero)
	require.NoError(t, err)
	open.AttachShift(shift.ID)
	require.NoError(t, sales.Save(context.Background(), open))
	require.NoError(t, shifts.Save(context.Background(), shift))

	report, err := svc.Report(context.Background(), tenantID, shift.ID)
	require.NoError(t, err)

	// Only completed sales make the report
	require.Len(t, report.Sales, 1)
	assert.Equal(t, "POS-2026-00001", report.Sales[0].Number)
	assert.Equal(t, "800.00", report.Sales[0].GrandTotal)
	assert.Equal(t, "800.00", report.Shift.SalesTotal)
	assert.Equal(t, "80.00", report.Shift.CommissionEarned)
	assert.Equal(t, 1, report.Shift.SalesCount)
}

func sellOnShift(t *testing.T, tenantID, shiftID uuid.UUID, number string, total int64) *billing.POSSale {
	t.Helper()
	sale, err := billing.NewPOSSale(tenantID, number, uuid.New(), decimal.Zero)
	require.NoError(t, err)
	sale.AttachShift(shiftID)

	itemID := uuid.New()
	led := sale.Ledger()
	led.AddFromCatalog(ledger.Pick{
		ItemID:      itemID,
		Description: "Braiding",
		Prices:      map[ledger.PriceField]string{ledger.FieldSellingPrice: decimal.NewFromInt(total).String()},
	})
	require.NoError(t, sale.SetLines(led.Entries()))
	require.NoError(t, sale.Complete(valueobject.NewMoneyKES(decimal.NewFromInt(total)), billing.PaymentMethodCash))
	return sale
}
