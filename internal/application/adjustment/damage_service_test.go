package adjustment

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDamageServiceForTest() (*DamageService, *fakeDamageRepo, *fakeItemRepo) {
	damages := newFakeDamageRepo()
	items := newFakeItemRepo()
	tx := &fakeTxScope{returns: newFakeReturnRepo(), damages: damages, items: items}
	svc := NewDamageService(damages, items, tx)
	return svc, damages, items
}

func TestDamageServiceCreate(t *testing.T) {
	svc, _, _ := newDamageServiceForTest()
	tenantID := uuid.New()
	reporter := uuid.New()

	resp, err := svc.Create(context.Background(), tenantID, CreateDamageRequest{
		Reason: "Water damage in store room", ReportedBy: &reporter,
	})

	require.NoError(t, err)
	assert.Regexp(t, `^DMG-\d{4}-00001$`, resp.Number)
	assert.Equal(t, "PENDING", resp.Status)
	assert.Equal(t, "Water damage in store room", resp.Reason)
	require.NotNil(t, resp.ReportedBy)
	assert.Equal(t, reporter, *resp.ReportedBy)
}

func TestDamageServiceLinesCostAtBuyingPrice(t *testing.T) {
	svc, _, items := newDamageServiceForTest()
	tenantID := uuid.New()
	item := seedItem(t, items, tenantID, "SKU-001", "Maize Flour 2kg", 250, 180, 10)

	rec, err := svc.Create(context.Background(), tenantID, CreateDamageRequest{})
	require.NoError(t, err)

	resp, err := svc.AddCatalogLine(context.Background(), tenantID, rec.ID, AddCatalogLineRequest{ItemID: item.ID})
	require.NoError(t, err)
	require.Len(t, resp.Lines, 1)
	assert.Equal(t, "180.00", resp.Lines[0].UnitPrice)

	resp, err = svc.UpdateLineQuantity(context.Background(), tenantID, rec.ID, 0, UpdateLineQuantityRequest{Quantity: "3"})
	require.NoError(t, err)
	assert.Equal(t, "540.00", resp.Lines[0].Total)

	// Write-offs carry no VAT
	assert.Equal(t, "540.00", resp.TotalCost)
}

func TestDamageServiceQuantityCoercionRemovesLine(t *testing.T) {
	svc, _, items := newDamageServiceForTest()
	tenantID := uuid.New()
	item := seedItem(t, items, tenantID, "SKU-001", "Maize Flour 2kg", 250, 180, 10)

	rec, err := svc.Create(context.Background(), tenantID, CreateDamageRequest{})
	require.NoError(t, err)
	_, err = svc.AddCatalogLine(context.Background(), tenantID, rec.ID, AddCatalogLineRequest{ItemID: item.ID})
	require.NoError(t, err)

	resp, err := svc.UpdateLineQuantity(context.Background(), tenantID, rec.ID, 0, UpdateLineQuantityRequest{Quantity: "broken"})
	require.NoError(t, err)
	assert.Empty(t, resp.Lines)
}

func TestDamageServiceProcessDeductsStock(t *testing.T) {
	svc, _, items := newDamageServiceForTest()
	tenantID := uuid.New()
	item := seedItem(t, items, tenantID, "SKU-001", "Maize Flour 2kg", 250, 180, 10)

	rec, err := svc.Create(context.Background(), tenantID, CreateDamageRequest{Reason: "Crushed in transit"})
	require.NoError(t, err)
	_, err = svc.AddCatalogLine(context.Background(), tenantID, rec.ID, AddCatalogLineRequest{ItemID: item.ID})
	require.NoError(t, err)
	_, err = svc.UpdateLineQuantity(context.Background(), tenantID, rec.ID, 0, UpdateLineQuantityRequest{Quantity: "4"})
	require.NoError(t, err)

	resp, err := svc.Process(context.Background(), tenantID, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "PROCESSED", resp.Status)

	updated, err := items.FindByID(context.Background(), item.ID)
	require.NoError(t, err)
	assert.True(t, updated.StockOnHand.Equal(decimal.NewFromInt(6)), "got %s", updated.StockOnHand)

	// A settled record cannot be processed again
	_, err = svc.Process(context.Background(), tenantID, rec.ID)
	require.Error(t, err)
}

func TestDamageServiceProcessInsufficientStock(t *testing.T) {
	svc, _, items := newDamageServiceForTest()
	tenantID := uuid.New()
	stocked := seedItem(t, items, tenantID, "SKU-001", "Maize Flour 2kg", 250, 180, 10)
	short := seedItem(t, items, tenantID, "SKU-002", "Cooking Oil 1L", 320, 260, 2)

	rec, err := svc.Create(context.Background(), tenantID, CreateDamageRequest{})
	require.NoError(t, err)
	_, err = svc.AddCatalogLine(context.Background(), tenantID, rec.ID, AddCatalogLineRequest{ItemID: stocked.ID})
	require.NoError(t, err)
	_, err = svc.AddCatalogLine(context.Background(), tenantID, rec.ID, AddCatalogLineRequest{ItemID: short.ID})
	require.NoError(t, err)
	_, err = svc.UpdateLineQuantity(context.Background(), tenantID, rec.ID, 1, UpdateLineQuantityRequest{Quantity: "5"})
	require.NoError(t, err)

	_, err = svc.Process(context.Background(), tenantID, rec.ID)
	require.Error(t, err)

	got, err := svc.Get(context.Background(), tenantID, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "PENDING", got.Status)

	// The first line's write-off must not survive the failed process
	first, err := items.FindByID(context.Background(), stocked.ID)
	require.NoError(t, err)
	assert.True(t, first.StockOnHand.Equal(decimal.NewFromInt(10)), "got %s", first.StockOnHand)
}

func TestDamageServiceCancel(t *testing.T) {
	svc, _, items := newDamageServiceForTest()
	tenantID := uuid.New()
	item := seedItem(t, items, tenantID, "SKU-001", "Maize Flour 2kg", 250, 180, 10)

	rec, err := svc.Create(context.Background(), tenantID, CreateDamageRequest{})
	require.NoError(t, err)
	_, err = svc.AddCatalogLine(context.Background(), tenantID, rec.ID, AddCatalogLineRequest{ItemID: item.ID})
	require.NoError(t, err)

	resp, err := svc.Cancel(context.Background(), tenantID, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "CANCELLED", resp.Status)

	_, err = svc.AddCatalogLine(context.Background(), tenantID, rec.ID, AddCatalogLineRequest{ItemID: item.ID})
	require.Error(t, err)
}
