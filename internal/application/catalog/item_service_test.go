package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukabook/backend/internal/domain/ledger"
	"github.com/dukabook/backend/internal/domain/shared"
)

func strPtr(s string) *string { return &s }

func TestCreateItem(t *testing.T) {
	svc := NewItemService(newFakeItemRepo())
	tenantID := uuid.New()

	item, err := svc.Create(context.Background(), tenantID, CreateItemRequest{
		Code:         "SKU-001",
		Name:         "Unga wa Dola 2kg",
		Unit:         "bale",
		SellingPrice: "185.00",
		BuyingPrice:  "160.00",
		OpeningStock: "24",
	})

	require.NoError(t, err)
	assert.Equal(t, "SKU-001", item.Code)
	assert.Equal(t, "185.00", item.SellingPrice)
	assert.Equal(t, "24", item.StockOnHand)
	assert.Equal(t, "ACTIVE", item.Status)
}

func TestCreateItemMalformedNumbersCoerceToZero(t *testing.T) {
	svc := NewItemService(newFakeItemRepo())

	item, err := svc.Create(context.Background(), uuid.New(), CreateItemRequest{
		Code:         "SKU-002",
		Name:         "Sukari 1kg",
		SellingPrice: "not a price",
		OpeningStock: "a few",
	})

	require.NoError(t, err)
	assert.Equal(t, "0.00", item.SellingPrice)
	assert.Equal(t, "0", item.StockOnHand)
}

func TestCreateItemDuplicateCode(t *testing.T) {
	svc := NewItemService(newFakeItemRepo())
	tenantID := uuid.New()

	_, err := svc.Create(context.Background(), tenantID, CreateItemRequest{Code: "SKU-001", Name: "First"})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), tenantID, CreateItemRequest{Code: "SKU-001", Name: "Second"})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
}

func TestUpdateItemPrices(t *testing.T) {
	svc := NewItemService(newFakeItemRepo())
	tenantID := uuid.New()

	created, err := svc.Create(context.Background(), tenantID, CreateItemRequest{
		Code:         "SKU-001",
		Name:         "Mafuta ya Kupikia 1L",
		SellingPrice: "320.00",
		BuyingPrice:  "280.00",
	})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), tenantID, created.ID, UpdateItemRequest{
		SellingPrice: strPtr("350.00"),
	})

	require.NoError(t, err)
	assert.Equal(t, "350.00", updated.SellingPrice)
	assert.Equal(t, "280.00", updated.BuyingPrice)
}

func TestReceiveStock(t *testing.T) {
	svc := NewItemService(newFakeItemRepo())
	tenantID := uuid.New()

	created, err := svc.Create(context.Background(), tenantID, CreateItemRequest{
		Code:         "SKU-001",
		Name:         "Chumvi 500g",
		OpeningStock: "10",
	})
	require.NoError(t, err)

	after, err := svc.ReceiveStock(context.Background(), tenantID, created.ID, ReceiveStockRequest{Quantity: "15"})

	require.NoError(t, err)
	assert.Equal(t, "25", after.StockOnHand)
}

func TestPicksExcludeInactiveItems(t *testing.T) {
	repo := newFakeItemRepo()
	svc := NewItemService(repo)
	tenantID := uuid.New()

	active, err := svc.Create(context.Background(), tenantID, CreateItemRequest{
		Code:         "SKU-001",
		Name:         "Maziwa Lala 500ml",
		SellingPrice: "65.00",
	})
	require.NoError(t, err)

	retired, err := svc.Create(context.Background(), tenantID, CreateItemRequest{
		Code: "SKU-002",
		Name: "Discontinued Soda",
	})
	require.NoError(t, err)
	require.NoError(t, svc.Deactivate(context.Background(), tenantID, retired.ID))

	picks, err := svc.Picks(context.Background(), tenantID, "", shared.DefaultFilter())

	require.NoError(t, err)
	require.Len(t, picks, 1)
	assert.Equal(t, active.ID, picks[0].ItemID)
	assert.Equal(t, "65", picks[0].Prices[ledger.FieldSellingPrice])
}

func TestPicksSearchByName(t *testing.T) {
	svc := NewItemService(newFakeItemRepo())
	tenantID := uuid.New()

	_, err := svc.Create(context.Background(), tenantID, CreateItemRequest{Code: "SKU-001", Name: "Paracetamol 500mg"})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), tenantID, CreateItemRequest{Code: "SKU-002", Name: "Amoxicillin 250mg"})
	require.NoError(t, err)

	picks, err := svc.Picks(context.Background(), tenantID, "para", shared.DefaultFilter())

	require.NoError(t, err)
	require.Len(t, picks, 1)
	assert.Equal(t, "Paracetamol 500mg", picks[0].Description)
}

func TestDeactivateThenActivate(t *testing.T) {
	svc := NewItemService(newFakeItemRepo())
	tenantID := uuid.New()

	created, err := svc.Create(context.Background(), tenantID, CreateItemRequest{Code: "SKU-001", Name: "Blue Band 250g"})
	require.NoError(t, err)

	require.NoError(t, svc.Deactivate(context.Background(), tenantID, created.ID))
	got, err := svc.Get(context.Background(), tenantID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "INACTIVE", got.Status)

	require.NoError(t, svc.Activate(context.Background(), tenantID, created.ID))
	got, err = svc.Get(context.Background(), tenantID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "ACTIVE", got.Status)
}
