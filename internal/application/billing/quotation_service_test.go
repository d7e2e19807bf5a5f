package billing

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newQuotationServiceForTest() (*QuotationService, *fakeQuotationRepo, *fakeInvoiceRepo, *fakeItemRepo) {
	quotations := newFakeQuotationRepo()
	invoices := newFakeInvoiceRepo()
	items := newFakeItemRepo()
	svc := NewQuotationService(quotations, invoices, items, decimal.New(16, -2))
	return svc, quotations, invoices, items
}

func TestQuotationServiceCreateDraft(t *testing.T) {
	svc, _, _, _ := newQuotationServiceForTest()
	tenantID := uuid.New()
	validUntil := time.Now().AddDate(0, 0, 30)

	resp, err := svc.CreateDraft(context.Background(), tenantID, CreateQuotationRequest{
		CustomerID:   uuid.New(),
		CustomerName: "Otieno Builders",
		ValidUntil:   &validUntil,
	})

	require.NoError(t, err)
	assert.Regexp(t, `^QUO-\d{4}-00001$`, resp.Number)
	assert.Equal(t, "DRAFT", resp.Status)
	require.NotNil(t, resp.ValidUntil)
	assert.WithinDuration(t, validUntil, *resp.ValidUntil, time.Second)
}

func TestQuotationServiceTransitions(t *testing.T) {
	tenantID := uuid.New()

	setup := func(t *testing.T) (*QuotationService, uuid.UUID) {
		svc, _, _, items := newQuotationServiceForTest()
		item := seedItem(t, items, tenantID, "SKU-001", "Roofing Sheet", 800, 100)
		draft, err := svc.CreateDraft(context.Background(), tenantID, CreateQuotationRequest{
			CustomerID: uuid.New(), CustomerName: "Otieno Builders",
		})
		require.NoError(t, err)
		_, err = svc.AddCatalogLine(context.Background(), tenantID, draft.ID, AddCatalogLineRequest{ItemID: item.ID})
		require.NoError(t, err)
		return svc, draft.ID
	}

	t.Run("send then accept", func(t *testing.T) {
		svc, id := setup(t)
		resp, err := svc.Send(context.Background(), tenantID, id)
		require.NoError(t, err)
		assert.Equal(t, "SENT", resp.Status)

		resp, err = svc.Accept(context.Background(), tenantID, id)
		require.NoError(t, err)
		assert.Equal(t, "ACCEPTED", resp.Status)
	})

	t.Run("send then decline", func(t *testing.T) {
		svc, id := setup(t)
		_, err := svc.Send(context.Background(), tenantID, id)
		require.NoError(t, err)

		resp, err := svc.Decline(context.Background(), tenantID, id)
		require.NoError(t, err)
		assert.Equal(t, "DECLINED", resp.Status)
	})

	t.Run("accept requires sent", func(t *testing.T) {
		svc, id := setup(t)
		_, err := svc.Accept(context.Background(), tenantID, id)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Cannot accept quotation in DRAFT status")
	})

	t.Run("declined is terminal", func(t *testing.T) {
		svc, id := setup(t)
		_, err := svc.Send(context.Background(), tenantID, id)
		require.NoError(t, err)
		_, err = svc.Decline(context.Background(), tenantID, id)
		require.NoError(t, err)

		_, err = svc.Send(context.Background(), tenantID, id)
		require.Error(t, err)
	})
}

func TestQuotationServiceConvert(t *testing.T) {
	svc, quotations, _, items := newQuotationServiceForTest()
	tenantID := uuid.New()
	item := seedItem(t, items, tenantID, "SKU-001", "Roofing Sheet", 800, 100)

	draft, err := svc.CreateDraft(context.Background(), tenantID, CreateQuotationRequest{
		CustomerID: uuid.New(), CustomerName: "Otieno Builders", TaxRate: strPtr("0.16"),
	})
	require.NoError(t, err)
	_, err = svc.AddCatalogLine(context.Background(), tenantID, draft.ID, AddCatalogLineRequest{ItemID: item.ID})
	require.NoError(t, err)
	_, err = svc.UpdateLineQuantity(context.Background(), tenantID, draft.ID, 0, UpdateLineQuantityRequest{Quantity: "3"})
	require.NoError(t, err)
	_, err = svc.Send(context.Background(), tenantID, draft.ID)
	require.NoError(t, err)
	_, err = svc.Accept(context.Background(), tenantID, draft.ID)
	require.NoError(t, err)

	inv, err := svc.Convert(context.Background(), tenantID, draft.ID)
	require.NoError(t, err)
	assert.Regexp(t, `^INV-\d{4}-00001$`, inv.Number)
	assert.Equal(t, "DRAFT", inv.Status)
	assert.Equal(t, "Otieno Builders", inv.CustomerName)
	require.Len(t, inv.Lines, 1)
	assert.Equal(t, "2400.00", inv.Totals.Subtotal)
	assert.Equal(t, "2784.00", inv.Totals.GrandTotal)

	q, err := quotations.FindByIDForTenant(context.Background(), tenantID, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, "CONVERTED", string(q.Status))

	// Converting twice is rejected
	_, err = svc.Convert(context.Background(), tenantID, draft.ID)
	require.Error(t, err)
}

func TestQuotationServiceConvertRequiresAccepted(t *testing.T) {
	svc, _, _, items := newQuotationServiceForTest()
	tenantID := uuid.New()
	item := seedItem(t, items, tenantID, "SKU-001", "Roofing Sheet", 800, 100)

	draft, err := svc.CreateDraft(context.Background(), tenantID, CreateQuotationRequest{
		CustomerID: uuid.New(), CustomerName: "Otieno Builders",
	})
	require.NoError(t, err)
	_, err = svc.AddCatalogLine(context.Background(), tenantID, draft.ID, AddCatalogLineRequest{ItemID: item.ID})
	require.NoError(t, err)

	_, err = svc.Convert(context.Background(), tenantID, draft.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Cannot convert quotation in DRAFT status")
}
