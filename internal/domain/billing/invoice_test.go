package billing

import (
	"testing"

	"github.com/dukabook/backend/internal/domain/ledger"
	"github.com/dukabook/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestInvoice(t *testing.T) *Invoice {
	inv, err := NewInvoice(uuid.New(), "INV-2026-0001", uuid.New(), "Mama Njeri Stores", ledger.DefaultTaxRate)
	require.NoError(t, err)
	return inv
}

func invoiceLine(t *testing.T, qty, price int64) ledger.Entry {
	t.Helper()
	itemID := uuid.New()
	entries := ledger.Rehydrate([]ledger.RawLine{{
		ItemID:      &itemID,
		Description: "Widget",
		Quantity:    decimal.NewFromInt(qty).String(),
		UnitPrice:   decimal.NewFromInt(price).String(),
	}})
	return entries[0]
}

func TestNewInvoice(t *testing.T) {
	t.Run("creates draft invoice", func(t *testing.T) {
		inv := createTestInvoice(t)
		assert.Equal(t, InvoiceStatusDraft, inv.Status)
		assert.True(t, inv.AmountPaid.IsZero())
		assert.Empty(t, inv.Lines)
	})

	t.Run("validates required fields", func(t *testing.T) {
		_, err := NewInvoice(uuid.New(), "", uuid.New(), "X", ledger.DefaultTaxRate)
		assert.Error(t, err)
		_, err = NewInvoice(uuid.New(), "INV-1", uuid.Nil, "X", ledger.DefaultTaxRate)
		assert.Error(t, err)
		_, err = NewInvoice(uuid.New(), "INV-1", uuid.New(), "", ledger.DefaultTaxRate)
		assert.Error(t, err)
	})
}

func TestInvoice_Totals(t *testing.T) {
	inv := createTestInvoice(t)
	require.NoError(t, inv.SetLines([]ledger.Entry{invoiceLine(t, 4, 250)}))

	totals := inv.Totals()
	assert.True(t, totals.Subtotal.Equal(decimal.NewFromInt(1000)))
	assert.True(t, totals.TaxAmount.Equal(decimal.NewFromInt(160)))
	assert.True(t, totals.GrandTotal.Equal(decimal.NewFromInt(1160)))
	assert.True(t, totals.GrandTotal.Equal(totals.Subtotal.Add(totals.TaxAmount)))
}

func TestInvoice_PaymentStatus(t *testing.T) {
	// grand total 1000: 2 x 500 with zero tax rate for round numbers
	inv, err := NewInvoice(uuid.New(), "INV-2026-0002", uuid.New(), "Customer", decimal.Zero)
	require.NoError(t, err)
	require.NoError(t, inv.SetLines([]ledger.Entry{invoiceLine(t, 2, 500)}))
	require.True(t, inv.Totals().GrandTotal.Equal(decimal.NewFromInt(1000)))

	tests := []struct {
		name    string
		paid    float64
		status  PaymentStatus
		balance int64
	}{
		{"nothing paid", 0, PaymentStatusUnpaid, 1000},
		{"part paid", 400, PaymentStatusPartiallyPaid, 600},
		{"fully paid", 1000, PaymentStatusPaid, 0},
		{"overpaid still reads as paid", 1200, PaymentStatusPaid, -200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			method := PaymentMethodMpesa
			if tt.paid == 0 {
				method = ""
			}
			require.NoError(t, inv.RecordPayment(valueobject.NewMoneyKESFromFloat(tt.paid), method))
			assert.Equal(t, tt.status, inv.PaymentStatus())
			assert.True(t, inv.BalanceDue().Equal(decimal.NewFromInt(tt.balance)), "balance %s", inv.BalanceDue())
		})
	}
}

func TestInvoice_RecordPayment(t *testing.T) {
	t.Run("method required when amount is positive", func(t *testing.T) {
		inv := createTestInvoice(t)
		err := inv.RecordPayment(valueobject.NewMoneyKESFromFloat(100), "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Payment method")
	})

	t.Run("no method needed for zero amount", func(t *testing.T) {
		inv := createTestInvoice(t)
		assert.NoError(t, inv.RecordPayment(valueobject.ZeroKES(), ""))
	})

	t.Run("rejects negative amounts", func(t *testing.T) {
		inv := createTestInvoice(t)
		assert.Error(t, inv.RecordPayment(valueobject.NewMoneyKESFromFloat(-5), PaymentMethodCash))
	})
}

func TestInvoice_Issue(t *testing.T) {
	t.Run("issues a draft with submittable lines", func(t *testing.T) {
		inv := createTestInvoice(t)
		require.NoError(t, inv.SetLines([]ledger.Entry{invoiceLine(t, 1, 250)}))
		require.NoError(t, inv.Issue())
		assert.Equal(t, InvoiceStatusIssued, inv.Status)
		assert.NotNil(t, inv.IssuedAt)
	})

	t.Run("single validation message for incomplete lines", func(t *testing.T) {
		inv := createTestInvoice(t)
		l := inv.Ledger()
		l.AddBlank()
		require.NoError(t, inv.SetLines(l.Entries()))

		err := inv.Issue()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Every line needs an item")
	})

	t.Run("cannot issue twice", func(t *testing.T) {
		inv := createTestInvoice(t)
		require.NoError(t, inv.SetLines([]ledger.Entry{invoiceLine(t, 1, 250)}))
		require.NoError(t, inv.Issue())
		assert.Error(t, inv.Issue())
	})

	t.Run("issued invoice locks its lines", func(t *testing.T) {
		inv := createTestInvoice(t)
		require.NoError(t, inv.SetLines([]ledger.Entry{invoiceLine(t, 1, 250)}))
		require.NoError(t, inv.Issue())
		assert.Error(t, inv.SetLines([]ledger.Entry{invoiceLine(t, 2, 100)}))
	})
}

func TestInvoice_Cancel(t *testing.T) {
	inv := createTestInvoice(t)
	require.NoError(t, inv.Cancel())
	assert.Equal(t, InvoiceStatusCancelled, inv.Status)

	assert.Error(t, inv.Cancel())
	assert.Error(t, inv.RecordPayment(valueobject.NewMoneyKESFromFloat(10), PaymentMethodCash))
}
