package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("creates money with amount and currency", func(t *testing.T) {
		m, err := NewMoney(decimal.NewFromInt(100), KES)
		require.NoError(t, err)
		assert.True(t, m.Amount().Equal(decimal.NewFromInt(100)))
		assert.Equal(t, KES, m.Currency())
	})

	t.Run("rejects empty currency", func(t *testing.T) {
		_, err := NewMoney(decimal.NewFromInt(100), "")
		assert.Error(t, err)
	})
}

func TestMoney_Arithmetic(t *testing.T) {
	a := NewMoneyKESFromFloat(100.50)
	b := NewMoneyKESFromFloat(50.25)

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.True(t, sum.Amount().Equal(decimal.RequireFromString("150.75")))

	diff, err := a.Subtract(b)
	require.NoError(t, err)
	assert.True(t, diff.Amount().Equal(decimal.RequireFromString("50.25")))

	product := a.Multiply(decimal.NewFromInt(2))
	assert.True(t, product.Amount().Equal(decimal.RequireFromString("201")))
}

func TestMoney_CurrencyMismatch(t *testing.T) {
	kes := NewMoneyKESFromFloat(100)
	usd, err := NewMoney(decimal.NewFromInt(100), USD)
	require.NoError(t, err)

	_, err = kes.Add(usd)
	assert.Error(t, err)
	_, err = kes.Subtract(usd)
	assert.Error(t, err)
	_, err = kes.LessThan(usd)
	assert.Error(t, err)
}

func TestMoney_Display(t *testing.T) {
	t.Run("KES renders with the KSH symbol", func(t *testing.T) {
		assert.Equal(t, "KSH 1250.00", NewMoneyKESFromFloat(1250).Display())
	})

	t.Run("other currencies render their code", func(t *testing.T) {
		m, err := NewMoney(decimal.NewFromInt(10), USD)
		require.NoError(t, err)
		assert.Equal(t, "USD 10.00", m.Display())
	})

	t.Run("display rounding does not mutate the stored amount", func(t *testing.T) {
		m, err := NewMoneyKESFromString("10.005")
		require.NoError(t, err)
		assert.Equal(t, "KSH 10.01", m.Display())
		// the full-precision amount still feeds subsequent arithmetic
		assert.True(t, m.Amount().Equal(decimal.RequireFromString("10.005")))
		doubled := m.Multiply(decimal.NewFromInt(2))
		assert.True(t, doubled.Amount().Equal(decimal.RequireFromString("10.01")), "got %s", doubled.Amount())
	})
}

func TestMoney_JSON(t *testing.T) {
	m := NewMoneyKESFromFloat(99.99)

	data, err := json.Marshal(m)
	require.NoError(t, err)

	var decoded Money
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, m.Equals(decoded))
}

func TestMoney_Scan(t *testing.T) {
	var m Money
	require.NoError(t, m.Scan("42.50"))
	assert.True(t, m.Amount().Equal(decimal.RequireFromString("42.50")))
	assert.Equal(t, DefaultCurrency, m.Currency())

	require.NoError(t, m.Scan(nil))
	assert.True(t, m.IsZero())

	assert.Error(t, m.Scan(42))
}
