package kernel_test

import (
	"testing"

	"quickbite/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoneyFromFloat(t *testing.T) {
	tests := []struct {
		name      string
		amount    float64
		wantPaise int64
	}{
		{"whole rupees", 500, 50000},
		{"two decimals", 19.99, 1999},
		{"rounds up from half paise", 0.005, 1},
		{"rounds down below half paise", 0.004, 0},
		{"zero", 0, 0},
		{"float drift 0.1+0.2", 0.30000000000000004, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := kernel.NewMoneyFromFloat(tt.amount)
			assert.Equal(t, tt.wantPaise, m.Paise())
		})
	}
}

func TestMoney_Arithmetic(t *testing.T) {
	t.Run("add and sub are exact", func(t *testing.T) {
		a := kernel.NewMoneyFromFloat(0.1)
		b := kernel.NewMoneyFromFloat(0.2)
		assert.Equal(t, kernel.NewMoneyFromFloat(0.3), a.Add(b))
		assert.Equal(t, a, a.Add(b).Sub(b))
	})

	t.Run("mul int for line totals", func(t *testing.T) {
		unit := kernel.NewMoneyFromFloat(149.50)
		assert.Equal(t, kernel.NewMoneyFromFloat(448.50), unit.MulInt(3))
	})

	t.Run("percent", func(t *testing.T) {
		subtotal := kernel.NewMoneyFromFloat(500)
		assert.Equal(t, kernel.NewMoneyFromFloat(15), subtotal.Percent(3))
		assert.Equal(t, kernel.NewMoneyFromFloat(25), subtotal.Percent(5))
	})

	t.Run("percent rounds to nearest paise", func(t *testing.T) {
		subtotal := kernel.MoneyFromPaise(333) // 3.33
		// 3% of 333 paise = 9.99 paise -> 10 paise
		assert.Equal(t, kernel.MoneyFromPaise(10), subtotal.Percent(3))
	})
}

func TestMoney_Validate(t *testing.T) {
	require.NoError(t, kernel.MoneyFromPaise(0).Validate())
	require.NoError(t, kernel.MoneyFromPaise(100).Validate())
	require.Error(t, kernel.MoneyFromPaise(-1).Validate())
}

func TestMoney_Predicates(t *testing.T) {
	assert.True(t, kernel.MoneyFromPaise(0).IsZero())
	assert.False(t, kernel.MoneyFromPaise(1).IsZero())
	assert.True(t, kernel.MoneyFromPaise(-1).IsNegative())
	assert.True(t, kernel.MoneyFromPaise(200).GreaterOrEqual(kernel.MoneyFromPaise(200)))
	assert.False(t, kernel.MoneyFromPaise(199).GreaterOrEqual(kernel.MoneyFromPaise(200)))
}

func TestMoney_String(t *testing.T) {
	assert.Equal(t, "580.00", kernel.NewMoneyFromFloat(580).String())
	assert.Equal(t, "19.90", kernel.MoneyFromPaise(1990).String())
	assert.Equal(t, "0.05", kernel.MoneyFromPaise(5).String())
	assert.Equal(t, "-1.25", kernel.MoneyFromPaise(-125).String())
}

func TestMoney_Float64(t *testing.T) {
	assert.InDelta(t, 19.99, kernel.MoneyFromPaise(1999).Float64(), 1e-9)
}
