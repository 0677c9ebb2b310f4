package kernel

import (
	"fmt"
	"math"

	"quickbite/internal/pkg/errs"
)

// Money is a fixed-point monetary amount held as an integer number of paise
// (hundredths of a rupee). All order money fields use this representation so
// that totals add up exactly at two decimals, with no floating-point drift.
//
// Unlike other kernel value objects, the zero value of Money is a legitimate
// amount (zero rupees), so Money carries no constructor guard.
//
// Example:
//
//	subtotal := kernel.NewMoneyFromFloat(500)
//	gst := subtotal.Percent(5)            // 25.00
//	total := subtotal.Add(gst)
//	fmt.Println(total)                    // 525.00
type Money int64

// NewMoneyFromFloat converts a rupee amount to Money, rounding half away from
// zero to the nearest paise.
func NewMoneyFromFloat(amount float64) Money {
	return Money(math.Round(amount * 100))
}

// MoneyFromPaise constructs Money from a raw paise count, typically when
// loading from persistence.
func MoneyFromPaise(paise int64) Money {
	return Money(paise)
}

// Paise returns the raw paise count for persistence mapping.
func (m Money) Paise() int64 {
	return int64(m)
}

// Float64 returns the amount in rupees. Intended for serialization at the
// API boundary only; arithmetic stays in fixed point.
func (m Money) Float64() float64 {
	return float64(m) / 100
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	return m + other
}

// Sub returns the difference of two amounts.
func (m Money) Sub(other Money) Money {
	return m - other
}

// MulInt returns the amount multiplied by a whole number, used for
// quantity × unit price line totals.
func (m Money) MulInt(n int) Money {
	return m * Money(n)
}

// Percent returns pct percent of the amount, rounded half away from zero
// to the nearest paise.
func (m Money) Percent(pct float64) Money {
	return Money(math.Round(float64(m) * pct / 100))
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m == 0
}

// IsNegative reports whether the amount is below zero.
func (m Money) IsNegative() bool {
	return m < 0
}

// GreaterOrEqual reports whether the amount is at least other.
func (m Money) GreaterOrEqual(other Money) bool {
	return m >= other
}

// Validate rejects negative amounts, which no order money field may hold.
func (m Money) Validate() error {
	if m < 0 {
		return errs.NewValueIsInvalidErrorWithCause("money",
			fmt.Errorf("%s is negative", m))
	}
	return nil
}

// String implements fmt.Stringer, formatting the amount with two decimals.
func (m Money) String() string {
	sign := ""
	v := m
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}
