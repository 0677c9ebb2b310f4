package services

import "quickbite/internal/core/domain/model/kernel"

// commissionPercent is the canonical courier commission policy: 20% of the
// delivered order's total. This is the single commission rule in the system;
// there is no alternative flat-rate path.
const commissionPercent = 20.0

// CommissionFor returns the courier commission accrued for delivering an
// order with the given total.
func CommissionFor(orderTotal kernel.Money) kernel.Money {
	return orderTotal.Percent(commissionPercent)
}
