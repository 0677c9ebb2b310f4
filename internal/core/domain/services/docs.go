// Package services contains stateless domain services that operate across
// aggregates or encapsulate pure domain computations.
//
// The package includes:
//   - FeeCalculator: derives the delivery charge, platform fee, and GST for
//     a new order from the settings snapshot and the drop-off distance
//   - GenerateDeliveryOtp: issues the 4-digit handoff confirmation code
//   - GenerateOrderCode: issues the human-readable, time-derived order code
//   - CommissionFor: the canonical 20%-of-order-total courier commission
package services
