package services

import (
	"errors"
	"math"

	"quickbite/internal/core/domain/model/kernel"
)

// ErrOutOfServiceArea is returned when the drop-off point lies beyond the
// configured maximum delivery radius. Out-of-range orders are rejected
// outright rather than charged a disguised flat fee.
var ErrOutOfServiceArea = errors.New("delivery address is outside the service area")

// DeliverySettings is the single current platform configuration snapshot
// governing delivery pricing and the service area. It is read-only to the
// core; a SettingsProvider supplies the current snapshot.
type DeliverySettings struct {
	// Restaurant is the reference point distances are measured from.
	Restaurant kernel.GeoPoint
	// MaxRadiusKm bounds the service area.
	MaxRadiusKm float64
	// BaseCharge applies to any delivery within the first kilometer.
	BaseCharge kernel.Money
	// PerKmCharge is added for each started kilometer beyond the first.
	PerKmCharge kernel.Money
	// FreeDeliveryThreshold waives the delivery charge for subtotals at or
	// above it. Zero disables the waiver.
	FreeDeliveryThreshold kernel.Money
	// PlatformFeePercent is the platform fee as a percentage of the subtotal.
	PlatformFeePercent float64
	// GSTPercent is the tax percentage applied to the subtotal.
	GSTPercent float64
}

// FeeBreakdown is the fee calculator's output: every derived money field of
// a new order. Total always equals subtotal + deliveryCharge + platformFee + gst.
type FeeBreakdown struct {
	Subtotal       kernel.Money
	DeliveryCharge kernel.Money
	PlatformFee    kernel.Money
	GST            kernel.Money
	Total          kernel.Money
}

// FeeCalculator computes the delivery charge, platform fee, and GST for an
// order at creation time. It is a pure domain service: deterministic, no
// side effects.
//
// Charge tiers by great-circle distance from the restaurant:
//   - within 1 km: the base charge
//   - within the max radius: base + ceil(distance-1) x per-km increment
//   - beyond the max radius: the order is rejected with ErrOutOfServiceArea
//
// A missing drop-off point degrades gracefully to a zero delivery charge.
// Subtotals at or above the free-delivery threshold are delivered free.
//
// Example:
//
//	calc := services.NewFeeCalculator()
//	fees, err := calc.Calculate(subtotal, dropoff, settings)
//	if errors.Is(err, services.ErrOutOfServiceArea) {
//	    // Reject the order
//	}
type FeeCalculator struct{}

// NewFeeCalculator creates a fee calculator.
func NewFeeCalculator() FeeCalculator {
	return FeeCalculator{}
}

// Calculate derives the complete fee breakdown for a subtotal and an
// optional drop-off point under the given settings snapshot.
func (FeeCalculator) Calculate(
	subtotal kernel.Money,
	dropoff *kernel.GeoPoint,
	settings DeliverySettings,
) (FeeBreakdown, error) {
	deliveryCharge, err := deliveryChargeFor(subtotal, dropoff, settings)
	if err != nil {
		return FeeBreakdown{}, err
	}

	platformFee := subtotal.Percent(settings.PlatformFeePercent)
	gst := subtotal.Percent(settings.GSTPercent)

	return FeeBreakdown{
		Subtotal:       subtotal,
		DeliveryCharge: deliveryCharge,
		PlatformFee:    platformFee,
		GST:            gst,
		Total:          subtotal.Add(deliveryCharge).Add(platformFee).Add(gst),
	}, nil
}

func deliveryChargeFor(
	subtotal kernel.Money,
	dropoff *kernel.GeoPoint,
	settings DeliverySettings,
) (kernel.Money, error) {
	if dropoff == nil {
		return kernel.Money(0), nil
	}
	if err := dropoff.Validate(); err != nil {
		return kernel.Money(0), err
	}

	distanceKm := settings.Restaurant.DistanceKm(*dropoff)
	if settings.MaxRadiusKm > 0 && distanceKm > settings.MaxRadiusKm {
		return kernel.Money(0), ErrOutOfServiceArea
	}

	if !settings.FreeDeliveryThreshold.IsZero() && subtotal.GreaterOrEqual(settings.FreeDeliveryThreshold) {
		return kernel.Money(0), nil
	}

	if distanceKm <= 1 {
		return settings.BaseCharge, nil
	}

	extraKm := int(math.Ceil(distanceKm - 1))
	return settings.BaseCharge.Add(settings.PerKmCharge.MulInt(extraKm)), nil
}
