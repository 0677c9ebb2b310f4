package kernel

import (
	"fmt"
	"math"

	"quickbite/internal/pkg/errs"
	"quickbite/internal/pkg/guard"
)

const (
	latitudeMin  = -90.0
	latitudeMax  = 90.0
	longitudeMin = -180.0
	longitudeMax = 180.0

	// earthRadiusKm is the mean Earth radius used for great-circle distances.
	earthRadiusKm = 6371.0
)

// ErrGeoPointIsNotConstructed is returned when attempting to use an improperly
// initialized GeoPoint. GeoPoints must be created via NewGeoPoint.
var ErrGeoPointIsNotConstructed = errs.NewValueIsRequiredError(
	"geo point must be created via NewGeoPoint constructor")

// GeoPoint is an immutable value object representing a geographic coordinate
// in decimal degrees. The zero value is invalid and fails Validate; orders may
// legitimately carry no coordinates, which is modeled as a nil *GeoPoint, never
// as a zero-value GeoPoint.
//
// Example:
//
//	restaurant, err := kernel.NewGeoPoint(12.9716, 77.5946)
//	if err != nil {
//	    // Handle validation error
//	}
//	km := restaurant.DistanceKm(customer)
type GeoPoint struct {
	latitude  float64
	longitude float64
	guard     guard.ConstructorGuard
}

// NewGeoPoint creates a GeoPoint after validating that latitude is within
// [-90, 90] and longitude within [-180, 180].
func NewGeoPoint(latitude, longitude float64) (GeoPoint, error) {
	if latitude < latitudeMin || latitude > latitudeMax {
		return GeoPoint{}, errs.NewValueIsOutOfRangeError("latitude", latitude, latitudeMin, latitudeMax)
	}
	if longitude < longitudeMin || longitude > longitudeMax {
		return GeoPoint{}, errs.NewValueIsOutOfRangeError("longitude", longitude, longitudeMin, longitudeMax)
	}

	return GeoPoint{
		latitude:  latitude,
		longitude: longitude,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate checks that the GeoPoint was created via NewGeoPoint.
func (p GeoPoint) Validate() error {
	return p.guard.Validate(ErrGeoPointIsNotConstructed)
}

// Latitude returns the latitude in decimal degrees.
func (p GeoPoint) Latitude() float64 {
	return p.latitude
}

// Longitude returns the longitude in decimal degrees.
func (p GeoPoint) Longitude() float64 {
	return p.longitude
}

// IsEqual reports whether two points have identical coordinates.
func (p GeoPoint) IsEqual(other GeoPoint) bool {
	return p.latitude == other.latitude && p.longitude == other.longitude
}

// DistanceKm computes the great-circle (haversine) distance to other in kilometers.
func (p GeoPoint) DistanceKm(other GeoPoint) float64 {
	deltaLatitude := (other.latitude - p.latitude) * math.Pi / 180
	deltaLongitude := (other.longitude - p.longitude) * math.Pi / 180

	a := math.Sin(deltaLatitude/2)*math.Sin(deltaLatitude/2) +
		math.Cos(p.latitude*math.Pi/180)*math.Cos(other.latitude*math.Pi/180)*
			math.Sin(deltaLongitude/2)*math.Sin(deltaLongitude/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// String implements fmt.Stringer.
func (p GeoPoint) String() string {
	return fmt.Sprintf("GeoPoint(%.6f,%.6f)", p.latitude, p.longitude)
}
