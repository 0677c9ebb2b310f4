package settings

import (
	"quickbite/internal/core/domain/services"
)

// StaticProvider serves a delivery-settings snapshot fixed at startup.
// Settings come from the environment; changing them means restarting the
// service, which keeps every in-flight fee calculation consistent.
type StaticProvider struct {
	current services.DeliverySettings
}

// NewStaticProvider creates a provider around the startup snapshot.
func NewStaticProvider(current services.DeliverySettings) StaticProvider {
	return StaticProvider{current: current}
}

// Current returns the snapshot.
func (p StaticProvider) Current() services.DeliverySettings {
	return p.current
}
