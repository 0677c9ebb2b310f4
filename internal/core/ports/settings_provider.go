package ports

import "quickbite/internal/core/domain/services"

// SettingsProvider supplies the single current delivery-settings snapshot.
// The snapshot is read-only to the core.
type SettingsProvider interface {
	Current() services.DeliverySettings
}
