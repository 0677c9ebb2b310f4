package cmd

import (
	"fmt"
	"time"
)

// Config carries every runtime setting of the application. Values are read
// from the environment in main and passed down as a single snapshot.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	PaymentGatewaySecret string
	NotifierURL          string

	RestaurantLat         float64
	RestaurantLng         float64
	MaxDeliveryRadiusKm   float64
	BaseDeliveryCharge    float64
	PerKmDeliveryCharge   float64
	FreeDeliveryThreshold float64
	PlatformFeePercent    float64
	GSTPercent            float64

	PendingOrderTTL     time.Duration
	OrderExpirySchedule string
}

// PostgresDSN builds the connection string for the primary database.
func (c Config) PostgresDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode,
	)
}
