package main

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"quickbite/cmd"
	"quickbite/internal/adapters/out/postgres"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()

	gormDB, err := gorm.Open(gormpostgres.Open(configs.PostgresDSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}

	if err := postgres.Migrate(gormDB); err != nil {
		log.Fatalf("Error migrating database schema: %v", err)
	}

	app := cmd.NewCompositionRoot(configs, gormDB)

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting background jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:             goDotEnvVariable("HTTP_PORT"),
		DBHost:               goDotEnvVariable("DB_HOST"),
		DBPort:               goDotEnvVariable("DB_PORT"),
		DBUser:               goDotEnvVariable("DB_USER"),
		DBPassword:           goDotEnvVariable("DB_PASSWORD"),
		DBName:               goDotEnvVariable("DB_NAME"),
		DBSslMode:            goDotEnvVariable("DB_SSLMODE"),
		PaymentGatewaySecret: goDotEnvVariable("PAYMENT_GATEWAY_SECRET"),
		NotifierURL:          goDotEnvVariable("NOTIFIER_URL"),

		RestaurantLat:         envFloat("RESTAURANT_LAT"),
		RestaurantLng:         envFloat("RESTAURANT_LNG"),
		MaxDeliveryRadiusKm:   envFloat("MAX_DELIVERY_RADIUS_KM"),
		BaseDeliveryCharge:    envFloat("BASE_DELIVERY_CHARGE"),
		PerKmDeliveryCharge:   envFloat("PER_KM_DELIVERY_CHARGE"),
		FreeDeliveryThreshold: envFloat("FREE_DELIVERY_THRESHOLD"),
		PlatformFeePercent:    envFloat("PLATFORM_FEE_PERCENT"),
		GSTPercent:            envFloat("GST_PERCENT"),

		PendingOrderTTL:     envDuration("PENDING_ORDER_TTL"),
		OrderExpirySchedule: goDotEnvVariable("ORDER_EXPIRY_SCHEDULE"),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func envFloat(key string) float64 {
	value, err := strconv.ParseFloat(goDotEnvVariable(key), 64)
	if err != nil {
		log.Fatalf("Error parsing %s: %v", key, err)
	}
	return value
}

func envDuration(key string) time.Duration {
	value, err := time.ParseDuration(goDotEnvVariable(key))
	if err != nil {
		log.Fatalf("Error parsing %s: %v", key, err)
	}
	return value
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	app.CreateHTTPServer().RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
