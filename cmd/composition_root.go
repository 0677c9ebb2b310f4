package cmd

import (
	"log/slog"
	"os"

	httpin "quickbite/internal/adapters/in/http"
	"quickbite/internal/adapters/out/notifier"
	"quickbite/internal/adapters/out/payments"
	"quickbite/internal/adapters/out/postgres"
	"quickbite/internal/adapters/out/postgres/menurepo"
	"quickbite/internal/adapters/out/settings"
	"quickbite/internal/core/application/usecases/commands"
	"quickbite/internal/core/application/usecases/queries"
	"quickbite/internal/core/domain/model/kernel"
	"quickbite/internal/core/domain/services"
	"quickbite/internal/core/ports"
	"quickbite/internal/jobs"

	"gorm.io/gorm"
)

// CompositionRoot wires adapters to use cases. Each Create method hands out
// a fully constructed handler; shared infrastructure (database, notifier,
// settings snapshot) is built once.
type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	menu       *menurepo.GormMenuProvider
	notifier   ports.NotificationSink
	settings   ports.SettingsProvider
	verifier   ports.PaymentVerifier
	logger     *slog.Logger
	feed       *httpin.RestaurantFeed
}

// NewCompositionRoot builds the shared infrastructure from the config and
// an open database connection.
func NewCompositionRoot(config Config, gormDB *gorm.DB) CompositionRoot {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	restaurant, err := kernel.NewGeoPoint(config.RestaurantLat, config.RestaurantLng)
	if err != nil {
		panic("invalid restaurant coordinates in config: " + err.Error())
	}

	deliverySettings := services.DeliverySettings{
		Restaurant:            restaurant,
		MaxRadiusKm:           config.MaxDeliveryRadiusKm,
		BaseCharge:            kernel.NewMoneyFromFloat(config.BaseDeliveryCharge),
		PerKmCharge:           kernel.NewMoneyFromFloat(config.PerKmDeliveryCharge),
		FreeDeliveryThreshold: kernel.NewMoneyFromFloat(config.FreeDeliveryThreshold),
		PlatformFeePercent:    config.PlatformFeePercent,
		GSTPercent:            config.GSTPercent,
	}

	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		menu:       menurepo.NewGormMenuProvider(gormDB),
		notifier:   notifier.NewHTTPNotifier(config.NotifierURL, logger),
		settings:   settings.NewStaticProvider(deliverySettings),
		verifier:   payments.NewHmacVerifier(config.PaymentGatewaySecret),
		logger:     logger,
		feed:       httpin.NewRestaurantFeed(logger),
	}
}

// Logger returns the application-wide structured logger.
func (c *CompositionRoot) Logger() *slog.Logger {
	return c.logger
}

// RestaurantFeed returns the shared open/closed broadcast feed.
func (c *CompositionRoot) RestaurantFeed() *httpin.RestaurantFeed {
	return c.feed
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) agentUoWFactory() commands.AgentUoWFactory {
	return FuncAgentUoWFactory(func() commands.AgentUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) fullUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), c.menu, c.settings, c.notifier)
}

func (c *CompositionRoot) CreateVerifyPaymentCommandHandler() commands.VerifyPaymentCommandHandler {
	return commands.NewVerifyPaymentCommandHandler(c.orderUoWFactory(), c.verifier, c.notifier)
}

func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() commands.UpdateOrderStatusCommandHandler {
	return commands.NewUpdateOrderStatusCommandHandler(c.fullUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateAssignCourierCommandHandler() commands.AssignCourierCommandHandler {
	return commands.NewAssignCourierCommandHandler(c.fullUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateCompleteDeliveryCommandHandler() commands.CompleteDeliveryCommandHandler {
	return commands.NewCompleteDeliveryCommandHandler(c.fullUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateVerifyDeliveryOtpCommandHandler() commands.VerifyDeliveryOtpCommandHandler {
	return commands.NewVerifyDeliveryOtpCommandHandler(c.fullUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateSetAgentAvailabilityCommandHandler() commands.SetAgentAvailabilityCommandHandler {
	return commands.NewSetAgentAvailabilityCommandHandler(c.agentUoWFactory())
}

func (c *CompositionRoot) CreateUpdateAgentLocationCommandHandler() commands.UpdateAgentLocationCommandHandler {
	return commands.NewUpdateAgentLocationCommandHandler(c.agentUoWFactory())
}

func (c *CompositionRoot) CreateExpireStaleOrdersCommandHandler() commands.ExpireStaleOrdersCommandHandler {
	return commands.NewExpireStaleOrdersCommandHandler(c.orderUoWFactory(), c.notifier, c.config.PendingOrderTTL)
}

func (c *CompositionRoot) CreateGetCustomerOrdersQueryHandler() queries.GetCustomerOrdersQueryHandler {
	return queries.NewGetCustomerOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAvailableOrdersQueryHandler() queries.GetAvailableOrdersQueryHandler {
	return queries.NewGetAvailableOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetEarningsSummaryQueryHandler() queries.GetEarningsSummaryQueryHandler {
	return queries.NewGetEarningsSummaryQueryHandler(c.gormDB)
}

// CreateHTTPServer wires every handler into the HTTP server.
func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(
		c.CreateCreateOrderCommandHandler(),
		c.CreateVerifyPaymentCommandHandler(),
		c.CreateUpdateOrderStatusCommandHandler(),
		c.CreateAssignCourierCommandHandler(),
		c.CreateCompleteDeliveryCommandHandler(),
		c.CreateVerifyDeliveryOtpCommandHandler(),
		c.CreateSetAgentAvailabilityCommandHandler(),
		c.CreateUpdateAgentLocationCommandHandler(),
		c.CreateGetCustomerOrdersQueryHandler(),
		c.CreateGetAvailableOrdersQueryHandler(),
		c.CreateGetEarningsSummaryQueryHandler(),
		c.feed,
	)
}

// CreateJobManager wires the scheduled jobs.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateExpireStaleOrdersCommandHandler(),
		c.config.OrderExpirySchedule,
		c.logger,
	)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncAgentUoWFactory func() commands.AgentUoW

func (f FuncAgentUoWFactory) Create() commands.AgentUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
