package cmd

import (
	"log/slog"
	"strconv"
	"time"

	"gorm.io/gorm"

	"marketplace/internal/adapters/out/postgres"
	"marketplace/internal/adapters/out/rabbitmq"
	"marketplace/internal/adapters/out/routing"
	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/commission"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
	"marketplace/internal/jobs"
)

// Default settings used when the corresponding environment variable is absent
// or malformed.
const (
	defaultReminderDelay     = 10 * time.Second
	defaultCourierRateBase   = 30.0
	defaultCourierRatePerKm  = 10.0
	defaultCourierRateMinKm  = 2.0
	defaultCommissionPercent = 20.0
)

// CompositionRoot wires adapters, domain services, and use case handlers.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory

	publisher *rabbitmq.Publisher
	estimator *services.RouteEstimator
	logger    *slog.Logger

	reminderDelay time.Duration
	courierRate   commission.CourierRate
	defaultRule   commission.Rule
}

// NewCompositionRoot builds the object graph from configuration. The routing
// client and the event publisher are optional: a missing base URL or broker
// URL leaves the corresponding dependency nil and the system degrades to its
// fallbacks.
func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) (CompositionRoot, error) {
	if logger == nil {
		logger = slog.Default()
	}

	root := CompositionRoot{
		gormDB:        gormDB,
		uowFactory:    *postgres.NewGormUnitOfWorkFactory(gormDB),
		logger:        logger,
		reminderDelay: parseSeconds(config.ReminderDelaySeconds, defaultReminderDelay),
	}

	var err error
	root.courierRate, err = commission.NewCourierRate(
		parseFloat(config.CourierRateBase, defaultCourierRateBase),
		parseFloat(config.CourierRatePerKm, defaultCourierRatePerKm),
		parseFloat(config.CourierRateMinKm, defaultCourierRateMinKm),
	)
	if err != nil {
		return CompositionRoot{}, err
	}

	root.defaultRule, err = commission.NewRule(
		kernel.NewUUID(),
		commission.RulePercentage,
		parseFloat(config.DefaultCommissionPercent, defaultCommissionPercent),
		0, nil, true, 0,
	)
	if err != nil {
		return CompositionRoot{}, err
	}

	var provider *routing.Client
	if config.RoutingBaseURL != "" {
		provider, err = routing.NewClient(config.RoutingBaseURL, nil)
		if err != nil {
			return CompositionRoot{}, err
		}
	}
	if provider != nil {
		root.estimator = services.NewRouteEstimator(
			provider, parseFloat(config.AverageSpeedKmh, services.DefaultAverageSpeedKmh), logger)
	} else {
		root.estimator = services.NewRouteEstimator(
			nil, parseFloat(config.AverageSpeedKmh, services.DefaultAverageSpeedKmh), logger)
	}

	if config.RabbitMQURL != "" {
		root.publisher, err = rabbitmq.NewPublisher(config.RabbitMQURL)
		if err != nil {
			return CompositionRoot{}, err
		}
	}

	return root, nil
}

// Close releases external connections held by the graph.
func (c *CompositionRoot) Close() error {
	if c.publisher != nil {
		return c.publisher.Close()
	}
	return nil
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) settlementUoWFactory() commands.SettlementUoWFactory {
	return FuncSettlementUoWFactory(func() commands.SettlementUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) withdrawalUoWFactory() commands.WithdrawalUoWFactory {
	return FuncWithdrawalUoWFactory(func() commands.WithdrawalUoW {
		return c.uowFactory.Create()
	})
}

// eventPublisher keeps a nil broker connection out of the handlers, which
// treat a nil publisher as "notifications disabled".
func (c *CompositionRoot) eventPublisher() ports.EventPublisher {
	if c.publisher == nil {
		return nil
	}
	return c.publisher
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateConfirmPaymentCommandHandler() commands.ConfirmPaymentCommandHandler {
	return commands.NewConfirmPaymentCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateMarkReadyCommandHandler() commands.MarkReadyCommandHandler {
	return commands.NewMarkReadyCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateNotifyCourierCommandHandler() commands.NotifyCourierCommandHandler {
	return commands.NewNotifyCourierCommandHandler(c.orderUoWFactory(), c.eventPublisher(), c.logger)
}

func (c *CompositionRoot) CreateAssignCourierCommandHandler() commands.AssignCourierCommandHandler {
	return commands.NewAssignCourierCommandHandler(c.orderUoWFactory(), c.estimator)
}

func (c *CompositionRoot) CreateConfirmReachedPickupCommandHandler() commands.ConfirmReachedPickupCommandHandler {
	return commands.NewConfirmReachedPickupCommandHandler(
		c.orderUoWFactory(), c.eventPublisher(), c.reminderDelay, c.logger)
}

func (c *CompositionRoot) CreateConfirmOrderIDCommandHandler() commands.ConfirmOrderIDCommandHandler {
	return commands.NewConfirmOrderIDCommandHandler(
		c.orderUoWFactory(), c.estimator, c.eventPublisher(), c.logger)
}

func (c *CompositionRoot) CreateConfirmReachedDropCommandHandler() commands.ConfirmReachedDropCommandHandler {
	return commands.NewConfirmReachedDropCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateSettleOrderCommandHandler() commands.SettleOrderCommandHandler {
	return commands.NewSettleOrderCommandHandler(
		c.settlementUoWFactory(), c.eventPublisher(), c.courierRate, c.defaultRule, c.logger)
}

func (c *CompositionRoot) CreateCompleteDeliveryCommandHandler() commands.CompleteDeliveryCommandHandler {
	return commands.NewCompleteDeliveryCommandHandler(
		c.orderUoWFactory(), c.CreateSettleOrderCommandHandler(), c.logger)
}

func (c *CompositionRoot) CreateRequestWithdrawalCommandHandler() commands.RequestWithdrawalCommandHandler {
	return commands.NewRequestWithdrawalCommandHandler(c.withdrawalUoWFactory())
}

func (c *CompositionRoot) CreateApproveWithdrawalCommandHandler() commands.ApproveWithdrawalCommandHandler {
	return commands.NewApproveWithdrawalCommandHandler(c.withdrawalUoWFactory(), c.eventPublisher(), c.logger)
}

func (c *CompositionRoot) CreateRejectWithdrawalCommandHandler() commands.RejectWithdrawalCommandHandler {
	return commands.NewRejectWithdrawalCommandHandler(c.withdrawalUoWFactory(), c.eventPublisher(), c.logger)
}

func (c *CompositionRoot) CreateGetWalletQueryHandler() queries.GetWalletQueryHandler {
	return queries.NewGetWalletQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetActiveDeliveriesQueryHandler() queries.GetActiveDeliveriesQueryHandler {
	return queries.NewGetActiveDeliveriesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.orderUoWFactory(), c.CreateSettleOrderCommandHandler(), c.logger)
}

func parseFloat(raw string, fallback float64) float64 {
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fallback
	}
	return value
}

func parseSeconds(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	seconds, err := strconv.Atoi(raw)
	if err != nil || seconds <= 0 {
		return fallback
	}
	return time.Duration(seconds) * time.Second
}

// FuncOrderUoWFactory adapts a function to the OrderUoWFactory interface.
type FuncOrderUoWFactory func() commands.OrderUoW

// Create invokes the adapted function.
func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

// FuncSettlementUoWFactory adapts a function to the SettlementUoWFactory interface.
type FuncSettlementUoWFactory func() commands.SettlementUoW

// Create invokes the adapted function.
func (f FuncSettlementUoWFactory) Create() commands.SettlementUoW {
	return f()
}

// FuncWithdrawalUoWFactory adapts a function to the WithdrawalUoWFactory interface.
type FuncWithdrawalUoWFactory func() commands.WithdrawalUoW

// Create invokes the adapted function.
func (f FuncWithdrawalUoWFactory) Create() commands.WithdrawalUoW {
	return f()
}
