package cmd

import (
	"context"
	"fmt"

	httpin "marketplace/internal/adapters/in/http"
	"marketplace/internal/adapters/out/amqp"
	"marketplace/internal/adapters/out/notify"
	"marketplace/internal/adapters/out/payout"
	"marketplace/internal/adapters/out/postgres"
	"marketplace/internal/adapters/out/postgres/orderrepo"
	"marketplace/internal/adapters/out/postgres/vendorrepo"
	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
	"marketplace/internal/jobs"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	configs    Config
	gormDB     *gorm.DB
	logger     *zap.Logger
	broker     *amqp.Connection
	uowFactory *postgres.GormUnitOfWorkFactory
	vendors    *vendorrepo.GormVendorDirectory
}

// NewCompositionRoot wires the adapters around gormDB. With AMQPURL set,
// status changes are published to the broker, otherwise they are only
// logged.
func NewCompositionRoot(configs Config, gormDB *gorm.DB, logger *zap.Logger) (*CompositionRoot, error) {
	c := &CompositionRoot{
		configs: configs,
		gormDB:  gormDB,
		logger:  logger,
		vendors: vendorrepo.NewGormVendorDirectory(gormDB),
	}

	var notifier ports.OrderEventNotifier
	if configs.AMQPURL != "" {
		broker, err := amqp.Dial(configs.AMQPURL, configs.AMQPExchange, logger)
		if err != nil {
			return nil, fmt.Errorf("connect to broker: %w", err)
		}
		c.broker = broker
		notifier = broker.Notifier()
	} else {
		logger.Warn("AMQP_URL not set, status changes are only logged")
		notifier = notify.NewLogNotifier(logger)
	}

	c.uowFactory = postgres.NewGormUnitOfWorkFactory(gormDB, notifier, logger).
		WithNotifyTimeout(configs.NotifyTimeout)
	return c, nil
}

// Close releases the broker connection.
func (c *CompositionRoot) Close() error {
	if c.broker == nil {
		return nil
	}
	return c.broker.Close()
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(
		c.orderUoWFactory(), postgres.NewSequenceOrderNumberGenerator(c.gormDB), commands.UTCClock,
	)
}

func (c *CompositionRoot) CreateUpdateFulfillmentStatusCommandHandler() commands.UpdateFulfillmentStatusCommandHandler {
	return commands.NewUpdateFulfillmentStatusCommandHandler(c.orderUoWFactory(), commands.UTCClock)
}

func (c *CompositionRoot) CreateUpdatePayoutStatusCommandHandler() commands.UpdatePayoutStatusCommandHandler {
	scheduler := services.NewPayoutScheduler(payout.NewLoggingDisburser(c.logger))
	return commands.NewUpdatePayoutStatusCommandHandler(c.orderUoWFactory(), scheduler, commands.UTCClock)
}

func (c *CompositionRoot) CreateResetPayoutCommandHandler() commands.ResetPayoutCommandHandler {
	return commands.NewResetPayoutCommandHandler(c.orderUoWFactory(), commands.UTCClock)
}

func (c *CompositionRoot) CreateAdjustFinancialsCommandHandler() commands.AdjustFinancialsCommandHandler {
	return commands.NewAdjustFinancialsCommandHandler(c.orderUoWFactory(), commands.UTCClock)
}

func (c *CompositionRoot) CreateRetryFailedPayoutsCommandHandler() commands.RetryFailedPayoutsCommandHandler {
	return commands.NewRetryFailedPayoutsCommandHandler(c.orderUoWFactory(), commands.UTCClock)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	// Reads run outside any unit of work.
	return queries.NewGetOrderQueryHandler(orderrepo.NewGormOrderRepository(c.gormDB, nil), c.vendors)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.gormDB, c.vendors)
}

// CreateRouter builds the HTTP API.
func (c *CompositionRoot) CreateRouter() (*echo.Echo, error) {
	server := httpin.NewServer(httpin.Handlers{
		CreateOrder:             c.CreateCreateOrderCommandHandler(),
		UpdateFulfillmentStatus: c.CreateUpdateFulfillmentStatusCommandHandler(),
		UpdatePayoutStatus:      c.CreateUpdatePayoutStatusCommandHandler(),
		ResetPayout:             c.CreateResetPayoutCommandHandler(),
		AdjustFinancials:        c.CreateAdjustFinancialsCommandHandler(),
		ListOrders:              c.CreateListOrdersQueryHandler(),
		GetOrder:                c.CreateGetOrderQueryHandler(),
	}, c.logger)

	return httpin.NewRouter(server, httpin.RouterConfig{
		RequestTimeout: c.configs.RequestTimeout,
		HealthCheck:    c.pingDatabase,
	}, c.logger)
}

func (c *CompositionRoot) pingDatabase(ctx context.Context) error {
	sqlDB, err := c.gormDB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// CreateJobManager builds the scheduled jobs. An empty PAYOUT_RETRY_SCHEDULE
// disables the payout retry job.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	var retry jobs.Job
	if c.configs.PayoutRetrySchedule != "" {
		retry = jobs.NewPayoutRetryJob(
			c.CreateRetryFailedPayoutsCommandHandler(),
			c.configs.PayoutRetrySchedule,
			c.configs.PayoutRetryBatchSize,
			c.configs.PayoutRetryRunTimeout,
			c.logger,
		)
	}
	return jobs.NewJobManager(c.logger, retry)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
