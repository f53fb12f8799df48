package cmd

import (
	"errors"
	"fmt"
	"time"

	kdshttp "kds/internal/adapters/in/http"
	"kds/internal/adapters/in/simulator"
	"kds/internal/adapters/out/events"
	kafkapub "kds/internal/adapters/out/kafka"
	"kds/internal/adapters/out/metrics"
	"kds/internal/adapters/out/postgres"
	"kds/internal/adapters/out/postgres/orderrepo"
	"kds/internal/core/application/usecases/commands"
	"kds/internal/core/application/usecases/queries"
	"kds/internal/core/domain/services"
	"kds/internal/core/ports"
	"kds/internal/jobs"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type CompositionRoot struct {
	cfg    Config
	logger *zap.Logger

	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	reader     queries.OrderReader

	metrics *metrics.OrderMetrics
	kafka   *kafkapub.OrderChangedPublisher

	policy services.UrgencyPolicy
	clock  ports.Clock
}

// OpenDatabase connects to Postgres and checks the connection, so an unreachable
// store fails at boot.
func OpenDatabase(cfg Config) (*gorm.DB, error) {
	db, err := gorm.Open(pgdriver.Open(cfg.DSN()), &gorm.Config{
		Logger:  gormlogger.Default.LogMode(gormlogger.Warn),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	if err = sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

func NewCompositionRoot(cfg Config, gormDB *gorm.DB, logger *zap.Logger) (*CompositionRoot, error) {
	policy, err := services.NewUrgencyPolicy(cfg.UrgencyWarningAfter, cfg.UrgencyUrgentAfter)
	if err != nil {
		return nil, err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	orderMetrics, err := metrics.NewOrderMetrics(reg)
	if err != nil {
		return nil, err
	}

	root := &CompositionRoot{
		cfg:     cfg,
		logger:  logger,
		gormDB:  gormDB,
		reader:  orderrepo.NewGormOrderRepository(gormDB, nil, logger),
		metrics: orderMetrics,
		policy:  policy,
		clock:   ports.SystemClock,
	}

	sinks := []ports.OrderEventPublisher{orderMetrics}
	if cfg.KafkaEnabled {
		root.kafka, err = kafkapub.NewOrderChangedPublisher(kafkapub.Config{
			Brokers: cfg.KafkaBrokers,
			Topic:   cfg.KafkaOrderChangedTopic,
		}, logger)
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, root.kafka)
	}

	root.uowFactory = postgres.NewGormUnitOfWorkFactory(gormDB, events.NewFanOut(sinks...), logger)
	return root, nil
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateTransitionOrderCommandHandler() commands.TransitionOrderCommandHandler {
	return commands.NewTransitionOrderCommandHandler(c.orderUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateDeleteOrderCommandHandler() commands.DeleteOrderCommandHandler {
	return commands.NewDeleteOrderCommandHandler(c.orderUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateSweepOrdersCommandHandler() commands.SweepOrdersCommandHandler {
	return commands.NewSweepOrdersCommandHandler(c.orderUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.reader, c.policy, c.clock, c.logger)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.reader, c.policy, c.clock, c.logger)
}

func (c *CompositionRoot) CreateCountOrdersByStatusQueryHandler() queries.CountOrdersByStatusQueryHandler {
	return queries.NewCountOrdersByStatusQueryHandler(c.reader)
}

func (c *CompositionRoot) CreateSimulator() *simulator.Simulator {
	return simulator.New(c.CreateCreateOrderCommandHandler(), c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	scheduled := []jobs.Job{
		jobs.NewRetentionSweepJob(c.CreateSweepOrdersCommandHandler(), c.cfg.SweepSchedule, c.cfg.RetentionHours, c.logger),
	}
	if c.cfg.SimulatorEnabled {
		scheduled = append(scheduled, jobs.NewSimulationJob(c.CreateSimulator(), c.cfg.SimulatorSchedule, c.logger))
	}
	return jobs.NewJobManager(c.logger, scheduled...)
}

func (c *CompositionRoot) CreateRouter() (*echo.Echo, error) {
	return kdshttp.NewRouter(kdshttp.RouterConfig{
		Handlers: kdshttp.Handlers{
			CreateOrder:     c.CreateCreateOrderCommandHandler(),
			TransitionOrder: c.CreateTransitionOrderCommandHandler(),
			DeleteOrder:     c.CreateDeleteOrderCommandHandler(),
			SweepOrders:     c.CreateSweepOrdersCommandHandler(),
			ListOrders:      c.CreateListOrdersQueryHandler(),
			GetOrder:        c.CreateGetOrderQueryHandler(),
			CountByStatus:   c.CreateCountOrdersByStatusQueryHandler(),
		},
		Metrics:          c.metrics,
		Logger:           c.logger,
		ValidateRequests: c.cfg.OpenAPIValidation,
	})
}

// Close flushes the Kafka producer and closes the connection pool.
func (c *CompositionRoot) Close() error {
	var errList []error
	if c.kafka != nil {
		errList = append(errList, c.kafka.Close())
	}
	if sqlDB, err := c.gormDB.DB(); err == nil {
		errList = append(errList, sqlDB.Close())
	} else {
		errList = append(errList, err)
	}
	return errors.Join(errList...)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
