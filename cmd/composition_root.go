package cmd

import (
	"fmt"

	httpadapter "marketplace/internal/adapters/in/http"
	"marketplace/internal/adapters/out/gateway"
	"marketplace/internal/adapters/out/notify"
	"marketplace/internal/adapters/out/postgres"
	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
	"marketplace/internal/jobs"
	"marketplace/internal/metrics"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory commands.UoWFactory
	notifier   *notify.AsyncSink
	gateway    ports.PaymentGateway
	registry   *prometheus.Registry
	metrics    *metrics.Metrics
	logger     *zap.Logger
}

func NewCompositionRoot(cfg Config, gormDB *gorm.DB, logger *zap.Logger) (*CompositionRoot, error) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	sender, err := newSender(cfg, logger)
	if err != nil {
		return nil, err
	}

	checkout, err := gateway.NewCheckoutGateway(cfg.GatewayBaseURL, logger)
	if err != nil {
		_ = sender.Close()
		return nil, err
	}

	pgFactory := postgres.NewGormUnitOfWorkFactory(gormDB, logger)

	return &CompositionRoot{
		cfg:    cfg,
		gormDB: gormDB,
		uowFactory: FuncUoWFactory(func() commands.UoW {
			return pgFactory.Create()
		}),
		notifier: notify.NewAsyncSink(sender, cfg.NotifyQueueSize, m.NotificationsDropped, m.NotificationsFailed, logger),
		gateway:  checkout,
		registry: registry,
		metrics:  m,
		logger:   logger,
	}, nil
}

func newSender(cfg Config, logger *zap.Logger) (notify.Sender, error) {
	switch cfg.NotifyBackend {
	case NotifyBackendKafka:
		return notify.NewKafkaSender(cfg.KafkaBrokers, cfg.KafkaTopic, logger), nil
	case NotifyBackendRabbitMQ:
		return notify.NewRabbitMQSender(cfg.RabbitMQURL, cfg.RabbitMQQueue, logger)
	case NotifyBackendLog:
		return notify.NewLogSender(logger), nil
	default:
		return nil, fmt.Errorf("unknown notification backend %q", cfg.NotifyBackend)
	}
}

// Notifier is run by main for the lifetime of the process.
func (c *CompositionRoot) Notifier() *notify.AsyncSink {
	return c.notifier
}

func (c *CompositionRoot) CreateCreateDeliveryRequestCommandHandler() commands.CreateDeliveryRequestCommandHandler {
	return commands.NewCreateDeliveryRequestCommandHandler(c.uowFactory, services.NewPricingCalculator(), nil)
}

func (c *CompositionRoot) CreateCancelDeliveryRequestCommandHandler() commands.CancelDeliveryRequestCommandHandler {
	return commands.NewCancelDeliveryRequestCommandHandler(c.uowFactory, c.notifier, nil)
}

func (c *CompositionRoot) CreateAssignDriverCommandHandler() commands.AssignDriverCommandHandler {
	return commands.NewAssignDriverCommandHandler(c.uowFactory, c.notifier, nil)
}

func (c *CompositionRoot) CreateAutoAssignDriverCommandHandler() commands.AutoAssignDriverCommandHandler {
	return commands.NewAutoAssignDriverCommandHandler(c.uowFactory, c.notifier, nil)
}

func (c *CompositionRoot) CreateAcceptAssignmentCommandHandler() commands.AcceptAssignmentCommandHandler {
	return commands.NewAcceptAssignmentCommandHandler(c.uowFactory, c.notifier, nil)
}

func (c *CompositionRoot) CreateRejectAssignmentCommandHandler() commands.RejectAssignmentCommandHandler {
	return commands.NewRejectAssignmentCommandHandler(c.uowFactory, c.notifier, nil)
}

func (c *CompositionRoot) CreateCompleteAssignmentCommandHandler() commands.CompleteAssignmentCommandHandler {
	return commands.NewCompleteAssignmentCommandHandler(c.uowFactory, c.notifier, nil)
}

func (c *CompositionRoot) CreateCreatePaymentCommandHandler() commands.CreatePaymentCommandHandler {
	return commands.NewCreatePaymentCommandHandler(c.uowFactory, c.gateway, nil)
}

func (c *CompositionRoot) CreateReconcilePaymentCommandHandler() commands.ReconcilePaymentCommandHandler {
	return commands.NewReconcilePaymentCommandHandler(c.uowFactory, c.notifier, nil)
}

func (c *CompositionRoot) CreateRecordTrackingPingCommandHandler() commands.RecordTrackingPingCommandHandler {
	return commands.NewRecordTrackingPingCommandHandler(c.uowFactory, nil)
}

func (c *CompositionRoot) CreateSyncActorCommandHandler() commands.SyncActorCommandHandler {
	return commands.NewSyncActorCommandHandler(c.uowFactory)
}

func (c *CompositionRoot) CreateGetDeliveryRequestQueryHandler() queries.GetDeliveryRequestQueryHandler {
	return queries.NewGetDeliveryRequestQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetTrackingHistoryQueryHandler() queries.GetTrackingHistoryQueryHandler {
	return queries.NewGetTrackingHistoryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateCountDeliveryRequestsByStatusQueryHandler() queries.CountDeliveryRequestsByStatusQueryHandler {
	return queries.NewCountDeliveryRequestsByStatusQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateAutoAssignDriverCommandHandler(),
		c.CreateCountDeliveryRequestsByStatusQueryHandler(),
		jobs.Schedules{AutoAssign: c.cfg.AutoAssignSchedule, Metrics: c.cfg.MetricsSchedule},
		c.metrics,
		c.logger,
	)
}

func (c *CompositionRoot) CreateRouter() (*echo.Echo, error) {
	server := httpadapter.NewServer(httpadapter.Handlers{
		CreateDeliveryRequest: c.CreateCreateDeliveryRequestCommandHandler(),
		CancelDeliveryRequest: c.CreateCancelDeliveryRequestCommandHandler(),
		AssignDriver:          c.CreateAssignDriverCommandHandler(),
		AcceptAssignment:      c.CreateAcceptAssignmentCommandHandler(),
		RejectAssignment:      c.CreateRejectAssignmentCommandHandler(),
		CompleteAssignment:    c.CreateCompleteAssignmentCommandHandler(),
		CreatePayment:         c.CreateCreatePaymentCommandHandler(),
		ReconcilePayment:      c.CreateReconcilePaymentCommandHandler(),
		RecordTrackingPing:    c.CreateRecordTrackingPingCommandHandler(),
		GetDeliveryRequest:    c.CreateGetDeliveryRequestQueryHandler(),
		GetTrackingHistory:    c.CreateGetTrackingHistoryQueryHandler(),
	}, c.cfg.GatewayToken)

	auth := httpadapter.NewAuthenticator(c.cfg.JWTSecret, c.CreateSyncActorCommandHandler(), c.logger)

	return httpadapter.NewRouter(server, auth, httpadapter.RouterConfig{
		Metrics:  c.metrics,
		Gatherer: c.registry,
		Logger:   c.logger.With(zap.String("component", "http")),
		Debug:    c.cfg.LogLevel == "debug",
	})
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
