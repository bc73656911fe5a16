package jobs

import (
	"context"

	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/delivery"
	"marketplace/internal/metrics"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

type StatusCounter interface {
	Handle(ctx context.Context, query queries.CountDeliveryRequestsByStatusQuery) (map[delivery.Status]int64, error)
}

// DeliveryMetricsJob refreshes the per-status delivery request gauge.
type DeliveryMetricsJob struct {
	handler  StatusCounter
	schedule string
	cron     *cron.Cron
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

func NewDeliveryMetricsJob(
	handler StatusCounter,
	schedule string,
	m *metrics.Metrics,
	logger *zap.Logger,
) *DeliveryMetricsJob {
	return &DeliveryMetricsJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		metrics:  m,
		logger:   logger.With(zap.String("component", "delivery_metrics_job")),
	}
}

func (j *DeliveryMetricsJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.RunOnce(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Delivery metrics job started", zap.String("schedule", j.schedule))
	return nil
}

func (j *DeliveryMetricsJob) RunOnce(ctx context.Context) {
	counts, err := j.handler.Handle(ctx, queries.NewCountDeliveryRequestsByStatusQuery())
	if err != nil {
		j.logger.Error("Delivery metrics job failed", zap.Error(err))
		return
	}

	for status, n := range counts {
		j.metrics.DeliveryRequests.WithLabelValues(status.String()).Set(float64(n))
	}
}

func (j *DeliveryMetricsJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Delivery metrics job stopped")
}
