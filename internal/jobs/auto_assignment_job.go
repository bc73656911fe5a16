package jobs

import (
	"context"
	"errors"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/assignment"
	"marketplace/internal/metrics"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

type AutoAssigner interface {
	Handle(ctx context.Context, cmd commands.AutoAssignDriverCommand) (*assignment.Assignment, error)
}

// AutoAssignmentJob matches the oldest pending request with the nearest free
// driver on every tick.
type AutoAssignmentJob struct {
	handler  AutoAssigner
	schedule string
	cron     *cron.Cron
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

func NewAutoAssignmentJob(
	handler AutoAssigner,
	schedule string,
	m *metrics.Metrics,
	logger *zap.Logger,
) *AutoAssignmentJob {
	return &AutoAssignmentJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		metrics:  m,
		logger:   logger.With(zap.String("component", "auto_assignment_job")),
	}
}

func (j *AutoAssignmentJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.RunOnce(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Auto assignment job started", zap.String("schedule", j.schedule))
	return nil
}

// RunOnce performs a single assignment attempt. Having nothing to assign or
// nobody to assign it to is not an error.
func (j *AutoAssignmentJob) RunOnce(ctx context.Context) {
	asg, err := j.handler.Handle(ctx, commands.NewAutoAssignDriverCommand())
	switch {
	case err == nil:
		j.metrics.AutoAssignmentsTotal.WithLabelValues("assigned").Inc()
		j.logger.Info("Driver assigned automatically",
			zap.String("assignment_id", asg.ID().String()),
			zap.String("delivery_request_id", asg.DeliveryRequestID().String()),
			zap.String("driver_id", asg.DriverID().String()),
		)
	case errors.Is(err, commands.ErrNoAssignableRequest):
		j.metrics.AutoAssignmentsTotal.WithLabelValues("no_request").Inc()
	case errors.Is(err, commands.ErrNoAvailableDrivers):
		j.metrics.AutoAssignmentsTotal.WithLabelValues("no_driver").Inc()
	default:
		j.metrics.AutoAssignmentsTotal.WithLabelValues("failed").Inc()
		j.logger.Error("Auto assignment job failed", zap.Error(err))
	}
}

func (j *AutoAssignmentJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Auto assignment job stopped")
}
