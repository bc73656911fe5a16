package jobs

import (
	"fmt"

	"marketplace/internal/metrics"

	"go.uber.org/zap"
)

type Job interface {
	Start() error
	Stop()
}

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	jobs   []namedJob
	logger *zap.Logger
}

type namedJob struct {
	name string
	job  Job
}

type Schedules struct {
	// AutoAssign is empty when automatic assignment is disabled.
	AutoAssign string
	Metrics    string
}

func NewJobManager(
	assigner AutoAssigner,
	counter StatusCounter,
	schedules Schedules,
	m *metrics.Metrics,
	logger *zap.Logger,
) *JobManager {
	jm := &JobManager{logger: logger}

	if schedules.Metrics != "" {
		jm.add("delivery metrics", NewDeliveryMetricsJob(counter, schedules.Metrics, m, logger))
	}
	if schedules.AutoAssign != "" {
		jm.add("auto assignment", NewAutoAssignmentJob(assigner, schedules.AutoAssign, m, logger))
	} else {
		logger.Info("Auto assignment is disabled")
	}

	return jm
}

func (jm *JobManager) add(name string, job Job) {
	jm.jobs = append(jm.jobs, namedJob{name: name, job: job})
}

// StartAll starts every job. If one fails, the ones already running are stopped.
func (jm *JobManager) StartAll() error {
	for i, nj := range jm.jobs {
		if err := nj.job.Start(); err != nil {
			for _, started := range jm.jobs[:i] {
				started.job.Stop()
			}
			return fmt.Errorf("failed to start %s job: %w", nj.name, err)
		}
	}
	return nil
}

// StopAll stops all jobs and waits for running ticks to finish.
func (jm *JobManager) StopAll() {
	for _, nj := range jm.jobs {
		nj.job.Stop()
	}
}
