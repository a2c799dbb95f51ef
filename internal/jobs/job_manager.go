package jobs

import (
	"fmt"
	"log/slog"

	"marketplace/internal/core/ports"
)

type scheduledJob interface {
	Name() string
	Start() error
	Stop()
}

// JobManager owns the background jobs of one process. Jobs start in
// registration order and stop in reverse.
type JobManager struct {
	jobs   []scheduledJob
	logger *slog.Logger
}

func NewJobManager(
	expirePayments ExpirePaymentsHandler,
	locker ports.Locker,
	paymentExpiration PaymentExpirationConfig,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		jobs: []scheduledJob{
			NewPaymentExpirationJob(expirePayments, locker, paymentExpiration, logger),
		},
		logger: logger.With("component", "JobManager"),
	}
}

// StartAll starts every job. If one fails, the jobs already started are
// stopped before the error is returned.
func (jm *JobManager) StartAll() error {
	for i, job := range jm.jobs {
		if err := job.Start(); err != nil {
			for j := i - 1; j >= 0; j-- {
				jm.jobs[j].Stop()
			}
			return fmt.Errorf("start %s: %w", job.Name(), err)
		}
		jm.logger.Info("Job started", "job", job.Name())
	}
	return nil
}

// StopAll blocks until every running job has finished its current tick.
func (jm *JobManager) StopAll() {
	for i := len(jm.jobs) - 1; i >= 0; i-- {
		jm.jobs[i].Stop()
		jm.logger.Info("Job stopped", "job", jm.jobs[i].Name())
	}
}
