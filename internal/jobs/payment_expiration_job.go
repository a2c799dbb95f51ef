package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/ports"

	"github.com/robfig/cron/v3"
)

const sweepLockKey = "payment-expiration-sweep"

// ExpirePaymentsHandler runs one reconciliation sweep.
type ExpirePaymentsHandler interface {
	Handle(ctx context.Context, cmd commands.ExpirePaymentsCommand) (commands.ExpirationReport, error)
}

type PaymentExpirationConfig struct {
	// Schedule is a cron spec or descriptor such as "@every 30s".
	Schedule string
	// LockTTL bounds how long one instance may hold the sweep lease.
	LockTTL time.Duration
}

// PaymentExpirationJob periodically expires lapsed PIX payments.
// Only the instance holding the sweep lease runs a given tick; a tick that
// fires while the previous sweep is still running is skipped.
type PaymentExpirationJob struct {
	handler ExpirePaymentsHandler
	locker  ports.Locker
	cfg     PaymentExpirationConfig
	cron    *cron.Cron
	now     func() time.Time
	logger  *slog.Logger
}

func NewPaymentExpirationJob(
	handler ExpirePaymentsHandler,
	locker ports.Locker,
	cfg PaymentExpirationConfig,
	logger *slog.Logger,
) *PaymentExpirationJob {
	return &PaymentExpirationJob{
		handler: handler,
		locker:  locker,
		cfg:     cfg,
		cron:    cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		now:     time.Now,
		logger:  logger.With("component", "payment_expiration_job"),
	}
}

func (j *PaymentExpirationJob) Name() string {
	return "payment_expiration"
}

// Start schedules the sweep.
func (j *PaymentExpirationJob) Start() error {
	_, err := j.cron.AddFunc(j.cfg.Schedule, func() {
		ctx := context.Background()
		if err := j.RunOnce(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Payment expiration sweep failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("invalid payment sweep schedule %q: %w", j.cfg.Schedule, err)
	}

	j.cron.Start()
	return nil
}

// Stop unschedules the sweep and waits for a running one to finish.
func (j *PaymentExpirationJob) Stop() {
	<-j.cron.Stop().Done()
}

// RunOnce runs a single sweep if the lease is free. Losing the lease to
// another instance is not an error.
func (j *PaymentExpirationJob) RunOnce(ctx context.Context) error {
	release, acquired, err := j.locker.TryLock(ctx, sweepLockKey, j.cfg.LockTTL)
	if err != nil {
		return fmt.Errorf("acquire sweep lock: %w", err)
	}
	if !acquired {
		j.logger.DebugContext(ctx, "Payment expiration sweep held by another instance")
		return nil
	}
	defer func() {
		if releaseErr := release(ctx); releaseErr != nil {
			j.logger.WarnContext(ctx, "Failed to release sweep lock", "error", releaseErr)
		}
	}()

	cmd, err := commands.NewExpirePaymentsCommand(j.now())
	if err != nil {
		return err
	}

	// the handler logs the sweep summary
	_, err = j.handler.Handle(ctx, cmd)
	return err
}
