// Package jobs provides scheduled background tasks for the marketplace.
//
// Jobs are cron-based, using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// PaymentExpirationJob runs the PIX expiration sweep (ExpirePaymentsCommandHandler)
// on PAYMENT_SWEEP_SCHEDULE, "@every 30s" by default. Each tick first takes the
// "payment-expiration-sweep" lease from a ports.Locker, so with a shared Redis
// only one instance sweeps at a time.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(expireHandler, locker, jobs.PaymentExpirationConfig{
//		Schedule: "@every 30s",
//		LockTTL:  25 * time.Second,
//	}, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		return err
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed sweep is logged and retried on the next tick. Per-payment failures
// are handled inside the sweep and never abort it.
package jobs
