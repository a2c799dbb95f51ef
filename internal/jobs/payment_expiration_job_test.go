package jobs

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"marketplace/internal/adapters/out/memory"
	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockExpirePaymentsHandler struct{ mock.Mock }

func (m *MockExpirePaymentsHandler) Handle(
	ctx context.Context, cmd commands.ExpirePaymentsCommand,
) (commands.ExpirationReport, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.ExpirationReport), args.Error(1)
}

type failingLocker struct{ err error }

func (l failingLocker) TryLock(context.Context, string, time.Duration) (ports.ReleaseFunc, bool, error) {
	return nil, false, l.err
}

func newTestJob(handler ExpirePaymentsHandler, locker ports.Locker) *PaymentExpirationJob {
	return NewPaymentExpirationJob(handler, locker, PaymentExpirationConfig{
		Schedule: "@every 1s",
		LockTTL:  time.Minute,
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestPaymentExpirationJob_RunOnce(t *testing.T) {
	handler := &MockExpirePaymentsHandler{}
	locker := memory.NewLocker()
	job := newTestJob(handler, locker)
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	job.now = func() time.Time { return now }

	handler.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.ExpirePaymentsCommand) bool {
		return cmd.Now().Equal(now)
	})).Return(commands.ExpirationReport{Due: 2, Expired: 2, Reverted: 1}, nil).Once()

	require.NoError(t, job.RunOnce(t.Context()))
	handler.AssertExpectations(t)

	release, acquired, err := locker.TryLock(t.Context(), sweepLockKey, time.Minute)
	require.NoError(t, err)
	assert.True(t, acquired, "sweep lock must be released after the run")
	require.NoError(t, release(t.Context()))
}

func TestPaymentExpirationJob_RunOnce_LeavesSummaryToHandler(t *testing.T) {
	var logs bytes.Buffer
	handler := &MockExpirePaymentsHandler{}
	job := NewPaymentExpirationJob(handler, memory.NewLocker(), PaymentExpirationConfig{
		Schedule: "@every 1s",
		LockTTL:  time.Minute,
	}, slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug})))

	handler.On("Handle", mock.Anything, mock.Anything).
		Return(commands.ExpirationReport{Due: 3, Expired: 1, Skipped: 2}, nil).Once()

	require.NoError(t, job.RunOnce(t.Context()))
	assert.NotContains(t, logs.String(), "sweep finished")
}

func TestPaymentExpirationJob_RunOnce_SkipsWhenLockHeld(t *testing.T) {
	handler := &MockExpirePaymentsHandler{}
	locker := memory.NewLocker()
	job := newTestJob(handler, locker)

	release, acquired, err := locker.TryLock(t.Context(), sweepLockKey, time.Minute)
	require.NoError(t, err)
	require.True(t, acquired)
	defer func() { _ = release(t.Context()) }()

	require.NoError(t, job.RunOnce(t.Context()))
	handler.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestPaymentExpirationJob_RunOnce_ReleasesLockOnFailure(t *testing.T) {
	handler := &MockExpirePaymentsHandler{}
	locker := memory.NewLocker()
	job := newTestJob(handler, locker)
	boom := errors.New("database unavailable")

	handler.On("Handle", mock.Anything, mock.Anything).Return(commands.ExpirationReport{}, boom).Once()

	err := job.RunOnce(t.Context())
	require.ErrorIs(t, err, boom)

	_, acquired, err := locker.TryLock(t.Context(), sweepLockKey, time.Minute)
	require.NoError(t, err)
	assert.True(t, acquired)
}

func TestPaymentExpirationJob_RunOnce_LockerError(t *testing.T) {
	handler := &MockExpirePaymentsHandler{}
	lockErr := errors.New("redis down")
	job := newTestJob(handler, failingLocker{err: lockErr})

	err := job.RunOnce(t.Context())

	require.ErrorIs(t, err, lockErr)
	handler.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestPaymentExpirationJob_StartRejectsInvalidSchedule(t *testing.T) {
	job := NewPaymentExpirationJob(&MockExpirePaymentsHandler{}, memory.NewLocker(), PaymentExpirationConfig{
		Schedule: "every now and then",
		LockTTL:  time.Minute,
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	assert.Error(t, job.Start())
}

func TestJobManager_RunsSweepOnSchedule(t *testing.T) {
	if testing.Short() {
		t.Skip("waits for a cron tick")
	}

	handler := &MockExpirePaymentsHandler{}
	ran := make(chan struct{}, 1)
	handler.On("Handle", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) {
			select {
			case ran <- struct{}{}:
			default:
			}
		}).
		Return(commands.ExpirationReport{}, nil)

	manager := NewJobManager(handler, memory.NewLocker(), PaymentExpirationConfig{
		Schedule: "@every 1s",
		LockTTL:  time.Minute,
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	require.NoError(t, manager.StartAll())
	defer manager.StopAll()

	select {
	case <-ran:
	case <-time.After(3 * time.Second):
		t.Fatal("sweep did not run")
	}
}

func TestJobManager_StartAll_ReportsInvalidSchedule(t *testing.T) {
	manager := NewJobManager(&MockExpirePaymentsHandler{}, memory.NewLocker(), PaymentExpirationConfig{
		Schedule: "whenever",
		LockTTL:  time.Minute,
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	err := manager.StartAll()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "payment_expiration")
}
