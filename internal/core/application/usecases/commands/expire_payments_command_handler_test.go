package commands_test

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/delivery"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/payment"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type expireFixture struct {
	uow          *MockUoW
	deliveryRepo *MockDeliveryRepository
	paymentRepo  *MockPaymentRepository
	dispatcher   *MockDispatcher
	metrics      *MockReconciliationMetrics
	handler      commands.ExpirePaymentsCommandHandler
	now          time.Time
}

func newExpireFixture() *expireFixture {
	f := &expireFixture{
		deliveryRepo: new(MockDeliveryRepository),
		paymentRepo:  new(MockPaymentRepository),
		dispatcher:   new(MockDispatcher),
		metrics:      new(MockReconciliationMetrics),
		now:          time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	f.uow = newPaymentUoW(f.deliveryRepo, f.paymentRepo)
	f.handler = commands.NewExpirePaymentsCommandHandler(
		paymentUoWFactory{uowFactory{f.uow}},
		f.dispatcher,
		services.NewPaymentTimingPolicy(),
		f.metrics,
		slog.New(slog.DiscardHandler),
	)
	return f
}

func (f *expireFixture) command(t *testing.T) commands.ExpirePaymentsCommand {
	t.Helper()
	cmd, err := commands.NewExpirePaymentsCommand(f.now)
	require.NoError(t, err)
	return cmd
}

func TestNewExpirePaymentsCommand(t *testing.T) {
	_, err := commands.NewExpirePaymentsCommand(time.Time{})
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	require.ErrorIs(t, commands.ExpirePaymentsCommand{}.Validate(), commands.ErrExpirePaymentsCommandIsNotConstructed)
}

func TestExpirePaymentsCommandHandler_Handle_RevertsWaitingDelivery(t *testing.T) {
	ctx := t.Context()
	f := newExpireFixture()
	courierID := kernel.NewUUID()
	waiting := newAcceptedDelivery(t, delivery.TypeDelivery, nil, courierID, true)
	p := newPendingPayment(t, payment.PayerCustomer, f.now.Add(-time.Second), waiting.ID())

	f.paymentRepo.On("GetDuePending", ctx, f.now).Return([]*payment.Payment{p}, nil).Once()
	mock.InOrder(
		f.paymentRepo.On("Get", ctx, p.ID()).Return(p, nil).Once(),
		f.paymentRepo.On("Update", ctx, p).Return(nil).Once(),
		f.deliveryRepo.On("GetByIDs", ctx, p.DeliveryIDs()).Return([]*delivery.Delivery{waiting}, nil).Once(),
		f.deliveryRepo.On("Update", ctx, waiting).Return(nil).Once(),
		f.uow.On("Commit", ctx).Return(nil).Once(),
		f.dispatcher.On("Start", waiting.ID()).Return().Once(),
	)
	f.metrics.On("PaymentExpired").Return().Once()
	f.metrics.On("DeliveryReverted").Return().Once()

	report, err := f.handler.Handle(ctx, f.command(t))

	require.NoError(t, err)
	assert.Equal(t, commands.ExpirationReport{Due: 1, Expired: 1, Reverted: 1}, report)
	assert.Equal(t, payment.StatusExpired, p.Status())
	assert.Equal(t, delivery.Pending, waiting.Status())
	assert.Nil(t, waiting.CourierID())
	assert.Nil(t, waiting.AcceptedAt())
	assert.False(t, waiting.IsAwaitingPayment())
	f.dispatcher.AssertExpectations(t)
	f.metrics.AssertExpectations(t)
}

func TestExpirePaymentsCommandHandler_Handle_SkipsClientPayers(t *testing.T) {
	ctx := t.Context()
	f := newExpireFixture()
	d := newAcceptedDelivery(t, delivery.TypeDelivery, nil, kernel.NewUUID(), true)
	p := newPendingPayment(t, payment.PayerClient, f.now.Add(-time.Minute), d.ID())

	f.paymentRepo.On("GetDuePending", ctx, f.now).Return([]*payment.Payment{p}, nil).Once()

	report, err := f.handler.Handle(ctx, f.command(t))

	require.NoError(t, err)
	assert.Equal(t, commands.ExpirationReport{Due: 1, Skipped: 1}, report)
	assert.Equal(t, payment.StatusPending, p.Status())
	assert.Equal(t, delivery.Accepted, d.Status())
	f.paymentRepo.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	f.dispatcher.AssertNotCalled(t, "Start", mock.Anything)
}

func TestExpirePaymentsCommandHandler_Handle_LogsSummaryOnce(t *testing.T) {
	ctx := t.Context()
	f := newExpireFixture()
	var logs bytes.Buffer
	f.handler = commands.NewExpirePaymentsCommandHandler(
		paymentUoWFactory{uowFactory{f.uow}},
		f.dispatcher,
		services.NewPaymentTimingPolicy(),
		f.metrics,
		slog.New(slog.NewTextHandler(&logs, nil)),
	)
	d := newAcceptedDelivery(t, delivery.TypeDelivery, nil, kernel.NewUUID(), true)
	p := newPendingPayment(t, payment.PayerClient, f.now.Add(-time.Minute), d.ID())

	f.paymentRepo.On("GetDuePending", ctx, f.now).Return([]*payment.Payment{p}, nil).Once()

	_, err := f.handler.Handle(ctx, f.command(t))

	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(logs.String(), "payment expiration sweep finished"))
	assert.Contains(t, logs.String(), "skipped=1")
}

func TestExpirePaymentsCommandHandler_Handle_LeavesProgressedDeliveries(t *testing.T) {
	ctx := t.Context()
	f := newExpireFixture()
	courierID := kernel.NewUUID()

	// picked up after the payment arrived through another channel
	progressed := newAcceptedDelivery(t, delivery.TypeDelivery, nil, courierID, false)
	require.NoError(t, progressed.ConfirmPickup(courierID, f.now))
	// payment-wait, but a concurrent courier action wins the version race
	raced := newAcceptedDelivery(t, delivery.TypeDelivery, nil, kernel.NewUUID(), true)
	p := newPendingPayment(t, payment.PayerCustomer, f.now, progressed.ID(), raced.ID())

	f.paymentRepo.On("GetDuePending", ctx, f.now).Return([]*payment.Payment{p}, nil).Once()
	f.paymentRepo.On("Get", ctx, p.ID()).Return(p, nil).Once()
	f.paymentRepo.On("Update", ctx, p).Return(nil).Once()
	f.deliveryRepo.On("GetByIDs", ctx, p.DeliveryIDs()).
		Return([]*delivery.Delivery{progressed, raced}, nil).Once()
	f.deliveryRepo.On("Update", ctx, raced).Return(errs.NewStaleObjectError("delivery", raced.ID(), 0)).Once()
	f.uow.On("Commit", ctx).Return(nil).Once()
	f.metrics.On("PaymentExpired").Return().Once()

	report, err := f.handler.Handle(ctx, f.command(t))

	require.NoError(t, err)
	assert.Equal(t, commands.ExpirationReport{Due: 1, Expired: 1}, report)
	assert.Equal(t, delivery.PickedUp, progressed.Status())
	f.deliveryRepo.AssertNotCalled(t, "Update", ctx, progressed)
	f.dispatcher.AssertNotCalled(t, "Start", mock.Anything)
}

func TestExpirePaymentsCommandHandler_Handle_ConfirmedMeanwhile(t *testing.T) {
	ctx := t.Context()
	f := newExpireFixture()
	listed := newPendingPayment(t, payment.PayerCustomer, f.now, kernel.NewUUID())
	fresh, err := payment.RestorePayment(
		listed.ID(), listed.Amount(), payment.StatusCompleted, listed.PayerID(), listed.PayerCategory(),
		listed.DeliveryIDs(), listed.ExpiresAt(), "or_1", listed.CreatedAt(), 1,
	)
	require.NoError(t, err)

	f.paymentRepo.On("GetDuePending", ctx, f.now).Return([]*payment.Payment{listed}, nil).Once()
	f.paymentRepo.On("Get", ctx, listed.ID()).Return(fresh, nil).Once()

	report, err := f.handler.Handle(ctx, f.command(t))

	require.NoError(t, err)
	assert.Equal(t, commands.ExpirationReport{Due: 1, Skipped: 1}, report)
	f.paymentRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	f.uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestExpirePaymentsCommandHandler_Handle_FailureIsIsolated(t *testing.T) {
	ctx := t.Context()
	f := newExpireFixture()
	broken := newPendingPayment(t, payment.PayerCustomer, f.now, kernel.NewUUID())
	waiting := newAcceptedDelivery(t, delivery.TypeDelivery, nil, kernel.NewUUID(), true)
	healthy := newPendingPayment(t, payment.PayerCustomer, f.now, waiting.ID())

	f.paymentRepo.On("GetDuePending", ctx, f.now).Return([]*payment.Payment{broken, healthy}, nil).Once()
	f.paymentRepo.On("Get", ctx, broken.ID()).Return(nil, errors.New("connection reset")).Once()
	f.paymentRepo.On("Get", ctx, healthy.ID()).Return(healthy, nil).Once()
	f.paymentRepo.On("Update", ctx, healthy).Return(nil).Once()
	f.deliveryRepo.On("GetByIDs", ctx, healthy.DeliveryIDs()).Return([]*delivery.Delivery{waiting}, nil).Once()
	f.deliveryRepo.On("Update", ctx, waiting).Return(nil).Once()
	f.uow.On("Commit", ctx).Return(nil).Once()
	f.dispatcher.On("Start", waiting.ID()).Return().Once()
	f.metrics.On("ReconciliationFailed").Return().Once()
	f.metrics.On("PaymentExpired").Return().Once()
	f.metrics.On("DeliveryReverted").Return().Once()

	report, err := f.handler.Handle(ctx, f.command(t))

	require.NoError(t, err)
	assert.Equal(t, commands.ExpirationReport{Due: 2, Expired: 1, Reverted: 1, Failed: 1}, report)
	assert.Equal(t, payment.StatusPending, broken.Status())
	assert.Equal(t, delivery.Pending, waiting.Status())
	f.metrics.AssertExpectations(t)
}

func TestExpirePaymentsCommandHandler_Handle_RideRevertsFromTransit(t *testing.T) {
	ctx := t.Context()
	f := newExpireFixture()
	courierID := kernel.NewUUID()
	ride := newAcceptedDelivery(t, delivery.TypeRide, nil, courierID, false)
	require.NoError(t, ride.ConfirmPickup(courierID, f.now))
	require.NoError(t, ride.StartTransit(courierID, true, f.now))
	p := newPendingPayment(t, payment.PayerCustomer, f.now, ride.ID())

	f.paymentRepo.On("GetDuePending", ctx, f.now).Return([]*payment.Payment{p}, nil).Once()
	f.paymentRepo.On("Get", ctx, p.ID()).Return(p, nil).Once()
	f.paymentRepo.On("Update", ctx, p).Return(nil).Once()
	f.deliveryRepo.On("GetByIDs", ctx, p.DeliveryIDs()).Return([]*delivery.Delivery{ride}, nil).Once()
	f.deliveryRepo.On("Update", ctx, ride).Return(nil).Once()
	f.uow.On("Commit", ctx).Return(nil).Once()
	f.dispatcher.On("Start", ride.ID()).Return().Once()
	f.metrics.On("PaymentExpired").Return().Once()
	f.metrics.On("DeliveryReverted").Return().Once()

	_, err := f.handler.Handle(ctx, f.command(t))

	require.NoError(t, err)
	assert.Equal(t, delivery.Pending, ride.Status())
	assert.Nil(t, ride.InTransitAt())
	assert.Nil(t, ride.PickedUpAt())
}

func TestExpirePaymentsCommandHandler_Handle_ListFailure(t *testing.T) {
	ctx := t.Context()
	f := newExpireFixture()
	listErr := errors.New("database unavailable")
	f.paymentRepo.On("GetDuePending", ctx, f.now).Return(nil, listErr).Once()

	_, err := f.handler.Handle(ctx, f.command(t))

	require.ErrorIs(t, err, listErr)
}
