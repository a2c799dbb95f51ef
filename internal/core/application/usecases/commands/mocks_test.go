package commands_test

import (
	"context"
	"testing"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/contract"
	"marketplace/internal/core/domain/model/courier"
	"marketplace/internal/core/domain/model/delivery"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/payment"
	"marketplace/internal/core/domain/model/zone"
	"marketplace/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockDeliveryRepository struct{ mock.Mock }

func (m *MockDeliveryRepository) Add(ctx context.Context, d *delivery.Delivery) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDeliveryRepository) Update(ctx context.Context, d *delivery.Delivery) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDeliveryRepository) Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*delivery.Delivery), args.Error(1)
}

func (m *MockDeliveryRepository) GetByIDs(ctx context.Context, ids []kernel.UUID) ([]*delivery.Delivery, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*delivery.Delivery), args.Error(1)
}

type MockCourierRepository struct{ mock.Mock }

func (m *MockCourierRepository) Add(ctx context.Context, c *courier.Courier) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCourierRepository) Update(ctx context.Context, c *courier.Courier) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCourierRepository) Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*courier.Courier), args.Error(1)
}

func (m *MockCourierRepository) GetAvailableWithin(
	ctx context.Context, center kernel.Location, radiusKm float64,
) ([]*courier.Courier, error) {
	args := m.Called(ctx, center, radiusKm)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*courier.Courier), args.Error(1)
}

func (m *MockCourierRepository) GetActiveEmployeeIDs(
	ctx context.Context, organizationIDs []kernel.UUID,
) ([]kernel.UUID, error) {
	args := m.Called(ctx, organizationIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]kernel.UUID), args.Error(1)
}

type MockContractRepository struct{ mock.Mock }

func (m *MockContractRepository) Add(ctx context.Context, c *contract.ClientContract) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockContractRepository) GetPrimaryActive(
	ctx context.Context, clientID kernel.UUID,
) (*contract.ClientContract, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*contract.ClientContract), args.Error(1)
}

func (m *MockContractRepository) GetActiveSecondary(
	ctx context.Context, clientID kernel.UUID,
) ([]*contract.ClientContract, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*contract.ClientContract), args.Error(1)
}

type MockPaymentRepository struct{ mock.Mock }

func (m *MockPaymentRepository) Add(ctx context.Context, p *payment.Payment) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPaymentRepository) Update(ctx context.Context, p *payment.Payment) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPaymentRepository) Get(ctx context.Context, id kernel.UUID) (*payment.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Payment), args.Error(1)
}

func (m *MockPaymentRepository) GetActiveByDeliveryIDs(
	ctx context.Context, deliveryIDs []kernel.UUID,
) ([]*payment.Payment, error) {
	args := m.Called(ctx, deliveryIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*payment.Payment), args.Error(1)
}

func (m *MockPaymentRepository) GetDuePending(ctx context.Context, now time.Time) ([]*payment.Payment, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*payment.Payment), args.Error(1)
}

type MockSpecialZoneRepository struct{ mock.Mock }

func (m *MockSpecialZoneRepository) Add(ctx context.Context, z *zone.SpecialZone) error {
	args := m.Called(ctx, z)
	return args.Error(0)
}

func (m *MockSpecialZoneRepository) GetActive(ctx context.Context) ([]*zone.SpecialZone, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*zone.SpecialZone), args.Error(1)
}

// MockUoW satisfies every narrow unit of work the handlers ask for.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) DeliveryRepository() ports.DeliveryRepository {
	args := m.Called()
	return args.Get(0).(ports.DeliveryRepository)
}

func (m *MockUoW) CourierRepository() ports.CourierRepository {
	args := m.Called()
	return args.Get(0).(ports.CourierRepository)
}

func (m *MockUoW) ContractRepository() ports.ContractRepository {
	args := m.Called()
	return args.Get(0).(ports.ContractRepository)
}

func (m *MockUoW) PaymentRepository() ports.PaymentRepository {
	args := m.Called()
	return args.Get(0).(ports.PaymentRepository)
}

func (m *MockUoW) SpecialZoneRepository() ports.SpecialZoneRepository {
	args := m.Called()
	return args.Get(0).(ports.SpecialZoneRepository)
}

// uowFactory hands out the same MockUoW for every narrow factory interface.
type uowFactory struct{ uow *MockUoW }

type (
	deliveryUoWFactory   struct{ uowFactory }
	courierUoWFactory    struct{ uowFactory }
	contractUoWFactory   struct{ uowFactory }
	zoneUoWFactory       struct{ uowFactory }
	assignmentUoWFactory struct{ uowFactory }
	paymentUoWFactory    struct{ uowFactory }
)

func (f deliveryUoWFactory) Create() commands.DeliveryUoW     { return f.uow }
func (f courierUoWFactory) Create() commands.CourierUoW       { return f.uow }
func (f contractUoWFactory) Create() commands.ContractUoW     { return f.uow }
func (f zoneUoWFactory) Create() commands.ZoneUoW             { return f.uow }
func (f assignmentUoWFactory) Create() commands.AssignmentUoW { return f.uow }
func (f paymentUoWFactory) Create() commands.PaymentUoW       { return f.uow }

type MockDispatcher struct{ mock.Mock }

func (m *MockDispatcher) Start(deliveryID kernel.UUID) {
	m.Called(deliveryID)
}

func (m *MockDispatcher) Stop(deliveryID kernel.UUID) {
	m.Called(deliveryID)
}

type MockDispatchTaskStore struct{ mock.Mock }

func (m *MockDispatchTaskStore) Get(ctx context.Context, deliveryID kernel.UUID) (ports.DispatchTask, error) {
	args := m.Called(ctx, deliveryID)
	return args.Get(0).(ports.DispatchTask), args.Error(1)
}

func (m *MockDispatchTaskStore) Put(ctx context.Context, task ports.DispatchTask) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockDispatchTaskStore) Update(
	ctx context.Context, deliveryID kernel.UUID, mutate func(*ports.DispatchTask),
) (ports.DispatchTask, error) {
	args := m.Called(ctx, deliveryID, mutate)
	return args.Get(0).(ports.DispatchTask), args.Error(1)
}

type MockPaymentProcessor struct{ mock.Mock }

func (m *MockPaymentProcessor) CreateSplitOrder(ctx context.Context, request ports.SplitOrderRequest) (string, error) {
	args := m.Called(ctx, request)
	return args.String(0), args.Error(1)
}

type MockReconciliationMetrics struct{ mock.Mock }

func (m *MockReconciliationMetrics) PaymentExpired()       { m.Called() }
func (m *MockReconciliationMetrics) DeliveryReverted()     { m.Called() }
func (m *MockReconciliationMetrics) ReconciliationFailed() { m.Called() }

var (
	pickup  = kernel.MustNewLocation(-23.5614, -46.6559)
	dropoff = kernel.MustNewLocation(-23.5505, -46.6333)
)

func newRoute(t *testing.T) delivery.Route {
	t.Helper()
	route, err := delivery.NewRoute(pickup, "Av. Paulista, 1000", dropoff, "Praça da Sé")
	require.NoError(t, err)
	return route
}

func newPendingDelivery(t *testing.T, deliveryType delivery.Type, organizerID *kernel.UUID) *delivery.Delivery {
	t.Helper()
	d, err := delivery.NewDelivery(
		kernel.NewUUID(), kernel.NewUUID(), organizerID, newRoute(t),
		deliveryType, delivery.VehicleAny, 3000, 1000, time.Now(),
	)
	require.NoError(t, err)
	return d
}

// newAcceptedDelivery returns a delivery accepted by courierID, waiting for
// payment when awaitPayment is set.
func newAcceptedDelivery(
	t *testing.T, deliveryType delivery.Type, organizerID *kernel.UUID, courierID kernel.UUID, awaitPayment bool,
) *delivery.Delivery {
	t.Helper()
	d := newPendingDelivery(t, deliveryType, organizerID)
	require.NoError(t, d.Accept(courierID, awaitPayment, time.Now()))
	return d
}

func newCourier(t *testing.T, availability courier.Availability, employedBy ...kernel.UUID) *courier.Courier {
	t.Helper()
	c, err := courier.NewCourier(kernel.NewUUID(), "Courier", pickup, availability)
	require.NoError(t, err)
	for _, organizationID := range employedBy {
		require.NoError(t, c.LinkToOrganization(organizationID, time.Now()))
	}
	return c
}

func newPendingPayment(
	t *testing.T, category payment.PayerCategory, expiresAt time.Time, deliveryIDs ...kernel.UUID,
) *payment.Payment {
	t.Helper()
	p, err := payment.NewPayment(
		kernel.NewUUID(), 1000, kernel.NewUUID(), category, deliveryIDs, &expiresAt, expiresAt.Add(-5*time.Minute),
	)
	require.NoError(t, err)
	return p
}
