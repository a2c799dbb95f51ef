package cmd

import (
	"log/slog"

	httpin "marketplace/internal/adapters/in/http"
	"marketplace/internal/adapters/out/postgres"
	"marketplace/internal/core/application/dispatch"
	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
	"marketplace/internal/jobs"
	"marketplace/internal/metrics"

	"gorm.io/gorm"
)

// Infrastructure carries the connected adapters main hands to the root.
type Infrastructure struct {
	DB        *gorm.DB
	Tasks     ports.DispatchTaskStore
	Locker    ports.Locker
	Gateway   ports.NotificationGateway
	Processor ports.PaymentProcessor
	Metrics   *metrics.Metrics
	Logger    *slog.Logger
}

// CompositionRoot wires use cases to adapters. The dispatch coordinator is
// shared: every handler that starts or stops a cascade talks to the same one.
type CompositionRoot struct {
	cfg         Config
	split       services.SplitConfig
	infra       Infrastructure
	uowFactory  *postgres.GormUnitOfWorkFactory
	policy      services.PaymentTimingPolicy
	coordinator *dispatch.Coordinator
}

func NewCompositionRoot(cfg Config, infra Infrastructure) (*CompositionRoot, error) {
	split, err := cfg.SplitConfig()
	if err != nil {
		return nil, err
	}

	c := &CompositionRoot{
		cfg:        cfg,
		split:      split,
		infra:      infra,
		uowFactory: postgres.NewGormUnitOfWorkFactory(infra.DB),
		policy:     services.NewPaymentTimingPolicy(),
	}

	var readFactory dispatch.ReadUoWFactory = FuncReadUoWFactory(func() dispatch.ReadUoW {
		return c.uowFactory.CreateGorm()
	})
	c.coordinator = dispatch.NewCoordinator(
		readFactory, infra.Gateway, infra.Tasks, infra.Metrics, c.DispatchConfig(), infra.Logger,
	)
	return c, nil
}

func (c *CompositionRoot) DispatchConfig() dispatch.Config {
	return dispatch.Config{
		TierTimeout:      c.cfg.DispatchTierTimeout,
		SendInterval:     c.cfg.DispatchSendInterval,
		SendTimeout:      c.cfg.DispatchSendTimeout,
		DefaultRadiusKm:  c.cfg.DispatchDefaultRadiusKm,
		ExtendedRadiusKm: c.cfg.DispatchExtendedRadiusKm,
	}
}

func (c *CompositionRoot) Coordinator() *dispatch.Coordinator {
	return c.coordinator
}

func (c *CompositionRoot) deliveryUoWFactory() commands.DeliveryUoWFactory {
	return FuncDeliveryUoWFactory(func() commands.DeliveryUoW {
		return c.uowFactory.CreateGorm()
	})
}

func (c *CompositionRoot) courierUoWFactory() commands.CourierUoWFactory {
	return FuncCourierUoWFactory(func() commands.CourierUoW {
		return c.uowFactory.CreateGorm()
	})
}

func (c *CompositionRoot) assignmentUoWFactory() commands.AssignmentUoWFactory {
	return FuncAssignmentUoWFactory(func() commands.AssignmentUoW {
		return c.uowFactory.CreateGorm()
	})
}

func (c *CompositionRoot) paymentUoWFactory() commands.PaymentUoWFactory {
	return FuncPaymentUoWFactory(func() commands.PaymentUoW {
		return c.uowFactory.CreateGorm()
	})
}

func (c *CompositionRoot) CreateCreateDeliveryCommandHandler() commands.CreateDeliveryCommandHandler {
	return commands.NewCreateDeliveryCommandHandler(c.deliveryUoWFactory(), c.coordinator)
}

func (c *CompositionRoot) CreateAssignCourierCommandHandler() commands.AssignCourierCommandHandler {
	return commands.NewAssignCourierCommandHandler(c.assignmentUoWFactory(), c.infra.Tasks, c.coordinator, c.policy)
}

func (c *CompositionRoot) CreateConfirmPickupCommandHandler() commands.ConfirmPickupCommandHandler {
	return commands.NewConfirmPickupCommandHandler(c.deliveryUoWFactory())
}

func (c *CompositionRoot) CreateStartTransitCommandHandler() commands.StartTransitCommandHandler {
	return commands.NewStartTransitCommandHandler(c.deliveryUoWFactory(), c.policy)
}

func (c *CompositionRoot) CreateCompleteDeliveryCommandHandler() commands.CompleteDeliveryCommandHandler {
	return commands.NewCompleteDeliveryCommandHandler(c.deliveryUoWFactory())
}

func (c *CompositionRoot) CreateCancelDeliveryCommandHandler() commands.CancelDeliveryCommandHandler {
	return commands.NewCancelDeliveryCommandHandler(c.assignmentUoWFactory(), c.coordinator)
}

func (c *CompositionRoot) CreateCreateCourierCommandHandler() commands.CreateCourierCommandHandler {
	return commands.NewCreateCourierCommandHandler(c.courierUoWFactory())
}

func (c *CompositionRoot) CreateUpdateCourierStatusCommandHandler() commands.UpdateCourierStatusCommandHandler {
	return commands.NewUpdateCourierStatusCommandHandler(c.courierUoWFactory())
}

func (c *CompositionRoot) CreateRegisterPushTokenCommandHandler() commands.RegisterPushTokenCommandHandler {
	return commands.NewRegisterPushTokenCommandHandler(c.courierUoWFactory())
}

func (c *CompositionRoot) CreateLinkCourierCommandHandler() commands.LinkCourierCommandHandler {
	return commands.NewLinkCourierCommandHandler(c.courierUoWFactory())
}

func (c *CompositionRoot) CreateCreateClientContractCommandHandler() commands.CreateClientContractCommandHandler {
	var f commands.ContractUoWFactory = FuncContractUoWFactory(func() commands.ContractUoW {
		return c.uowFactory.CreateGorm()
	})
	return commands.NewCreateClientContractCommandHandler(f)
}

func (c *CompositionRoot) CreateCreateSpecialZoneCommandHandler() commands.CreateSpecialZoneCommandHandler {
	var f commands.ZoneUoWFactory = FuncZoneUoWFactory(func() commands.ZoneUoW {
		return c.uowFactory.CreateGorm()
	})
	return commands.NewCreateSpecialZoneCommandHandler(f)
}

func (c *CompositionRoot) CreateOpenPaymentCommandHandler() commands.OpenPaymentCommandHandler {
	return commands.NewOpenPaymentCommandHandler(c.paymentUoWFactory(), c.infra.Processor, commands.PaymentConfig{
		Split:               c.split,
		PlatformRecipientID: c.cfg.PlatformRecipientID,
		TTL:                 c.cfg.PaymentTTL,
	}, c.infra.Logger)
}

func (c *CompositionRoot) CreateConfirmPaymentCommandHandler() commands.ConfirmPaymentCommandHandler {
	return commands.NewConfirmPaymentCommandHandler(c.paymentUoWFactory(), c.infra.Logger)
}

func (c *CompositionRoot) CreateExpirePaymentsCommandHandler() commands.ExpirePaymentsCommandHandler {
	return commands.NewExpirePaymentsCommandHandler(
		c.paymentUoWFactory(), c.coordinator, c.policy, c.infra.Metrics, c.infra.Logger,
	)
}

func (c *CompositionRoot) CreateGetDeliveryQueryHandler() queries.GetDeliveryQueryHandler {
	return queries.NewGetDeliveryQueryHandler(c.infra.DB)
}

func (c *CompositionRoot) CreateGetActiveDeliveriesQueryHandler() queries.GetActiveDeliveriesQueryHandler {
	return queries.NewGetActiveDeliveriesQueryHandler(c.infra.DB)
}

func (c *CompositionRoot) CreateResolveSpecialZoneQueryHandler() queries.ResolveSpecialZoneQueryHandler {
	return queries.NewResolveSpecialZoneQueryHandler(
		c.uowFactory.CreateGorm().SpecialZoneRepository(),
		services.NewSpecialZoneResolver(),
	)
}

// CreateHTTPServer builds the REST server over every use case.
func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	createDelivery := c.CreateCreateDeliveryCommandHandler()
	assignCourier := c.CreateAssignCourierCommandHandler()
	confirmPickup := c.CreateConfirmPickupCommandHandler()
	startTransit := c.CreateStartTransitCommandHandler()
	completeDelivery := c.CreateCompleteDeliveryCommandHandler()
	cancelDelivery := c.CreateCancelDeliveryCommandHandler()
	createCourier := c.CreateCreateCourierCommandHandler()
	updateCourierStatus := c.CreateUpdateCourierStatusCommandHandler()
	registerPushToken := c.CreateRegisterPushTokenCommandHandler()
	linkCourier := c.CreateLinkCourierCommandHandler()
	createContract := c.CreateCreateClientContractCommandHandler()
	createZone := c.CreateCreateSpecialZoneCommandHandler()
	openPayment := c.CreateOpenPaymentCommandHandler()
	confirmPayment := c.CreateConfirmPaymentCommandHandler()

	return httpin.NewServer(httpin.Handlers{
		CreateDelivery:       &createDelivery,
		AssignCourier:        &assignCourier,
		ConfirmPickup:        &confirmPickup,
		StartTransit:         &startTransit,
		CompleteDelivery:     &completeDelivery,
		CancelDelivery:       &cancelDelivery,
		CreateCourier:        &createCourier,
		UpdateCourierStatus:  &updateCourierStatus,
		RegisterPushToken:    &registerPushToken,
		LinkCourier:          &linkCourier,
		CreateClientContract: &createContract,
		CreateSpecialZone:    &createZone,
		OpenPayment:          &openPayment,
		ConfirmPayment:       &confirmPayment,
		GetDelivery:          c.CreateGetDeliveryQueryHandler(),
		GetActiveDeliveries:  c.CreateGetActiveDeliveriesQueryHandler(),
		ResolveSpecialZone:   c.CreateResolveSpecialZoneQueryHandler(),
	}, c.split, c.infra.Logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	expirePayments := c.CreateExpirePaymentsCommandHandler()
	return jobs.NewJobManager(&expirePayments, c.infra.Locker, jobs.PaymentExpirationConfig{
		Schedule: c.cfg.PaymentSweepSchedule,
		LockTTL:  c.cfg.PaymentSweepLockTTL,
	}, c.infra.Logger)
}

type FuncDeliveryUoWFactory func() commands.DeliveryUoW

func (f FuncDeliveryUoWFactory) Create() commands.DeliveryUoW {
	return f()
}

type FuncCourierUoWFactory func() commands.CourierUoW

func (f FuncCourierUoWFactory) Create() commands.CourierUoW {
	return f()
}

type FuncContractUoWFactory func() commands.ContractUoW

func (f FuncContractUoWFactory) Create() commands.ContractUoW {
	return f()
}

type FuncZoneUoWFactory func() commands.ZoneUoW

func (f FuncZoneUoWFactory) Create() commands.ZoneUoW {
	return f()
}

type FuncAssignmentUoWFactory func() commands.AssignmentUoW

func (f FuncAssignmentUoWFactory) Create() commands.AssignmentUoW {
	return f()
}

type FuncPaymentUoWFactory func() commands.PaymentUoW

func (f FuncPaymentUoWFactory) Create() commands.PaymentUoW {
	return f()
}

type FuncReadUoWFactory func() dispatch.ReadUoW

func (f FuncReadUoWFactory) Create() dispatch.ReadUoW {
	return f()
}
