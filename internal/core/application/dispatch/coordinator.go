package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"marketplace/internal/core/domain/model/contract"
	"marketplace/internal/core/domain/model/delivery"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

const (
	TierPrimary      = 1
	TierSecondary    = 2
	TierOpen         = 3
	NotificationType = "delivery_invite"
)

var ErrCoordinatorClosed = errors.New("dispatch coordinator is shut down")

type (
	// ReadUoW exposes the repositories a cascade reads from. Cascades never
	// open a transaction: every read is a point-in-time snapshot.
	ReadUoW interface {
		DeliveryRepository() ports.DeliveryRepository
		CourierRepository() ports.CourierRepository
		ContractRepository() ports.ContractRepository
	}

	ReadUoWFactory interface {
		Create() ReadUoW
	}

	Metrics interface {
		CascadeStarted()
		NotificationSent(tier int)
		NotificationFailed(tier int)
	}
)

// Config controls cascade pacing and search radii.
type Config struct {
	TierTimeout      time.Duration
	SendInterval     time.Duration
	SendTimeout      time.Duration
	DefaultRadiusKm  float64
	ExtendedRadiusKm float64
}

func DefaultConfig() Config {
	return Config{
		TierTimeout:      2 * time.Minute,
		SendInterval:     5 * time.Second,
		SendTimeout:      10 * time.Second,
		DefaultRadiusKm:  services.DefaultSearchRadiusKm,
		ExtendedRadiusKm: services.ExtendedSearchRadiusKm,
	}
}

type cascade struct {
	cancel context.CancelFunc
}

// Coordinator runs one escalation cascade per pending delivery. Each cascade is a
// goroutine parked on timers between sends and tiers, so it costs no OS thread
// while waiting. Start and Stop are safe for concurrent use.
//
// Example:
//
//	coordinator := dispatch.NewCoordinator(uowFactory, gateway, taskStore, metrics, dispatch.DefaultConfig(), logger)
//	coordinator.Start(deliveryID)      // after the delivery is committed as PENDING
//	coordinator.Stop(deliveryID)       // after a courier accepted or the delivery was cancelled
//	defer coordinator.Shutdown(ctx)
type Coordinator struct {
	uowFactory ReadUoWFactory
	gateway    ports.NotificationGateway
	tasks      ports.DispatchTaskStore
	metrics    Metrics
	matcher    services.GeoMatcher
	cfg        Config
	logger     *slog.Logger
	now        func() time.Time

	root   context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	running map[kernel.UUID]*cascade
	wg      sync.WaitGroup
}

func NewCoordinator(
	uowFactory ReadUoWFactory,
	gateway ports.NotificationGateway,
	tasks ports.DispatchTaskStore,
	metrics Metrics,
	cfg Config,
	logger *slog.Logger,
) *Coordinator {
	root, cancel := context.WithCancel(context.Background())
	return &Coordinator{
		uowFactory: uowFactory,
		gateway:    gateway,
		tasks:      tasks,
		metrics:    metrics,
		matcher:    services.NewGeoMatcher(),
		cfg:        cfg,
		logger:     logger.With("component", "dispatch_coordinator"),
		now:        time.Now,
		root:       root,
		cancel:     cancel,
		running:    make(map[kernel.UUID]*cascade),
	}
}

// Start launches a cascade for the delivery, replacing any cascade already
// running for it.
func (c *Coordinator) Start(deliveryID kernel.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.root.Err() != nil {
		c.logger.Warn("Dispatch start ignored", "delivery_id", deliveryID.String(), "error", ErrCoordinatorClosed)
		return
	}

	if previous, ok := c.running[deliveryID]; ok {
		previous.cancel()
	}

	ctx, cancel := context.WithCancel(c.root)
	current := &cascade{cancel: cancel}
	c.running[deliveryID] = current
	c.metrics.CascadeStarted()

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		defer cancel()

		err := c.Run(ctx, deliveryID)
		switch {
		case errors.Is(err, context.Canceled):
			c.logger.Info("Dispatch cascade cancelled", "delivery_id", deliveryID.String())
		case err != nil:
			c.logger.Error("Dispatch cascade failed", "delivery_id", deliveryID.String(), "error", err)
		}

		c.mu.Lock()
		if c.running[deliveryID] == current {
			delete(c.running, deliveryID)
		}
		c.mu.Unlock()
	}()
}

// Stop cancels the running cascade of the delivery, if any.
func (c *Coordinator) Stop(deliveryID kernel.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if current, ok := c.running[deliveryID]; ok {
		current.cancel()
		delete(c.running, deliveryID)
	}
}

func (c *Coordinator) Running(deliveryID kernel.UUID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.running[deliveryID]
	return ok
}

// Shutdown cancels every cascade and waits for them to exit or for ctx to end.
func (c *Coordinator) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	c.cancel()
	c.mu.Unlock()

	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run executes the cascade for one delivery in the calling goroutine. It returns
// nil when the cascade ends on its own (exhausted or silenced by a state change)
// and ctx.Err() when cancelled.
func (c *Coordinator) Run(ctx context.Context, deliveryID kernel.UUID) error {
	uow := c.uowFactory.Create()
	logger := c.logger.With("delivery_id", deliveryID.String())

	d, err := uow.DeliveryRepository().Get(ctx, deliveryID)
	if err != nil {
		return err
	}

	task, err := c.tasks.Update(ctx, deliveryID, func(t *ports.DispatchTask) {
		t.DeliveryID = deliveryID.String()
		t.Attempt++
		t.Tier = 0
		t.State = ports.DispatchRunning
		t.NotifiedCourierIDs = nil
		t.StartedAt = c.now().UTC()
		t.UpdatedAt = t.StartedAt
	})
	if err != nil {
		return err
	}
	attempt := task.Attempt

	state, err := c.cascadeTiers(ctx, uow, d, attempt, logger)
	if ctx.Err() != nil {
		c.finish(deliveryID, attempt, ports.DispatchCancelled)
		return ctx.Err()
	}
	if err != nil {
		c.finish(deliveryID, attempt, ports.DispatchCancelled)
		return err
	}

	c.finish(deliveryID, attempt, state)
	logger.Info("Dispatch cascade finished", "state", string(state), "attempt", attempt)
	return nil
}

func (c *Coordinator) cascadeTiers(
	ctx context.Context,
	uow ReadUoW,
	d *delivery.Delivery,
	attempt int,
	logger *slog.Logger,
) (ports.DispatchState, error) {
	for tier := TierPrimary; tier <= TierOpen; tier++ {
		pending, err := c.stillPending(ctx, uow, d.ID(), logger)
		if err != nil {
			return "", err
		}
		if !pending {
			return ports.DispatchSilenced, nil
		}

		if _, err = c.tasks.Update(ctx, d.ID(), func(t *ports.DispatchTask) {
			if t.Attempt == attempt {
				t.Tier = tier
				t.UpdatedAt = c.now().UTC()
			}
		}); err != nil {
			return "", err
		}

		candidates, err := c.tierCandidates(ctx, uow, d, tier)
		if err != nil {
			return "", err
		}
		if len(candidates) == 0 {
			logger.Info("No candidates in tier, escalating", "tier", tier)
			continue
		}

		silenced, err := c.notifyTier(ctx, uow, d, tier, attempt, candidates, logger)
		if err != nil {
			return "", err
		}
		if silenced {
			return ports.DispatchSilenced, nil
		}

		if tier < TierOpen {
			if err = sleep(ctx, c.cfg.TierTimeout); err != nil {
				return "", err
			}
		}
	}
	return ports.DispatchExhausted, nil
}

// tierCandidates resolves the courier pool of a tier and matches it around the
// pickup point, trying the default radius before the extended one.
func (c *Coordinator) tierCandidates(
	ctx context.Context,
	uow ReadUoW,
	d *delivery.Delivery,
	tier int,
) ([]services.Candidate, error) {
	allowed, err := c.allowedCouriers(ctx, uow, d.ClientID(), tier)
	if err != nil {
		return nil, err
	}
	if allowed != nil && len(allowed) == 0 {
		return nil, nil
	}

	origin := d.Route().Origin()
	pool, err := uow.CourierRepository().GetAvailableWithin(ctx, origin, c.cfg.ExtendedRadiusKm)
	if err != nil {
		return nil, err
	}

	return c.matcher.FindWithinRadii(origin, pool, allowed, c.cfg.DefaultRadiusKm, c.cfg.ExtendedRadiusKm)
}

// allowedCouriers returns nil for the open tier, meaning no restriction.
func (c *Coordinator) allowedCouriers(
	ctx context.Context,
	uow ReadUoW,
	clientID kernel.UUID,
	tier int,
) (services.IDSet, error) {
	var organizations []kernel.UUID

	switch tier {
	case TierPrimary:
		primary, err := uow.ContractRepository().GetPrimaryActive(ctx, clientID)
		if errors.Is(err, errs.ErrObjectNotFound) {
			return services.NewIDSet(), nil
		}
		if err != nil {
			return nil, err
		}
		organizations = []kernel.UUID{primary.OrganizationID()}
	case TierSecondary:
		secondary, err := uow.ContractRepository().GetActiveSecondary(ctx, clientID)
		if err != nil {
			return nil, err
		}
		organizations = contract.OrganizationIDs(secondary)
	default:
		return nil, nil
	}

	if len(organizations) == 0 {
		return services.NewIDSet(), nil
	}

	ids, err := uow.CourierRepository().GetActiveEmployeeIDs(ctx, organizations)
	if err != nil {
		return nil, err
	}
	return services.NewIDSet(ids...), nil
}

// notifyTier sends invitations one by one, closest courier first. It reports
// silenced=true as soon as the delivery is observed outside PENDING.
func (c *Coordinator) notifyTier(
	ctx context.Context,
	uow ReadUoW,
	d *delivery.Delivery,
	tier, attempt int,
	candidates []services.Candidate,
	logger *slog.Logger,
) (bool, error) {
	sent, attempted := 0, 0
	for _, candidate := range candidates {
		courier := candidate.Courier
		if courier.PushToken() == "" {
			logger.Debug("Courier has no push token, skipping", "tier", tier, "courier_id", courier.ID().String())
			continue
		}

		// SendInterval paces gateway calls, skipped couriers do not count.
		if attempted > 0 {
			if err := sleep(ctx, c.cfg.SendInterval); err != nil {
				return false, err
			}
		}

		pending, err := c.stillPending(ctx, uow, d.ID(), logger)
		if err != nil {
			return false, err
		}
		if !pending {
			logger.Info("Delivery left PENDING, stopping notifications",
				"tier", tier, "sent", sent, "candidates", len(candidates))
			return true, nil
		}

		attempted++
		sendCtx, cancel := context.WithTimeout(ctx, c.cfg.SendTimeout)
		err = c.gateway.Send(sendCtx, c.invitation(d, tier, courier.ID().String(), courier.PushToken()))
		cancel()
		if err != nil {
			if ctx.Err() != nil {
				return false, ctx.Err()
			}
			c.metrics.NotificationFailed(tier)
			logger.Warn("Notification failed",
				"tier", tier, "error", errs.NewNotificationDeliveryError(courier.ID().String(), err))
			continue
		}

		sent++
		c.metrics.NotificationSent(tier)
		courierID := courier.ID().String()
		if _, err = c.tasks.Update(ctx, d.ID(), func(t *ports.DispatchTask) {
			if t.Attempt == attempt {
				t.NotifiedCourierIDs = append(t.NotifiedCourierIDs, courierID)
				t.UpdatedAt = c.now().UTC()
			}
		}); err != nil {
			return false, err
		}
		logger.Debug("Courier notified",
			"tier", tier, "courier_id", courierID, "distance_km", candidate.DistanceKm)
	}

	logger.Info("Tier notified", "tier", tier, "sent", sent, "candidates", len(candidates))
	return false, nil
}

// stillPending treats read failures as "not pending" so a flaky store stops the
// cascade instead of spamming couriers.
func (c *Coordinator) stillPending(
	ctx context.Context,
	uow ReadUoW,
	deliveryID kernel.UUID,
	logger *slog.Logger,
) (bool, error) {
	d, err := uow.DeliveryRepository().Get(ctx, deliveryID)
	if ctx.Err() != nil {
		return false, ctx.Err()
	}
	if err != nil {
		logger.Error("Failed to re-check delivery status", "error", err)
		return false, nil
	}
	return d.Status() == delivery.Pending, nil
}

func (c *Coordinator) finish(deliveryID kernel.UUID, attempt int, state ports.DispatchState) {
	ctx, cancel := context.WithTimeout(context.Background(), c.cfg.SendTimeout)
	defer cancel()

	_, err := c.tasks.Update(ctx, deliveryID, func(t *ports.DispatchTask) {
		if t.Attempt == attempt {
			t.State = state
			t.UpdatedAt = c.now().UTC()
		}
	})
	if err != nil {
		c.logger.Error("Failed to record dispatch state",
			"delivery_id", deliveryID.String(), "state", string(state), "error", err)
	}
}

func (c *Coordinator) invitation(d *delivery.Delivery, tier int, recipientID, pushToken string) ports.Notification {
	title := "New delivery available"
	if d.Type() == delivery.TypeRide {
		title = "New ride available"
	}

	route := d.Route()
	return ports.Notification{
		RecipientID: recipientID,
		PushToken:   pushToken,
		Title:       title,
		Body: fmt.Sprintf("%s -> %s (%.1f km)",
			route.OriginAddress(), route.DestinationAddress(), d.DistanceKm()),
		Data: map[string]string{
			"type":            NotificationType,
			"deliveryId":      d.ID().String(),
			"tier":            strconv.Itoa(tier),
			"pickupAddress":   route.OriginAddress(),
			"dropoffAddress":  route.DestinationAddress(),
			"pickupLatitude":  strconv.FormatFloat(route.Origin().Latitude(), 'f', -1, 64),
			"pickupLongitude": strconv.FormatFloat(route.Origin().Longitude(), 'f', -1, 64),
			"totalAmount":     strconv.FormatInt(d.TotalAmount(), 10),
			"distanceKm":      strconv.FormatFloat(d.DistanceKm(), 'f', 2, 64),
		},
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
