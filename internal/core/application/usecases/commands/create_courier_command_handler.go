package commands

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/courier"
)

// CreateCourierCommandHandler registers a courier. New couriers start OFFLINE
// and become visible to dispatch once they report themselves AVAILABLE.
type CreateCourierCommandHandler struct {
	uowFactory CourierUoWFactory
	now        func() time.Time
}

func NewCreateCourierCommandHandler(uowFactory CourierUoWFactory) CreateCourierCommandHandler {
	return CreateCourierCommandHandler{
		uowFactory: uowFactory,
		now:        time.Now,
	}
}

func (h *CreateCourierCommandHandler) Handle(ctx context.Context, cmd CreateCourierCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	profile, err := courier.NewCourier(cmd.CourierID(), cmd.Name(), cmd.Location(), courier.Offline)
	if err != nil {
		return err
	}
	if cmd.PushToken() != "" {
		profile.ChangePushToken(cmd.PushToken())
	}
	if orgID := cmd.OrganizationID(); orgID != nil {
		if err = profile.LinkToOrganization(*orgID, h.now()); err != nil {
			return err
		}
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.CourierRepository().Add(ctx, profile); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
