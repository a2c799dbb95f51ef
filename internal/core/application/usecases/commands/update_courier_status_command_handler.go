package commands

import (
	"context"
)

// UpdateCourierStatusCommandHandler stores a courier's latest availability and
// location, which is what the dispatch cascade searches on.
type UpdateCourierStatusCommandHandler struct {
	uowFactory CourierUoWFactory
}

func NewUpdateCourierStatusCommandHandler(uowFactory CourierUoWFactory) UpdateCourierStatusCommandHandler {
	return UpdateCourierStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h *UpdateCourierStatusCommandHandler) Handle(ctx context.Context, cmd UpdateCourierStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	courierRepo := uow.CourierRepository()
	courierEntity, err := courierRepo.Get(ctx, cmd.CourierID())
	if err != nil {
		return err
	}

	if err = courierEntity.ChangeAvailability(cmd.Availability()); err != nil {
		return err
	}
	if err = courierEntity.MoveTo(cmd.Location()); err != nil {
		return err
	}

	if err = updateCourier(ctx, courierRepo, courierEntity, "update courier status"); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
