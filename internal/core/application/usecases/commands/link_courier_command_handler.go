package commands

import (
	"context"
	"time"
)

// LinkCourierCommandHandler activates or deactivates an employment link.
//
// Example:
//
//	cmd, _ := NewLinkCourierCommand(courierID, organizationID, true)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to link courier: %w", err)
//	}
type LinkCourierCommandHandler struct {
	uowFactory CourierUoWFactory
}

func NewLinkCourierCommandHandler(uowFactory CourierUoWFactory) LinkCourierCommandHandler {
	return LinkCourierCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h *LinkCourierCommandHandler) Handle(ctx context.Context, cmd LinkCourierCommand) error {
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

	if cmd.Active() {
		err = courierEntity.LinkToOrganization(cmd.OrganizationID(), time.Now())
	} else {
		err = courierEntity.UnlinkFromOrganization(cmd.OrganizationID())
	}
	if err != nil {
		return err
	}

	if err = updateCourier(ctx, courierRepo, courierEntity, "link courier"); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
