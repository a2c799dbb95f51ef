package commands

import (
	"context"
)

type RegisterPushTokenCommandHandler struct {
	uowFactory CourierUoWFactory
}

func NewRegisterPushTokenCommandHandler(uowFactory CourierUoWFactory) RegisterPushTokenCommandHandler {
	return RegisterPushTokenCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h *RegisterPushTokenCommandHandler) Handle(ctx context.Context, cmd RegisterPushTokenCommand) error {
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

	courierEntity.ChangePushToken(cmd.Token())

	if err = updateCourier(ctx, courierRepo, courierEntity, "register push token"); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
