package commands

import (
	"context"

	"marketplace/internal/core/domain/model/zone"
)

type CreateSpecialZoneCommandHandler struct {
	uowFactory ZoneUoWFactory
}

func NewCreateSpecialZoneCommandHandler(uowFactory ZoneUoWFactory) CreateSpecialZoneCommandHandler {
	return CreateSpecialZoneCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h *CreateSpecialZoneCommandHandler) Handle(ctx context.Context, cmd CreateSpecialZoneCommand) error {
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

	zoneEntity, err := zone.NewSpecialZone(
		cmd.ZoneID(), cmd.Name(), cmd.Center(), cmd.RadiusMeters(), cmd.Type(), true,
	)
	if err != nil {
		return err
	}

	if err = uow.SpecialZoneRepository().Add(ctx, zoneEntity); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
