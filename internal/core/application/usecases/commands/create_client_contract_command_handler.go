package commands

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/contract"
	"marketplace/internal/pkg/errs"
)

// CreateClientContractCommandHandler stores an ACTIVE contract. A client may
// hold only one primary active contract.
type CreateClientContractCommandHandler struct {
	uowFactory ContractUoWFactory
}

func NewCreateClientContractCommandHandler(uowFactory ContractUoWFactory) CreateClientContractCommandHandler {
	return CreateClientContractCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h *CreateClientContractCommandHandler) Handle(ctx context.Context, cmd CreateClientContractCommand) error {
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

	contractRepo := uow.ContractRepository()

	if cmd.Primary() {
		existing, err := contractRepo.GetPrimaryActive(ctx, cmd.ClientID())
		switch {
		case err == nil:
			return errs.NewInvalidStateErrorWithReason("create primary contract", string(existing.Status()),
				"client already has primary contract "+existing.ID().String())
		case !errors.Is(err, errs.ErrObjectNotFound):
			return err
		}
	}

	contractEntity, err := contract.NewClientContract(
		cmd.ContractID(), cmd.ClientID(), cmd.OrganizationID(), cmd.Primary(), contract.StatusActive,
	)
	if err != nil {
		return err
	}

	if err = contractRepo.Add(ctx, contractEntity); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
