// Package contractrepo persists client contracts with logistics organizations.
package contractrepo

import (
	"marketplace/internal/core/domain/model/contract"
	"marketplace/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

type ClientContractDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	ClientID       uuid.UUID `gorm:"type:uuid;not null;index"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null"`
	Primary        bool      `gorm:"column:is_primary;not null"`
	Status         string    `gorm:"type:varchar(16);not null"`
}

func (ClientContractDTO) TableName() string {
	return "client_contracts"
}

func fromDomain(c *contract.ClientContract) ClientContractDTO {
	return ClientContractDTO{
		ID:             c.ID().Google(),
		ClientID:       c.ClientID().Google(),
		OrganizationID: c.OrganizationID().Google(),
		Primary:        c.IsPrimary(),
		Status:         string(c.Status()),
	}
}

func toDomain(dto ClientContractDTO) (*contract.ClientContract, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}
	clientID, err := kernel.UUIDFromGoogle(dto.ClientID)
	if err != nil {
		return nil, err
	}
	organizationID, err := kernel.UUIDFromGoogle(dto.OrganizationID)
	if err != nil {
		return nil, err
	}
	return contract.NewClientContract(id, clientID, organizationID, dto.Primary, contract.Status(dto.Status))
}
