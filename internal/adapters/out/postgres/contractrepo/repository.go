package contractrepo

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/contract"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormContractRepository implements ports.ContractRepository using GORM.
type GormContractRepository struct {
	db *gorm.DB
}

func NewGormContractRepository(db *gorm.DB) *GormContractRepository {
	return &GormContractRepository{db: db}
}

func (r *GormContractRepository) Add(ctx context.Context, aggregate *contract.ClientContract) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

func (r *GormContractRepository) GetPrimaryActive(
	ctx context.Context,
	clientID kernel.UUID,
) (*contract.ClientContract, error) {
	if err := clientID.Validate(); err != nil {
		return nil, err
	}

	var dto ClientContractDTO
	err := r.db.WithContext(ctx).
		Where("client_id = ? AND is_primary = ? AND status = ?", clientID.Google(), true, string(contract.StatusActive)).
		Order("id").
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("primary contract of client", clientID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormContractRepository) GetActiveSecondary(
	ctx context.Context,
	clientID kernel.UUID,
) ([]*contract.ClientContract, error) {
	if err := clientID.Validate(); err != nil {
		return nil, err
	}

	var dtos []ClientContractDTO
	if err := r.db.WithContext(ctx).
		Where("client_id = ? AND is_primary = ? AND status = ?", clientID.Google(), false, string(contract.StatusActive)).
		Order("id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	contracts := make([]*contract.ClientContract, 0, len(dtos))
	for _, dto := range dtos {
		c, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		contracts = append(contracts, c)
	}
	return contracts, nil
}
