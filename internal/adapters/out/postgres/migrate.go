package postgres

import (
	"marketplace/internal/adapters/out/postgres/contractrepo"
	"marketplace/internal/adapters/out/postgres/courierrepo"
	"marketplace/internal/adapters/out/postgres/deliveryrepo"
	"marketplace/internal/adapters/out/postgres/paymentrepo"
	"marketplace/internal/adapters/out/postgres/zonerepo"

	"gorm.io/gorm"
)

// Models lists every persisted DTO in dependency order.
func Models() []any {
	return []any{
		&deliveryrepo.DeliveryDTO{},
		&courierrepo.CourierDTO{},
		&courierrepo.EmploymentLinkDTO{},
		&contractrepo.ClientContractDTO{},
		&paymentrepo.PaymentDTO{},
		&paymentrepo.PaymentDeliveryDTO{},
		&zonerepo.SpecialZoneDTO{},
	}
}

// Migrate creates or alters the marketplace tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
