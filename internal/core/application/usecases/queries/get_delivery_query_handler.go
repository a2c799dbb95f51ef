package queries

import (
	"context"
	"database/sql"
	"errors"

	"marketplace/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetDeliveryQueryHandler reads a delivery straight from the deliveries table.
type GetDeliveryQueryHandler struct {
	db *gorm.DB
}

func NewGetDeliveryQueryHandler(db *gorm.DB) GetDeliveryQueryHandler {
	return GetDeliveryQueryHandler{db: db}
}

// Handle returns errs.ObjectNotFoundError when the delivery does not exist.
func (h GetDeliveryQueryHandler) Handle(ctx context.Context, query GetDeliveryQuery) (DeliveryView, error) {
	if err := query.Validate(); err != nil {
		return DeliveryView{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT `+deliveryViewColumns+`
		FROM deliveries
		WHERE id = ?
	`, query.DeliveryID().Google()).Row()

	view, err := scanDeliveryView(row)
	if errors.Is(err, sql.ErrNoRows) {
		return DeliveryView{}, errs.NewObjectNotFoundError("delivery", query.DeliveryID().String())
	}
	return view, err
}
