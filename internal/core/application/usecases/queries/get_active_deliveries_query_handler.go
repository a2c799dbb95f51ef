package queries

import (
	"context"

	"marketplace/internal/core/domain/model/delivery"

	"gorm.io/gorm"
)

// GetActiveDeliveriesQueryHandler lists non-terminal deliveries, oldest first.
type GetActiveDeliveriesQueryHandler struct {
	db *gorm.DB
}

func NewGetActiveDeliveriesQueryHandler(db *gorm.DB) GetActiveDeliveriesQueryHandler {
	return GetActiveDeliveriesQueryHandler{db: db}
}

func (h GetActiveDeliveriesQueryHandler) Handle(
	ctx context.Context,
	query GetActiveDeliveriesQuery,
) ([]DeliveryView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	stmt := `SELECT ` + deliveryViewColumns + `
		FROM deliveries
		WHERE status NOT IN (?, ?)`
	args := []any{delivery.Completed.String(), delivery.Cancelled.String()}
	if courierID := query.CourierID(); courierID != nil {
		stmt += ` AND courier_id = ?`
		args = append(args, courierID.Google())
	}
	stmt += ` ORDER BY created_at, id`

	rows, err := h.db.WithContext(ctx).Raw(stmt, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	views := make([]DeliveryView, 0)
	for rows.Next() {
		view, scanErr := scanDeliveryView(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		views = append(views, view)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return views, nil
}
