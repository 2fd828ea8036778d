package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrdersInDeliveryQueryHandler retrieves orders that are out with a
// courier, joined with the tracking number of their delivery.
type GetOrdersInDeliveryQueryHandler struct {
	db *gorm.DB
}

// NewGetOrdersInDeliveryQueryHandler creates a handler for in-delivery order queries.
// Requires a GORM database connection for query execution.
func NewGetOrdersInDeliveryQueryHandler(db *gorm.DB) GetOrdersInDeliveryQueryHandler {
	return GetOrdersInDeliveryQueryHandler{db: db}
}

// Handle executes the query to retrieve all orders in delivery.
// Results are sorted by order ID for consistent output.
func (h GetOrdersInDeliveryQueryHandler) Handle(
	ctx context.Context,
	query GetOrdersInDeliveryQuery,
) ([]GetOrdersInDeliveryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetOrdersInDeliveryQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			orders.id,
			deliveries.tracking_number
		FROM orders
		JOIN deliveries ON deliveries.order_id = orders.id
		WHERE orders.status = ?
		ORDER BY orders.id
	`, order.InDelivery).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id             uuid.UUID
			trackingNumber string
		)

		if err = rows.Scan(&id, &trackingNumber); err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}

		orders = append(orders, GetOrdersInDeliveryQueryResponse{
			ID:             orderID,
			TrackingNumber: trackingNumber,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
