package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrGetOrdersInDeliveryQueryIsNotConstructed = errors.New(
	"GetOrdersInDeliveryQuery must be created via NewGetOrdersInDeliveryQuery constructor",
)

// GetOrdersInDeliveryQuery retrieves all orders currently out with a courier,
// together with the tracking number the courier issued. Feeds the tracking
// job that polls the courier for delivery progress.
type GetOrdersInDeliveryQuery struct {
	guard guard.ConstructorGuard
}

// NewGetOrdersInDeliveryQuery creates a query to retrieve orders in delivery.
// This is a parameterless query.
func NewGetOrdersInDeliveryQuery() GetOrdersInDeliveryQuery {
	return GetOrdersInDeliveryQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrdersInDeliveryQueryIsNotConstructed if validation fails.
func (q GetOrdersInDeliveryQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersInDeliveryQueryIsNotConstructed)
}

// GetOrdersInDeliveryQueryResponse represents one order out for delivery.
type GetOrdersInDeliveryQueryResponse struct {
	ID             kernel.UUID
	TrackingNumber string
}
