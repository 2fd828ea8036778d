// Package ports defines repository and external-service interfaces for the
// fulfillment domain. These interfaces establish contracts between the domain
// layer and infrastructure, enabling dependency inversion and testability.
package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Provides methods for storing, retrieving, and querying order entities with
// their items, attached payment and delivery, and held stock reservations.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// The order must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns the complete order with items, payment, delivery and
	// reservations rehydrated.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllInDeliveryStatus retrieves all orders currently out with a
	// courier. Used by the tracking job to poll courier status and complete
	// delivered orders.
	GetAllInDeliveryStatus(ctx context.Context) ([]*order.Order, error)
}
