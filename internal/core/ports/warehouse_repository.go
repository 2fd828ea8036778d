package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/warehouse"
)

// WarehouseRepository defines the persistence contract for warehouse
// aggregates. Provides methods for storing, retrieving, and listing
// warehouses with their complete stock ledgers.
type WarehouseRepository interface {
	// Add persists a new warehouse aggregate to storage.
	// The warehouse must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *warehouse.Warehouse) error

	// Update persists changes to an existing warehouse aggregate,
	// including its full stock ledger.
	Update(ctx context.Context, aggregate *warehouse.Warehouse) error

	// Get retrieves a warehouse aggregate by its unique identifier.
	// Returns the complete warehouse with its stock ledger rehydrated.
	Get(ctx context.Context, id kernel.UUID) (*warehouse.Warehouse, error)

	// GetAll retrieves every warehouse ordered by ascending allocation
	// priority. The allocator drains warehouses in exactly this order.
	GetAll(ctx context.Context) ([]*warehouse.Warehouse, error)
}
