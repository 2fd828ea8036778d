package services

import (
	"errors"
	"fmt"
	"slices"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/warehouse"
)

var (
	// ErrInsufficientTotalStock is returned when the combined stock of all
	// provided warehouses cannot cover the requested quantity. Any partial
	// reservations made during the attempt are rolled back before returning,
	// so the ledgers are left exactly as they were.
	ErrInsufficientTotalStock = errors.New("insufficient stock across all warehouses")

	// ErrWarehouseNotFound is returned when a reservation receipt references a
	// warehouse that is not among the provided ones.
	ErrWarehouseNotFound = errors.New("warehouse not found")
)

// InventoryAllocator is a domain service that satisfies product demand across
// multiple warehouses and undoes reservations when orders fail or are
// cancelled.
//
// Key responsibilities:
//   - Reserving a quantity of one product greedily across warehouses
//   - Rolling back partial reservations when total stock falls short
//   - Releasing reservation receipts back to the warehouses they debited
//
// Business rules:
//   - Warehouses are drained in priority order (lower priority value first)
//   - Reservation is all-or-nothing: a shortfall restores every ledger
//   - Release credits exactly the warehouses a receipt names, by exactly
//     the amounts it names
//
// Example usage:
//
//	allocator := NewInventoryAllocator()
//	receipt, err := allocator.Reserve(productID, 7, warehouses)
//	if errors.Is(err, ErrInsufficientTotalStock) {
//	    // Demand cannot be met; no ledger was changed
//	    return
//	}
//	// ... later, on cancellation:
//	err = allocator.Release(receipt, warehouses)
type InventoryAllocator struct{}

// NewInventoryAllocator creates a new InventoryAllocator instance.
//
// Returns:
//   - InventoryAllocator: A new instance ready for reservation operations
func NewInventoryAllocator() InventoryAllocator {
	return InventoryAllocator{}
}

// Reserve takes quantity units of a product from the given warehouses,
// visiting them in priority order and draining each as far as it can before
// moving to the next.
//
// Parameters:
//   - productID: The product to reserve (must be valid UUID)
//   - quantity: Total units required (must be > 0)
//   - warehouses: The candidate warehouses (each must be valid)
//
// Returns:
//   - warehouse.Reservation: A receipt recording which warehouses were
//     debited by how much
//   - error: ErrInsufficientTotalStock when combined stock cannot cover the
//     demand (all partial debits are rolled back first), or validation errors
//
// Warehouses with equal priority keep their relative input order. Each
// warehouse's check-and-decrement is atomic, but the pass over several
// warehouses is not one transaction: a concurrent reservation may win units
// in a warehouse this pass has not reached yet.
func (a InventoryAllocator) Reserve(
	productID kernel.UUID, quantity int, warehouses []*warehouse.Warehouse,
) (warehouse.Reservation, error) {
	if err := productID.Validate(); err != nil {
		return warehouse.Reservation{}, err
	}

	if quantity <= 0 {
		return warehouse.Reservation{}, fmt.Errorf("quantity %d is not greater than 0: %w",
			quantity, ErrInsufficientTotalStock)
	}

	ordered, err := a.sortByPriority(warehouses)
	if err != nil {
		return warehouse.Reservation{}, err
	}

	var lines []warehouse.ReservationLine
	remaining := quantity

	for _, w := range ordered {
		if remaining == 0 {
			break
		}

		taken, reserveErr := w.ReserveUpTo(productID, remaining)
		if reserveErr != nil {
			return warehouse.Reservation{}, errors.Join(reserveErr, a.rollback(productID, lines, ordered))
		}
		if taken == 0 {
			continue
		}

		line, lineErr := warehouse.NewReservationLine(w.ID(), taken)
		if lineErr != nil {
			return warehouse.Reservation{}, errors.Join(lineErr, a.rollback(productID, lines, ordered))
		}

		lines = append(lines, line)
		remaining -= taken
	}

	if remaining > 0 {
		if rollbackErr := a.rollback(productID, lines, ordered); rollbackErr != nil {
			return warehouse.Reservation{}, errors.Join(ErrInsufficientTotalStock, rollbackErr)
		}
		return warehouse.Reservation{}, ErrInsufficientTotalStock
	}

	return warehouse.NewReservation(productID, quantity, lines)
}

// Release credits the warehouses named in a reservation receipt by the
// amounts the receipt records, restoring the stock the reservation took.
//
// Parameters:
//   - reservation: The receipt to undo (must be valid)
//   - warehouses: The warehouses to credit; must include every warehouse the
//     receipt names
//
// Returns:
//   - error: ErrWarehouseNotFound when a receipt line references a warehouse
//     not present in the slice, or validation errors
func (a InventoryAllocator) Release(
	reservation warehouse.Reservation, warehouses []*warehouse.Warehouse,
) error {
	if err := reservation.Validate(); err != nil {
		return err
	}

	byID := make(map[kernel.UUID]*warehouse.Warehouse, len(warehouses))
	for _, w := range warehouses {
		if err := w.Validate(); err != nil {
			return err
		}
		byID[w.ID()] = w
	}

	for _, line := range reservation.Lines() {
		w, ok := byID[line.WarehouseID()]
		if !ok {
			return fmt.Errorf("warehouse %s: %w", line.WarehouseID().String(), ErrWarehouseNotFound)
		}

		if err := w.Release(reservation.ProductID(), line.Quantity()); err != nil {
			return err
		}
	}

	return nil
}

// TotalStock sums the available quantity of a product across the given
// warehouses. The read is side-effect free; with concurrent reservations the
// sum is a point-in-time aggregate, not a guarantee of what Reserve can take.
func (a InventoryAllocator) TotalStock(
	productID kernel.UUID, warehouses []*warehouse.Warehouse,
) (int, error) {
	if err := productID.Validate(); err != nil {
		return 0, err
	}

	total := 0
	for _, w := range warehouses {
		if err := w.Validate(); err != nil {
			return 0, err
		}
		total += w.StockOf(productID)
	}

	return total, nil
}

// sortByPriority validates the warehouses and returns them ordered by
// ascending priority, keeping the relative input order for equal priorities.
// The input slice is not modified.
func (a InventoryAllocator) sortByPriority(
	warehouses []*warehouse.Warehouse,
) ([]*warehouse.Warehouse, error) {
	ordered := make([]*warehouse.Warehouse, len(warehouses))
	copy(ordered, warehouses)

	for _, w := range ordered {
		if err := w.Validate(); err != nil {
			return nil, err
		}
	}

	slices.SortStableFunc(ordered, func(a, b *warehouse.Warehouse) int {
		return a.Priority() - b.Priority()
	})
	return ordered, nil
}

// rollback undoes the partial debits of a failed reservation pass, crediting
// the warehouses in reverse order of how they were drained.
func (a InventoryAllocator) rollback(
	productID kernel.UUID, lines []warehouse.ReservationLine, warehouses []*warehouse.Warehouse,
) error {
	byID := make(map[kernel.UUID]*warehouse.Warehouse, len(warehouses))
	for _, w := range warehouses {
		byID[w.ID()] = w
	}

	var errsJoined error
	for i := len(lines) - 1; i >= 0; i-- {
		line := lines[i]
		w, ok := byID[line.WarehouseID()]
		if !ok {
			errsJoined = errors.Join(errsJoined,
				fmt.Errorf("warehouse %s: %w", line.WarehouseID().String(), ErrWarehouseNotFound))
			continue
		}

		if err := w.Release(productID, line.Quantity()); err != nil {
			errsJoined = errors.Join(errsJoined, err)
		}
	}

	return errsJoined
}
