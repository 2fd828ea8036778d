package warehouse

import (
	"errors"
	"fmt"
	"sync"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	// ErrInsufficientStock indicates that a reservation asked for more units
	// of a product than the warehouse currently has available. The ledger is
	// left untouched when this error is returned.
	ErrInsufficientStock = errors.New("insufficient stock in warehouse")

	// ErrWarehouseIsNotConstructed is returned when a Warehouse instance was not
	// created through the NewWarehouse or RestoreWarehouse constructors.
	ErrWarehouseIsNotConstructed = errors.New("Warehouse must be created via NewWarehouse constructor")
)

// Warehouse is the stock ledger for a single fulfillment location. It maps
// product identifiers to the quantity currently available for reservation.
//
// Warehouse follows these invariants:
//   - Available quantity is never negative
//   - Stock is mutated only through Replenish, Reserve, ReserveUpTo and Release
//   - The check-and-decrement performed by a reservation is atomic: no
//     concurrent reservation observes a stale count
//
// All stock operations take the warehouse's internal lock, so a single
// Warehouse value is safe for concurrent use. The allocator never holds one
// warehouse's lock while touching another, so there is no lock ordering to
// get wrong.
type Warehouse struct {
	// id is the unique identifier for the warehouse
	id kernel.UUID

	// name is the human-readable location label
	name string

	// priority defines the allocation order among warehouses (lower is drawn from first)
	priority int

	// stock maps productID -> available quantity
	stock map[kernel.UUID]int

	// mu guards stock against concurrent reservations
	mu sync.Mutex

	// guard ensures the warehouse was properly constructed
	guard guard.ConstructorGuard
}

// NewWarehouse creates an empty Warehouse with the given identity, location
// label and allocation priority.
//
// Parameters:
//   - id: Unique identifier for the warehouse (must be valid UUID)
//   - name: Human-readable location label (must not be empty)
//   - priority: Allocation priority (must be >= 0; lower values are drawn from first)
//
// Returns:
//   - *Warehouse: The created warehouse with an empty ledger
//   - error: Validation error if any parameter is invalid
func NewWarehouse(id kernel.UUID, name string, priority int) (*Warehouse, error) {
	w := &Warehouse{
		stock: make(map[kernel.UUID]int),
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		w.setID(id),
		w.setName(name),
		w.setPriority(priority),
	); err != nil {
		return nil, err
	}

	return w, nil
}

// RestoreWarehouse reconstructs a Warehouse from persistent storage,
// including its stock ledger. The restored warehouse behaves identically to
// one built up through normal domain operations.
//
// The stock map is copied; the caller keeps ownership of the argument.
// Every quantity must be non-negative and every product ID valid.
func RestoreWarehouse(id kernel.UUID, name string, priority int, stock map[kernel.UUID]int) (*Warehouse, error) {
	w, err := NewWarehouse(id, name, priority)
	if err != nil {
		return nil, err
	}

	for productID, quantity := range stock {
		if err = w.Replenish(productID, quantity); err != nil {
			return nil, err
		}
	}

	return w, nil
}

// Validate ensures the Warehouse instance was properly constructed.
func (w *Warehouse) Validate() error {
	if w == nil {
		return ErrWarehouseIsNotConstructed
	}
	return w.guard.Validate(ErrWarehouseIsNotConstructed)
}

// IsEqual compares two warehouses by their unique identifiers.
func (w *Warehouse) IsEqual(other *Warehouse) bool {
	return other != nil && w.id.IsEqual(other.id)
}

// ID returns the warehouse's unique identifier.
func (w *Warehouse) ID() kernel.UUID {
	return w.id
}

// Name returns the human-readable location label.
func (w *Warehouse) Name() string {
	return w.name
}

// Priority returns the allocation priority of the warehouse.
// Lower values are drawn from first when demand spans several warehouses.
func (w *Warehouse) Priority() int {
	return w.priority
}

// StockOf returns the quantity currently available for the given product.
// Unknown products report zero. The read is side-effect free.
func (w *Warehouse) StockOf(productID kernel.UUID) int {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.stock[productID]
}

// Stock returns a snapshot copy of the full ledger, used when persisting the
// aggregate. Mutating the returned map does not affect the warehouse.
func (w *Warehouse) Stock() map[kernel.UUID]int {
	w.mu.Lock()
	defer w.mu.Unlock()

	snapshot := make(map[kernel.UUID]int, len(w.stock))
	for productID, quantity := range w.stock {
		snapshot[productID] = quantity
	}
	return snapshot
}

// Replenish increases the available quantity of a product, creating the
// ledger entry if the product is unknown. The quantity must be >= 0; a zero
// quantity is a no-op. There is no upper bound on stock.
func (w *Warehouse) Replenish(productID kernel.UUID, quantity int) error {
	if err := productID.Validate(); err != nil {
		return err
	}

	if quantity < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"quantity is invalid",
			fmt.Errorf("%d is not greater than or equal to 0", quantity),
		)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	w.stock[productID] += quantity
	return nil
}

// Reserve atomically decrements the available quantity of a product by
// exactly the requested amount. The check and the decrement happen under one
// lock: when current stock is below the request the ledger is left untouched
// and ErrInsufficientStock is returned.
//
// The quantity must be > 0.
func (w *Warehouse) Reserve(productID kernel.UUID, quantity int) error {
	if err := validateReservationQuantity(productID, quantity); err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stock[productID] < quantity {
		return ErrInsufficientStock
	}

	w.stock[productID] -= quantity
	return nil
}

// ReserveUpTo atomically takes min(available, limit) units of a product and
// returns how many were taken, possibly zero. Used by the allocator's greedy
// pass so that the observed availability and the decrement cannot be
// interleaved by a concurrent reservation.
//
// The limit must be > 0.
func (w *Warehouse) ReserveUpTo(productID kernel.UUID, limit int) (int, error) {
	if err := validateReservationQuantity(productID, limit); err != nil {
		return 0, err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	taken := min(w.stock[productID], limit)
	w.stock[productID] -= taken
	return taken, nil
}

// Release returns previously reserved units of a product to the ledger,
// undoing a reservation. The quantity must be > 0.
func (w *Warehouse) Release(productID kernel.UUID, quantity int) error {
	if err := validateReservationQuantity(productID, quantity); err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	w.stock[productID] += quantity
	return nil
}

func validateReservationQuantity(productID kernel.UUID, quantity int) error {
	if err := productID.Validate(); err != nil {
		return err
	}

	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"quantity is invalid",
			fmt.Errorf("%d is not greater than 0", quantity),
		)
	}

	return nil
}

func (w *Warehouse) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	w.id = id
	return nil
}

func (w *Warehouse) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name is required")
	}

	w.name = name
	return nil
}

func (w *Warehouse) setPriority(priority int) error {
	if priority < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"priority is invalid",
			fmt.Errorf("%d is not greater than or equal to 0", priority),
		)
	}

	w.priority = priority
	return nil
}
