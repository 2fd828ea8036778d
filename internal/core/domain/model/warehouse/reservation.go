package warehouse

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	// ErrReservationIsNotConstructed is returned when a Reservation was not
	// created through the NewReservation constructor.
	ErrReservationIsNotConstructed = errors.New(
		"Reservation must be created via NewReservation constructor")

	// ErrReservationLineIsNotConstructed is returned when a ReservationLine was
	// not created through the NewReservationLine constructor.
	ErrReservationLineIsNotConstructed = errors.New(
		"ReservationLine must be created via NewReservationLine constructor")

	// ErrReservationQuantityMismatch is returned when the line quantities of a
	// reservation do not sum to its total quantity.
	ErrReservationQuantityMismatch = errors.New(
		"reservation lines do not sum to the reserved quantity")
)

// ReservationLine records how many units of the reserved product were taken
// from one specific warehouse. It is an immutable value object.
type ReservationLine struct { //nolint:recvcheck //using for validation
	warehouseID kernel.UUID
	quantity    int
	guard       guard.ConstructorGuard
}

// NewReservationLine creates a line stating that quantity units were debited
// from the warehouse with the given ID. The quantity must be > 0.
func NewReservationLine(warehouseID kernel.UUID, quantity int) (ReservationLine, error) {
	line := ReservationLine{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		line.setWarehouseID(warehouseID),
		line.setQuantity(quantity),
	); err != nil {
		return ReservationLine{}, err
	}

	return line, nil
}

// Validate ensures the line was created through the constructor.
func (l ReservationLine) Validate() error {
	return l.guard.Validate(ErrReservationLineIsNotConstructed)
}

// WarehouseID returns the identifier of the debited warehouse.
func (l ReservationLine) WarehouseID() kernel.UUID {
	return l.warehouseID
}

// Quantity returns how many units were taken from the warehouse.
func (l ReservationLine) Quantity() int {
	return l.quantity
}

func (l *ReservationLine) setWarehouseID(warehouseID kernel.UUID) error {
	if err := warehouseID.Validate(); err != nil {
		return err
	}

	l.warehouseID = warehouseID
	return nil
}

func (l *ReservationLine) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"quantity is invalid",
			fmt.Errorf("%d is not greater than 0", quantity),
		)
	}

	l.quantity = quantity
	return nil
}

// Reservation is the receipt for a satisfied product demand: which product,
// how many units in total, and exactly which warehouses were debited by how
// much. Releasing a reservation credits the same warehouses by the same
// amounts, restoring the ledger symmetrically.
//
// Invariant: the line quantities always sum to the total quantity. The
// constructor rejects receipts that would not conserve stock.
type Reservation struct { //nolint:recvcheck //using for validation
	productID kernel.UUID
	quantity  int
	lines     []ReservationLine
	guard     guard.ConstructorGuard
}

// NewReservation creates a receipt for quantity units of the given product,
// drawn from the warehouses listed in lines.
//
// Parameters:
//   - productID: The reserved product (must be valid UUID)
//   - quantity: Total units reserved (must be > 0)
//   - lines: Per-warehouse debits (each valid, quantities summing to quantity)
//
// Returns:
//   - Reservation: The receipt if all validations pass
//   - error: Validation error, or ErrReservationQuantityMismatch when the
//     lines do not sum to the total
func NewReservation(productID kernel.UUID, quantity int, lines []ReservationLine) (Reservation, error) {
	reservation := Reservation{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		reservation.setProductID(productID),
		reservation.setQuantity(quantity),
		reservation.setLines(lines),
	); err != nil {
		return Reservation{}, err
	}

	total := 0
	for _, line := range reservation.lines {
		total += line.Quantity()
	}
	if total != reservation.quantity {
		return Reservation{}, ErrReservationQuantityMismatch
	}

	return reservation, nil
}

// Validate ensures the reservation was created through the constructor.
func (r Reservation) Validate() error {
	return r.guard.Validate(ErrReservationIsNotConstructed)
}

// ProductID returns the identifier of the reserved product.
func (r Reservation) ProductID() kernel.UUID {
	return r.productID
}

// Quantity returns the total number of units the receipt covers.
func (r Reservation) Quantity() int {
	return r.quantity
}

// Lines returns a copy of the per-warehouse debits.
func (r Reservation) Lines() []ReservationLine {
	lines := make([]ReservationLine, len(r.lines))
	copy(lines, r.lines)
	return lines
}

func (r *Reservation) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return err
	}

	r.productID = productID
	return nil
}

func (r *Reservation) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"quantity is invalid",
			fmt.Errorf("%d is not greater than 0", quantity),
		)
	}

	r.quantity = quantity
	return nil
}

func (r *Reservation) setLines(lines []ReservationLine) error {
	if len(lines) == 0 {
		return errs.NewValueIsRequiredError("lines are required")
	}

	for _, line := range lines {
		if err := line.Validate(); err != nil {
			return err
		}
	}

	r.lines = make([]ReservationLine, len(lines))
	copy(r.lines, lines)
	return nil
}
