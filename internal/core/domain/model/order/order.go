package order

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/payment"
	"fulfillment/internal/core/domain/model/warehouse"
	"fulfillment/internal/pkg/guard"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder factory method. This ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrItemsAreImmutable is returned when modifying the item list after the
	// order has left the Created status.
	ErrItemsAreImmutable = errors.New("items cannot change after the order left the Created status")

	// ErrNoItems is returned when an operation requires at least one line item.
	ErrNoItems = errors.New("order has no items")

	// ErrPaymentAlreadyAttached is returned when attaching a second payment.
	ErrPaymentAlreadyAttached = errors.New("order already has a payment")

	// ErrPaymentIsNotAttached is returned by operations that require a payment.
	ErrPaymentIsNotAttached = errors.New("order has no payment")

	// ErrPaymentAmountMismatch is returned when the payment amount does not
	// equal the order total.
	ErrPaymentAmountMismatch = errors.New("payment amount does not equal order total")

	// ErrPaymentIsNotCompleted is returned when shipping an order whose
	// payment has not been completed.
	ErrPaymentIsNotCompleted = errors.New("order payment is not completed")

	// ErrDeliveryAlreadyAttached is returned when attaching a second delivery.
	ErrDeliveryAlreadyAttached = errors.New("order already has a delivery")

	// ErrDeliveryIsNotAttached is returned by operations that require a delivery.
	ErrDeliveryIsNotAttached = errors.New("order has no delivery")

	// ErrReservationsIncomplete is returned when starting processing without a
	// reservation receipt for every line item.
	ErrReservationsIncomplete = errors.New("order does not hold a reservation for every item")
)

// Order represents a customer order in the fulfillment system. It is the
// aggregate root that manages the order lifecycle from creation through
// reservation, payment and shipment to delivery.
//
// Order follows these invariants:
//   - Must have a valid unique identifier and client reference
//   - Line items are immutable once the order leaves the Created status
//   - At most one Payment and one Delivery are ever attached
//   - An attached payment's amount equals the order total
//   - Status transitions follow the fulfillment workflow and are driven
//     only by the application's command handlers
//   - The order never enters InDelivery without a completed payment
//
// The Order struct uses private fields to ensure encapsulation and maintains
// its invariants through validated methods.
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// clientID is a non-owning back-reference to the ordering client
	clientID kernel.UUID

	// createdAt is the order creation timestamp
	createdAt time.Time

	// items are the order lines, in the order they were added
	items []Item

	// status represents the current state in the order lifecycle
	status Status

	// pay is the single payment attempt attached to the order (nil if none)
	pay *payment.Payment

	// del is the single delivery attached to the order (nil if none)
	del *delivery.Delivery

	// reservations are the stock receipts held while the order is in progress
	reservations []warehouse.Reservation

	// guard ensures the order was created via a constructor
	guard guard.ConstructorGuard
}

// NewOrder creates a new empty Order in Created status. Items are added
// afterwards with AddItem while the order is still in Created.
//
// Parameters:
//   - id: Unique identifier for the order (must be valid UUID)
//   - clientID: Reference to the ordering client (must be valid UUID)
//
// Returns:
//   - *Order: The created order if all validations pass
//   - error: Validation error if any parameter is invalid
func NewOrder(id kernel.UUID, clientID kernel.UUID) (*Order, error) {
	o := &Order{
		createdAt: time.Now().UTC(),
		status:    Created,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setClientID(clientID),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an Order aggregate from persistent storage,
// including items, status, attached payment/delivery and held reservations.
// The restored order behaves identically to one driven through normal
// domain operations.
func RestoreOrder(
	id kernel.UUID,
	clientID kernel.UUID,
	createdAt time.Time,
	items []Item,
	status Status,
	pay *payment.Payment,
	del *delivery.Delivery,
	reservations []warehouse.Reservation,
) (*Order, error) {
	o, err := NewOrder(id, clientID)
	if err != nil {
		return nil, err
	}

	if err = status.Validate(); err != nil {
		return nil, err
	}

	for _, item := range items {
		if err = item.Validate(); err != nil {
			return nil, err
		}
	}

	if pay != nil {
		if err = pay.Validate(); err != nil {
			return nil, err
		}
	}

	if del != nil {
		if err = del.Validate(); err != nil {
			return nil, err
		}
	}

	for _, reservation := range reservations {
		if err = reservation.Validate(); err != nil {
			return nil, err
		}
	}

	o.createdAt = createdAt
	o.items = append([]Item(nil), items...)
	o.status = status
	o.pay = pay
	o.del = del
	o.reservations = append([]warehouse.Reservation(nil), reservations...)
	return o, nil
}

// Validate ensures the Order instance was properly constructed through a constructor.
// This prevents bypassing validation by directly instantiating the struct.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// ClientID returns the reference to the ordering client.
func (o *Order) ClientID() kernel.UUID {
	return o.clientID
}

// CreatedAt returns the order creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// Items returns a copy of the order lines.
func (o *Order) Items() []Item {
	items := make([]Item, len(o.items))
	copy(items, o.items)
	return items
}

// Payment returns the attached payment, or nil if none is attached.
func (o *Order) Payment() *payment.Payment {
	return o.pay
}

// Delivery returns the attached delivery, or nil if none is attached.
func (o *Order) Delivery() *delivery.Delivery {
	return o.del
}

// Reservations returns a copy of the stock receipts the order holds.
func (o *Order) Reservations() []warehouse.Reservation {
	reservations := make([]warehouse.Reservation, len(o.reservations))
	copy(reservations, o.reservations)
	return reservations
}

// AddItem appends a line item to the order.
//
// Items can only be added while the order is in the Created status; once the
// order starts processing the list is immutable.
func (o *Order) AddItem(item Item) error {
	if err := item.Validate(); err != nil {
		return err
	}

	if o.status != Created {
		return ErrItemsAreImmutable
	}

	o.items = append(o.items, item)
	return nil
}

// TotalAmount returns the sum of all line-item subtotals.
// The order must have at least one item, and all items must share a currency.
func (o *Order) TotalAmount() (kernel.Money, error) {
	if len(o.items) == 0 {
		return kernel.Money{}, ErrNoItems
	}

	total, err := o.items[0].Subtotal()
	if err != nil {
		return kernel.Money{}, err
	}

	for _, item := range o.items[1:] {
		subtotal, subErr := item.Subtotal()
		if subErr != nil {
			return kernel.Money{}, subErr
		}

		total, err = total.Add(subtotal)
		if err != nil {
			return kernel.Money{}, err
		}
	}

	return total, nil
}

// AttachPayment links the single payment attempt to the order.
//
// Business rules enforced:
//   - At most one payment per order
//   - The payment amount must equal the order total
func (o *Order) AttachPayment(pay *payment.Payment) error {
	if err := pay.Validate(); err != nil {
		return err
	}

	if o.pay != nil {
		return ErrPaymentAlreadyAttached
	}

	total, err := o.TotalAmount()
	if err != nil {
		return err
	}

	equal, err := pay.Amount().IsEqual(total)
	if err != nil {
		return err
	}
	if !equal {
		return ErrPaymentAmountMismatch
	}

	o.pay = pay
	return nil
}

// AttachDelivery links the single delivery to the order.
// At most one delivery per order.
func (o *Order) AttachDelivery(del *delivery.Delivery) error {
	if err := del.Validate(); err != nil {
		return err
	}

	if o.del != nil {
		return ErrDeliveryAlreadyAttached
	}

	o.del = del
	return nil
}

// RecordReservations stores the stock receipts obtained for the order's
// line items. Receipts can only be recorded while the order is in Created,
// just before it transitions to Processing.
func (o *Order) RecordReservations(reservations []warehouse.Reservation) error {
	if o.status != Created {
		return ErrItemsAreImmutable
	}

	for _, reservation := range reservations {
		if err := reservation.Validate(); err != nil {
			return err
		}
	}

	o.reservations = append([]warehouse.Reservation(nil), reservations...)
	return nil
}

// ClearReservations drops the held receipts after they have been released
// back to the warehouses.
func (o *Order) ClearReservations() {
	o.reservations = nil
}

// Process transitions the order from Created to Processing.
//
// Business rules enforced:
//   - The order must have at least one item
//   - A reservation receipt must be held for every line item
func (o *Order) Process() error {
	if len(o.items) == 0 {
		return ErrNoItems
	}

	if len(o.reservations) != len(o.items) {
		return ErrReservationsIncomplete
	}

	newStatus, err := o.status.Process()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// Ship transitions the order from Processing to InDelivery.
//
// Business rules enforced:
//   - A delivery must be attached
//   - The attached payment must exist and be Completed; an order never
//     enters delivery unpaid
func (o *Order) Ship() error {
	if o.del == nil {
		return ErrDeliveryIsNotAttached
	}

	if o.pay == nil {
		return ErrPaymentIsNotAttached
	}

	if o.pay.Status() != payment.Completed {
		return ErrPaymentIsNotCompleted
	}

	newStatus, err := o.status.Ship()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// Complete transitions the order from InDelivery to Delivered.
// Delivered is a final state with no further transitions.
func (o *Order) Complete() error {
	newStatus, err := o.status.Complete()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// ValidateCancel checks whether the order can currently be cancelled
// without performing the transition.
func (o *Order) ValidateCancel() error {
	return o.status.ValidateCancel()
}

// Cancel transitions the order to Cancelled, allowed from Created or
// Processing. Releasing the held reservation receipts back to the
// warehouses is the caller's responsibility; use Reservations to obtain
// them and ClearReservations once they are released.
func (o *Order) Cancel() error {
	newStatus, err := o.status.Cancel()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// setID validates and sets the order's unique identifier.
// This is a private method used only during construction.
func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

// setClientID validates and sets the client back-reference.
// This is a private method used only during construction.
func (o *Order) setClientID(clientID kernel.UUID) error {
	if err := clientID.Validate(); err != nil {
		return err
	}
	o.clientID = clientID
	return nil
}
