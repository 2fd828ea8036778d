package delivery

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	// ErrDeliveryIsNotConstructed is returned when a Delivery instance was not
	// created through the NewDelivery or RestoreDelivery constructors.
	ErrDeliveryIsNotConstructed = errors.New("Delivery must be created via NewDelivery constructor")

	// ErrTrackingNumberIsRequired is returned when shipping a delivery without
	// the courier's tracking reference.
	ErrTrackingNumberIsRequired = errs.NewValueIsRequiredError("trackingNumber is required")
)

// Delivery is the shipment leg of an order: the destination address, the
// courier handling it, and a status machine driven by courier events.
//
// The tracking number is set only when the courier accepts the shipment; it
// is never chosen by this system.
type Delivery struct {
	// id is the unique identifier for the delivery
	id kernel.UUID

	// address is the delivery destination
	address kernel.Address

	// courier is the identifier of the courier service handling the shipment
	courier string

	// status tracks the shipment lifecycle
	status Status

	// trackingNumber is the courier's reference, set on successful shipment creation
	trackingNumber string

	// guard ensures the delivery was properly constructed
	guard guard.ConstructorGuard
}

// NewDelivery creates a Pending delivery to the given address, to be handled
// by the named courier service.
//
// Parameters:
//   - id: Unique identifier for the delivery (must be valid UUID)
//   - address: Destination (must be valid Address)
//   - courier: Courier service identifier (must not be empty)
func NewDelivery(id kernel.UUID, address kernel.Address, courier string) (*Delivery, error) {
	d := &Delivery{
		status: Pending,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setID(id),
		d.setAddress(address),
		d.setCourier(courier),
	); err != nil {
		return nil, err
	}

	return d, nil
}

// RestoreDelivery reconstructs a Delivery from persistent storage, including
// its status and tracking number.
func RestoreDelivery(
	id kernel.UUID, address kernel.Address, courier string, status Status, trackingNumber string,
) (*Delivery, error) {
	d, err := NewDelivery(id, address, courier)
	if err != nil {
		return nil, err
	}

	if err = status.Validate(); err != nil {
		return nil, err
	}

	d.status = status
	d.trackingNumber = trackingNumber
	return d, nil
}

// Validate ensures the Delivery instance was properly constructed.
func (d *Delivery) Validate() error {
	if d == nil {
		return ErrDeliveryIsNotConstructed
	}
	return d.guard.Validate(ErrDeliveryIsNotConstructed)
}

// IsEqual compares two deliveries by their unique identifiers.
func (d *Delivery) IsEqual(other *Delivery) bool {
	return other != nil && d.id.IsEqual(other.id)
}

// ID returns the delivery's unique identifier.
func (d *Delivery) ID() kernel.UUID {
	return d.id
}

// Address returns the delivery destination.
func (d *Delivery) Address() kernel.Address {
	return d.address
}

// Courier returns the courier service identifier.
func (d *Delivery) Courier() string {
	return d.courier
}

// Status returns the current status of the delivery.
func (d *Delivery) Status() Status {
	return d.status
}

// TrackingNumber returns the courier's tracking reference.
// Empty until the courier accepts the shipment.
func (d *Delivery) TrackingNumber() string {
	return d.trackingNumber
}

// Ship marks the delivery as accepted by the courier and records the
// courier's tracking number. Only a Pending delivery can be shipped, and the
// tracking number must be non-empty.
func (d *Delivery) Ship(trackingNumber string) error {
	if trackingNumber == "" {
		return ErrTrackingNumberIsRequired
	}

	newStatus, err := d.status.Ship()
	if err != nil {
		return err
	}

	d.status = newStatus
	d.trackingNumber = trackingNumber
	return nil
}

// MarkInTransit records the courier reporting the parcel moving.
func (d *Delivery) MarkInTransit() error {
	newStatus, err := d.status.Transit()
	if err != nil {
		return err
	}

	d.status = newStatus
	return nil
}

// MarkDelivered records the courier confirming final delivery.
func (d *Delivery) MarkDelivered() error {
	newStatus, err := d.status.Complete()
	if err != nil {
		return err
	}

	d.status = newStatus
	return nil
}

// MarkReturned records the parcel coming back undelivered.
func (d *Delivery) MarkReturned() error {
	newStatus, err := d.status.Return()
	if err != nil {
		return err
	}

	d.status = newStatus
	return nil
}

func (d *Delivery) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	d.id = id
	return nil
}

func (d *Delivery) setAddress(address kernel.Address) error {
	if err := address.Validate(); err != nil {
		return err
	}

	d.address = address
	return nil
}

func (d *Delivery) setCourier(courier string) error {
	if courier == "" {
		return errs.NewValueIsRequiredError("courier is required")
	}

	d.courier = courier
	return nil
}
