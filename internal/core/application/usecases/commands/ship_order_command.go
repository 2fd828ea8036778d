package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrShipOrderCommandIsNotConstructed = errors.New(
		"ShipOrderCommand must be created via NewShipOrderCommand constructor",
	)
	ErrCourierIsRequired = errors.New("courier is required")
)

// ShipOrderCommand represents a request to hand a paid order to a courier.
// Carries the delivery identity, the destination address and the courier
// service that will carry the parcel.
type ShipOrderCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	deliveryID kernel.UUID
	address    kernel.Address
	courier    string

	guard guard.ConstructorGuard
}

// NewShipOrderCommand creates a command to ship an order.
// Validates that the order and delivery IDs are valid UUIDs, the address is
// a valid destination and the courier name is not empty.
func NewShipOrderCommand(
	orderID, deliveryID kernel.UUID, address kernel.Address, courier string,
) (ShipOrderCommand, error) {
	shipCommand := ShipOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		shipCommand.setOrderID(orderID),
		shipCommand.setDeliveryID(deliveryID),
		shipCommand.setAddress(address),
		shipCommand.setCourier(courier),
	); err != nil {
		return ShipOrderCommand{}, err
	}

	return shipCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrShipOrderCommandIsNotConstructed if validation fails.
func (c ShipOrderCommand) Validate() error {
	return c.guard.Validate(ErrShipOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier of the order to ship.
func (c ShipOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// DeliveryID returns the unique identifier for the delivery.
func (c ShipOrderCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// Address returns the delivery destination.
func (c ShipOrderCommand) Address() kernel.Address {
	return c.address
}

// Courier returns the courier service identifier.
func (c ShipOrderCommand) Courier() string {
	return c.courier
}

func (c *ShipOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ShipOrderCommand) setDeliveryID(deliveryID kernel.UUID) error {
	if err := deliveryID.Validate(); err != nil {
		return err
	}

	c.deliveryID = deliveryID
	return nil
}

func (c *ShipOrderCommand) setAddress(address kernel.Address) error {
	if err := address.Validate(); err != nil {
		return err
	}

	c.address = address
	return nil
}

func (c *ShipOrderCommand) setCourier(courier string) error {
	if courier == "" {
		return ErrCourierIsRequired
	}

	c.courier = courier
	return nil
}
