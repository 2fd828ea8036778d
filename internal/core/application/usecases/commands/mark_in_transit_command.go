package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrMarkInTransitCommandIsNotConstructed = errors.New(
	"MarkInTransitCommand must be created via NewMarkInTransitCommand constructor",
)

// MarkInTransitCommand represents the courier reporting that an order's
// parcel is moving through the delivery network.
type MarkInTransitCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewMarkInTransitCommand creates a command to record an order's parcel as in
// transit. Validates that the order ID is a valid UUID.
func NewMarkInTransitCommand(orderID kernel.UUID) (MarkInTransitCommand, error) {
	transitCommand := MarkInTransitCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := transitCommand.setOrderID(orderID); err != nil {
		return MarkInTransitCommand{}, err
	}

	return transitCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrMarkInTransitCommandIsNotConstructed if validation fails.
func (c MarkInTransitCommand) Validate() error {
	return c.guard.Validate(ErrMarkInTransitCommandIsNotConstructed)
}

// OrderID returns the unique identifier of the tracked order.
func (c MarkInTransitCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c *MarkInTransitCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}
