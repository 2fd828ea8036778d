package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrReplenishStockCommandIsNotConstructed = errors.New(
		"ReplenishStockCommand must be created via NewReplenishStockCommand constructor",
	)
	ErrQuantityIsInvalid = errors.New("quantity must be greater than 0")
)

// ReplenishStockCommand represents an inbound shipment: a quantity of one
// product arriving at one warehouse.
type ReplenishStockCommand struct { //nolint:recvcheck //using for validation
	warehouseID kernel.UUID
	productID   kernel.UUID
	quantity    int

	guard guard.ConstructorGuard
}

// NewReplenishStockCommand creates a command to add stock to a warehouse.
// Validates that the warehouse and product IDs are valid UUIDs and the
// quantity is positive.
func NewReplenishStockCommand(
	warehouseID, productID kernel.UUID, quantity int,
) (ReplenishStockCommand, error) {
	replenishCommand := ReplenishStockCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		replenishCommand.setWarehouseID(warehouseID),
		replenishCommand.setProductID(productID),
		replenishCommand.setQuantity(quantity),
	); err != nil {
		return ReplenishStockCommand{}, err
	}

	return replenishCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrReplenishStockCommandIsNotConstructed if validation fails.
func (c ReplenishStockCommand) Validate() error {
	return c.guard.Validate(ErrReplenishStockCommandIsNotConstructed)
}

// WarehouseID returns the identifier of the receiving warehouse.
func (c ReplenishStockCommand) WarehouseID() kernel.UUID {
	return c.warehouseID
}

// ProductID returns the identifier of the arriving product.
func (c ReplenishStockCommand) ProductID() kernel.UUID {
	return c.productID
}

// Quantity returns the number of arriving units.
func (c ReplenishStockCommand) Quantity() int {
	return c.quantity
}

func (c *ReplenishStockCommand) setWarehouseID(warehouseID kernel.UUID) error {
	if err := warehouseID.Validate(); err != nil {
		return err
	}

	c.warehouseID = warehouseID
	return nil
}

func (c *ReplenishStockCommand) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return err
	}

	c.productID = productID
	return nil
}

func (c *ReplenishStockCommand) setQuantity(quantity int) error {
	if quantity <= 0 {
		return ErrQuantityIsInvalid
	}

	c.quantity = quantity
	return nil
}
