package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrCreateWarehouseCommandIsNotConstructed = errors.New(
		"CreateWarehouseCommand must be created via NewCreateWarehouseCommand constructor",
	)
	ErrNameIsRequired    = errors.New("name is required")
	ErrPriorityIsInvalid = errors.New("priority must be greater than or equal to 0")
)

// CreateWarehouseCommand represents a request to register a new fulfillment
// location with an empty stock ledger.
type CreateWarehouseCommand struct { //nolint:recvcheck //using for validation
	warehouseID kernel.UUID
	name        string
	priority    int

	guard guard.ConstructorGuard
}

// NewCreateWarehouseCommand creates a command to register a new warehouse.
// Validates that the warehouse ID is valid, the name is not empty and the
// allocation priority is non-negative.
func NewCreateWarehouseCommand(warehouseID kernel.UUID, name string, priority int) (CreateWarehouseCommand, error) {
	warehouseCommand := CreateWarehouseCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		warehouseCommand.setWarehouseID(warehouseID),
		warehouseCommand.setName(name),
		warehouseCommand.setPriority(priority),
	); err != nil {
		return CreateWarehouseCommand{}, err
	}

	return warehouseCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateWarehouseCommandIsNotConstructed if validation fails.
func (c CreateWarehouseCommand) Validate() error {
	return c.guard.Validate(ErrCreateWarehouseCommandIsNotConstructed)
}

// WarehouseID returns the unique identifier for the warehouse.
func (c CreateWarehouseCommand) WarehouseID() kernel.UUID {
	return c.warehouseID
}

// Name returns the human-readable location label.
func (c CreateWarehouseCommand) Name() string {
	return c.name
}

// Priority returns the allocation priority (lower is drawn from first).
func (c CreateWarehouseCommand) Priority() int {
	return c.priority
}

func (c *CreateWarehouseCommand) setWarehouseID(warehouseID kernel.UUID) error {
	if err := warehouseID.Validate(); err != nil {
		return err
	}

	c.warehouseID = warehouseID
	return nil
}

func (c *CreateWarehouseCommand) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}

	c.name = name
	return nil
}

func (c *CreateWarehouseCommand) setPriority(priority int) error {
	if priority < 0 {
		return ErrPriorityIsInvalid
	}

	c.priority = priority
	return nil
}
