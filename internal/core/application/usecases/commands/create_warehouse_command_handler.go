package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/warehouse"
)

// CreateWarehouseCommandHandler handles the business logic for registering
// fulfillment locations. New warehouses start with an empty stock ledger and
// take part in allocation immediately at their configured priority.
type CreateWarehouseCommandHandler struct {
	uowFactory WarehouseUoWFactory
}

// NewCreateWarehouseCommandHandler creates a handler for warehouse registration.
// Requires a WarehouseUoWFactory for transactional persistence.
func NewCreateWarehouseCommandHandler(uowFactory WarehouseUoWFactory) CreateWarehouseCommandHandler {
	return CreateWarehouseCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the warehouse registration command.
// Builds the warehouse aggregate and persists it within a transaction.
func (h CreateWarehouseCommandHandler) Handle(ctx context.Context, command CreateWarehouseCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	newWarehouse, err := warehouse.NewWarehouse(command.WarehouseID(), command.Name(), command.Priority())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.WarehouseRepository().Add(ctx, newWarehouse); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
