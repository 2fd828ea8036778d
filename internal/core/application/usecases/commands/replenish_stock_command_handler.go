package commands

import (
	"context"
)

// ReplenishStockCommandHandler records inbound stock arriving at a warehouse.
// Loads the warehouse, credits the product's ledger entry and persists the
// updated ledger.
type ReplenishStockCommandHandler struct {
	uowFactory WarehouseUoWFactory
}

// NewReplenishStockCommandHandler creates a handler for stock replenishment.
// Requires a WarehouseUoWFactory for transactional persistence.
func NewReplenishStockCommandHandler(uowFactory WarehouseUoWFactory) ReplenishStockCommandHandler {
	return ReplenishStockCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the replenishment command within a transaction.
func (h ReplenishStockCommandHandler) Handle(ctx context.Context, command ReplenishStockCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	warehouseRepo := uow.WarehouseRepository()

	stockedWarehouse, err := warehouseRepo.Get(ctx, command.WarehouseID())
	if err != nil {
		return err
	}

	if err = stockedWarehouse.Replenish(command.ProductID(), command.Quantity()); err != nil {
		return err
	}

	if err = warehouseRepo.Update(ctx, stockedWarehouse); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
