package commands

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/warehouse"
	"fulfillment/internal/core/domain/services"
)

// ErrNotEnoughStock is returned when the combined warehouse stock cannot
// cover every line of the order. No stock stays reserved: receipts already
// obtained for earlier lines are released before returning.
var ErrNotEnoughStock = errors.New("not enough stock to place order")

// PlaceOrderCommandHandler orchestrates stock reservation for an order.
// Reserves every order line across the warehouses in priority order and moves
// the order from "created" to "processing". The whole placement is
// all-or-nothing: if any line cannot be covered, receipts obtained for the
// other lines are released and the order stays in "created".
//
// Example:
//
//	handler := NewPlaceOrderCommandHandler(uowFactory)
//	cmd, _ := NewPlaceOrderCommand(orderID)
//	err := handler.Handle(ctx, cmd)
//	if errors.Is(err, ErrNotEnoughStock) {
//	    log.Println("Order cannot be fulfilled right now")
//	}
type PlaceOrderCommandHandler struct {
	uowFactory UoWFactory
}

// NewPlaceOrderCommandHandler creates a handler for order placement operations.
// Requires a UoWFactory for coordinating transactional updates across the
// order and warehouse repositories.
func NewPlaceOrderCommandHandler(uowFactory UoWFactory) PlaceOrderCommandHandler {
	return PlaceOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the order placement command.
// Loads the order and all warehouses, reserves stock for every line via the
// inventory allocator, records the receipts on the order and transitions it
// to "processing". Order and warehouses are updated in a single transaction.
// Returns ErrNotEnoughStock when the combined stock falls short of any line;
// in that case every reservation made for the order is released first.
func (h PlaceOrderCommandHandler) Handle(ctx context.Context, command PlaceOrderCommand) error {
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

	orderRepo := uow.OrderRepository()
	warehouseRepo := uow.WarehouseRepository()

	placedOrder, err := orderRepo.Get(ctx, command.OrderID())
	if err != nil {
		return err
	}

	warehouses, err := warehouseRepo.GetAll(ctx)
	if err != nil {
		return err
	}

	allocator := services.NewInventoryAllocator()

	var receipts []warehouse.Reservation
	for _, item := range placedOrder.Items() {
		receipt, reserveErr := allocator.Reserve(item.ProductID(), item.Quantity(), warehouses)
		if reserveErr != nil {
			releaseErr := h.releaseAll(allocator, receipts, warehouses)
			if errors.Is(reserveErr, services.ErrInsufficientTotalStock) {
				reserveErr = errors.Join(ErrNotEnoughStock, releaseErr)
			} else {
				reserveErr = errors.Join(reserveErr, releaseErr)
			}
			return reserveErr
		}

		receipts = append(receipts, receipt)
	}

	if err = placedOrder.RecordReservations(receipts); err != nil {
		return err
	}

	if err = placedOrder.Process(); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, placedOrder); err != nil {
		return err
	}

	for _, w := range warehouses {
		if err = warehouseRepo.Update(ctx, w); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}

// releaseAll undoes receipts obtained for earlier order lines after a later
// line fell short, most recent receipt first.
func (h PlaceOrderCommandHandler) releaseAll(
	allocator services.InventoryAllocator,
	receipts []warehouse.Reservation,
	warehouses []*warehouse.Warehouse,
) error {
	var joined error
	for i := len(receipts) - 1; i >= 0; i-- {
		if err := allocator.Release(receipts[i], warehouses); err != nil {
			joined = errors.Join(joined, err)
		}
	}
	return joined
}
