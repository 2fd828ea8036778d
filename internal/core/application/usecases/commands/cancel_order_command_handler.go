package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/payment"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
)

// CancelOrderCommandHandler cancels an order that has not shipped yet.
// Compensates everything the order accumulated: reservation receipts are
// released back to the warehouses they debited, and a completed payment is
// refunded through the provider.
//
// Cancellation is allowed from "created" and "processing" only; once the
// parcel is with a courier the order can no longer be cancelled.
//
// Example:
//
//	handler := NewCancelOrderCommandHandler(uowFactory, gateway)
//	cmd, _ := NewCancelOrderCommand(orderID)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("cancellation failed: %w", err)
//	}
type CancelOrderCommandHandler struct {
	uowFactory UoWFactory
	gateway    ports.PaymentGateway
}

// NewCancelOrderCommandHandler creates a handler for cancellation operations.
// Requires a UoWFactory for coordinating transactional updates across the
// order and warehouse repositories, and the payment gateway for refunds.
func NewCancelOrderCommandHandler(
	uowFactory UoWFactory, gateway ports.PaymentGateway,
) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		gateway:    gateway,
	}
}

// Handle processes the cancellation command.
// Validates the order can be cancelled, releases every held reservation
// receipt (most recent first), refunds a completed payment and transitions
// the order to "cancelled". Order and warehouses are updated in a single
// transaction; a refund the provider rejects aborts the cancellation.
func (h CancelOrderCommandHandler) Handle(ctx context.Context, command CancelOrderCommand) error {
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

	cancelledOrder, err := orderRepo.Get(ctx, command.OrderID())
	if err != nil {
		return err
	}

	if err = cancelledOrder.ValidateCancel(); err != nil {
		return err
	}

	receipts := cancelledOrder.Reservations()
	if len(receipts) > 0 {
		warehouses, getErr := warehouseRepo.GetAll(ctx)
		if getErr != nil {
			return getErr
		}

		allocator := services.NewInventoryAllocator()
		for i := len(receipts) - 1; i >= 0; i-- {
			if err = allocator.Release(receipts[i], warehouses); err != nil {
				return err
			}
		}

		for _, w := range warehouses {
			if err = warehouseRepo.Update(ctx, w); err != nil {
				return err
			}
		}
	}

	if pay := cancelledOrder.Payment(); pay != nil && pay.Status() == payment.Completed {
		if err = h.gateway.Refund(ctx, pay.TransactionID()); err != nil {
			return err
		}

		if err = pay.Refund(); err != nil {
			return err
		}
	}

	if err = cancelledOrder.Cancel(); err != nil {
		return err
	}
	cancelledOrder.ClearReservations()

	if err = orderRepo.Update(ctx, cancelledOrder); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
