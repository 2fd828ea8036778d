package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/ports"
)

// ShipOrderCommandHandler hands a paid order to the external courier service.
// Creates the shipment with the courier, records the issued tracking number
// and moves the order into "in delivery".
//
// The order aggregate enforces the precondition that the payment is
// completed, so an unpaid order can never reach a courier.
//
// Example:
//
//	handler := NewShipOrderCommandHandler(uowFactory, courierService)
//	cmd, _ := NewShipOrderCommand(orderID, deliveryID, address, "dhl")
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("shipping failed: %w", err)
//	}
type ShipOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	courier    ports.CourierService
}

// NewShipOrderCommandHandler creates a handler for shipping operations.
// Requires an OrderUoWFactory for transactional persistence and the courier
// service for shipment creation.
func NewShipOrderCommandHandler(
	uowFactory OrderUoWFactory, courier ports.CourierService,
) ShipOrderCommandHandler {
	return ShipOrderCommandHandler{
		uowFactory: uowFactory,
		courier:    courier,
	}
}

// Handle processes the shipping command.
// Attaches a pending delivery to the order, registers the shipment with the
// courier, records the tracking number and transitions the order to
// "in delivery". Nothing is persisted when the courier rejects the shipment.
func (h ShipOrderCommandHandler) Handle(ctx context.Context, command ShipOrderCommand) error {
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

	shippedOrder, err := orderRepo.Get(ctx, command.OrderID())
	if err != nil {
		return err
	}

	del, err := delivery.NewDelivery(command.DeliveryID(), command.Address(), command.Courier())
	if err != nil {
		return err
	}

	if err = shippedOrder.AttachDelivery(del); err != nil {
		return err
	}

	trackingNumber, err := h.courier.CreateShipment(ctx, del)
	if err != nil {
		return err
	}

	if err = del.Ship(trackingNumber); err != nil {
		return err
	}

	if err = shippedOrder.Ship(); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, shippedOrder); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
