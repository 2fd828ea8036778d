package commands

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/delivery"
)

// ErrDeliveryIsNotShipped is returned when recording transit for an order
// whose delivery never shipped.
var ErrDeliveryIsNotShipped = errors.New("order has no shipped delivery to track")

// MarkInTransitCommandHandler records the courier reporting a parcel as
// moving. The order stays in delivery; only the delivery status advances from
// shipped to in transit.
//
// Invoked by the tracking job when polling reports a parcel in transit. The
// courier keeps answering "in transit" on every cycle until the parcel
// arrives, so an already recorded transit is a no-op rather than an error.
type MarkInTransitCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewMarkInTransitCommandHandler creates a handler for transit updates.
// Requires an OrderUoWFactory for transactional persistence.
func NewMarkInTransitCommandHandler(uowFactory OrderUoWFactory) MarkInTransitCommandHandler {
	return MarkInTransitCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the transit update command.
// Marks the attached delivery as in transit and persists the order.
func (h MarkInTransitCommandHandler) Handle(ctx context.Context, command MarkInTransitCommand) error {
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

	trackedOrder, err := orderRepo.Get(ctx, command.OrderID())
	if err != nil {
		return err
	}

	del := trackedOrder.Delivery()
	if del == nil {
		return ErrDeliveryIsNotShipped
	}

	if del.Status() == delivery.InTransit {
		return nil
	}

	if err = del.MarkInTransit(); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, trackedOrder); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
