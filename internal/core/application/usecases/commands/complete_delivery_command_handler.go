package commands

import (
	"context"
	"errors"
)

// ErrDeliveryIsNotAttached is returned when completing an order that never
// shipped.
var ErrDeliveryIsNotAttached = errors.New("order has no delivery to complete")

// CompleteDeliveryCommandHandler records the courier's final confirmation:
// the parcel reached the customer. Marks the delivery as delivered and moves
// the order from "in delivery" to "delivered", its terminal state.
//
// Invoked from the API when the courier calls back, and by the tracking job
// when polling reports a delivered parcel.
type CompleteDeliveryCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewCompleteDeliveryCommandHandler creates a handler for delivery completion.
// Requires an OrderUoWFactory for transactional persistence.
func NewCompleteDeliveryCommandHandler(uowFactory OrderUoWFactory) CompleteDeliveryCommandHandler {
	return CompleteDeliveryCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the delivery completion command.
// Marks the attached delivery as delivered and the order as complete, in one
// transaction.
func (h CompleteDeliveryCommandHandler) Handle(ctx context.Context, command CompleteDeliveryCommand) error {
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

	deliveredOrder, err := orderRepo.Get(ctx, command.OrderID())
	if err != nil {
		return err
	}

	del := deliveredOrder.Delivery()
	if del == nil {
		return ErrDeliveryIsNotAttached
	}

	if err = del.MarkDelivered(); err != nil {
		return err
	}

	if err = deliveredOrder.Complete(); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, deliveredOrder); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
