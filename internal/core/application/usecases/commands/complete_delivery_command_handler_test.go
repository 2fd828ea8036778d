package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func inDeliveryOrder(t *testing.T) *order.Order {
	t.Helper()

	item := newItem(t, 2, 500)
	o := processingOrder(t, newStockedWarehouse(t, 0, item.ProductID(), 0), item)
	attachCompletedPayment(t, o)

	address, err := kernel.NewAddress("12 Main St", "Springfield")
	require.NoError(t, err)
	del, err := delivery.NewDelivery(kernel.NewUUID(), address, "dhl")
	require.NoError(t, err)
	require.NoError(t, o.AttachDelivery(del))
	require.NoError(t, del.Ship("TRK-1"))
	require.NoError(t, o.Ship())
	return o
}

func TestCompleteDeliveryCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	deliveredOrder := inDeliveryOrder(t)

	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	orderRepo.On("Get", ctx, deliveredOrder.ID()).Return(deliveredOrder, nil).Once()
	orderRepo.On("Update", ctx, deliveredOrder).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	cmd, _ := commands.NewCompleteDeliveryCommand(deliveredOrder.ID())
	h := commands.NewCompleteDeliveryCommandHandler(factory)
	err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	assert.Equal(t, order.Delivered, deliveredOrder.Status())
	assert.Equal(t, delivery.Delivered, deliveredOrder.Delivery().Status())

	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCompleteDeliveryCommandHandler_Handle_NoDelivery(t *testing.T) {
	ctx := t.Context()

	item := newItem(t, 2, 500)
	deliveredOrder := processingOrder(t, newStockedWarehouse(t, 0, item.ProductID(), 0), item)

	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	orderRepo.On("Get", ctx, deliveredOrder.ID()).Return(deliveredOrder, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	cmd, _ := commands.NewCompleteDeliveryCommand(deliveredOrder.ID())
	h := commands.NewCompleteDeliveryCommandHandler(factory)
	err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, commands.ErrDeliveryIsNotAttached)
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestCompleteDeliveryCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	h := commands.NewCompleteDeliveryCommandHandler(new(MockOrderUoWFactory))
	err := h.Handle(ctx, commands.CompleteDeliveryCommand{})
	require.Error(t, err)
}
