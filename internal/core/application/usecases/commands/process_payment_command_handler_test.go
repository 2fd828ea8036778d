package commands_test

import (
	"errors"
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/payment"
	"fulfillment/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestProcessPaymentCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	item := newItem(t, 2, 500)
	chargedOrder := processingOrder(t, newStockedWarehouse(t, 0, item.ProductID(), 0), item)

	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	gateway := new(MockPaymentGateway)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	orderRepo.On("Get", ctx, chargedOrder.ID()).Return(chargedOrder, nil).Once()
	gateway.On("Charge", ctx, mock.AnythingOfType("*payment.Payment")).Return("txn-42", nil).Once()
	orderRepo.On("Update", ctx, chargedOrder).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	cmd, _ := commands.NewProcessPaymentCommand(chargedOrder.ID(), kernel.NewUUID(), payment.MethodCard)
	h := commands.NewProcessPaymentCommandHandler(factory, gateway)
	err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	pay := chargedOrder.Payment()
	require.NotNil(t, pay)
	assert.Equal(t, payment.Completed, pay.Status())
	assert.Equal(t, "txn-42", pay.TransactionID())

	total, _ := chargedOrder.TotalAmount()
	equal, amountErr := pay.Amount().IsEqual(total)
	require.NoError(t, amountErr)
	assert.True(t, equal)

	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	gateway.AssertExpectations(t)
}

func TestProcessPaymentCommandHandler_Handle_Declined(t *testing.T) {
	ctx := t.Context()

	item := newItem(t, 2, 500)
	chargedOrder := processingOrder(t, newStockedWarehouse(t, 0, item.ProductID(), 0), item)

	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	gateway := new(MockPaymentGateway)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	orderRepo.On("Get", ctx, chargedOrder.ID()).Return(chargedOrder, nil).Once()
	gateway.On("Charge", ctx, mock.AnythingOfType("*payment.Payment")).
		Return("", ports.ErrPaymentDeclined).Once()
	orderRepo.On("Update", ctx, chargedOrder).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	cmd, _ := commands.NewProcessPaymentCommand(chargedOrder.ID(), kernel.NewUUID(), payment.MethodCard)
	h := commands.NewProcessPaymentCommandHandler(factory, gateway)
	err := h.Handle(ctx, cmd)

	// A decline is final: the failed payment is persisted and the error surfaced.
	require.ErrorIs(t, err, ports.ErrPaymentDeclined)
	require.NotNil(t, chargedOrder.Payment())
	assert.Equal(t, payment.Failed, chargedOrder.Payment().Status())

	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestProcessPaymentCommandHandler_Handle_TransportError(t *testing.T) {
	ctx := t.Context()

	item := newItem(t, 2, 500)
	chargedOrder := processingOrder(t, newStockedWarehouse(t, 0, item.ProductID(), 0), item)

	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	gateway := new(MockPaymentGateway)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	orderRepo.On("Get", ctx, chargedOrder.ID()).Return(chargedOrder, nil).Once()
	gateway.On("Charge", ctx, mock.AnythingOfType("*payment.Payment")).
		Return("", errors.New("gateway unreachable")).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	cmd, _ := commands.NewProcessPaymentCommand(chargedOrder.ID(), kernel.NewUUID(), payment.MethodCard)
	h := commands.NewProcessPaymentCommandHandler(factory, gateway)
	err := h.Handle(ctx, cmd)

	// The provider never answered: nothing is persisted so the charge can be retried.
	require.Error(t, err)
	require.NotErrorIs(t, err, ports.ErrPaymentDeclined)
	assert.Equal(t, payment.Pending, chargedOrder.Payment().Status())

	orderRepo.AssertNotCalled(t, "Update", ctx, chargedOrder)
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestProcessPaymentCommandHandler_Handle_OrderNotProcessing(t *testing.T) {
	ctx := t.Context()

	chargedOrder := createdOrder(t, newItem(t, 2, 500))

	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	gateway := new(MockPaymentGateway)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	orderRepo.On("Get", ctx, chargedOrder.ID()).Return(chargedOrder, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	cmd, _ := commands.NewProcessPaymentCommand(chargedOrder.ID(), kernel.NewUUID(), payment.MethodCard)
	h := commands.NewProcessPaymentCommandHandler(factory, gateway)
	err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, commands.ErrOrderIsNotProcessing)
	gateway.AssertNotCalled(t, "Charge", ctx, mock.Anything)
}

func TestProcessPaymentCommandHandler_Handle_AlreadyCompleted(t *testing.T) {
	ctx := t.Context()

	item := newItem(t, 2, 500)
	chargedOrder := processingOrder(t, newStockedWarehouse(t, 0, item.ProductID(), 0), item)
	attachCompletedPayment(t, chargedOrder)

	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	gateway := new(MockPaymentGateway)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	orderRepo.On("Get", ctx, chargedOrder.ID()).Return(chargedOrder, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	cmd, _ := commands.NewProcessPaymentCommand(chargedOrder.ID(), kernel.NewUUID(), payment.MethodCard)
	h := commands.NewProcessPaymentCommandHandler(factory, gateway)
	err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, commands.ErrPaymentAlreadyCompleted)
	gateway.AssertNotCalled(t, "Charge", ctx, mock.Anything)
}

func TestProcessPaymentCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	h := commands.NewProcessPaymentCommandHandler(new(MockOrderUoWFactory), new(MockPaymentGateway))
	err := h.Handle(ctx, commands.ProcessPaymentCommand{})
	require.Error(t, err)
}
