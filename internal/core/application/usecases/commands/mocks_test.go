package commands_test

import (
	"context"
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/payment"
	"fulfillment/internal/core/domain/model/warehouse"
	"fulfillment/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllInDeliveryStatus(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockWarehouseRepository struct{ mock.Mock }

func (m *MockWarehouseRepository) Add(ctx context.Context, aggregate *warehouse.Warehouse) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockWarehouseRepository) Update(ctx context.Context, aggregate *warehouse.Warehouse) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockWarehouseRepository) Get(ctx context.Context, id kernel.UUID) (*warehouse.Warehouse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*warehouse.Warehouse), args.Error(1)
}

func (m *MockWarehouseRepository) GetAll(ctx context.Context) ([]*warehouse.Warehouse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*warehouse.Warehouse), args.Error(1)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockWarehouseUoW struct{ mock.Mock }

func (m *MockWarehouseUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockWarehouseUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockWarehouseUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockWarehouseUoW) WarehouseRepository() ports.WarehouseRepository {
	args := m.Called()
	return args.Get(0).(ports.WarehouseRepository)
}

type MockWarehouseUoWFactory struct{ mock.Mock }

func (m *MockWarehouseUoWFactory) Create() commands.WarehouseUoW {
	args := m.Called()
	return args.Get(0).(commands.WarehouseUoW)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) WarehouseRepository() ports.WarehouseRepository {
	args := m.Called()
	return args.Get(0).(ports.WarehouseRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockPaymentGateway struct{ mock.Mock }

func (m *MockPaymentGateway) Charge(ctx context.Context, pay *payment.Payment) (string, error) {
	args := m.Called(ctx, pay)
	return args.String(0), args.Error(1)
}

func (m *MockPaymentGateway) Refund(ctx context.Context, transactionID string) error {
	args := m.Called(ctx, transactionID)
	return args.Error(0)
}

type MockCourierService struct{ mock.Mock }

func (m *MockCourierService) CreateShipment(ctx context.Context, del *delivery.Delivery) (string, error) {
	args := m.Called(ctx, del)
	return args.String(0), args.Error(1)
}

func (m *MockCourierService) GetTrackingStatus(ctx context.Context, trackingNumber string) (delivery.Status, error) {
	args := m.Called(ctx, trackingNumber)
	return args.Get(0).(delivery.Status), args.Error(1)
}

// Domain fixtures shared by the handler tests.

func newItem(t *testing.T, quantity int, amount int64) order.Item {
	t.Helper()

	price, err := kernel.NewMoney(amount, "USD")
	require.NoError(t, err)

	item, err := order.NewItem(kernel.NewUUID(), quantity, price)
	require.NoError(t, err)
	return item
}

func newStockedWarehouse(t *testing.T, priority int, productID kernel.UUID, stock int) *warehouse.Warehouse {
	t.Helper()

	w, err := warehouse.NewWarehouse(kernel.NewUUID(), "WH", priority)
	require.NoError(t, err)
	if stock > 0 {
		require.NoError(t, w.Replenish(productID, stock))
	}
	return w
}

func createdOrder(t *testing.T, items ...order.Item) *order.Order {
	t.Helper()

	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID())
	require.NoError(t, err)
	for _, item := range items {
		require.NoError(t, o.AddItem(item))
	}
	return o
}

// processingOrder builds an order whose receipts debit the given warehouse,
// already transitioned to Processing so payment and shipping can follow.
func processingOrder(t *testing.T, w *warehouse.Warehouse, items ...order.Item) *order.Order {
	t.Helper()

	o := createdOrder(t, items...)

	receipts := make([]warehouse.Reservation, 0, len(items))
	for _, item := range items {
		require.NoError(t, w.Replenish(item.ProductID(), item.Quantity()))
		require.NoError(t, w.Reserve(item.ProductID(), item.Quantity()))

		line, err := warehouse.NewReservationLine(w.ID(), item.Quantity())
		require.NoError(t, err)

		receipt, err := warehouse.NewReservation(item.ProductID(), item.Quantity(),
			[]warehouse.ReservationLine{line})
		require.NoError(t, err)
		receipts = append(receipts, receipt)
	}

	require.NoError(t, o.RecordReservations(receipts))
	require.NoError(t, o.Process())
	return o
}

func attachCompletedPayment(t *testing.T, o *order.Order) *payment.Payment {
	t.Helper()

	total, err := o.TotalAmount()
	require.NoError(t, err)

	pay, err := payment.NewPayment(kernel.NewUUID(), payment.MethodCard, total)
	require.NoError(t, err)
	require.NoError(t, o.AttachPayment(pay))
	require.NoError(t, pay.Complete("txn-1"))
	return pay
}
