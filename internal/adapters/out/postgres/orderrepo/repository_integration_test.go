package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/payment"
	"fulfillment/internal/core/domain/model/warehouse"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

// OrderRepositoryIntegrationTestSuite provides integration tests for OrderRepository
// using PostgreSQL containers to verify database persistence behavior.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.ItemDTO{},
		&orderrepo.PaymentDTO{},
		&orderrepo.DeliveryDTO{},
		&orderrepo.ReservationLineDTO{},
	))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders CASCADE").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_ValidOrder_Success() {
	ctx := context.Background()

	testOrder := suite.createTestOrder()
	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Once()

	err := suite.repository.Add(ctx, testOrder)
	suite.Require().NoError(err)

	suite.assertOrderCount(1)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_DuplicateOrderID_ReturnsAlreadyExistsError() {
	ctx := context.Background()

	testOrder := suite.createTestOrder()
	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Once()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	err := suite.repository.Add(ctx, testOrder)
	suite.Require().Error(err)

	var existsErr *errs.ObjectAlreadyExistsError
	suite.Require().ErrorAs(err, &existsErr)

	suite.assertOrderCount(1)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_ExistingOrder_RoundTripsAggregate() {
	ctx := context.Background()

	originalOrder := suite.createProcessingOrder()
	suite.tracker.On("TrackAggregate", originalOrder.ID(), originalOrder).Once()
	suite.Require().NoError(suite.repository.Add(ctx, originalOrder))

	retrievedOrder, err := suite.repository.Get(ctx, originalOrder.ID())
	suite.Require().NoError(err)

	suite.Equal(originalOrder.ID(), retrievedOrder.ID())
	suite.Equal(originalOrder.ClientID(), retrievedOrder.ClientID())
	suite.Equal(order.Processing, retrievedOrder.Status())

	suite.Require().Len(retrievedOrder.Items(), len(originalOrder.Items()))
	for i, item := range originalOrder.Items() {
		restored := retrievedOrder.Items()[i]
		suite.Equal(item.ProductID(), restored.ProductID())
		suite.Equal(item.Quantity(), restored.Quantity())
		suite.Equal(item.UnitPrice().Amount(), restored.UnitPrice().Amount())
		suite.Equal(item.UnitPrice().Currency(), restored.UnitPrice().Currency())
	}

	suite.Require().Len(retrievedOrder.Reservations(), len(originalOrder.Reservations()))
	for i, receipt := range originalOrder.Reservations() {
		restored := retrievedOrder.Reservations()[i]
		suite.Equal(receipt.ProductID(), restored.ProductID())
		suite.Equal(receipt.Quantity(), restored.Quantity())
		suite.Equal(receipt.Lines(), restored.Lines())
	}

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_OrderWithPaymentAndDelivery() {
	ctx := context.Background()

	originalOrder := suite.createProcessingOrder()
	total, err := originalOrder.TotalAmount()
	suite.Require().NoError(err)

	pay, err := payment.NewPayment(kernel.NewUUID(), payment.MethodCard, total)
	suite.Require().NoError(err)
	suite.Require().NoError(originalOrder.AttachPayment(pay))
	suite.Require().NoError(pay.Complete("txn-99"))

	address, err := kernel.NewAddress("12 Main St", "Springfield")
	suite.Require().NoError(err)
	del, err := delivery.NewDelivery(kernel.NewUUID(), address, "dhl")
	suite.Require().NoError(err)
	suite.Require().NoError(originalOrder.AttachDelivery(del))
	suite.Require().NoError(del.Ship("TRK-99"))
	suite.Require().NoError(originalOrder.Ship())

	suite.tracker.On("TrackAggregate", originalOrder.ID(), originalOrder).Once()
	suite.Require().NoError(suite.repository.Add(ctx, originalOrder))

	retrievedOrder, err := suite.repository.Get(ctx, originalOrder.ID())
	suite.Require().NoError(err)

	suite.Equal(order.InDelivery, retrievedOrder.Status())

	restoredPay := retrievedOrder.Payment()
	suite.Require().NotNil(restoredPay)
	suite.Equal(payment.Completed, restoredPay.Status())
	suite.Equal("txn-99", restoredPay.TransactionID())

	restoredDel := retrievedOrder.Delivery()
	suite.Require().NotNil(restoredDel)
	suite.Equal(delivery.Shipped, restoredDel.Status())
	suite.Equal("TRK-99", restoredDel.TrackingNumber())
	suite.Equal("dhl", restoredDel.Courier())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NonExistentOrder_ReturnsNotFoundError() {
	ctx := context.Background()

	retrievedOrder, err := suite.repository.Get(ctx, kernel.NewUUID())

	suite.Nil(retrievedOrder)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_StatusTransitionPersists() {
	ctx := context.Background()

	testOrder := suite.createTestOrder()
	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Twice()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	receipts := suite.receiptsFor(testOrder)
	suite.Require().NoError(testOrder.RecordReservations(receipts))
	suite.Require().NoError(testOrder.Process())
	suite.Require().NoError(suite.repository.Update(ctx, testOrder))

	retrievedOrder, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Processing, retrievedOrder.Status())
	suite.Len(retrievedOrder.Reservations(), len(receipts))

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_ClearedReservationsAreDeleted() {
	ctx := context.Background()

	testOrder := suite.createProcessingOrder()
	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Twice()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	suite.Require().NoError(testOrder.Cancel())
	testOrder.ClearReservations()
	suite.Require().NoError(suite.repository.Update(ctx, testOrder))

	retrievedOrder, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Cancelled, retrievedOrder.Status())
	suite.Empty(retrievedOrder.Reservations())

	var lineCount int64
	suite.Require().NoError(suite.db.Model(&orderrepo.ReservationLineDTO{}).Count(&lineCount).Error)
	suite.Zero(lineCount)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_RepeatedProductLines_KeepReceiptsDistinct() {
	ctx := context.Background()

	testOrder, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID())
	suite.Require().NoError(err)

	productID := kernel.NewUUID()
	price, err := kernel.NewMoney(150, "USD")
	suite.Require().NoError(err)

	for _, quantity := range []int{2, 3} {
		item, itemErr := order.NewItem(productID, quantity, price)
		suite.Require().NoError(itemErr)
		suite.Require().NoError(testOrder.AddItem(item))
	}

	receipts := suite.receiptsFor(testOrder)
	suite.Require().NoError(testOrder.RecordReservations(receipts))
	suite.Require().NoError(testOrder.Process())

	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Twice()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))
	suite.Require().NoError(suite.repository.Update(ctx, testOrder))

	retrievedOrder, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	suite.Require().Len(retrievedOrder.Reservations(), len(receipts))
	for i, receipt := range receipts {
		restored := retrievedOrder.Reservations()[i]
		suite.Equal(productID, restored.ProductID())
		suite.Equal(receipt.Quantity(), restored.Quantity())
		suite.Equal(receipt.Lines(), restored.Lines())
	}

	var lineCount int64
	suite.Require().NoError(suite.db.Model(&orderrepo.ReservationLineDTO{}).Count(&lineCount).Error)
	suite.Equal(int64(len(receipts)), lineCount)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_NonExistentOrder_ReturnsError() {
	ctx := context.Background()

	err := suite.repository.Update(ctx, suite.createTestOrder())
	suite.Require().Error(err)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAllInDeliveryStatus_ReturnsOnlyInDeliveryOrders() {
	ctx := context.Background()

	suite.tracker.On("TrackAggregate", mock.AnythingOfType("kernel.UUID"), mock.Anything).Times(3)

	createdOrder := suite.createTestOrder()
	suite.Require().NoError(suite.repository.Add(ctx, createdOrder))

	processingOrder := suite.createProcessingOrder()
	suite.Require().NoError(suite.repository.Add(ctx, processingOrder))

	inDeliveryOrder := suite.createInDeliveryOrder()
	suite.Require().NoError(suite.repository.Add(ctx, inDeliveryOrder))

	result, err := suite.repository.GetAllInDeliveryStatus(ctx)
	suite.Require().NoError(err)

	suite.Require().Len(result, 1)
	suite.Equal(inDeliveryOrder.ID(), result[0].ID())
	suite.Equal(order.InDelivery, result[0].Status())

	suite.tracker.AssertExpectations(suite.T())
}

// createTestOrder creates a basic order in Created status with two lines.
func (suite *OrderRepositoryIntegrationTestSuite) createTestOrder() *order.Order {
	testOrder, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID())
	suite.Require().NoError(err)

	for i, quantity := range []int{2, 3} {
		price, priceErr := kernel.NewMoney(int64(100*(i+1)), "USD")
		suite.Require().NoError(priceErr)

		item, itemErr := order.NewItem(kernel.NewUUID(), quantity, price)
		suite.Require().NoError(itemErr)
		suite.Require().NoError(testOrder.AddItem(item))
	}

	return testOrder
}

// receiptsFor builds one single-line reservation receipt per order line.
func (suite *OrderRepositoryIntegrationTestSuite) receiptsFor(testOrder *order.Order) []warehouse.Reservation {
	items := testOrder.Items()
	receipts := make([]warehouse.Reservation, 0, len(items))
	for _, item := range items {
		line, err := warehouse.NewReservationLine(kernel.NewUUID(), item.Quantity())
		suite.Require().NoError(err)

		receipt, err := warehouse.NewReservation(item.ProductID(), item.Quantity(),
			[]warehouse.ReservationLine{line})
		suite.Require().NoError(err)
		receipts = append(receipts, receipt)
	}
	return receipts
}

// createProcessingOrder creates an order in Processing status with receipts.
func (suite *OrderRepositoryIntegrationTestSuite) createProcessingOrder() *order.Order {
	testOrder := suite.createTestOrder()
	suite.Require().NoError(testOrder.RecordReservations(suite.receiptsFor(testOrder)))
	suite.Require().NoError(testOrder.Process())
	return testOrder
}

// createInDeliveryOrder creates a paid order already out with a courier.
func (suite *OrderRepositoryIntegrationTestSuite) createInDeliveryOrder() *order.Order {
	testOrder := suite.createProcessingOrder()

	total, err := testOrder.TotalAmount()
	suite.Require().NoError(err)

	pay, err := payment.NewPayment(kernel.NewUUID(), payment.MethodCard, total)
	suite.Require().NoError(err)
	suite.Require().NoError(testOrder.AttachPayment(pay))
	suite.Require().NoError(pay.Complete("txn-1"))

	address, err := kernel.NewAddress("12 Main St", "Springfield")
	suite.Require().NoError(err)
	del, err := delivery.NewDelivery(kernel.NewUUID(), address, "dhl")
	suite.Require().NoError(err)
	suite.Require().NoError(testOrder.AttachDelivery(del))
	suite.Require().NoError(del.Ship("TRK-1"))
	suite.Require().NoError(testOrder.Ship())

	return testOrder
}

// assertOrderCount verifies the number of orders in the database.
func (suite *OrderRepositoryIntegrationTestSuite) assertOrderCount(expected int) {
	var count int64
	suite.Require().NoError(suite.db.Model(&orderrepo.OrderDTO{}).Count(&count).Error)
	suite.Equal(int64(expected), count)
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
