// Package http provides the inbound HTTP API of the fulfillment service.
// It coordinates between HTTP handlers and application use cases.
package http

import (
	"errors"
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server implements the HTTP handlers for the fulfillment API.
type Server struct {
	// Command handlers
	createOrderHandler      commands.CreateOrderCommandHandler
	placeOrderHandler       commands.PlaceOrderCommandHandler
	processPaymentHandler   commands.ProcessPaymentCommandHandler
	shipOrderHandler        commands.ShipOrderCommandHandler
	cancelOrderHandler      commands.CancelOrderCommandHandler
	completeDeliveryHandler commands.CompleteDeliveryCommandHandler
	createWarehouseHandler  commands.CreateWarehouseCommandHandler
	replenishStockHandler   commands.ReplenishStockCommandHandler

	// Query handlers
	getUncompletedOrdersHandler queries.GetUncompletedOrdersQueryHandler
	getTotalStockHandler        queries.GetTotalStockQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	placeOrderHandler commands.PlaceOrderCommandHandler,
	processPaymentHandler commands.ProcessPaymentCommandHandler,
	shipOrderHandler commands.ShipOrderCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	completeDeliveryHandler commands.CompleteDeliveryCommandHandler,
	createWarehouseHandler commands.CreateWarehouseCommandHandler,
	replenishStockHandler commands.ReplenishStockCommandHandler,
	getUncompletedOrdersHandler queries.GetUncompletedOrdersQueryHandler,
	getTotalStockHandler queries.GetTotalStockQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:          createOrderHandler,
		placeOrderHandler:           placeOrderHandler,
		processPaymentHandler:       processPaymentHandler,
		shipOrderHandler:            shipOrderHandler,
		cancelOrderHandler:          cancelOrderHandler,
		completeDeliveryHandler:     completeDeliveryHandler,
		createWarehouseHandler:      createWarehouseHandler,
		replenishStockHandler:       replenishStockHandler,
		getUncompletedOrdersHandler: getUncompletedOrdersHandler,
		getTotalStockHandler:        getTotalStockHandler,
	}
}

// RegisterRoutes mounts the API endpoints on the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders/active", s.GetActiveOrders)
	api.POST("/orders/:id/place", s.PlaceOrder)
	api.POST("/orders/:id/payment", s.ProcessPayment)
	api.POST("/orders/:id/ship", s.ShipOrder)
	api.POST("/orders/:id/cancel", s.CancelOrder)
	api.POST("/orders/:id/complete", s.CompleteDelivery)

	api.POST("/warehouses", s.CreateWarehouse)
	api.POST("/warehouses/:id/stock", s.ReplenishStock)
	api.GET("/products/:id/stock", s.GetProductStock)
}

// CreateOrder handles POST /api/v1/orders - registers a new order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var newOrder NewOrder
	if err := ctx.Bind(&newOrder); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	clientID, err := kernel.UUIDFromString(newOrder.ClientID)
	if err != nil {
		return badRequest(ctx, "Invalid client id: "+err.Error())
	}

	items := make([]order.Item, 0, len(newOrder.Items))
	for _, line := range newOrder.Items {
		productID, lineErr := kernel.UUIDFromString(line.ProductID)
		if lineErr != nil {
			return badRequest(ctx, "Invalid product id: "+lineErr.Error())
		}

		price, lineErr := kernel.NewMoney(line.PriceAmount, line.PriceCurrency)
		if lineErr != nil {
			return badRequest(ctx, "Invalid price: "+lineErr.Error())
		}

		item, lineErr := order.NewItem(productID, line.Quantity, price)
		if lineErr != nil {
			return badRequest(ctx, "Invalid item: "+lineErr.Error())
		}

		items = append(items, item)
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(orderID, clientID, items)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	err = s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	switch {
	case errors.Is(err, errs.ErrObjectAlreadyExists):
		return conflict(ctx, "Order already exists")
	case err != nil:
		return internalError(ctx, "Failed to create order")
	}

	return ctx.JSON(http.StatusCreated, OrderCreated{ID: orderID.String()})
}

// PlaceOrder handles POST /api/v1/orders/:id/place - reserves stock for an order.
func (s *Server) PlaceOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	cmd, err := commands.NewPlaceOrderCommand(orderID)
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	err = s.placeOrderHandler.Handle(ctx.Request().Context(), cmd)
	switch {
	case errors.Is(err, commands.ErrNotEnoughStock):
		return conflict(ctx, "Not enough stock to place order")
	case errors.Is(err, errs.ErrObjectNotFound):
		return notFound(ctx, "Order not found")
	case err != nil:
		return internalError(ctx, "Failed to place order")
	}

	return ctx.NoContent(http.StatusOK)
}

// ProcessPayment handles POST /api/v1/orders/:id/payment - charges an order.
func (s *Server) ProcessPayment(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	var newPayment NewPayment
	if err = ctx.Bind(&newPayment); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	method, err := methodFromWire(newPayment.Method)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewProcessPaymentCommand(orderID, kernel.NewUUID(), method)
	if err != nil {
		return badRequest(ctx, "Invalid payment data: "+err.Error())
	}

	err = s.processPaymentHandler.Handle(ctx.Request().Context(), cmd)
	switch {
	case errors.Is(err, ports.ErrPaymentDeclined):
		return ctx.JSON(http.StatusPaymentRequired, Error{
			Code:    http.StatusPaymentRequired,
			Message: "Payment declined",
		})
	case errors.Is(err, commands.ErrOrderIsNotProcessing):
		return conflict(ctx, "Order is not awaiting payment")
	case errors.Is(err, commands.ErrPaymentAlreadyCompleted),
		errors.Is(err, commands.ErrPaymentAlreadyFailed):
		return conflict(ctx, err.Error())
	case errors.Is(err, errs.ErrObjectNotFound):
		return notFound(ctx, "Order not found")
	case err != nil:
		return internalError(ctx, "Failed to process payment")
	}

	return ctx.NoContent(http.StatusOK)
}

// ShipOrder handles POST /api/v1/orders/:id/ship - hands an order to a courier.
func (s *Server) ShipOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	var newShipment NewShipment
	if err = ctx.Bind(&newShipment); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	address, err := kernel.NewAddress(newShipment.Street, newShipment.City)
	if err != nil {
		return badRequest(ctx, "Invalid address: "+err.Error())
	}

	cmd, err := commands.NewShipOrderCommand(orderID, kernel.NewUUID(), address, newShipment.Courier)
	if err != nil {
		return badRequest(ctx, "Invalid shipment data: "+err.Error())
	}

	err = s.shipOrderHandler.Handle(ctx.Request().Context(), cmd)
	switch {
	case errors.Is(err, order.ErrPaymentIsNotCompleted),
		errors.Is(err, order.ErrPaymentIsNotAttached):
		return conflict(ctx, "Order is not paid")
	case errors.Is(err, errs.ErrObjectNotFound):
		return notFound(ctx, "Order not found")
	case errors.Is(err, errs.ErrValueIsInvalid):
		return conflict(ctx, "Order cannot be shipped: "+err.Error())
	case err != nil:
		return internalError(ctx, "Failed to ship order")
	}

	return ctx.NoContent(http.StatusOK)
}

// CancelOrder handles POST /api/v1/orders/:id/cancel - cancels an order.
func (s *Server) CancelOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	cmd, err := commands.NewCancelOrderCommand(orderID)
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	err = s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd)
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return notFound(ctx, "Order not found")
	case errors.Is(err, errs.ErrValueIsInvalid):
		return conflict(ctx, "Order cannot be cancelled: "+err.Error())
	case err != nil:
		return internalError(ctx, "Failed to cancel order")
	}

	return ctx.NoContent(http.StatusOK)
}

// CompleteDelivery handles POST /api/v1/orders/:id/complete - records final delivery.
func (s *Server) CompleteDelivery(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	cmd, err := commands.NewCompleteDeliveryCommand(orderID)
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	err = s.completeDeliveryHandler.Handle(ctx.Request().Context(), cmd)
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return notFound(ctx, "Order not found")
	case errors.Is(err, commands.ErrDeliveryIsNotAttached),
		errors.Is(err, errs.ErrValueIsInvalid):
		return conflict(ctx, "Order is not in delivery")
	case err != nil:
		return internalError(ctx, "Failed to complete delivery")
	}

	return ctx.NoContent(http.StatusOK)
}

// GetActiveOrders handles GET /api/v1/orders/active - retrieves all uncompleted orders.
func (s *Server) GetActiveOrders(ctx echo.Context) error {
	query := queries.NewGetUncompletedOrdersQuery()

	orders, err := s.getUncompletedOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return internalError(ctx, "Failed to retrieve orders")
	}

	response := make([]ActiveOrder, len(orders))
	for i, activeOrder := range orders {
		response[i] = ActiveOrder{
			ID:        activeOrder.ID.String(),
			ClientID:  activeOrder.ClientID.String(),
			Status:    activeOrder.Status,
			CreatedAt: activeOrder.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// CreateWarehouse handles POST /api/v1/warehouses - registers a new warehouse.
func (s *Server) CreateWarehouse(ctx echo.Context) error {
	var newWarehouse NewWarehouse
	if err := ctx.Bind(&newWarehouse); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	warehouseID := kernel.NewUUID()
	cmd, err := commands.NewCreateWarehouseCommand(warehouseID, newWarehouse.Name, newWarehouse.Priority)
	if err != nil {
		return badRequest(ctx, "Invalid warehouse data: "+err.Error())
	}

	err = s.createWarehouseHandler.Handle(ctx.Request().Context(), cmd)
	switch {
	case errors.Is(err, errs.ErrObjectAlreadyExists):
		return conflict(ctx, "Warehouse already exists")
	case err != nil:
		return internalError(ctx, "Failed to create warehouse")
	}

	return ctx.JSON(http.StatusCreated, WarehouseCreated{ID: warehouseID.String()})
}

// ReplenishStock handles POST /api/v1/warehouses/:id/stock - adds stock.
func (s *Server) ReplenishStock(ctx echo.Context) error {
	warehouseID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid warehouse id: "+err.Error())
	}

	var newStock NewStock
	if err = ctx.Bind(&newStock); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	productID, err := kernel.UUIDFromString(newStock.ProductID)
	if err != nil {
		return badRequest(ctx, "Invalid product id: "+err.Error())
	}

	cmd, err := commands.NewReplenishStockCommand(warehouseID, productID, newStock.Quantity)
	if err != nil {
		return badRequest(ctx, "Invalid stock data: "+err.Error())
	}

	err = s.replenishStockHandler.Handle(ctx.Request().Context(), cmd)
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return notFound(ctx, "Warehouse not found")
	case err != nil:
		return internalError(ctx, "Failed to replenish stock")
	}

	return ctx.NoContent(http.StatusOK)
}

// GetProductStock handles GET /api/v1/products/:id/stock - total stock lookup.
func (s *Server) GetProductStock(ctx echo.Context) error {
	productID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid product id: "+err.Error())
	}

	query, err := queries.NewGetTotalStockQuery(productID)
	if err != nil {
		return badRequest(ctx, "Invalid product id: "+err.Error())
	}

	stock, err := s.getTotalStockHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return internalError(ctx, "Failed to retrieve stock")
	}

	return ctx.JSON(http.StatusOK, ProductStock{
		ProductID: stock.ProductID.String(),
		Total:     stock.Total,
	})
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: message})
}

func notFound(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusNotFound, Error{Code: http.StatusNotFound, Message: message})
}

func conflict(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusConflict, Error{Code: http.StatusConflict, Message: message})
}

func internalError(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusInternalServerError, Error{Code: http.StatusInternalServerError, Message: message})
}
