package http

import (
	"fmt"

	"fulfillment/internal/core/domain/model/payment"
)

// Error is the uniform error payload for every endpoint.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NewOrderItem is one line of an incoming order.
type NewOrderItem struct {
	ProductID     string `json:"product_id"`
	Quantity      int    `json:"quantity"`
	PriceAmount   int64  `json:"price_amount"`
	PriceCurrency string `json:"price_currency"`
}

// NewOrder is the request body for order creation.
type NewOrder struct {
	ClientID string         `json:"client_id"`
	Items    []NewOrderItem `json:"items"`
}

// OrderCreated is the response body for order creation.
type OrderCreated struct {
	ID string `json:"id"`
}

// NewPayment is the request body for charging an order.
type NewPayment struct {
	Method string `json:"method"`
}

// NewShipment is the request body for shipping an order.
type NewShipment struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	Courier string `json:"courier"`
}

// NewWarehouse is the request body for warehouse registration.
type NewWarehouse struct {
	Name     string `json:"name"`
	Priority int    `json:"priority"`
}

// WarehouseCreated is the response body for warehouse registration.
type WarehouseCreated struct {
	ID string `json:"id"`
}

// NewStock is the request body for stock replenishment.
type NewStock struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// ActiveOrder is one entry of the active orders listing.
type ActiveOrder struct {
	ID        string `json:"id"`
	ClientID  string `json:"client_id"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

// ProductStock is the response body for the total stock lookup.
type ProductStock struct {
	ProductID string `json:"product_id"`
	Total     int    `json:"total"`
}

// methodFromWire maps the API's payment method names onto the domain enum.
func methodFromWire(method string) (payment.Method, error) {
	switch method {
	case "card":
		return payment.MethodCard, nil
	case "wallet":
		return payment.MethodWallet, nil
	case "bank_transfer":
		return payment.MethodBankTransfer, nil
	default:
		return payment.MethodUnknown, fmt.Errorf("unknown payment method %q", method)
	}
}
