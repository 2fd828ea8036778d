package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/payment"
	"fulfillment/internal/pkg/guard"
)

var ErrProcessPaymentCommandIsNotConstructed = errors.New(
	"ProcessPaymentCommand must be created via NewProcessPaymentCommand constructor",
)

// ProcessPaymentCommand represents a request to charge a customer for an
// order that has its stock reserved. Carries the payment identity and the
// chosen payment method; the amount is always the order total.
type ProcessPaymentCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	paymentID kernel.UUID
	method    payment.Method

	guard guard.ConstructorGuard
}

// NewProcessPaymentCommand creates a command to charge an order.
// Validates that the order and payment IDs are valid UUIDs and that the
// payment method is a known one.
func NewProcessPaymentCommand(
	orderID, paymentID kernel.UUID, method payment.Method,
) (ProcessPaymentCommand, error) {
	paymentCommand := ProcessPaymentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		paymentCommand.setOrderID(orderID),
		paymentCommand.setPaymentID(paymentID),
		paymentCommand.setMethod(method),
	); err != nil {
		return ProcessPaymentCommand{}, err
	}

	return paymentCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrProcessPaymentCommandIsNotConstructed if validation fails.
func (c ProcessPaymentCommand) Validate() error {
	return c.guard.Validate(ErrProcessPaymentCommandIsNotConstructed)
}

// OrderID returns the unique identifier of the order to charge.
func (c ProcessPaymentCommand) OrderID() kernel.UUID {
	return c.orderID
}

// PaymentID returns the unique identifier for the payment attempt.
func (c ProcessPaymentCommand) PaymentID() kernel.UUID {
	return c.paymentID
}

// Method returns the payment method chosen by the customer.
func (c ProcessPaymentCommand) Method() payment.Method {
	return c.method
}

func (c *ProcessPaymentCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ProcessPaymentCommand) setPaymentID(paymentID kernel.UUID) error {
	if err := paymentID.Validate(); err != nil {
		return err
	}

	c.paymentID = paymentID
	return nil
}

func (c *ProcessPaymentCommand) setMethod(method payment.Method) error {
	if err := method.Validate(); err != nil {
		return err
	}

	c.method = method
	return nil
}
