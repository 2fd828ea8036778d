package commands

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/payment"
	"fulfillment/internal/core/ports"
)

var (
	// ErrOrderIsNotProcessing is returned when charging an order whose stock
	// has not been reserved yet, or that has already moved on.
	ErrOrderIsNotProcessing = errors.New("order is not in processing status")

	// ErrPaymentAlreadyCompleted is returned when charging an order that has
	// already been paid.
	ErrPaymentAlreadyCompleted = errors.New("order payment is already completed")

	// ErrPaymentAlreadyFailed is returned when charging an order whose single
	// payment attempt was declined. The order can only be cancelled.
	ErrPaymentAlreadyFailed = errors.New("order payment has already failed")
)

// ProcessPaymentCommandHandler charges the customer for an order through the
// external payment provider.
//
// Outcome handling distinguishes the provider's answer from transport
// trouble:
//   - Success completes the payment with the provider's transaction reference
//   - A decline (ports.ErrPaymentDeclined) is final: the payment is persisted
//     as failed and the error is returned; reserved stock stays held until
//     the order is cancelled
//   - Any other error leaves the payment pending and nothing is persisted,
//     so the charge can be retried
//
// Example:
//
//	handler := NewProcessPaymentCommandHandler(uowFactory, gateway)
//	cmd, _ := NewProcessPaymentCommand(orderID, paymentID, payment.MethodCard)
//	err := handler.Handle(ctx, cmd)
//	if errors.Is(err, ports.ErrPaymentDeclined) {
//	    log.Println("Card declined; ask the customer for another method")
//	}
type ProcessPaymentCommandHandler struct {
	uowFactory OrderUoWFactory
	gateway    ports.PaymentGateway
}

// NewProcessPaymentCommandHandler creates a handler for payment operations.
// Requires an OrderUoWFactory for transactional persistence and the payment
// gateway for charging.
func NewProcessPaymentCommandHandler(
	uowFactory OrderUoWFactory, gateway ports.PaymentGateway,
) ProcessPaymentCommandHandler {
	return ProcessPaymentCommandHandler{
		uowFactory: uowFactory,
		gateway:    gateway,
	}
}

// Handle processes the payment command.
// Loads the order (which must be in "processing" status), attaches a pending
// payment for the order total if none exists yet, submits the charge to the
// provider and persists the outcome.
func (h ProcessPaymentCommandHandler) Handle(ctx context.Context, command ProcessPaymentCommand) error {
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

	chargedOrder, err := orderRepo.Get(ctx, command.OrderID())
	if err != nil {
		return err
	}

	if chargedOrder.Status() != order.Processing {
		return ErrOrderIsNotProcessing
	}

	pay, err := h.pendingPayment(chargedOrder, command)
	if err != nil {
		return err
	}

	transactionID, chargeErr := h.gateway.Charge(ctx, pay)
	if chargeErr != nil {
		if !errors.Is(chargeErr, ports.ErrPaymentDeclined) {
			// Transport trouble: the provider never answered, so the payment
			// stays pending and the charge can be retried.
			return chargeErr
		}

		if err = pay.Fail(); err != nil {
			return err
		}

		if err = orderRepo.Update(ctx, chargedOrder); err != nil {
			return err
		}

		if err = uow.Commit(ctx); err != nil {
			return err
		}

		return chargeErr
	}

	if err = pay.Complete(transactionID); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, chargedOrder); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}

// pendingPayment returns the order's pending payment, creating and attaching
// one for the order total when this is the first charge attempt.
func (h ProcessPaymentCommandHandler) pendingPayment(
	chargedOrder *order.Order, command ProcessPaymentCommand,
) (*payment.Payment, error) {
	if existing := chargedOrder.Payment(); existing != nil {
		switch existing.Status() {
		case payment.Completed:
			return nil, ErrPaymentAlreadyCompleted
		case payment.Failed:
			return nil, ErrPaymentAlreadyFailed
		default:
			return existing, nil
		}
	}

	total, err := chargedOrder.TotalAmount()
	if err != nil {
		return nil, err
	}

	pay, err := payment.NewPayment(command.PaymentID(), command.Method(), total)
	if err != nil {
		return nil, err
	}

	if err = chargedOrder.AttachPayment(pay); err != nil {
		return nil, err
	}

	return pay, nil
}
