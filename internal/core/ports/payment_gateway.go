package ports

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/payment"
)

// ErrPaymentDeclined indicates the payment provider processed the charge and
// refused it (insufficient funds, blocked card). Distinct from transport
// failures: a declined charge is a final answer and moves the payment to
// Failed, while a transport error leaves it Pending for retry.
var ErrPaymentDeclined = errors.New("payment declined by provider")

// PaymentGateway defines the contract with the external payment provider.
// Implementations translate provider responses into domain terms: a decline
// surfaces as ErrPaymentDeclined, anything else as a plain error.
type PaymentGateway interface {
	// Charge submits the payment to the provider and returns the provider's
	// transaction reference on success. Returns ErrPaymentDeclined when the
	// provider refuses the charge.
	Charge(ctx context.Context, pay *payment.Payment) (string, error)

	// Refund asks the provider to return a completed payment, identified by
	// the transaction reference Charge issued.
	Refund(ctx context.Context, transactionID string) error
}
