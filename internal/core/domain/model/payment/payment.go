package payment

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	// ErrPaymentIsNotConstructed is returned when a Payment instance was not
	// created through the NewPayment or RestorePayment constructors.
	ErrPaymentIsNotConstructed = errors.New("Payment must be created via NewPayment constructor")

	// ErrTransactionIDIsRequired is returned when completing a payment without
	// the gateway's transaction reference.
	ErrTransactionIDIsRequired = errs.NewValueIsRequiredError("transactionID is required")
)

// Method identifies how the payer settles the payment.
type Method int

const (
	// MethodUnknown represents an invalid or undefined method.
	MethodUnknown Method = iota
	// MethodCard is a credit or debit card charge through the gateway.
	MethodCard
	// MethodWallet is a stored-balance wallet charge through the gateway.
	MethodWallet
	// MethodBankTransfer is a direct bank transfer through the gateway.
	MethodBankTransfer
)

func getMethodStrings() map[Method]string {
	return map[Method]string{
		MethodUnknown:      "Unknown",
		MethodCard:         "Card",
		MethodWallet:       "Wallet",
		MethodBankTransfer: "BankTransfer",
	}
}

// Validate checks if the Method value is valid.
func (m Method) Validate() error {
	if m != MethodCard && m != MethodWallet && m != MethodBankTransfer {
		return errs.NewValueIsInvalidErrorWithCause("method is invalid", fmt.Errorf("%d is not a valid method", m))
	}
	return nil
}

// String returns the human-readable name of the method.
func (m Method) String() string {
	if str, ok := getMethodStrings()[m]; ok {
		return str
	}
	return "Unknown"
}

// Payment is one charge attempt for an order. It carries the amount to
// collect (which must equal the order total), the payment method, and the
// status machine tracking the gateway outcome.
//
// The external transaction reference is set only when the gateway accepts
// the charge; it is never chosen by this system.
type Payment struct {
	// id is the unique identifier for the payment
	id kernel.UUID

	// method identifies how the payer settles
	method Method

	// amount is the sum to collect; equals the order total by construction
	amount kernel.Money

	// status tracks the gateway outcome
	status Status

	// transactionID is the gateway's reference, set on successful charge
	transactionID string

	// guard ensures the payment was properly constructed
	guard guard.ConstructorGuard
}

// NewPayment creates a Pending payment for the given amount.
//
// Parameters:
//   - id: Unique identifier for the payment (must be valid UUID)
//   - method: Settlement method (must be valid)
//   - amount: Sum to collect (must be valid Money)
func NewPayment(id kernel.UUID, method Method, amount kernel.Money) (*Payment, error) {
	p := &Payment{
		status: Pending,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setID(id),
		p.setMethod(method),
		p.setAmount(amount),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// RestorePayment reconstructs a Payment from persistent storage, including
// its status and transaction reference.
func RestorePayment(
	id kernel.UUID, method Method, amount kernel.Money, status Status, transactionID string,
) (*Payment, error) {
	p, err := NewPayment(id, method, amount)
	if err != nil {
		return nil, err
	}

	if err = status.Validate(); err != nil {
		return nil, err
	}

	p.status = status
	p.transactionID = transactionID
	return p, nil
}

// Validate ensures the Payment instance was properly constructed.
func (p *Payment) Validate() error {
	if p == nil {
		return ErrPaymentIsNotConstructed
	}
	return p.guard.Validate(ErrPaymentIsNotConstructed)
}

// IsEqual compares two payments by their unique identifiers.
func (p *Payment) IsEqual(other *Payment) bool {
	return other != nil && p.id.IsEqual(other.id)
}

// ID returns the payment's unique identifier.
func (p *Payment) ID() kernel.UUID {
	return p.id
}

// Method returns the settlement method.
func (p *Payment) Method() Method {
	return p.method
}

// Amount returns the sum to collect.
func (p *Payment) Amount() kernel.Money {
	return p.amount
}

// Status returns the current status of the payment.
func (p *Payment) Status() Status {
	return p.status
}

// TransactionID returns the gateway's transaction reference.
// Empty until the gateway accepts the charge.
func (p *Payment) TransactionID() string {
	return p.transactionID
}

// Complete marks the payment as accepted by the gateway and records the
// gateway's transaction reference. Only a Pending payment can complete, and
// the reference must be non-empty.
func (p *Payment) Complete(transactionID string) error {
	if transactionID == "" {
		return ErrTransactionIDIsRequired
	}

	newStatus, err := p.status.Complete()
	if err != nil {
		return err
	}

	p.status = newStatus
	p.transactionID = transactionID
	return nil
}

// Fail marks the payment as declined by the gateway.
// Only a Pending payment can fail.
func (p *Payment) Fail() error {
	newStatus, err := p.status.Fail()
	if err != nil {
		return err
	}

	p.status = newStatus
	return nil
}

// Refund marks a completed payment as returned to the payer.
func (p *Payment) Refund() error {
	newStatus, err := p.status.Refund()
	if err != nil {
		return err
	}

	p.status = newStatus
	return nil
}

func (p *Payment) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	p.id = id
	return nil
}

func (p *Payment) setMethod(method Method) error {
	if err := method.Validate(); err != nil {
		return err
	}

	p.method = method
	return nil
}

func (p *Payment) setAmount(amount kernel.Money) error {
	if err := amount.Validate(); err != nil {
		return err
	}

	p.amount = amount
	return nil
}
