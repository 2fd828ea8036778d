package kernel

import (
	"errors"
	"fmt"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// ErrMoneyIsNotConstructed is returned when attempting to use an improperly initialized Money.
// Money values must be created using the NewMoney constructor to ensure validity.
var ErrMoneyIsNotConstructed = errs.NewValueIsRequiredError(
	"money must be created via NewMoney constructor")

// ErrCurrencyMismatch is returned by arithmetic operations on Money values
// denominated in different currencies.
var ErrCurrencyMismatch = errors.New("money values have different currencies")

// Money represents a monetary amount in minor units (e.g. cents) together
// with its ISO 4217 currency code. Money is an immutable value object; all
// arithmetic returns new values.
//
// Amounts may not be negative: the fulfillment domain has no concept of a
// negative price or total. The zero value of Money is invalid and will fail
// validation - use the constructor to create instances.
//
// Example:
//
//	price, err := kernel.NewMoney(1999, "USD") // $19.99
//	if err != nil {
//	    // Handle validation error
//	}
//	total, _ := price.MultiplyBy(3)
type Money struct { //nolint:recvcheck //using for validation
	amount   int64
	currency string
	guard    guard.ConstructorGuard
}

// NewMoney creates a new Money value with the given amount in minor units
// and a three-letter currency code.
//
// Parameters:
//   - amount: The amount in minor units (must be >= 0)
//   - currency: ISO 4217 currency code (must be exactly 3 characters)
//
// Returns:
//   - Money: A valid money value
//   - error: Validation error if the amount is negative or the currency is malformed
func NewMoney(amount int64, currency string) (Money, error) {
	money := Money{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(money.setAmount(amount), money.setCurrency(currency)); err != nil {
		return Money{}, err
	}

	return money, nil
}

// Validate checks if the Money value was properly constructed using the constructor.
// The zero value of Money is invalid and will fail this validation.
func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}

// Amount returns the monetary amount in minor units.
func (m Money) Amount() int64 {
	return m.amount
}

// Currency returns the ISO 4217 currency code.
func (m Money) Currency() string {
	return m.currency
}

// IsEqual compares two money values for equality.
// Two money values are equal when both amount and currency match.
// Both values must be properly constructed for the comparison to succeed.
func (m Money) IsEqual(other Money) (bool, error) {
	if err := errors.Join(m.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return m == other, nil
}

// Add returns the sum of two money values.
// Both values must be properly constructed and share the same currency.
func (m Money) Add(other Money) (Money, error) {
	if err := errors.Join(m.Validate(), other.Validate()); err != nil {
		return Money{}, err
	}

	if m.currency != other.currency {
		return Money{}, ErrCurrencyMismatch
	}

	return NewMoney(m.amount+other.amount, m.currency)
}

// MultiplyBy returns the money value scaled by a non-negative integer factor.
// Used to compute line-item subtotals from a unit price and a quantity.
func (m Money) MultiplyBy(factor int) (Money, error) {
	if err := m.Validate(); err != nil {
		return Money{}, err
	}

	if factor < 0 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"factor is invalid",
			fmt.Errorf("%d is not greater than or equal to 0", factor),
		)
	}

	return NewMoney(m.amount*int64(factor), m.currency)
}

// String returns a human-readable representation in the form "amount currency",
// e.g. "1999 USD". This method implements the fmt.Stringer interface.
func (m Money) String() string {
	return fmt.Sprintf("%d %s", m.amount, m.currency)
}

// setAmount sets the amount with validation.
// Note: We intentionally use a pointer receiver here while other methods use value receivers.
// Pointer receivers on these private setters enable self-encapsulated validation
// during object construction.
func (m *Money) setAmount(amount int64) error {
	if amount < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"amount is invalid",
			fmt.Errorf("%d is not greater than or equal to 0", amount),
		)
	}

	m.amount = amount
	return nil
}

// setCurrency sets the currency code with validation.
func (m *Money) setCurrency(currency string) error {
	if len(currency) != 3 {
		return errs.NewValueIsInvalidErrorWithCause(
			"currency is invalid",
			fmt.Errorf("%q is not a three-letter currency code", currency),
		)
	}

	m.currency = currency
	return nil
}
