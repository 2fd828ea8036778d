package kernel

import (
	"errors"
	"fmt"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// ErrAddressIsNotConstructed is returned when attempting to use an improperly initialized Address.
// Addresses must be created using the NewAddress constructor to ensure validity.
var ErrAddressIsNotConstructed = errs.NewValueIsRequiredError(
	"address must be created via NewAddress constructor")

// Address represents a delivery destination. It is an immutable value object
// holding the street line and the city; both are required.
//
// The zero value of Address is invalid and will fail validation - use the
// constructor to create instances.
//
// Example:
//
//	addr, err := kernel.NewAddress("123 Main Street", "Springfield")
//	if err != nil {
//	    // Handle validation error
//	}
type Address struct { //nolint:recvcheck //using for validation
	street string
	city   string
	guard  guard.ConstructorGuard
}

// NewAddress creates a new Address with the specified street and city.
// Both fields must be non-empty.
func NewAddress(street string, city string) (Address, error) {
	address := Address{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(address.setStreet(street), address.setCity(city)); err != nil {
		return Address{}, err
	}

	return address, nil
}

// Validate checks if the Address was properly constructed using the constructor.
func (a Address) Validate() error {
	return a.guard.Validate(ErrAddressIsNotConstructed)
}

// Street returns the street line of the address.
func (a Address) Street() string {
	return a.street
}

// City returns the city of the address.
func (a Address) City() string {
	return a.city
}

// IsEqual compares two addresses for equality.
// Both addresses must be properly constructed for the comparison to succeed.
func (a Address) IsEqual(other Address) (bool, error) {
	if err := errors.Join(a.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return a == other, nil
}

// String returns a human-readable representation in the form "street, city".
// This method implements the fmt.Stringer interface.
func (a Address) String() string {
	return fmt.Sprintf("%s, %s", a.street, a.city)
}

func (a *Address) setStreet(street string) error {
	if street == "" {
		return errs.NewValueIsRequiredError("street is required")
	}

	a.street = street
	return nil
}

func (a *Address) setCity(city string) error {
	if city == "" {
		return errs.NewValueIsRequiredError("city is required")
	}

	a.city = city
	return nil
}
