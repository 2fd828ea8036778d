package delivery

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status represents the lifecycle state of a delivery.
//
// State transitions:
//
//	Pending ──> Shipped ──> InTransit ──> Delivered
//	                │            │
//	                └────────────┴──> Returned
//
// Delivered and Returned are terminal.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Pending is the initial status before a shipment exists with the courier.
	Pending

	// Shipped indicates the courier accepted the shipment and issued a
	// tracking number.
	Shipped

	// InTransit indicates the courier reported the parcel moving.
	InTransit

	// Delivered indicates the courier confirmed final delivery. Terminal.
	Delivered

	// Returned indicates the parcel came back undelivered. Terminal.
	Returned
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Pending:   "Pending",
		Shipped:   "Shipped",
		InTransit: "InTransit",
		Delivered: "Delivered",
		Returned:  "Returned",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:   "Pending",
		Shipped:   "Shipped",
		InTransit: "InTransit",
		Delivered: "Delivered",
		Returned:  "Returned",
	}
}

// Validate checks if the Status value is valid.
// Valid statuses are: Pending, Shipped, InTransit, Delivered, Returned.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// Returns "Unknown" for invalid status values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Ship transitions the status to Shipped.
// Only a Pending delivery can be shipped.
func (s Status) Ship() (Status, error) {
	if s != Pending {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to ship", s.String()),
		)
	}

	return Shipped, nil
}

// Transit transitions the status to InTransit.
// Only a Shipped delivery can move to InTransit.
func (s Status) Transit() (Status, error) {
	if s != Shipped {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to transit", s.String()),
		)
	}

	return InTransit, nil
}

// Complete transitions the status to Delivered.
// A Shipped or InTransit delivery can complete.
func (s Status) Complete() (Status, error) {
	if s != Shipped && s != InTransit {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to complete", s.String()),
		)
	}

	return Delivered, nil
}

// Return transitions the status to Returned.
// A Shipped or InTransit delivery can be returned.
func (s Status) Return() (Status, error) {
	if s != Shipped && s != InTransit {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to return", s.String()),
		)
	}

	return Returned, nil
}
