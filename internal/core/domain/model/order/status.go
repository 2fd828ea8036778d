package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions to ensure
// orders follow the correct fulfillment workflow.
//
// State transitions:
//
//	Created ──> Processing ──> InDelivery ──> Delivered
//	   │            │
//	   └────────────┴──> Cancelled
//
// Status is a value object that validates state transitions and provides
// string representations for persistence and display.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Created is the initial status when an order is first created.
	// Items may still be added; no stock is reserved yet.
	Created

	// Processing indicates every line item has been reserved in full.
	// The order is waiting for payment and shipment.
	Processing

	// InDelivery indicates the order was handed to the courier and is on its way.
	InDelivery

	// Delivered indicates the courier confirmed final delivery.
	// This is a terminal state.
	Delivered

	// Cancelled indicates the order was cancelled before shipment.
	// This is a terminal state; reserved stock has been released.
	Cancelled
)

// getStatusStrings returns a map of Status values to their string representations.
// All statuses are included for string conversion.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "Unknown",
		Created:    "Created",
		Processing: "Processing",
		InDelivery: "InDelivery",
		Delivered:  "Delivered",
		Cancelled:  "Cancelled",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
// Only valid statuses are included to support validation.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Created:    "Created",
		Processing: "Processing",
		InDelivery: "InDelivery",
		Delivered:  "Delivered",
		Cancelled:  "Cancelled",
	}
}

// Validate checks if the Status value is valid.
//
// Valid statuses are: Created, Processing, InDelivery, Delivered, Cancelled.
// Unknown (0) and any other values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// Returns "Unknown" for invalid status values.
//
// This method implements the fmt.Stringer interface and is safe
// to call on any Status value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether the status allows no further transitions.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// Process transitions the status to Processing.
//
// Valid transitions:
//   - Created -> Processing (all line items reserved in full)
//
// Returns (0, error) if the transition is not allowed from the current status.
func (s Status) Process() (Status, error) {
	if s != Created {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to start processing", s.String()),
		)
	}

	return Processing, nil
}

// Ship transitions the status to InDelivery.
//
// Valid transitions:
//   - Processing -> InDelivery (shipment created and handed to the courier)
//
// Returns (0, error) if the transition is not allowed from the current status.
func (s Status) Ship() (Status, error) {
	if s != Processing {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to ship", s.String()),
		)
	}

	return InDelivery, nil
}

// Complete transitions the status to Delivered.
//
// Valid transitions:
//   - InDelivery -> Delivered (courier confirmed final delivery)
//
// Returns (0, error) if the transition is not allowed from the current status.
func (s Status) Complete() (Status, error) {
	if s != InDelivery {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to complete", s.String()),
		)
	}

	return Delivered, nil
}

// ValidateCancel checks if the status allows cancellation without performing
// the transition.
//
// Valid statuses for cancellation: Created, Processing.
// Orders already in delivery or in a terminal state cannot be cancelled.
func (s Status) ValidateCancel() error {
	if s != Created && s != Processing {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to cancel", s.String()),
		)
	}
	return nil
}

// Cancel transitions the status to Cancelled.
//
// Valid transitions:
//   - Created -> Cancelled
//   - Processing -> Cancelled (reserved stock must be released by the caller)
//
// Returns (0, error) if the transition is not allowed from the current status.
func (s Status) Cancel() (Status, error) {
	if err := s.ValidateCancel(); err != nil {
		return 0, err
	}

	return Cancelled, nil
}
