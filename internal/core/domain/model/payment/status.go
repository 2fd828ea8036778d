package payment

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status represents the lifecycle state of a payment.
//
// State transitions are monotone forward with a single exception:
//
//	Pending ──> Completed ──> Refunded
//	   │
//	   └──────> Failed
//
// A failed payment is terminal; retrying means attaching a fresh payment
// attempt, never rewinding this one.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Pending is the initial status before the gateway has been asked to charge.
	Pending

	// Completed indicates the gateway accepted the charge.
	// The external transaction reference is recorded at this point.
	Completed

	// Failed indicates the gateway declined the charge. Terminal.
	Failed

	// Refunded indicates a completed payment was returned to the payer. Terminal.
	Refunded
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Pending:   "Pending",
		Completed: "Completed",
		Failed:    "Failed",
		Refunded:  "Refunded",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:   "Pending",
		Completed: "Completed",
		Failed:    "Failed",
		Refunded:  "Refunded",
	}
}

// Validate checks if the Status value is valid.
// Valid statuses are: Pending, Completed, Failed, Refunded.
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

// Complete transitions the status to Completed.
// Only a Pending payment can complete.
func (s Status) Complete() (Status, error) {
	if s != Pending {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to complete", s.String()),
		)
	}

	return Completed, nil
}

// Fail transitions the status to Failed.
// Only a Pending payment can fail.
func (s Status) Fail() (Status, error) {
	if s != Pending {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to fail", s.String()),
		)
	}

	return Failed, nil
}

// Refund transitions the status to Refunded.
// Only a Completed payment can be refunded.
func (s Status) Refund() (Status, error) {
	if s != Completed {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to refund", s.String()),
		)
	}

	return Refunded, nil
}
