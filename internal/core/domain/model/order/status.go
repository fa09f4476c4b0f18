package order

import (
	"fmt"

	"orders/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions to ensure
// orders follow the correct business workflow.
//
// State transitions:
//
//	Created ──cancel──> Cancelled (terminal)
//	Created ──return──> Returned  (terminal)
//
// No transition leaves a terminal state: a cancel or return attempt on an
// already cancelled or returned order fails instead of overwriting it.
// Payment and shipping statuses are independent axes and are not part of
// this state machine.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Created is the initial status when an order is first created.
	Created

	// Cancelled indicates the order was cancelled. Terminal.
	Cancelled

	// Returned indicates the order was returned. Terminal.
	Returned
)

// getStatusStrings returns a map of Status values to their string representations.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "UNKNOWN",
		Created:   "CREATED",
		Cancelled: "CANCELLED",
		Returned:  "RETURNED",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Created:   "CREATED",
		Cancelled: "CANCELLED",
		Returned:  "RETURNED",
	}
}

// Validate checks if the Status value is valid.
// Valid statuses are Created, Cancelled, and Returned.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name of the status ("CREATED", "CANCELLED",
// "RETURNED"), or "UNKNOWN" for invalid values.
// Implements the fmt.Stringer interface.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal reports whether the status permits no further lifecycle
// transitions. Cancelled and Returned are terminal.
func (s Status) IsTerminal() bool {
	return s == Cancelled || s == Returned
}

// Cancel transitions the status to Cancelled.
//
// Valid transition: Created -> Cancelled.
// Any attempt from a terminal status fails with an InvalidTransitionError
// so a cancelled or returned order is never silently overwritten.
func (s Status) Cancel() (Status, error) {
	if s != Created {
		return Unknown, errs.NewInvalidTransitionError(s.String(), Cancelled.String())
	}

	return Cancelled, nil
}

// Return transitions the status to Returned.
//
// Valid transition: Created -> Returned.
// Any attempt from a terminal status fails with an InvalidTransitionError.
// Terminal states do not cross-transition: a cancelled order cannot be
// returned, nor a returned order cancelled.
func (s Status) Return() (Status, error) {
	if s != Created {
		return Unknown, errs.NewInvalidTransitionError(s.String(), Returned.String())
	}

	return Returned, nil
}
