package order

import (
	"time"

	"orders/internal/pkg/errs"
	"orders/internal/pkg/guard"
)

var (
	// ErrCancellationIsNotConstructed is returned when a Cancellation was not
	// created through one of its factory methods.
	ErrCancellationIsNotConstructed = errs.NewValueIsRequiredError("Cancellation must be created via NewCancellation or RestoreCancellation")

	// ErrReturnIsNotConstructed is returned when a Return was not created
	// through one of its factory methods.
	ErrReturnIsNotConstructed = errs.NewValueIsRequiredError("Return must be created via NewReturn or RestoreReturn")
)

// Cancellation records why an order was cancelled. It exists if and only if
// the order is in the Cancelled terminal state, created in the same
// transaction as the status change.
type Cancellation struct {
	reason    string
	createdAt time.Time

	guard guard.ConstructorGuard
}

// NewCancellation creates a cancellation record happening now.
func NewCancellation(reason string) (Cancellation, error) {
	if reason == "" {
		return Cancellation{}, errs.NewValueIsRequiredError("reason")
	}

	return Cancellation{
		reason:    reason,
		createdAt: time.Now().UTC(),
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// RestoreCancellation rehydrates a cancellation record from persistence.
func RestoreCancellation(reason string, createdAt time.Time) (Cancellation, error) {
	if reason == "" {
		return Cancellation{}, errs.NewValueIsRequiredError("reason")
	}

	return Cancellation{reason: reason, createdAt: createdAt, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the record was created through a factory method.
func (c Cancellation) Validate() error {
	return c.guard.Validate(ErrCancellationIsNotConstructed)
}

// Reason returns why the order was cancelled.
func (c Cancellation) Reason() string { return c.reason }

// CreatedAt returns when the cancellation happened.
func (c Cancellation) CreatedAt() time.Time { return c.createdAt }

// Return records why an order was returned. It exists if and only if the
// order is in the Returned terminal state.
type Return struct {
	reason    string
	createdAt time.Time

	guard guard.ConstructorGuard
}

// NewReturn creates a return record happening now.
func NewReturn(reason string) (Return, error) {
	if reason == "" {
		return Return{}, errs.NewValueIsRequiredError("reason")
	}

	return Return{
		reason:    reason,
		createdAt: time.Now().UTC(),
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// RestoreReturn rehydrates a return record from persistence.
func RestoreReturn(reason string, createdAt time.Time) (Return, error) {
	if reason == "" {
		return Return{}, errs.NewValueIsRequiredError("reason")
	}

	return Return{reason: reason, createdAt: createdAt, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the record was created through a factory method.
func (r Return) Validate() error {
	return r.guard.Validate(ErrReturnIsNotConstructed)
}

// Reason returns why the order was returned.
func (r Return) Reason() string { return r.reason }

// CreatedAt returns when the return happened.
func (r Return) CreatedAt() time.Time { return r.createdAt }
