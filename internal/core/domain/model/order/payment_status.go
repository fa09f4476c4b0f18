package order

import (
	"fmt"

	"orders/internal/pkg/errs"
)

// PaymentStatus tracks the payment axis of an order. It is independent of
// the lifecycle Status and may change at any point in the order's life,
// including after cancellation or return (refunds still update it).
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "PENDING"
	PaymentPaid     PaymentStatus = "PAID"
	PaymentFailed   PaymentStatus = "FAILED"
	PaymentRefunded PaymentStatus = "REFUNDED"
)

// PaymentStatusFromString parses the recognized wire representation of a
// payment status. Returns a validation error for anything outside the
// recognized set.
func PaymentStatusFromString(s string) (PaymentStatus, error) {
	status := PaymentStatus(s)
	if err := status.Validate(); err != nil {
		return "", err
	}
	return status, nil
}

// Validate checks that the payment status belongs to the recognized set.
func (s PaymentStatus) Validate() error {
	switch s {
	case PaymentPending, PaymentPaid, PaymentFailed, PaymentRefunded:
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause("paymentStatus",
		fmt.Errorf("%q is not a recognized payment status", string(s)))
}

// String returns the wire name of the payment status.
func (s PaymentStatus) String() string {
	return string(s)
}
