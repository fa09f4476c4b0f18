package order

import (
	"fmt"

	"orders/internal/pkg/errs"
)

// ShippingStatus tracks the fulfilment axis of an order. Like
// PaymentStatus it is independent of the lifecycle Status.
type ShippingStatus string

const (
	ShippingPending   ShippingStatus = "PENDING"
	ShippingShipped   ShippingStatus = "SHIPPED"
	ShippingDelivered ShippingStatus = "DELIVERED"
)

// ShippingStatusFromString parses the recognized wire representation of a
// shipping status.
func ShippingStatusFromString(s string) (ShippingStatus, error) {
	status := ShippingStatus(s)
	if err := status.Validate(); err != nil {
		return "", err
	}
	return status, nil
}

// Validate checks that the shipping status belongs to the recognized set.
func (s ShippingStatus) Validate() error {
	switch s {
	case ShippingPending, ShippingShipped, ShippingDelivered:
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause("shippingStatus",
		fmt.Errorf("%q is not a recognized shipping status", string(s)))
}

// String returns the wire name of the shipping status.
func (s ShippingStatus) String() string {
	return string(s)
}
