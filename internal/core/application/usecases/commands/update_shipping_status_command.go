package commands

import (
	"errors"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/errs"
	"orders/internal/pkg/guard"
)

// ErrUpdateShippingStatusCommandIsNotConstructed is returned when an
// UpdateShippingStatusCommand was not created via its constructor.
var ErrUpdateShippingStatusCommandIsNotConstructed = errors.New(
	"UpdateShippingStatusCommand must be created via NewUpdateShippingStatusCommand constructor",
)

// UpdateShippingStatusCommand represents a request to move an order's
// shipping axis to a new status. Symmetric to the payment-status update.
type UpdateShippingStatusCommand struct { //nolint:recvcheck //using for validation
	orderID        kernel.UUID
	shippingStatus order.ShippingStatus
	actorID        string

	guard guard.ConstructorGuard
}

// NewUpdateShippingStatusCommand creates a command to update the shipping
// status. The status must belong to the recognized set and the actor is
// required.
func NewUpdateShippingStatusCommand(
	orderID kernel.UUID,
	shippingStatus order.ShippingStatus,
	actorID string,
) (UpdateShippingStatusCommand, error) {
	cmd := UpdateShippingStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setShippingStatus(shippingStatus),
		cmd.setActorID(actorID),
	); err != nil {
		return UpdateShippingStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateShippingStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateShippingStatusCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to update.
func (c UpdateShippingStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ShippingStatus returns the target shipping status.
func (c UpdateShippingStatusCommand) ShippingStatus() order.ShippingStatus {
	return c.shippingStatus
}

// ActorID returns who requested the update.
func (c UpdateShippingStatusCommand) ActorID() string {
	return c.actorID
}

func (c *UpdateShippingStatusCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *UpdateShippingStatusCommand) setShippingStatus(shippingStatus order.ShippingStatus) error {
	if err := shippingStatus.Validate(); err != nil {
		return err
	}

	c.shippingStatus = shippingStatus
	return nil
}

func (c *UpdateShippingStatusCommand) setActorID(actorID string) error {
	if actorID == "" {
		return errs.NewValueIsRequiredError("actorId")
	}

	c.actorID = actorID
	return nil
}
