package commands

import (
	"errors"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/errs"
	"orders/internal/pkg/guard"
)

// ErrCreateOrderCommandIsNotConstructed is returned when a CreateOrderCommand
// was not created via its constructor.
var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a request to create a new order with its
// line items, shipping record, and optional discount, tax and payment
// sub-records. Totals arrive pre-computed from the caller.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(
//	    kernel.NewUUID(), userID, items, shipping, 20.00, nil, nil, nil)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	created, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	userID      kernel.UUID
	items       []order.Item
	shipping    order.ShippingInfo
	totalAmount float64
	discount    *order.Discount
	tax         *order.Tax
	paymentInfo *order.PaymentInfo

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new order.
// Items, shipping and the optional sub-records must already be constructed
// through their domain factories; this constructor checks identifiers,
// a non-empty item list, and a non-negative total.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	userID kernel.UUID,
	items []order.Item,
	shipping order.ShippingInfo,
	totalAmount float64,
	discount *order.Discount,
	tax *order.Tax,
	paymentInfo *order.PaymentInfo,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setUserID(userID),
		cmd.setItems(items),
		cmd.setShipping(shipping),
		cmd.setTotalAmount(totalAmount),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	cmd.discount = discount
	cmd.tax = tax
	cmd.paymentInfo = paymentInfo
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the identifier assigned to the new order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// UserID returns the ordering user's identifier.
func (c CreateOrderCommand) UserID() kernel.UUID {
	return c.userID
}

// Items returns the order's line items.
func (c CreateOrderCommand) Items() []order.Item {
	return c.items
}

// Shipping returns the delivery address record.
func (c CreateOrderCommand) Shipping() order.ShippingInfo {
	return c.shipping
}

// TotalAmount returns the pre-computed order total.
func (c CreateOrderCommand) TotalAmount() float64 {
	return c.totalAmount
}

// Discount returns the optional discount record, nil when absent.
func (c CreateOrderCommand) Discount() *order.Discount {
	return c.discount
}

// Tax returns the optional tax record, nil when absent.
func (c CreateOrderCommand) Tax() *order.Tax {
	return c.tax
}

// PaymentInfo returns the optional payment record, nil when absent.
func (c CreateOrderCommand) PaymentInfo() *order.PaymentInfo {
	return c.paymentInfo
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}

	c.userID = userID
	return nil
}

func (c *CreateOrderCommand) setItems(items []order.Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}

	c.items = append([]order.Item(nil), items...)
	return nil
}

func (c *CreateOrderCommand) setShipping(shipping order.ShippingInfo) error {
	if err := shipping.Validate(); err != nil {
		return err
	}

	c.shipping = shipping
	return nil
}

func (c *CreateOrderCommand) setTotalAmount(totalAmount float64) error {
	if totalAmount < 0 {
		return errs.NewValueIsInvalidError("totalAmount")
	}

	c.totalAmount = totalAmount
	return nil
}
