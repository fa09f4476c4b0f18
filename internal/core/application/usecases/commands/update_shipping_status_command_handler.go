package commands

import (
	"context"

	"orders/internal/core/domain/model/order"
)

// UpdateShippingStatusCommandHandler handles shipping-status updates,
// symmetric to the payment-status handler.
type UpdateShippingStatusCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewUpdateShippingStatusCommandHandler creates a handler for
// shipping-status updates.
func NewUpdateShippingStatusCommandHandler(uowFactory OrderUoWFactory) UpdateShippingStatusCommandHandler {
	return UpdateShippingStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle updates the shipping status in one transaction and appends a
// SHIPPING_STATUS_<status> audit entry. Returns the updated aggregate.
func (h *UpdateShippingStatusCommandHandler) Handle(ctx context.Context, cmd UpdateShippingStatusCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	aggregate, err := repo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if err = aggregate.UpdateShippingStatus(cmd.ShippingStatus(), cmd.ActorID()); err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return aggregate, nil
}
