package commands_test

import (
	"testing"

	"orders/internal/core/application/usecases/commands"
	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewUpdatePaymentStatusCommand_Validation(t *testing.T) {
	id := kernel.NewUUID()

	_, err := commands.NewUpdatePaymentStatusCommand(id, order.PaymentPaid, "system")
	require.NoError(t, err)

	_, err = commands.NewUpdatePaymentStatusCommand(id, order.PaymentStatus("SETTLED"), "system")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = commands.NewUpdatePaymentStatusCommand(id, order.PaymentPaid, "")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestUpdatePaymentStatusCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	aggregate := testCreatedOrder(t)
	cmd, err := commands.NewUpdatePaymentStatusCommand(aggregate.ID(), order.PaymentPaid, "system")
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("GetForUpdate", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		repo.On("Update", mock.Anything, aggregate).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdatePaymentStatusCommandHandler(factory)
	updated, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, order.PaymentPaid, updated.PaymentStatus())

	entries := updated.AuditLog()
	require.Len(t, entries, 2)
	assert.Equal(t, "PAYMENT_STATUS_PAID", entries[1].Action())
	assert.Equal(t, "system", entries[1].ActorID())

	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestUpdatePaymentStatusCommandHandler_Handle_TerminalOrder(t *testing.T) {
	// refunds land on cancelled orders, so the payment axis stays writable
	ctx := t.Context()
	aggregate := testCreatedOrder(t)
	require.NoError(t, aggregate.Cancel("changed my mind", "user-1"))

	cmd, err := commands.NewUpdatePaymentStatusCommand(aggregate.ID(), order.PaymentRefunded, "system")
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("GetForUpdate", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		repo.On("Update", mock.Anything, aggregate).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdatePaymentStatusCommandHandler(factory)
	updated, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, order.PaymentRefunded, updated.PaymentStatus())
	assert.Equal(t, order.Cancelled, updated.Status())
}

func TestNewUpdateShippingStatusCommand_Validation(t *testing.T) {
	id := kernel.NewUUID()

	_, err := commands.NewUpdateShippingStatusCommand(id, order.ShippingShipped, "system")
	require.NoError(t, err)

	_, err = commands.NewUpdateShippingStatusCommand(id, order.ShippingStatus("IN_TRANSIT"), "system")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestUpdateShippingStatusCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	aggregate := testCreatedOrder(t)
	cmd, err := commands.NewUpdateShippingStatusCommand(aggregate.ID(), order.ShippingDelivered, "system")
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("GetForUpdate", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		repo.On("Update", mock.Anything, aggregate).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateShippingStatusCommandHandler(factory)
	updated, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, order.ShippingDelivered, updated.ShippingStatus())

	entries := updated.AuditLog()
	require.Len(t, entries, 2)
	assert.Equal(t, "SHIPPING_STATUS_DELIVERED", entries[1].Action())

	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}
