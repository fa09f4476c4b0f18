package order_test

import (
	"testing"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validItems(t *testing.T) []order.Item {
	t.Helper()
	item, err := order.NewItem(kernel.NewUUID(), 2, 10)
	require.NoError(t, err)
	return []order.Item{item}
}

func validShipping(t *testing.T) order.ShippingInfo {
	t.Helper()
	shipping, err := order.NewShippingInfo(
		"Jane Doe", "1 Main St", "", "Springfield", "IL", "62701", "US", "+1-555-0100")
	require.NoError(t, err)
	return shipping
}

func newCreatedOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(), validItems(t), validShipping(t), 20, nil, nil, nil)
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	t.Run("valid_order_starts_created_with_one_audit_entry", func(t *testing.T) {
		userID := kernel.NewUUID()

		o, err := order.NewOrder(
			kernel.NewUUID(), userID, validItems(t), validShipping(t), 20, nil, nil, nil)

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.Equal(t, order.Created, o.Status())
		assert.Equal(t, order.PaymentPending, o.PaymentStatus())
		assert.Equal(t, order.ShippingPending, o.ShippingStatus())
		assert.Nil(t, o.Cancellation())
		assert.Nil(t, o.ReturnInfo())

		auditLog := o.AuditLog()
		require.Len(t, auditLog, 1)
		assert.Equal(t, order.ActionOrderCreated, auditLog[0].Action())
		assert.Equal(t, userID.String(), auditLog[0].ActorID())
	})

	t.Run("optional_sub_records_are_carried", func(t *testing.T) {
		discount, err := order.NewDiscount("WELCOME10", 2)
		require.NoError(t, err)
		tax, err := order.NewTax(0.07, 1.4)
		require.NoError(t, err)
		paymentInfo, err := order.NewPaymentInfo("stripe", "tx-123", time.Now().UTC())
		require.NoError(t, err)

		o, err := order.NewOrder(
			kernel.NewUUID(), kernel.NewUUID(), validItems(t), validShipping(t), 19.4,
			&discount, &tax, &paymentInfo)

		require.NoError(t, err)
		require.NotNil(t, o.Discount())
		assert.Equal(t, "WELCOME10", o.Discount().Code())
		require.NotNil(t, o.Tax())
		assert.InEpsilon(t, 0.07, o.Tax().Rate(), 1e-9)
		require.NotNil(t, o.PaymentInfo())
		assert.Equal(t, "tx-123", o.PaymentInfo().TransactionID())
	})

	t.Run("empty_items_are_rejected", func(t *testing.T) {
		_, err := order.NewOrder(
			kernel.NewUUID(), kernel.NewUUID(), nil, validShipping(t), 20, nil, nil, nil)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("negative_total_is_rejected", func(t *testing.T) {
		_, err := order.NewOrder(
			kernel.NewUUID(), kernel.NewUUID(), validItems(t), validShipping(t), -1, nil, nil, nil)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("unconstructed_shipping_is_rejected", func(t *testing.T) {
		_, err := order.NewOrder(
			kernel.NewUUID(), kernel.NewUUID(), validItems(t), order.ShippingInfo{}, 20, nil, nil, nil)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("missing_user_id_is_rejected", func(t *testing.T) {
		_, err := order.NewOrder(
			kernel.NewUUID(), kernel.UUID{}, validItems(t), validShipping(t), 20, nil, nil, nil)

		require.Error(t, err)
	})
}

func TestNewItem(t *testing.T) {
	t.Run("zero_quantity_is_rejected", func(t *testing.T) {
		_, err := order.NewItem(kernel.NewUUID(), 0, 10)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("negative_price_is_rejected", func(t *testing.T) {
		_, err := order.NewItem(kernel.NewUUID(), 1, -0.01)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("free_item_is_allowed", func(t *testing.T) {
		item, err := order.NewItem(kernel.NewUUID(), 1, 0)

		require.NoError(t, err)
		assert.Zero(t, item.Price())
	})
}

func TestNewShippingInfo(t *testing.T) {
	t.Run("missing_required_fields_are_reported", func(t *testing.T) {
		_, err := order.NewShippingInfo("", "", "", "", "", "", "", "")

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "fullName")
		assert.Contains(t, err.Error(), "phone")
	})

	t.Run("address2_is_optional", func(t *testing.T) {
		shipping, err := order.NewShippingInfo(
			"Jane Doe", "1 Main St", "", "Springfield", "IL", "62701", "US", "+1-555-0100")

		require.NoError(t, err)
		assert.Empty(t, shipping.Address2())
	})
}

func TestOrder_Cancel(t *testing.T) {
	t.Run("created_order_cancels_with_record_and_audit", func(t *testing.T) {
		o := newCreatedOrder(t)

		err := o.Cancel("changed mind", "U1")

		require.NoError(t, err)
		assert.Equal(t, order.Cancelled, o.Status())
		require.NotNil(t, o.Cancellation())
		assert.Equal(t, "changed mind", o.Cancellation().Reason())
		assert.Nil(t, o.ReturnInfo())

		auditLog := o.AuditLog()
		require.Len(t, auditLog, 2)
		assert.Equal(t, order.ActionOrderCancelled, auditLog[1].Action())
		assert.Equal(t, "U1", auditLog[1].ActorID())
	})

	t.Run("cancelling_twice_fails_and_leaves_state_unchanged", func(t *testing.T) {
		o := newCreatedOrder(t)
		require.NoError(t, o.Cancel("changed mind", "U1"))

		err := o.Cancel("again", "U1")

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Equal(t, order.Cancelled, o.Status())
		assert.Equal(t, "changed mind", o.Cancellation().Reason())
		assert.Len(t, o.AuditLog(), 2)
	})

	t.Run("missing_reason_is_rejected_before_any_mutation", func(t *testing.T) {
		o := newCreatedOrder(t)

		err := o.Cancel("", "U1")

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Equal(t, order.Created, o.Status())
		assert.Len(t, o.AuditLog(), 1)
	})

	t.Run("missing_actor_is_rejected", func(t *testing.T) {
		o := newCreatedOrder(t)

		err := o.Cancel("changed mind", "")

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestOrder_Return(t *testing.T) {
	t.Run("created_order_returns_with_record_and_audit", func(t *testing.T) {
		o := newCreatedOrder(t)

		err := o.Return("damaged", "U1")

		require.NoError(t, err)
		assert.Equal(t, order.Returned, o.Status())
		require.NotNil(t, o.ReturnInfo())
		assert.Equal(t, "damaged", o.ReturnInfo().Reason())
		assert.Nil(t, o.Cancellation())

		auditLog := o.AuditLog()
		require.Len(t, auditLog, 2)
		assert.Equal(t, order.ActionOrderReturned, auditLog[1].Action())
	})

	t.Run("cancelled_order_cannot_be_returned", func(t *testing.T) {
		o := newCreatedOrder(t)
		require.NoError(t, o.Cancel("changed mind", "U1"))

		err := o.Return("damaged", "U1")

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Equal(t, order.Cancelled, o.Status())
		assert.Nil(t, o.ReturnInfo())
	})
}

func TestOrder_UpdatePaymentStatus(t *testing.T) {
	t.Run("updates_and_appends_tagged_audit_entry", func(t *testing.T) {
		o := newCreatedOrder(t)

		err := o.UpdatePaymentStatus(order.PaymentPaid, "system")

		require.NoError(t, err)
		assert.Equal(t, order.PaymentPaid, o.PaymentStatus())

		auditLog := o.AuditLog()
		require.Len(t, auditLog, 2)
		assert.Equal(t, "PAYMENT_STATUS_PAID", auditLog[1].Action())
		assert.Equal(t, "system", auditLog[1].ActorID())
	})

	t.Run("allowed_on_terminal_orders", func(t *testing.T) {
		o := newCreatedOrder(t)
		require.NoError(t, o.Cancel("changed mind", "U1"))

		err := o.UpdatePaymentStatus(order.PaymentRefunded, "system")

		require.NoError(t, err)
		assert.Equal(t, order.PaymentRefunded, o.PaymentStatus())
		assert.Equal(t, order.Cancelled, o.Status())
		assert.Equal(t, "PAYMENT_STATUS_REFUNDED", o.AuditLog()[2].Action())
	})

	t.Run("unrecognized_status_is_rejected", func(t *testing.T) {
		o := newCreatedOrder(t)

		err := o.UpdatePaymentStatus(order.PaymentStatus("SETTLED"), "system")

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Equal(t, order.PaymentPending, o.PaymentStatus())
		assert.Len(t, o.AuditLog(), 1)
	})
}

func TestOrder_UpdateShippingStatus(t *testing.T) {
	t.Run("updates_and_appends_tagged_audit_entry", func(t *testing.T) {
		o := newCreatedOrder(t)

		err := o.UpdateShippingStatus(order.ShippingShipped, "warehouse-7")

		require.NoError(t, err)
		assert.Equal(t, order.ShippingShipped, o.ShippingStatus())
		assert.Equal(t, "SHIPPING_STATUS_SHIPPED", o.AuditLog()[1].Action())
	})

	t.Run("allowed_on_returned_orders", func(t *testing.T) {
		o := newCreatedOrder(t)
		require.NoError(t, o.Return("damaged", "U1"))

		err := o.UpdateShippingStatus(order.ShippingDelivered, "system")

		require.NoError(t, err)
		assert.Equal(t, order.ShippingDelivered, o.ShippingStatus())
	})

	t.Run("missing_actor_is_rejected", func(t *testing.T) {
		o := newCreatedOrder(t)

		err := o.UpdateShippingStatus(order.ShippingShipped, "")

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestRestoreOrder(t *testing.T) {
	t.Run("round_trip_preserves_state", func(t *testing.T) {
		source := newCreatedOrder(t)
		require.NoError(t, source.Cancel("changed mind", "U1"))

		restored, err := order.RestoreOrder(
			source.ID(), source.UserID(), source.TotalAmount(),
			source.Status(), source.PaymentStatus(), source.ShippingStatus(),
			source.Items(), source.Shipping(),
			source.Discount(), source.Tax(), source.PaymentInfo(),
			source.Cancellation(), source.ReturnInfo(), source.AuditLog(),
			source.CreatedAt(), source.UpdatedAt())

		require.NoError(t, err)
		require.NoError(t, restored.Validate())
		assert.True(t, restored.IsEqual(source))
		assert.Equal(t, order.Cancelled, restored.Status())
		assert.Equal(t, "changed mind", restored.Cancellation().Reason())
		assert.Len(t, restored.AuditLog(), 2)
	})

	t.Run("cancelled_status_without_record_is_rejected", func(t *testing.T) {
		source := newCreatedOrder(t)

		_, err := order.RestoreOrder(
			source.ID(), source.UserID(), source.TotalAmount(),
			order.Cancelled, source.PaymentStatus(), source.ShippingStatus(),
			source.Items(), source.Shipping(), nil, nil, nil,
			nil, nil, source.AuditLog(),
			source.CreatedAt(), source.UpdatedAt())

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("record_without_terminal_status_is_rejected", func(t *testing.T) {
		source := newCreatedOrder(t)
		cancellation, err := order.RestoreCancellation("stray", time.Now().UTC())
		require.NoError(t, err)

		_, err = order.RestoreOrder(
			source.ID(), source.UserID(), source.TotalAmount(),
			order.Created, source.PaymentStatus(), source.ShippingStatus(),
			source.Items(), source.Shipping(), nil, nil, nil,
			&cancellation, nil, source.AuditLog(),
			source.CreatedAt(), source.UpdatedAt())

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestOrder_Validate(t *testing.T) {
	t.Run("zero_value_order_is_not_constructed", func(t *testing.T) {
		var o order.Order

		require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})

	t.Run("nil_order_is_not_constructed", func(t *testing.T) {
		var o *order.Order

		require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})
}
