// Package order contains the Order aggregate and its lifecycle state
// machine. The aggregate is the only place where order state changes: every
// transition validates its preconditions, creates the matching sub-record
// (cancellation or return), and appends exactly one audit entry.
package order

import (
	"errors"
	"fmt"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/pkg/errs"
)

// ErrOrderIsNotConstructed is returned when an Order instance was not created
// through the NewOrder or RestoreOrder factory methods. This ensures all
// orders are properly validated.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

// Order represents a customer purchase and its full lifecycle. It is the
// aggregate root owning the line items, shipping record, optional discount,
// tax and payment records, the terminal-state sub-records, and the
// append-only audit trail.
//
// Order maintains these invariants:
//   - Items are non-empty and immutable after creation
//   - Status transitions are one-way: Cancelled and Returned are terminal
//   - A Cancellation (resp. Return) record exists if and only if the order
//     is in the corresponding terminal state
//   - Every mutating operation appends exactly one audit entry
//   - Payment and shipping statuses are independent axes and may change in
//     any lifecycle state
//
// The struct uses private fields to ensure encapsulation; all mutation goes
// through the defined transition methods, never direct field writes. Orders
// are never physically deleted; they are retained for audit.
type Order struct {
	id             kernel.UUID
	userID         kernel.UUID
	totalAmount    float64
	status         Status
	paymentStatus  PaymentStatus
	shippingStatus ShippingStatus

	items        []Item
	shipping     ShippingInfo
	discount     *Discount
	tax          *Tax
	paymentInfo  *PaymentInfo
	cancellation *Cancellation
	returnInfo   *Return
	auditLog     []AuditEntry

	createdAt time.Time
	updatedAt time.Time

	isConstructed bool
}

// NewOrder creates a new Order with status Created, both status axes at
// PENDING, and a single ORDER_CREATED audit entry attributed to the user.
//
// Parameters:
//   - id: unique identifier for the order
//   - userID: the ordering user, also recorded as the creation actor
//   - items: at least one validated line item
//   - shipping: the validated delivery address
//   - totalAmount: pre-computed order total, must be non-negative
//   - discount, tax, paymentInfo: optional validated sub-records, nil when absent
//
// Returns a validation error before any state is built if any input is
// invalid.
func NewOrder(
	id kernel.UUID,
	userID kernel.UUID,
	items []Item,
	shipping ShippingInfo,
	totalAmount float64,
	discount *Discount,
	tax *Tax,
	paymentInfo *PaymentInfo,
) (*Order, error) {
	if err := errors.Join(
		id.Validate(),
		userID.Validate(),
		validateItems(items),
		shipping.Validate(),
		validateTotalAmount(totalAmount),
		validateOptional(discount),
		validateOptional(tax),
		validateOptional(paymentInfo),
	); err != nil {
		return nil, err
	}

	created, err := NewAuditEntry(ActionOrderCreated, userID.String())
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &Order{
		id:             id,
		userID:         userID,
		totalAmount:    totalAmount,
		status:         Created,
		paymentStatus:  PaymentPending,
		shippingStatus: ShippingPending,
		items:          append([]Item(nil), items...),
		shipping:       shipping,
		discount:       discount,
		tax:            tax,
		paymentInfo:    paymentInfo,
		auditLog:       []AuditEntry{created},
		createdAt:      now,
		updatedAt:      now,
		isConstructed:  true,
	}, nil
}

// RestoreOrder rehydrates an Order from persistence without re-running the
// creation side effects. The stored state is trusted except for structural
// validity: identifiers, status and sub-record consistency are still
// checked so corrupt rows surface as errors instead of invalid aggregates.
func RestoreOrder(
	id kernel.UUID,
	userID kernel.UUID,
	totalAmount float64,
	status Status,
	paymentStatus PaymentStatus,
	shippingStatus ShippingStatus,
	items []Item,
	shipping ShippingInfo,
	discount *Discount,
	tax *Tax,
	paymentInfo *PaymentInfo,
	cancellation *Cancellation,
	returnInfo *Return,
	auditLog []AuditEntry,
	createdAt time.Time,
	updatedAt time.Time,
) (*Order, error) {
	if err := errors.Join(
		id.Validate(),
		userID.Validate(),
		validateItems(items),
		shipping.Validate(),
		validateTotalAmount(totalAmount),
		status.Validate(),
		paymentStatus.Validate(),
		shippingStatus.Validate(),
	); err != nil {
		return nil, err
	}

	if (status == Cancelled) != (cancellation != nil) {
		return nil, errs.NewValueIsInvalidErrorWithCause("cancellation",
			fmt.Errorf("cancellation record does not match status %s", status))
	}
	if (status == Returned) != (returnInfo != nil) {
		return nil, errs.NewValueIsInvalidErrorWithCause("return",
			fmt.Errorf("return record does not match status %s", status))
	}

	return &Order{
		id:             id,
		userID:         userID,
		totalAmount:    totalAmount,
		status:         status,
		paymentStatus:  paymentStatus,
		shippingStatus: shippingStatus,
		items:          append([]Item(nil), items...),
		shipping:       shipping,
		discount:       discount,
		tax:            tax,
		paymentInfo:    paymentInfo,
		cancellation:   cancellation,
		returnInfo:     returnInfo,
		auditLog:       append([]AuditEntry(nil), auditLog...),
		createdAt:      createdAt,
		updatedAt:      updatedAt,
		isConstructed:  true,
	}, nil
}

// Validate ensures the Order instance was properly constructed through a
// factory method. This prevents bypassing validation by directly
// instantiating the struct, in particular when reconstructing orders from
// persistence.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// Cancel transitions the order to the Cancelled terminal state.
//
// Preconditions: the order is not already in a terminal state, and both
// reason and actorID are non-empty. On success the order carries a
// Cancellation record with the reason and one new ORDER_CANCELLED audit
// entry; the caller must persist all of it in a single transaction.
//
// Fails with an InvalidTransitionError when the order is already cancelled
// or returned. Terminal state is never overwritten.
func (o *Order) Cancel(reason, actorID string) error {
	if err := errors.Join(
		requireField("reason", reason),
		requireField("actorId", actorID),
	); err != nil {
		return err
	}

	newStatus, err := o.status.Cancel()
	if err != nil {
		return err
	}

	cancellation, err := NewCancellation(reason)
	if err != nil {
		return err
	}

	entry, err := NewAuditEntry(ActionOrderCancelled, actorID)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.cancellation = &cancellation
	o.appendAudit(entry)
	return nil
}

// Return transitions the order to the Returned terminal state.
//
// Same shape as Cancel: requires a non-terminal order, non-empty reason and
// actorID; creates a Return record and one ORDER_RETURNED audit entry.
// A cancelled order cannot be returned.
func (o *Order) Return(reason, actorID string) error {
	if err := errors.Join(
		requireField("reason", reason),
		requireField("actorId", actorID),
	); err != nil {
		return err
	}

	newStatus, err := o.status.Return()
	if err != nil {
		return err
	}

	returnInfo, err := NewReturn(reason)
	if err != nil {
		return err
	}

	entry, err := NewAuditEntry(ActionOrderReturned, actorID)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.returnInfo = &returnInfo
	o.appendAudit(entry)
	return nil
}

// UpdatePaymentStatus moves the payment axis to the given status and appends
// a PAYMENT_STATUS_<status> audit entry. Permitted in every lifecycle state,
// including terminal ones: refunds after cancellation or return still flow
// through here.
func (o *Order) UpdatePaymentStatus(status PaymentStatus, actorID string) error {
	if err := errors.Join(
		status.Validate(),
		requireField("actorId", actorID),
	); err != nil {
		return err
	}

	entry, err := NewAuditEntry(PaymentStatusAction(status), actorID)
	if err != nil {
		return err
	}

	o.paymentStatus = status
	o.appendAudit(entry)
	return nil
}

// UpdateShippingStatus moves the shipping axis to the given status and
// appends a SHIPPING_STATUS_<status> audit entry. Permitted in every
// lifecycle state.
func (o *Order) UpdateShippingStatus(status ShippingStatus, actorID string) error {
	if err := errors.Join(
		status.Validate(),
		requireField("actorId", actorID),
	); err != nil {
		return err
	}

	entry, err := NewAuditEntry(ShippingStatusAction(status), actorID)
	if err != nil {
		return err
	}

	o.shippingStatus = status
	o.appendAudit(entry)
	return nil
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// UserID returns the identifier of the ordering user.
func (o *Order) UserID() kernel.UUID {
	return o.userID
}

// TotalAmount returns the pre-computed order total.
func (o *Order) TotalAmount() float64 {
	return o.totalAmount
}

// Status returns the current lifecycle status of the order.
func (o *Order) Status() Status {
	return o.status
}

// PaymentStatus returns the current payment-axis status.
func (o *Order) PaymentStatus() PaymentStatus {
	return o.paymentStatus
}

// ShippingStatus returns the current shipping-axis status.
func (o *Order) ShippingStatus() ShippingStatus {
	return o.shippingStatus
}

// Items returns a copy of the order's line items.
func (o *Order) Items() []Item {
	return append([]Item(nil), o.items...)
}

// Shipping returns the order's delivery address record.
func (o *Order) Shipping() ShippingInfo {
	return o.shipping
}

// Discount returns the applied discount, or nil when none was supplied.
func (o *Order) Discount() *Discount {
	return o.discount
}

// Tax returns the tax record, or nil when none was supplied.
func (o *Order) Tax() *Tax {
	return o.tax
}

// PaymentInfo returns the payment record, or nil when none was supplied.
func (o *Order) PaymentInfo() *PaymentInfo {
	return o.paymentInfo
}

// Cancellation returns the cancellation record.
// Non-nil if and only if the order status is Cancelled.
func (o *Order) Cancellation() *Cancellation {
	return o.cancellation
}

// ReturnInfo returns the return record.
// Non-nil if and only if the order status is Returned.
func (o *Order) ReturnInfo() *Return {
	return o.returnInfo
}

// AuditLog returns a copy of the append-only audit trail, oldest first.
func (o *Order) AuditLog() []AuditEntry {
	return append([]AuditEntry(nil), o.auditLog...)
}

// CreatedAt returns when the order was created.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns when the order was last mutated.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

func (o *Order) appendAudit(entry AuditEntry) {
	o.auditLog = append(o.auditLog, entry)
	o.updatedAt = time.Now().UTC()
}

func validateItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func validateTotalAmount(totalAmount float64) error {
	if totalAmount < 0 {
		return errs.NewValueIsInvalidErrorWithCause("totalAmount",
			fmt.Errorf("%v is negative", totalAmount))
	}
	return nil
}

type validatable interface {
	Validate() error
}

func validateOptional[T validatable](v *T) error {
	if v == nil {
		return nil
	}
	return (*v).Validate()
}
