package order

import (
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/pkg/errs"
	"orders/internal/pkg/guard"
)

// Audit action tags. Status-update actions carry the new status value in the
// tag itself, e.g. PAYMENT_STATUS_PAID or SHIPPING_STATUS_DELIVERED.
const (
	ActionOrderCreated   = "ORDER_CREATED"
	ActionOrderCancelled = "ORDER_CANCELLED"
	ActionOrderReturned  = "ORDER_RETURNED"

	paymentStatusActionPrefix  = "PAYMENT_STATUS_"
	shippingStatusActionPrefix = "SHIPPING_STATUS_"
)

// PaymentStatusAction builds the audit action tag for a payment-status
// update, e.g. PAYMENT_STATUS_REFUNDED.
func PaymentStatusAction(status PaymentStatus) string {
	return paymentStatusActionPrefix + status.String()
}

// ShippingStatusAction builds the audit action tag for a shipping-status
// update, e.g. SHIPPING_STATUS_SHIPPED.
func ShippingStatusAction(status ShippingStatus) string {
	return shippingStatusActionPrefix + status.String()
}

// ErrAuditEntryIsNotConstructed is returned when an AuditEntry instance was
// not created through one of its factory methods.
var ErrAuditEntryIsNotConstructed = errs.NewValueIsRequiredError("AuditEntry must be created via NewAuditEntry or RestoreAuditEntry")

// AuditEntry is one immutable record in an order's append-only audit trail:
// what happened, who did it, and when. Every mutating operation on an order
// appends exactly one entry in the same transaction as the mutation itself.
type AuditEntry struct {
	id        kernel.UUID
	action    string
	actorID   string
	createdAt time.Time

	guard guard.ConstructorGuard
}

// NewAuditEntry creates an audit entry for an action happening now.
func NewAuditEntry(action, actorID string) (AuditEntry, error) {
	if action == "" {
		return AuditEntry{}, errs.NewValueIsRequiredError("action")
	}
	if actorID == "" {
		return AuditEntry{}, errs.NewValueIsRequiredError("actorId")
	}

	return AuditEntry{
		id:        kernel.NewUUID(),
		action:    action,
		actorID:   actorID,
		createdAt: time.Now().UTC(),
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// RestoreAuditEntry rehydrates an audit entry from persistence.
func RestoreAuditEntry(id kernel.UUID, action, actorID string, createdAt time.Time) (AuditEntry, error) {
	if err := id.Validate(); err != nil {
		return AuditEntry{}, err
	}
	if action == "" {
		return AuditEntry{}, errs.NewValueIsRequiredError("action")
	}
	if actorID == "" {
		return AuditEntry{}, errs.NewValueIsRequiredError("actorId")
	}

	return AuditEntry{
		id:        id,
		action:    action,
		actorID:   actorID,
		createdAt: createdAt,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the entry was created through a factory method.
func (e AuditEntry) Validate() error {
	return e.guard.Validate(ErrAuditEntryIsNotConstructed)
}

// ID returns the entry's unique identifier.
func (e AuditEntry) ID() kernel.UUID { return e.id }

// Action returns the action tag.
func (e AuditEntry) Action() string { return e.action }

// ActorID returns the identifier of who performed the action.
func (e AuditEntry) ActorID() string { return e.actorID }

// CreatedAt returns when the action was recorded.
func (e AuditEntry) CreatedAt() time.Time { return e.createdAt }
