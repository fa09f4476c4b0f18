package queries

import (
	"errors"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/guard"
)

// ErrListOrdersQueryIsNotConstructed is returned when a ListOrdersQuery was
// not created via its constructor.
var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery or NewListOrdersQueryForUser constructor",
)

// ListOrdersQuery retrieves order summaries, newest first. The unfiltered
// form lists every order; the per-user form restricts the result to one
// ordering user.
//
// Example:
//
//	query := NewListOrdersQuery()
//	handler := NewListOrdersQueryHandler(db)
//
//	summaries, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to list orders: %w", err)
//	}
type ListOrdersQuery struct {
	userID *kernel.UUID

	guard guard.ConstructorGuard
}

// NewListOrdersQuery creates a query for all orders.
func NewListOrdersQuery() ListOrdersQuery {
	return ListOrdersQuery{guard: guard.NewConstructorGuard()}
}

// NewListOrdersQueryForUser creates a query for one user's orders.
func NewListOrdersQueryForUser(userID kernel.UUID) (ListOrdersQuery, error) {
	if err := userID.Validate(); err != nil {
		return ListOrdersQuery{}, err
	}

	return ListOrdersQuery{
		userID: &userID,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through a constructor.
func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

// UserID returns the user filter, nil when listing all orders.
func (q ListOrdersQuery) UserID() *kernel.UUID {
	return q.userID
}

// ItemSummary is one line item in a listed order.
type ItemSummary struct {
	ProductID kernel.UUID
	Quantity  int
	Price     float64
}

// ShippingSummary is the delivery address of a listed order.
type ShippingSummary struct {
	FullName   string
	Address1   string
	Address2   string
	City       string
	State      string
	PostalCode string
	Country    string
	Phone      string
}

// OrderSummaryResponse is one order in the list projection. It carries the
// row data plus line items and shipping, but not the audit trail or
// resolution records; those belong to the single order view.
type OrderSummaryResponse struct {
	ID             kernel.UUID
	UserID         kernel.UUID
	TotalAmount    float64
	Status         order.Status
	PaymentStatus  order.PaymentStatus
	ShippingStatus order.ShippingStatus
	Items          []ItemSummary
	Shipping       ShippingSummary
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
