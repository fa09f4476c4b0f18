// Package ports defines the persistence interfaces consumed by the
// application layer. These interfaces establish contracts between the domain
// and infrastructure, enabling dependency inversion and testability.
package ports

import (
	"context"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Implementations persist the complete aggregate (order row, line items,
// shipping, optional sub-records, terminal records, and audit entries)
// and reconstruct it on read.
type OrderRepository interface {
	// Add persists a new order aggregate with all of its sub-records.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate: the mutable
	// order row fields, any newly created terminal sub-record, and newly
	// appended audit entries. Line items are immutable and never rewritten.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier with all
	// relations loaded, including terminal sub-records and the full audit
	// trail.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate retrieves an order like Get but additionally takes a
	// row-level write lock on the order row. Must be called inside a
	// transaction; concurrent lifecycle operations on the same order then
	// serialize on the lock, so the second operation observes the state the
	// first one committed.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)
}
