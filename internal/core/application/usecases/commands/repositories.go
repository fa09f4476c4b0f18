// Package commands contains business operations that modify order state.
// Implements the Command pattern for write operations in the CQRS split.
// All commands follow a consistent shape: constructor validation (before any
// transaction opens), transaction management, domain transition, persistence.
package commands

import (
	"context"

	"orders/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command
// handlers. These abstractions ensure each lifecycle operation executes as
// one atomic transaction.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository bound to the
	// current transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// OrderUoW manages transactions for order operations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates a fresh unit of work per command, isolating
	// concurrent operations from each other.
	OrderUoWFactory interface {
		Create() OrderUoW
	}
)
