package queries

import (
	"context"

	"orders/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListOrdersQueryHandler reads order summaries straight from the database.
// The projection bypasses aggregate rehydration: the list view has no use
// for audit trails or resolution records, so loading them per row would
// only add queries.
type ListOrdersQueryHandler struct {
	db *gorm.DB
}

// NewListOrdersQueryHandler creates a handler for order list queries.
func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

// Handle executes the list query. Results are ordered by creation time,
// newest first. Returns an empty slice, not nil, when nothing matches;
// an unknown user filter is indistinguishable from a user with no orders.
func (h ListOrdersQueryHandler) Handle(
	ctx context.Context,
	query ListOrdersQuery,
) ([]OrderSummaryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	summaries, err := h.fetchOrders(ctx, query)
	if err != nil {
		return nil, err
	}
	if len(summaries) == 0 {
		return summaries, nil
	}

	index := make(map[kernel.UUID]int, len(summaries))
	ids := make([]uuid.UUID, 0, len(summaries))
	for i, summary := range summaries {
		index[summary.ID] = i
		ids = append(ids, summary.ID.Bytes())
	}

	if err = h.attachItems(ctx, ids, index, summaries); err != nil {
		return nil, err
	}
	if err = h.attachShipping(ctx, ids, index, summaries); err != nil {
		return nil, err
	}

	return summaries, nil
}

func (h ListOrdersQueryHandler) fetchOrders(
	ctx context.Context,
	query ListOrdersQuery,
) ([]OrderSummaryResponse, error) {
	sql := `
		SELECT
			id,
			user_id,
			total_amount,
			status,
			payment_status,
			shipping_status,
			created_at,
			updated_at
		FROM orders
	`
	args := make([]any, 0, 1)
	if query.UserID() != nil {
		sql += ` WHERE user_id = ?`
		args = append(args, query.UserID().Bytes())
	}
	sql += ` ORDER BY created_at DESC`

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := make([]OrderSummaryResponse, 0)
	for rows.Next() {
		var summary OrderSummaryResponse
		var id, userID uuid.UUID

		err = rows.Scan(
			&id,
			&userID,
			&summary.TotalAmount,
			&summary.Status,
			&summary.PaymentStatus,
			&summary.ShippingStatus,
			&summary.CreatedAt,
			&summary.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}

		if summary.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if summary.UserID, err = kernel.UUIDFromBytes(userID[:]); err != nil {
			return nil, err
		}
		summary.Items = make([]ItemSummary, 0)
		summaries = append(summaries, summary)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return summaries, nil
}

func (h ListOrdersQueryHandler) attachItems(
	ctx context.Context,
	ids []uuid.UUID,
	index map[kernel.UUID]int,
	summaries []OrderSummaryResponse,
) error {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			order_id,
			product_id,
			quantity,
			price
		FROM order_items
		WHERE order_id IN ?
	`, ids).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var item ItemSummary
		var orderID, productID uuid.UUID

		if err = rows.Scan(&orderID, &productID, &item.Quantity, &item.Price); err != nil {
			return err
		}
		if item.ProductID, err = kernel.UUIDFromBytes(productID[:]); err != nil {
			return err
		}

		ownerID, err := kernel.UUIDFromBytes(orderID[:])
		if err != nil {
			return err
		}
		if i, ok := index[ownerID]; ok {
			summaries[i].Items = append(summaries[i].Items, item)
		}
	}

	return rows.Err()
}

func (h ListOrdersQueryHandler) attachShipping(
	ctx context.Context,
	ids []uuid.UUID,
	index map[kernel.UUID]int,
	summaries []OrderSummaryResponse,
) error {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			order_id,
			full_name,
			address1,
			address2,
			city,
			state,
			postal_code,
			country,
			phone
		FROM order_shippings
		WHERE order_id IN ?
	`, ids).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var shipping ShippingSummary
		var orderID uuid.UUID

		err = rows.Scan(
			&orderID,
			&shipping.FullName,
			&shipping.Address1,
			&shipping.Address2,
			&shipping.City,
			&shipping.State,
			&shipping.PostalCode,
			&shipping.Country,
			&shipping.Phone,
		)
		if err != nil {
			return err
		}

		ownerID, err := kernel.UUIDFromBytes(orderID[:])
		if err != nil {
			return err
		}
		if i, ok := index[ownerID]; ok {
			summaries[i].Shipping = shipping
		}
	}

	return rows.Err()
}
