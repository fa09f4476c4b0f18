package orderrepo

import (
	"context"
	"errors"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/errs"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const uniqueViolation = pq.ErrorCode("23505")

// GormOrderRepository implements OrderRepository using GORM. The aggregate
// maps to several tables; Add writes the whole graph, Update touches the
// order row and inserts new sub-records only. Items are immutable and
// audit rows are append-only, so neither is ever rewritten.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order with all its owned records.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return errs.NewValueIsInvalidErrorWithCause("orderId", err)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves the mutable state of an existing order. The order row is
// updated in place; cancellation, return and audit rows are inserted with
// conflicting rows left untouched, since transitions are one-way and those
// records never change once written.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	db := r.db.WithContext(ctx)

	result := db.Model(&OrderDTO{}).
		Where("id = ?", dto.ID).
		Select("TotalAmount", "Status", "PaymentStatus", "ShippingStatus", "UpdatedAt").
		Updates(map[string]any{
			"total_amount":    dto.TotalAmount,
			"status":          dto.Status,
			"payment_status":  dto.PaymentStatus,
			"shipping_status": dto.ShippingStatus,
			"updated_at":      dto.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("orderId", aggregate.ID().String())
	}

	if dto.Cancellation != nil {
		err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(dto.Cancellation).Error
		if err != nil {
			return err
		}
	}
	if dto.Return != nil {
		err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(dto.Return).Error
		if err != nil {
			return err
		}
	}
	if len(dto.AuditLog) > 0 {
		err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&dto.AuditLog).Error
		if err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID with its full graph.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.get(ctx, id, false)
}

// GetForUpdate retrieves an order by ID, taking a row-level write lock on
// the order row. Within a transaction this serializes concurrent lifecycle
// operations on the same order: the second caller blocks until the first
// commits and then observes the committed state.
func (r *GormOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.get(ctx, id, true)
}

func (r *GormOrderRepository) get(ctx context.Context, id kernel.UUID, forUpdate bool) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	db := r.db.WithContext(ctx)
	if forUpdate {
		db = db.Clauses(clause.Locking{Strength: "UPDATE", Table: clause.Table{Name: "orders"}})
	}

	var dto OrderDTO
	err := db.
		Preload("Items").
		Preload("Shipping").
		Preload("Discount").
		Preload("Tax").
		Preload("PaymentInfo").
		Preload("Cancellation").
		Preload("Return").
		Preload("AuditLog", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("orderId", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
