// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. The aggregate spans several tables: the order row, its
// line items, the shipping record, optional discount, tax and payment
// records, the terminal-state records, and the audit trail. Mapping keeps
// the domain model free of persistence concerns.
package orderrepo

import (
	"sort"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order
// aggregates. Association fields map the owned tables; GORM creates them
// together with the order row. Timestamps are owned by the domain model,
// so GORM's automatic tracking is disabled.
type OrderDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID         uuid.UUID `gorm:"type:uuid;index"`
	TotalAmount    float64   `gorm:"type:numeric(12,2)"`
	Status         int
	PaymentStatus  string `gorm:"type:varchar(16)"`
	ShippingStatus string `gorm:"type:varchar(16)"`

	Items        []ItemDTO        `gorm:"foreignKey:OrderID;references:ID"`
	Shipping     *ShippingDTO     `gorm:"foreignKey:OrderID;references:ID"`
	Discount     *DiscountDTO     `gorm:"foreignKey:OrderID;references:ID"`
	Tax          *TaxDTO          `gorm:"foreignKey:OrderID;references:ID"`
	PaymentInfo  *PaymentInfoDTO  `gorm:"foreignKey:OrderID;references:ID"`
	Cancellation *CancellationDTO `gorm:"foreignKey:OrderID;references:ID"`
	Return       *ReturnDTO       `gorm:"foreignKey:OrderID;references:ID"`
	AuditLog     []AuditLogDTO    `gorm:"foreignKey:OrderID;references:ID"`

	CreatedAt time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt time.Time `gorm:"autoUpdateTime:false"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO represents one order line item. Items are immutable: written once
// with the order and never updated.
type ItemDTO struct {
	OrderID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProductID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Quantity  int
	Price     float64 `gorm:"type:numeric(12,2)"`
}

// TableName specifies the database table name for order line items.
func (ItemDTO) TableName() string {
	return "order_items"
}

// ShippingDTO represents the delivery address of an order.
type ShippingDTO struct {
	OrderID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	FullName   string
	Address1   string
	Address2   string
	City       string
	State      string
	PostalCode string
	Country    string
	Phone      string
}

// TableName specifies the database table name for shipping records.
func (ShippingDTO) TableName() string {
	return "order_shippings"
}

// DiscountDTO represents an optional discount applied to an order.
type DiscountDTO struct {
	OrderID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Code    string
	Amount  float64 `gorm:"type:numeric(12,2)"`
}

// TableName specifies the database table name for discount records.
func (DiscountDTO) TableName() string {
	return "order_discounts"
}

// TaxDTO represents the optional tax record of an order.
type TaxDTO struct {
	OrderID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	TaxRate   float64   `gorm:"type:numeric(6,4)"`
	TaxAmount float64   `gorm:"type:numeric(12,2)"`
}

// TableName specifies the database table name for tax records.
func (TaxDTO) TableName() string {
	return "order_taxes"
}

// PaymentInfoDTO represents the optional payment record of an order.
type PaymentInfoDTO struct {
	OrderID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Provider      string
	TransactionID string
	PaidAt        time.Time
}

// TableName specifies the database table name for payment records.
func (PaymentInfoDTO) TableName() string {
	return "order_payment_infos"
}

// CancellationDTO records why an order was cancelled. At most one row per
// order; the row exists exactly when the order status is CANCELLED.
type CancellationDTO struct {
	OrderID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Reason    string
	CreatedAt time.Time `gorm:"autoCreateTime:false"`
}

// TableName specifies the database table name for cancellation records.
func (CancellationDTO) TableName() string {
	return "order_cancellations"
}

// ReturnDTO records why an order was returned. Same cardinality rules as
// CancellationDTO.
type ReturnDTO struct {
	OrderID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Reason    string
	CreatedAt time.Time `gorm:"autoCreateTime:false"`
}

// TableName specifies the database table name for return records.
func (ReturnDTO) TableName() string {
	return "order_returns"
}

// AuditLogDTO is one row of an order's append-only audit trail. Rows are
// only ever inserted, never updated or deleted.
type AuditLogDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid;index"`
	Action    string
	ActorID   string
	CreatedAt time.Time `gorm:"autoCreateTime:false"`
}

// TableName specifies the database table name for audit entries.
func (AuditLogDTO) TableName() string {
	return "order_audit_logs"
}

// fromDomain converts an order domain aggregate to its database
// representation, including every owned record.
func fromDomain(aggregate *order.Order) OrderDTO {
	orderID := aggregate.ID().Bytes()

	items := make([]ItemDTO, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, ItemDTO{
			OrderID:   orderID,
			ProductID: item.ProductID().Bytes(),
			Quantity:  item.Quantity(),
			Price:     item.Price(),
		})
	}

	shipping := aggregate.Shipping()
	shippingDTO := &ShippingDTO{
		OrderID:    orderID,
		FullName:   shipping.FullName(),
		Address1:   shipping.Address1(),
		Address2:   shipping.Address2(),
		City:       shipping.City(),
		State:      shipping.State(),
		PostalCode: shipping.PostalCode(),
		Country:    shipping.Country(),
		Phone:      shipping.Phone(),
	}

	var discountDTO *DiscountDTO
	if discount := aggregate.Discount(); discount != nil {
		discountDTO = &DiscountDTO{
			OrderID: orderID,
			Code:    discount.Code(),
			Amount:  discount.Amount(),
		}
	}

	var taxDTO *TaxDTO
	if tax := aggregate.Tax(); tax != nil {
		taxDTO = &TaxDTO{
			OrderID:   orderID,
			TaxRate:   tax.Rate(),
			TaxAmount: tax.Amount(),
		}
	}

	var paymentDTO *PaymentInfoDTO
	if payment := aggregate.PaymentInfo(); payment != nil {
		paymentDTO = &PaymentInfoDTO{
			OrderID:       orderID,
			Provider:      payment.Provider(),
			TransactionID: payment.TransactionID(),
			PaidAt:        payment.PaidAt(),
		}
	}

	var cancellationDTO *CancellationDTO
	if cancellation := aggregate.Cancellation(); cancellation != nil {
		cancellationDTO = &CancellationDTO{
			OrderID:   orderID,
			Reason:    cancellation.Reason(),
			CreatedAt: cancellation.CreatedAt(),
		}
	}

	var returnDTO *ReturnDTO
	if returnInfo := aggregate.ReturnInfo(); returnInfo != nil {
		returnDTO = &ReturnDTO{
			OrderID:   orderID,
			Reason:    returnInfo.Reason(),
			CreatedAt: returnInfo.CreatedAt(),
		}
	}

	auditLog := make([]AuditLogDTO, 0, len(aggregate.AuditLog()))
	for _, entry := range aggregate.AuditLog() {
		auditLog = append(auditLog, AuditLogDTO{
			ID:        entry.ID().Bytes(),
			OrderID:   orderID,
			Action:    entry.Action(),
			ActorID:   entry.ActorID(),
			CreatedAt: entry.CreatedAt(),
		})
	}

	return OrderDTO{
		ID:             orderID,
		UserID:         aggregate.UserID().Bytes(),
		TotalAmount:    aggregate.TotalAmount(),
		Status:         int(aggregate.Status()),
		PaymentStatus:  string(aggregate.PaymentStatus()),
		ShippingStatus: string(aggregate.ShippingStatus()),
		Items:          items,
		Shipping:       shippingDTO,
		Discount:       discountDTO,
		Tax:            taxDTO,
		PaymentInfo:    paymentDTO,
		Cancellation:   cancellationDTO,
		Return:         returnDTO,
		AuditLog:       auditLog,
		CreatedAt:      aggregate.CreatedAt(),
		UpdatedAt:      aggregate.UpdatedAt(),
	}
}

// toDomain converts a database DTO back into an order aggregate using
// RestoreOrder, rebuilding every owned value object through its factory so
// corrupt rows surface as errors.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		productID, itemErr := kernel.UUIDFromBytes(itemDTO.ProductID[:])
		if itemErr != nil {
			return nil, itemErr
		}
		item, itemErr := order.NewItem(productID, itemDTO.Quantity, itemDTO.Price)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	var shipping order.ShippingInfo
	if dto.Shipping != nil {
		shipping, err = order.NewShippingInfo(
			dto.Shipping.FullName,
			dto.Shipping.Address1,
			dto.Shipping.Address2,
			dto.Shipping.City,
			dto.Shipping.State,
			dto.Shipping.PostalCode,
			dto.Shipping.Country,
			dto.Shipping.Phone,
		)
		if err != nil {
			return nil, err
		}
	}

	var discount *order.Discount
	if dto.Discount != nil {
		restored, discountErr := order.NewDiscount(dto.Discount.Code, dto.Discount.Amount)
		if discountErr != nil {
			return nil, discountErr
		}
		discount = &restored
	}

	var tax *order.Tax
	if dto.Tax != nil {
		restored, taxErr := order.NewTax(dto.Tax.TaxRate, dto.Tax.TaxAmount)
		if taxErr != nil {
			return nil, taxErr
		}
		tax = &restored
	}

	var paymentInfo *order.PaymentInfo
	if dto.PaymentInfo != nil {
		restored, paymentErr := order.NewPaymentInfo(
			dto.PaymentInfo.Provider, dto.PaymentInfo.TransactionID, dto.PaymentInfo.PaidAt)
		if paymentErr != nil {
			return nil, paymentErr
		}
		paymentInfo = &restored
	}

	var cancellation *order.Cancellation
	if dto.Cancellation != nil {
		restored, cancelErr := order.RestoreCancellation(
			dto.Cancellation.Reason, dto.Cancellation.CreatedAt)
		if cancelErr != nil {
			return nil, cancelErr
		}
		cancellation = &restored
	}

	var returnInfo *order.Return
	if dto.Return != nil {
		restored, returnErr := order.RestoreReturn(dto.Return.Reason, dto.Return.CreatedAt)
		if returnErr != nil {
			return nil, returnErr
		}
		returnInfo = &restored
	}

	auditLog, err := auditLogToDomain(dto.AuditLog)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id,
		userID,
		dto.TotalAmount,
		order.Status(dto.Status),
		order.PaymentStatus(dto.PaymentStatus),
		order.ShippingStatus(dto.ShippingStatus),
		items,
		shipping,
		discount,
		tax,
		paymentInfo,
		cancellation,
		returnInfo,
		auditLog,
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}

func auditLogToDomain(dtos []AuditLogDTO) ([]order.AuditEntry, error) {
	sorted := append([]AuditLogDTO(nil), dtos...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})

	entries := make([]order.AuditEntry, 0, len(sorted))
	for _, dto := range sorted {
		entryID, err := kernel.UUIDFromBytes(dto.ID[:])
		if err != nil {
			return nil, err
		}
		entry, err := order.RestoreAuditEntry(entryID, dto.Action, dto.ActorID, dto.CreatedAt)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, nil
}
