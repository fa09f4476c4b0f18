package http

import (
	"time"

	"orders/internal/core/application/usecases/queries"
	"orders/internal/core/domain/model/order"
)

// Error is the body returned on every failed request. Message carries a
// stable, client-safe description; internal detail stays in the server log.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NewOrder is the request body for order creation. Totals arrive
// pre-computed; the service validates shape, not pricing.
type NewOrder struct {
	UserID      string           `json:"userId"`
	Items       []NewOrderItem   `json:"items"`
	Shipping    ShippingPayload  `json:"shipping"`
	TotalAmount float64          `json:"totalAmount"`
	Discount    *DiscountPayload `json:"discount,omitempty"`
	Tax         *TaxPayload      `json:"tax,omitempty"`
	PaymentInfo *PaymentPayload  `json:"paymentInfo,omitempty"`
}

// NewOrderItem is one line item in an order creation request.
type NewOrderItem struct {
	ProductID string  `json:"productId"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// ShippingPayload is the delivery address in requests and responses.
type ShippingPayload struct {
	FullName   string `json:"fullName"`
	Address1   string `json:"address1"`
	Address2   string `json:"address2,omitempty"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
	Phone      string `json:"phone"`
}

// DiscountPayload is the optional discount record.
type DiscountPayload struct {
	Code   string  `json:"code"`
	Amount float64 `json:"amount"`
}

// TaxPayload is the optional tax record.
type TaxPayload struct {
	TaxRate   float64 `json:"taxRate"`
	TaxAmount float64 `json:"taxAmount"`
}

// PaymentPayload is the optional payment record.
type PaymentPayload struct {
	Provider      string    `json:"provider"`
	TransactionID string    `json:"transactionId"`
	PaidAt        time.Time `json:"paidAt"`
}

// Resolution is the request body for cancel and return operations.
type Resolution struct {
	Reason  string `json:"reason"`
	ActorID string `json:"actorId"`
}

// PaymentStatusUpdate is the request body for payment-status updates.
type PaymentStatusUpdate struct {
	PaymentStatus string `json:"paymentStatus"`
	ActorID       string `json:"actorId"`
}

// ShippingStatusUpdate is the request body for shipping-status updates.
type ShippingStatusUpdate struct {
	ShippingStatus string `json:"shippingStatus"`
	ActorID        string `json:"actorId"`
}

// ResolutionRecord is the cancellation or return record in responses.
type ResolutionRecord struct {
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"createdAt"`
}

// AuditEntry is one audit trail row in responses.
type AuditEntry struct {
	ID        string    `json:"id"`
	Action    string    `json:"action"`
	ActorID   string    `json:"actorId"`
	CreatedAt time.Time `json:"createdAt"`
}

// Order is the full order representation returned by mutating operations
// and the single order view.
type Order struct {
	ID             string            `json:"id"`
	UserID         string            `json:"userId"`
	TotalAmount    float64           `json:"totalAmount"`
	Status         string            `json:"status"`
	PaymentStatus  string            `json:"paymentStatus"`
	ShippingStatus string            `json:"shippingStatus"`
	Items          []NewOrderItem    `json:"items"`
	Shipping       ShippingPayload   `json:"shipping"`
	Discount       *DiscountPayload  `json:"discount,omitempty"`
	Tax            *TaxPayload       `json:"tax,omitempty"`
	PaymentInfo    *PaymentPayload   `json:"paymentInfo,omitempty"`
	Cancellation   *ResolutionRecord `json:"cancellation,omitempty"`
	Return         *ResolutionRecord `json:"return,omitempty"`
	AuditLog       []AuditEntry      `json:"auditLog"`
	CreatedAt      time.Time         `json:"createdAt"`
	UpdatedAt      time.Time         `json:"updatedAt"`
}

// OrderSummary is one order in list responses: row data plus items and
// shipping, without the audit trail and resolution records.
type OrderSummary struct {
	ID             string          `json:"id"`
	UserID         string          `json:"userId"`
	TotalAmount    float64         `json:"totalAmount"`
	Status         string          `json:"status"`
	PaymentStatus  string          `json:"paymentStatus"`
	ShippingStatus string          `json:"shippingStatus"`
	Items          []NewOrderItem  `json:"items"`
	Shipping       ShippingPayload `json:"shipping"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// orderToResponse maps the aggregate to its full wire representation.
func orderToResponse(aggregate *order.Order) Order {
	items := make([]NewOrderItem, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, NewOrderItem{
			ProductID: item.ProductID().String(),
			Quantity:  item.Quantity(),
			Price:     item.Price(),
		})
	}

	shipping := aggregate.Shipping()
	resp := Order{
		ID:             aggregate.ID().String(),
		UserID:         aggregate.UserID().String(),
		TotalAmount:    aggregate.TotalAmount(),
		Status:         aggregate.Status().String(),
		PaymentStatus:  string(aggregate.PaymentStatus()),
		ShippingStatus: string(aggregate.ShippingStatus()),
		Items:          items,
		Shipping: ShippingPayload{
			FullName:   shipping.FullName(),
			Address1:   shipping.Address1(),
			Address2:   shipping.Address2(),
			City:       shipping.City(),
			State:      shipping.State(),
			PostalCode: shipping.PostalCode(),
			Country:    shipping.Country(),
			Phone:      shipping.Phone(),
		},
		AuditLog:  make([]AuditEntry, 0, len(aggregate.AuditLog())),
		CreatedAt: aggregate.CreatedAt(),
		UpdatedAt: aggregate.UpdatedAt(),
	}

	if discount := aggregate.Discount(); discount != nil {
		resp.Discount = &DiscountPayload{Code: discount.Code(), Amount: discount.Amount()}
	}
	if tax := aggregate.Tax(); tax != nil {
		resp.Tax = &TaxPayload{TaxRate: tax.Rate(), TaxAmount: tax.Amount()}
	}
	if payment := aggregate.PaymentInfo(); payment != nil {
		resp.PaymentInfo = &PaymentPayload{
			Provider:      payment.Provider(),
			TransactionID: payment.TransactionID(),
			PaidAt:        payment.PaidAt(),
		}
	}
	if cancellation := aggregate.Cancellation(); cancellation != nil {
		resp.Cancellation = &ResolutionRecord{
			Reason:    cancellation.Reason(),
			CreatedAt: cancellation.CreatedAt(),
		}
	}
	if returnInfo := aggregate.ReturnInfo(); returnInfo != nil {
		resp.Return = &ResolutionRecord{
			Reason:    returnInfo.Reason(),
			CreatedAt: returnInfo.CreatedAt(),
		}
	}
	for _, entry := range aggregate.AuditLog() {
		resp.AuditLog = append(resp.AuditLog, AuditEntry{
			ID:        entry.ID().String(),
			Action:    entry.Action(),
			ActorID:   entry.ActorID(),
			CreatedAt: entry.CreatedAt(),
		})
	}

	return resp
}

// summaryToResponse maps one list projection row to its wire
// representation.
func summaryToResponse(summary queries.OrderSummaryResponse) OrderSummary {
	items := make([]NewOrderItem, 0, len(summary.Items))
	for _, item := range summary.Items {
		items = append(items, NewOrderItem{
			ProductID: item.ProductID.String(),
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	return OrderSummary{
		ID:             summary.ID.String(),
		UserID:         summary.UserID.String(),
		TotalAmount:    summary.TotalAmount,
		Status:         summary.Status.String(),
		PaymentStatus:  string(summary.PaymentStatus),
		ShippingStatus: string(summary.ShippingStatus),
		Items:          items,
		Shipping: ShippingPayload{
			FullName:   summary.Shipping.FullName,
			Address1:   summary.Shipping.Address1,
			Address2:   summary.Shipping.Address2,
			City:       summary.Shipping.City,
			State:      summary.Shipping.State,
			PostalCode: summary.Shipping.PostalCode,
			Country:    summary.Shipping.Country,
			Phone:      summary.Shipping.Phone,
		},
		CreatedAt: summary.CreatedAt,
		UpdatedAt: summary.UpdatedAt,
	}
}
