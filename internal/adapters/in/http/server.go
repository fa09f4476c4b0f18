// Package http exposes the order lifecycle over REST. Handlers translate
// wire payloads into commands and queries, run them, and map domain errors
// to HTTP statuses. No business rules live here.
package http

import (
	"net/http"

	"orders/internal/core/application/usecases/commands"
	"orders/internal/core/application/usecases/queries"
	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	createOrderHandler          commands.CreateOrderCommandHandler
	cancelOrderHandler          commands.CancelOrderCommandHandler
	returnOrderHandler          commands.ReturnOrderCommandHandler
	updatePaymentStatusHandler  commands.UpdatePaymentStatusCommandHandler
	updateShippingStatusHandler commands.UpdateShippingStatusCommandHandler

	getOrderHandler   queries.GetOrderQueryHandler
	listOrdersHandler queries.ListOrdersQueryHandler
}

// NewServer creates an HTTP server with the required command and query
// handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	returnOrderHandler commands.ReturnOrderCommandHandler,
	updatePaymentStatusHandler commands.UpdatePaymentStatusCommandHandler,
	updateShippingStatusHandler commands.UpdateShippingStatusCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	listOrdersHandler queries.ListOrdersQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:          createOrderHandler,
		cancelOrderHandler:          cancelOrderHandler,
		returnOrderHandler:          returnOrderHandler,
		updatePaymentStatusHandler:  updatePaymentStatusHandler,
		updateShippingStatusHandler: updateShippingStatusHandler,
		getOrderHandler:             getOrderHandler,
		listOrdersHandler:           listOrdersHandler,
	}
}

// RegisterRoutes attaches all order routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	e.POST("/order", s.CreateOrder)
	e.GET("/order", s.ListOrders)
	e.GET("/order/:id", s.GetOrder)
	e.POST("/order/:id/cancel", s.CancelOrder)
	e.POST("/order/:id/return", s.ReturnOrder)
	e.PATCH("/order/:id/payment", s.UpdatePaymentStatus)
	e.PATCH("/order/:id/shipping", s.UpdateShippingStatus)
	e.GET("/order/user/:userId", s.ListUserOrders)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// CreateOrder handles POST /order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var payload NewOrder
	if err := ctx.Bind(&payload); err != nil {
		return respondError(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	cmd, err := buildCreateOrderCommand(payload)
	if err != nil {
		return respondError(ctx, err)
	}

	created, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, orderToResponse(created))
}

// ListOrders handles GET /order.
func (s *Server) ListOrders(ctx echo.Context) error {
	query := queries.NewListOrdersQuery()

	summaries, err := s.listOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, summariesToResponse(summaries))
}

// ListUserOrders handles GET /order/user/:userId.
func (s *Server) ListUserOrders(ctx echo.Context) error {
	userID, err := parseUUIDParam(ctx, "userId")
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewListOrdersQueryForUser(userID)
	if err != nil {
		return respondError(ctx, err)
	}

	summaries, err := s.listOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, summariesToResponse(summaries))
}

// GetOrder handles GET /order/:id.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return respondError(ctx, err)
	}

	found, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderToResponse(found))
}

// CancelOrder handles POST /order/:id/cancel.
func (s *Server) CancelOrder(ctx echo.Context) error {
	orderID, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return respondError(ctx, err)
	}

	var payload Resolution
	if err = ctx.Bind(&payload); err != nil {
		return respondError(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, payload.Reason, payload.ActorID)
	if err != nil {
		return respondError(ctx, err)
	}

	cancelled, err := s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderToResponse(cancelled))
}

// ReturnOrder handles POST /order/:id/return.
func (s *Server) ReturnOrder(ctx echo.Context) error {
	orderID, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return respondError(ctx, err)
	}

	var payload Resolution
	if err = ctx.Bind(&payload); err != nil {
		return respondError(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	cmd, err := commands.NewReturnOrderCommand(orderID, payload.Reason, payload.ActorID)
	if err != nil {
		return respondError(ctx, err)
	}

	returned, err := s.returnOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderToResponse(returned))
}

// UpdatePaymentStatus handles PATCH /order/:id/payment.
func (s *Server) UpdatePaymentStatus(ctx echo.Context) error {
	orderID, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return respondError(ctx, err)
	}

	var payload PaymentStatusUpdate
	if err = ctx.Bind(&payload); err != nil {
		return respondError(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	status, err := order.PaymentStatusFromString(payload.PaymentStatus)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewUpdatePaymentStatusCommand(orderID, status, payload.ActorID)
	if err != nil {
		return respondError(ctx, err)
	}

	updated, err := s.updatePaymentStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderToResponse(updated))
}

// UpdateShippingStatus handles PATCH /order/:id/shipping.
func (s *Server) UpdateShippingStatus(ctx echo.Context) error {
	orderID, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return respondError(ctx, err)
	}

	var payload ShippingStatusUpdate
	if err = ctx.Bind(&payload); err != nil {
		return respondError(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	status, err := order.ShippingStatusFromString(payload.ShippingStatus)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewUpdateShippingStatusCommand(orderID, status, payload.ActorID)
	if err != nil {
		return respondError(ctx, err)
	}

	updated, err := s.updateShippingStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderToResponse(updated))
}

func parseUUIDParam(ctx echo.Context, name string) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(ctx.Param(name))
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return id, nil
}

func summariesToResponse(summaries []queries.OrderSummaryResponse) []OrderSummary {
	response := make([]OrderSummary, 0, len(summaries))
	for _, summary := range summaries {
		response = append(response, summaryToResponse(summary))
	}
	return response
}

// buildCreateOrderCommand assembles the domain value objects from the wire
// payload. Each invalid field surfaces as a validation error before any
// transaction opens.
func buildCreateOrderCommand(payload NewOrder) (commands.CreateOrderCommand, error) {
	userID, err := kernel.UUIDFromString(payload.UserID)
	if err != nil {
		return commands.CreateOrderCommand{}, errs.NewValueIsInvalidErrorWithCause("userId", err)
	}

	items := make([]order.Item, 0, len(payload.Items))
	for _, itemPayload := range payload.Items {
		productID, itemErr := kernel.UUIDFromString(itemPayload.ProductID)
		if itemErr != nil {
			return commands.CreateOrderCommand{}, errs.NewValueIsInvalidErrorWithCause("productId", itemErr)
		}
		item, itemErr := order.NewItem(productID, itemPayload.Quantity, itemPayload.Price)
		if itemErr != nil {
			return commands.CreateOrderCommand{}, itemErr
		}
		items = append(items, item)
	}

	shipping, err := order.NewShippingInfo(
		payload.Shipping.FullName,
		payload.Shipping.Address1,
		payload.Shipping.Address2,
		payload.Shipping.City,
		payload.Shipping.State,
		payload.Shipping.PostalCode,
		payload.Shipping.Country,
		payload.Shipping.Phone,
	)
	if err != nil {
		return commands.CreateOrderCommand{}, err
	}

	var discount *order.Discount
	if payload.Discount != nil {
		built, discountErr := order.NewDiscount(payload.Discount.Code, payload.Discount.Amount)
		if discountErr != nil {
			return commands.CreateOrderCommand{}, discountErr
		}
		discount = &built
	}

	var tax *order.Tax
	if payload.Tax != nil {
		built, taxErr := order.NewTax(payload.Tax.TaxRate, payload.Tax.TaxAmount)
		if taxErr != nil {
			return commands.CreateOrderCommand{}, taxErr
		}
		tax = &built
	}

	var paymentInfo *order.PaymentInfo
	if payload.PaymentInfo != nil {
		built, paymentErr := order.NewPaymentInfo(
			payload.PaymentInfo.Provider,
			payload.PaymentInfo.TransactionID,
			payload.PaymentInfo.PaidAt,
		)
		if paymentErr != nil {
			return commands.CreateOrderCommand{}, paymentErr
		}
		paymentInfo = &built
	}

	return commands.NewCreateOrderCommand(
		kernel.NewUUID(), userID, items, shipping, payload.TotalAmount, discount, tax, paymentInfo)
}
