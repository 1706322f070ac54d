package handler

import (
	"log/slog"
	"strconv"

	"storefront/internal/delivery/api/response"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

// OrderHandlerParams holds dependencies for OrderHandler, injected by Fx.
type OrderHandlerParams struct {
	fx.In

	OrderUC usecase.OrderUsecase
	Logger  *slog.Logger
}

// OrderHandler serves checkout, payment verification and order queries.
type OrderHandler struct {
	orderUC usecase.OrderUsecase
	logger  *slog.Logger
}

// NewOrderHandler is the constructor for OrderHandler.
func NewOrderHandler(params OrderHandlerParams) *OrderHandler {
	return &OrderHandler{
		orderUC: params.OrderUC,
		logger:  params.Logger,
	}
}

// ShippingDetailsRequest is the delivery address given at checkout.
type ShippingDetailsRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"required,len=10,numeric"`
	Address string `json:"address" validate:"required,max=500"`
	Pincode string `json:"pincode" validate:"required,len=6,numeric"`
	City    string `json:"city" validate:"required,max=100"`
	State   string `json:"state" validate:"max=100"`
}

// CreateOrderRequest is the body of POST /api/payment/create.
type CreateOrderRequest struct {
	Amount          decimal.Decimal        `json:"amount" validate:"gt=0"`
	Currency        string                 `json:"currency" validate:"required,eq=INR"`
	Items           []ItemRequest          `json:"items" validate:"min=1,dive"`
	Discount        decimal.Decimal        `json:"discount" validate:"gte=0"`
	OfferCode       string                 `json:"offerCode" validate:"max=32"`
	ShippingDetails ShippingDetailsRequest `json:"shippingDetails"`
}

// VerifyPaymentRequest is the checkout callback forwarded by the client.
type VerifyPaymentRequest struct {
	OrderID   string    `json:"orderId" validate:"required"` // gateway order id
	PaymentID string    `json:"paymentId" validate:"required"`
	Signature string    `json:"signature" validate:"required"`
	DBOrderID uuid.UUID `json:"dbOrderId" validate:"required"`
}

// ConfirmOrderRequest confirms an order whose payment is already captured.
type ConfirmOrderRequest struct {
	DBOrderID uuid.UUID `json:"dbOrderId" validate:"required"`
	PaymentID string    `json:"paymentId" validate:"required"`
}

// CreateOrder handles POST /api/payment/create.
func (h *OrderHandler) CreateOrder(c echo.Context) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	var req CreateOrderRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	details := req.ShippingDetails
	output, err := h.orderUC.CreateOrder(c.Request().Context(), userID, usecase.CreateOrderInput{
		Amount:    req.Amount,
		Currency:  req.Currency,
		Items:     toItemInputs(req.Items),
		Discount:  req.Discount,
		OfferCode: req.OfferCode,
		ShippingDetails: entity.ShippingDetails{
			Name:    details.Name,
			Email:   details.Email,
			Phone:   details.Phone,
			Address: details.Address,
			Pincode: details.Pincode,
			City:    details.City,
			State:   details.State,
		},
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, output)
}

// VerifyPayment handles POST /api/payment/verify.
func (h *OrderHandler) VerifyPayment(c echo.Context) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	var req VerifyPaymentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	output, err := h.orderUC.VerifyPayment(c.Request().Context(), userID, usecase.VerifyPaymentInput{
		GatewayOrderID: req.OrderID,
		PaymentID:      req.PaymentID,
		Signature:      req.Signature,
		OrderID:        req.DBOrderID,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, output)
}

// ConfirmOrder handles POST /api/orders/confirm.
func (h *OrderHandler) ConfirmOrder(c echo.Context) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	var req ConfirmOrderRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	output, err := h.orderUC.ConfirmOrder(c.Request().Context(), userID, usecase.ConfirmOrderInput{
		OrderID:   req.DBOrderID,
		PaymentID: req.PaymentID,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, output)
}

// GetTracking handles GET /api/orders/track/:orderId.
func (h *OrderHandler) GetTracking(c echo.Context) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	orderID, err := uuid.Parse(c.Param("orderId"))
	if err != nil {
		return domainerrors.ErrOrderNotFound
	}

	output, err := h.orderUC.GetTracking(c.Request().Context(), userID, orderID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, TrackingResponse{
		Order:    toOrderResponse(output.Order),
		Tracking: output.Tracking,
	})
}

// ListOrders handles GET /api/orders for administrators.
func (h *OrderHandler) ListOrders(c echo.Context) error {
	input := usecase.ListOrdersInput{
		Page:     queryInt(c, "page"),
		PageSize: queryInt(c, "pageSize"),
	}
	if raw := c.QueryParam("status"); raw != "" {
		status := entity.OrderStatus(raw)
		if !status.IsValid() {
			return domainerrors.ErrValidationFailed.WithMessagef("Unknown order status %q", raw)
		}
		input.Status = &status
	}

	page, err := h.orderUC.ListOrders(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	orders := make([]OrderResponse, 0, len(page.Orders))
	for _, order := range page.Orders {
		orders = append(orders, toOrderResponse(order))
	}

	return response.OK(c, OrderPageResponse{
		Orders:   orders,
		Total:    page.Total,
		Page:     page.Page,
		PageSize: page.PageSize,
	})
}

// queryInt reads an optional integer query parameter. Garbage reads as 0 and is defaulted later.
func queryInt(c echo.Context, name string) int {
	n, err := strconv.Atoi(c.QueryParam(name))
	if err != nil {
		return 0
	}

	return n
}
