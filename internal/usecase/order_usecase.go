package usecase

import (
	"context"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// --- Input DTOs ---

// CreateOrderInput is a checkout request.
type CreateOrderInput struct {
	Amount          decimal.Decimal
	Currency        string
	Items           []ItemInput
	Discount        decimal.Decimal
	OfferCode       string
	ShippingDetails entity.ShippingDetails
}

// VerifyPaymentInput carries the checkout callback of the payment gateway.
type VerifyPaymentInput struct {
	GatewayOrderID string
	PaymentID      string
	Signature      string
	OrderID        uuid.UUID
}

// ConfirmOrderInput confirms an order with an already captured payment.
type ConfirmOrderInput struct {
	OrderID   uuid.UUID
	PaymentID string
}

// ListOrdersInput is one page of the admin listing.
type ListOrdersInput struct {
	Page     int
	PageSize int
	Status   *entity.OrderStatus
}

// --- Output DTOs ---

// CreateOrderOutput is returned to the client to open the payment checkout.
type CreateOrderOutput struct {
	RazorpayOrderID string          `json:"razorpayOrderId"`
	OrderID         uuid.UUID       `json:"orderId"`
	Amount          decimal.Decimal `json:"amount"`
	Currency        string          `json:"currency"`
}

// ConfirmOrderOutput reports the state of the order after confirmation.
type ConfirmOrderOutput struct {
	OrderID           uuid.UUID          `json:"orderId"`
	Status            entity.OrderStatus `json:"status"`
	ShiprocketOrderID string             `json:"shiprocketOrderId,omitempty"`
	TrackingURL       string             `json:"trackingUrl,omitempty"`
}

// TrackingOutput pairs an order with its live shipment state.
type TrackingOutput struct {
	Order    *entity.Order     `json:"order"`
	Tracking *service.Tracking `json:"tracking"`
}

// OrderPage is a page of orders with the total count.
type OrderPage struct {
	Orders   []*entity.Order `json:"orders"`
	Total    int64           `json:"total"`
	Page     int             `json:"page"`
	PageSize int             `json:"pageSize"`
}

// OrderUsecase defines checkout, payment and order lookup operations.
type OrderUsecase interface {
	CreateOrder(ctx context.Context, userID uuid.UUID, input CreateOrderInput) (*CreateOrderOutput, error)
	VerifyPayment(ctx context.Context, userID uuid.UUID, input VerifyPaymentInput) (*ConfirmOrderOutput, error)
	ConfirmOrder(ctx context.Context, userID uuid.UUID, input ConfirmOrderInput) (*ConfirmOrderOutput, error)
	GetTracking(ctx context.Context, userID, orderID uuid.UUID) (*TrackingOutput, error)
	ListOrders(ctx context.Context, input ListOrdersInput) (*OrderPage, error)
}

// FulfillmentUsecase defines the background work of the order worker.
type FulfillmentUsecase interface {
	// RetryShipment creates the shipment of a shipping_failed order again.
	RetryShipment(ctx context.Context, event *service.ShipmentRetryEvent) error

	// ReleaseExpiredReservations cancels abandoned pending orders and returns their stock.
	ReleaseExpiredReservations(ctx context.Context) (int, error)
}

// ErrRetryLater marks a failure that the caller should redeliver later.
var ErrRetryLater = errors.New("retry later")
