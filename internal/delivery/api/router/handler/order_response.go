package handler

import (
	"time"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderResponse is the JSON view of an order.
type OrderResponse struct {
	ID                   uuid.UUID              `json:"id"`
	UserID               uuid.UUID              `json:"userId"`
	TotalAmount          decimal.Decimal        `json:"totalAmount"`
	Currency             string                 `json:"currency"`
	Status               entity.OrderStatus     `json:"status"`
	PaymentID            string                 `json:"paymentId"`
	PaymentRef           string                 `json:"paymentRef,omitempty"`
	OfferCode            string                 `json:"offerCode,omitempty"`
	Discount             decimal.Decimal        `json:"discount"`
	ShippingDetails      entity.ShippingDetails `json:"shippingDetails"`
	ShiprocketOrderID    string                 `json:"shiprocketOrderId,omitempty"`
	TrackingURL          string                 `json:"trackingUrl,omitempty"`
	ShippingAttempts     int                    `json:"shippingAttempts"`
	ReservationExpiresAt time.Time              `json:"reservationExpiresAt"`
	Items                []OrderItemResponse    `json:"items"`
	CreatedAt            time.Time              `json:"createdAt"`
	UpdatedAt            time.Time              `json:"updatedAt"`
}

// OrderItemResponse is one purchased line.
type OrderItemResponse struct {
	ProductID uuid.UUID       `json:"productId"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Size      string          `json:"size,omitempty"`
}

// TrackingResponse pairs an order with its shipment state.
type TrackingResponse struct {
	Order    OrderResponse     `json:"order"`
	Tracking *service.Tracking `json:"tracking"`
}

// OrderPageResponse is one page of the admin order list.
type OrderPageResponse struct {
	Orders   []OrderResponse `json:"orders"`
	Total    int64           `json:"total"`
	Page     int             `json:"page"`
	PageSize int             `json:"pageSize"`
}

func toOrderResponse(order *entity.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderItemResponse{
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			Price:     item.Price,
			Size:      item.Size,
		})
	}

	return OrderResponse{
		ID:                   order.ID,
		UserID:               order.UserID,
		TotalAmount:          order.TotalAmount,
		Currency:             order.Currency,
		Status:               order.Status,
		PaymentID:            order.PaymentID,
		PaymentRef:           order.PaymentRef,
		OfferCode:            order.OfferCode,
		Discount:             order.Discount,
		ShippingDetails:      order.ShippingDetails,
		ShiprocketOrderID:    order.ShiprocketOrderID,
		TrackingURL:          order.TrackingURL,
		ShippingAttempts:     order.ShippingAttempts,
		ReservationExpiresAt: order.ReservationExpiresAt,
		Items:                items,
		CreatedAt:            order.CreatedAt,
		UpdatedAt:            order.UpdatedAt,
	}
}
