package entity

import (
	"log/slog"
	"time"

	"storefront/internal/util"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	// OrderStatusPending holds reserved stock until payment is confirmed or the reservation expires.
	OrderStatusPending OrderStatus = "pending"
	// OrderStatusConfirmed means payment was captured and the shipment exists or is being created.
	OrderStatusConfirmed OrderStatus = "confirmed"
	// OrderStatusShippingFailed means payment was captured but the shipping gateway rejected the order.
	OrderStatusShippingFailed OrderStatus = "shipping_failed"
	// OrderStatusCancelled means the reservation expired and stock was released.
	OrderStatusCancelled OrderStatus = "cancelled"
)

// String returns the string representation of the status.
func (s OrderStatus) String() string {
	return string(s)
}

// IsValid reports whether s is a known status.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusShippingFailed, OrderStatusCancelled:
		return true
	}

	return false
}

// Order is a checkout attempt. Items are immutable once created.
type Order struct {
	ID                   uuid.UUID
	UserID               uuid.UUID
	TotalAmount          decimal.Decimal
	Currency             string
	Status               OrderStatus
	PaymentID            string // gateway order reference
	PaymentRef           string // gateway payment id, set on confirmation
	OfferCode            string
	Discount             decimal.Decimal
	ShippingDetails      ShippingDetails
	ShiprocketOrderID    string
	TrackingURL          string
	ShippingAttempts     int
	ReservationExpiresAt time.Time
	Items                []*OrderItem
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// OrderItem is a snapshot of a purchased line.
type OrderItem struct {
	ID        uuid.UUID
	OrderID   uuid.UUID
	ProductID uuid.UUID
	Name      string
	Quantity  int
	Price     decimal.Decimal
	Size      string
}

// IsOwnedBy reports whether the order belongs to the user.
func (o *Order) IsOwnedBy(userID uuid.UUID) bool {
	return o.UserID == userID
}

// ShippingDetails is the address snapshot stored with an order.
type ShippingDetails struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Pincode string `json:"pincode"`
	City    string `json:"city"`
	State   string `json:"state,omitempty"`
}

// LogValue keeps contact details out of logs.
func (d ShippingDetails) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("name", d.Name),
		slog.String("email", util.MaskEmail(d.Email)),
		slog.String("phone", util.MaskPhone(d.Phone)),
		slog.String("city", d.City),
		slog.String("pincode", d.Pincode),
	)
}
