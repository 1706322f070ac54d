package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// ShippingDetailsJSON is the jsonb shape of an order's shipping snapshot.
type ShippingDetailsJSON struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Pincode string `json:"pincode"`
	City    string `json:"city"`
	State   string `json:"state,omitempty"`
}

// OrderModel mirrors the 'orders' table.
type OrderModel struct {
	ID                   uuid.UUID                               `gorm:"type:uuid;primaryKey"`
	UserID               uuid.UUID                               `gorm:"type:uuid;not null;index"`
	TotalAmount          decimal.Decimal                         `gorm:"type:numeric(10,2);not null"`
	Currency             string                                  `gorm:"type:varchar(3);not null"`
	Status               string                                  `gorm:"type:varchar(20);not null;index"`
	PaymentID            string                                  `gorm:"type:varchar(100);uniqueIndex;not null"`
	PaymentRef           *string                                 `gorm:"type:varchar(100)"`
	OfferCode            *string                                 `gorm:"type:varchar(50)"`
	Discount             decimal.Decimal                         `gorm:"type:numeric(5,2);not null;default:0"`
	ShippingDetails      datatypes.JSONType[ShippingDetailsJSON] `gorm:"type:jsonb;not null"`
	ShiprocketOrderID    *string                                 `gorm:"column:shiprocket_order_id;type:varchar(100)"`
	TrackingURL          *string                                 `gorm:"column:tracking_url;type:text"`
	ShippingAttempts     int                                     `gorm:"not null;default:0"`
	ReservationExpiresAt time.Time                               `gorm:"not null;index"`
	Items                []*OrderItemModel                       `gorm:"foreignKey:OrderID"`
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// TableName explicitly sets the table name for GORM.
func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel mirrors the 'order_items' table. Rows are never updated.
type OrderItemModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null"`
	Name      string          `gorm:"type:varchar(200);not null"`
	Quantity  int             `gorm:"not null"`
	Price     decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	Size      string          `gorm:"type:varchar(20);not null;default:''"`
}

// TableName explicitly sets the table name for GORM.
func (OrderItemModel) TableName() string {
	return "order_items"
}
