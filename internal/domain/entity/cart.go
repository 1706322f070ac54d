package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Cart is the server-side cart of a single user.
type Cart struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Items     []*CartItem
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CartItem is unique per (product, size) inside a cart. Size is empty when the product is sizeless.
type CartItem struct {
	ID        uuid.UUID
	CartID    uuid.UUID
	ProductID uuid.UUID
	Quantity  int
	Price     decimal.Decimal
	Size      string
}

// FindItem returns the line for a product and size, if present.
func (c *Cart) FindItem(productID uuid.UUID, size string) *CartItem {
	for _, item := range c.Items {
		if item.ProductID == productID && item.Size == size {
			return item
		}
	}

	return nil
}
