package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OfferCode is a percentage discount code. Codes are stored upper-cased.
type OfferCode struct {
	ID           uuid.UUID
	Code         string
	Discount     decimal.Decimal
	ExpiryDate   *time.Time
	IsFirstOrder bool
	CreatedAt    time.Time
}

// UserOfferCode records that a user consumed an offer code with a specific order.
type UserOfferCode struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	OfferCodeID uuid.UUID
	OrderID     uuid.UUID
	UsedAt      time.Time
}

// NormalizeOfferCode trims and upper-cases a user supplied code.
func NormalizeOfferCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// IsExpired reports whether the code expired before now.
func (o *OfferCode) IsExpired(now time.Time) bool {
	return o.ExpiryDate != nil && o.ExpiryDate.Before(now)
}

// HasValidDiscount reports whether the discount is a percentage between 0 and 100.
func (o *OfferCode) HasValidDiscount() bool {
	return !o.Discount.IsNegative() && o.Discount.LessThanOrEqual(decimal.NewFromInt(100))
}
