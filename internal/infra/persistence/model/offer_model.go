package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OfferCodeModel mirrors the 'offer_codes' table. Codes are stored upper-cased.
type OfferCodeModel struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Code         string          `gorm:"type:varchar(50);uniqueIndex;not null"`
	Discount     decimal.Decimal `gorm:"type:numeric(5,2);not null"`
	ExpiryDate   *time.Time
	IsFirstOrder bool `gorm:"not null;default:false"`
	CreatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (OfferCodeModel) TableName() string {
	return "offer_codes"
}

// UserOfferCodeModel mirrors the 'user_offer_codes' table, unique per (user_id, offer_code_id).
type UserOfferCodeModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_offer_codes_redemption"`
	OfferCodeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_offer_codes_redemption"`
	OrderID     uuid.UUID `gorm:"type:uuid;not null;index"`
	UsedAt      time.Time `gorm:"not null"`
}

// TableName explicitly sets the table name for GORM.
func (UserOfferCodeModel) TableName() string {
	return "user_offer_codes"
}
