package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ApplyOfferInput is a request to preview an offer code against a cart.
type ApplyOfferInput struct {
	Code      string
	Items     []ItemInput
	CartTotal decimal.Decimal
}

// OfferPreview is the discount an offer would give. Nothing is redeemed.
type OfferPreview struct {
	Code            string          `json:"code"`
	Discount        decimal.Decimal `json:"discount"`
	DiscountedTotal decimal.Decimal `json:"discountedTotal"`
}

// OfferUsecase defines offer code operations exposed to shoppers.
type OfferUsecase interface {
	ApplyOfferCode(ctx context.Context, userID uuid.UUID, input ApplyOfferInput) (*OfferPreview, error)
}
