// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// --- Input DTOs ---

// ItemInput is a client-submitted line. Price is the client's view and is never trusted.
type ItemInput struct {
	ProductID uuid.UUID
	Quantity  int
	Price     decimal.Decimal
	Size      string
}

// UpdateCartItemInput changes the quantity of one cart line. Zero removes it.
type UpdateCartItemInput struct {
	ProductID uuid.UUID
	Quantity  int
	Size      string
}

// --- Output DTOs ---

// PricedItem is a line re-priced from the product table.
type PricedItem struct {
	ProductID uuid.UUID       `json:"productId"`
	Name      string          `json:"name"`
	Image     string          `json:"image"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Size      string          `json:"size,omitempty"`
}

// PricedCart is the output of the pricing validator.
type PricedCart struct {
	Items []*PricedItem   `json:"items"`
	Total decimal.Decimal `json:"total"`
}

// CartView is the cart as returned to its owner.
type CartView struct {
	Items []*PricedItem   `json:"items"`
	Total decimal.Decimal `json:"total"`
}

// CartValidation is the result of validating a checkout cart.
type CartValidation struct {
	Valid    bool            `json:"valid"`
	Total    decimal.Decimal `json:"total"`
	Items    []*PricedItem   `json:"items"`
	Discount decimal.Decimal `json:"discount"`
}

// CartUsecase defines the server-side cart operations.
type CartUsecase interface {
	GetCart(ctx context.Context, userID uuid.UUID) (*CartView, error)
	SyncCart(ctx context.Context, userID uuid.UUID, items []ItemInput) (*CartView, error)
	AddItem(ctx context.Context, userID uuid.UUID, item ItemInput) (*CartView, error)
	UpdateItem(ctx context.Context, userID uuid.UUID, input UpdateCartItemInput) (*CartView, error)
	RemoveItem(ctx context.Context, userID, productID uuid.UUID, size string) (*CartView, error)
	ClearCart(ctx context.Context, userID uuid.UUID) error
	ValidateCart(ctx context.Context, userID uuid.UUID, items []ItemInput, offerCode string) (*CartValidation, error)
}
