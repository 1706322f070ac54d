package repository

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var (
	// ErrCartNotFound is returned when a user has no cart.
	ErrCartNotFound = errors.New("cart not found")
	// ErrCartItemNotFound is returned when a cart line does not exist.
	ErrCartItemNotFound = errors.New("cart item not found")
)

// CartRepository defines the interface for the persisted cart.
type CartRepository interface {
	// FindByUser retrieves the user's cart with its items.
	FindByUser(ctx context.Context, userID uuid.UUID) (*entity.Cart, error)

	// GetOrCreate returns the user's cart, creating an empty one when absent.
	GetOrCreate(ctx context.Context, userID uuid.UUID) (*entity.Cart, error)

	// UpsertItem inserts the line or overwrites the quantity and price of the
	// existing (product, size) line.
	UpsertItem(ctx context.Context, item *entity.CartItem) error

	// UpdateItemQuantity sets the quantity of a line.
	UpdateItemQuantity(ctx context.Context, cartID, productID uuid.UUID, size string, quantity int) error

	// RemoveItem deletes a line.
	RemoveItem(ctx context.Context, cartID, productID uuid.UUID, size string) error

	// ReplaceItems swaps the whole content of the cart.
	ReplaceItems(ctx context.Context, cartID uuid.UUID, items []*entity.CartItem) error

	// ClearByUser empties the user's cart. A missing cart is not an error.
	ClearByUser(ctx context.Context, userID uuid.UUID) error
}
