package repository

import (
	"context"
	"time"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var (
	// ErrOrderNotFound is returned when an order is not found.
	ErrOrderNotFound = errors.New("order not found")
	// ErrStatusConflict is returned when a status transition finds a different current status.
	ErrStatusConflict = errors.New("order status conflict")
)

// OrderPatch carries the optional columns written alongside a status transition.
type OrderPatch struct {
	PaymentRef        *string
	ShiprocketOrderID *string
	TrackingURL       *string
	IncrementAttempts bool
}

// OrderListFilter describes a page of the admin order listing.
type OrderListFilter struct {
	Status *entity.OrderStatus
	Limit  int
	Offset int
}

// OrderRepository defines the interface for order persistence.
type OrderRepository interface {
	// Create persists the order with its items.
	Create(ctx context.Context, order *entity.Order) error

	// FindByID retrieves an order with its items.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)

	// FindByPaymentID retrieves an order by the gateway order id.
	FindByPaymentID(ctx context.Context, paymentID string) (*entity.Order, error)

	// TransitionStatus moves the order from one status to another, applying patch,
	// only if the stored status equals from. It returns ErrStatusConflict otherwise.
	TransitionStatus(ctx context.Context, id uuid.UUID, from, to entity.OrderStatus, patch OrderPatch) error

	// UpdateShipment records shipment or payment details without changing the status.
	UpdateShipment(ctx context.Context, id uuid.UUID, patch OrderPatch) error

	// CountActiveByUser counts the user's orders that are not cancelled.
	CountActiveByUser(ctx context.Context, userID uuid.UUID) (int64, error)

	// FindExpiredPending returns pending orders whose reservation expired before now.
	FindExpiredPending(ctx context.Context, now time.Time, limit int) ([]*entity.Order, error)

	// List returns a page of orders, newest first, with the total match count.
	List(ctx context.Context, filter OrderListFilter) ([]*entity.Order, int64, error)
}
