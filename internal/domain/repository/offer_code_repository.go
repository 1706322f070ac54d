package repository

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var (
	// ErrOfferCodeNotFound is returned when no offer code matches.
	ErrOfferCodeNotFound = errors.New("offer code not found")
	// ErrAlreadyRedeemed is returned when the (user, offer code) redemption already exists.
	ErrAlreadyRedeemed = errors.New("offer code already redeemed")
)

// OfferCodeRepository defines the interface for offer codes and their redemptions.
type OfferCodeRepository interface {
	// FindByCode looks up an offer by its normalized code.
	FindByCode(ctx context.Context, code string) (*entity.OfferCode, error)

	// HasRedeemed reports whether the user already holds a redemption of the offer.
	HasRedeemed(ctx context.Context, userID, offerCodeID uuid.UUID) (bool, error)

	// CreateRedemption inserts the redemption row. The (user, offer code) pair is
	// unique, a duplicate insert returns ErrAlreadyRedeemed.
	CreateRedemption(ctx context.Context, redemption *entity.UserOfferCode) error

	// DeleteRedemptionByOrder releases the redemption tied to an order.
	DeleteRedemptionByOrder(ctx context.Context, orderID uuid.UUID) error
}
