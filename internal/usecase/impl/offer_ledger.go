package impl

import (
	"context"
	"time"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// offerLedger enforces the redemption rules of offer codes.
type offerLedger struct {
	now func() time.Time
}

func newOfferLedger(now func() time.Time) offerLedger {
	if now == nil {
		now = time.Now
	}

	return offerLedger{now: now}
}

// Check returns the offer when userID may redeem code right now.
func (l offerLedger) Check(
	ctx context.Context,
	offerRepo repository.OfferCodeRepository,
	orderRepo repository.OrderRepository,
	userID uuid.UUID,
	code string,
) (*entity.OfferCode, error) {
	normalized := entity.NormalizeOfferCode(code)
	if normalized == "" {
		return nil, domainerrors.ErrInvalidOfferCode
	}

	offer, err := offerRepo.FindByCode(ctx, normalized)
	if errors.Is(err, repository.ErrOfferCodeNotFound) {
		return nil, domainerrors.ErrInvalidOfferCode
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find offer code")
	}

	if offer.IsExpired(l.now()) {
		return nil, domainerrors.ErrOfferExpired
	}

	used, err := offerRepo.HasRedeemed(ctx, userID, offer.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to check offer redemption")
	}
	if used {
		return nil, domainerrors.ErrOfferAlreadyUsed
	}

	if offer.IsFirstOrder {
		count, err := orderRepo.CountActiveByUser(ctx, userID)
		if err != nil {
			return nil, errors.Wrap(err, "failed to count user orders")
		}
		if count > 0 {
			return nil, domainerrors.ErrOfferNotFirstOrder
		}
	}

	if !offer.HasValidDiscount() {
		return nil, domainerrors.ErrInvalidOfferCode.WithMessagef("Offer code %s has an invalid discount", offer.Code)
	}

	return offer, nil
}

// Redeem records the redemption. It must run inside the order transaction.
func (l offerLedger) Redeem(
	ctx context.Context,
	offerRepo repository.OfferCodeRepository,
	userID uuid.UUID,
	offer *entity.OfferCode,
	orderID uuid.UUID,
) error {
	err := offerRepo.CreateRedemption(ctx, &entity.UserOfferCode{
		ID:          uuid.New(),
		UserID:      userID,
		OfferCodeID: offer.ID,
		OrderID:     orderID,
		UsedAt:      l.now(),
	})
	if errors.Is(err, repository.ErrAlreadyRedeemed) {
		return domainerrors.ErrOfferAlreadyUsed
	}
	if err != nil {
		return errors.Wrap(err, "failed to record offer redemption")
	}

	return nil
}
