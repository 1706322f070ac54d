package postgres

import (
	"context"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// offerCodeRepository implements the repository.OfferCodeRepository interface.
type offerCodeRepository struct {
	db *gorm.DB
}

// NewOfferCodeRepository is the constructor for offerCodeRepository.
func NewOfferCodeRepository(db *gorm.DB) repository.OfferCodeRepository {
	return &offerCodeRepository{
		db: db,
	}
}

// FindByCode looks up an offer by its normalized code.
func (repo *offerCodeRepository) FindByCode(ctx context.Context, code string) (*entity.OfferCode, error) {
	var offerM model.OfferCodeModel

	if err := repo.db.WithContext(ctx).
		Where("code = ?", code).
		First(&offerM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOfferCodeNotFound
		}

		return nil, errors.Wrap(err, "failed to find offer code")
	}

	return toOfferCodeDomain(&offerM), nil
}

// HasRedeemed reports whether a redemption row exists for the pair.
func (repo *offerCodeRepository) HasRedeemed(ctx context.Context, userID, offerCodeID uuid.UUID) (bool, error) {
	var count int64

	if err := repo.db.WithContext(ctx).
		Model(&model.UserOfferCodeModel{}).
		Where("user_id = ? AND offer_code_id = ?", userID, offerCodeID).
		Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "failed to check offer redemption")
	}

	return count > 0, nil
}

// CreateRedemption inserts the redemption row. The unique (user_id, offer_code_id)
// index turns a concurrent second redemption into ErrAlreadyRedeemed.
func (repo *offerCodeRepository) CreateRedemption(ctx context.Context, redemption *entity.UserOfferCode) error {
	redemptionM := &model.UserOfferCodeModel{
		ID:          redemption.ID,
		UserID:      redemption.UserID,
		OfferCodeID: redemption.OfferCodeID,
		OrderID:     redemption.OrderID,
		UsedAt:      redemption.UsedAt,
	}

	if err := repo.db.WithContext(ctx).Create(redemptionM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrAlreadyRedeemed
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create offer redemption")
	}

	return nil
}

// DeleteRedemptionByOrder frees the code again when the redeeming order is cancelled.
func (repo *offerCodeRepository) DeleteRedemptionByOrder(ctx context.Context, orderID uuid.UUID) error {
	if err := repo.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Delete(&model.UserOfferCodeModel{}).Error; err != nil {
		return errors.Wrap(err, "failed to delete offer redemption")
	}

	return nil
}
