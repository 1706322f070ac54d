package postgres

import (
	"context"
	"time"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// cartRepository implements the repository.CartRepository interface.
type cartRepository struct {
	db *gorm.DB
}

// NewCartRepository is the constructor for cartRepository.
func NewCartRepository(db *gorm.DB) repository.CartRepository {
	return &cartRepository{
		db: db,
	}
}

// FindByUser returns the user's cart with its lines.
func (repo *cartRepository) FindByUser(ctx context.Context, userID uuid.UUID) (*entity.Cart, error) {
	var cartM model.CartModel

	if err := repo.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Where("user_id = ?", userID).
		First(&cartM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCartNotFound
		}

		return nil, errors.Wrap(err, "failed to find cart")
	}

	return toCartDomain(&cartM), nil
}

// GetOrCreate returns the user's cart, creating an empty one on first use.
func (repo *cartRepository) GetOrCreate(ctx context.Context, userID uuid.UUID) (*entity.Cart, error) {
	cartM := &model.CartModel{ID: uuid.New(), UserID: userID}

	if err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "user_id"}}, DoNothing: true}).
		Omit("Items").
		Create(cartM).Error; err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to create cart")
	}

	return repo.FindByUser(ctx, userID)
}

// UpsertItem inserts the line or overwrites quantity and price of the existing (product, size) line.
func (repo *cartRepository) UpsertItem(ctx context.Context, item *entity.CartItem) error {
	itemM := fromCartItemDomain(item)

	if err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "cart_id"}, {Name: "product_id"}, {Name: "size"}},
			DoUpdates: clause.AssignmentColumns([]string{"quantity", "price", "updated_at"}),
		}).
		Create(itemM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrCartNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to upsert cart item")
	}

	return nil
}

// UpdateItemQuantity sets the quantity of one existing line.
func (repo *cartRepository) UpdateItemQuantity(ctx context.Context, cartID, productID uuid.UUID, size string, quantity int) error {
	result := repo.db.WithContext(ctx).
		Model(&model.CartItemModel{}).
		Where("cart_id = ? AND product_id = ? AND size = ?", cartID, productID, size).
		Updates(map[string]any{"quantity": quantity, "updated_at": time.Now()})

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update cart item")
	}
	if result.RowsAffected == 0 {
		return repository.ErrCartItemNotFound
	}

	return nil
}

// RemoveItem deletes one line. Removing a missing line is not an error.
func (repo *cartRepository) RemoveItem(ctx context.Context, cartID, productID uuid.UUID, size string) error {
	if err := repo.db.WithContext(ctx).
		Where("cart_id = ? AND product_id = ? AND size = ?", cartID, productID, size).
		Delete(&model.CartItemModel{}).Error; err != nil {
		return errors.Wrap(err, "failed to remove cart item")
	}

	return nil
}

// ReplaceItems swaps every line of the cart. Callers run it inside a transaction.
func (repo *cartRepository) ReplaceItems(ctx context.Context, cartID uuid.UUID, items []*entity.CartItem) error {
	db := repo.db.WithContext(ctx)

	if err := db.Where("cart_id = ?", cartID).Delete(&model.CartItemModel{}).Error; err != nil {
		return errors.Wrap(err, "failed to clear cart items")
	}

	if len(items) == 0 {
		return nil
	}

	itemModels := make([]*model.CartItemModel, 0, len(items))
	for _, item := range items {
		itemModels = append(itemModels, fromCartItemDomain(item))
	}

	if err := db.Create(&itemModels).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to insert cart items")
	}

	return nil
}

// ClearByUser deletes all lines of the user's cart and keeps the cart row.
func (repo *cartRepository) ClearByUser(ctx context.Context, userID uuid.UUID) error {
	if err := repo.db.WithContext(ctx).
		Where("cart_id IN (?)", repo.db.Model(&model.CartModel{}).Select("id").Where("user_id = ?", userID)).
		Delete(&model.CartItemModel{}).Error; err != nil {
		return errors.Wrap(err, "failed to clear cart")
	}

	return nil
}
