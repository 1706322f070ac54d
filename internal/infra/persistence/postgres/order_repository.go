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
	"gorm.io/plugin/dbresolver"
)

// orderRepository implements the repository.OrderRepository interface.
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository is the constructor for orderRepository.
func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepository{
		db: db,
	}
}

// Create inserts the order together with its items.
func (repo *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	orderM := fromOrderDomain(order)

	if err := repo.db.WithContext(ctx).Create(orderM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.NewDatabaseExecuteError(err, "duplicate payment reference "+pgConstraint(err))
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("invalid user or product reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create order")
	}

	order.CreatedAt = orderM.CreatedAt
	order.UpdatedAt = orderM.UpdatedAt

	return nil
}

// FindByID retrieves an order with its items.
func (repo *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	return repo.findOne(ctx, "id = ?", id)
}

// FindByPaymentID retrieves an order by its gateway order reference.
func (repo *orderRepository) FindByPaymentID(ctx context.Context, paymentID string) (*entity.Order, error) {
	return repo.findOne(ctx, "payment_id = ?", paymentID)
}

func (repo *orderRepository) findOne(ctx context.Context, query string, args ...any) (*entity.Order, error) {
	var orderM model.OrderModel

	if err := repo.db.WithContext(ctx).
		Preload("Items").
		Where(query, args...).
		First(&orderM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order")
	}

	return toOrderDomain(&orderM), nil
}

func patchColumns(patch repository.OrderPatch) map[string]any {
	columns := map[string]any{"updated_at": time.Now()}
	if patch.PaymentRef != nil {
		columns["payment_ref"] = *patch.PaymentRef
	}
	if patch.ShiprocketOrderID != nil {
		columns["shiprocket_order_id"] = *patch.ShiprocketOrderID
	}
	if patch.TrackingURL != nil {
		columns["tracking_url"] = *patch.TrackingURL
	}
	if patch.IncrementAttempts {
		columns["shipping_attempts"] = gorm.Expr("shipping_attempts + 1")
	}

	return columns
}

// TransitionStatus moves the order from one status to another in a single
// conditional UPDATE. ErrStatusConflict means another writer got there first.
func (repo *orderRepository) TransitionStatus(ctx context.Context, id uuid.UUID, from, to entity.OrderStatus, patch repository.OrderPatch) error {
	columns := patchColumns(patch)
	columns["status"] = to.String()

	result := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("id = ? AND status = ?", id, from.String()).
		Updates(columns)

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update order status")
	}

	if result.RowsAffected == 0 {
		if _, err := repo.FindByID(ctx, id); err != nil {
			return err
		}

		return repository.ErrStatusConflict
	}

	return nil
}

// UpdateShipment stores shipment details without touching the status.
func (repo *orderRepository) UpdateShipment(ctx context.Context, id uuid.UUID, patch repository.OrderPatch) error {
	result := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("id = ?", id).
		Updates(patchColumns(patch))

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update order shipment")
	}
	if result.RowsAffected == 0 {
		return repository.ErrOrderNotFound
	}

	return nil
}

// CountActiveByUser counts orders that were not cancelled.
func (repo *orderRepository) CountActiveByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64

	if err := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("user_id = ? AND status <> ?", userID, entity.OrderStatusCancelled.String()).
		Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count user orders")
	}

	return count, nil
}

// FindExpiredPending returns the oldest pending orders whose reservation ran out.
func (repo *orderRepository) FindExpiredPending(ctx context.Context, now time.Time, limit int) ([]*entity.Order, error) {
	var orderModels []*model.OrderModel

	if err := repo.db.WithContext(ctx).
		Preload("Items").
		Where("status = ? AND reservation_expires_at < ?", entity.OrderStatusPending.String(), now).
		Order("reservation_expires_at ASC").
		Limit(limit).
		Find(&orderModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find expired orders")
	}

	return toOrderDomains(orderModels), nil
}

// List pages through orders, newest first. It reads from a replica when one is configured.
func (repo *orderRepository) List(ctx context.Context, filter repository.OrderListFilter) ([]*entity.Order, int64, error) {
	query := repo.db.WithContext(ctx).Clauses(dbresolver.Read).Model(&model.OrderModel{})
	if filter.Status != nil {
		query = query.Where("status = ?", filter.Status.String())
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to count orders")
	}

	var orderModels []*model.OrderModel
	if err := query.
		Preload("Items").
		Order("created_at DESC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&orderModels).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to list orders")
	}

	return toOrderDomains(orderModels), total, nil
}

func toOrderDomains(orderModels []*model.OrderModel) []*entity.Order {
	orders := make([]*entity.Order, 0, len(orderModels))
	for _, orderM := range orderModels {
		orders = append(orders, toOrderDomain(orderM))
	}

	return orders
}
