package impl

import (
	"context"
	"log/slog"
	"time"

	"storefront/config"
	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const defaultSweepBatchSize = 50

// fulfillmentService implements the FulfillmentUsecase interface.
type fulfillmentService struct {
	txManager     repository.TransactionManager
	orderRepo     repository.OrderRepository
	shipping      service.ShippingGateway
	maxAttempts   int
	stockAttempts int
	batchSize     int
	now           func() time.Time
	logger        *slog.Logger
}

// FulfillmentServiceParams holds dependencies for FulfillmentService, injected by Fx.
type FulfillmentServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	OrderRepo repository.OrderRepository
	Shipping  service.ShippingGateway
	Config    *config.Config
	Logger    *slog.Logger
}

// NewFulfillmentService is the constructor for fulfillmentService.
func NewFulfillmentService(params FulfillmentServiceParams) usecase.FulfillmentUsecase {
	return newFulfillmentService(params)
}

func newFulfillmentService(params FulfillmentServiceParams) *fulfillmentService {
	srv := &fulfillmentService{
		txManager:     params.TxManager,
		orderRepo:     params.OrderRepo,
		shipping:      params.Shipping,
		maxAttempts:   defaultMaxShipmentAttempts,
		stockAttempts: defaultStockRetryAttempts,
		batchSize:     defaultSweepBatchSize,
		now:           time.Now,
		logger:        params.Logger,
	}

	if cfg := params.Config; cfg != nil {
		if cfg.Shipping != nil && cfg.Shipping.MaxShipmentAttempts > 0 {
			srv.maxAttempts = cfg.Shipping.MaxShipmentAttempts
		}
		if cfg.Order != nil && cfg.Order.StockRetryAttempts > 0 {
			srv.stockAttempts = cfg.Order.StockRetryAttempts
		}
		if cfg.Order != nil && cfg.Order.SweepBatchSize > 0 {
			srv.batchSize = cfg.Order.SweepBatchSize
		}
	}

	return srv
}

func (srv *fulfillmentService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// RetryShipment creates the shipment of a shipping_failed order again.
// Any other status means the retry is stale and is acknowledged without work.
func (srv *fulfillmentService) RetryShipment(ctx context.Context, event *service.ShipmentRetryEvent) error {
	orderID, err := uuid.Parse(event.OrderID)
	if err != nil {
		return errors.Wrap(err, "invalid order id in shipment retry event")
	}

	order, err := srv.orderRepo.FindByID(ctx, orderID)
	if errors.Is(err, repository.ErrOrderNotFound) {
		srv.log(ctx).Warn("Shipment retry for unknown order", slog.String("orderID", event.OrderID))

		return nil
	}
	if err != nil {
		return errors.Wrapf(usecase.ErrRetryLater, "failed to load order: %v", err)
	}

	if order.Status != entity.OrderStatusShippingFailed {
		srv.log(ctx).Info("Shipment retry skipped", slog.String("orderID", event.OrderID), slog.String("status", order.Status.String()))

		return nil
	}

	shipment, err := srv.shipping.CreateShipment(ctx, order)
	if err != nil {
		return srv.recordFailedAttempt(ctx, order, err)
	}

	err = srv.orderRepo.TransitionStatus(ctx, order.ID,
		entity.OrderStatusShippingFailed, entity.OrderStatusConfirmed,
		repository.OrderPatch{ShiprocketOrderID: &shipment.ShipmentOrderID, TrackingURL: &shipment.TrackingURL},
	)
	if errors.Is(err, repository.ErrStatusConflict) {
		srv.log(ctx).Warn("Order changed while retrying shipment", slog.String("orderID", event.OrderID))

		return nil
	}
	if err != nil {
		return errors.Wrap(err, "failed to store retried shipment")
	}

	srv.log(ctx).Info("Shipment created on retry",
		slog.String("orderID", event.OrderID),
		slog.String("shipmentOrderID", shipment.ShipmentOrderID),
		slog.Int("attempt", order.ShippingAttempts+1),
	)

	return nil
}

func (srv *fulfillmentService) recordFailedAttempt(ctx context.Context, order *entity.Order, cause error) error {
	if err := srv.orderRepo.UpdateShipment(ctx, order.ID, repository.OrderPatch{IncrementAttempts: true}); err != nil {
		srv.log(ctx).Error("Failed to count shipment attempt", slog.String("orderID", order.ID.String()), slog.Any("error", err))
	}

	attempts := order.ShippingAttempts + 1
	if attempts < srv.maxAttempts {
		srv.log(ctx).Warn("Shipment retry failed",
			slog.String("orderID", order.ID.String()),
			slog.Int("attempt", attempts),
			slog.Any("error", cause),
		)

		return errors.Wrapf(usecase.ErrRetryLater, "shipment attempt %d failed: %v", attempts, cause)
	}

	srv.log(ctx).Error("Shipment retries exhausted, manual follow-up required",
		slog.String("orderID", order.ID.String()),
		slog.Int("attempts", attempts),
		slog.Any("error", cause),
	)

	return nil
}

// ReleaseExpiredReservations cancels pending orders past their reservation and
// returns their stock and offer redemption. Each order gets its own transaction.
func (srv *fulfillmentService) ReleaseExpiredReservations(ctx context.Context) (int, error) {
	expired, err := srv.orderRepo.FindExpiredPending(ctx, srv.now(), srv.batchSize)
	if err != nil {
		return 0, errors.Wrap(err, "failed to find expired reservations")
	}

	released := 0
	for _, order := range expired {
		if ctx.Err() != nil {
			return released, errors.WithStack(ctx.Err())
		}

		ok, err := srv.releaseOrder(ctx, order)
		if err != nil {
			srv.log(ctx).Error("Failed to release reservation", slog.String("orderID", order.ID.String()), slog.Any("error", err))

			continue
		}
		if ok {
			released++
		}
	}

	if released > 0 {
		srv.log(ctx).Info("Released expired reservations", slog.Int("count", released))
	}

	return released, nil
}

func (srv *fulfillmentService) releaseOrder(ctx context.Context, order *entity.Order) (bool, error) {
	released := false
	err := srv.txManager.Execute(ctx, func(factory repository.RepositoryFactory) error {
		err := factory.NewOrderRepository().TransitionStatus(ctx, order.ID,
			entity.OrderStatusPending, entity.OrderStatusCancelled, repository.OrderPatch{})
		if errors.Is(err, repository.ErrStatusConflict) {
			// Confirmed concurrently, the reservation became a sale.
			return nil
		}
		if err != nil {
			return errors.Wrap(err, "failed to cancel order")
		}

		if err := releaseStock(ctx, factory.NewProductRepository(), order.Items, srv.stockAttempts); err != nil {
			return err
		}

		if err := factory.NewOfferCodeRepository().DeleteRedemptionByOrder(ctx, order.ID); err != nil {
			return errors.Wrap(err, "failed to release offer redemption")
		}

		released = true

		return nil
	})

	return released, err
}
