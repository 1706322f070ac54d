package impl

import (
	"context"
	"log/slog"

	"storefront/config"
	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"
)

const defaultMaxShipmentAttempts = 5

// shipmentDispatcher runs the part of the confirmation saga that happens after commit.
type shipmentDispatcher struct {
	orderRepo   repository.OrderRepository
	shipping    service.ShippingGateway
	publisher   service.EventPublisher
	maxAttempts int
	logger      *slog.Logger
}

func newShipmentDispatcher(
	orderRepo repository.OrderRepository,
	shipping service.ShippingGateway,
	publisher service.EventPublisher,
	cfg *config.Config,
	logger *slog.Logger,
) *shipmentDispatcher {
	maxAttempts := defaultMaxShipmentAttempts
	if cfg != nil && cfg.Shipping != nil && cfg.Shipping.MaxShipmentAttempts > 0 {
		maxAttempts = cfg.Shipping.MaxShipmentAttempts
	}

	return &shipmentDispatcher{
		orderRepo:   orderRepo,
		shipping:    shipping,
		publisher:   publisher,
		maxAttempts: maxAttempts,
		logger:      logger,
	}
}

func (d *shipmentDispatcher) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, d.logger)
}

// dispatch creates the shipment of a freshly confirmed order. Payment is already
// captured at this point, so a shipping failure is compensated instead of returned.
func (d *shipmentDispatcher) dispatch(ctx context.Context, order *entity.Order) *usecase.ConfirmOrderOutput {
	output := &usecase.ConfirmOrderOutput{OrderID: order.ID, Status: entity.OrderStatusConfirmed}

	shipment, err := d.shipping.CreateShipment(ctx, order)
	if err == nil {
		patch := repository.OrderPatch{
			ShiprocketOrderID: &shipment.ShipmentOrderID,
			TrackingURL:       &shipment.TrackingURL,
		}
		if err := d.orderRepo.UpdateShipment(ctx, order.ID, patch); err != nil {
			d.log(ctx).Error("Failed to store shipment details",
				slog.String("orderID", order.ID.String()),
				slog.String("shipmentOrderID", shipment.ShipmentOrderID),
				slog.Any("error", err),
			)
		}
		output.ShiprocketOrderID = shipment.ShipmentOrderID
		output.TrackingURL = shipment.TrackingURL

		return output
	}

	d.log(ctx).Error("Shipment creation failed, scheduling retry", slog.String("orderID", order.ID.String()), slog.Any("error", err))

	if err := d.orderRepo.TransitionStatus(ctx, order.ID,
		entity.OrderStatusConfirmed, entity.OrderStatusShippingFailed,
		repository.OrderPatch{IncrementAttempts: true},
	); err != nil {
		d.log(ctx).Error("Failed to mark order shipping_failed", slog.String("orderID", order.ID.String()), slog.Any("error", err))

		return output
	}
	output.Status = entity.OrderStatusShippingFailed

	event := &service.ShipmentRetryEvent{
		RequestID: deliverycontext.GetRequestIDFromContext(ctx),
		OrderID:   order.ID.String(),
		Attempt:   order.ShippingAttempts + 1,
	}
	if err := d.publisher.PublishShipmentRetry(ctx, event); err != nil {
		// The order stays shipping_failed until an operator retries it.
		d.log(ctx).Error("Failed to publish shipment retry", slog.String("orderID", order.ID.String()), slog.Any("error", err))
	}

	return output
}
