package impl

import (
	"context"
	"log/slog"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// VerifyPayment checks the checkout callback and confirms the order.
func (srv *orderService) VerifyPayment(ctx context.Context, userID uuid.UUID, input usecase.VerifyPaymentInput) (*usecase.ConfirmOrderOutput, error) {
	if !srv.payments.VerifySignature(input.GatewayOrderID, input.PaymentID, input.Signature) {
		srv.log(ctx).Warn("Invalid payment signature",
			slog.String("userID", userID.String()),
			slog.String("orderID", input.OrderID.String()),
		)

		return nil, domainerrors.ErrInvalidSignature
	}

	order, err := srv.loadConfirmableOrder(ctx, userID, input.OrderID)
	if err != nil {
		return nil, err
	}

	if order.PaymentID != input.GatewayOrderID {
		srv.log(ctx).Warn("Payment callback for a different gateway order",
			slog.String("orderID", order.ID.String()),
			slog.String("expected", order.PaymentID),
			slog.String("received", input.GatewayOrderID),
		)

		return nil, domainerrors.ErrInvalidSignature.WithMessagef("Payment does not belong to this order")
	}

	if err := srv.requireCapturedPayment(ctx, order, input.PaymentID); err != nil {
		return nil, err
	}

	return srv.confirm(ctx, order, input.PaymentID)
}

// ConfirmOrder confirms an owned order whose payment is already captured.
func (srv *orderService) ConfirmOrder(ctx context.Context, userID uuid.UUID, input usecase.ConfirmOrderInput) (*usecase.ConfirmOrderOutput, error) {
	order, err := srv.loadConfirmableOrder(ctx, userID, input.OrderID)
	if err != nil {
		return nil, err
	}

	if err := srv.requireCapturedPayment(ctx, order, input.PaymentID); err != nil {
		return nil, err
	}

	return srv.confirm(ctx, order, input.PaymentID)
}

// loadConfirmableOrder accepts pending orders and cancelled ones, since a payment
// can be captured after the sweeper released the reservation.
func (srv *orderService) loadConfirmableOrder(ctx context.Context, userID, orderID uuid.UUID) (*entity.Order, error) {
	order, err := srv.loadOwnedOrder(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}

	if order.Status != entity.OrderStatusPending && order.Status != entity.OrderStatusCancelled {
		srv.log(ctx).Warn("Order already processed",
			slog.String("orderID", order.ID.String()),
			slog.String("status", order.Status.String()),
		)

		return nil, domainerrors.ErrOrderAlreadyProcessed
	}

	return order, nil
}

// requireCapturedPayment asks the gateway for the authoritative payment state.
func (srv *orderService) requireCapturedPayment(ctx context.Context, order *entity.Order, paymentRef string) error {
	payment, err := srv.payments.FetchPayment(ctx, paymentRef)
	if err != nil {
		srv.log(ctx).Error("Failed to fetch payment", slog.String("paymentRef", paymentRef), slog.Any("error", err))

		return err
	}

	if !payment.IsCaptured() {
		srv.log(ctx).Warn("Payment not captured",
			slog.String("paymentRef", paymentRef),
			slog.String("status", payment.Status),
		)

		return domainerrors.ErrPaymentNotCaptured
	}

	if payment.OrderID != order.PaymentID {
		return domainerrors.ErrInvalidSignature.WithMessagef("Payment does not belong to this order")
	}

	return nil
}

// confirm commits pending -> confirmed with the cart cleared, then hands the order to shipping.
// The status flip is conditional, so a replayed confirmation never reaches shipping.
func (srv *orderService) confirm(ctx context.Context, order *entity.Order, paymentRef string) (*usecase.ConfirmOrderOutput, error) {
	err := srv.txManager.Execute(ctx, func(factory repository.RepositoryFactory) error {
		err := factory.NewOrderRepository().TransitionStatus(ctx, order.ID,
			entity.OrderStatusPending, entity.OrderStatusConfirmed,
			repository.OrderPatch{PaymentRef: &paymentRef},
		)
		if errors.Is(err, repository.ErrStatusConflict) {
			err = srv.reinstate(ctx, factory, order.ID, paymentRef)
		} else if err != nil {
			err = errors.Wrap(err, "failed to confirm order")
		}
		if err != nil {
			return err
		}

		if err := factory.NewCartRepository().ClearByUser(ctx, order.UserID); err != nil {
			return errors.Wrap(err, "failed to clear cart")
		}

		return nil
	})
	if errors.Is(err, domainerrors.ErrOrderExpired) {
		srv.recordUnfulfillablePayment(ctx, order, paymentRef, err)

		return nil, err
	}
	if err != nil {
		return nil, err
	}

	order.Status = entity.OrderStatusConfirmed
	order.PaymentRef = paymentRef

	srv.log(ctx).Info("Order confirmed", slog.String("orderID", order.ID.String()), slog.String("paymentRef", paymentRef))

	return srv.shipments.dispatch(ctx, order), nil
}

// reinstate confirms an order the sweeper cancelled before its payment was captured.
// Stock and the offer redemption are taken again. When either is gone the order
// stays cancelled and ErrOrderExpired is returned.
func (srv *orderService) reinstate(ctx context.Context, factory repository.RepositoryFactory, orderID uuid.UUID, paymentRef string) error {
	orderRepo := factory.NewOrderRepository()

	current, err := orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return errors.Wrap(err, "failed to reload order")
	}
	if current.Status != entity.OrderStatusCancelled {
		return domainerrors.ErrOrderAlreadyProcessed
	}

	err = reserveStock(ctx, factory.NewProductRepository(), current.Items, srv.stockAttempts)
	if errors.Is(err, domainerrors.ErrInsufficientStock) || errors.Is(err, domainerrors.ErrProductNotFound) {
		return errors.Wrapf(domainerrors.ErrOrderExpired, "stock no longer available: %v", err)
	}
	if err != nil {
		return err
	}

	if current.OfferCode != "" {
		offerRepo := factory.NewOfferCodeRepository()

		offer, err := offerRepo.FindByCode(ctx, current.OfferCode)
		if errors.Is(err, repository.ErrOfferCodeNotFound) {
			return errors.Wrapf(domainerrors.ErrOrderExpired, "offer code %s no longer exists", current.OfferCode)
		}
		if err != nil {
			return errors.Wrap(err, "failed to find offer code")
		}

		err = srv.ledger.Redeem(ctx, offerRepo, current.UserID, offer, current.ID)
		if errors.Is(err, domainerrors.ErrOfferAlreadyUsed) {
			return errors.Wrapf(domainerrors.ErrOrderExpired, "offer code %s redeemed elsewhere", current.OfferCode)
		}
		if err != nil {
			return err
		}
	}

	err = orderRepo.TransitionStatus(ctx, orderID,
		entity.OrderStatusCancelled, entity.OrderStatusConfirmed,
		repository.OrderPatch{PaymentRef: &paymentRef},
	)
	if errors.Is(err, repository.ErrStatusConflict) {
		return domainerrors.ErrOrderAlreadyProcessed
	}
	if err != nil {
		return errors.Wrap(err, "failed to reinstate order")
	}

	srv.log(ctx).Warn("Expired order reinstated by a late payment",
		slog.String("orderID", orderID.String()),
		slog.String("paymentRef", paymentRef),
	)

	return nil
}

// recordUnfulfillablePayment keeps the payment reference on the cancelled order
// so the captured amount can be refunded.
func (srv *orderService) recordUnfulfillablePayment(ctx context.Context, order *entity.Order, paymentRef string, cause error) {
	srv.log(ctx).Error("Captured payment for an expired order, refund required",
		slog.String("orderID", order.ID.String()),
		slog.String("paymentRef", paymentRef),
		slog.String("amount", order.TotalAmount.StringFixed(2)),
		slog.Any("error", cause),
	)

	if err := srv.orderRepo.UpdateShipment(ctx, order.ID, repository.OrderPatch{PaymentRef: &paymentRef}); err != nil {
		srv.log(ctx).Error("Failed to record payment on expired order",
			slog.String("orderID", order.ID.String()),
			slog.String("paymentRef", paymentRef),
			slog.Any("error", err),
		)
	}
}
