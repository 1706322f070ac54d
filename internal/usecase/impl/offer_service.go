package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "storefront/internal/delivery/context"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

// offerService implements the OfferUsecase interface.
type offerService struct {
	productRepo repository.ProductRepository
	orderRepo   repository.OrderRepository
	offerRepo   repository.OfferCodeRepository
	ledger      offerLedger
	logger      *slog.Logger
}

// OfferServiceParams holds dependencies for OfferService, injected by Fx.
type OfferServiceParams struct {
	fx.In

	ProductRepo repository.ProductRepository
	OrderRepo   repository.OrderRepository
	OfferRepo   repository.OfferCodeRepository
	Logger      *slog.Logger
}

// NewOfferService is the constructor for offerService.
func NewOfferService(params OfferServiceParams) usecase.OfferUsecase {
	return &offerService{
		productRepo: params.ProductRepo,
		orderRepo:   params.OrderRepo,
		offerRepo:   params.OfferRepo,
		ledger:      newOfferLedger(time.Now),
		logger:      params.Logger,
	}
}

// ApplyOfferCode previews the discount of a code against the cart. No redemption is written.
func (srv *offerService) ApplyOfferCode(ctx context.Context, userID uuid.UUID, input usecase.ApplyOfferInput) (*usecase.OfferPreview, error) {
	logger := deliverycontext.GetLoggerOrDefault(ctx, srv.logger)

	priced, _, err := validateItems(ctx, srv.productRepo, input.Items)
	if err != nil {
		return nil, err
	}

	if !withinTolerance(priced.Total, input.CartTotal) {
		logger.Warn("Offer preview with stale cart total",
			slog.String("expected", priced.Total.StringFixed(2)),
			slog.String("received", input.CartTotal.StringFixed(2)),
		)

		return nil, domainerrors.ErrAmountMismatch.
			WithMessagef("Cart total mismatch: expected %s, got %s", priced.Total.StringFixed(2), input.CartTotal.StringFixed(2)).
			WithDetails(AmountMismatchDetails{
				CalculatedTotal: priced.Total,
				AppliedDiscount: decimal.Zero,
				ExpectedAmount:  priced.Total,
				ReceivedAmount:  input.CartTotal,
				Items:           priced.Items,
			})
	}

	offer, err := srv.ledger.Check(ctx, srv.offerRepo, srv.orderRepo, userID, input.Code)
	if err != nil {
		return nil, err
	}

	logger.Info("Offer code applied", slog.String("offerCode", offer.Code), slog.String("userID", userID.String()))

	return &usecase.OfferPreview{
		Code:            offer.Code,
		Discount:        offer.Discount,
		DiscountedTotal: discountedTotal(priced.Total, offer.Discount),
	}, nil
}
