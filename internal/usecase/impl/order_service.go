package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"storefront/config"
	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/constants"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"
	"storefront/internal/util"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

const (
	defaultReservationTTL     = 30 * time.Minute
	defaultStockRetryAttempts = 3
	defaultOrderPageSize      = 20
	maxOrderPageSize          = 100
)

// AmountMismatchDetails lets the client resynchronize its checkout total.
type AmountMismatchDetails struct {
	CalculatedTotal decimal.Decimal       `json:"calculatedTotal"`
	AppliedDiscount decimal.Decimal       `json:"appliedDiscount"`
	ExpectedAmount  decimal.Decimal       `json:"expectedAmount"`
	ReceivedAmount  decimal.Decimal       `json:"receivedAmount"`
	Items           []*usecase.PricedItem `json:"items"`
	OfferCode       string                `json:"offerCode,omitempty"`
}

// orderService implements the OrderUsecase interface.
type orderService struct {
	txManager      repository.TransactionManager
	productRepo    repository.ProductRepository
	orderRepo      repository.OrderRepository
	offerRepo      repository.OfferCodeRepository
	cartRepo       repository.CartRepository
	payments       service.PaymentGateway
	shipping       service.ShippingGateway
	shipments      *shipmentDispatcher
	ledger         offerLedger
	reservationTTL time.Duration
	stockAttempts  int
	now            func() time.Time
	logger         *slog.Logger
}

// OrderServiceParams holds dependencies for OrderService, injected by Fx.
type OrderServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	ProductRepo repository.ProductRepository
	OrderRepo   repository.OrderRepository
	OfferRepo   repository.OfferCodeRepository
	CartRepo    repository.CartRepository
	Payments    service.PaymentGateway
	Shipping    service.ShippingGateway
	Publisher   service.EventPublisher
	Config      *config.Config
	Logger      *slog.Logger
}

// NewOrderService is the constructor for orderService.
func NewOrderService(params OrderServiceParams) usecase.OrderUsecase {
	return newOrderService(params)
}

func newOrderService(params OrderServiceParams) *orderService {
	reservationTTL := defaultReservationTTL
	stockAttempts := defaultStockRetryAttempts
	if params.Config != nil && params.Config.Order != nil {
		if params.Config.Order.ReservationTTL > 0 {
			reservationTTL = params.Config.Order.ReservationTTL
		}
		if params.Config.Order.StockRetryAttempts > 0 {
			stockAttempts = params.Config.Order.StockRetryAttempts
		}
	}

	return &orderService{
		txManager:      params.TxManager,
		productRepo:    params.ProductRepo,
		orderRepo:      params.OrderRepo,
		offerRepo:      params.OfferRepo,
		cartRepo:       params.CartRepo,
		payments:       params.Payments,
		shipping:       params.Shipping,
		shipments:      newShipmentDispatcher(params.OrderRepo, params.Shipping, params.Publisher, params.Config, params.Logger),
		ledger:         newOfferLedger(time.Now),
		reservationTTL: reservationTTL,
		stockAttempts:  stockAttempts,
		now:            time.Now,
		logger:         params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *orderService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateOrder prices the cart, opens a payment intent and reserves stock in one transaction.
func (srv *orderService) CreateOrder(ctx context.Context, userID uuid.UUID, input usecase.CreateOrderInput) (*usecase.CreateOrderOutput, error) {
	if input.Currency != constants.Currency {
		return nil, domainerrors.ErrValidationFailed.WithMessagef("Currency must be %s", constants.Currency)
	}
	if len(input.Items) == 0 {
		return nil, domainerrors.ErrValidationFailed.WithMessagef("At least one item is required")
	}

	priced, _, err := validateItems(ctx, srv.productRepo, input.Items)
	if err != nil {
		srv.log(ctx).Warn("Checkout items rejected", slog.String("userID", userID.String()), slog.Any("error", err))

		return nil, err
	}

	if err := srv.matchServerCart(ctx, userID, input.Items); err != nil {
		return nil, err
	}

	offerCode := entity.NormalizeOfferCode(input.OfferCode)
	appliedDiscount := decimal.Zero
	if offerCode != "" {
		offer, err := srv.ledger.Check(ctx, srv.offerRepo, srv.orderRepo, userID, offerCode)
		if err != nil {
			srv.log(ctx).Warn("Offer code rejected", slog.String("userID", userID.String()), slog.String("offerCode", offerCode), slog.Any("error", err))

			return nil, err
		}
		appliedDiscount = offer.Discount

		if !input.Discount.Equal(appliedDiscount) {
			return nil, domainerrors.ErrDiscountMismatch.WithMessagef("Discount mismatch: expected %s%%, got %s%%",
				appliedDiscount.String(), input.Discount.String())
		}
	} else if !input.Discount.IsZero() {
		return nil, domainerrors.ErrDiscountMismatch.WithMessagef("Discount provided without an offer code")
	}

	expectedAmount := discountedTotal(priced.Total, appliedDiscount)
	if !withinTolerance(expectedAmount, input.Amount) {
		srv.log(ctx).Warn("Checkout amount mismatch",
			slog.String("userID", userID.String()),
			slog.String("expected", expectedAmount.StringFixed(2)),
			slog.String("received", input.Amount.StringFixed(2)),
		)

		return nil, domainerrors.ErrAmountMismatch.
			WithMessagef("Total amount mismatch: expected %s, got %s", expectedAmount.StringFixed(2), input.Amount.StringFixed(2)).
			WithDetails(AmountMismatchDetails{
				CalculatedTotal: priced.Total,
				AppliedDiscount: appliedDiscount,
				ExpectedAmount:  expectedAmount,
				ReceivedAmount:  input.Amount,
				Items:           priced.Items,
				OfferCode:       offerCode,
			})
	}

	order := srv.buildOrder(userID, priced, expectedAmount, appliedDiscount, offerCode, input.ShippingDetails)

	// The intent is created before the transaction so no connection is held across the gateway call.
	intent, err := srv.payments.CreateOrder(ctx, expectedAmount, constants.Currency, receiptFor(order.ID))
	if err != nil {
		srv.log(ctx).Error("Failed to create payment intent", slog.String("orderID", order.ID.String()), slog.Any("error", err))

		return nil, err
	}
	order.PaymentID = intent.ID

	err = srv.txManager.Execute(ctx, func(factory repository.RepositoryFactory) error {
		return srv.writeOrder(ctx, factory, order)
	})
	if err != nil {
		srv.log(ctx).Error("Order transaction failed, payment intent left unused",
			slog.String("orderID", order.ID.String()),
			slog.String("paymentID", intent.ID),
			slog.Any("error", err),
		)

		return nil, err
	}

	srv.log(ctx).Info("Order created",
		slog.String("orderID", order.ID.String()),
		slog.String("paymentID", order.PaymentID),
		slog.String("amount", order.TotalAmount.StringFixed(2)),
		slog.Any("shipping", order.ShippingDetails),
	)

	return &usecase.CreateOrderOutput{
		RazorpayOrderID: intent.ID,
		OrderID:         order.ID,
		Amount:          order.TotalAmount,
		Currency:        order.Currency,
	}, nil
}

// writeOrder is the atomic unit: stock reservation, the pending order and the redemption.
func (srv *orderService) writeOrder(ctx context.Context, factory repository.RepositoryFactory, order *entity.Order) error {
	productRepo := factory.NewProductRepository()
	orderRepo := factory.NewOrderRepository()
	offerRepo := factory.NewOfferCodeRepository()

	var offer *entity.OfferCode
	if order.OfferCode != "" {
		// Checked again inside the transaction; the unique redemption row settles any race left.
		checked, err := srv.ledger.Check(ctx, offerRepo, orderRepo, order.UserID, order.OfferCode)
		if err != nil {
			return err
		}
		if !checked.Discount.Equal(order.Discount) {
			return domainerrors.ErrDiscountMismatch
		}
		offer = checked
	}

	if err := reserveStock(ctx, productRepo, order.Items, srv.stockAttempts); err != nil {
		return err
	}

	if err := orderRepo.Create(ctx, order); err != nil {
		return errors.Wrap(err, "failed to create order")
	}

	if offer != nil {
		if err := srv.ledger.Redeem(ctx, offerRepo, order.UserID, offer, order.ID); err != nil {
			return err
		}
	}

	return nil
}

func (srv *orderService) buildOrder(
	userID uuid.UUID,
	priced *usecase.PricedCart,
	amount, discount decimal.Decimal,
	offerCode string,
	details entity.ShippingDetails,
) *entity.Order {
	now := srv.now()
	orderID := uuid.New()

	items := make([]*entity.OrderItem, 0, len(priced.Items))
	for _, line := range priced.Items {
		items = append(items, &entity.OrderItem{
			ID:        uuid.New(),
			OrderID:   orderID,
			ProductID: line.ProductID,
			Name:      line.Name,
			Quantity:  line.Quantity,
			Price:     line.Price,
			Size:      line.Size,
		})
	}

	return &entity.Order{
		ID:                   orderID,
		UserID:               userID,
		TotalAmount:          amount,
		Currency:             constants.Currency,
		Status:               entity.OrderStatusPending,
		OfferCode:            offerCode,
		Discount:             discount,
		ShippingDetails:      sanitizeShippingDetails(details),
		ReservationExpiresAt: now.Add(srv.reservationTTL),
		Items:                items,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
}

// matchServerCart requires every checkout line to be backed by the persisted cart.
// Repeated lines are summed before the quantity comparison.
func (srv *orderService) matchServerCart(ctx context.Context, userID uuid.UUID, items []usecase.ItemInput) error {
	cart, err := srv.cartRepo.FindByUser(ctx, userID)
	if errors.Is(err, repository.ErrCartNotFound) {
		return domainerrors.ErrCartMismatch
	}
	if err != nil {
		return errors.Wrap(err, "failed to load cart")
	}

	requested := make(map[lineKey]int, len(items))
	for _, item := range items {
		line := cart.FindItem(item.ProductID, item.Size)
		if line == nil || !withinTolerance(line.Price, item.Price) {
			return domainerrors.ErrCartMismatch
		}

		key := lineKey{productID: item.ProductID, size: item.Size}
		requested[key] += item.Quantity
		if requested[key] > line.Quantity {
			return domainerrors.ErrCartMismatch
		}
	}

	return nil
}

// loadOwnedOrder returns the order when userID owns it.
func (srv *orderService) loadOwnedOrder(ctx context.Context, userID, orderID uuid.UUID) (*entity.Order, error) {
	order, err := srv.orderRepo.FindByID(ctx, orderID)
	if errors.Is(err, repository.ErrOrderNotFound) {
		return nil, domainerrors.ErrOrderNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find order")
	}

	if !order.IsOwnedBy(userID) {
		srv.log(ctx).Warn("Order accessed by non-owner", slog.String("orderID", orderID.String()), slog.String("userID", userID.String()))

		return nil, domainerrors.ErrForbidden.WithMessagef("Not authorized to access this order")
	}

	return order, nil
}

// GetTracking returns the live shipment state of an owned order.
func (srv *orderService) GetTracking(ctx context.Context, userID, orderID uuid.UUID) (*usecase.TrackingOutput, error) {
	order, err := srv.loadOwnedOrder(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}

	if order.ShiprocketOrderID == "" {
		return nil, domainerrors.ErrTrackingUnavailable
	}

	tracking, err := srv.shipping.TrackShipment(ctx, order.ShiprocketOrderID)
	if err != nil {
		srv.log(ctx).Error("Failed to fetch tracking", slog.String("orderID", orderID.String()), slog.Any("error", err))

		return nil, err
	}

	return &usecase.TrackingOutput{Order: order, Tracking: tracking}, nil
}

// ListOrders returns a page of all orders for administrators.
func (srv *orderService) ListOrders(ctx context.Context, input usecase.ListOrdersInput) (*usecase.OrderPage, error) {
	page := max(input.Page, 1)
	pageSize := input.PageSize
	if pageSize <= 0 {
		pageSize = defaultOrderPageSize
	}
	pageSize = min(pageSize, maxOrderPageSize)

	orders, total, err := srv.orderRepo.List(ctx, repository.OrderListFilter{
		Status: input.Status,
		Limit:  pageSize,
		Offset: (page - 1) * pageSize,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	srv.log(ctx).Debug("Listed orders", slog.Int("count", len(orders)), slog.Int64("total", total))

	return &usecase.OrderPage{Orders: orders, Total: total, Page: page, PageSize: pageSize}, nil
}

func sanitizeShippingDetails(d entity.ShippingDetails) entity.ShippingDetails {
	return entity.ShippingDetails{
		Name:    util.SanitizeText(d.Name),
		Email:   util.SanitizeText(d.Email),
		Phone:   util.SanitizeText(d.Phone),
		Address: util.SanitizeText(d.Address),
		Pincode: util.SanitizeText(d.Pincode),
		City:    util.SanitizeText(d.City),
		State:   util.SanitizeText(d.State),
	}
}

// receiptFor builds a gateway receipt id that stays within 40 characters.
func receiptFor(orderID uuid.UUID) string {
	return "rcpt_" + strings.ReplaceAll(orderID.String(), "-", "")
}
