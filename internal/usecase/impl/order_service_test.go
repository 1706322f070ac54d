package impl

import (
	"context"
	"sync"
	"testing"
	"time"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	mockService "storefront/internal/mocks/service"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// orderServiceFixtures holds all test dependencies for order service tests.
type orderServiceFixtures struct {
	service   *orderService
	store     *memStore
	payments  *mockService.MockPaymentGateway
	shipping  *mockService.MockShippingGateway
	publisher *mockService.MockEventPublisher
	userID    uuid.UUID
	tee       *entity.Product
	first20   *entity.OfferCode
}

func createTestOrderService(t *testing.T) orderServiceFixtures {
	store := newMemStore()
	payments := mockService.NewMockPaymentGateway(t)
	shipping := mockService.NewMockShippingGateway(t)
	publisher := mockService.NewMockEventPublisher(t)

	tee := &entity.Product{
		ID:          uuid.New(),
		Name:        "Classic Tee",
		Price:       decimal.RequireFromString("599"),
		MRP:         decimal.RequireFromString("799"),
		Sizes:       []string{"S", "M", "L"},
		StockBySize: map[string]int{"S": 5, "M": 10, "L": 0},
		Version:     1,
	}
	store.addProduct(tee)

	first20 := &entity.OfferCode{
		ID:           uuid.New(),
		Code:         "FIRST20",
		Discount:     decimal.RequireFromString("20"),
		IsFirstOrder: true,
	}
	store.addOffer(first20)

	userID := uuid.New()
	store.setCart(userID, &entity.CartItem{ProductID: tee.ID, Quantity: 2, Price: tee.Price, Size: "M"})

	srv := newOrderService(OrderServiceParams{
		TxManager:   store,
		ProductRepo: store.NewProductRepository(),
		OrderRepo:   store.NewOrderRepository(),
		OfferRepo:   store.NewOfferCodeRepository(),
		CartRepo:    store.NewCartRepository(),
		Payments:    payments,
		Shipping:    shipping,
		Publisher:   publisher,
		Config:      newTestConfig(),
		Logger:      newDiscardLogger(),
	})

	return orderServiceFixtures{
		service:   srv,
		store:     store,
		payments:  payments,
		shipping:  shipping,
		publisher: publisher,
		userID:    userID,
		tee:       tee,
		first20:   first20,
	}
}

func validShippingDetails() entity.ShippingDetails {
	return entity.ShippingDetails{
		Name:    "Asha Rao",
		Email:   "asha@example.com",
		Phone:   "9876543210",
		Address: "12 MG Road",
		Pincode: "560001",
		City:    "Bengaluru",
		State:   "KA",
	}
}

func checkoutInput(productID uuid.UUID, price string, quantity int, size, amount, discount, code string) usecase.CreateOrderInput {
	return usecase.CreateOrderInput{
		Amount:   decimal.RequireFromString(amount),
		Currency: "INR",
		Items: []usecase.ItemInput{{
			ProductID: productID,
			Quantity:  quantity,
			Price:     decimal.RequireFromString(price),
			Size:      size,
		}},
		Discount:        decimal.RequireFromString(discount),
		OfferCode:       code,
		ShippingDetails: validShippingDetails(),
	}
}

func decimalEq(value string) any {
	want := decimal.RequireFromString(value)

	return mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(want) })
}

func TestOrderService_EndToEnd_FirstOrderOffer(t *testing.T) {
	fx := createTestOrderService(t)
	ctx := context.Background()

	fx.payments.EXPECT().
		CreateOrder(mock.Anything, decimalEq("958.40"), "INR", mock.AnythingOfType("string")).
		Return(&service.PaymentIntent{ID: "order_rzp_1", Amount: decimal.RequireFromString("958.40"), Currency: "INR"}, nil).
		Once()

	created, err := fx.service.CreateOrder(ctx, fx.userID, checkoutInput(fx.tee.ID, "599", 2, "M", "958.40", "20", "first20"))
	require.NoError(t, err)
	assert.Equal(t, "order_rzp_1", created.RazorpayOrderID)
	assert.True(t, created.Amount.Equal(decimal.RequireFromString("958.40")), "amount %s", created.Amount)
	assert.Equal(t, 8, fx.store.stock(fx.tee.ID, "M"))
	assert.Equal(t, 1, fx.store.redemptionCount())

	pending := fx.store.order(created.OrderID)
	require.NotNil(t, pending)
	assert.Equal(t, entity.OrderStatusPending, pending.Status)
	assert.Equal(t, "FIRST20", pending.OfferCode)
	assert.True(t, pending.ReservationExpiresAt.After(time.Now()))

	fx.payments.EXPECT().VerifySignature("order_rzp_1", "pay_1", "sig").Return(true).Once()
	fx.payments.EXPECT().
		FetchPayment(mock.Anything, "pay_1").
		Return(&service.Payment{ID: "pay_1", OrderID: "order_rzp_1", Status: service.PaymentCaptured}, nil).
		Once()
	fx.shipping.EXPECT().
		CreateShipment(mock.Anything, mock.AnythingOfType("*entity.Order")).
		Return(&service.Shipment{ShipmentOrderID: "SR-1", TrackingURL: "https://track.example/SR-1"}, nil).
		Once()

	confirmed, err := fx.service.VerifyPayment(ctx, fx.userID, usecase.VerifyPaymentInput{
		GatewayOrderID: "order_rzp_1",
		PaymentID:      "pay_1",
		Signature:      "sig",
		OrderID:        created.OrderID,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusConfirmed, confirmed.Status)
	assert.Equal(t, "SR-1", confirmed.ShiprocketOrderID)

	stored := fx.store.order(created.OrderID)
	assert.Equal(t, entity.OrderStatusConfirmed, stored.Status)
	assert.Equal(t, "pay_1", stored.PaymentRef)
	assert.Equal(t, "SR-1", stored.ShiprocketOrderID)
	assert.Equal(t, "https://track.example/SR-1", stored.TrackingURL)

	// Confirmation never touches stock again.
	assert.Equal(t, 8, fx.store.stock(fx.tee.ID, "M"))
	assert.Empty(t, fx.store.cart(fx.userID).Items)
}

func TestOrderService_CreateOrder_OfferAlreadyUsed(t *testing.T) {
	fx := createTestOrderService(t)

	fx.store.addRedemption(&entity.UserOfferCode{
		ID:          uuid.New(),
		UserID:      fx.userID,
		OfferCodeID: fx.first20.ID,
		OrderID:     uuid.New(),
		UsedAt:      time.Now(),
	})

	_, err := fx.service.CreateOrder(context.Background(), fx.userID,
		checkoutInput(fx.tee.ID, "599", 2, "M", "958.40", "20", "FIRST20"))

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrOfferAlreadyUsed)
	assert.Equal(t, 10, fx.store.stock(fx.tee.ID, "M"))
	assert.Equal(t, 0, fx.store.orderCount())
}

func TestOrderService_CreateOrder_TamperedPriceRejected(t *testing.T) {
	fx := createTestOrderService(t)

	_, err := fx.service.CreateOrder(context.Background(), fx.userID,
		checkoutInput(fx.tee.ID, "1.00", 2, "M", "2.00", "0", ""))

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrPriceMismatch)

	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	details, ok := appErr.Details().(PriceMismatchDetails)
	require.True(t, ok)
	assert.True(t, details.ExpectedPrice.Equal(decimal.RequireFromString("599")))
	assert.True(t, details.ReceivedPrice.Equal(decimal.RequireFromString("1.00")))
	assert.Contains(t, appErr.Message(), "expected 599.00")
	assert.Equal(t, 10, fx.store.stock(fx.tee.ID, "M"))
}

func TestOrderService_CreateOrder_RejectsBadAmountsAndDiscounts(t *testing.T) {
	tests := []struct {
		name    string
		input   func(fx orderServiceFixtures) usecase.CreateOrderInput
		wantErr error
	}{
		{
			name: "total does not match discounted price",
			input: func(fx orderServiceFixtures) usecase.CreateOrderInput {
				return checkoutInput(fx.tee.ID, "599", 2, "M", "1198.00", "20", "FIRST20")
			},
			wantErr: domainerrors.ErrAmountMismatch,
		},
		{
			name: "discount differs from offer",
			input: func(fx orderServiceFixtures) usecase.CreateOrderInput {
				return checkoutInput(fx.tee.ID, "599", 2, "M", "599.00", "50", "FIRST20")
			},
			wantErr: domainerrors.ErrDiscountMismatch,
		},
		{
			name: "discount without offer code",
			input: func(fx orderServiceFixtures) usecase.CreateOrderInput {
				return checkoutInput(fx.tee.ID, "599", 2, "M", "958.40", "20", "")
			},
			wantErr: domainerrors.ErrDiscountMismatch,
		},
		{
			name: "unknown offer code",
			input: func(fx orderServiceFixtures) usecase.CreateOrderInput {
				return checkoutInput(fx.tee.ID, "599", 2, "M", "958.40", "20", "NOPE")
			},
			wantErr: domainerrors.ErrInvalidOfferCode,
		},
		{
			name: "size missing for sized product",
			input: func(fx orderServiceFixtures) usecase.CreateOrderInput {
				return checkoutInput(fx.tee.ID, "599", 2, "", "1198.00", "0", "")
			},
			wantErr: domainerrors.ErrSizeRequired,
		},
		{
			name: "out of stock size",
			input: func(fx orderServiceFixtures) usecase.CreateOrderInput {
				return checkoutInput(fx.tee.ID, "599", 1, "L", "599.00", "0", "")
			},
			wantErr: domainerrors.ErrInsufficientStock,
		},
		{
			name: "items not in server cart",
			input: func(fx orderServiceFixtures) usecase.CreateOrderInput {
				return checkoutInput(fx.tee.ID, "599", 3, "S", "1797.00", "0", "")
			},
			wantErr: domainerrors.ErrCartMismatch,
		},
		{
			name: "unsupported currency",
			input: func(fx orderServiceFixtures) usecase.CreateOrderInput {
				in := checkoutInput(fx.tee.ID, "599", 2, "M", "1198.00", "0", "")
				in.Currency = "USD"

				return in
			},
			wantErr: domainerrors.ErrValidationFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fx := createTestOrderService(t)

			_, err := fx.service.CreateOrder(context.Background(), fx.userID, tt.input(fx))

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, 0, fx.store.orderCount())
			assert.Equal(t, 10, fx.store.stock(fx.tee.ID, "M"))
		})
	}
}

func TestOrderService_CreateOrder_AmountMismatchCarriesExpectedAmount(t *testing.T) {
	fx := createTestOrderService(t)

	_, err := fx.service.CreateOrder(context.Background(), fx.userID,
		checkoutInput(fx.tee.ID, "599", 2, "M", "900.00", "20", "FIRST20"))

	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	details, ok := appErr.Details().(AmountMismatchDetails)
	require.True(t, ok)
	assert.True(t, details.CalculatedTotal.Equal(decimal.RequireFromString("1198")))
	assert.True(t, details.ExpectedAmount.Equal(decimal.RequireFromString("958.40")))
	assert.True(t, details.ReceivedAmount.Equal(decimal.RequireFromString("900")))
	assert.Equal(t, "FIRST20", details.OfferCode)
}

func TestOrderService_CreateOrder_ConcurrentRedemptionIsExactlyOnce(t *testing.T) {
	fx := createTestOrderService(t)

	save10 := &entity.OfferCode{ID: uuid.New(), Code: "SAVE10", Discount: decimal.RequireFromString("10")}
	fx.store.addOffer(save10)

	fx.payments.EXPECT().
		CreateOrder(mock.Anything, decimalEq("1078.20"), "INR", mock.AnythingOfType("string")).
		Return(&service.PaymentIntent{ID: "order_rzp_concurrent"}, nil)

	const attempts = 8
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = fx.service.CreateOrder(context.Background(), fx.userID,
				checkoutInput(fx.tee.ID, "599", 2, "M", "1078.20", "10", "SAVE10"))
		}()
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++

			continue
		}
		assert.ErrorIs(t, err, domainerrors.ErrOfferAlreadyUsed)
	}

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, fx.store.redemptionCount())
	assert.Equal(t, 1, fx.store.orderCount())
	assert.Equal(t, 8, fx.store.stock(fx.tee.ID, "M"))
}

func TestOrderService_CreateOrder_StockNeverGoesNegative(t *testing.T) {
	fx := createTestOrderService(t)

	mug := &entity.Product{
		ID:          uuid.New(),
		Name:        "Mug",
		Price:       decimal.RequireFromString("250"),
		StockBySize: map[string]int{"default": 3},
		Version:     1,
	}
	fx.store.addProduct(mug)

	fx.payments.EXPECT().
		CreateOrder(mock.Anything, decimalEq("250"), "INR", mock.AnythingOfType("string")).
		Return(&service.PaymentIntent{ID: "order_rzp_mug"}, nil).
		Maybe()

	const buyers = 10
	users := make([]uuid.UUID, buyers)
	for i := range buyers {
		users[i] = uuid.New()
		fx.store.setCart(users[i], &entity.CartItem{ProductID: mug.ID, Quantity: 1, Price: mug.Price})
	}

	var wg sync.WaitGroup
	errs := make([]error, buyers)
	for i := range buyers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = fx.service.CreateOrder(context.Background(), users[i],
				checkoutInput(mug.ID, "250", 1, "", "250", "0", ""))
		}()
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++

			continue
		}
		assert.ErrorIs(t, err, domainerrors.ErrInsufficientStock)
	}

	assert.Equal(t, 3, succeeded)
	assert.Equal(t, 0, fx.store.stock(mug.ID, "default"))
	assert.Equal(t, 3, fx.store.orderCount())
}

func TestOrderService_CreateOrder_RetriesVersionConflicts(t *testing.T) {
	fx := createTestOrderService(t)
	fx.store.stockConflicts[fx.tee.ID] = 2

	fx.payments.EXPECT().
		CreateOrder(mock.Anything, decimalEq("1198"), "INR", mock.AnythingOfType("string")).
		Return(&service.PaymentIntent{ID: "order_rzp_retry"}, nil).
		Once()

	_, err := fx.service.CreateOrder(context.Background(), fx.userID,
		checkoutInput(fx.tee.ID, "599", 2, "M", "1198", "0", ""))

	require.NoError(t, err)
	assert.Equal(t, 8, fx.store.stock(fx.tee.ID, "M"))
}

func TestOrderService_CreateOrder_StockConflictAfterBoundedRetries(t *testing.T) {
	fx := createTestOrderService(t)
	fx.store.stockConflicts[fx.tee.ID] = 3

	fx.payments.EXPECT().
		CreateOrder(mock.Anything, decimalEq("958.40"), "INR", mock.AnythingOfType("string")).
		Return(&service.PaymentIntent{ID: "order_rzp_conflict"}, nil).
		Once()

	_, err := fx.service.CreateOrder(context.Background(), fx.userID,
		checkoutInput(fx.tee.ID, "599", 2, "M", "958.40", "20", "FIRST20"))

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrStockConflict)
	assert.Equal(t, 10, fx.store.stock(fx.tee.ID, "M"))
	assert.Equal(t, 0, fx.store.orderCount())
	assert.Equal(t, 0, fx.store.redemptionCount())
}

func TestOrderService_CreateOrder_PaymentGatewayDown(t *testing.T) {
	fx := createTestOrderService(t)

	fx.payments.EXPECT().
		CreateOrder(mock.Anything, mock.Anything, "INR", mock.Anything).
		Return(nil, domainerrors.ErrPaymentGatewayUnavailable).
		Once()

	_, err := fx.service.CreateOrder(context.Background(), fx.userID,
		checkoutInput(fx.tee.ID, "599", 2, "M", "1198", "0", ""))

	assert.ErrorIs(t, err, domainerrors.ErrPaymentGatewayUnavailable)
	assert.Equal(t, 10, fx.store.stock(fx.tee.ID, "M"))
	assert.Equal(t, 0, fx.store.orderCount())
}

// seedPendingOrder stores a pending order that already reserved two M tees.
func seedPendingOrder(fx orderServiceFixtures, userID uuid.UUID) *entity.Order {
	order := &entity.Order{
		ID:                   uuid.New(),
		UserID:               userID,
		TotalAmount:          decimal.RequireFromString("1198"),
		Currency:             "INR",
		Status:               entity.OrderStatusPending,
		PaymentID:            "order_rzp_seed",
		ShippingDetails:      validShippingDetails(),
		ReservationExpiresAt: time.Now().Add(30 * time.Minute),
		Items: []*entity.OrderItem{{
			ID: uuid.New(), ProductID: fx.tee.ID, Name: fx.tee.Name, Quantity: 2, Price: fx.tee.Price, Size: "M",
		}},
		CreatedAt: time.Now(),
	}
	fx.store.addOrder(order)

	return order
}

func capturedPayment(orderRef string) *service.Payment {
	return &service.Payment{ID: "pay_seed", OrderID: orderRef, Status: service.PaymentCaptured}
}

func TestOrderService_ConfirmOrder_SecondConfirmationFails(t *testing.T) {
	fx := createTestOrderService(t)
	order := seedPendingOrder(fx, fx.userID)

	fx.payments.EXPECT().FetchPayment(mock.Anything, "pay_seed").Return(capturedPayment(order.PaymentID), nil).Once()
	fx.shipping.EXPECT().
		CreateShipment(mock.Anything, mock.AnythingOfType("*entity.Order")).
		Return(&service.Shipment{ShipmentOrderID: "SR-9"}, nil).
		Once()

	input := usecase.ConfirmOrderInput{OrderID: order.ID, PaymentID: "pay_seed"}

	_, err := fx.service.ConfirmOrder(context.Background(), fx.userID, input)
	require.NoError(t, err)
	stockAfterFirst := fx.store.stock(fx.tee.ID, "M")

	_, err = fx.service.ConfirmOrder(context.Background(), fx.userID, input)
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrOrderAlreadyProcessed)
	assert.Equal(t, stockAfterFirst, fx.store.stock(fx.tee.ID, "M"))
}

func TestOrderService_ConfirmRace_OnlyOneTransitionWins(t *testing.T) {
	fx := createTestOrderService(t)
	order := seedPendingOrder(fx, fx.userID)

	fx.shipping.EXPECT().
		CreateShipment(mock.Anything, mock.AnythingOfType("*entity.Order")).
		Return(&service.Shipment{ShipmentOrderID: "SR-race"}, nil).
		Once()

	// Both callers passed the pending check; the conditional update decides.
	_, err := fx.service.confirm(context.Background(), order, "pay_a")
	require.NoError(t, err)

	_, err = fx.service.confirm(context.Background(), order, "pay_b")
	assert.ErrorIs(t, err, domainerrors.ErrOrderAlreadyProcessed)
	assert.Equal(t, "pay_a", fx.store.order(order.ID).PaymentRef)
}

func TestOrderService_VerifyPayment_Rejections(t *testing.T) {
	t.Run("invalid signature", func(t *testing.T) {
		fx := createTestOrderService(t)
		order := seedPendingOrder(fx, fx.userID)

		fx.payments.EXPECT().VerifySignature("order_rzp_seed", "pay_seed", "forged").Return(false).Once()

		_, err := fx.service.VerifyPayment(context.Background(), fx.userID, usecase.VerifyPaymentInput{
			GatewayOrderID: "order_rzp_seed", PaymentID: "pay_seed", Signature: "forged", OrderID: order.ID,
		})

		assert.ErrorIs(t, err, domainerrors.ErrInvalidSignature)
		assert.Equal(t, entity.OrderStatusPending, fx.store.order(order.ID).Status)
	})

	t.Run("payment not captured", func(t *testing.T) {
		fx := createTestOrderService(t)
		order := seedPendingOrder(fx, fx.userID)

		fx.payments.EXPECT().VerifySignature("order_rzp_seed", "pay_seed", "sig").Return(true).Once()
		fx.payments.EXPECT().
			FetchPayment(mock.Anything, "pay_seed").
			Return(&service.Payment{ID: "pay_seed", OrderID: "order_rzp_seed", Status: "authorized"}, nil).
			Once()

		_, err := fx.service.VerifyPayment(context.Background(), fx.userID, usecase.VerifyPaymentInput{
			GatewayOrderID: "order_rzp_seed", PaymentID: "pay_seed", Signature: "sig", OrderID: order.ID,
		})

		assert.ErrorIs(t, err, domainerrors.ErrPaymentNotCaptured)
		assert.Equal(t, entity.OrderStatusPending, fx.store.order(order.ID).Status)
	})

	t.Run("signature for a different gateway order", func(t *testing.T) {
		fx := createTestOrderService(t)
		order := seedPendingOrder(fx, fx.userID)

		fx.payments.EXPECT().VerifySignature("order_rzp_other", "pay_seed", "sig").Return(true).Once()

		_, err := fx.service.VerifyPayment(context.Background(), fx.userID, usecase.VerifyPaymentInput{
			GatewayOrderID: "order_rzp_other", PaymentID: "pay_seed", Signature: "sig", OrderID: order.ID,
		})

		assert.ErrorIs(t, err, domainerrors.ErrInvalidSignature)
	})

	t.Run("order owned by someone else", func(t *testing.T) {
		fx := createTestOrderService(t)
		order := seedPendingOrder(fx, uuid.New())

		fx.payments.EXPECT().VerifySignature("order_rzp_seed", "pay_seed", "sig").Return(true).Once()

		_, err := fx.service.VerifyPayment(context.Background(), fx.userID, usecase.VerifyPaymentInput{
			GatewayOrderID: "order_rzp_seed", PaymentID: "pay_seed", Signature: "sig", OrderID: order.ID,
		})

		assert.ErrorIs(t, err, domainerrors.ErrForbidden)
	})

	t.Run("unknown order", func(t *testing.T) {
		fx := createTestOrderService(t)

		fx.payments.EXPECT().VerifySignature("order_rzp_seed", "pay_seed", "sig").Return(true).Once()

		_, err := fx.service.VerifyPayment(context.Background(), fx.userID, usecase.VerifyPaymentInput{
			GatewayOrderID: "order_rzp_seed", PaymentID: "pay_seed", Signature: "sig", OrderID: uuid.New(),
		})

		assert.ErrorIs(t, err, domainerrors.ErrOrderNotFound)
	})
}

func TestOrderService_ConfirmOrder_ShippingFailureIsCompensated(t *testing.T) {
	fx := createTestOrderService(t)
	order := seedPendingOrder(fx, fx.userID)

	fx.payments.EXPECT().FetchPayment(mock.Anything, "pay_seed").Return(capturedPayment(order.PaymentID), nil).Once()
	fx.shipping.EXPECT().
		CreateShipment(mock.Anything, mock.AnythingOfType("*entity.Order")).
		Return(nil, domainerrors.ErrShippingGatewayUnavailable).
		Once()
	fx.publisher.EXPECT().
		PublishShipmentRetry(mock.Anything, mock.MatchedBy(func(e *service.ShipmentRetryEvent) bool {
			return e.OrderID == order.ID.String() && e.Attempt == 1
		})).
		Return(nil).
		Once()

	out, err := fx.service.ConfirmOrder(context.Background(), fx.userID, usecase.ConfirmOrderInput{OrderID: order.ID, PaymentID: "pay_seed"})

	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusShippingFailed, out.Status)

	stored := fx.store.order(order.ID)
	assert.Equal(t, entity.OrderStatusShippingFailed, stored.Status)
	assert.Equal(t, 1, stored.ShippingAttempts)
	assert.Equal(t, "pay_seed", stored.PaymentRef)
}

func TestOrderService_GetTracking(t *testing.T) {
	fx := createTestOrderService(t)
	order := seedPendingOrder(fx, fx.userID)

	_, err := fx.service.GetTracking(context.Background(), fx.userID, order.ID)
	assert.ErrorIs(t, err, domainerrors.ErrTrackingUnavailable)

	_, err = fx.service.GetTracking(context.Background(), uuid.New(), order.ID)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)

	shipped := "SR-42"
	require.NoError(t, fx.store.NewOrderRepository().UpdateShipment(context.Background(), order.ID, repository.OrderPatch{ShiprocketOrderID: &shipped}))

	fx.shipping.EXPECT().
		TrackShipment(mock.Anything, shipped).
		Return(&service.Tracking{Status: "IN TRANSIT"}, nil).
		Once()

	out, err := fx.service.GetTracking(context.Background(), fx.userID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "IN TRANSIT", out.Tracking.Status)
	assert.Equal(t, order.ID, out.Order.ID)
}

func TestOrderService_ListOrders_Pages(t *testing.T) {
	fx := createTestOrderService(t)
	for range 3 {
		seedPendingOrder(fx, fx.userID)
	}

	page, err := fx.service.ListOrders(context.Background(), usecase.ListOrdersInput{Page: 2, PageSize: 2})

	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total)
	assert.Len(t, page.Orders, 1)
	assert.Equal(t, 2, page.Page)

	page, err = fx.service.ListOrders(context.Background(), usecase.ListOrdersInput{PageSize: 1000})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, maxOrderPageSize, page.PageSize)
}

func TestOrderService_CreateOrder_RepeatedLinesCannotExceedCart(t *testing.T) {
	fx := createTestOrderService(t)

	input := checkoutInput(fx.tee.ID, "599", 2, "M", "2396", "0", "")
	input.Items = append(input.Items, input.Items[0])

	_, err := fx.service.CreateOrder(context.Background(), fx.userID, input)

	assert.ErrorIs(t, err, domainerrors.ErrCartMismatch)
	assert.Equal(t, 10, fx.store.stock(fx.tee.ID, "M"))
	assert.Equal(t, 0, fx.store.orderCount())
}

// sweepAfter runs the reservation sweeper against the fixture store as if d had passed.
func sweepAfter(t *testing.T, fx orderServiceFixtures, d time.Duration) {
	t.Helper()

	sweeper := newFulfillmentService(FulfillmentServiceParams{
		TxManager: fx.store,
		OrderRepo: fx.store.NewOrderRepository(),
		Shipping:  fx.shipping,
		Config:    newTestConfig(),
		Logger:    newDiscardLogger(),
	})
	sweeper.now = func() time.Time { return time.Now().Add(d) }

	released, err := sweeper.ReleaseExpiredReservations(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, released)
}

func createAndExpireOrder(t *testing.T, fx orderServiceFixtures, input usecase.CreateOrderInput, amount string) uuid.UUID {
	t.Helper()

	fx.payments.EXPECT().
		CreateOrder(mock.Anything, decimalEq(amount), "INR", mock.AnythingOfType("string")).
		Return(&service.PaymentIntent{ID: "order_rzp_1", Amount: decimal.RequireFromString(amount), Currency: "INR"}, nil).
		Once()

	created, err := fx.service.CreateOrder(context.Background(), fx.userID, input)
	require.NoError(t, err)

	sweepAfter(t, fx, 31*time.Minute)
	require.Equal(t, entity.OrderStatusCancelled, fx.store.order(created.OrderID).Status)
	require.Equal(t, 10, fx.store.stock(fx.tee.ID, "M"))

	fx.payments.EXPECT().VerifySignature("order_rzp_1", "pay_1", "sig").Return(true).Once()
	fx.payments.EXPECT().
		FetchPayment(mock.Anything, "pay_1").
		Return(&service.Payment{ID: "pay_1", OrderID: "order_rzp_1", Status: service.PaymentCaptured}, nil).
		Once()

	return created.OrderID
}

func TestOrderService_VerifyPayment_LatePaymentReinstatesExpiredOrder(t *testing.T) {
	fx := createTestOrderService(t)
	ctx := context.Background()

	orderID := createAndExpireOrder(t, fx, checkoutInput(fx.tee.ID, "599", 2, "M", "958.40", "20", "FIRST20"), "958.40")
	require.Equal(t, 0, fx.store.redemptionCount())

	fx.shipping.EXPECT().
		CreateShipment(mock.Anything, mock.AnythingOfType("*entity.Order")).
		Return(&service.Shipment{ShipmentOrderID: "SR-late"}, nil).
		Once()

	out, err := fx.service.VerifyPayment(ctx, fx.userID, usecase.VerifyPaymentInput{
		GatewayOrderID: "order_rzp_1", PaymentID: "pay_1", Signature: "sig", OrderID: orderID,
	})

	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusConfirmed, out.Status)
	assert.Equal(t, "SR-late", out.ShiprocketOrderID)

	stored := fx.store.order(orderID)
	assert.Equal(t, entity.OrderStatusConfirmed, stored.Status)
	assert.Equal(t, "pay_1", stored.PaymentRef)
	assert.Equal(t, 8, fx.store.stock(fx.tee.ID, "M"))
	assert.Equal(t, 1, fx.store.redemptionCount())
	assert.Empty(t, fx.store.cart(fx.userID).Items)
}

func TestOrderService_VerifyPayment_LatePaymentWithoutStockKeepsPaymentRef(t *testing.T) {
	fx := createTestOrderService(t)

	orderID := createAndExpireOrder(t, fx, checkoutInput(fx.tee.ID, "599", 2, "M", "1198", "0", ""), "1198")

	// Another checkout took the released stock in the meantime.
	drained := cloneProduct(fx.tee)
	drained.StockBySize["M"] = 1
	drained.Version = 9
	fx.store.addProduct(drained)

	_, err := fx.service.VerifyPayment(context.Background(), fx.userID, usecase.VerifyPaymentInput{
		GatewayOrderID: "order_rzp_1", PaymentID: "pay_1", Signature: "sig", OrderID: orderID,
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrOrderExpired)

	stored := fx.store.order(orderID)
	assert.Equal(t, entity.OrderStatusCancelled, stored.Status)
	assert.Equal(t, "pay_1", stored.PaymentRef)
	assert.Equal(t, 1, fx.store.stock(fx.tee.ID, "M"))
}
