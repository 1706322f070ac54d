package impl

import (
	"context"
	"testing"
	"time"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
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

type fulfillmentFixtures struct {
	service  *fulfillmentService
	store    *memStore
	shipping *mockService.MockShippingGateway
	tee      *entity.Product
	now      time.Time
}

func createTestFulfillmentService(t *testing.T) fulfillmentFixtures {
	store := newMemStore()
	shipping := mockService.NewMockShippingGateway(t)

	tee := &entity.Product{
		ID:          uuid.New(),
		Name:        "Classic Tee",
		Price:       decimal.RequireFromString("599"),
		Sizes:       []string{"M"},
		StockBySize: map[string]int{"M": 8},
		Version:     1,
	}
	store.addProduct(tee)

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	srv := newFulfillmentService(FulfillmentServiceParams{
		TxManager: store,
		OrderRepo: store.NewOrderRepository(),
		Shipping:  shipping,
		Config:    newTestConfig(),
		Logger:    newDiscardLogger(),
	})
	srv.now = func() time.Time { return now }

	return fulfillmentFixtures{service: srv, store: store, shipping: shipping, tee: tee, now: now}
}

func (fx fulfillmentFixtures) seedOrder(status entity.OrderStatus, expiresAt time.Time, attempts int) *entity.Order {
	order := &entity.Order{
		ID:                   uuid.New(),
		UserID:               uuid.New(),
		TotalAmount:          decimal.RequireFromString("958.40"),
		Currency:             "INR",
		Status:               status,
		PaymentID:            "order_rzp_" + uuid.NewString()[:8],
		OfferCode:            "FIRST20",
		Discount:             decimal.RequireFromString("20"),
		ShippingAttempts:     attempts,
		ReservationExpiresAt: expiresAt,
		Items: []*entity.OrderItem{{
			ID: uuid.New(), ProductID: fx.tee.ID, Name: fx.tee.Name, Quantity: 2, Price: fx.tee.Price, Size: "M",
		}},
	}
	fx.store.addOrder(order)

	return order
}

func TestFulfillmentService_ReleaseExpiredReservations(t *testing.T) {
	fx := createTestFulfillmentService(t)

	offer := &entity.OfferCode{ID: uuid.New(), Code: "FIRST20", Discount: decimal.RequireFromString("20"), IsFirstOrder: true}
	fx.store.addOffer(offer)

	expired := fx.seedOrder(entity.OrderStatusPending, fx.now.Add(-time.Minute), 0)
	fx.store.addRedemption(&entity.UserOfferCode{
		ID: uuid.New(), UserID: expired.UserID, OfferCodeID: offer.ID, OrderID: expired.ID, UsedAt: fx.now,
	})
	live := fx.seedOrder(entity.OrderStatusPending, fx.now.Add(time.Minute), 0)
	confirmed := fx.seedOrder(entity.OrderStatusConfirmed, fx.now.Add(-time.Hour), 0)

	released, err := fx.service.ReleaseExpiredReservations(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, released)
	assert.Equal(t, entity.OrderStatusCancelled, fx.store.order(expired.ID).Status)
	assert.Equal(t, entity.OrderStatusPending, fx.store.order(live.ID).Status)
	assert.Equal(t, entity.OrderStatusConfirmed, fx.store.order(confirmed.ID).Status)
	assert.Equal(t, 10, fx.store.stock(fx.tee.ID, "M"))
	assert.Equal(t, 0, fx.store.redemptionCount())

	// A second sweep finds nothing left to release.
	released, err = fx.service.ReleaseExpiredReservations(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, released)
	assert.Equal(t, 10, fx.store.stock(fx.tee.ID, "M"))
}

func TestFulfillmentService_ReleaseExpiredReservations_StockConflictRollsBack(t *testing.T) {
	fx := createTestFulfillmentService(t)
	expired := fx.seedOrder(entity.OrderStatusPending, fx.now.Add(-time.Minute), 0)
	fx.store.stockConflicts[fx.tee.ID] = 3

	released, err := fx.service.ReleaseExpiredReservations(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 0, released)
	assert.Equal(t, entity.OrderStatusPending, fx.store.order(expired.ID).Status)
	assert.Equal(t, 8, fx.store.stock(fx.tee.ID, "M"))
}

func TestFulfillmentService_RetryShipment(t *testing.T) {
	t.Run("creates the shipment and confirms the order", func(t *testing.T) {
		fx := createTestFulfillmentService(t)
		order := fx.seedOrder(entity.OrderStatusShippingFailed, fx.now, 1)

		fx.shipping.EXPECT().
			CreateShipment(mock.Anything, mock.MatchedBy(func(o *entity.Order) bool { return o.ID == order.ID })).
			Return(&service.Shipment{ShipmentOrderID: "SR-7", TrackingURL: "https://track.example/SR-7"}, nil).
			Once()

		err := fx.service.RetryShipment(context.Background(), &service.ShipmentRetryEvent{OrderID: order.ID.String(), Attempt: 2})

		require.NoError(t, err)
		stored := fx.store.order(order.ID)
		assert.Equal(t, entity.OrderStatusConfirmed, stored.Status)
		assert.Equal(t, "SR-7", stored.ShiprocketOrderID)
		assert.Equal(t, "https://track.example/SR-7", stored.TrackingURL)
	})

	t.Run("asks for redelivery while attempts remain", func(t *testing.T) {
		fx := createTestFulfillmentService(t)
		order := fx.seedOrder(entity.OrderStatusShippingFailed, fx.now, 1)

		fx.shipping.EXPECT().
			CreateShipment(mock.Anything, mock.Anything).
			Return(nil, domainerrors.ErrShippingGatewayUnavailable).
			Once()

		err := fx.service.RetryShipment(context.Background(), &service.ShipmentRetryEvent{OrderID: order.ID.String(), Attempt: 2})

		require.Error(t, err)
		assert.True(t, errors.Is(err, usecase.ErrRetryLater))
		stored := fx.store.order(order.ID)
		assert.Equal(t, entity.OrderStatusShippingFailed, stored.Status)
		assert.Equal(t, 2, stored.ShippingAttempts)
	})

	t.Run("gives up after the last attempt", func(t *testing.T) {
		fx := createTestFulfillmentService(t)
		order := fx.seedOrder(entity.OrderStatusShippingFailed, fx.now, 2)

		fx.shipping.EXPECT().
			CreateShipment(mock.Anything, mock.Anything).
			Return(nil, domainerrors.ErrShippingGatewayUnavailable).
			Once()

		err := fx.service.RetryShipment(context.Background(), &service.ShipmentRetryEvent{OrderID: order.ID.String(), Attempt: 3})

		require.NoError(t, err)
		stored := fx.store.order(order.ID)
		assert.Equal(t, entity.OrderStatusShippingFailed, stored.Status)
		assert.Equal(t, 3, stored.ShippingAttempts)
	})

	t.Run("acknowledges stale events", func(t *testing.T) {
		fx := createTestFulfillmentService(t)
		order := fx.seedOrder(entity.OrderStatusConfirmed, fx.now, 1)

		err := fx.service.RetryShipment(context.Background(), &service.ShipmentRetryEvent{OrderID: order.ID.String()})
		require.NoError(t, err)

		err = fx.service.RetryShipment(context.Background(), &service.ShipmentRetryEvent{OrderID: uuid.NewString()})
		require.NoError(t, err)

		fx.shipping.AssertNotCalled(t, "CreateShipment", mock.Anything, mock.Anything)
	})

	t.Run("rejects malformed events", func(t *testing.T) {
		fx := createTestFulfillmentService(t)

		err := fx.service.RetryShipment(context.Background(), &service.ShipmentRetryEvent{OrderID: "not-a-uuid"})

		require.Error(t, err)
		assert.False(t, errors.Is(err, usecase.ErrRetryLater))
	})
}
