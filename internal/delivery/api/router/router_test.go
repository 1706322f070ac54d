package router_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apimiddleware "storefront/internal/delivery/api/middleware"
	"storefront/internal/delivery/api/router"
	"storefront/internal/delivery/api/router/handler"
	"storefront/internal/delivery/api/validator"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/service"
	mockservice "storefront/internal/mocks/service"
	mockusecase "storefront/internal/mocks/usecase"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	userToken  = "user-token"
	adminToken = "admin-token"
)

type envelope struct {
	Success   bool            `json:"success"`
	Data      json.RawMessage `json:"data"`
	Error     string          `json:"error"`
	Code      string          `json:"code"`
	Details   map[string]any  `json:"details"`
	RequestID string          `json:"requestId"`
}

type testServer struct {
	echo    *echo.Echo
	userID  uuid.UUID
	adminID uuid.UUID
	auth    *mockusecase.MockAuthUsecase
	cart    *mockusecase.MockCartUsecase
	offer   *mockusecase.MockOfferUsecase
	order   *mockusecase.MockOrderUsecase
	tokens  *mockservice.MockTokenService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s := &testServer{
		echo:    echo.New(),
		userID:  uuid.New(),
		adminID: uuid.New(),
		auth:    mockusecase.NewMockAuthUsecase(t),
		cart:    mockusecase.NewMockCartUsecase(t),
		offer:   mockusecase.NewMockOfferUsecase(t),
		order:   mockusecase.NewMockOrderUsecase(t),
		tokens:  mockservice.NewMockTokenService(t),
	}

	s.tokens.EXPECT().ValidateAccessToken(userToken).
		Return(&service.Claims{UserID: s.userID, Roles: []string{"user"}, Type: service.TokenTypeAccess}, nil).Maybe()
	s.tokens.EXPECT().ValidateAccessToken(adminToken).
		Return(&service.Claims{UserID: s.adminID, Roles: []string{"user", "admin"}, Type: service.TokenTypeAccess}, nil).Maybe()
	s.tokens.EXPECT().ValidateAccessToken(mock.Anything).
		Return(nil, errors.New("token is malformed")).Maybe()

	s.echo.Validator = validator.New()
	s.echo.HTTPErrorHandler = apimiddleware.NewErrorMiddleware(logger).HandleHTTPError

	router.NewRouter(router.RouterParams{
		AuthHandler:  handler.NewAuthHandler(handler.AuthHandlerParams{AuthUC: s.auth, TokenService: s.tokens, Logger: logger}),
		CartHandler:  handler.NewCartHandler(handler.CartHandlerParams{CartUC: s.cart, Logger: logger}),
		OfferHandler: handler.NewOfferHandler(handler.OfferHandlerParams{OfferUC: s.offer, Logger: logger}),
		OrderHandler: handler.NewOrderHandler(handler.OrderHandlerParams{OrderUC: s.order, Logger: logger}),
		AuthMiddleware: apimiddleware.NewAuthMiddleware(apimiddleware.AuthMiddlewareParams{
			TokenService: s.tokens,
			Logger:       logger,
		}),
	}).RegisterRoutes(s.echo)

	return s
}

func (s *testServer) do(t *testing.T, method, path, token, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())

	return rec, env
}

func TestHealth(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	rec, env := s.do(t, http.MethodGet, "/health", "", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)
	assert.JSONEq(t, `{"status":"ok"}`, string(env.Data))
}

func TestAuthentication(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		header string
		msg    string
	}{
		{name: "missing header", header: "", msg: "Authorization header is missing"},
		{name: "not bearer", header: "Basic abc", msg: "Invalid token format, must be Bearer token"},
		{name: "invalid token", header: "Bearer garbage", msg: "Invalid or expired token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := newTestServer(t)
			req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
			if tt.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.header)
			}
			rec := httptest.NewRecorder()
			s.echo.ServeHTTP(rec, req)

			var env envelope
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.False(t, env.Success)
			assert.Equal(t, "UNAUTHORIZED", env.Code)
			assert.Equal(t, tt.msg, env.Error)
		})
	}
}

func TestLogin(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	user := &entity.User{ID: uuid.New(), Email: "asha@example.com", Name: "Asha", Role: entity.RoleUser}
	s.auth.EXPECT().Login(mock.Anything, usecase.LoginInput{Email: "asha@example.com", Password: "secret"}).
		Return(&usecase.LoginOutput{AccessToken: "a", RefreshToken: "r", User: user}, nil)
	s.tokens.EXPECT().GetAccessTokenDuration().Return(3600_000_000_000)

	rec, env := s.do(t, http.MethodPost, "/api/auth/login", "", `{"email":"asha@example.com","password":"secret"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var data handler.LoginResponse
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "a", data.AccessToken)
	assert.Equal(t, "r", data.RefreshToken)
	assert.Equal(t, int64(3600), data.ExpiresIn)
	assert.Equal(t, user.ID, data.User.ID)
	assert.Equal(t, "user", data.User.Role)
}

func TestLogin_Locked(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	s.auth.EXPECT().Login(mock.Anything, mock.Anything).Return(nil, domainerrors.ErrAccountLocked)

	rec, env := s.do(t, http.MethodPost, "/api/auth/login", "", `{"email":"asha@example.com","password":"secret"}`)

	assert.Equal(t, http.StatusLocked, rec.Code)
	assert.Equal(t, "ACCOUNT_LOCKED", env.Code)
}

const validOrderBody = `{
	"amount": 1998,
	"currency": "INR",
	"items": [{"productId": "6f1c2b1e-3b0a-4c55-9d0e-1a2b3c4d5e6f", "quantity": 2, "price": 999, "size": "M"}],
	"discount": 0,
	"shippingDetails": {
		"name": "Asha Rao",
		"email": "asha@example.com",
		"phone": "9876543210",
		"address": "12 MG Road",
		"pincode": "560001",
		"city": "Bengaluru",
		"state": "KA"
	}
}`

func TestCreateOrder(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	orderID := uuid.New()
	s.order.EXPECT().CreateOrder(mock.Anything, s.userID, mock.MatchedBy(func(in usecase.CreateOrderInput) bool {
		return in.Amount.Equal(decimal.NewFromInt(1998)) &&
			in.Currency == "INR" &&
			len(in.Items) == 1 &&
			in.Items[0].Quantity == 2 &&
			in.Items[0].Size == "M" &&
			in.ShippingDetails.Pincode == "560001"
	})).Return(&usecase.CreateOrderOutput{
		RazorpayOrderID: "order_abc",
		OrderID:         orderID,
		Amount:          decimal.NewFromInt(1998),
		Currency:        "INR",
	}, nil)

	rec, env := s.do(t, http.MethodPost, "/api/payment/create", userToken, validOrderBody)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.True(t, env.Success)
	assert.NotEmpty(t, env.RequestID)

	var data map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "order_abc", data["razorpayOrderId"])
	assert.Equal(t, orderID.String(), data["orderId"])
}

func TestCreateOrder_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		from  string
		to    string
		field string
	}{
		{name: "short phone", from: `"9876543210"`, to: `"98765"`, field: "shippingDetails.phone"},
		{name: "bad pincode", from: `"560001"`, to: `"56A001"`, field: "shippingDetails.pincode"},
		{name: "bad email", from: `"asha@example.com"`, to: `"asha"`, field: "shippingDetails.email"},
		{name: "wrong currency", from: `"INR"`, to: `"USD"`, field: "currency"},
		{name: "zero amount", from: `"amount": 1998`, to: `"amount": 0`, field: "amount"},
		{name: "zero quantity", from: `"quantity": 2`, to: `"quantity": 0`, field: "items[0].quantity"},
		{name: "negative discount", from: `"discount": 0`, to: `"discount": -5`, field: "discount"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := newTestServer(t)
			body := strings.Replace(validOrderBody, tt.from, tt.to, 1)

			rec, env := s.do(t, http.MethodPost, "/api/payment/create", userToken, body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, "VALIDATION_FAILED", env.Code)
			assert.Contains(t, env.Details, tt.field)
		})
	}
}

func TestCreateOrder_MalformedBody(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	rec, env := s.do(t, http.MethodPost, "/api/payment/create", userToken, `{"amount":`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_FAILED", env.Code)
}

func TestCreateOrder_DomainErrors(t *testing.T) {
	t.Parallel()

	productID := uuid.New()
	tests := []struct {
		name        string
		err         error
		status      int
		code        string
		wantDetails bool
	}{
		{
			name: "price mismatch keeps details",
			err: domainerrors.ErrPriceMismatch.WithDetails(map[string]any{
				"productId":     productID,
				"expectedPrice": "899",
			}),
			status:      http.StatusBadRequest,
			code:        "PRICE_MISMATCH",
			wantDetails: true,
		},
		{
			name:   "gateway unavailable",
			err:    errors.Wrap(domainerrors.ErrPaymentGatewayUnavailable, "create gateway order"),
			status: http.StatusInternalServerError,
			code:   "PAYMENT_GATEWAY_UNAVAILABLE",
		},
		{
			name:   "unknown error is hidden",
			err:    errors.New("pq: connection reset"),
			status: http.StatusInternalServerError,
			code:   "INTERNAL_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := newTestServer(t)
			s.order.EXPECT().CreateOrder(mock.Anything, s.userID, mock.Anything).Return(nil, tt.err)

			rec, env := s.do(t, http.MethodPost, "/api/payment/create", userToken, validOrderBody)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.code, env.Code)
			assert.False(t, env.Success)
			assert.NotContains(t, env.Error, "pq:")
			if tt.wantDetails {
				assert.Equal(t, productID.String(), env.Details["productId"])
			} else {
				assert.Empty(t, env.Details)
			}
		})
	}
}

func TestVerifyPayment(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	orderID := uuid.New()
	s.order.EXPECT().VerifyPayment(mock.Anything, s.userID, usecase.VerifyPaymentInput{
		GatewayOrderID: "order_abc",
		PaymentID:      "pay_1",
		Signature:      "sig",
		OrderID:        orderID,
	}).Return(&usecase.ConfirmOrderOutput{
		OrderID:           orderID,
		Status:            entity.OrderStatusConfirmed,
		ShiprocketOrderID: "SR1",
	}, nil)

	body := `{"orderId":"order_abc","paymentId":"pay_1","signature":"sig","dbOrderId":"` + orderID.String() + `"}`
	rec, env := s.do(t, http.MethodPost, "/api/payment/verify", userToken, body)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var data usecase.ConfirmOrderOutput
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, entity.OrderStatusConfirmed, data.Status)
	assert.Equal(t, "SR1", data.ShiprocketOrderID)
}

func TestVerifyPayment_InvalidSignature(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	s.order.EXPECT().VerifyPayment(mock.Anything, s.userID, mock.Anything).Return(nil, domainerrors.ErrInvalidSignature)

	body := `{"orderId":"order_abc","paymentId":"pay_1","signature":"sig","dbOrderId":"` + uuid.NewString() + `"}`
	rec, env := s.do(t, http.MethodPost, "/api/payment/verify", userToken, body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_SIGNATURE", env.Code)
}

func TestConfirmOrder(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	orderID := uuid.New()
	s.order.EXPECT().ConfirmOrder(mock.Anything, s.userID, usecase.ConfirmOrderInput{OrderID: orderID, PaymentID: "pay_1"}).
		Return(&usecase.ConfirmOrderOutput{OrderID: orderID, Status: entity.OrderStatusShippingFailed}, nil)

	rec, env := s.do(t, http.MethodPost, "/api/orders/confirm", userToken,
		`{"dbOrderId":"`+orderID.String()+`","paymentId":"pay_1"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), `"status":"shipping_failed"`)
}

func TestGetTracking(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	orderID := uuid.New()
	order := &entity.Order{
		ID:                orderID,
		UserID:            s.userID,
		TotalAmount:       decimal.NewFromInt(1998),
		Currency:          "INR",
		Status:            entity.OrderStatusConfirmed,
		ShiprocketOrderID: "SR1",
		Items:             []*entity.OrderItem{{ProductID: uuid.New(), Name: "Tee", Quantity: 2, Price: decimal.NewFromInt(999)}},
	}
	s.order.EXPECT().GetTracking(mock.Anything, s.userID, orderID).Return(&usecase.TrackingOutput{
		Order:    order,
		Tracking: &service.Tracking{Status: "IN TRANSIT", Courier: "Delhivery"},
	}, nil)

	rec, env := s.do(t, http.MethodGet, "/api/orders/track/"+orderID.String(), userToken, "")

	require.Equal(t, http.StatusOK, rec.Code)
	var data handler.TrackingResponse
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, orderID, data.Order.ID)
	assert.Equal(t, "SR1", data.Order.ShiprocketOrderID)
	require.Len(t, data.Order.Items, 1)
	assert.Equal(t, "IN TRANSIT", data.Tracking.Status)
}

func TestGetTracking_Errors(t *testing.T) {
	t.Parallel()

	t.Run("malformed id", func(t *testing.T) {
		t.Parallel()

		s := newTestServer(t)
		rec, env := s.do(t, http.MethodGet, "/api/orders/track/not-a-uuid", userToken, "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "ORDER_NOT_FOUND", env.Code)
	})

	t.Run("not owner", func(t *testing.T) {
		t.Parallel()

		s := newTestServer(t)
		s.order.EXPECT().GetTracking(mock.Anything, s.userID, mock.Anything).Return(nil, domainerrors.ErrForbidden)

		rec, env := s.do(t, http.MethodGet, "/api/orders/track/"+uuid.NewString(), userToken, "")

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, "FORBIDDEN", env.Code)
	})
}

func TestListOrders(t *testing.T) {
	t.Parallel()

	t.Run("requires admin", func(t *testing.T) {
		t.Parallel()

		s := newTestServer(t)
		rec, env := s.do(t, http.MethodGet, "/api/orders", userToken, "")

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, "FORBIDDEN", env.Code)
	})

	t.Run("admin with filter", func(t *testing.T) {
		t.Parallel()

		s := newTestServer(t)
		s.order.EXPECT().ListOrders(mock.Anything, mock.MatchedBy(func(in usecase.ListOrdersInput) bool {
			return in.Page == 2 && in.PageSize == 5 && in.Status != nil && *in.Status == entity.OrderStatusPending
		})).Return(&usecase.OrderPage{
			Orders:   []*entity.Order{{ID: uuid.New(), Status: entity.OrderStatusPending}},
			Total:    6,
			Page:     2,
			PageSize: 5,
		}, nil)

		rec, env := s.do(t, http.MethodGet, "/api/orders?page=2&pageSize=5&status=pending", adminToken, "")

		require.Equal(t, http.StatusOK, rec.Code)
		var data handler.OrderPageResponse
		require.NoError(t, json.Unmarshal(env.Data, &data))
		assert.Equal(t, int64(6), data.Total)
		require.Len(t, data.Orders, 1)
		assert.Equal(t, entity.OrderStatusPending, data.Orders[0].Status)
	})

	t.Run("unknown status", func(t *testing.T) {
		t.Parallel()

		s := newTestServer(t)
		rec, env := s.do(t, http.MethodGet, "/api/orders?status=shipped", adminToken, "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "VALIDATION_FAILED", env.Code)
	})
}

func TestCartRoutes(t *testing.T) {
	t.Parallel()

	productID := uuid.New()
	view := &usecase.CartView{
		Items: []*usecase.PricedItem{{ProductID: productID, Name: "Tee", Quantity: 1, Price: decimal.NewFromInt(999)}},
		Total: decimal.NewFromInt(999),
	}

	t.Run("get", func(t *testing.T) {
		t.Parallel()

		s := newTestServer(t)
		s.cart.EXPECT().GetCart(mock.Anything, s.userID).Return(view, nil)

		rec, env := s.do(t, http.MethodGet, "/api/cart", userToken, "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, string(env.Data), productID.String())
	})

	t.Run("remove with body", func(t *testing.T) {
		t.Parallel()

		s := newTestServer(t)
		s.cart.EXPECT().RemoveItem(mock.Anything, s.userID, productID, "M").Return(view, nil)

		rec, _ := s.do(t, http.MethodDelete, "/api/cart/remove", userToken,
			`{"productId":"`+productID.String()+`","size":"M"}`)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("update missing line", func(t *testing.T) {
		t.Parallel()

		s := newTestServer(t)
		s.cart.EXPECT().UpdateItem(mock.Anything, s.userID, usecase.UpdateCartItemInput{ProductID: productID, Quantity: 3}).
			Return(nil, domainerrors.ErrCartItemNotFound)

		rec, env := s.do(t, http.MethodPut, "/api/cart/update", userToken,
			`{"productId":"`+productID.String()+`","quantity":3}`)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "CART_ITEM_NOT_FOUND", env.Code)
	})

	t.Run("validate rejects empty cart", func(t *testing.T) {
		t.Parallel()

		s := newTestServer(t)
		rec, env := s.do(t, http.MethodPost, "/api/cart/validate", userToken, `{"items":[]}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, env.Details, "items")
	})
}

func TestApplyOffer(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	s.offer.EXPECT().ApplyOfferCode(mock.Anything, s.userID, mock.MatchedBy(func(in usecase.ApplyOfferInput) bool {
		return in.Code == "WELCOME10" && in.CartTotal.Equal(decimal.NewFromInt(999))
	})).Return(&usecase.OfferPreview{
		Code:            "WELCOME10",
		Discount:        decimal.NewFromInt(10),
		DiscountedTotal: decimal.RequireFromString("899.1"),
	}, nil)

	body := `{"code":"WELCOME10","cartTotal":999,"items":[{"productId":"` + uuid.NewString() + `","quantity":1,"price":999}]}`
	rec, env := s.do(t, http.MethodPost, "/api/offers/apply", userToken, body)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, string(env.Data), `"discountedTotal":"899.1"`)
}
