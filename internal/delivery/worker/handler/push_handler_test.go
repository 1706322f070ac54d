package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/service"
	"storefront/internal/infra/pubsub"
	mockusecase "storefront/internal/mocks/usecase"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/idtoken"
)

func newTestHandler(t *testing.T) (*PushHandler, *mockusecase.MockFulfillmentUsecase) {
	t.Helper()

	fulfillment := mockusecase.NewMockFulfillmentUsecase(t)

	return &PushHandler{
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		fulfillmentUC: fulfillment,
	}, fulfillment
}

func pushBody(t *testing.T, event *service.ShipmentRetryEvent) string {
	t.Helper()

	msg, err := pubsub.NewPushMessage(event)
	require.NoError(t, err)
	body, err := json.Marshal(msg)
	require.NoError(t, err)

	return string(body)
}

func servePush(h *PushHandler, body string, header http.Header) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/push", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for k, v := range header {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	_ = h.HandlePush(e.NewContext(req, rec))

	return rec
}

func TestHandlePush_Outcomes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "shipment created", status: http.StatusOK},
		{name: "retry later asks for redelivery", err: errors.Wrap(usecase.ErrRetryLater, "shipment attempt 1 failed"), status: http.StatusServiceUnavailable},
		{name: "permanent failure is acknowledged", err: errors.New("invalid order id"), status: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h, fulfillment := newTestHandler(t)
			event := &service.ShipmentRetryEvent{RequestID: "req-1", OrderID: "6f1c2b1e-3b0a-4c55-9d0e-1a2b3c4d5e6f", Attempt: 1}

			fulfillment.EXPECT().RetryShipment(mock.Anything, event).
				Run(func(ctx context.Context, _ *service.ShipmentRetryEvent) {
					assert.Equal(t, "req-1", deliverycontext.GetRequestIDFromContext(ctx))
				}).
				Return(tt.err)

			rec := servePush(h, pushBody(t, event), nil)

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestHandlePush_Malformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{name: "not json", body: `{"message":`},
		{name: "bad base64", body: `{"message":{"data":"%%%"}}`},
		{name: "event without order", body: `{"message":{"data":"e30="}}`}, // {}
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h, _ := newTestHandler(t)
			rec := servePush(h, tt.body, nil)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestHandlePush_VerifiesGoogleToken(t *testing.T) {
	t.Parallel()

	event := &service.ShipmentRetryEvent{OrderID: "6f1c2b1e-3b0a-4c55-9d0e-1a2b3c4d5e6f", Attempt: 2}

	tests := []struct {
		name     string
		header   string
		issuer   string
		tokenErr error
		status   int
	}{
		{name: "missing header", status: http.StatusUnauthorized},
		{name: "not bearer", header: "Basic abc", status: http.StatusUnauthorized},
		{name: "invalid token", header: "Bearer bad", tokenErr: errors.New("signature mismatch"), status: http.StatusUnauthorized},
		{name: "foreign issuer", header: "Bearer ok", issuer: "https://evil.example", status: http.StatusUnauthorized},
		{name: "google token", header: "Bearer ok", issuer: "https://accounts.google.com", status: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h, fulfillment := newTestHandler(t)
			h.verifyPushAuth = true
			h.validateToken = func(_ context.Context, token, audience string) (*idtoken.Payload, error) {
				assert.Equal(t, "http://example.com/push", audience)
				if tt.tokenErr != nil {
					return nil, tt.tokenErr
				}

				return &idtoken.Payload{Issuer: tt.issuer, Claims: map[string]any{"email_verified": true}}, nil
			}
			if tt.status == http.StatusOK {
				fulfillment.EXPECT().RetryShipment(mock.Anything, event).Return(nil)
			}

			header := http.Header{}
			if tt.header != "" {
				header.Set(echo.HeaderAuthorization, tt.header)
			}
			rec := servePush(h, pushBody(t, event), header)

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestExtractRequestID(t *testing.T) {
	t.Parallel()

	var msg PubSubMessage
	msg.Message.Attributes = map[string]string{"request_id": "from-attrs"}
	assert.Equal(t, "from-attrs", extractRequestID(context.Background(), &msg, &service.ShipmentRetryEvent{RequestID: "from-event"}))

	assert.Equal(t, "from-event", extractRequestID(context.Background(), &PubSubMessage{}, &service.ShipmentRetryEvent{RequestID: "from-event"}))

	ctx := deliverycontext.WithRequestID(context.Background(), "from-header")
	assert.Equal(t, "from-header", extractRequestID(ctx, &PubSubMessage{}, &service.ShipmentRetryEvent{}))

	assert.NotEmpty(t, extractRequestID(context.Background(), &PubSubMessage{}, &service.ShipmentRetryEvent{}))
}
