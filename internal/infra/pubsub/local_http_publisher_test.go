package pubsub

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"storefront/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewPushMessage(t *testing.T) {
	event := &service.ShipmentRetryEvent{RequestID: "req-1", OrderID: "order-1", Attempt: 2}

	msg, err := NewPushMessage(event)
	require.NoError(t, err)

	assert.Equal(t, "order-1", msg.Message.Attributes["order_id"])
	assert.Equal(t, "2", msg.Message.Attributes["attempt"])
	assert.Equal(t, "req-1", msg.Message.Attributes["request_id"])
	assert.NotEmpty(t, msg.Message.MessageID)

	data, err := base64.StdEncoding.DecodeString(msg.Message.Data)
	require.NoError(t, err)

	var decoded service.ShipmentRetryEvent
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, *event, decoded)
}

func TestLocalHTTPPublisher_Delivers(t *testing.T) {
	var received atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		received.Store(r.Header.Get("X-Request-Id"))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	publisher := NewLocalHTTPPublisher(srv.URL, discardLogger())
	defer publisher.Close()

	err := publisher.PublishShipmentRetry(context.Background(), &service.ShipmentRetryEvent{RequestID: "req-9", OrderID: "o", Attempt: 1})

	require.NoError(t, err)
	assert.Equal(t, "req-9", received.Load())
}

func TestLocalHTTPPublisher_RedeliversOnServiceUnavailable(t *testing.T) {
	var calls atomic.Int32
	done := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)

			return
		}
		w.WriteHeader(http.StatusNoContent)
		close(done)
	}))
	defer srv.Close()

	publisher := NewLocalHTTPPublisher(srv.URL, discardLogger()).(*localHTTPPublisher)
	publisher.baseDelay = time.Millisecond
	defer publisher.Close()

	err := publisher.PublishShipmentRetry(context.Background(), &service.ShipmentRetryEvent{OrderID: "o", Attempt: 1})
	require.NoError(t, err)

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("event was not redelivered")
	}
	assert.Equal(t, int32(3), calls.Load())
}

func TestLocalHTTPPublisher_FailsOnClientError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	publisher := NewLocalHTTPPublisher(srv.URL, discardLogger())
	defer publisher.Close()

	err := publisher.PublishShipmentRetry(context.Background(), &service.ShipmentRetryEvent{OrderID: "o", Attempt: 1})

	assert.ErrorContains(t, err, "400")
}
