package pubsub

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"storefront/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const (
	localSubscription = "projects/local/subscriptions/shipment-retry-sub"

	// Mirrors the minimum backoff of a Pub/Sub retry policy.
	redeliveryBaseDelay = 10 * time.Second
	maxRedeliveries     = 10
)

// errRedeliver marks a 503 answer from the worker.
var errRedeliver = errors.New("worker asked for redelivery")

// localHTTPPublisher implements EventPublisher by sending HTTP POST requests
// to a local endpoint, simulating Pub/Sub push behavior for development
type localHTTPPublisher struct {
	endpoint   string
	httpClient *http.Client
	baseDelay  time.Duration
	logger     *slog.Logger

	stopCtx context.Context
	stop    context.CancelFunc
	wg      sync.WaitGroup
}

// PushMessage represents the structure of a Pub/Sub push message.
// The order worker decodes the same envelope in production.
type PushMessage struct {
	Message struct {
		Data        string            `json:"data"`
		Attributes  map[string]string `json:"attributes,omitempty"`
		MessageID   string            `json:"messageId"`
		PublishTime string            `json:"publishTime"`
	} `json:"message"`
	Subscription string `json:"subscription"`
}

// NewLocalHTTPPublisher creates a new local HTTP publisher for development
func NewLocalHTTPPublisher(endpoint string, logger *slog.Logger) service.EventPublisher {
	stopCtx, stop := context.WithCancel(context.Background())

	return &localHTTPPublisher{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseDelay: redeliveryBaseDelay,
		logger:    logger,
		stopCtx:   stopCtx,
		stop:      stop,
	}
}

// NewPushMessage wraps an event the way Pub/Sub push delivers it.
func NewPushMessage(event *service.ShipmentRetryEvent) (*PushMessage, error) {
	eventData, err := json.Marshal(event)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	pushMsg := &PushMessage{Subscription: localSubscription}
	pushMsg.Message.Data = base64.StdEncoding.EncodeToString(eventData)
	pushMsg.Message.MessageID = uuid.NewString()
	pushMsg.Message.PublishTime = time.Now().UTC().Format(time.RFC3339)
	pushMsg.Message.Attributes = eventAttributes(event)

	return pushMsg, nil
}

// PublishShipmentRetry publishes an event by sending HTTP POST to the local endpoint.
// A 503 answer is redelivered in the background with growing delays, like a push subscription would.
func (p *localHTTPPublisher) PublishShipmentRetry(ctx context.Context, event *service.ShipmentRetryEvent) error {
	p.logger.Info("[LocalPubSub] Publishing shipment retry",
		slog.String("endpoint", p.endpoint),
		slog.String("order_id", event.OrderID),
		slog.Int("attempt", event.Attempt),
	)

	err := p.push(ctx, event)
	if errors.Is(err, errRedeliver) {
		p.redeliver(event)

		return nil
	}
	if err != nil {
		return err
	}

	p.logger.Info("[LocalPubSub] Shipment retry delivered",
		slog.String("order_id", event.OrderID),
	)

	return nil
}

func (p *localHTTPPublisher) push(ctx context.Context, event *service.ShipmentRetryEvent) error {
	pushMsg, err := NewPushMessage(event)
	if err != nil {
		return err
	}

	body, err := json.Marshal(pushMsg)
	if err != nil {
		return errors.WithStack(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return errors.WithStack(err)
	}
	req.Header.Set("Content-Type", "application/json")

	// Add X-Request-Id header for tracing
	if event.RequestID != "" {
		req.Header.Set("X-Request-Id", event.RequestID)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return errors.WithStack(err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusServiceUnavailable:
		return errRedeliver
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return errors.Errorf("worker returned non-success status: %d", resp.StatusCode)
	}

	return nil
}

func (p *localHTTPPublisher) redeliver(event *service.ShipmentRetryEvent) {
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()

		delay := p.baseDelay
		for i := 1; i <= maxRedeliveries; i++ {
			timer := time.NewTimer(delay)
			select {
			case <-p.stopCtx.Done():
				timer.Stop()

				return
			case <-timer.C:
			}

			err := p.push(p.stopCtx, event)
			if !errors.Is(err, errRedeliver) {
				if err != nil {
					p.logger.Error("[LocalPubSub] Redelivery failed",
						slog.String("order_id", event.OrderID),
						slog.Any("error", err),
					)
				}

				return
			}

			p.logger.Warn("[LocalPubSub] Worker asked for redelivery",
				slog.String("order_id", event.OrderID),
				slog.Int("redelivery", i),
			)
			delay *= 2
		}
	}()
}

// Close stops pending redeliveries and waits for them to exit
func (p *localHTTPPublisher) Close() error {
	p.stop()
	p.wg.Wait()

	return nil
}

func eventAttributes(event *service.ShipmentRetryEvent) map[string]string {
	attributes := map[string]string{
		"order_id": event.OrderID,
		"attempt":  strconv.Itoa(event.Attempt),
	}
	if event.RequestID != "" {
		attributes["request_id"] = event.RequestID
	}

	return attributes
}
