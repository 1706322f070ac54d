package service

import (
	"context"
)

// ShipmentRetryEvent asks the order worker to create the shipment of a paid order again.
type ShipmentRetryEvent struct {
	RequestID string `json:"request_id,omitempty"` // For distributed tracing
	OrderID   string `json:"order_id"`
	Attempt   int    `json:"attempt"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishShipmentRetry publishes a shipment retry event for async processing
	PublishShipmentRetry(ctx context.Context, event *ShipmentRetryEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
