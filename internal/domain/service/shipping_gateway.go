package service

import (
	"context"

	"storefront/internal/domain/entity"
)

// Shipment is the result of creating an order on the shipping gateway.
type Shipment struct {
	ShipmentOrderID string
	ShipmentID      string
	TrackingURL     string
}

// TrackingActivity is one scan event of a shipment.
type TrackingActivity struct {
	Date     string `json:"date"`
	Status   string `json:"status"`
	Activity string `json:"activity"`
	Location string `json:"location"`
}

// Tracking is the current shipment state.
type Tracking struct {
	Status            string             `json:"status"`
	Courier           string             `json:"courier,omitempty"`
	AWB               string             `json:"awb,omitempty"`
	EstimatedDelivery string             `json:"estimatedDelivery,omitempty"`
	TrackingURL       string             `json:"trackingUrl,omitempty"`
	Activities        []TrackingActivity `json:"activities"`
}

// ShippingGateway abstracts the shipping provider.
type ShippingGateway interface {
	// CreateShipment creates a shipment for a paid order.
	CreateShipment(ctx context.Context, order *entity.Order) (*Shipment, error)

	// TrackShipment returns the latest tracking state of a shipment order.
	TrackShipment(ctx context.Context, shipmentOrderID string) (*Tracking, error)
}
