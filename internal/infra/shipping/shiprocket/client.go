// Package shiprocket implements the shipping gateway on the Shiprocket external API.
package shiprocket

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"storefront/config"
	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/service"
	"storefront/internal/infra/httpclient"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	defaultCountry = "India"
	paymentPrepaid = "Prepaid"
	parcelSideCM   = 10
	parcelWeightKG = 0.5

	// Reported until the courier posts its first scan.
	statusAwaitingPickup = "AWAITING PICKUP"
)

type client struct {
	baseURL        string
	email          string
	password       string
	pickupLocation string
	tokenTTL       time.Duration
	http           *httpclient.Client
	now            func() time.Time
	logger         *slog.Logger

	mu        sync.Mutex
	token     string
	expiresAt time.Time
}

// Params holds dependencies for the Shiprocket client, injected by Fx.
type Params struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

// New builds the shipping gateway. The login token is cached for TokenTTL.
func New(params Params) service.ShippingGateway {
	return newClient(params.Config.Shipping, &http.Client{}, params.Logger)
}

func newClient(cfg *config.ShippingConfig, httpClient *http.Client, logger *slog.Logger) *client {
	return &client{
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		email:          cfg.Email,
		password:       cfg.Password,
		pickupLocation: cfg.PickupLocation,
		tokenTTL:       cfg.TokenTTL,
		http: &httpclient.Client{
			HTTP: httpClient,
			Policy: httpclient.RetryPolicy{
				MaxAttempts:    cfg.MaxAttempts,
				Backoff:        httpclient.Constant(cfg.RetryDelay),
				AttemptTimeout: cfg.RequestTimeout,
			},
		},
		now:    time.Now,
		logger: logger,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

type orderItem struct {
	Name         string `json:"name"`
	SKU          string `json:"sku"`
	Units        int    `json:"units"`
	SellingPrice string `json:"selling_price"`
}

type createOrderRequest struct {
	OrderID             string      `json:"order_id"`
	OrderDate           string      `json:"order_date"`
	PickupLocation      string      `json:"pickup_location"`
	BillingCustomerName string      `json:"billing_customer_name"`
	BillingLastName     string      `json:"billing_last_name"`
	BillingAddress      string      `json:"billing_address"`
	BillingCity         string      `json:"billing_city"`
	BillingPincode      string      `json:"billing_pincode"`
	BillingState        string      `json:"billing_state"`
	BillingCountry      string      `json:"billing_country"`
	BillingEmail        string      `json:"billing_email,omitempty"`
	BillingPhone        string      `json:"billing_phone"`
	ShippingIsBilling   bool        `json:"shipping_is_billing"`
	OrderItems          []orderItem `json:"order_items"`
	PaymentMethod       string      `json:"payment_method"`
	SubTotal            string      `json:"sub_total"`
	Length              int         `json:"length"`
	Breadth             int         `json:"breadth"`
	Height              int         `json:"height"`
	Weight              float64     `json:"weight"`
}

type createOrderResponse struct {
	OrderID     json.Number `json:"order_id"`
	ShipmentID  json.Number `json:"shipment_id"`
	Status      string      `json:"status"`
	TrackingURL string      `json:"tracking_url"`
}

type trackingData struct {
	TrackURL      string `json:"track_url"`
	ShipmentTrack []struct {
		AWBCode       string `json:"awb_code"`
		CourierName   string `json:"courier_name"`
		CurrentStatus string `json:"current_status"`
		EDD           string `json:"edd"`
	} `json:"shipment_track"`
	Activities []struct {
		Date     string `json:"date"`
		Status   string `json:"status"`
		Activity string `json:"activity"`
		Location string `json:"location"`
	} `json:"shipment_track_activities"`
}

type trackingEnvelope struct {
	TrackingData *trackingData `json:"tracking_data"`
}

// CreateShipment creates an adhoc prepaid order for a confirmed order.
func (c *client) CreateShipment(ctx context.Context, order *entity.Order) (*service.Shipment, error) {
	var resp createOrderResponse
	if err := c.authorized(ctx, http.MethodPost, "/orders/create/adhoc", c.buildOrder(order), &resp); err != nil {
		return nil, c.unavailable(ctx, "create shipment", err)
	}
	if resp.OrderID.String() == "" {
		return nil, c.unavailable(ctx, "create shipment", errors.New("response carried no order id"))
	}

	c.log(ctx).Info("Shipment created",
		slog.String("orderID", order.ID.String()),
		slog.String("shipmentOrderID", resp.OrderID.String()),
	)

	return &service.Shipment{
		ShipmentOrderID: resp.OrderID.String(),
		ShipmentID:      resp.ShipmentID.String(),
		TrackingURL:     resp.TrackingURL,
	}, nil
}

// TrackShipment fetches the tracking state of a shipment order.
func (c *client) TrackShipment(ctx context.Context, shipmentOrderID string) (*service.Tracking, error) {
	var raw json.RawMessage
	path := "/orders/track?order_id=" + url.QueryEscape(shipmentOrderID)
	if err := c.authorized(ctx, http.MethodGet, path, nil, &raw); err != nil {
		return nil, c.unavailable(ctx, "track shipment", err)
	}

	data, err := decodeTracking(raw)
	if err != nil {
		return nil, c.unavailable(ctx, "track shipment", err)
	}
	if data == nil {
		return nil, domainerrors.ErrTrackingUnavailable
	}

	return toTracking(data), nil
}

func (c *client) buildOrder(order *entity.Order) createOrderRequest {
	details := order.ShippingDetails
	items := make([]orderItem, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, orderItem{
			Name:         item.Name,
			SKU:          "SKU_" + item.ProductID.String(),
			Units:        item.Quantity,
			SellingPrice: item.Price.StringFixed(2),
		})
	}

	return createOrderRequest{
		OrderID:             order.ID.String(),
		OrderDate:           c.now().UTC().Format(time.RFC3339),
		PickupLocation:      c.pickupLocation,
		BillingCustomerName: details.Name,
		BillingAddress:      details.Address,
		BillingCity:         details.City,
		BillingPincode:      details.Pincode,
		BillingState:        details.State,
		BillingCountry:      defaultCountry,
		BillingEmail:        details.Email,
		BillingPhone:        details.Phone,
		ShippingIsBilling:   true,
		OrderItems:          items,
		PaymentMethod:       paymentPrepaid,
		SubTotal:            order.TotalAmount.StringFixed(2),
		Length:              parcelSideCM,
		Breadth:             parcelSideCM,
		Height:              parcelSideCM,
		Weight:              parcelWeightKG,
	}
}

// authorized sends an authenticated request. A 401 drops the cached token and retries once.
func (c *client) authorized(ctx context.Context, method, path string, body, out any) error {
	for attempt := 0; ; attempt++ {
		token, err := c.accessToken(ctx)
		if err != nil {
			return err
		}

		header := http.Header{}
		header.Set("Authorization", "Bearer "+token)
		err = c.http.DoJSON(ctx, httpclient.Request{Method: method, URL: c.baseURL + path, Body: body, Header: header}, out)

		var statusErr *httpclient.StatusError
		if attempt == 0 && errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusUnauthorized {
			c.invalidate(token)

			continue
		}

		return err
	}
}

func (c *client) accessToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && c.now().Before(c.expiresAt) {
		return c.token, nil
	}

	var resp loginResponse
	req := httpclient.Request{
		Method: http.MethodPost,
		URL:    c.baseURL + "/auth/login",
		Body:   loginRequest{Email: c.email, Password: c.password},
	}
	if err := c.http.DoJSON(ctx, req, &resp); err != nil {
		return "", errors.Wrap(err, "shiprocket login failed")
	}
	if resp.Token == "" {
		return "", errors.New("shiprocket login returned no token")
	}

	c.token = resp.Token
	c.expiresAt = c.now().Add(c.tokenTTL)
	c.log(ctx).Debug("Shiprocket token refreshed", slog.Time("expiresAt", c.expiresAt))

	return c.token, nil
}

func (c *client) invalidate(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token == token {
		c.token = ""
	}
}

func (c *client) unavailable(ctx context.Context, op string, err error) error {
	c.log(ctx).Error("Shipping gateway call failed", slog.String("op", op), slog.Any("error", err))

	return errors.Wrap(domainerrors.ErrShippingGatewayUnavailable, op)
}

func (c *client) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, c.logger)
}

// decodeTracking accepts both the single object and the list form of the tracking response.
func decodeTracking(raw json.RawMessage) (*trackingData, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}

	if trimmed[0] == '[' {
		var list []trackingEnvelope
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil, errors.Wrap(err, "failed to decode tracking list")
		}
		for _, envelope := range list {
			if envelope.TrackingData != nil {
				return envelope.TrackingData, nil
			}
		}

		return nil, nil
	}

	var envelope trackingEnvelope
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return nil, errors.Wrap(err, "failed to decode tracking")
	}

	return envelope.TrackingData, nil
}

func toTracking(data *trackingData) *service.Tracking {
	tracking := &service.Tracking{
		Status:      statusAwaitingPickup,
		TrackingURL: data.TrackURL,
		Activities:  make([]service.TrackingActivity, 0, len(data.Activities)),
	}

	if len(data.ShipmentTrack) > 0 {
		current := data.ShipmentTrack[0]
		if current.CurrentStatus != "" {
			tracking.Status = current.CurrentStatus
		}
		tracking.Courier = current.CourierName
		tracking.AWB = current.AWBCode
		tracking.EstimatedDelivery = current.EDD
	}

	for _, activity := range data.Activities {
		tracking.Activities = append(tracking.Activities, service.TrackingActivity{
			Date:     activity.Date,
			Status:   activity.Status,
			Activity: activity.Activity,
			Location: activity.Location,
		})
	}

	return tracking
}
