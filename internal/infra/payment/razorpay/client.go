// Package razorpay implements the payment gateway on the Razorpay REST API.
package razorpay

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"storefront/config"
	deliverycontext "storefront/internal/delivery/context"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/service"
	"storefront/internal/infra/httpclient"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

// Amounts travel in the currency's minor unit.
var minorUnits = decimal.NewFromInt(100)

type client struct {
	baseURL   string
	keyID     string
	keySecret string
	http      *httpclient.Client
	logger    *slog.Logger
}

// Params holds dependencies for the Razorpay client, injected by Fx.
type Params struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

// New builds the payment gateway. Rate-limited calls back off exponentially from BaseDelay.
func New(params Params) service.PaymentGateway {
	cfg := params.Config.Payment

	return newClient(cfg, &http.Client{}, params.Logger)
}

func newClient(cfg *config.PaymentConfig, httpClient *http.Client, logger *slog.Logger) *client {
	return &client{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		keyID:     cfg.KeyID,
		keySecret: cfg.KeySecret,
		http: &httpclient.Client{
			HTTP: httpClient,
			Policy: httpclient.RetryPolicy{
				MaxAttempts:    cfg.MaxAttempts,
				Backoff:        httpclient.Exponential(cfg.BaseDelay),
				AttemptTimeout: cfg.RequestTimeout,
			},
		},
		logger: logger,
	}
}

type orderRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

type orderResponse struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

type paymentResponse struct {
	ID      string `json:"id"`
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
	Amount  int64  `json:"amount"`
	Method  string `json:"method"`
}

// CreateOrder registers a payment order. The amount is given in major units.
func (c *client) CreateOrder(ctx context.Context, amount decimal.Decimal, currency, receipt string) (*service.PaymentIntent, error) {
	req := orderRequest{
		Amount:   amount.Mul(minorUnits).Round(0).IntPart(),
		Currency: currency,
		Receipt:  receipt,
	}

	var resp orderResponse
	if err := c.http.DoJSON(ctx, c.request(http.MethodPost, "/orders", req), &resp); err != nil {
		return nil, c.unavailable(ctx, "create order", err)
	}

	c.log(ctx).Info("Created payment order",
		slog.String("paymentOrderID", resp.ID),
		slog.String("receipt", resp.Receipt),
		slog.Int64("amountMinor", resp.Amount),
	)

	return &service.PaymentIntent{
		ID:       resp.ID,
		Amount:   decimal.NewFromInt(resp.Amount).Div(minorUnits),
		Currency: resp.Currency,
		Receipt:  resp.Receipt,
	}, nil
}

// FetchPayment reads a payment by its gateway id.
func (c *client) FetchPayment(ctx context.Context, paymentRef string) (*service.Payment, error) {
	if paymentRef == "" {
		return nil, domainerrors.ErrValidationFailed.WithMessagef("Payment id is required")
	}

	var resp paymentResponse
	if err := c.http.DoJSON(ctx, c.request(http.MethodGet, "/payments/"+url.PathEscape(paymentRef), nil), &resp); err != nil {
		return nil, c.unavailable(ctx, "fetch payment", err)
	}

	return &service.Payment{
		ID:      resp.ID,
		OrderID: resp.OrderID,
		Status:  resp.Status,
		Amount:  decimal.NewFromInt(resp.Amount).Div(minorUnits),
		Method:  resp.Method,
	}, nil
}

// VerifySignature checks the hex HMAC-SHA256 of "orderRef|paymentRef" under the key secret.
func (c *client) VerifySignature(orderRef, paymentRef, signature string) bool {
	if c.keySecret == "" || signature == "" {
		return false
	}

	expected := Sign(c.keySecret, orderRef, paymentRef)

	return hmac.Equal([]byte(expected), []byte(strings.ToLower(signature)))
}

// Sign computes the checkout signature the gateway hands to the client.
func Sign(secret, orderRef, paymentRef string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderRef + "|" + paymentRef))

	return hex.EncodeToString(mac.Sum(nil))
}

func (c *client) request(method, path string, body any) httpclient.Request {
	header := http.Header{}
	header.Set("Authorization", "Basic "+basicAuth(c.keyID, c.keySecret))

	return httpclient.Request{Method: method, URL: c.baseURL + path, Body: body, Header: header}
}

func (c *client) unavailable(ctx context.Context, op string, err error) error {
	attrs := []any{slog.String("op", op), slog.Any("error", err)}
	var statusErr *httpclient.StatusError
	if errors.As(err, &statusErr) {
		attrs = append(attrs, slog.Int("status", statusErr.StatusCode))
	}
	c.log(ctx).Error("Payment gateway call failed", attrs...)

	return errors.Wrap(domainerrors.ErrPaymentGatewayUnavailable, op)
}

func (c *client) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, c.logger)
}

func basicAuth(user, password string) string {
	return base64.StdEncoding.EncodeToString([]byte(user + ":" + password))
}
