package service

import (
	"context"

	"github.com/shopspring/decimal"
)

// PaymentCaptured is the only gateway payment status accepted for confirmation.
const PaymentCaptured = "captured"

// PaymentIntent is the gateway-side order created before checkout.
type PaymentIntent struct {
	ID       string
	Amount   decimal.Decimal
	Currency string
	Receipt  string
}

// Payment is the gateway view of a single payment attempt.
type Payment struct {
	ID      string
	OrderID string
	Status  string
	Amount  decimal.Decimal
	Method  string
}

// IsCaptured reports whether the payment is captured.
func (p *Payment) IsCaptured() bool {
	return p.Status == PaymentCaptured
}

// PaymentGateway abstracts the payment provider.
type PaymentGateway interface {
	// CreateOrder registers a payment intent for the amount in major units.
	CreateOrder(ctx context.Context, amount decimal.Decimal, currency, receipt string) (*PaymentIntent, error)

	// VerifySignature checks the checkout signature over "orderRef|paymentRef".
	VerifySignature(orderRef, paymentRef, signature string) bool

	// FetchPayment reads the payment status from the provider.
	FetchPayment(ctx context.Context, paymentRef string) (*Payment, error)
}
