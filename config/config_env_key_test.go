package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"postgres": map[string]any{
			"sslMode": "disable",
			"master": map[string]any{
				"userName": "user",
			},
		},
		"payment": map[string]any{
			"keySecret": "",
			"baseUrl":   "",
		},
		"order": map[string]any{
			"reservationTTL": "30m",
		},
		"secretKey": map[string]any{
			"access": "",
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "POSTGRES_SSLMODE", want: "postgres.sslMode"},
		{envKey: "POSTGRES_MASTER_USERNAME", want: "postgres.master.userName"},
		{envKey: "PAYMENT_KEYSECRET", want: "payment.keySecret"},
		{envKey: "PAYMENT_BASEURL", want: "payment.baseUrl"},
		{envKey: "ORDER_RESERVATIONTTL", want: "order.reservationTTL"},
		{envKey: "SECRETKEY_ACCESS", want: "secretKey.access"},
		{envKey: "NEW_FEATURE_FLAG", want: "new.feature.flag"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			if got := canonicalizeEnvKey(tt.envKey, existing); got != tt.want {
				t.Fatalf("canonicalizeEnvKey(%q) = %q, want %q", tt.envKey, got, tt.want)
			}
		})
	}
}

func TestApplyDefaults_FillsMissingSections(t *testing.T) {
	cfg := &Config{}

	applyDefaults(cfg)

	assert.Equal(t, 5, cfg.Auth.MaxLoginAttempts)
	assert.Equal(t, 15*time.Minute, cfg.Auth.LockoutDuration)
	assert.Equal(t, "INR", cfg.Payment.Currency)
	assert.Equal(t, 3, cfg.Payment.MaxAttempts)
	assert.Equal(t, time.Second, cfg.Payment.BaseDelay)
	assert.Equal(t, 24*time.Hour, cfg.Shipping.TokenTTL)
	assert.Equal(t, "Primary", cfg.Shipping.PickupLocation)
	assert.Equal(t, 30*time.Minute, cfg.Order.ReservationTTL)
	assert.Equal(t, 3, cfg.Order.StockRetryAttempts)
}

func TestApplyDefaults_KeepsConfiguredValues(t *testing.T) {
	cfg := &Config{
		Order:   &OrderConfig{ReservationTTL: time.Hour, StockRetryAttempts: 7},
		Payment: &PaymentConfig{MaxAttempts: 4, Currency: "INR"},
	}

	applyDefaults(cfg)

	assert.Equal(t, time.Hour, cfg.Order.ReservationTTL)
	assert.Equal(t, 7, cfg.Order.StockRetryAttempts)
	assert.Equal(t, 4, cfg.Payment.MaxAttempts)
}
