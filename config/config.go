package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
	"github.com/slighter12/go-lib/database/postgres"
)

const (
	defaultPath               = "."
	defaultMaxRequestBodySize = "100KB"
	defaultCurrency           = "INR"
)

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port               int      `json:"port" yaml:"port"`
		MaxRequestBodySize string   `json:"maxRequestBodySize" yaml:"maxRequestBodySize"`
		AllowOrigins       []string `json:"allowOrigins" yaml:"allowOrigins"` // empty allows any origin
		Timeouts           struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	Postgres *postgres.DBConn `json:"postgres" yaml:"postgres" mapstructure:"postgres"`

	SecretKey struct {
		Access  string `json:"access" yaml:"access"`
		Refresh string `json:"refresh" yaml:"refresh"`
	} `json:"secretKey" yaml:"secretKey"`

	Auth *AuthConfig `json:"auth" yaml:"auth"`

	// Payment configures the payment gateway client
	Payment *PaymentConfig `json:"payment" yaml:"payment"`

	// Shipping configures the shipping gateway client
	Shipping *ShippingConfig `json:"shipping" yaml:"shipping"`

	// Order configures stock reservation and sweeping
	Order *OrderConfig `json:"order" yaml:"order"`

	// PubSub configuration for shipment retry events
	PubSub *PubSubConfig `json:"pubsub" yaml:"pubsub"`

	// Worker configures the order worker process
	Worker *WorkerConfig `json:"worker" yaml:"worker"`
}

// AuthConfig defines authentication-related configuration
type AuthConfig struct {
	BcryptCost       int           `json:"bcryptCost" yaml:"bcryptCost"`
	MaxLoginAttempts int           `json:"maxLoginAttempts" yaml:"maxLoginAttempts"`
	LockoutDuration  time.Duration `json:"lockoutDuration" yaml:"lockoutDuration"`
	AccessTokenTTL   time.Duration `json:"accessTokenTTL" yaml:"accessTokenTTL"`
	RefreshTokenTTL  time.Duration `json:"refreshTokenTTL" yaml:"refreshTokenTTL"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// PaymentConfig defines the payment gateway (Razorpay) client configuration
type PaymentConfig struct {
	BaseURL   string `json:"baseUrl" yaml:"baseUrl"`
	KeyID     string `json:"keyId" yaml:"keyId"`
	KeySecret string `json:"keySecret" yaml:"keySecret"`
	Currency  string `json:"currency" yaml:"currency"`

	// Total attempts for a rate-limited call, including the first one
	MaxAttempts int `json:"maxAttempts" yaml:"maxAttempts"`

	// Backoff before retry n is BaseDelay * 2^n
	BaseDelay time.Duration `json:"baseDelay" yaml:"baseDelay"`

	// Hard timeout applied to every single attempt
	RequestTimeout time.Duration `json:"requestTimeout" yaml:"requestTimeout"`
}

// ShippingConfig defines the shipping gateway (Shiprocket) client configuration
type ShippingConfig struct {
	BaseURL        string        `json:"baseUrl" yaml:"baseUrl"`
	Email          string        `json:"email" yaml:"email"`
	Password       string        `json:"password" yaml:"password"`
	TokenTTL       time.Duration `json:"tokenTTL" yaml:"tokenTTL"`
	MaxAttempts    int           `json:"maxAttempts" yaml:"maxAttempts"`
	RetryDelay     time.Duration `json:"retryDelay" yaml:"retryDelay"`
	RequestTimeout time.Duration `json:"requestTimeout" yaml:"requestTimeout"`
	PickupLocation string        `json:"pickupLocation" yaml:"pickupLocation"`

	// Shipment retries delivered through Pub/Sub before giving up
	MaxShipmentAttempts int `json:"maxShipmentAttempts" yaml:"maxShipmentAttempts"`
}

// OrderConfig defines stock reservation behaviour for pending orders
type OrderConfig struct {
	// How long a pending order holds its reserved stock
	ReservationTTL time.Duration `json:"reservationTTL" yaml:"reservationTTL"`

	// Compare-and-swap attempts per product before reporting a stock conflict
	StockRetryAttempts int `json:"stockRetryAttempts" yaml:"stockRetryAttempts"`

	SweepInterval  time.Duration `json:"sweepInterval" yaml:"sweepInterval"`
	SweepBatchSize int           `json:"sweepBatchSize" yaml:"sweepBatchSize"`
}

// PubSubConfig defines Pub/Sub configuration for event publishing
type PubSubConfig struct {
	// Provider type: "local" for local HTTP or "google" for Google Pub/Sub
	Provider string `json:"provider" yaml:"provider"`

	// Google Cloud project ID (for google provider)
	ProjectID string `json:"projectId" yaml:"projectId"`

	// Pub/Sub topic ID (for google provider)
	TopicID string `json:"topicId" yaml:"topicId"`

	// Local HTTP endpoint for development (for local provider)
	LocalEndpoint string `json:"localEndpoint" yaml:"localEndpoint"`
}

// WorkerConfig defines the order worker process configuration
type WorkerConfig struct {
	Port int `json:"port" yaml:"port"`
}

// LoadWithEnv loads .yaml files through koanf.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	// Build list of paths to search for config file
	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			abs := filepath.Join(pwd, path)
			searchPaths = append(searchPaths, abs)
		}
	}

	var configFile string
	var found bool
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate
			found = true

			break
		}
	}

	if !found {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			// Example: PAYMENT_KEYSECRET -> payment.keySecret
			key := canonicalizeEnvKey(k, existingConfigMap)

			return key, v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

func New() (*Config, error) {
	// A missing .env file is fine, real environments inject variables directly.
	_ = godotenv.Load()

	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(cfg.HTTP.MaxRequestBodySize) == "" {
		cfg.HTTP.MaxRequestBodySize = defaultMaxRequestBodySize
	}

	applyDefaults(cfg)

	if cfg.Postgres != nil {
		cfg.Postgres.Replicas = buildReplicasFromEnv()
	}

	return cfg, nil
}

// applyDefaults fills optional sections so that consumers never see nil pointers.
func applyDefaults(cfg *Config) {
	if cfg.Auth == nil {
		cfg.Auth = &AuthConfig{}
	}
	if cfg.Auth.MaxLoginAttempts <= 0 {
		cfg.Auth.MaxLoginAttempts = 5
	}
	if cfg.Auth.LockoutDuration <= 0 {
		cfg.Auth.LockoutDuration = 15 * time.Minute
	}
	if cfg.Auth.AccessTokenTTL <= 0 {
		cfg.Auth.AccessTokenTTL = time.Hour
	}
	if cfg.Auth.RefreshTokenTTL <= 0 {
		cfg.Auth.RefreshTokenTTL = 30 * 24 * time.Hour
	}

	if cfg.Payment == nil {
		cfg.Payment = &PaymentConfig{}
	}
	if cfg.Payment.Currency == "" {
		cfg.Payment.Currency = defaultCurrency
	}
	if cfg.Payment.MaxAttempts <= 0 {
		cfg.Payment.MaxAttempts = 3
	}
	if cfg.Payment.BaseDelay <= 0 {
		cfg.Payment.BaseDelay = time.Second
	}
	if cfg.Payment.RequestTimeout <= 0 {
		cfg.Payment.RequestTimeout = 10 * time.Second
	}

	if cfg.Shipping == nil {
		cfg.Shipping = &ShippingConfig{}
	}
	if cfg.Shipping.TokenTTL <= 0 {
		cfg.Shipping.TokenTTL = 24 * time.Hour
	}
	if cfg.Shipping.MaxAttempts <= 0 {
		cfg.Shipping.MaxAttempts = 3
	}
	if cfg.Shipping.RetryDelay <= 0 {
		cfg.Shipping.RetryDelay = time.Second
	}
	if cfg.Shipping.RequestTimeout <= 0 {
		cfg.Shipping.RequestTimeout = 15 * time.Second
	}
	if cfg.Shipping.PickupLocation == "" {
		cfg.Shipping.PickupLocation = "Primary"
	}
	if cfg.Shipping.MaxShipmentAttempts <= 0 {
		cfg.Shipping.MaxShipmentAttempts = 5
	}

	if cfg.Order == nil {
		cfg.Order = &OrderConfig{}
	}
	if cfg.Order.ReservationTTL <= 0 {
		cfg.Order.ReservationTTL = 30 * time.Minute
	}
	if cfg.Order.StockRetryAttempts <= 0 {
		cfg.Order.StockRetryAttempts = 3
	}
	if cfg.Order.SweepInterval <= 0 {
		cfg.Order.SweepInterval = time.Minute
	}
	if cfg.Order.SweepBatchSize <= 0 {
		cfg.Order.SweepBatchSize = 50
	}

	if cfg.Worker == nil {
		cfg.Worker = &WorkerConfig{Port: 8081}
	}
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}

// buildReplicasFromEnv builds the replicas slice from environment variables.
// Environment variable format: POSTGRES_REPLICAS_{index}_{field}
func buildReplicasFromEnv() []postgres.ConnectionConfig {
	var replicas []postgres.ConnectionConfig

	for i := 0; ; i++ {
		prefix := "POSTGRES_REPLICAS_" + strconv.Itoa(i) + "_"

		host := os.Getenv(prefix + "HOST")
		port := os.Getenv(prefix + "PORT")
		if host == "" || port == "" {
			break
		}

		replicas = append(replicas, postgres.ConnectionConfig{
			Host:     host,
			Port:     port,
			UserName: os.Getenv(prefix + "USERNAME"),
			Password: os.Getenv(prefix + "PASSWORD"),
		})
	}

	return replicas
}
