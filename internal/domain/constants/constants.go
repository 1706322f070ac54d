package constants

// Deployment environments
const (
	EnvDevelop    = "develop"
	EnvStaging    = "staging"
	EnvProduction = "production"
)

// Pub/Sub providers
const (
	PubSubProviderLocal  = "local"
	PubSubProviderGoogle = "google"
)

// Currency is the only ISO code accepted at checkout.
const Currency = "INR"

// DefaultStockKey is the stockBySize key used by products without sizes.
const DefaultStockKey = "default"

// PlaceholderImage is returned for cart lines whose product has no images.
const PlaceholderImage = "https://via.placeholder.com/80"
