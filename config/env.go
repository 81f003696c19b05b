package config

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"
)

// CommerceConfig holds the connection settings for the upstream commerce
// platform's REST API. All values come from the environment.
type CommerceConfig struct {
	BaseURL  string // e.g. https://commerce.example.com
	APIToken string // Bearer token for /admin endpoints
	PageSize int    // batch size for paginated fetches
	FetchCap int    // hard upper bound on records fetched per resource
}

// LoadCommerceConfig reads commerce API settings from the environment.
// The fetch cap is explicit and configurable so truncation of large stores
// is a deliberate, visible choice rather than a silent one.
func LoadCommerceConfig() CommerceConfig {
	baseURL := os.Getenv("COMMERCE_API_URL")
	if baseURL == "" {
		baseURL = "http://localhost:9000"
		log.Println("⚠️  COMMERCE_API_URL not set, using local default:", baseURL)
	}

	apiToken := os.Getenv("COMMERCE_API_TOKEN")
	if apiToken == "" {
		log.Println("⚠️  COMMERCE_API_TOKEN not set, admin API requests will be unauthenticated")
	}

	return CommerceConfig{
		BaseURL:  baseURL,
		APIToken: apiToken,
		PageSize: getEnvInt("COMMERCE_PAGE_SIZE", 100),
		FetchCap: getEnvInt("ANALYTICS_FETCH_CAP", 500),
	}
}

// WithTimeout returns a context with a 10s timeout for single upstream calls
func WithTimeout() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}

// WithAnalyticsTimeout covers a full multi-page analytics fetch (3 resources,
// up to FetchCap records each)
func WithAnalyticsTimeout() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 45*time.Second)
}

func WithCustomTimeout(duration time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), duration)
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		log.Printf("⚠️  invalid %s=%q, using default %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}
