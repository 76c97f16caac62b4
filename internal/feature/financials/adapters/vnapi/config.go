// Package vnapi is the client of the Vietnamese financial data provider.
package vnapi

import (
	"time"

	"github.com/vutruonggiang2468/NewTogogo-sub000/internal/platform/config"
	infrahttp "github.com/vutruonggiang2468/NewTogogo-sub000/internal/platform/http"
)

// DefaultMaxBodyBytes caps a response body when Config.MaxBodyBytes is unset.
const DefaultMaxBodyBytes int64 = 32 << 20

// Config holds configuration for the data provider client.
type Config struct {
	BaseURL      string        // e.g. "https://api.vietstock.example/v1"
	APIKey       string        // sent as X-API-Key when set
	Timeout      time.Duration // HTTP request timeout
	MaxBodyBytes int64         // larger bodies fail with ErrBodyTooLarge

	HTTP    infrahttp.ClientConfig
	Retry   RetryConfig
	Breaker BreakerConfig
}

// LoadConfig loads the client configuration from environment variables.
func LoadConfig() Config {
	timeout := config.GetDuration("VNAPI_TIMEOUT", 10*time.Second)
	return Config{
		BaseURL:      config.GetString("VNAPI_BASE_URL", ""),
		APIKey:       config.GetString("VNAPI_API_KEY", ""),
		Timeout:      timeout,
		MaxBodyBytes: int64(config.GetInt("VNAPI_MAX_BODY_BYTES", int(DefaultMaxBodyBytes))),
		HTTP: infrahttp.ClientConfig{
			Timeout:             timeout,
			DialTimeout:         config.GetDuration("VNAPI_DIAL_TIMEOUT", infrahttp.DefaultClientConfig.DialTimeout),
			MaxIdleConns:        config.GetInt("VNAPI_MAX_IDLE_CONNS", infrahttp.DefaultClientConfig.MaxIdleConns),
			MaxIdleConnsPerHost: config.GetInt("VNAPI_MAX_IDLE_CONNS_PER_HOST", infrahttp.DefaultClientConfig.MaxIdleConnsPerHost),
		},
		Retry: RetryConfig{
			MaxRetries:     config.GetInt("VNAPI_MAX_RETRIES", DefaultRetryConfig.MaxRetries),
			InitialBackoff: DefaultRetryConfig.InitialBackoff,
			MaxBackoff:     DefaultRetryConfig.MaxBackoff,
		},
		Breaker: DefaultBreakerConfig,
	}
}
