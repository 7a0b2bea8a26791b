package transport

import (
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

const (
	defaultTimeout    = 30 * time.Second
	defaultMaxRetries = 3
)

// Doer executes a single HTTP request. *http.Client satisfies it; tests
// and embedding applications may inject their own.
type Doer interface {
	Do(*http.Request) (*http.Response, error)
}

// Config configures the transport client. All fields are fixed at
// construction; the client holds no other shared state.
type Config struct {
	// BaseURL is the base URL prepended to all request paths.
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`

	// APIKey authenticates with the static-key scheme
	// (Authorization: ApiKey <token>).
	APIKey string `yaml:"api_key" mapstructure:"api_key"`

	// BearerToken authenticates with the bearer scheme
	// (Authorization: Bearer <token>).
	BearerToken string `yaml:"bearer_token" mapstructure:"bearer_token"`

	// TokenProvider supplies a bearer token per call. Use for short-lived
	// credentials that must be refreshed.
	TokenProvider TokenProvider `yaml:"-" mapstructure:"-"`

	// Timeout is the per-attempt deadline. Defaults to 30s.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// MaxRetries is the number of retries after the first attempt.
	// Zero means the default (3).
	MaxRetries int `yaml:"max_retries" mapstructure:"max_retries"`

	// DisableRetries turns retries off entirely, regardless of
	// MaxRetries. A negative MaxRetries has the same effect.
	DisableRetries bool `yaml:"disable_retries" mapstructure:"disable_retries"`

	// Headers are default headers applied to all requests. Per-request
	// headers override them.
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`

	// HTTPClient is the injected network primitive. Defaults to a plain
	// *http.Client; connection pooling is its concern, not ours.
	HTTPClient Doer `yaml:"-" mapstructure:"-"`

	// Logger receives debug-level retry and backoff events. Defaults to
	// a no-op logger.
	Logger *zerolog.Logger `yaml:"-" mapstructure:"-"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.MaxRetries == 0 {
		c.MaxRetries = defaultMaxRetries
	}
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{}
	}
	if c.Logger == nil {
		nop := zerolog.Nop()
		c.Logger = &nop
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("transport: base_url is required")
	}
	sources := 0
	if c.APIKey != "" {
		sources++
	}
	if c.BearerToken != "" {
		sources++
	}
	if c.TokenProvider != nil {
		sources++
	}
	if sources > 1 {
		return fmt.Errorf("transport: configure exactly one credential source (api_key, bearer_token, or token provider)")
	}
	return nil
}
