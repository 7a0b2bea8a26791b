package transport

import (
	"context"
	"testing"
	"time"
)

func TestConfig_ApplyDefaults(t *testing.T) {
	cfg := Config{BaseURL: "https://api.pagelift.dev"}
	cfg.ApplyDefaults()
	if cfg.Timeout != defaultTimeout {
		t.Errorf("expected default timeout, got %v", cfg.Timeout)
	}
	if cfg.MaxRetries != defaultMaxRetries {
		t.Errorf("expected default max retries, got %d", cfg.MaxRetries)
	}
	if cfg.HTTPClient == nil {
		t.Error("expected default HTTP client")
	}
	if cfg.Logger == nil {
		t.Error("expected nop logger")
	}
}

func TestConfig_ApplyDefaults_PreservesExplicit(t *testing.T) {
	cfg := Config{BaseURL: "https://api.pagelift.dev", Timeout: 5 * time.Second, MaxRetries: -1}
	cfg.ApplyDefaults()
	if cfg.Timeout != 5*time.Second {
		t.Errorf("explicit timeout overwritten: %v", cfg.Timeout)
	}
	if cfg.MaxRetries != -1 {
		t.Errorf("explicit retry disable overwritten: %d", cfg.MaxRetries)
	}
}

func TestConfig_Validate(t *testing.T) {
	cfg := Config{}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for missing base_url")
	}

	cfg = Config{BaseURL: "https://api.pagelift.dev", APIKey: "k", BearerToken: "t"}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for two credential sources")
	}

	cfg = Config{
		BaseURL: "https://api.pagelift.dev",
		APIKey:  "k",
		TokenProvider: func(ctx context.Context) (string, error) {
			return "t", nil
		},
	}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for api key plus token provider")
	}

	cfg = Config{BaseURL: "https://api.pagelift.dev", APIKey: "k"}
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	// No credential source is valid config; Do reports it per call.
	cfg = Config{BaseURL: "https://api.pagelift.dev"}
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
