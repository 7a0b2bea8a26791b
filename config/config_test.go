package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoad_FromYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "pagelift.yml", `
base_url: https://api.pagelift.dev
api_key: pl_test_key
timeout: 10s
max_retries: 2
`)

	s, err := Load(WithConfigFile(path))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.BaseURL != "https://api.pagelift.dev" {
		t.Errorf("unexpected base_url: %q", s.BaseURL)
	}
	if s.APIKey != "pl_test_key" {
		t.Errorf("unexpected api_key: %q", s.APIKey)
	}
	if s.Timeout != 10*time.Second {
		t.Errorf("unexpected timeout: %v", s.Timeout)
	}
	if s.MaxRetries != 2 {
		t.Errorf("unexpected max_retries: %d", s.MaxRetries)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "pagelift.yml", `
base_url: https://api.pagelift.dev
api_key: from_file
`)
	t.Setenv("PAGELIFT_API_KEY", "from_env")

	s, err := Load(WithConfigFile(path))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.APIKey != "from_env" {
		t.Errorf("environment should override the file, got %q", s.APIKey)
	}
}

func TestLoad_EnvFile(t *testing.T) {
	dir := t.TempDir()
	envPath := writeFile(t, dir, ".env", "PAGELIFT_BASE_URL=https://api.pagelift.dev\nPAGELIFT_BEARER_TOKEN=tok\n")
	defer func() {
		os.Unsetenv("PAGELIFT_BASE_URL")
		os.Unsetenv("PAGELIFT_BEARER_TOKEN")
	}()

	s, err := Load(WithEnvFile(envPath))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.BearerToken != "tok" {
		t.Errorf("unexpected bearer_token: %q", s.BearerToken)
	}
}

func TestLoad_InvalidSettings(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "pagelift.yml", `
base_url: https://api.pagelift.dev
api_key: a
bearer_token: b
`)
	if _, err := Load(WithConfigFile(path)); err == nil {
		t.Error("expected validation error for two credential sources")
	}
}

func TestSettings_Transport(t *testing.T) {
	s := Settings{BaseURL: "https://api.pagelift.dev", APIKey: "k", Timeout: 5 * time.Second}
	cfg := s.Transport()
	if cfg.BaseURL != s.BaseURL || cfg.APIKey != s.APIKey || cfg.Timeout != s.Timeout {
		t.Errorf("transport config does not mirror settings: %+v", cfg)
	}
}
