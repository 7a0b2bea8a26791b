// Package config loads client settings for embedding applications from
// a YAML file, a .env file, and PAGELIFT_* environment variables, in
// that order of increasing precedence.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/pagelift/pagelift-go/transport"
)

// envPrefix namespaces the environment variables this package reads.
const envPrefix = "PAGELIFT"

// settingsKeys are the recognized configuration keys.
var settingsKeys = []string{"base_url", "api_key", "bearer_token", "timeout", "max_retries"}

// Settings are the client settings an embedding application supplies.
type Settings struct {
	BaseURL     string        `yaml:"base_url" mapstructure:"base_url"`
	APIKey      string        `yaml:"api_key" mapstructure:"api_key"`
	BearerToken string        `yaml:"bearer_token" mapstructure:"bearer_token"`
	Timeout     time.Duration `yaml:"timeout" mapstructure:"timeout"`
	MaxRetries  int           `yaml:"max_retries" mapstructure:"max_retries"`
}

// Transport converts the settings into a transport configuration.
func (s *Settings) Transport() transport.Config {
	return transport.Config{
		BaseURL:     s.BaseURL,
		APIKey:      s.APIKey,
		BearerToken: s.BearerToken,
		Timeout:     s.Timeout,
		MaxRetries:  s.MaxRetries,
	}
}

// Validate checks that the settings can build a working client.
func (s *Settings) Validate() error {
	cfg := s.Transport()
	return cfg.Validate()
}

// LoadOption customizes Load.
type LoadOption func(*loadConfig)

type loadConfig struct {
	configFile string
	envFile    string
}

// WithConfigFile sets an explicit YAML config file path.
func WithConfigFile(path string) LoadOption {
	return func(lc *loadConfig) { lc.configFile = path }
}

// WithEnvFile sets an explicit .env file path.
func WithEnvFile(path string) LoadOption {
	return func(lc *loadConfig) { lc.envFile = path }
}

// Load reads settings from the config file (when present), the .env
// file (when present), and PAGELIFT_* environment variables. Without
// explicit paths it looks for ./pagelift.yml and ./.env.
func Load(opts ...LoadOption) (*Settings, error) {
	var lc loadConfig
	for _, opt := range opts {
		opt(&lc)
	}
	if lc.configFile == "" && exists("pagelift.yml") {
		lc.configFile = "pagelift.yml"
	}
	if lc.envFile == "" && exists(".env") {
		lc.envFile = ".env"
	}

	if lc.envFile != "" {
		if err := godotenv.Load(lc.envFile); err != nil {
			return nil, fmt.Errorf("config: load env file %s: %w", lc.envFile, err)
		}
	}

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range settingsKeys {
		// Explicit binds so AutomaticEnv keys survive Unmarshal.
		_ = v.BindEnv(key)
	}

	if lc.configFile != "" {
		v.SetConfigFile(lc.configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", lc.configFile, err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("config: unmarshal settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
