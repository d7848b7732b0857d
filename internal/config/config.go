package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/spacecadet3008/Kristo-mfalme/internal/sms"
)

const (
	DefaultListenAddr  = ":8080"
	DefaultCountryCode = "255"
)

type Config struct {
	ListenAddr  string `yaml:"listen_addr"`
	DatabaseURL string `yaml:"database_url"`
	// RedisURL is optional; empty disables the status cache.
	RedisURL string `yaml:"redis_url"`
	// APIKeyHash is the SHA-256 hex of the admin API key. Empty
	// disables authentication (development only).
	APIKeyHash string `yaml:"api_key_hash"`

	// SendSMS false swaps in the mock provider regardless of the
	// configured gateway.
	SendSMS bool `yaml:"send_sms"`

	CountryCode string `yaml:"country_code"`
	// PhoneFallback selects the rule for numbers with no recognizable
	// prefix: "prefix" (unconditional) or "mobile" (nine-digit
	// heuristic).
	PhoneFallback string `yaml:"phone_fallback"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	SMS sms.Settings `yaml:"sms"`
}

func DefaultConfig() *Config {
	return &Config{
		ListenAddr:    DefaultListenAddr,
		CountryCode:   DefaultCountryCode,
		PhoneFallback: "prefix",
		SendSMS:       true,
		LogLevel:      "info",
		LogFormat:     "text",
	}
}

func (c *Config) Validate() error {
	if c.ListenAddr == "" {
		return fmt.Errorf("listen_addr is required")
	}
	if c.DatabaseURL == "" {
		return fmt.Errorf("database_url is required")
	}
	switch c.PhoneFallback {
	case "", "prefix", "mobile":
	default:
		return fmt.Errorf("unknown phone_fallback %q", c.PhoneFallback)
	}
	return nil
}

func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	if addr := os.Getenv("PARISH_LISTEN_ADDR"); addr != "" {
		cfg.ListenAddr = addr
	}
	if dsn := os.Getenv("PARISH_DATABASE_URL"); dsn != "" {
		cfg.DatabaseURL = dsn
	}
	if redisURL := os.Getenv("PARISH_REDIS_URL"); redisURL != "" {
		cfg.RedisURL = redisURL
	}
	if hash := os.Getenv("PARISH_API_KEY_HASH"); hash != "" {
		cfg.APIKeyHash = hash
	}
	if provider := os.Getenv("PARISH_SMS_PROVIDER"); provider != "" {
		cfg.SMS.Provider = provider
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}
