package core

import (
	"fmt"
	"strings"
	"time"
)

type RetryConfig struct {
	MaxRetries          int `koanf:"max_retries" mapstructure:"max_retries"`
	BaseBackoffMS       int `koanf:"base_backoff_ms" mapstructure:"base_backoff_ms"`
	PerAttemptTimeoutMS int `koanf:"per_attempt_timeout_ms" mapstructure:"per_attempt_timeout_ms"`
}

func (c RetryConfig) BaseBackoff() time.Duration {
	return time.Duration(c.BaseBackoffMS) * time.Millisecond
}

func (c RetryConfig) PerAttemptTimeout() time.Duration {
	return time.Duration(c.PerAttemptTimeoutMS) * time.Millisecond
}

type CatalogConfig struct {
	CacheSize   int `koanf:"cache_size" mapstructure:"cache_size"`
	CacheTTLSec int `koanf:"cache_ttl_sec" mapstructure:"cache_ttl_sec"`
}

type Config struct {
	BaseURL string `koanf:"base_url" mapstructure:"base_url"`

	// TokenHeader is the custom header name carrying the raw credential.
	// The upstream API does not use a bearer scheme.
	TokenHeader string `koanf:"token_header" mapstructure:"token_header"`

	// CredentialTTLHours bounds how long a stored credential is honored
	// before it is treated as absent.
	CredentialTTLHours int `koanf:"credential_ttl_hours" mapstructure:"credential_ttl_hours"`

	Retry   RetryConfig   `koanf:"retry" mapstructure:"retry"`
	Catalog CatalogConfig `koanf:"catalog" mapstructure:"catalog"`
}

func DefaultConfig() Config {
	return Config{
		TokenHeader:        "token",
		CredentialTTLHours: 24 * 7,
		Retry: RetryConfig{
			MaxRetries:          3,
			BaseBackoffMS:       500,
			PerAttemptTimeoutMS: 10_000,
		},
		Catalog: CatalogConfig{
			CacheSize:   128,
			CacheTTLSec: 60,
		},
	}
}

func (c Config) CredentialTTL() time.Duration {
	return time.Duration(c.CredentialTTLHours) * time.Hour
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.BaseURL) == "" {
		return fmt.Errorf("core: base_url is required")
	}
	if strings.TrimSpace(c.TokenHeader) == "" {
		return fmt.Errorf("core: token_header is required")
	}
	if c.CredentialTTLHours <= 0 {
		return fmt.Errorf("core: credential_ttl_hours must be positive")
	}
	if c.Retry.MaxRetries < 0 {
		return fmt.Errorf("core: retry.max_retries must not be negative")
	}
	if c.Retry.BaseBackoffMS <= 0 {
		return fmt.Errorf("core: retry.base_backoff_ms must be positive")
	}
	if c.Retry.PerAttemptTimeoutMS <= 0 {
		return fmt.Errorf("core: retry.per_attempt_timeout_ms must be positive")
	}
	if c.Catalog.CacheSize <= 0 {
		return fmt.Errorf("core: catalog.cache_size must be positive")
	}
	if c.Catalog.CacheTTLSec <= 0 {
		return fmt.Errorf("core: catalog.cache_ttl_sec must be positive")
	}
	return nil
}
