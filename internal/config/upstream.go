package config

import (
	"fmt"
	"time"
)

// UpstreamConfig controls how we talk to the wildtrails API.
type UpstreamConfig struct {
	BaseURL     string        `toml:"base_url"`
	HTTPTimeout time.Duration `toml:"http_timeout"`
	// Concurrency caps in-flight report fetches; 0 means one per region.
	Concurrency int `toml:"concurrency"`
	// RateLimit is requests per second across all fetches; 0 disables it.
	RateLimit float64 `toml:"rate_limit"`
}

func defaultUpstream() UpstreamConfig {
	return UpstreamConfig{
		BaseURL:     defaultBaseURL,
		HTTPTimeout: defaultHTTPTimeout,
	}
}

func (u *UpstreamConfig) applyEnv() {
	u.BaseURL = envOrDefault(envBaseURL, u.BaseURL)
	u.HTTPTimeout = durationEnvOrDefault(envHTTPTimeout, u.HTTPTimeout)
	u.Concurrency = intEnvOrDefault(envConcurrency, u.Concurrency)
	u.RateLimit = floatEnvOrDefault(envRateLimit, u.RateLimit)
}

func (u UpstreamConfig) validate() error {
	if u.HTTPTimeout <= 0 {
		return fmt.Errorf("config: upstream.http_timeout must be positive, got %s", u.HTTPTimeout)
	}
	if u.Concurrency < 0 {
		return fmt.Errorf("config: upstream.concurrency must not be negative, got %d", u.Concurrency)
	}
	if u.RateLimit < 0 {
		return fmt.Errorf("config: upstream.rate_limit must not be negative, got %v", u.RateLimit)
	}
	return nil
}
