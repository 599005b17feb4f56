package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadCacheConfigDefaults(t *testing.T) {
	t.Setenv("CACHE_ENABLED", "")
	t.Setenv("CACHE_TTL", "")
	t.Setenv("CACHE_PREFIX", "")
	t.Setenv("CACHE_MAX_BODY_BYTES", "")

	cfg := LoadCacheConfig()
	assert.True(t, cfg.Enabled)
	assert.Equal(t, 30*time.Second, cfg.TTL)
	assert.Equal(t, "octofit:cache", cfg.Prefix)
	assert.Equal(t, defaultCacheMaxBodyBytes, cfg.MaxBodyBytes)
}

func TestLoadCacheConfigMalformedMaxBodyFallsBack(t *testing.T) {
	// A garbage value must not collapse to 0, which would disable the
	// body size cap entirely.
	t.Setenv("CACHE_MAX_BODY_BYTES", "lots")

	cfg := LoadCacheConfig()
	assert.Equal(t, defaultCacheMaxBodyBytes, cfg.MaxBodyBytes)
}

func TestLoadRateLimitConfigClampsTTL(t *testing.T) {
	t.Setenv("RATE_LIMIT_REFILL_INTERVAL", "2s")
	t.Setenv("RATE_LIMIT_TTL", "1s")

	cfg := LoadRateLimitConfig()
	assert.Equal(t, 10*time.Second, cfg.TTL, "TTL must cover several refill intervals")
}
