package config

import "time"

// CacheConfig defines settings for the response cache middleware.
// When Enabled is false or no Redis client is available, caching is
// disabled. TTL is the lifetime of a cache entry; Prefix namespaces
// keys so several deployments can share one Redis; MaxBodyBytes caps
// the size of a cached response body.
type CacheConfig struct {
	Enabled      bool
	TTL          time.Duration
	Prefix       string
	MaxBodyBytes int
}

// defaultCacheMaxBodyBytes caps cached response bodies at 1 MiB.
const defaultCacheMaxBodyBytes = 1 << 20

// LoadCacheConfig reads environment variables to build a CacheConfig.
// Defaults are used when variables are not set or unparseable. Only
// GET responses are ever cached, so there is no method list to
// configure.
func LoadCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled:      getenv("CACHE_ENABLED", "true") == "true",
		TTL:          parseDur(getenv("CACHE_TTL", "30s")),
		Prefix:       getenv("CACHE_PREFIX", "octofit:cache"),
		MaxBodyBytes: envInt("CACHE_MAX_BODY_BYTES", defaultCacheMaxBodyBytes),
	}
}

func parseDur(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return time.Second
	}
	return d
}
