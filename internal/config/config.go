// Package config provides configuration loading from environment variables.
package config

import (
	"os"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/usestring/recall-stream/pkg/client"
)

// Tool output limit defaults
const (
	DefaultArtifactLimitValue = 50
	MaxQueryResultsValue      = 1000
)

// Config holds all configuration for the recall-stream server and CLI.
type Config struct {
	WSURL       string        // RECALL_WS_URL, default client.DefaultURL
	WSOrigin    string        // RECALL_WS_ORIGIN, default client.DefaultOrigin
	DialTimeout time.Duration // DIAL_TIMEOUT_MS, default 10000ms (10s)
	SearchWait  time.Duration // SEARCH_WAIT_MS, default 30000ms (30s); 0 returns immediately

	SearchRatePerMin int // SEARCH_RATE_PER_MIN, default 10; 0 disables the limit

	QueryCacheMaxItems int // QUERY_CACHE_MAX_ITEMS, default 128

	// Tool output limits
	DefaultArtifactLimit int // DEFAULT_ARTIFACT_LIMIT
	MaxQueryResults      int // MAX_QUERY_RESULTS

	MetricsAddr string // METRICS_ADDR, default "" (disabled)

	// Logging configuration
	LogLevel      string // LOG_LEVEL, default "info"
	LogFormat     string // LOG_FORMAT, "text" or "json", default "text"
	LogFile       string // LOG_FILE, default "" (stderr only)
	LogMaxSizeMB  int    // LOG_MAX_SIZE_MB, default 10
	LogMaxBackups int    // LOG_MAX_BACKUPS, default 5
	LogMaxAgeDays int    // LOG_MAX_AGE_DAYS, default 28
	LogCompress   bool   // LOG_COMPRESS, default true
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		WSURL:       getEnvString("RECALL_WS_URL", client.DefaultURL),
		WSOrigin:    getEnvString("RECALL_WS_ORIGIN", client.DefaultOrigin),
		DialTimeout: getEnvDurationMs("DIAL_TIMEOUT_MS", 10000),
		SearchWait:  getEnvDurationMs("SEARCH_WAIT_MS", 30000),

		SearchRatePerMin: getEnvInt("SEARCH_RATE_PER_MIN", 10),

		QueryCacheMaxItems: getEnvInt("QUERY_CACHE_MAX_ITEMS", 128),

		DefaultArtifactLimit: getEnvInt("DEFAULT_ARTIFACT_LIMIT", DefaultArtifactLimitValue),
		MaxQueryResults:      getEnvInt("MAX_QUERY_RESULTS", MaxQueryResultsValue),

		MetricsAddr: getEnvString("METRICS_ADDR", ""),

		LogLevel:      getEnvString("LOG_LEVEL", "info"),
		LogFormat:     getEnvString("LOG_FORMAT", "text"),
		LogFile:       getEnvString("LOG_FILE", ""),
		LogMaxSizeMB:  getEnvInt("LOG_MAX_SIZE_MB", 10),
		LogMaxBackups: getEnvInt("LOG_MAX_BACKUPS", 5),
		LogMaxAgeDays: getEnvInt("LOG_MAX_AGE_DAYS", 28),
		LogCompress:   getEnvBool("LOG_COMPRESS", true),
	}
}

// ClientOptions returns the transport options implied by the configuration.
func (c *Config) ClientOptions() []client.Option {
	return []client.Option{
		client.WithURL(c.WSURL),
		client.WithOrigin(c.WSOrigin),
		client.WithDialTimeout(c.DialTimeout),
	}
}

// SearchLimiter returns a limiter allowing SearchRatePerMin submissions per
// minute with a burst of one, or nil when the limit is disabled.
func (c *Config) SearchLimiter() *rate.Limiter {
	if c.SearchRatePerMin <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(c.SearchRatePerMin)), 1)
}

func getEnvBool(key string, defaultVal bool) bool {
	if v := os.Getenv(key); v != "" {
		switch v {
		case "1", "true", "yes", "on":
			return true
		case "0", "false", "no", "off":
			return false
		}
	}
	return defaultVal
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvDurationMs(key string, defaultMs int) time.Duration {
	ms := getEnvInt(key, defaultMs)
	return time.Duration(ms) * time.Millisecond
}
