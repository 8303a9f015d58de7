package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/recall-stream/pkg/client"
)

func TestLoad_defaults(t *testing.T) {
	for _, k := range []string{"RECALL_WS_URL", "RECALL_WS_ORIGIN", "DIAL_TIMEOUT_MS", "SEARCH_WAIT_MS", "SEARCH_RATE_PER_MIN", "METRICS_ADDR", "LOG_COMPRESS"} {
		t.Setenv(k, "")
	}

	cfg := Load()
	assert.Equal(t, client.DefaultURL, cfg.WSURL)
	assert.Equal(t, client.DefaultOrigin, cfg.WSOrigin)
	assert.Equal(t, 10*time.Second, cfg.DialTimeout)
	assert.Equal(t, 30*time.Second, cfg.SearchWait)
	assert.Equal(t, 10, cfg.SearchRatePerMin)
	assert.Equal(t, DefaultArtifactLimitValue, cfg.DefaultArtifactLimit)
	assert.Empty(t, cfg.MetricsAddr)
	assert.True(t, cfg.LogCompress)
}

func TestLoad_overrides(t *testing.T) {
	t.Setenv("RECALL_WS_URL", "ws://127.0.0.1:9000/")
	t.Setenv("SEARCH_WAIT_MS", "250")
	t.Setenv("MAX_QUERY_RESULTS", "7")
	t.Setenv("LOG_COMPRESS", "off")

	cfg := Load()
	assert.Equal(t, "ws://127.0.0.1:9000/", cfg.WSURL)
	assert.Equal(t, 250*time.Millisecond, cfg.SearchWait)
	assert.Equal(t, 7, cfg.MaxQueryResults)
	assert.False(t, cfg.LogCompress)
}

func TestLoad_ignoresMalformedNumbers(t *testing.T) {
	t.Setenv("DIAL_TIMEOUT_MS", "soon")
	t.Setenv("QUERY_CACHE_MAX_ITEMS", "many")

	cfg := Load()
	assert.Equal(t, 10*time.Second, cfg.DialTimeout)
	assert.Equal(t, 128, cfg.QueryCacheMaxItems)
}

func TestSearchLimiter(t *testing.T) {
	assert.Nil(t, (&Config{}).SearchLimiter())

	lim := (&Config{SearchRatePerMin: 6}).SearchLimiter()
	require.NotNil(t, lim)
	assert.True(t, lim.Allow())
	assert.False(t, lim.Allow())
	assert.Equal(t, 1, lim.Burst())
}

func TestClientOptions(t *testing.T) {
	cfg := &Config{WSURL: "ws://x/", WSOrigin: "http://o/", DialTimeout: time.Second}
	assert.Len(t, cfg.ClientOptions(), 3)
}
