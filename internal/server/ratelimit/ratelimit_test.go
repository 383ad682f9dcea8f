package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(limit int, window time.Duration, burst int) *Config {
	return &Config{
		Enabled:       true,
		DefaultLimit:  limit,
		DefaultWindow: window,
		EndpointConfigs: []EndpointConfig{
			{Path: "/sessions/", Method: "POST", Limit: limit, Window: window, Burst: burst},
		},
	}
}

func TestLimiterAllow(t *testing.T) {
	t.Run("allows up to burst then rejects", func(t *testing.T) {
		limiter := NewLimiter(testConfig(10, time.Hour, 3))
		defer limiter.Stop()

		for i := 0; i < 3; i++ {
			allowed, _ := limiter.Allow("1.2.3.4", "/sessions/abc/generate", "POST")
			require.True(t, allowed, "request %d should be allowed", i)
		}

		allowed, info := limiter.Allow("1.2.3.4", "/sessions/abc/generate", "POST")
		assert.False(t, allowed)
		assert.Equal(t, 10, info.Limit)
		assert.Greater(t, info.RetryAfter, time.Duration(0))
	})

	t.Run("clients are limited independently", func(t *testing.T) {
		limiter := NewLimiter(testConfig(10, time.Hour, 1))
		defer limiter.Stop()

		allowed, _ := limiter.Allow("1.1.1.1", "/sessions/abc/generate", "POST")
		require.True(t, allowed)
		allowed, _ = limiter.Allow("1.1.1.1", "/sessions/abc/generate", "POST")
		require.False(t, allowed)

		allowed, _ = limiter.Allow("2.2.2.2", "/sessions/abc/generate", "POST")
		assert.True(t, allowed, "other client should not be affected")
	})

	t.Run("disabled limiter allows everything", func(t *testing.T) {
		limiter := NewLimiter(&Config{Enabled: false})
		defer limiter.Stop()

		for i := 0; i < 100; i++ {
			allowed, _ := limiter.Allow("1.2.3.4", "/sessions/abc/generate", "POST")
			require.True(t, allowed)
		}
	})

	t.Run("exempt clients bypass limits", func(t *testing.T) {
		cfg := testConfig(10, time.Hour, 1)
		cfg.Exempt = map[string]bool{"10.0.0.1": true}
		limiter := NewLimiter(cfg)
		defer limiter.Stop()

		for i := 0; i < 10; i++ {
			allowed, _ := limiter.Allow("10.0.0.1", "/sessions/abc/generate", "POST")
			require.True(t, allowed)
		}
	})

	t.Run("tokens refill over time", func(t *testing.T) {
		// 100 tokens/second so the refill is observable without a long sleep
		cfg := &Config{
			Enabled: true,
			EndpointConfigs: []EndpointConfig{
				{Path: "/sessions/", Method: "POST", Limit: 100, Window: time.Second, Burst: 1},
			},
		}
		limiter := NewLimiter(cfg)
		defer limiter.Stop()

		allowed, _ := limiter.Allow("1.2.3.4", "/sessions/abc/generate", "POST")
		require.True(t, allowed)
		allowed, _ = limiter.Allow("1.2.3.4", "/sessions/abc/generate", "POST")
		require.False(t, allowed)

		time.Sleep(50 * time.Millisecond)
		allowed, _ = limiter.Allow("1.2.3.4", "/sessions/abc/generate", "POST")
		assert.True(t, allowed, "bucket should refill after waiting")
	})
}

func TestMatchEndpoint(t *testing.T) {
	configs := DefaultEndpointConfigs()

	t.Run("health check is unlimited", func(t *testing.T) {
		cfg := MatchEndpoint("/health", "GET", configs)
		require.NotNil(t, cfg)
		assert.Equal(t, 0, cfg.Limit)
	})

	t.Run("prefix match for session routes", func(t *testing.T) {
		cfg := MatchEndpoint("/sessions/abc/intake", "POST", configs)
		require.NotNil(t, cfg)
		assert.Equal(t, 30, cfg.Limit)
	})

	t.Run("exact match for cv creation", func(t *testing.T) {
		cfg := MatchEndpoint("/cvs", "POST", configs)
		require.NotNil(t, cfg)
		assert.Equal(t, 100, cfg.Limit)
	})

	t.Run("unmatched route falls through", func(t *testing.T) {
		cfg := MatchEndpoint("/cvs", "GET", configs)
		assert.Nil(t, cfg)
	})
}
