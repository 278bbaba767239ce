package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestIPRateLimiter_Reserve(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	limiter := newIPRateLimiter(3, zerolog.Nop())
	limiter.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		assert.Zero(t, limiter.reserve("10.0.0.1"), "request %d", i+1)
	}
	assert.InDelta(t, float64(20*time.Second), float64(limiter.reserve("10.0.0.1")), float64(time.Millisecond))

	// Rejected requests do not consume tokens
	assert.InDelta(t, float64(20*time.Second), float64(limiter.reserve("10.0.0.1")), float64(time.Millisecond))

	// Other clients have their own bucket
	assert.Zero(t, limiter.reserve("10.0.0.2"))

	now = now.Add(21 * time.Second)
	assert.Zero(t, limiter.reserve("10.0.0.1"))
}

func TestIPRateLimiter_ForgetsIdleClients(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	limiter := newIPRateLimiter(1, zerolog.Nop())
	limiter.now = func() time.Time { return now }

	limiter.reserve("10.0.0.1")
	limiter.reserve("10.0.0.2")
	assert.Len(t, limiter.clients, 2)

	now = now.Add(limiterIdleTTL + time.Minute)
	limiter.reserve("10.0.0.3")
	assert.Len(t, limiter.clients, 1)
}

func TestIPRateLimiter_NonPositiveLimit(t *testing.T) {
	limiter := newIPRateLimiter(0, zerolog.Nop())
	assert.Equal(t, 1, limiter.burst)
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		remoteAddr string
		want       string
	}{
		{"192.0.2.1:1234", "192.0.2.1"},
		{"[2001:db8::1]:443", "2001:db8::1"},
		{"203.0.113.7", "203.0.113.7"},
	}

	for _, tt := range tests {
		t.Run(tt.remoteAddr, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			assert.Equal(t, tt.want, clientIP(req))
		})
	}
}
