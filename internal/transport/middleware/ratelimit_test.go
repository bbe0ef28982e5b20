package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func hit(h http.Handler, addr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/extract", nil)
	req.RemoteAddr = addr
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRateLimit_BurstThenReject(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(0)
	defer rl.Stop()
	h := rl.Limit(3)(okHandler)

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, hit(h, "192.0.2.1:1000").Code, "request %d", i)
	}

	rec := hit(h, "192.0.2.1:2000")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "20", rec.Header().Get("Retry-After"))
	assert.JSONEq(t, `{"error":"rate limit exceeded"}`, rec.Body.String())
}

func TestRateLimit_PerClient(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(0)
	defer rl.Stop()
	h := rl.Limit(1)(okHandler)

	assert.Equal(t, http.StatusOK, hit(h, "192.0.2.1:1").Code)
	assert.Equal(t, http.StatusTooManyRequests, hit(h, "192.0.2.1:2").Code)
	assert.Equal(t, http.StatusOK, hit(h, "192.0.2.2:1").Code)
}

func TestRateLimit_SeparateLimitsDoNotShareBuckets(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(0)
	defer rl.Stop()
	strict := rl.Limit(1)(okHandler)
	loose := rl.Limit(100)(okHandler)

	assert.Equal(t, http.StatusOK, hit(strict, "192.0.2.9:1").Code)
	assert.Equal(t, http.StatusTooManyRequests, hit(strict, "192.0.2.9:1").Code)
	assert.Equal(t, http.StatusOK, hit(loose, "192.0.2.9:1").Code)
}

func TestRateLimit_DisabledWhenNonPositive(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(0)
	defer rl.Stop()
	h := rl.Limit(0)(okHandler)

	for i := 0; i < 10; i++ {
		assert.Equal(t, http.StatusOK, hit(h, "192.0.2.1:1").Code)
	}
	assert.Zero(t, rl.size())
}

func TestRateLimit_EvictIdle(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(0)
	defer rl.Stop()
	hit(rl.Limit(5)(okHandler), "192.0.2.1:1")
	assert.Equal(t, 1, rl.size())

	rl.evictIdle(time.Now())
	assert.Equal(t, 1, rl.size())

	rl.evictIdle(time.Now().Add(idleTTL + time.Second))
	assert.Zero(t, rl.size())
}

func TestRateLimit_StopTwice(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(time.Millisecond)
	rl.Stop()
	rl.Stop()
}

func TestClientIP(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "[2001:db8::1]:443"
	assert.Equal(t, "2001:db8::1", clientIP(req))

	req.RemoteAddr = "no-port"
	assert.Equal(t, "no-port", clientIP(req))
}
