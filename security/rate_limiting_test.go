package security

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/router"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEvent(userAgent string) *core.RequestEvent {
	req := httptest.NewRequest(http.MethodGet, "/api/games", nil)
	req.RemoteAddr = "203.0.113.7:52100"
	req.Header.Set("User-Agent", userAgent)

	e := &core.RequestEvent{}
	e.Request = req
	e.Response = httptest.NewRecorder()
	return e
}

func expectHit(mock redismock.ClientMock, key string, count int64) {
	mock.ExpectTxPipeline()
	mock.ExpectIncr(key).SetVal(count)
	mock.ExpectExpireNX(key, window).SetVal(count == 1)
	mock.ExpectTxPipelineExec()
}

func TestRateLimiter_AllowSetsWindowInSameTransaction(t *testing.T) {
	db, mock := redismock.NewClientMock()
	limiter := NewRateLimiter(db, 2, nil)

	expectHit(mock, "ratelimit:test", 1)

	allowed, err := limiter.Allow(context.Background(), "ratelimit:test")

	require.NoError(t, err)
	assert.True(t, allowed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRateLimiter_AllowOverLimit(t *testing.T) {
	db, mock := redismock.NewClientMock()
	limiter := NewRateLimiter(db, 2, nil)

	expectHit(mock, "ratelimit:test", 2)
	expectHit(mock, "ratelimit:test", 3)

	allowed, err := limiter.Allow(context.Background(), "ratelimit:test")
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = limiter.Allow(context.Background(), "ratelimit:test")
	require.NoError(t, err)
	assert.False(t, allowed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRateLimiter_AllowFailsOpen(t *testing.T) {
	db, mock := redismock.NewClientMock()
	limiter := NewRateLimiter(db, 2, nil)

	mock.ExpectTxPipeline()
	mock.ExpectIncr("ratelimit:test").SetErr(errors.New("connection refused"))

	allowed, err := limiter.Allow(context.Background(), "ratelimit:test")

	assert.Error(t, err)
	assert.True(t, allowed)
}

func TestRateLimiter_MiddlewarePassesThrough(t *testing.T) {
	db, mock := redismock.NewClientMock()
	limiter := NewRateLimiter(db, 10, nil)

	expectHit(mock, "ratelimit:203.0.113.7", 4)

	err := limiter.Middleware(newEvent("Mozilla/5.0"))

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRateLimiter_MiddlewareRejectsOverLimit(t *testing.T) {
	db, mock := redismock.NewClientMock()
	limiter := NewRateLimiter(db, 10, nil)

	expectHit(mock, "ratelimit:203.0.113.7", 11)

	err := limiter.Middleware(newEvent("Mozilla/5.0"))

	var apiErr *router.ApiError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusTooManyRequests, apiErr.Status)
}

func TestRateLimiter_MiddlewareBlocksCrawlers(t *testing.T) {
	db, mock := redismock.NewClientMock()
	limiter := NewRateLimiter(db, 10, nil)

	err := limiter.Middleware(newEvent("Googlebot/2.1"))

	var apiErr *router.ApiError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRateLimiter_MiddlewareIgnoresRedisErrors(t *testing.T) {
	db, mock := redismock.NewClientMock()
	limiter := NewRateLimiter(db, 10, nil)

	mock.ExpectTxPipeline()
	mock.ExpectIncr("ratelimit:203.0.113.7").SetErr(errors.New("timeout"))

	assert.NoError(t, limiter.Middleware(newEvent("Mozilla/5.0")))
}

func TestIsSuspiciousUserAgent(t *testing.T) {
	limiter := &RateLimiter{}

	tests := []struct {
		ua       string
		expected bool
	}{
		{"Mozilla/5.0 (Macintosh)", false},
		{"Googlebot/2.1", true},
		{"Some-Crawler", true},
		{"python-scraper", true},
		{"", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, limiter.isSuspiciousUserAgent(tt.ua), tt.ua)
	}
}
