package security

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
	"github.com/redis/go-redis/v9"
)

const window = time.Minute

// RateLimiter counts requests per client in fixed one minute windows kept in
// Redis. Redis errors let the request through.
type RateLimiter struct {
	redis  *redis.Client
	limit  int64
	logger *slog.Logger
}

func NewRateLimiter(redisClient *redis.Client, perMinute int, logger *slog.Logger) *RateLimiter {
	if perMinute <= 0 {
		perMinute = 120
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RateLimiter{redis: redisClient, limit: int64(perMinute), logger: logger}
}

// Allow records one request for key and reports whether it is within the
// limit. INCR and EXPIRE NX run in one MULTI so a fresh counter always gets
// its window.
func (r *RateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	var incr *redis.IntCmd
	_, err := r.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.ExpireNX(ctx, key, window)
		return nil
	})
	if err != nil {
		return true, fmt.Errorf("rate limit %s: %w", key, err)
	}
	return incr.Val() <= r.limit, nil
}

// Middleware rejects known crawler user agents and clients over the limit.
func (r *RateLimiter) Middleware(e *core.RequestEvent) error {
	if r.isSuspiciousUserAgent(e.Request.UserAgent()) {
		return apis.NewForbiddenError("Access denied", nil)
	}

	key := fmt.Sprintf("ratelimit:%s", clientIP(e.Request))
	allowed, err := r.Allow(e.Request.Context(), key)
	if err != nil {
		r.logger.Warn("Rate limiter unavailable, allowing request", "key", key, "error", err)
		return e.Next()
	}
	if !allowed {
		return apis.NewApiError(http.StatusTooManyRequests, "Too many requests", nil)
	}

	return e.Next()
}

// clientIP is the peer address of the connection; forwarded headers are not
// trusted.
func clientIP(req *http.Request) string {
	host, _, err := net.SplitHostPort(req.RemoteAddr)
	if err != nil {
		return req.RemoteAddr
	}
	return host
}

func (r *RateLimiter) isSuspiciousUserAgent(ua string) bool {
	suspicious := []string{"bot", "crawler", "spider", "scraper"}
	for _, pattern := range suspicious {
		if strings.Contains(strings.ToLower(ua), pattern) {
			return true
		}
	}
	return false
}
