package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"github.com/debateclub/debate-club-api/internal/config"
)

// RateLimit returns a token-bucket middleware keyed by client IP. With a
// Redis client the bucket state is shared across instances; without one
// (or when Redis errors) requests fall through to an in-process
// golang.org/x/time limiter with the same capacity and refill rate, so a
// Redis outage never takes the limiter down with it.
func RateLimit(cfg config.RateLimitConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error { return next(c) }
		}
	}

	local := newLocalLimiters(cfg)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()
			if ip == "" {
				ip = "unknown"
			}

			allowed, remaining, ok := redisAllow(c, cfg, rdb, ip)
			if !ok {
				// Redis missing or failing; degrade to the local limiter.
				allowed = local.allow(ip)
				remaining = -1
			}

			if remaining >= 0 {
				c.Response().Header().Set("X-RateLimit-Limit", strconv.Itoa(cfg.Capacity))
				c.Response().Header().Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))
			}
			if !allowed {
				return c.JSON(http.StatusTooManyRequests, echo.Map{
					"error":   "too_many_requests",
					"message": "rate limit exceeded",
				})
			}
			return next(c)
		}
	}
}

// redisAllow consumes one token from the shared bucket. The third return
// is false when Redis is unavailable and the caller must fall back.
func redisAllow(c echo.Context, cfg config.RateLimitConfig, rdb *redis.Client, ip string) (allowed bool, remaining int64, ok bool) {
	if rdb == nil {
		return false, 0, false
	}
	key := fmt.Sprintf("%s:ip:%s", cfg.Prefix, ip)
	ctx := c.Request().Context()

	pipe := rdb.TxPipeline()
	incr := pipe.Incr(ctx, key)
	// Start the window on the first hit only. Refreshing the TTL on every
	// request would slide the window under a steady client and keep it
	// locked out until a full TTL of silence.
	pipe.ExpireNX(ctx, key, cfg.TTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, false
	}

	// Fixed window: the counter resets when the key expires; within a
	// window the bucket holds Capacity requests.
	count := incr.Val()
	window := int64(cfg.Capacity)
	if count > window {
		return false, 0, true
	}
	return true, window - count, true
}

// localLimiters keeps one x/time bucket per client IP.
type localLimiters struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
}

func newLocalLimiters(cfg config.RateLimitConfig) *localLimiters {
	refill := rate.Every(cfg.RefillInterval / time.Duration(cfg.RefillTokens))
	return &localLimiters{
		limiters: make(map[string]*rate.Limiter),
		limit:    refill,
		burst:    cfg.Capacity,
	}
}

func (l *localLimiters) allow(ip string) bool {
	l.mu.Lock()
	lim, found := l.limiters[ip]
	if !found {
		lim = rate.NewLimiter(l.limit, l.burst)
		l.limiters[ip] = lim
	}
	l.mu.Unlock()
	return lim.Allow()
}
