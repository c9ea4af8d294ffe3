package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/JawherBalti/HiredIn-Back/internal/delivery/http/response"
	"github.com/JawherBalti/HiredIn-Back/internal/domain"
	"github.com/JawherBalti/HiredIn-Back/pkg/logger"
	"github.com/JawherBalti/HiredIn-Back/pkg/redis"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// RateLimitConfig holds configuration for rate limiting
type RateLimitConfig struct {
	// Requests per window
	Limit int
	// Time window duration
	Window time.Duration
	// Key extractor (default: client IP)
	KeyFunc func(*gin.Context) string
	// Key prefix for Redis
	KeyPrefix string
	// Reject requests when Redis errors instead of using the local limiter
	FailClosed bool
	// Client returns the Redis client, nil when unavailable (default: redis.Client)
	Client func() *goredis.Client
}

// Lua script for atomic increment with TTL on first set
// KEYS[1] = counter key
// ARGV[1] = TTL in seconds
// Returns: [current_count, ttl_remaining]
const rateLimitLuaScript = `
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('EXPIRE', KEYS[1], ARGV[1])
end
local ttl = redis.call('TTL', KEYS[1])
return {count, ttl}
`

// localLimiters is the in-process fallback, one token bucket per key
type localLimiters struct {
	mu       sync.Mutex
	limiters map[string]*localEntry
	limit    rate.Limit
	burst    int
}

type localEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newLocalLimiters(cfg RateLimitConfig) *localLimiters {
	return &localLimiters{
		limiters: make(map[string]*localEntry),
		limit:    rate.Limit(float64(cfg.Limit) / cfg.Window.Seconds()),
		burst:    cfg.Limit,
	}
}

func (l *localLimiters) allow(key string, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	// evict idle keys opportunistically
	if len(l.limiters) > 10000 {
		for k, e := range l.limiters {
			if now.Sub(e.lastSeen) > 10*time.Minute {
				delete(l.limiters, k)
			}
		}
	}

	e, ok := l.limiters[key]
	if !ok {
		e = &localEntry{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.limiters[key] = e
	}
	e.lastSeen = now
	return e.limiter.AllowN(now, 1)
}

// GlobalRateLimitConfig limits every request per client IP
func GlobalRateLimitConfig(limit int, window time.Duration) RateLimitConfig {
	return RateLimitConfig{
		Limit:     limit,
		Window:    window,
		KeyPrefix: "rl:ip:",
		KeyFunc: func(c *gin.Context) string {
			return c.ClientIP()
		},
	}
}

// ApplyRateLimitConfig limits job applications per authenticated user
func ApplyRateLimitConfig(limit int, window time.Duration) RateLimitConfig {
	return RateLimitConfig{
		Limit:     limit,
		Window:    window,
		KeyPrefix: "rl:apply:",
		KeyFunc: func(c *gin.Context) string {
			if actor, ok := CurrentActor(c); ok {
				return strconv.FormatInt(actor.UserID, 10)
			}
			return c.ClientIP()
		},
	}
}

// RateLimitMiddleware uses a fixed Redis window when Redis is available and
// a local token bucket otherwise. A non-positive Limit or Window disables it.
func RateLimitMiddleware(config RateLimitConfig) gin.HandlerFunc {
	if config.Limit <= 0 || config.Window <= 0 {
		logger.Log.Warn("Rate limiting disabled", "key_prefix", config.KeyPrefix, "limit", config.Limit, "window", config.Window.String())
		return func(c *gin.Context) { c.Next() }
	}
	if config.Client == nil {
		config.Client = redis.Client
	}
	local := newLocalLimiters(config)

	return func(c *gin.Context) {
		fullKey := config.KeyPrefix + config.KeyFunc(c)

		if client := config.Client(); client != nil {
			count, resetAt, err := checkRateLimitRedis(c.Request.Context(), client, fullKey, config)
			if err == nil {
				if !decide(c, config, count, resetAt) {
					return
				}
				c.Next()
				return
			}
			logger.Log.Warn("Rate limit store unavailable", "error", err, "key_prefix", config.KeyPrefix)
			if config.FailClosed {
				response.Error(c, http.StatusServiceUnavailable, "Service temporarily unavailable. Please try again.", nil)
				c.Abort()
				return
			}
		}

		if !local.allow(fullKey, time.Now()) {
			reject(c, config, time.Now().Add(config.Window/time.Duration(config.Limit)))
			return
		}
		c.Next()
	}
}

// decide sets the rate limit headers and aborts when count exceeds the limit
func decide(c *gin.Context, config RateLimitConfig, count int, resetAt time.Time) bool {
	if count > config.Limit {
		reject(c, config, resetAt)
		return false
	}
	remaining := config.Limit - count
	if remaining < 0 {
		remaining = 0
	}
	c.Header("X-RateLimit-Limit", strconv.Itoa(config.Limit))
	c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
	c.Header("X-RateLimit-Reset", resetAt.Format(time.RFC3339))
	return true
}

func reject(c *gin.Context, config RateLimitConfig, resetAt time.Time) {
	retryAfter := int(time.Until(resetAt).Seconds())
	if retryAfter < 1 {
		retryAfter = 1
	}
	c.Header("X-RateLimit-Limit", strconv.Itoa(config.Limit))
	c.Header("X-RateLimit-Remaining", "0")
	c.Header("X-RateLimit-Reset", resetAt.Format(time.RFC3339))
	c.Header("Retry-After", strconv.Itoa(retryAfter))

	logger.Log.Warn("Rate limit exceeded",
		"ip", c.ClientIP(),
		"path", c.FullPath(),
		"request_id", c.GetString(string(domain.KeyRequestID)),
	)
	response.Error(c, http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.", nil)
	c.Abort()
}

// checkRateLimitRedis checks rate limit using Redis with atomic Lua script
func checkRateLimitRedis(ctx context.Context, client *goredis.Client, key string, config RateLimitConfig) (int, time.Time, error) {
	ttlSeconds := int(config.Window.Seconds())

	result, err := client.Eval(ctx, rateLimitLuaScript, []string{key}, ttlSeconds).Result()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("redis rate limit eval failed: %w", err)
	}

	arr, ok := result.([]interface{})
	if !ok || len(arr) < 2 {
		return 0, time.Time{}, fmt.Errorf("unexpected redis result format")
	}

	count, _ := arr[0].(int64)
	ttl, _ := arr[1].(int64)

	return int(count), time.Now().Add(time.Duration(ttl) * time.Second), nil
}
