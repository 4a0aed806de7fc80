package middleware

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// RateLimiter throttles the unauthenticated auth endpoints per client IP.
type RateLimiter interface {
	Allow(ctx context.Context, key string) bool
}

// RateLimit rejects requests over the limit with 429.
func RateLimit(limiter RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow(c.Request.Context(), c.ClientIP()) {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// localLimiter keeps a token bucket per client IP in process. Good enough for
// a single instance; use the redis limiter when running more than one.
type localLimiter struct {
	mu      sync.Mutex
	buckets map[string]*rate.Limiter
	perMin  int
}

func NewLocalLimiter(perMin int) RateLimiter {
	return &localLimiter{
		buckets: make(map[string]*rate.Limiter),
		perMin:  perMin,
	}
}

func (l *localLimiter) Allow(_ context.Context, key string) bool {
	l.mu.Lock()
	limiter, ok := l.buckets[key]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(float64(l.perMin)/60.0), l.perMin)
		l.buckets[key] = limiter
	}
	l.mu.Unlock()
	return limiter.Allow()
}

// redisLimiter is a fixed one-minute window counter shared across instances.
// A nil client degrades to allow-all so tests and dev setups without redis
// keep working.
type redisLimiter struct {
	client *redis.Client
	perMin int
}

func NewRedisLimiter(client *redis.Client, perMin int) RateLimiter {
	return &redisLimiter{client: client, perMin: perMin}
}

func (l *redisLimiter) Allow(ctx context.Context, key string) bool {
	if l.client == nil {
		return true
	}
	redisKey := fmt.Sprintf("ratelimit:auth:%s:%d", key, time.Now().Unix()/60)

	count, err := l.client.Incr(ctx, redisKey).Result()
	if err != nil {
		// redis down must not take the API with it
		return true
	}
	if count == 1 {
		l.client.Expire(ctx, redisKey, time.Minute)
	}
	return count <= int64(l.perMin)
}
