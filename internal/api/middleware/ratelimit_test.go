package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestLocalLimiter(t *testing.T) {
	limiter := NewLocalLimiter(3)
	ctx := context.Background()

	t.Run("BurstThenReject", func(t *testing.T) {
		for i := 0; i < 3; i++ {
			assert.True(t, limiter.Allow(ctx, "1.2.3.4"), "request %d", i)
		}
		assert.False(t, limiter.Allow(ctx, "1.2.3.4"))
	})

	t.Run("PerKeyBuckets", func(t *testing.T) {
		// the exhausted bucket for 1.2.3.4 does not affect another client
		assert.True(t, limiter.Allow(ctx, "5.6.7.8"))
	})
}

func TestRedisLimiterNilClientAllows(t *testing.T) {
	limiter := NewRedisLimiter(nil, 1)
	for i := 0; i < 10; i++ {
		assert.True(t, limiter.Allow(context.Background(), "1.2.3.4"))
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/auth", RateLimit(NewLocalLimiter(2)), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req, _ := http.NewRequest("POST", "/auth", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}
