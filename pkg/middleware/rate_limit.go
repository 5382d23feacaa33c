package middleware

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/templatehub/backend/pkg/metrics"
	"golang.org/x/time/rate"
)

// limiterStore holds one token bucket per client key. Each middleware
// instance owns its store so route-specific limits never share buckets with
// the global limiter.
type limiterStore struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	max      int
	window   time.Duration
}

func newLimiterStore(max int, window time.Duration) *limiterStore {
	return &limiterStore{limiters: make(map[string]*rate.Limiter), max: max, window: window}
}

// get returns (and lazily creates) the token bucket for the given key. The
// bucket holds at most `max` tokens and refills over `window`, which bounds
// throughput to `max` requests per window from a full bucket.
func (s *limiterStore) get(key string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()
	lim, ok := s.limiters[key]
	if !ok {
		lim = rate.NewLimiter(rate.Limit(float64(s.max)/s.window.Seconds()), s.max)
		s.limiters[key] = lim
	}
	return lim
}

// clientKey picks the throttling key for a request: the authenticated subject
// when claims are present, otherwise the client IP.
func clientKey(c *gin.Context) string {
	if v, ok := c.Get("claims"); ok {
		if cm, ok2 := v.(map[string]interface{}); ok2 {
			if sub, ok3 := cm["sub"].(string); ok3 && sub != "" {
				return "sub:" + sub
			}
		}
	}
	ip := c.ClientIP()
	if ip == "" {
		ip = "unknown"
	}
	return "ip:" + ip
}

// retryAfterSeconds renders a Retry-After hint for the given window.
func retryAfterSeconds(window time.Duration) string {
	s := int(window.Seconds())
	if s < 1 {
		s = 1
	}
	return fmt.Sprintf("%d", s)
}

// RateLimitMiddleware returns a Gin middleware bounding each client key to
// `max` requests per `window` using an in-memory token bucket. Suitable for a
// single instance; multi-instance deployments should use the Redis variant.
func RateLimitMiddleware(max int, window time.Duration) gin.HandlerFunc {
	store := newLimiterStore(max, window)
	return func(c *gin.Context) {
		lim := store.get(clientKey(c))
		if !lim.Allow() {
			c.Header("Retry-After", retryAfterSeconds(window))
			metrics.RateLimitRejected.WithLabelValues("memory").Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Rate limit exceeded"})
			return
		}
		metrics.RateLimitAllowed.WithLabelValues("memory").Inc()
		c.Next()
	}
}
