package middleware

import (
	"net/http"
	"testing"
	"time"

	mr "github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func redisLimitedRouter(t *testing.T, max int, window time.Duration) (*gin.Engine, *mr.Miniredis) {
	t.Helper()
	m, err := mr.Run()
	require.NoError(t, err)
	t.Cleanup(m.Close)

	client := redis.NewClient(&redis.Options{Addr: m.Addr()})
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RedisRateLimitMiddleware(client, max, window))
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	return r, m
}

func TestRedisRateLimit_FixedWindow(t *testing.T) {
	r, _ := redisLimitedRouter(t, 2, time.Minute)

	require.Equal(t, http.StatusOK, get(r, "10.0.0.1:1234").Code)
	require.Equal(t, http.StatusOK, get(r, "10.0.0.1:1234").Code)

	w := get(r, "10.0.0.1:1234")
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	require.Equal(t, "60", w.Header().Get("Retry-After"))
}

func TestRedisRateLimit_SeparateClients(t *testing.T) {
	r, _ := redisLimitedRouter(t, 1, time.Minute)

	require.Equal(t, http.StatusOK, get(r, "10.0.0.1:1234").Code)
	require.Equal(t, http.StatusTooManyRequests, get(r, "10.0.0.1:1234").Code)
	require.Equal(t, http.StatusOK, get(r, "10.0.0.2:1234").Code)
}

func TestRedisRateLimit_CounterKeyExpires(t *testing.T) {
	r, m := redisLimitedRouter(t, 1, time.Minute)

	require.Equal(t, http.StatusOK, get(r, "10.0.0.3:1234").Code)

	// the per-window counter key carries a TTL so Redis cleans it up
	keys := m.Keys()
	require.NotEmpty(t, keys)
	m.FastForward(62 * time.Second)
	require.Empty(t, m.Keys())
}

func TestRedisRateLimit_NilClientFallsBack(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RedisRateLimitMiddleware(nil, 1, time.Minute))
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	require.Equal(t, http.StatusOK, get(r, "10.0.0.4:1234").Code)
	require.Equal(t, http.StatusTooManyRequests, get(r, "10.0.0.4:1234").Code)
}
