package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

func newLimiter(t *testing.T, limit int, window time.Duration) (*RateLimiter, *miniredis.Miniredis, *time.Time) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	clock := t0
	l := NewRateLimiter(client, limit, window)
	l.now = func() time.Time { return clock }
	return l, mr, &clock
}

func TestRateLimiterSlidingWindow(t *testing.T) {
	l, mr, clock := newLimiter(t, 3, time.Minute)
	ctx := t.Context()

	for i := 0; i < 3; i++ {
		*clock = t0.Add(time.Duration(i) * 10 * time.Second)
		ok, remaining, err := l.Allow(ctx, "u1:/submit")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, 2-i, remaining)
	}

	*clock = t0.Add(30 * time.Second)
	ok, _, err := l.Allow(ctx, "u1:/submit")
	require.NoError(t, err)
	assert.False(t, ok)

	members, err := mr.ZMembers("ratelimit:u1:/submit")
	require.NoError(t, err)
	assert.Len(t, members, 3, "rejected requests are not counted")
	assert.Equal(t, time.Minute, mr.TTL("ratelimit:u1:/submit"))

	// the first request leaves the window
	*clock = t0.Add(61 * time.Second)
	ok, _, err = l.Allow(ctx, "u1:/submit")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, _, err = l.Allow(ctx, "u2:/submit")
	require.NoError(t, err)
	assert.True(t, ok, "keys are limited independently")
}

func TestRateLimiterMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	l, _, _ := newLimiter(t, 1, time.Minute)

	r := gin.New()
	r.POST("/attempts", RequireUser(), l.Middleware(), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})

	do := func(user string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/attempts", nil)
		if user != "" {
			req.Header.Set(UserIDHeader, user)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusUnauthorized, do("").Code)

	first := do("u1")
	assert.Equal(t, http.StatusCreated, first.Code)
	assert.Equal(t, "0", first.Header().Get("X-RateLimit-Remaining"))

	second := do("u1")
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Equal(t, "60", second.Header().Get("Retry-After"))

	assert.Equal(t, http.StatusCreated, do("u2").Code)
}

func TestRateLimiterFailsOpen(t *testing.T) {
	gin.SetMode(gin.TestMode)
	l, mr, _ := newLimiter(t, 1, time.Minute)
	mr.Close()

	r := gin.New()
	r.GET("/ping", l.Middleware(), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
