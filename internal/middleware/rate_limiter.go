package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lshigami/studyloop/internal/dto"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// RateLimiter is a sliding-window limiter backed by one Redis sorted set per key.
// Members are request ids scored by their arrival time in milliseconds.
type RateLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
	now    func() time.Time
}

func NewRateLimiter(client *redis.Client, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		client: client,
		limit:  limit,
		window: window,
		now:    time.Now,
	}
}

// Allow records one request for key and reports whether it fits in the window.
// Rejected requests are removed again so they do not extend the block.
func (l *RateLimiter) Allow(ctx context.Context, key string) (bool, int, error) {
	now := l.now()
	nowMs := now.UnixMilli()
	windowStart := nowMs - l.window.Milliseconds()
	member := fmt.Sprintf("%d-%s", nowMs, uuid.NewString())
	redisKey := "ratelimit:" + key

	var count *redis.IntCmd
	_, err := l.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.ZRemRangeByScore(ctx, redisKey, "-inf", "("+strconv.FormatInt(windowStart, 10))
		pipe.ZAdd(ctx, redisKey, redis.Z{Score: float64(nowMs), Member: member})
		count = pipe.ZCard(ctx, redisKey)
		pipe.Expire(ctx, redisKey, l.window)
		return nil
	})
	if err != nil {
		return false, 0, err
	}

	n := int(count.Val())
	if n > l.limit {
		if err := l.client.ZRem(ctx, redisKey, member).Err(); err != nil {
			log.Warn().Err(err).Str("key", redisKey).Msg("Failed to drop rejected request from window")
		}
		return false, 0, nil
	}
	return true, l.limit - n, nil
}

// Middleware limits each caller per route. Redis failures let the request through.
func (l *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		caller := UserID(c)
		if caller == "" {
			caller = c.ClientIP()
		}
		key := caller + ":" + c.FullPath()

		allowed, remaining, err := l.Allow(c.Request.Context(), key)
		if err != nil {
			log.Warn().Err(err).Str("key", key).Msg("Rate limiter unavailable, allowing request")
			c.Next()
			return
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(l.limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		if !allowed {
			c.Header("Retry-After", strconv.Itoa(int(l.window.Seconds())))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.ErrorResponse{Message: "Too many requests"})
			return
		}
		c.Next()
	}
}
