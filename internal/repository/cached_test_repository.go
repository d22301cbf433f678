package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lshigami/studyloop/internal/cache"
	"github.com/lshigami/studyloop/internal/model"
	"github.com/rs/zerolog/log"
)

// cachedTestRepository serves FindByIDWithQuestions from Redis. Test definitions
// are immutable once created, so entries only expire by TTL.
type cachedTestRepository struct {
	TestRepository
	cache *cache.RedisClient
	ttl   time.Duration
}

func NewCachedTestRepository(inner TestRepository, redis *cache.RedisClient, ttl time.Duration) TestRepository {
	return &cachedTestRepository{TestRepository: inner, cache: redis, ttl: ttl}
}

func testCacheKey(id uint) string {
	return fmt.Sprintf("test:%d:definition", id)
}

func (r *cachedTestRepository) FindByIDWithQuestions(ctx context.Context, id uint) (*model.Test, error) {
	key := testCacheKey(id)
	raw, err := r.cache.Get(ctx, key)
	if err == nil {
		var test model.Test
		if jsonErr := json.Unmarshal([]byte(raw), &test); jsonErr == nil {
			return &test, nil
		}
		log.Warn().Str("key", key).Msg("Discarding undecodable cached test definition")
	} else if !cache.IsMiss(err) {
		log.Warn().Err(err).Uint("testID", id).Msg("Test cache read failed, falling back to database")
	}

	test, err := r.TestRepository.FindByIDWithQuestions(ctx, id)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(test)
	if err != nil {
		log.Warn().Err(err).Uint("testID", id).Msg("Failed to encode test definition for cache")
		return test, nil
	}
	if err := r.cache.Set(ctx, key, payload, r.ttl); err != nil {
		log.Warn().Err(err).Uint("testID", id).Msg("Test cache write failed")
	}
	return test, nil
}
