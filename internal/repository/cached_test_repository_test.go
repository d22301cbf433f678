package repository

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/lshigami/studyloop/internal/cache"
	"github.com/lshigami/studyloop/internal/model"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCachedTestRepositoryServesFromRedis(t *testing.T) {
	db := newTestDB(t)
	mr := miniredis.RunT(t)
	rc := cache.NewRedisClientFrom(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	repo := NewCachedTestRepository(NewTestRepository(db), rc, time.Hour)
	ctx := t.Context()

	test := createTestWithQuestions(t, db, "cached", 3)

	first, err := repo.FindByIDWithQuestions(ctx, test.ID)
	require.NoError(t, err)
	require.Len(t, first.Questions, 3)
	assert.True(t, mr.Exists(testCacheKey(test.ID)))
	assert.Equal(t, time.Hour, mr.TTL(testCacheKey(test.ID)))

	// once cached, the definition no longer depends on the database rows
	require.NoError(t, db.Where("test_id = ?", test.ID).Delete(&model.Question{}).Error)

	second, err := repo.FindByIDWithQuestions(ctx, test.ID)
	require.NoError(t, err)
	require.Len(t, second.Questions, 3)
	assert.Equal(t, "A", second.Questions[0].CorrectAnswer)
	assert.Equal(t, []string{"A", "B"}, []string(second.Questions[0].Options))
	assert.Equal(t, 1, second.Questions[0].OrderInTest)
}

func TestCachedTestRepositoryFallsBackWhenRedisDown(t *testing.T) {
	db := newTestDB(t)
	mr := miniredis.RunT(t)
	rc := cache.NewRedisClientFrom(redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1}))
	repo := NewCachedTestRepository(NewTestRepository(db), rc, time.Hour)
	ctx := t.Context()

	test := createTestWithQuestions(t, db, "fallback", 2)
	mr.Close()

	got, err := repo.FindByIDWithQuestions(ctx, test.ID)
	require.NoError(t, err)
	assert.Len(t, got.Questions, 2)

	_, err = repo.FindByIDWithQuestions(ctx, 999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
