package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/lshigami/studyloop/config"
	"github.com/lshigami/studyloop/internal/dto"
	"github.com/lshigami/studyloop/internal/model"
	"github.com/lshigami/studyloop/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type flashcardFixture struct {
	db        *gorm.DB
	svc       *flashcardService
	publisher *recordingPublisher
	clock     time.Time
}

func newFlashcardFixture(t *testing.T) *flashcardFixture {
	t.Helper()
	db := newTestDB(t)
	f := &flashcardFixture{db: db, publisher: newRecordingPublisher(), clock: t0}
	cfg := &config.Config{ReviewQueue: config.ReviewQueue{DefaultLimit: 20, MaxLimit: 50}}
	f.svc = NewFlashcardService(
		repository.NewFlashcardRepository(db),
		repository.NewFlashcardProgressRepository(db),
		f.publisher,
		cfg,
	).(*flashcardService)
	f.svc.now = func() time.Time { return f.clock }
	return f
}

func (f *flashcardFixture) createCards(t *testing.T, topic string, n int) []model.Flashcard {
	t.Helper()
	cards := make([]model.Flashcard, n)
	for i := range cards {
		cards[i] = model.Flashcard{Topic: topic, Front: fmt.Sprintf("%s front %d", topic, i), Back: "back"}
	}
	require.NoError(t, f.db.Create(&cards).Error)
	return cards
}

func (f *flashcardFixture) seedProgress(t *testing.T, userID string, cardID uint, next time.Time) {
	t.Helper()
	require.NoError(t, f.db.Create(&model.FlashcardProgress{
		UserID:         userID,
		CardID:         cardID,
		EaseFactor:     model.DefaultEaseFactor,
		Interval:       1,
		Repetitions:    1,
		NextReviewDate: next,
		ReviewCount:    1,
	}).Error)
}

func TestReviewQueueDueCardsThenNew(t *testing.T) {
	f := newFlashcardFixture(t)
	ctx := context.Background()
	reviewed := f.createCards(t, "biology", 7)
	f.createCards(t, "biology", 30)

	// five due, given in reverse due order, plus two not yet due
	for i := 0; i < 5; i++ {
		f.seedProgress(t, owner, reviewed[i].ID, t0.Add(-time.Duration(i+1)*time.Hour))
	}
	f.seedProgress(t, owner, reviewed[5].ID, t0.Add(time.Hour))
	f.seedProgress(t, owner, reviewed[6].ID, t0.AddDate(0, 0, 3))

	queue, err := f.svc.ReviewQueue(ctx, owner, "", 20)
	require.NoError(t, err)
	require.Len(t, queue, 20)

	for i, item := range queue[:5] {
		assert.False(t, item.IsNew)
		require.NotNil(t, item.Schedule)
		assert.Equal(t, reviewed[4-i].ID, item.Card.ID, "due cards ordered by due date")
		assert.NotEmpty(t, item.Card.Front)
	}
	seen := make(map[uint]bool)
	for _, item := range queue[5:] {
		assert.True(t, item.IsNew)
		assert.Nil(t, item.Schedule)
		assert.False(t, seen[item.Card.ID])
		seen[item.Card.ID] = true
		assert.NotEqual(t, reviewed[5].ID, item.Card.ID)
		assert.NotEqual(t, reviewed[6].ID, item.Card.ID)
	}
}

func TestReviewQueueLimits(t *testing.T) {
	f := newFlashcardFixture(t)
	ctx := context.Background()
	cards := f.createCards(t, "history", 60)
	for _, c := range cards[:25] {
		f.seedProgress(t, owner, c.ID, t0.Add(-time.Minute))
	}

	t.Run("due cards alone can fill the queue", func(t *testing.T) {
		queue, err := f.svc.ReviewQueue(ctx, owner, "", 10)
		require.NoError(t, err)
		require.Len(t, queue, 10)
		for _, item := range queue {
			assert.False(t, item.IsNew)
		}
	})

	t.Run("zero limit uses default", func(t *testing.T) {
		queue, err := f.svc.ReviewQueue(ctx, owner, "", 0)
		require.NoError(t, err)
		assert.Len(t, queue, 20)
	})

	t.Run("limit is capped", func(t *testing.T) {
		queue, err := f.svc.ReviewQueue(ctx, owner, "", 500)
		require.NoError(t, err)
		assert.Len(t, queue, 50)
	})

	t.Run("negative limit is rejected", func(t *testing.T) {
		_, err := f.svc.ReviewQueue(ctx, owner, "", -1)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("another user only sees new cards", func(t *testing.T) {
		queue, err := f.svc.ReviewQueue(ctx, intruder, "", 5)
		require.NoError(t, err)
		require.Len(t, queue, 5)
		for _, item := range queue {
			assert.True(t, item.IsNew)
		}
	})
}

func TestReviewQueueTopicScope(t *testing.T) {
	f := newFlashcardFixture(t)
	ctx := context.Background()
	chem := f.createCards(t, "chemistry", 3)
	f.createCards(t, "physics", 3)
	f.seedProgress(t, owner, chem[0].ID, t0.Add(-time.Hour))

	queue, err := f.svc.ReviewQueue(ctx, owner, "chemistry", 10)
	require.NoError(t, err)
	require.Len(t, queue, 3)
	for _, item := range queue {
		assert.Equal(t, "chemistry", item.Card.Topic)
	}
	assert.Equal(t, chem[0].ID, queue[0].Card.ID)

	_, err = f.svc.ReviewQueue(ctx, owner, "astronomy", 10)
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = f.svc.ReviewQueue(ctx, "", "", 10)
	assert.True(t, errors.Is(err, ErrValidation))
}

func TestSubmitReview(t *testing.T) {
	f := newFlashcardFixture(t)
	ctx := context.Background()
	card := f.createCards(t, "spanish", 1)[0]

	first, err := f.svc.SubmitReview(ctx, owner, card.ID, 4)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Repetitions)
	assert.Equal(t, 1, first.Interval)
	assert.Equal(t, 1, first.ReviewCount)
	assert.True(t, first.NextReviewDate.Equal(t0.AddDate(0, 0, 1)))
	require.NotNil(t, first.LastQuality)
	assert.Equal(t, 4, *first.LastQuality)

	f.clock = t0.AddDate(0, 0, 1)
	second, err := f.svc.SubmitReview(ctx, owner, card.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 2, second.Repetitions)
	assert.Equal(t, 6, second.Interval)
	assert.Equal(t, 2, second.ReviewCount)
	assert.InDelta(t, 2.6, second.EaseFactor, 1e-9)

	f.clock = t0.AddDate(0, 0, 7)
	failed, err := f.svc.SubmitReview(ctx, owner, card.ID, 1)
	require.NoError(t, err)
	assert.Zero(t, failed.Repetitions)
	assert.Zero(t, failed.Interval)
	assert.Equal(t, 3, failed.ReviewCount)
	assert.True(t, failed.NextReviewDate.Equal(f.clock))

	var rows int64
	require.NoError(t, f.db.Model(&model.FlashcardProgress{}).Count(&rows).Error)
	assert.Equal(t, int64(1), rows)

	assert.Equal(t, 3, f.publisher.count(dto.QueueReviewSubmitted))
	var event dto.ReviewSubmittedEvent
	f.publisher.decode(t, dto.QueueReviewSubmitted, 2, &event)
	assert.Equal(t, 1, event.Quality)
	assert.Equal(t, card.ID, event.CardID)

	// the failed card is due again right away
	queue, err := f.svc.ReviewQueue(ctx, owner, "", 5)
	require.NoError(t, err)
	require.Len(t, queue, 1)
	assert.False(t, queue[0].IsNew)
}

func TestSubmitReviewRejectsWithoutWriting(t *testing.T) {
	f := newFlashcardFixture(t)
	ctx := context.Background()
	card := f.createCards(t, "latin", 1)[0]

	for _, q := range []int{-1, 6} {
		_, err := f.svc.SubmitReview(ctx, owner, card.ID, q)
		assert.True(t, errors.Is(err, ErrValidation))
	}

	_, err := f.svc.SubmitReview(ctx, owner, 4242, 3)
	assert.True(t, errors.Is(err, ErrNotFound))

	var rows int64
	require.NoError(t, f.db.Model(&model.FlashcardProgress{}).Count(&rows).Error)
	assert.Zero(t, rows)
	assert.Zero(t, f.publisher.count(dto.QueueReviewSubmitted))
}
