package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jinzhu/copier"
	"github.com/lshigami/studyloop/config"
	"github.com/lshigami/studyloop/internal/dto"
	"github.com/lshigami/studyloop/internal/model"
	"github.com/lshigami/studyloop/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type FlashcardService interface {
	// ReviewQueue returns due cards, earliest first, followed by cards the user
	// has never reviewed. The result never exceeds limit.
	ReviewQueue(ctx context.Context, userID, topic string, limit int) ([]dto.ReviewQueueItemDTO, error)
	SubmitReview(ctx context.Context, userID string, cardID uint, quality int) (*dto.ReviewScheduleDTO, error)
}

type flashcardService struct {
	cardRepo     repository.FlashcardRepository
	progressRepo repository.FlashcardProgressRepository
	publisher    EventPublisher
	defaultLimit int
	maxLimit     int
	now          func() time.Time
}

func NewFlashcardService(
	cardRepo repository.FlashcardRepository,
	progressRepo repository.FlashcardProgressRepository,
	publisher EventPublisher,
	cfg *config.Config,
) FlashcardService {
	return &flashcardService{
		cardRepo:     cardRepo,
		progressRepo: progressRepo,
		publisher:    publisher,
		defaultLimit: cfg.ReviewQueue.DefaultLimit,
		maxLimit:     cfg.ReviewQueue.MaxLimit,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

func (s *flashcardService) effectiveLimit(limit int) int {
	if limit <= 0 {
		limit = s.defaultLimit
	}
	if s.maxLimit > 0 && limit > s.maxLimit {
		limit = s.maxLimit
	}
	return limit
}

func (s *flashcardService) ReviewQueue(ctx context.Context, userID, topic string, limit int) ([]dto.ReviewQueueItemDTO, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user is required", ErrValidation)
	}
	if limit < 0 {
		return nil, fmt.Errorf("%w: limit %d must not be negative", ErrValidation, limit)
	}
	limit = s.effectiveLimit(limit)

	if topic != "" {
		count, err := s.cardRepo.CountByTopic(ctx, topic)
		if err != nil {
			log.Error().Err(err).Str("topic", topic).Msg("ReviewQueue: failed to count topic cards")
			return nil, fmt.Errorf("error checking topic %q: %w", topic, err)
		}
		if count == 0 {
			return nil, fmt.Errorf("%w: topic %q", ErrNotFound, topic)
		}
	}

	due, err := s.progressRepo.FindDue(ctx, userID, topic, s.now(), limit)
	if err != nil {
		log.Error().Err(err).Str("userID", userID).Msg("ReviewQueue: failed to load due cards")
		return nil, fmt.Errorf("error loading due cards: %w", err)
	}

	queue := make([]dto.ReviewQueueItemDTO, 0, limit)
	dueIDs := make([]uint, 0, len(due))
	for i := range due {
		progress := due[i]
		dueIDs = append(dueIDs, progress.CardID)

		item := dto.ReviewQueueItemDTO{Schedule: toScheduleDTO(&progress)}
		copier.Copy(&item.Card, &progress.Card)
		queue = append(queue, item)
	}

	remaining := limit - len(due)
	if remaining <= 0 {
		return queue, nil
	}

	fresh, err := s.cardRepo.FindUnseen(ctx, userID, topic, dueIDs, remaining)
	if err != nil {
		log.Error().Err(err).Str("userID", userID).Msg("ReviewQueue: failed to load new cards")
		return nil, fmt.Errorf("error loading new cards: %w", err)
	}
	for i := range fresh {
		item := dto.ReviewQueueItemDTO{IsNew: true}
		copier.Copy(&item.Card, &fresh[i])
		queue = append(queue, item)
	}
	return queue, nil
}

func (s *flashcardService) SubmitReview(ctx context.Context, userID string, cardID uint, quality int) (*dto.ReviewScheduleDTO, error) {
	if quality < MinQuality || quality > MaxQuality {
		return nil, fmt.Errorf("%w: quality %d outside %d..%d", ErrValidation, quality, MinQuality, MaxQuality)
	}
	if userID == "" {
		return nil, fmt.Errorf("%w: user is required", ErrValidation)
	}

	if _, err := s.cardRepo.FindByID(ctx, cardID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: card %d", ErrNotFound, cardID)
		}
		log.Error().Err(err).Uint("cardID", cardID).Msg("SubmitReview: failed to load card")
		return nil, fmt.Errorf("error loading card %d: %w", cardID, err)
	}

	progress, err := s.progressRepo.FindByUserAndCard(ctx, userID, cardID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Error().Err(err).Uint("cardID", cardID).Str("userID", userID).Msg("SubmitReview: failed to load progress")
			return nil, fmt.Errorf("error loading progress for card %d: %w", cardID, err)
		}
		progress = &model.FlashcardProgress{
			UserID:     userID,
			CardID:     cardID,
			EaseFactor: model.DefaultEaseFactor,
		}
	}

	now := s.now()
	next, err := ScheduleReview(quality, progress.EaseFactor, progress.Interval, progress.Repetitions, now)
	if err != nil {
		return nil, err
	}

	progress.EaseFactor = next.EaseFactor
	progress.Interval = next.Interval
	progress.Repetitions = next.Repetitions
	progress.NextReviewDate = next.NextReviewDate
	progress.ReviewCount++
	progress.LastReviewedAt = &now
	progress.LastQuality = &quality

	if err := s.progressRepo.Upsert(ctx, progress); err != nil {
		log.Error().Err(err).Uint("cardID", cardID).Str("userID", userID).Msg("SubmitReview: failed to save progress")
		return nil, fmt.Errorf("error saving progress for card %d: %w", cardID, err)
	}

	publishEvent(ctx, s.publisher, dto.QueueReviewSubmitted, dto.ReviewSubmittedEvent{
		UserID:         userID,
		CardID:         cardID,
		Quality:        quality,
		EaseFactor:     next.EaseFactor,
		Interval:       next.Interval,
		Repetitions:    next.Repetitions,
		NextReviewDate: next.NextReviewDate,
		ReviewedAt:     now,
	})
	return toScheduleDTO(progress), nil
}

func toScheduleDTO(p *model.FlashcardProgress) *dto.ReviewScheduleDTO {
	return &dto.ReviewScheduleDTO{
		CardID:         p.CardID,
		EaseFactor:     p.EaseFactor,
		Interval:       p.Interval,
		Repetitions:    p.Repetitions,
		NextReviewDate: p.NextReviewDate,
		ReviewCount:    p.ReviewCount,
		LastReviewedAt: p.LastReviewedAt,
		LastQuality:    p.LastQuality,
	}
}
