package repository

import (
	"context"
	"time"

	"github.com/lshigami/studyloop/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FlashcardProgressRepository interface {
	FindByUserAndCard(ctx context.Context, userID string, cardID uint) (*model.FlashcardProgress, error)
	// FindDue returns the user's progress rows due at or before now, earliest first.
	FindDue(ctx context.Context, userID, topic string, now time.Time, limit int) ([]model.FlashcardProgress, error)
	Upsert(ctx context.Context, progress *model.FlashcardProgress) error
}

type flashcardProgressRepository struct {
	db *gorm.DB
}

func NewFlashcardProgressRepository(db *gorm.DB) FlashcardProgressRepository {
	return &flashcardProgressRepository{db: db}
}

func (r *flashcardProgressRepository) FindByUserAndCard(ctx context.Context, userID string, cardID uint) (*model.FlashcardProgress, error) {
	var progress model.FlashcardProgress
	err := r.db.WithContext(ctx).Where("user_id = ? AND card_id = ?", userID, cardID).First(&progress).Error
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

func (r *flashcardProgressRepository) FindDue(ctx context.Context, userID, topic string, now time.Time, limit int) ([]model.FlashcardProgress, error) {
	var rows []model.FlashcardProgress
	if limit <= 0 {
		return rows, nil
	}
	query := r.db.WithContext(ctx).
		Joins("JOIN flashcards ON flashcards.id = flashcard_progress.card_id AND flashcards.deleted_at IS NULL").
		Where("flashcard_progress.user_id = ? AND flashcard_progress.next_review_date <= ?", userID, now)
	if topic != "" {
		query = query.Where("flashcards.topic = ?", topic)
	}
	err := query.Preload("Card").
		Order("flashcard_progress.next_review_date ASC, flashcard_progress.id ASC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

func (r *flashcardProgressRepository) Upsert(ctx context.Context, progress *model.FlashcardProgress) error {
	if progress.ID != 0 {
		return r.db.WithContext(ctx).Omit(clause.Associations).Save(progress).Error
	}
	// A concurrent first review of the same card updates the row it created.
	return r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "card_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"ease_factor", "interval", "repetitions", "next_review_date",
				"last_reviewed_at", "review_count", "last_quality", "updated_at",
			}),
		}).
		Create(progress).Error
}
