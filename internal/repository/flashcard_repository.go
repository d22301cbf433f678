package repository

import (
	"context"

	"github.com/lshigami/studyloop/internal/model"
	"gorm.io/gorm"
)

type FlashcardRepository interface {
	Create(ctx context.Context, card *model.Flashcard) error
	FindByID(ctx context.Context, id uint) (*model.Flashcard, error)
	CountByTopic(ctx context.Context, topic string) (int64, error)
	// FindUnseen returns cards the user has no progress row for, oldest first.
	FindUnseen(ctx context.Context, userID, topic string, excludeIDs []uint, limit int) ([]model.Flashcard, error)
}

type flashcardRepository struct {
	db *gorm.DB
}

func NewFlashcardRepository(db *gorm.DB) FlashcardRepository {
	return &flashcardRepository{db: db}
}

func (r *flashcardRepository) Create(ctx context.Context, card *model.Flashcard) error {
	return r.db.WithContext(ctx).Create(card).Error
}

func (r *flashcardRepository) FindByID(ctx context.Context, id uint) (*model.Flashcard, error) {
	var card model.Flashcard
	if err := r.db.WithContext(ctx).First(&card, id).Error; err != nil {
		return nil, err
	}
	return &card, nil
}

func (r *flashcardRepository) CountByTopic(ctx context.Context, topic string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Flashcard{}).Where("topic = ?", topic).Count(&count).Error
	return count, err
}

func (r *flashcardRepository) FindUnseen(ctx context.Context, userID, topic string, excludeIDs []uint, limit int) ([]model.Flashcard, error) {
	var cards []model.Flashcard
	if limit <= 0 {
		return cards, nil
	}
	query := r.db.WithContext(ctx).
		Where("NOT EXISTS (SELECT 1 FROM flashcard_progress p WHERE p.card_id = flashcards.id AND p.user_id = ?)", userID)
	if topic != "" {
		query = query.Where("flashcards.topic = ?", topic)
	}
	if len(excludeIDs) > 0 {
		query = query.Where("flashcards.id NOT IN ?", excludeIDs)
	}
	err := query.Order("flashcards.id ASC").Limit(limit).Find(&cards).Error
	return cards, err
}
