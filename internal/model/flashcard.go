package model

import (
	"time"

	"gorm.io/gorm"
)

type Flashcard struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	Topic     string         `json:"topic" gorm:"not null;index"`
	Front     string         `json:"front" gorm:"type:text;not null"`
	Back      string         `json:"back" gorm:"type:text;not null"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

const DefaultEaseFactor = 2.5

// FlashcardProgress is the spaced-repetition state of one card for one user.
type FlashcardProgress struct {
	ID             uint       `gorm:"primarykey" json:"id"`
	UserID         string     `json:"user_id" gorm:"not null;uniqueIndex:idx_progress_user_card;index:idx_progress_user_due,priority:1"`
	CardID         uint       `json:"card_id" gorm:"not null;uniqueIndex:idx_progress_user_card"`
	Card           Flashcard  `json:"card,omitempty" gorm:"foreignKey:CardID"`
	EaseFactor     float64    `json:"ease_factor" gorm:"not null;default:2.5"`
	Interval       int        `json:"interval" gorm:"not null;default:0"`
	Repetitions    int        `json:"repetitions" gorm:"not null;default:0"`
	NextReviewDate time.Time  `json:"next_review_date" gorm:"not null;index:idx_progress_user_due,priority:2"`
	LastReviewedAt *time.Time `json:"last_reviewed_at,omitempty"`
	ReviewCount    int        `json:"review_count" gorm:"not null;default:0"`
	LastQuality    *int       `json:"last_quality,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func (FlashcardProgress) TableName() string {
	return "flashcard_progress"
}
