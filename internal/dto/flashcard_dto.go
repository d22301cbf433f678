package dto

import "time"

type SubmitReviewDTO struct {
	Quality *int `json:"quality" binding:"required,min=0,max=5"`
}

type ReviewScheduleDTO struct {
	CardID         uint       `json:"card_id"`
	EaseFactor     float64    `json:"ease_factor"`
	Interval       int        `json:"interval"`
	Repetitions    int        `json:"repetitions"`
	NextReviewDate time.Time  `json:"next_review_date"`
	ReviewCount    int        `json:"review_count"`
	LastReviewedAt *time.Time `json:"last_reviewed_at,omitempty"`
	LastQuality    *int       `json:"last_quality,omitempty"`
}

// ReviewQueueItemDTO is one card in a review session. Schedule is nil for new cards.
type ReviewQueueItemDTO struct {
	Card     FlashcardResponseDTO `json:"card"`
	IsNew    bool                 `json:"is_new"`
	Schedule *ReviewScheduleDTO   `json:"schedule,omitempty"`
}
