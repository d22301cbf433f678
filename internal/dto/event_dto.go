package dto

import (
	"time"

	"github.com/google/uuid"
)

const (
	QueueAttemptCompleted = "attempt.completed"
	QueueReviewSubmitted  = "review.submitted"
)

type AttemptCompletedEvent struct {
	AttemptID      uuid.UUID                  `json:"attempt_id"`
	OwnerID        string                     `json:"owner_id"`
	TestID         uint                       `json:"test_id"`
	Kind           string                     `json:"kind"`
	Score          int                        `json:"score"`
	TotalQuestions int                        `json:"total_questions"`
	SectionScores  map[string]SectionScoreDTO `json:"section_scores"`
	CompletedAt    time.Time                  `json:"completed_at"`
}

type ReviewSubmittedEvent struct {
	UserID         string    `json:"user_id"`
	CardID         uint      `json:"card_id"`
	Quality        int       `json:"quality"`
	EaseFactor     float64   `json:"ease_factor"`
	Interval       int       `json:"interval"`
	Repetitions    int       `json:"repetitions"`
	NextReviewDate time.Time `json:"next_review_date"`
	ReviewedAt     time.Time `json:"reviewed_at"`
}
