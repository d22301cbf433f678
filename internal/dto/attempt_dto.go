package dto

import (
	"time"

	"github.com/google/uuid"
)

type StartAttemptDTO struct {
	TestID uint `json:"test_id" binding:"required"`
}

type AttemptStartedDTO struct {
	AttemptID      uuid.UUID `json:"attempt_id"`
	TestID         uint      `json:"test_id"`
	Kind           string    `json:"kind"`
	TotalQuestions int       `json:"total_questions"`
	TimeRemaining  *int      `json:"time_remaining,omitempty"`
	StartedAt      time.Time `json:"started_at"`
}

// AnswerUpdateDTO is one partial answer update. Nil fields leave the stored value untouched.
type AnswerUpdateDTO struct {
	QuestionID      uint       `json:"question_id" binding:"required"`
	SelectedAnswer  *string    `json:"selected_answer"`
	MarkedForReview *bool      `json:"marked_for_review"`
	AnsweredAt      *time.Time `json:"answered_at"`
}

type SaveProgressDTO struct {
	CurrentIndex  *int              `json:"current_index" binding:"omitempty,min=0"`
	TimeRemaining *int              `json:"time_remaining" binding:"omitempty,min=0"`
	Answers       []AnswerUpdateDTO `json:"answers" binding:"omitempty,dive"`
}

type AnswerRecordDTO struct {
	QuestionID      uint       `json:"question_id"`
	SelectedAnswer  *string    `json:"selected_answer,omitempty"`
	MarkedForReview bool       `json:"marked_for_review"`
	AnsweredAt      *time.Time `json:"answered_at,omitempty"`
}

type SectionScoreDTO struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

// ScoreResultDTO is the stable record produced by a completed attempt.
type ScoreResultDTO struct {
	AttemptID      uuid.UUID                  `json:"attempt_id"`
	TestID         uint                       `json:"test_id"`
	Kind           string                     `json:"kind"`
	Score          int                        `json:"score"`
	TotalQuestions int                        `json:"total_questions"`
	Percentage     float64                    `json:"percentage"`
	SectionScores  map[string]SectionScoreDTO `json:"section_scores"`
	CompletedAt    time.Time                  `json:"completed_at"`
	TimeSpent      int                        `json:"time_spent"`
}

type AttemptDetailDTO struct {
	ID             uuid.UUID         `json:"id"`
	TestID         uint              `json:"test_id"`
	Kind           string            `json:"kind"`
	Status         string            `json:"status"`
	TotalQuestions int               `json:"total_questions"`
	CurrentIndex   int               `json:"current_index"`
	TimeRemaining  *int              `json:"time_remaining,omitempty"`
	Answers        []AnswerRecordDTO `json:"answers"`
	StartedAt      time.Time         `json:"started_at"`
	Result         *ScoreResultDTO   `json:"result,omitempty"`
}

type AttemptSummaryDTO struct {
	ID             uuid.UUID  `json:"id"`
	TestID         uint       `json:"test_id"`
	Kind           string     `json:"kind"`
	Status         string     `json:"status"`
	TotalQuestions int        `json:"total_questions"`
	Score          *int       `json:"score,omitempty"`
	StartedAt      time.Time  `json:"started_at"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
}
