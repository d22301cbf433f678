package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type AttemptStatus string

const (
	AttemptInProgress AttemptStatus = "in_progress"
	AttemptCompleted  AttemptStatus = "completed"
)

// AnswerRecord is the stored state of one question inside an attempt.
type AnswerRecord struct {
	QuestionID      uint       `json:"question_id"`
	SelectedAnswer  *string    `json:"selected_answer,omitempty"`
	MarkedForReview bool       `json:"marked_for_review"`
	AnsweredAt      *time.Time `json:"answered_at,omitempty"`
}

// AnswerSheet maps question id to its answer record.
type AnswerSheet map[uint]AnswerRecord

type SectionScore struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

type SectionScores map[string]SectionScore

type Attempt struct {
	ID             uuid.UUID                         `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID        string                            `json:"owner_id" gorm:"not null;index"`
	TestID         uint                              `json:"test_id" gorm:"not null;index"`
	Kind           TestKind                          `json:"kind" gorm:"type:varchar(32);not null"`
	TotalQuestions int                               `json:"total_questions" gorm:"not null"`
	Status         AttemptStatus                     `json:"status" gorm:"type:varchar(16);not null;index"`
	Answers        datatypes.JSONType[AnswerSheet]   `json:"answers" gorm:"not null"`
	CurrentIndex   int                               `json:"current_index" gorm:"not null;default:0"`
	TimeRemaining  *int                              `json:"time_remaining,omitempty"`
	Score          *int                              `json:"score,omitempty"`
	SectionScores  datatypes.JSONType[SectionScores] `json:"section_scores,omitempty" gorm:"not null"`
	StartedAt      time.Time                         `json:"started_at" gorm:"not null"`
	CompletedAt    *time.Time                        `json:"completed_at,omitempty"`
	TimeSpent      *int                              `json:"time_spent,omitempty"`
	Version        int                               `json:"-" gorm:"not null;default:0"`
	CreatedAt      time.Time                         `json:"created_at"`
	UpdatedAt      time.Time                         `json:"updated_at"`
}

func (a *Attempt) IsCompleted() bool {
	return a.Status == AttemptCompleted
}
