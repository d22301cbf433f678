package model

import (
	"time"

	"gorm.io/gorm"
)

type TestKind string

const (
	TestKindQuiz          TestKind = "quiz"
	TestKindMockTest      TestKind = "mock_test"
	TestKindPracticePaper TestKind = "practice_paper"
)

var AllTestKinds = []TestKind{TestKindQuiz, TestKindMockTest, TestKindPracticePaper}

func (k TestKind) IsValid() bool {
	for _, kind := range AllTestKinds {
		if k == kind {
			return true
		}
	}
	return false
}

type Test struct {
	ID              uint           `gorm:"primarykey" json:"id"`
	Title           string         `json:"title" gorm:"not null;uniqueIndex"`
	Description     string         `json:"description,omitempty"`
	Kind            TestKind       `json:"kind" gorm:"type:varchar(32);not null;default:'quiz'"`
	DurationMinutes *int           `json:"duration_minutes,omitempty"` // nil or <= 0 means untimed
	Questions       []Question     `json:"questions,omitempty" gorm:"foreignKey:TestID"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

// TimeLimitSeconds returns the countdown an attempt starts with, or nil for untimed tests.
func (t *Test) TimeLimitSeconds() *int {
	if t.DurationMinutes == nil || *t.DurationMinutes <= 0 {
		return nil
	}
	seconds := *t.DurationMinutes * 60
	return &seconds
}
