package dto

import "time"

// QuestionResponseDTO is what a test taker sees. The correct answer is never included.
type QuestionResponseDTO struct {
	ID          uint     `json:"id"`
	TestID      uint     `json:"test_id"`
	Prompt      string   `json:"prompt"`
	Options     []string `json:"options"`
	Section     string   `json:"section"`
	OrderInTest int      `json:"order_in_test"`
}

// TestResponseDTO is used for displaying full test details to users.
type TestResponseDTO struct {
	ID              uint                  `json:"id"`
	Title           string                `json:"title"`
	Description     string                `json:"description,omitempty"`
	Kind            string                `json:"kind"`
	DurationMinutes *int                  `json:"duration_minutes,omitempty"`
	Questions       []QuestionResponseDTO `json:"questions,omitempty"`
	CreatedAt       time.Time             `json:"created_at"`
}

// TestSummaryDTO is used for listing tests available to users.
type TestSummaryDTO struct {
	ID              uint      `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description,omitempty"`
	Kind            string    `json:"kind"`
	DurationMinutes *int      `json:"duration_minutes,omitempty"`
	QuestionCount   int       `json:"question_count"`
	CreatedAt       time.Time `json:"created_at"`
}
