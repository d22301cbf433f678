package dto

import "time"

// QuestionCreateDTO is used within TestCreateDTO for admin test creation.
type QuestionCreateDTO struct {
	Prompt        string   `json:"prompt" binding:"required"`
	Options       []string `json:"options" binding:"required,min=2,dive,required"`
	CorrectAnswer string   `json:"correct_answer" binding:"required"`
	Section       string   `json:"section"`
	OrderInTest   int      `json:"order_in_test" binding:"required,min=1"`
}

// TestCreateDTO is for admin to create a new test with all its questions.
type TestCreateDTO struct {
	Title           string              `json:"title" binding:"required"`
	Description     string              `json:"description,omitempty"`
	Kind            string              `json:"kind" binding:"required,oneof=quiz mock_test practice_paper"`
	DurationMinutes *int                `json:"duration_minutes" binding:"omitempty,min=1"`
	Questions       []QuestionCreateDTO `json:"questions" binding:"required,min=1,dive"`
}

type FlashcardCreateDTO struct {
	Topic string `json:"topic" binding:"required"`
	Front string `json:"front" binding:"required"`
	Back  string `json:"back" binding:"required"`
}

type FlashcardResponseDTO struct {
	ID        uint      `json:"id"`
	Topic     string    `json:"topic"`
	Front     string    `json:"front"`
	Back      string    `json:"back"`
	CreatedAt time.Time `json:"created_at"`
}
