package service

import (
	"fmt"
	"testing"

	"github.com/lshigami/studyloop/internal/model"
	"github.com/stretchr/testify/assert"
)

// buildQuestions returns n questions with ids 1..n, correct answer "A",
// alternating between the algebra and geometry sections.
func buildQuestions(n int) []model.Question {
	questions := make([]model.Question, 0, n)
	for i := 1; i <= n; i++ {
		section := "algebra"
		if i%2 == 0 {
			section = "geometry"
		}
		questions = append(questions, model.Question{
			ID:            uint(i),
			Prompt:        fmt.Sprintf("Question %d", i),
			Options:       []string{"A", "B", "C", "D"},
			CorrectAnswer: "A",
			Section:       section,
			OrderInTest:   i,
		})
	}
	return questions
}

func TestScoreAttemptSevenAnsweredFiveCorrect(t *testing.T) {
	questions := buildQuestions(10)
	answers := model.AnswerSheet{}
	for i := uint(1); i <= 5; i++ {
		answers[i] = model.AnswerRecord{QuestionID: i, SelectedAnswer: strPtr("A")}
	}
	answers[6] = model.AnswerRecord{QuestionID: 6, SelectedAnswer: strPtr("B")}
	answers[7] = model.AnswerRecord{QuestionID: 7, SelectedAnswer: strPtr("C")}
	answers[8] = model.AnswerRecord{QuestionID: 8, MarkedForReview: true}

	got := ScoreAttempt(questions, answers)

	assert.Equal(t, 5, got.Score)
	assert.Equal(t, model.SectionScores{
		"algebra":  {Correct: 3, Total: 5},
		"geometry": {Correct: 2, Total: 5},
	}, got.SectionScores)

	total := 0
	for _, s := range got.SectionScores {
		total += s.Total
	}
	assert.Equal(t, 10, total)
}

func TestScoreAttemptIgnoresUnknownQuestions(t *testing.T) {
	answers := model.AnswerSheet{99: {QuestionID: 99, SelectedAnswer: strPtr("A")}}
	got := ScoreAttempt(buildQuestions(2), answers)
	assert.Zero(t, got.Score)
}

func TestScoreAttemptDefaultSection(t *testing.T) {
	questions := []model.Question{{ID: 1, CorrectAnswer: "yes"}}
	got := ScoreAttempt(questions, model.AnswerSheet{1: {QuestionID: 1, SelectedAnswer: strPtr("yes")}})
	assert.Equal(t, model.SectionScores{defaultSection: {Correct: 1, Total: 1}}, got.SectionScores)
}

func TestScoreAttemptIsDeterministic(t *testing.T) {
	questions := buildQuestions(6)
	answers := model.AnswerSheet{2: {QuestionID: 2, SelectedAnswer: strPtr("A")}, 3: {QuestionID: 3, SelectedAnswer: strPtr("D")}}
	first := ScoreAttempt(questions, answers)
	second := ScoreAttempt(questions, answers)
	assert.Equal(t, first, second)
	assert.LessOrEqual(t, first.Score, len(questions))
}

func TestToPercentage(t *testing.T) {
	conv := NewScoreConverterService()

	pct, err := conv.ToPercentage(5, 10)
	assert.NoError(t, err)
	assert.Equal(t, 50.0, pct)

	pct, err = conv.ToPercentage(1, 3)
	assert.NoError(t, err)
	assert.Equal(t, 33.33, pct)

	pct, err = conv.ToPercentage(0, 0)
	assert.NoError(t, err)
	assert.Zero(t, pct)

	_, err = conv.ToPercentage(11, 10)
	assert.Error(t, err)
}
