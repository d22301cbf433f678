package service

import "github.com/lshigami/studyloop/internal/model"

const defaultSection = "general"

type ScoringResult struct {
	Score         int
	SectionScores model.SectionScores
}

// ScoreAttempt counts correct answers over the canonical question list.
// Every question counts toward its section total; answers to questions outside
// the list are ignored. It has no side effects.
func ScoreAttempt(questions []model.Question, answers model.AnswerSheet) ScoringResult {
	result := ScoringResult{SectionScores: make(model.SectionScores)}

	for _, q := range questions {
		section := q.Section
		if section == "" {
			section = defaultSection
		}
		tally := result.SectionScores[section]
		tally.Total++

		if answer, ok := answers[q.ID]; ok && answer.SelectedAnswer != nil && *answer.SelectedAnswer == q.CorrectAnswer {
			tally.Correct++
			result.Score++
		}
		result.SectionScores[section] = tally
	}
	return result
}
