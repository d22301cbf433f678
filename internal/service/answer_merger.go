package service

import (
	"time"

	"github.com/lshigami/studyloop/internal/dto"
	"github.com/lshigami/studyloop/internal/model"
)

// MergeAnswers applies partial updates to a copy of existing and returns it.
// Each field is last-write-wins on its own: a nil field in an update never
// clears the stored value. A record is created the first time a question is
// referenced, even by a bare review mark.
func MergeAnswers(existing model.AnswerSheet, updates []dto.AnswerUpdateDTO, now time.Time) model.AnswerSheet {
	merged := make(model.AnswerSheet, len(existing)+len(updates))
	for id, record := range existing {
		merged[id] = record
	}

	for _, u := range updates {
		record, ok := merged[u.QuestionID]
		if !ok {
			record = model.AnswerRecord{QuestionID: u.QuestionID}
		}

		if u.SelectedAnswer != nil {
			selected := *u.SelectedAnswer
			record.SelectedAnswer = &selected

			answeredAt := now
			if u.AnsweredAt != nil {
				answeredAt = *u.AnsweredAt
			}
			record.AnsweredAt = &answeredAt
		}

		if u.MarkedForReview != nil {
			record.MarkedForReview = *u.MarkedForReview
		}

		merged[u.QuestionID] = record
	}
	return merged
}
