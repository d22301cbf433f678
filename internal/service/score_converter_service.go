package service

import (
	"fmt"
	"math"
)

type ScoreConverterService interface {
	ToPercentage(score, totalQuestions int) (float64, error)
}

type scoreConverterServiceImpl struct{}

func NewScoreConverterService() ScoreConverterService {
	return &scoreConverterServiceImpl{}
}

// ToPercentage converts a raw score to a percentage rounded to two decimals.
func (s *scoreConverterServiceImpl) ToPercentage(score, totalQuestions int) (float64, error) {
	if totalQuestions <= 0 {
		return 0, nil
	}
	if score < 0 || score > totalQuestions {
		return 0, fmt.Errorf("raw score %d is out of valid range (0-%d)", score, totalQuestions)
	}
	pct := float64(score) / float64(totalQuestions) * 100
	return math.Round(pct*100) / 100, nil
}
