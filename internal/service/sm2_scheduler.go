package service

import (
	"fmt"
	"math"
	"time"
)

const (
	MinEaseFactor = 1.3
	MinQuality    = 0
	MaxQuality    = 5
	passQuality   = 3
)

// ReviewSchedule is the SM-2 state after one review.
type ReviewSchedule struct {
	EaseFactor     float64
	Interval       int // days
	Repetitions    int
	NextReviewDate time.Time
}

// ScheduleReview applies one SM-2 step for a recall quality in [0,5].
// A quality below 3 resets repetitions and makes the card due immediately.
func ScheduleReview(quality int, easeFactor float64, interval, repetitions int, now time.Time) (ReviewSchedule, error) {
	if quality < MinQuality || quality > MaxQuality {
		return ReviewSchedule{}, fmt.Errorf("%w: quality %d outside %d..%d", ErrValidation, quality, MinQuality, MaxQuality)
	}

	miss := float64(MaxQuality - quality)
	newEase := easeFactor + (0.1 - miss*(0.08+miss*0.02))
	if newEase < MinEaseFactor {
		newEase = MinEaseFactor
	}

	next := ReviewSchedule{EaseFactor: newEase}
	if quality < passQuality {
		next.Repetitions = 0
		next.Interval = 0
	} else {
		next.Repetitions = repetitions + 1
		switch next.Repetitions {
		case 1:
			next.Interval = 1
		case 2:
			next.Interval = 6
		default:
			next.Interval = int(math.Round(float64(interval) * newEase))
		}
	}
	next.NextReviewDate = now.AddDate(0, 0, next.Interval)
	return next, nil
}
