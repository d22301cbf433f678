package service

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

func TestScheduleReview(t *testing.T) {
	tests := []struct {
		name         string
		quality      int
		ease         float64
		interval     int
		repetitions  int
		wantEase     float64
		wantInterval int
		wantReps     int
	}{
		{"perfect third review", 5, 2.5, 6, 2, 2.6, 16, 3},
		{"failed recall resets", 2, 2.5, 6, 2, 2.18, 0, 0},
		{"first review", 4, 2.5, 0, 0, 2.5, 1, 1},
		{"second review", 4, 2.5, 1, 1, 2.5, 6, 2},
		{"hard pass lowers ease", 3, 2.5, 6, 2, 2.36, 14, 3},
		{"blackout", 0, 2.5, 16, 3, 1.7, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ScheduleReview(tt.quality, tt.ease, tt.interval, tt.repetitions, t0)
			require.NoError(t, err)
			assert.InDelta(t, tt.wantEase, got.EaseFactor, 1e-9)
			assert.Equal(t, tt.wantInterval, got.Interval)
			assert.Equal(t, tt.wantReps, got.Repetitions)
			assert.Equal(t, t0.AddDate(0, 0, tt.wantInterval), got.NextReviewDate)
		})
	}
}

func TestScheduleReviewEaseFloor(t *testing.T) {
	for q := MinQuality; q <= MaxQuality; q++ {
		for _, ease := range []float64{1.3, 1.35, 1.5, 2.5} {
			got, err := ScheduleReview(q, ease, 10, 4, t0)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, got.EaseFactor, MinEaseFactor, "quality %d ease %.2f", q, ease)
			if q < 3 {
				assert.Zero(t, got.Repetitions)
				assert.Zero(t, got.Interval)
				assert.Equal(t, t0, got.NextReviewDate)
			}
		}
	}
}

func TestScheduleReviewSequenceFromNewCard(t *testing.T) {
	ease, interval, reps := 2.5, 0, 0
	// ease climbs 2.6, 2.7, 2.8, 2.9: 6*2.8 = 16.8, 17*2.9 = 49.3
	wantIntervals := []int{1, 6, 17, 49}

	for i, want := range wantIntervals {
		got, err := ScheduleReview(5, ease, interval, reps, t0)
		require.NoError(t, err)
		assert.Equal(t, want, got.Interval, "review %d", i+1)
		assert.Equal(t, i+1, got.Repetitions)
		ease, interval, reps = got.EaseFactor, got.Interval, got.Repetitions
	}
}

func TestScheduleReviewRejectsQualityOutOfRange(t *testing.T) {
	for _, q := range []int{-1, 6, 42} {
		_, err := ScheduleReview(q, 2.5, 0, 0, t0)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrValidation))
	}
}
