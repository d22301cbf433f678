package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/lshigami/studyloop/internal/model"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ProgressUpdate is the full post-merge progress state written by SaveProgress.
type ProgressUpdate struct {
	Answers       model.AnswerSheet
	CurrentIndex  int
	TimeRemaining *int
}

// CompletionUpdate carries everything written by the in_progress -> completed transition.
type CompletionUpdate struct {
	Score         int
	SectionScores model.SectionScores
	CompletedAt   time.Time
	TimeSpent     int
}

// AttemptRepository is the attempt store. Writes against an attempt are conditional
// on its status so a completed attempt is never modified.
type AttemptRepository interface {
	Create(ctx context.Context, attempt *model.Attempt) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Attempt, error)
	FindAllByOwner(ctx context.Context, ownerID string, testID *uint) ([]model.Attempt, error)
	// UpdateProgress applies u only if the attempt is still in progress and its
	// version equals expectedVersion. It reports whether a row was written.
	UpdateProgress(ctx context.Context, id uuid.UUID, expectedVersion int, u ProgressUpdate) (bool, error)
	// Complete moves the attempt from in_progress to completed together with its
	// score, only if its version still equals expectedVersion. Only one caller can
	// ever observe true for a given attempt.
	Complete(ctx context.Context, id uuid.UUID, expectedVersion int, u CompletionUpdate) (bool, error)
}

type attemptRepository struct {
	db *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) AttemptRepository {
	return &attemptRepository{db: db}
}

func (r *attemptRepository) Create(ctx context.Context, attempt *model.Attempt) error {
	if attempt.ID == uuid.Nil {
		attempt.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(attempt).Error
}

func (r *attemptRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Attempt, error) {
	var attempt model.Attempt
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&attempt).Error; err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *attemptRepository) FindAllByOwner(ctx context.Context, ownerID string, testID *uint) ([]model.Attempt, error) {
	var attempts []model.Attempt
	query := r.db.WithContext(ctx).Where("owner_id = ?", ownerID)
	if testID != nil {
		query = query.Where("test_id = ?", *testID)
	}
	err := query.Order("started_at DESC").Find(&attempts).Error
	return attempts, err
}

func (r *attemptRepository) UpdateProgress(ctx context.Context, id uuid.UUID, expectedVersion int, u ProgressUpdate) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Attempt{}).
		Where("id = ? AND status = ? AND version = ?", id, model.AttemptInProgress, expectedVersion).
		Updates(map[string]interface{}{
			"answers":        datatypes.NewJSONType(u.Answers),
			"current_index":  u.CurrentIndex,
			"time_remaining": u.TimeRemaining,
			"version":        gorm.Expr("version + 1"),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *attemptRepository) Complete(ctx context.Context, id uuid.UUID, expectedVersion int, u CompletionUpdate) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Attempt{}).
		Where("id = ? AND status = ? AND version = ?", id, model.AttemptInProgress, expectedVersion).
		Updates(map[string]interface{}{
			"status":         model.AttemptCompleted,
			"score":          u.Score,
			"section_scores": datatypes.NewJSONType(u.SectionScores),
			"completed_at":   u.CompletedAt,
			"time_spent":     u.TimeSpent,
			"version":        gorm.Expr("version + 1"),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
