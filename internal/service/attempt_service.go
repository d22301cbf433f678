package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/lshigami/studyloop/internal/dto"
	"github.com/lshigami/studyloop/internal/model"
	"github.com/lshigami/studyloop/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const maxProgressWriteAttempts = 5

// AttemptService drives an attempt through in_progress -> completed.
type AttemptService interface {
	StartAttempt(ctx context.Context, ownerID string, testID uint) (*dto.AttemptStartedDTO, error)
	SaveProgress(ctx context.Context, attemptID uuid.UUID, ownerID string, req dto.SaveProgressDTO) error
	SubmitAttempt(ctx context.Context, attemptID uuid.UUID, ownerID string) (*dto.ScoreResultDTO, error)
	GetAttempt(ctx context.Context, attemptID uuid.UUID, ownerID string) (*dto.AttemptDetailDTO, error)
	ListAttempts(ctx context.Context, ownerID string, testID *uint) ([]dto.AttemptSummaryDTO, error)
}

type attemptService struct {
	testRepo       repository.TestRepository
	questionRepo   repository.QuestionRepository
	attemptRepo    repository.AttemptRepository
	scoreConverter ScoreConverterService
	publisher      EventPublisher
	now            func() time.Time
}

func NewAttemptService(
	testRepo repository.TestRepository,
	questionRepo repository.QuestionRepository,
	attemptRepo repository.AttemptRepository,
	scoreConverter ScoreConverterService,
	publisher EventPublisher,
) AttemptService {
	return &attemptService{
		testRepo:       testRepo,
		questionRepo:   questionRepo,
		attemptRepo:    attemptRepo,
		scoreConverter: scoreConverter,
		publisher:      publisher,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

func (s *attemptService) StartAttempt(ctx context.Context, ownerID string, testID uint) (*dto.AttemptStartedDTO, error) {
	if ownerID == "" {
		return nil, fmt.Errorf("%w: owner is required", ErrValidation)
	}

	test, err := s.testRepo.FindByIDWithQuestions(ctx, testID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: test %d", ErrNotFound, testID)
		}
		log.Error().Err(err).Uint("testID", testID).Msg("StartAttempt: failed to load test definition")
		return nil, fmt.Errorf("error loading test %d: %w", testID, err)
	}
	if len(test.Questions) == 0 {
		return nil, fmt.Errorf("%w: test %d has no questions", ErrValidation, testID)
	}

	attempt := model.Attempt{
		ID:             uuid.New(),
		OwnerID:        ownerID,
		TestID:         test.ID,
		Kind:           test.Kind,
		TotalQuestions: len(test.Questions),
		Status:         model.AttemptInProgress,
		Answers:        datatypes.NewJSONType(model.AnswerSheet{}),
		SectionScores:  datatypes.NewJSONType(model.SectionScores(nil)),
		TimeRemaining:  test.TimeLimitSeconds(),
		StartedAt:      s.now(),
	}
	if err := s.attemptRepo.Create(ctx, &attempt); err != nil {
		log.Error().Err(err).Uint("testID", testID).Str("ownerID", ownerID).Msg("StartAttempt: failed to create attempt")
		return nil, fmt.Errorf("error creating attempt: %w", err)
	}

	log.Info().Str("attemptID", attempt.ID.String()).Uint("testID", testID).Str("kind", string(attempt.Kind)).Msg("Attempt started")
	return &dto.AttemptStartedDTO{
		AttemptID:      attempt.ID,
		TestID:         attempt.TestID,
		Kind:           string(attempt.Kind),
		TotalQuestions: attempt.TotalQuestions,
		TimeRemaining:  attempt.TimeRemaining,
		StartedAt:      attempt.StartedAt,
	}, nil
}

// loadOwned fetches an attempt and checks that ownerID owns it.
func (s *attemptService) loadOwned(ctx context.Context, attemptID uuid.UUID, ownerID string) (*model.Attempt, error) {
	attempt, err := s.attemptRepo.FindByID(ctx, attemptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: attempt %s", ErrNotFound, attemptID)
		}
		log.Error().Err(err).Str("attemptID", attemptID.String()).Msg("Failed to load attempt")
		return nil, fmt.Errorf("error loading attempt %s: %w", attemptID, err)
	}
	if attempt.OwnerID != ownerID {
		return nil, fmt.Errorf("%w: attempt %s belongs to another user", ErrForbidden, attemptID)
	}
	return attempt, nil
}

func (s *attemptService) SaveProgress(ctx context.Context, attemptID uuid.UUID, ownerID string, req dto.SaveProgressDTO) error {
	if req.CurrentIndex != nil && *req.CurrentIndex < 0 {
		return fmt.Errorf("%w: current index must not be negative", ErrValidation)
	}
	if req.TimeRemaining != nil && *req.TimeRemaining < 0 {
		return fmt.Errorf("%w: time remaining must not be negative", ErrValidation)
	}
	for _, u := range req.Answers {
		if u.QuestionID == 0 {
			return fmt.Errorf("%w: answer update without question id", ErrValidation)
		}
	}

	for i := 0; i < maxProgressWriteAttempts; i++ {
		attempt, err := s.loadOwned(ctx, attemptID, ownerID)
		if err != nil {
			return err
		}
		if attempt.IsCompleted() {
			log.Debug().Str("attemptID", attemptID.String()).Msg("SaveProgress: attempt already completed, dropping update")
			return nil
		}
		if req.CurrentIndex != nil && *req.CurrentIndex >= attempt.TotalQuestions {
			return fmt.Errorf("%w: current index %d outside %d questions", ErrValidation, *req.CurrentIndex, attempt.TotalQuestions)
		}

		update := repository.ProgressUpdate{
			Answers:       MergeAnswers(attempt.Answers.Data(), req.Answers, s.now()),
			CurrentIndex:  attempt.CurrentIndex,
			TimeRemaining: attempt.TimeRemaining,
		}
		if req.CurrentIndex != nil {
			update.CurrentIndex = *req.CurrentIndex
		}
		if req.TimeRemaining != nil {
			update.TimeRemaining = req.TimeRemaining
		}

		written, err := s.attemptRepo.UpdateProgress(ctx, attemptID, attempt.Version, update)
		if err != nil {
			log.Error().Err(err).Str("attemptID", attemptID.String()).Msg("SaveProgress: failed to write progress")
			return fmt.Errorf("error saving progress for attempt %s: %w", attemptID, err)
		}
		if written {
			return nil
		}
		// Lost to a concurrent save or submit; reload and try again.
	}

	log.Warn().Str("attemptID", attemptID.String()).Msg("SaveProgress: gave up after repeated concurrent writes")
	return fmt.Errorf("%w: attempt %s is being modified concurrently", ErrConflict, attemptID)
}

func (s *attemptService) SubmitAttempt(ctx context.Context, attemptID uuid.UUID, ownerID string) (*dto.ScoreResultDTO, error) {
	attempt, err := s.loadOwned(ctx, attemptID, ownerID)
	if err != nil {
		return nil, err
	}
	if attempt.IsCompleted() {
		return s.toScoreResult(attempt)
	}

	// Questions are loaded before the transition so a failed read leaves the
	// attempt in progress instead of completed without a score.
	questions, err := s.questionRepo.FindByTestID(ctx, attempt.TestID)
	if err != nil {
		log.Error().Err(err).Str("attemptID", attemptID.String()).Uint("testID", attempt.TestID).Msg("SubmitAttempt: failed to load questions")
		return nil, fmt.Errorf("error loading questions for test %d: %w", attempt.TestID, err)
	}

	for i := 0; i < maxProgressWriteAttempts; i++ {
		// The completion is conditional on the version the answers were read at,
		// so the stored score always matches the stored answers.
		scoring := ScoreAttempt(questions, attempt.Answers.Data())
		completedAt := s.now()
		timeSpent := int(completedAt.Sub(attempt.StartedAt).Seconds())
		if timeSpent < 0 {
			timeSpent = 0
		}

		won, err := s.attemptRepo.Complete(ctx, attemptID, attempt.Version, repository.CompletionUpdate{
			Score:         scoring.Score,
			SectionScores: scoring.SectionScores,
			CompletedAt:   completedAt,
			TimeSpent:     timeSpent,
		})
		if err != nil {
			log.Error().Err(err).Str("attemptID", attemptID.String()).Msg("SubmitAttempt: failed to complete attempt")
			return nil, fmt.Errorf("error completing attempt %s: %w", attemptID, err)
		}
		if won {
			attempt.Status = model.AttemptCompleted
			attempt.Score = &scoring.Score
			attempt.SectionScores = datatypes.NewJSONType(scoring.SectionScores)
			attempt.CompletedAt = &completedAt
			attempt.TimeSpent = &timeSpent
			attempt.Version++
			return s.publishCompleted(ctx, attempt)
		}

		// Lost to another submit or to a progress save; reload and decide.
		attempt, err = s.attemptRepo.FindByID(ctx, attemptID)
		if err != nil {
			log.Error().Err(err).Str("attemptID", attemptID.String()).Msg("SubmitAttempt: failed to reload attempt")
			return nil, fmt.Errorf("error loading attempt %s: %w", attemptID, err)
		}
		if attempt.IsCompleted() {
			return s.toScoreResult(attempt)
		}
	}

	log.Warn().Str("attemptID", attemptID.String()).Msg("SubmitAttempt: gave up after repeated concurrent writes")
	return nil, fmt.Errorf("%w: attempt %s is being modified concurrently", ErrConflict, attemptID)
}

func (s *attemptService) publishCompleted(ctx context.Context, attempt *model.Attempt) (*dto.ScoreResultDTO, error) {
	result, err := s.toScoreResult(attempt)
	if err != nil {
		return nil, err
	}

	log.Info().Str("attemptID", attempt.ID.String()).Int("score", result.Score).Int("total", result.TotalQuestions).Msg("Attempt completed")
	publishEvent(ctx, s.publisher, dto.QueueAttemptCompleted, dto.AttemptCompletedEvent{
		AttemptID:      attempt.ID,
		OwnerID:        attempt.OwnerID,
		TestID:         attempt.TestID,
		Kind:           string(attempt.Kind),
		Score:          result.Score,
		TotalQuestions: result.TotalQuestions,
		SectionScores:  result.SectionScores,
		CompletedAt:    result.CompletedAt,
	})
	return result, nil
}

func (s *attemptService) toScoreResult(attempt *model.Attempt) (*dto.ScoreResultDTO, error) {
	if attempt.Score == nil || attempt.CompletedAt == nil {
		log.Error().Str("attemptID", attempt.ID.String()).Msg("Completed attempt has no stored score")
		return nil, fmt.Errorf("attempt %s is completed without a score", attempt.ID)
	}

	pct, err := s.scoreConverter.ToPercentage(*attempt.Score, attempt.TotalQuestions)
	if err != nil {
		log.Warn().Err(err).Str("attemptID", attempt.ID.String()).Msg("Failed to convert score to percentage")
	}

	sections := make(map[string]dto.SectionScoreDTO)
	for name, tally := range attempt.SectionScores.Data() {
		sections[name] = dto.SectionScoreDTO{Correct: tally.Correct, Total: tally.Total}
	}

	var timeSpent int
	if attempt.TimeSpent != nil {
		timeSpent = *attempt.TimeSpent
	}

	return &dto.ScoreResultDTO{
		AttemptID:      attempt.ID,
		TestID:         attempt.TestID,
		Kind:           string(attempt.Kind),
		Score:          *attempt.Score,
		TotalQuestions: attempt.TotalQuestions,
		Percentage:     pct,
		SectionScores:  sections,
		CompletedAt:    *attempt.CompletedAt,
		TimeSpent:      timeSpent,
	}, nil
}

func (s *attemptService) GetAttempt(ctx context.Context, attemptID uuid.UUID, ownerID string) (*dto.AttemptDetailDTO, error) {
	attempt, err := s.loadOwned(ctx, attemptID, ownerID)
	if err != nil {
		return nil, err
	}

	sheet := attempt.Answers.Data()
	answers := make([]dto.AnswerRecordDTO, 0, len(sheet))
	for _, record := range sheet {
		answers = append(answers, dto.AnswerRecordDTO{
			QuestionID:      record.QuestionID,
			SelectedAnswer:  record.SelectedAnswer,
			MarkedForReview: record.MarkedForReview,
			AnsweredAt:      record.AnsweredAt,
		})
	}
	sort.Slice(answers, func(i, j int) bool { return answers[i].QuestionID < answers[j].QuestionID })

	resp := &dto.AttemptDetailDTO{
		ID:             attempt.ID,
		TestID:         attempt.TestID,
		Kind:           string(attempt.Kind),
		Status:         string(attempt.Status),
		TotalQuestions: attempt.TotalQuestions,
		CurrentIndex:   attempt.CurrentIndex,
		TimeRemaining:  attempt.TimeRemaining,
		Answers:        answers,
		StartedAt:      attempt.StartedAt,
	}
	if attempt.IsCompleted() {
		result, err := s.toScoreResult(attempt)
		if err != nil {
			return nil, err
		}
		resp.Result = result
	}
	return resp, nil
}

func (s *attemptService) ListAttempts(ctx context.Context, ownerID string, testID *uint) ([]dto.AttemptSummaryDTO, error) {
	attempts, err := s.attemptRepo.FindAllByOwner(ctx, ownerID, testID)
	if err != nil {
		log.Error().Err(err).Str("ownerID", ownerID).Interface("testID", testID).Msg("ListAttempts: failed to query attempts")
		return nil, fmt.Errorf("error fetching attempts: %w", err)
	}

	summaries := make([]dto.AttemptSummaryDTO, 0, len(attempts))
	for _, attempt := range attempts {
		summaries = append(summaries, dto.AttemptSummaryDTO{
			ID:             attempt.ID,
			TestID:         attempt.TestID,
			Kind:           string(attempt.Kind),
			Status:         string(attempt.Status),
			TotalQuestions: attempt.TotalQuestions,
			Score:          attempt.Score,
			StartedAt:      attempt.StartedAt,
			CompletedAt:    attempt.CompletedAt,
		})
	}
	return summaries, nil
}
