package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/jinzhu/copier"
	"github.com/lshigami/studyloop/internal/dto"
	"github.com/lshigami/studyloop/internal/model"
	"github.com/lshigami/studyloop/internal/repository"
	"github.com/rs/zerolog/log"
)

type AdminTestService interface {
	CreateTest(ctx context.Context, req dto.TestCreateDTO) (*dto.TestResponseDTO, error)
	CreateFlashcard(ctx context.Context, req dto.FlashcardCreateDTO) (*dto.FlashcardResponseDTO, error)
}

type adminTestService struct {
	testRepo repository.TestRepository
	cardRepo repository.FlashcardRepository
}

func NewAdminTestService(testRepo repository.TestRepository, cardRepo repository.FlashcardRepository) AdminTestService {
	return &adminTestService{testRepo: testRepo, cardRepo: cardRepo}
}

func (s *adminTestService) CreateTest(ctx context.Context, req dto.TestCreateDTO) (*dto.TestResponseDTO, error) {
	kind := model.TestKind(req.Kind)
	if !kind.IsValid() {
		return nil, fmt.Errorf("%w: unknown test kind %q", ErrValidation, req.Kind)
	}
	if len(req.Questions) == 0 {
		return nil, fmt.Errorf("%w: a test needs at least one question", ErrValidation)
	}

	orderMap := make(map[int]bool)
	questions := make([]model.Question, 0, len(req.Questions))

	for _, qDto := range req.Questions {
		if orderMap[qDto.OrderInTest] {
			return nil, fmt.Errorf("%w: duplicate order_in_test %d", ErrValidation, qDto.OrderInTest)
		}
		orderMap[qDto.OrderInTest] = true

		if !containsOption(qDto.Options, qDto.CorrectAnswer) {
			return nil, fmt.Errorf("%w: correct answer of question %d is not one of its options", ErrValidation, qDto.OrderInTest)
		}

		section := strings.TrimSpace(qDto.Section)
		if section == "" {
			section = defaultSection
		}
		questions = append(questions, model.Question{
			Prompt:        qDto.Prompt,
			Options:       qDto.Options,
			CorrectAnswer: qDto.CorrectAnswer,
			Section:       section,
			OrderInTest:   qDto.OrderInTest,
		})
	}

	testModel := model.Test{
		Title:           req.Title,
		Description:     req.Description,
		Kind:            kind,
		DurationMinutes: req.DurationMinutes,
		Questions:       questions,
	}

	if err := s.testRepo.Create(ctx, &testModel); err != nil {
		log.Error().Err(err).Str("title", req.Title).Msg("Failed to create test in database")
		return nil, fmt.Errorf("database error creating test: %w", err)
	}

	var resp dto.TestResponseDTO
	if err := copier.Copy(&resp, &testModel); err != nil {
		log.Error().Err(err).Msg("Failed to copy created Test model to TestResponseDTO")
		return nil, fmt.Errorf("error preparing response data: %w", err)
	}
	return &resp, nil
}

func (s *adminTestService) CreateFlashcard(ctx context.Context, req dto.FlashcardCreateDTO) (*dto.FlashcardResponseDTO, error) {
	card := model.Flashcard{
		Topic: strings.TrimSpace(req.Topic),
		Front: req.Front,
		Back:  req.Back,
	}
	if card.Topic == "" {
		return nil, fmt.Errorf("%w: topic is required", ErrValidation)
	}
	if err := s.cardRepo.Create(ctx, &card); err != nil {
		log.Error().Err(err).Str("topic", card.Topic).Msg("Failed to create flashcard")
		return nil, fmt.Errorf("database error creating flashcard: %w", err)
	}

	var resp dto.FlashcardResponseDTO
	copier.Copy(&resp, &card)
	return &resp, nil
}

func containsOption(options []string, answer string) bool {
	for _, opt := range options {
		if opt == answer {
			return true
		}
	}
	return false
}
