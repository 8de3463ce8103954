package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"surveypulse/internal/cache"
	"surveypulse/internal/model"
	"surveypulse/internal/repository"
)

// SurveyService handles survey CRUD and the cascade delete of responses
type SurveyService struct {
	surveyRepo   repository.SurveyRepo
	responseRepo repository.ResponseRepo
	results      cache.ResultsCache
	activity     cache.ActivityCache
}

// NewSurveyService creates a new survey service
func NewSurveyService(
	surveyRepo repository.SurveyRepo,
	responseRepo repository.ResponseRepo,
	results cache.ResultsCache,
	activity cache.ActivityCache,
) *SurveyService {
	return &SurveyService{
		surveyRepo:   surveyRepo,
		responseRepo: responseRepo,
		results:      results,
		activity:     activity,
	}
}

// Create validates and persists a new survey owned by createdBy
func (s *SurveyService) Create(ctx context.Context, createdBy string, survey *model.Survey) (string, error) {
	if err := normalizeQuestions(survey); err != nil {
		return "", err
	}
	survey.CreatedBy = createdBy

	id, err := s.surveyRepo.Create(ctx, survey)
	if err != nil {
		return "", fmt.Errorf("create survey: %w", err)
	}
	return id, nil
}

// GetByID retrieves a survey by id
func (s *SurveyService) GetByID(ctx context.Context, id string) (*model.Survey, error) {
	survey, err := s.surveyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get survey: %w", err)
	}
	if survey == nil {
		return nil, ErrSurveyNotFound
	}
	return survey, nil
}

// List returns all surveys, newest first
func (s *SurveyService) List(ctx context.Context) ([]*model.Survey, error) {
	return s.surveyRepo.List(ctx)
}

// Update replaces a survey's title, description and questions. Existing
// responses keep referencing questions by id; the aggregator preserves
// historical answer values even when options change.
func (s *SurveyService) Update(ctx context.Context, survey *model.Survey) error {
	if err := normalizeQuestions(survey); err != nil {
		return err
	}

	if err := s.surveyRepo.Update(ctx, survey); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrSurveyNotFound
		}
		return fmt.Errorf("update survey: %w", err)
	}

	if s.results != nil {
		if err := s.results.Invalidate(ctx, survey.ID); err != nil {
			log.Printf("invalidate results cache for %s: %v", survey.ID, err)
		}
	}
	return nil
}

// Delete removes a survey and cascade-deletes all its responses
func (s *SurveyService) Delete(ctx context.Context, id string) error {
	if err := s.surveyRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrSurveyNotFound
		}
		return fmt.Errorf("delete survey: %w", err)
	}

	if _, err := s.responseRepo.DeleteBySurveyID(ctx, id); err != nil {
		return fmt.Errorf("delete responses for survey %s: %w", id, err)
	}

	if s.results != nil {
		if err := s.results.Invalidate(ctx, id); err != nil {
			log.Printf("invalidate results cache for %s: %v", id, err)
		}
	}
	if s.activity != nil {
		if err := s.activity.Remove(ctx, id); err != nil {
			log.Printf("remove activity entry for %s: %v", id, err)
		}
	}
	return nil
}

// normalizeQuestions validates the question list and assigns ids to
// questions that lack one.
func normalizeQuestions(survey *model.Survey) error {
	if survey.Title == "" {
		return validationMessage("title is required")
	}
	if len(survey.Questions) == 0 {
		return validationMessage("at least one question is required")
	}

	seen := make(map[string]bool, len(survey.Questions))
	for i := range survey.Questions {
		q := &survey.Questions[i]
		if q.Text == "" {
			return validationMessage("question %d has no text", i+1)
		}
		switch q.Type {
		case model.QuestionTypeSingle, model.QuestionTypeMultiple:
			if len(q.Options) == 0 {
				return validationMessage("question %q needs at least one option", q.Text)
			}
		case model.QuestionTypeText:
			// free-form, no options
		default:
			return validationMessage("question %q has unknown type %q", q.Text, q.Type)
		}

		if q.ID == "" {
			q.ID = "q_" + uuid.New().String()[:8]
		}
		if seen[q.ID] {
			return validationMessage("duplicate question id %q", q.ID)
		}
		seen[q.ID] = true
	}
	return nil
}
