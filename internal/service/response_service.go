package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"surveypulse/internal/cache"
	"surveypulse/internal/model"
	"surveypulse/internal/repository"
)

// ResponseService is the response ledger: it validates candidate answers
// against the survey's current question set and persists at most one
// response per (surveyId, userId) pair.
type ResponseService struct {
	surveyRepo   repository.SurveyRepo
	responseRepo repository.ResponseRepo
	responded    cache.RespondedCache
	results      cache.ResultsCache
	activity     cache.ActivityCache
	now          func() time.Time
}

// NewResponseService creates a new response service
func NewResponseService(
	surveyRepo repository.SurveyRepo,
	responseRepo repository.ResponseRepo,
	responded cache.RespondedCache,
	results cache.ResultsCache,
	activity cache.ActivityCache,
) *ResponseService {
	return &ResponseService{
		surveyRepo:   surveyRepo,
		responseRepo: responseRepo,
		responded:    responded,
		results:      results,
		activity:     activity,
		now:          time.Now,
	}
}

// Submit validates candidateAnswers and records the user's response.
// The duplicate check is not a lookup: the single InsertOne either wins the
// (surveyId, userId) unique index or fails, so concurrent double submissions
// cannot both succeed.
func (s *ResponseService) Submit(ctx context.Context, surveyID, userID string, candidateAnswers []model.Answer) (*model.Response, error) {
	survey, err := s.surveyRepo.GetByID(ctx, surveyID)
	if err != nil {
		return nil, fmt.Errorf("get survey: %w", err)
	}
	if survey == nil {
		return nil, ErrSurveyNotFound
	}

	answers, vErr := validateAnswers(survey, candidateAnswers)
	if vErr != nil {
		return nil, vErr
	}

	response := &model.Response{
		SurveyID:    surveyID,
		UserID:      userID,
		Answers:     answers,
		SubmittedAt: s.now(),
	}

	if err := s.responseRepo.Insert(ctx, response); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrDuplicateResponse
		}
		return nil, fmt.Errorf("insert response: %w", err)
	}

	// Cache updates are advisory; a failure never rolls back the submit
	if s.responded != nil {
		if err := s.responded.Set(ctx, surveyID, userID); err != nil {
			log.Printf("set responded flag %s/%s: %v", surveyID, userID, err)
		}
	}
	if s.results != nil {
		if err := s.results.Invalidate(ctx, surveyID); err != nil {
			log.Printf("invalidate results cache for %s: %v", surveyID, err)
		}
	}
	if s.activity != nil {
		if err := s.activity.Bump(ctx, surveyID); err != nil {
			log.Printf("bump activity for %s: %v", surveyID, err)
		}
	}

	return response, nil
}

// HasResponded reports whether the user already submitted a response to
// the survey. Advisory: the UI uses it to hide the form, while the unique
// index remains the authoritative guard.
func (s *ResponseService) HasResponded(ctx context.Context, surveyID, userID string) (bool, error) {
	if s.responded != nil {
		hit, err := s.responded.Has(ctx, surveyID, userID)
		if err != nil {
			log.Printf("responded cache lookup %s/%s: %v", surveyID, userID, err)
		} else if hit {
			return true, nil
		}
	}

	exists, err := s.responseRepo.Exists(ctx, surveyID, userID)
	if err != nil {
		return false, fmt.Errorf("check response: %w", err)
	}

	if exists && s.responded != nil {
		if err := s.responded.Set(ctx, surveyID, userID); err != nil {
			log.Printf("backfill responded flag %s/%s: %v", surveyID, userID, err)
		}
	}
	return exists, nil
}

// validateAnswers checks candidate answers against the survey's questions
// and returns the accepted answers in survey question order. Answers for
// unknown question ids are dropped, not rejected.
func validateAnswers(survey *model.Survey, candidates []model.Answer) ([]model.Answer, *ValidationError) {
	byQuestion := make(map[string]*model.Answer, len(candidates))
	for i := range candidates {
		id := candidates[i].QuestionID
		if _, ok := byQuestion[id]; !ok {
			byQuestion[id] = &candidates[i]
		}
	}

	vErr := &ValidationError{}
	answers := make([]model.Answer, 0, len(survey.Questions))
	for i := range survey.Questions {
		q := &survey.Questions[i]
		ans := byQuestion[q.ID]

		if ans == nil || ans.IsEmptyFor(q.Type) {
			if q.Required {
				vErr.Missing = append(vErr.Missing, q.ID)
			}
			continue
		}

		if q.IsChoice() {
			valid := true
			for _, v := range ans.ChoiceValues(q.Type) {
				if !q.HasOption(v) {
					valid = false
					break
				}
			}
			if !valid {
				vErr.Invalid = append(vErr.Invalid, q.ID)
				continue
			}
		}

		answers = append(answers, *ans)
	}

	if len(vErr.Missing) > 0 || len(vErr.Invalid) > 0 {
		return nil, vErr
	}
	return answers, nil
}
