package service

import (
	"context"
	"fmt"
	"log"
	"math"
	"sort"

	"surveypulse/internal/cache"
	"surveypulse/internal/model"
	"surveypulse/internal/repository"
)

// ResultsService aggregates persisted responses into per-question tallies
type ResultsService struct {
	surveyRepo   repository.SurveyRepo
	responseRepo repository.ResponseRepo
	results      cache.ResultsCache
	activity     cache.ActivityCache
}

// NewResultsService creates a new results service
func NewResultsService(
	surveyRepo repository.SurveyRepo,
	responseRepo repository.ResponseRepo,
	results cache.ResultsCache,
	activity cache.ActivityCache,
) *ResultsService {
	return &ResultsService{
		surveyRepo:   surveyRepo,
		responseRepo: responseRepo,
		results:      results,
		activity:     activity,
	}
}

// Summarize computes the full results view for a survey. Only admins may
// see results; the caller passes the already-verified role.
func (s *ResultsService) Summarize(ctx context.Context, surveyID string, role model.UserRole) (*model.SurveyResults, error) {
	if role != model.RoleAdmin {
		return nil, ErrForbidden
	}

	if s.results != nil {
		cached, err := s.results.Get(ctx, surveyID)
		if err != nil {
			log.Printf("results cache lookup for %s: %v", surveyID, err)
		} else if cached != nil {
			return cached, nil
		}
	}

	survey, err := s.surveyRepo.GetByID(ctx, surveyID)
	if err != nil {
		return nil, fmt.Errorf("get survey: %w", err)
	}
	if survey == nil {
		return nil, ErrSurveyNotFound
	}

	responses, err := s.responseRepo.ListBySurveyID(ctx, surveyID)
	if err != nil {
		return nil, fmt.Errorf("list responses: %w", err)
	}

	results := &model.SurveyResults{
		Survey:         survey,
		TotalResponses: len(responses),
		Statistics:     make([]model.QuestionStats, 0, len(survey.Questions)),
	}

	for i := range survey.Questions {
		q := &survey.Questions[i]
		if q.Type == model.QuestionTypeText {
			results.Statistics = append(results.Statistics, textStats(q, responses))
		} else {
			results.Statistics = append(results.Statistics, choiceStats(q, responses))
		}
	}

	if s.results != nil {
		if err := s.results.Set(ctx, surveyID, results); err != nil {
			log.Printf("store results cache for %s: %v", surveyID, err)
		}
	}
	return results, nil
}

// Overview returns all surveys with their response counts, most active
// first. Counts come from the Redis activity set with a Mongo fallback so
// a flushed cache never shows zeros.
func (s *ResultsService) Overview(ctx context.Context) ([]model.SurveyActivity, error) {
	surveys, err := s.surveyRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list surveys: %w", err)
	}

	counts := make(map[string]int, len(surveys))
	if s.activity != nil {
		entries, err := s.activity.Top(ctx, len(surveys))
		if err != nil {
			log.Printf("activity lookup: %v", err)
		} else {
			for _, e := range entries {
				counts[e.SurveyID] = e.Count
			}
		}
	}

	overview := make([]model.SurveyActivity, 0, len(surveys))
	for _, survey := range surveys {
		count, ok := counts[survey.ID]
		if !ok {
			n, err := s.responseRepo.CountBySurveyID(ctx, survey.ID)
			if err != nil {
				return nil, fmt.Errorf("count responses for %s: %w", survey.ID, err)
			}
			count = int(n)
		}
		overview = append(overview, model.SurveyActivity{
			SurveyID:      survey.ID,
			Title:         survey.Title,
			ResponseCount: count,
		})
	}

	sort.SliceStable(overview, func(i, j int) bool {
		return overview[i].ResponseCount > overview[j].ResponseCount
	})
	return overview, nil
}

// textStats lists the raw answer strings in submission order
func textStats(q *model.Question, responses []*model.Response) model.QuestionStats {
	stats := model.QuestionStats{
		QuestionID: q.ID,
		Question:   q.Text,
		Type:       q.Type,
		Responses:  []string{},
	}
	for _, r := range responses {
		ans := r.AnswerFor(q.ID)
		if ans == nil || ans.Value.Text == "" {
			continue
		}
		stats.Responses = append(stats.Responses, ans.Value.Text)
	}
	stats.TotalResponses = len(stats.Responses)
	return stats
}

// choiceStats builds the frequency table for a single/multiple question.
// Multiple selections are flattened, one count per selected option, so the
// sum of counts can exceed TotalResponses. Percentages are computed against
// the number of responses that answered the question, round-half-up.
// Stored values no longer among the survey's options are kept, listed after
// the current options.
func choiceStats(q *model.Question, responses []*model.Response) model.QuestionStats {
	counts := make(map[string]int)
	answered := 0
	for _, r := range responses {
		ans := r.AnswerFor(q.ID)
		if ans == nil {
			continue
		}
		values := ans.ChoiceValues(q.Type)
		if len(values) == 0 {
			continue
		}
		answered++
		for _, v := range values {
			counts[v]++
		}
	}

	stats := model.QuestionStats{
		QuestionID:     q.ID,
		Question:       q.Text,
		Type:           q.Type,
		TotalResponses: answered,
		AnswerCounts:   make([]model.OptionCount, 0, len(q.Options)),
	}

	for _, opt := range q.Options {
		stats.AnswerCounts = append(stats.AnswerCounts, model.OptionCount{
			Value:   opt,
			Count:   counts[opt],
			Percent: roundPercent(counts[opt], answered),
		})
		delete(counts, opt)
	}

	// Historical values from before an option was removed
	extras := make([]string, 0, len(counts))
	for v := range counts {
		extras = append(extras, v)
	}
	sort.Strings(extras)
	for _, v := range extras {
		stats.AnswerCounts = append(stats.AnswerCounts, model.OptionCount{
			Value:   v,
			Count:   counts[v],
			Percent: roundPercent(counts[v], answered),
		})
	}

	return stats
}

// roundPercent is round-half-up of count/total*100, 0 when total is zero
func roundPercent(count, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Floor(float64(count)/float64(total)*100 + 0.5))
}
