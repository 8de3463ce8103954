package service

import (
	"context"
	"errors"
	"testing"

	"surveypulse/internal/model"
)

func seedResults(t *testing.T, questions []model.Question, answerSets [][]model.Answer) (*ResultsService, string) {
	t.Helper()
	surveyRepo := newMemSurveyRepo()
	responseRepo := newMemResponseRepo()

	surveyID, err := surveyRepo.Create(context.Background(), &model.Survey{
		Title:     "Results",
		Questions: questions,
	})
	if err != nil {
		t.Fatalf("create survey: %v", err)
	}

	ledger := NewResponseService(surveyRepo, responseRepo, nil, nil, nil)
	for i, answers := range answerSets {
		userID := string(rune('a' + i))
		if _, err := ledger.Submit(context.Background(), surveyID, userID, answers); err != nil {
			t.Fatalf("submit response %d: %v", i, err)
		}
	}

	return NewResultsService(surveyRepo, responseRepo, nil, nil), surveyID
}

func singleAnswer(questionID, option string) []model.Answer {
	return []model.Answer{{QuestionID: questionID, Value: model.AnswerValue{Option: option}}}
}

func TestSummarizeSingleChoice(t *testing.T) {
	svc, surveyID := seedResults(t,
		[]model.Question{
			{ID: "q1", Type: model.QuestionTypeSingle, Text: "Pick one", Options: []string{"A", "B"}, Required: true},
		},
		[][]model.Answer{
			singleAnswer("q1", "A"),
			singleAnswer("q1", "A"),
			singleAnswer("q1", "B"),
		},
	)

	results, err := svc.Summarize(context.Background(), surveyID, model.RoleAdmin)
	if err != nil {
		t.Fatalf("Summarize returned error: %v", err)
	}
	if results.TotalResponses != 3 {
		t.Errorf("TotalResponses = %d, want 3", results.TotalResponses)
	}

	stats := results.Statistics[0]
	if stats.TotalResponses != 3 {
		t.Errorf("question TotalResponses = %d, want 3", stats.TotalResponses)
	}

	want := []model.OptionCount{
		{Value: "A", Count: 2, Percent: 67}, // round-half-up of 66.6
		{Value: "B", Count: 1, Percent: 33},
	}
	if len(stats.AnswerCounts) != len(want) {
		t.Fatalf("got %d rows, want %d", len(stats.AnswerCounts), len(want))
	}
	for i, w := range want {
		if stats.AnswerCounts[i] != w {
			t.Errorf("row %d = %+v, want %+v", i, stats.AnswerCounts[i], w)
		}
	}
}

func TestSummarizeMultipleFlattening(t *testing.T) {
	svc, surveyID := seedResults(t,
		[]model.Question{
			{ID: "m1", Type: model.QuestionTypeMultiple, Text: "Pick some", Options: []string{"X", "Y", "Z"}},
		},
		[][]model.Answer{
			{{QuestionID: "m1", Value: model.AnswerValue{Selected: []string{"X", "Y"}}}},
		},
	)

	results, err := svc.Summarize(context.Background(), surveyID, model.RoleAdmin)
	if err != nil {
		t.Fatalf("Summarize returned error: %v", err)
	}

	stats := results.Statistics[0]
	if stats.TotalResponses != 1 {
		t.Errorf("question TotalResponses = %d, want 1 (not the flattened sum)", stats.TotalResponses)
	}

	want := []model.OptionCount{
		{Value: "X", Count: 1, Percent: 100},
		{Value: "Y", Count: 1, Percent: 100},
		{Value: "Z", Count: 0, Percent: 0},
	}
	for i, w := range want {
		if stats.AnswerCounts[i] != w {
			t.Errorf("row %d = %+v, want %+v", i, stats.AnswerCounts[i], w)
		}
	}
}

func TestSummarizeTextResponses(t *testing.T) {
	svc, surveyID := seedResults(t,
		[]model.Question{
			{ID: "t1", Type: model.QuestionTypeText, Text: "Thoughts?"},
		},
		[][]model.Answer{
			{{QuestionID: "t1", Value: model.AnswerValue{Text: "first"}}},
			{{QuestionID: "t1", Value: model.AnswerValue{Text: "second"}}},
			{}, // answered nothing
		},
	)

	results, err := svc.Summarize(context.Background(), surveyID, model.RoleAdmin)
	if err != nil {
		t.Fatalf("Summarize returned error: %v", err)
	}
	if results.TotalResponses != 3 {
		t.Errorf("TotalResponses = %d, want 3", results.TotalResponses)
	}

	stats := results.Statistics[0]
	if stats.TotalResponses != 2 {
		t.Errorf("question TotalResponses = %d, want 2", stats.TotalResponses)
	}
	if len(stats.Responses) != 2 || stats.Responses[0] != "first" || stats.Responses[1] != "second" {
		t.Errorf("unexpected text responses: %v", stats.Responses)
	}
}

func TestSummarizeEmptySurvey(t *testing.T) {
	svc, surveyID := seedResults(t,
		[]model.Question{
			{ID: "q1", Type: model.QuestionTypeSingle, Text: "Pick one", Options: []string{"A", "B"}},
			{ID: "t1", Type: model.QuestionTypeText, Text: "Thoughts?"},
		},
		nil,
	)

	results, err := svc.Summarize(context.Background(), surveyID, model.RoleAdmin)
	if err != nil {
		t.Fatalf("Summarize returned error: %v", err)
	}
	if results.TotalResponses != 0 {
		t.Errorf("TotalResponses = %d, want 0", results.TotalResponses)
	}
	for _, stats := range results.Statistics {
		if stats.TotalResponses != 0 {
			t.Errorf("question %s TotalResponses = %d, want 0", stats.QuestionID, stats.TotalResponses)
		}
		for _, row := range stats.AnswerCounts {
			if row.Count != 0 || row.Percent != 0 {
				t.Errorf("expected zeroed row, got %+v", row)
			}
		}
	}
}

func TestSummarizeKeepsRemovedOptionValues(t *testing.T) {
	surveyRepo := newMemSurveyRepo()
	responseRepo := newMemResponseRepo()

	surveyID, _ := surveyRepo.Create(context.Background(), &model.Survey{
		Title: "Editable",
		Questions: []model.Question{
			{ID: "q1", Type: model.QuestionTypeSingle, Text: "Pick one", Options: []string{"A", "B"}},
		},
	})

	ledger := NewResponseService(surveyRepo, responseRepo, nil, nil, nil)
	if _, err := ledger.Submit(context.Background(), surveyID, "u1", singleAnswer("q1", "B")); err != nil {
		t.Fatalf("submit: %v", err)
	}

	// Admin removes option B after the response exists
	if err := surveyRepo.Update(context.Background(), &model.Survey{
		ID:    surveyID,
		Title: "Editable",
		Questions: []model.Question{
			{ID: "q1", Type: model.QuestionTypeSingle, Text: "Pick one", Options: []string{"A"}},
		},
	}); err != nil {
		t.Fatalf("update: %v", err)
	}

	svc := NewResultsService(surveyRepo, responseRepo, nil, nil)
	results, err := svc.Summarize(context.Background(), surveyID, model.RoleAdmin)
	if err != nil {
		t.Fatalf("Summarize returned error: %v", err)
	}

	stats := results.Statistics[0]
	want := []model.OptionCount{
		{Value: "A", Count: 0, Percent: 0},
		{Value: "B", Count: 1, Percent: 100}, // historical value preserved
	}
	if len(stats.AnswerCounts) != len(want) {
		t.Fatalf("got %d rows, want %d", len(stats.AnswerCounts), len(want))
	}
	for i, w := range want {
		if stats.AnswerCounts[i] != w {
			t.Errorf("row %d = %+v, want %+v", i, stats.AnswerCounts[i], w)
		}
	}
}

func TestSummarizeNotFound(t *testing.T) {
	svc := NewResultsService(newMemSurveyRepo(), newMemResponseRepo(), nil, nil)

	_, err := svc.Summarize(context.Background(), "missing", model.RoleAdmin)
	if !errors.Is(err, ErrSurveyNotFound) {
		t.Fatalf("expected ErrSurveyNotFound, got %v", err)
	}
}

func TestSummarizeRequiresAdmin(t *testing.T) {
	svc, surveyID := seedResults(t,
		[]model.Question{
			{ID: "q1", Type: model.QuestionTypeSingle, Text: "Pick one", Options: []string{"A"}},
		},
		nil,
	)

	_, err := svc.Summarize(context.Background(), surveyID, model.RoleUser)
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestOverviewCountsAndOrder(t *testing.T) {
	surveyRepo := newMemSurveyRepo()
	responseRepo := newMemResponseRepo()

	quietID, _ := surveyRepo.Create(context.Background(), &model.Survey{
		Title: "Quiet",
		Questions: []model.Question{
			{ID: "q1", Type: model.QuestionTypeText, Text: "?"},
		},
	})
	busyID, _ := surveyRepo.Create(context.Background(), &model.Survey{
		Title: "Busy",
		Questions: []model.Question{
			{ID: "q1", Type: model.QuestionTypeText, Text: "?"},
		},
	})

	ledger := NewResponseService(surveyRepo, responseRepo, nil, nil, nil)
	for _, user := range []string{"u1", "u2", "u3"} {
		if _, err := ledger.Submit(context.Background(), busyID, user, []model.Answer{
			{QuestionID: "q1", Value: model.AnswerValue{Text: "hi"}},
		}); err != nil {
			t.Fatalf("submit: %v", err)
		}
	}

	svc := NewResultsService(surveyRepo, responseRepo, nil, nil)
	overview, err := svc.Overview(context.Background())
	if err != nil {
		t.Fatalf("Overview returned error: %v", err)
	}
	if len(overview) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(overview))
	}
	if overview[0].SurveyID != busyID || overview[0].ResponseCount != 3 {
		t.Errorf("row 0 = %+v, want busy survey with 3 responses", overview[0])
	}
	if overview[1].SurveyID != quietID || overview[1].ResponseCount != 0 {
		t.Errorf("row 1 = %+v, want quiet survey with 0 responses", overview[1])
	}
}

func TestRoundPercent(t *testing.T) {
	cases := []struct {
		count, total, want int
	}{
		{0, 0, 0},
		{1, 3, 33},
		{2, 3, 67},
		{1, 2, 50},
		{1, 8, 13}, // 12.5 rounds half up
		{3, 3, 100},
	}
	for _, tc := range cases {
		if got := roundPercent(tc.count, tc.total); got != tc.want {
			t.Errorf("roundPercent(%d, %d) = %d, want %d", tc.count, tc.total, got, tc.want)
		}
	}
}
