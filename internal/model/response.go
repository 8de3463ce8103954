package model

import "time"

// AnswerValue holds the typed value of an answer. Exactly one field is
// populated, matching the referenced question's type.
type AnswerValue struct {
	Text     string   `json:"text,omitempty" bson:"text,omitempty"`         // text questions
	Option   string   `json:"option,omitempty" bson:"option,omitempty"`     // single choice
	Selected []string `json:"selected,omitempty" bson:"selected,omitempty"` // multiple choice
}

// Answer ties an answer value to a question within a survey
type Answer struct {
	QuestionID string      `json:"questionId" bson:"questionId"`
	Value      AnswerValue `json:"value" bson:"value"`
}

// IsEmptyFor reports whether the answer carries no usable value for a
// question of the given type. An empty selection set counts as empty.
func (a *Answer) IsEmptyFor(t QuestionType) bool {
	switch t {
	case QuestionTypeText:
		return a.Value.Text == ""
	case QuestionTypeSingle:
		return a.Value.Option == ""
	case QuestionTypeMultiple:
		return len(a.Value.Selected) == 0
	}
	return true
}

// ChoiceValues returns the selected option values for a choice question,
// flattening a multiple-choice selection into one value per option.
func (a *Answer) ChoiceValues(t QuestionType) []string {
	switch t {
	case QuestionTypeSingle:
		if a.Value.Option == "" {
			return nil
		}
		return []string{a.Value.Option}
	case QuestionTypeMultiple:
		return a.Value.Selected
	}
	return nil
}

// Response is one user's completed submission for a survey. At most one
// response exists per (surveyId, userId) pair; the responses collection
// carries a unique index on that pair.
type Response struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	SurveyID    string    `json:"surveyId" bson:"surveyId"`
	UserID      string    `json:"userId" bson:"userId"`
	Answers     []Answer  `json:"answers" bson:"answers"`
	SubmittedAt time.Time `json:"submittedAt" bson:"submittedAt"`
}

// AnswerFor returns the response's answer for a question, or nil
func (r *Response) AnswerFor(questionID string) *Answer {
	for i := range r.Answers {
		if r.Answers[i].QuestionID == questionID {
			return &r.Answers[i]
		}
	}
	return nil
}
