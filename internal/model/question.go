package model

// QuestionType defines how a question is answered
type QuestionType string

const (
	QuestionTypeSingle   QuestionType = "single"   // exactly one option
	QuestionTypeMultiple QuestionType = "multiple" // any subset of options
	QuestionTypeText     QuestionType = "text"     // free-form string
)

// Question is a question template within a survey
type Question struct {
	ID       string       `json:"id" bson:"id"`
	Type     QuestionType `json:"type" bson:"type"`
	Text     string       `json:"question" bson:"question"`
	Options  []string     `json:"options,omitempty" bson:"options,omitempty"` // single/multiple only
	Required bool         `json:"required" bson:"required"`
}

// IsChoice reports whether the question is answered by picking options
func (q *Question) IsChoice() bool {
	return q.Type == QuestionTypeSingle || q.Type == QuestionTypeMultiple
}

// HasOption reports whether value is one of the question's options
func (q *Question) HasOption(value string) bool {
	for _, opt := range q.Options {
		if opt == value {
			return true
		}
	}
	return false
}
