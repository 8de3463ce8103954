package model

// OptionCount is one row of a choice question's frequency table
type OptionCount struct {
	Value   string `json:"value"`
	Count   int    `json:"count"`
	Percent int    `json:"percent"` // round-half-up of count/totalResponses*100
}

// QuestionStats is the per-question breakdown within survey results.
// Choice questions carry AnswerCounts; text questions carry the raw
// answer strings in submission order.
type QuestionStats struct {
	QuestionID     string        `json:"questionId"`
	Question       string        `json:"question"`
	Type           QuestionType  `json:"type"`
	TotalResponses int           `json:"totalResponses"` // responses that answered this question
	AnswerCounts   []OptionCount `json:"answerCounts,omitempty"`
	Responses      []string      `json:"responses,omitempty"`
}

// SurveyResults is the aggregated view of all responses to a survey
type SurveyResults struct {
	Survey         *Survey         `json:"survey"`
	TotalResponses int             `json:"totalResponses"`
	Statistics     []QuestionStats `json:"statistics"`
}

// SurveyActivity is one row of the admin overview
type SurveyActivity struct {
	SurveyID      string `json:"surveyId"`
	Title         string `json:"title"`
	ResponseCount int    `json:"responseCount"`
}
