package model

import "time"

// Survey is a persistent template created by an admin
type Survey struct {
	ID          string     `json:"id" bson:"_id,omitempty"`
	Title       string     `json:"title" bson:"title"`
	Description string     `json:"description" bson:"description"`
	CreatedBy   string     `json:"createdBy" bson:"createdBy"`
	Questions   []Question `json:"questions" bson:"questions"`
	CreatedAt   time.Time  `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt" bson:"updatedAt"`
}

// QuestionByID returns the question with the given id, or nil
func (s *Survey) QuestionByID(id string) *Question {
	for i := range s.Questions {
		if s.Questions[i].ID == id {
			return &s.Questions[i]
		}
	}
	return nil
}
