package model

import "time"

// Survey is a persistent questionnaire template authored by a builder.
// Questions are embedded in the survey document; logic rules live in their
// own collection and reference questions by id only.
type Survey struct {
	ID        string     `json:"id" bson:"_id,omitempty"`
	Title     string     `json:"title" bson:"title"`
	Status    string     `json:"status" bson:"status"` // draft, published
	Questions []Question `json:"questions" bson:"questions"`
	CreatedAt time.Time  `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt" bson:"updatedAt"`
}

const (
	SurveyStatusDraft     = "draft"
	SurveyStatusPublished = "published"
)

// QuestionByID returns the question with the given id, or nil.
func (s *Survey) QuestionByID(id string) *Question {
	for i := range s.Questions {
		if s.Questions[i].ID == id {
			return &s.Questions[i]
		}
	}
	return nil
}

// HasQuestion reports whether the survey contains the question id.
func (s *Survey) HasQuestion(id string) bool {
	return s.QuestionByID(id) != nil
}
