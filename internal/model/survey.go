package model

import "time"

// Survey is a persistent questionnaire created by a user
type Survey struct {
	ID             string          `json:"id" bson:"_id,omitempty"`
	Title          string          `json:"title" bson:"title"`
	Description    string          `json:"description,omitempty" bson:"description,omitempty"`
	ImageURL       string          `json:"imageUrl,omitempty" bson:"imageUrl,omitempty"`
	IntroQuestions []IntroQuestion `json:"introQuestions" bson:"introQuestions"`
	Questions      []Question      `json:"questions" bson:"questions"`
	CreatedBy      string          `json:"createdBy" bson:"createdBy"`
	CreatedAt      time.Time       `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt" bson:"updatedAt"`
}

// QuestionByID returns the survey question with the given id, or nil.
func (s *Survey) QuestionByID(id string) *Question {
	for i := range s.Questions {
		if s.Questions[i].ID == id {
			return &s.Questions[i]
		}
	}
	return nil
}

// SurveySummary is the public listing projection of a survey, with the
// creator reduced to a public profile.
type SurveySummary struct {
	ID             string          `json:"id"`
	Title          string          `json:"title"`
	Description    string          `json:"description,omitempty"`
	ImageURL       string          `json:"imageUrl,omitempty"`
	IntroQuestions []IntroQuestion `json:"introQuestions"`
	Questions      []Question      `json:"questions"`
	CreatedBy      PublicUser      `json:"createdBy"`
	CreatedAt      time.Time       `json:"createdAt"`
}
