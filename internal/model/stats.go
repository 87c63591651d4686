package model

import "time"

// QuestionStats tallies who picked what for one question. Bucket keys are
// answer values; each bucket lists respondent display names in the order the
// responses were scanned, duplicates included.
type QuestionStats struct {
	QuestionText string              `json:"questionText"`
	Answers      map[string][]string `json:"answers"`
}

// AnswerDetail is one answer enriched with its survey and question context.
type AnswerDetail struct {
	SurveyTitle  string      `json:"surveyTitle"`
	QuestionText string      `json:"questionText"`
	UserAnswer   AnswerValue `json:"userAnswer"`
	SurveyID     string      `json:"surveyId"`
	QuestionID   string      `json:"questionId"`
}

// RespondentDetail is the per-respondent view of a submission, restricted to
// answers targeting the requesting creator's surveys.
type RespondentDetail struct {
	User           PublicUser      `json:"user"`
	IntroResponses []IntroResponse `json:"introResponses"`
	Responses      []AnswerDetail  `json:"responses"`
	SubmittedAt    time.Time       `json:"submittedAt"`
}
