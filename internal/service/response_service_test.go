package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"surveyhub/internal/model"
	"surveyhub/internal/service"
)

func seedSurvey(t *testing.T, store *fakeStore, creatorID string) *model.Survey {
	t.Helper()
	repo := &fakeSurveyRepo{store: store}
	survey := &model.Survey{
		Title:     "Customer feedback",
		CreatedBy: creatorID,
		Questions: []model.Question{
			{Text: "Would you recommend us?", Kind: model.QuestionKindSingleChoice, Options: []string{"Yes", "No"}},
			{Text: "Which features do you use?", Kind: model.QuestionKindMultiChoice, Options: []string{"A", "B", "C"}},
		},
	}
	_, err := repo.Create(context.Background(), survey)
	require.NoError(t, err)
	return survey
}

func TestSubmitLeniency(t *testing.T) {
	store := newFakeStore()
	survey := seedSurvey(t, store, "creator1")
	svc := service.NewResponseService(&fakeResponseRepo{store: store}, &fakeSurveyRepo{store: store})

	answers := []model.QuestionAnswer{
		{SurveyID: survey.ID, QuestionID: survey.Questions[0].ID, UserAnswer: model.ScalarAnswer("Yes")},
		{SurveyID: "doesnotexist", QuestionID: "x", UserAnswer: model.ScalarAnswer("y")},
		{SurveyID: survey.ID, QuestionID: "unknown-question", UserAnswer: model.ScalarAnswer("y")},
	}

	response, dropped, err := svc.Submit(context.Background(), "respondent1", nil, answers)
	require.NoError(t, err)

	assert.Equal(t, 2, dropped)
	require.Len(t, response.Answers, 1)
	assert.Equal(t, survey.Questions[0].ID, response.Answers[0].QuestionID)
	assert.False(t, response.SubmittedAt.IsZero())
}

func TestSubmitIntroFiltering(t *testing.T) {
	store := newFakeStore()
	survey := seedSurvey(t, store, "creator1")
	svc := service.NewResponseService(&fakeResponseRepo{store: store}, &fakeSurveyRepo{store: store})

	intro := []model.IntroResponse{
		{QuestionText: "Your age", FieldType: model.IntroFieldNumber, Answer: model.ScalarAnswer("34")},
		{QuestionText: "Skipped", FieldType: model.IntroFieldText},            // no answer
		{QuestionText: "", Answer: model.ScalarAnswer("orphaned")},            // no question
	}
	answers := []model.QuestionAnswer{
		{SurveyID: survey.ID, QuestionID: survey.Questions[0].ID, UserAnswer: model.ScalarAnswer("Yes")},
	}

	response, dropped, err := svc.Submit(context.Background(), "respondent1", intro, answers)
	require.NoError(t, err)

	assert.Zero(t, dropped)
	require.Len(t, response.IntroResponses, 1)
	assert.Equal(t, "Your age", response.IntroResponses[0].QuestionText)
}

func TestSubmitValidation(t *testing.T) {
	store := newFakeStore()
	svc := service.NewResponseService(&fakeResponseRepo{store: store}, &fakeSurveyRepo{store: store})
	ctx := context.Background()

	_, _, err := svc.Submit(ctx, "", nil, []model.QuestionAnswer{})
	assert.ErrorIs(t, err, service.ErrValidation)

	_, _, err = svc.Submit(ctx, "respondent1", nil, nil)
	assert.ErrorIs(t, err, service.ErrValidation)
}

func TestSubmitAllInvalidStillSucceeds(t *testing.T) {
	store := newFakeStore()
	seedSurvey(t, store, "creator1")
	svc := service.NewResponseService(&fakeResponseRepo{store: store}, &fakeSurveyRepo{store: store})

	answers := []model.QuestionAnswer{
		{SurveyID: "nope", QuestionID: "nope", UserAnswer: model.ScalarAnswer("y")},
	}
	response, dropped, err := svc.Submit(context.Background(), "respondent1", nil, answers)
	require.NoError(t, err)
	assert.Equal(t, 1, dropped)
	assert.Empty(t, response.Answers)
}
