package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"surveyhub/internal/model"
	"surveyhub/internal/service"
)

func newStatsService(store *fakeStore) *service.StatsService {
	return service.NewStatsService(
		&fakeSurveyRepo{store: store},
		&fakeResponseRepo{store: store},
		&fakeUserRepo{store: store},
	)
}

func submitAnswer(store *fakeStore, userID string, answers ...model.QuestionAnswer) {
	repo := &fakeResponseRepo{store: store}
	repo.Create(context.Background(), &model.Response{UserID: userID, Answers: answers})
}

func TestBuildQuestionStats(t *testing.T) {
	store := newFakeStore()
	r1 := store.addUser("r1", "r1@example.com")
	r2 := store.addUser("r2", "r2@example.com")
	survey := seedSurvey(t, store, "creator1")
	q := survey.Questions[0]

	submitAnswer(store, r1.ID, model.QuestionAnswer{SurveyID: survey.ID, QuestionID: q.ID, UserAnswer: model.ScalarAnswer("Yes")})
	submitAnswer(store, r2.ID, model.QuestionAnswer{SurveyID: survey.ID, QuestionID: q.ID, UserAnswer: model.ScalarAnswer("No")})

	stats, err := newStatsService(store).BuildQuestionStats(context.Background(), "creator1")
	require.NoError(t, err)

	require.Contains(t, stats, q.ID)
	assert.Equal(t, q.Text, stats[q.ID].QuestionText)
	assert.Equal(t, map[string][]string{
		"Yes": {"r1"},
		"No":  {"r2"},
	}, stats[q.ID].Answers)
}

func TestBuildQuestionStatsMultiSelectFanOut(t *testing.T) {
	store := newFakeStore()
	r1 := store.addUser("r1", "r1@example.com")
	survey := seedSurvey(t, store, "creator1")
	multi := survey.Questions[1]

	submitAnswer(store, r1.ID, model.QuestionAnswer{SurveyID: survey.ID, QuestionID: multi.ID, UserAnswer: model.MultiAnswer("A", "B")})

	stats, err := newStatsService(store).BuildQuestionStats(context.Background(), "creator1")
	require.NoError(t, err)

	require.Contains(t, stats, multi.ID)
	assert.Equal(t, []string{"r1"}, stats[multi.ID].Answers["A"])
	assert.Equal(t, []string{"r1"}, stats[multi.ID].Answers["B"])
	assert.NotContains(t, stats[multi.ID].Answers, "A,B")
}

func TestBuildQuestionStatsScoping(t *testing.T) {
	store := newFakeStore()
	r1 := store.addUser("r1", "r1@example.com")
	mine := seedSurvey(t, store, "creator1")
	theirs := seedSurvey(t, store, "creator2")

	// One submission mixing both creators' surveys: the pre-filter matches it,
	// the per-answer gate must still exclude the foreign half.
	submitAnswer(store, r1.ID,
		model.QuestionAnswer{SurveyID: mine.ID, QuestionID: mine.Questions[0].ID, UserAnswer: model.ScalarAnswer("Yes")},
		model.QuestionAnswer{SurveyID: theirs.ID, QuestionID: theirs.Questions[0].ID, UserAnswer: model.ScalarAnswer("No")},
	)

	stats, err := newStatsService(store).BuildQuestionStats(context.Background(), "creator1")
	require.NoError(t, err)

	assert.Contains(t, stats, mine.Questions[0].ID)
	assert.NotContains(t, stats, theirs.Questions[0].ID)
}

func TestBuildQuestionStatsDisplayNames(t *testing.T) {
	store := newFakeStore()
	emailOnly := store.addUser("", "anon@example.com")
	survey := seedSurvey(t, store, "creator1")
	q := survey.Questions[0]

	submitAnswer(store, emailOnly.ID, model.QuestionAnswer{SurveyID: survey.ID, QuestionID: q.ID, UserAnswer: model.ScalarAnswer("Yes")})
	submitAnswer(store, "vanished", model.QuestionAnswer{SurveyID: survey.ID, QuestionID: q.ID, UserAnswer: model.ScalarAnswer("Yes")})

	stats, err := newStatsService(store).BuildQuestionStats(context.Background(), "creator1")
	require.NoError(t, err)

	assert.Equal(t, []string{"anon@example.com", "Unknown User"}, stats[q.ID].Answers["Yes"])
}

func TestBuildQuestionStatsDuplicates(t *testing.T) {
	store := newFakeStore()
	r1 := store.addUser("r1", "r1@example.com")
	survey := seedSurvey(t, store, "creator1")
	q := survey.Questions[0]

	submitAnswer(store, r1.ID, model.QuestionAnswer{SurveyID: survey.ID, QuestionID: q.ID, UserAnswer: model.ScalarAnswer("Yes")})
	submitAnswer(store, r1.ID, model.QuestionAnswer{SurveyID: survey.ID, QuestionID: q.ID, UserAnswer: model.ScalarAnswer("Yes")})

	stats, err := newStatsService(store).BuildQuestionStats(context.Background(), "creator1")
	require.NoError(t, err)

	assert.Equal(t, []string{"r1", "r1"}, stats[q.ID].Answers["Yes"])
}

func TestBuildQuestionStatsNoSurveys(t *testing.T) {
	store := newFakeStore()
	stats, err := newStatsService(store).BuildQuestionStats(context.Background(), "creator1")
	require.NoError(t, err)
	assert.Empty(t, stats)
}

func TestResponsesForCreator(t *testing.T) {
	store := newFakeStore()
	r1 := store.addUser("r1", "r1@example.com")
	r2 := store.addUser("r2", "r2@example.com")
	mine := seedSurvey(t, store, "creator1")
	theirs := seedSurvey(t, store, "creator2")

	repo := &fakeResponseRepo{store: store}
	repo.Create(context.Background(), &model.Response{
		UserID: r1.ID,
		IntroResponses: []model.IntroResponse{
			{QuestionText: "Your age", FieldType: model.IntroFieldNumber, Answer: model.ScalarAnswer("34")},
		},
		Answers: []model.QuestionAnswer{
			{SurveyID: mine.ID, QuestionID: mine.Questions[0].ID, UserAnswer: model.ScalarAnswer("Yes")},
			{SurveyID: theirs.ID, QuestionID: theirs.Questions[0].ID, UserAnswer: model.ScalarAnswer("No")},
		},
	})
	// r2 only answered the other creator's survey; their record is omitted.
	repo.Create(context.Background(), &model.Response{
		UserID: r2.ID,
		Answers: []model.QuestionAnswer{
			{SurveyID: theirs.ID, QuestionID: theirs.Questions[0].ID, UserAnswer: model.ScalarAnswer("No")},
		},
	})

	details, err := newStatsService(store).ResponsesForCreator(context.Background(), "creator1")
	require.NoError(t, err)

	require.Len(t, details, 1)
	detail := details[0]
	assert.Equal(t, r1.ID, detail.User.ID)
	assert.Equal(t, "r1", detail.User.Username)
	require.Len(t, detail.Responses, 1)
	assert.Equal(t, mine.Title, detail.Responses[0].SurveyTitle)
	assert.Equal(t, mine.Questions[0].Text, detail.Responses[0].QuestionText)
	assert.Equal(t, mine.ID, detail.Responses[0].SurveyID)
	require.Len(t, detail.IntroResponses, 1)
	assert.False(t, detail.SubmittedAt.IsZero())
}

func TestResponsesForCreatorUnknownQuestion(t *testing.T) {
	store := newFakeStore()
	r1 := store.addUser("r1", "r1@example.com")
	mine := seedSurvey(t, store, "creator1")

	submitAnswer(store, r1.ID, model.QuestionAnswer{SurveyID: mine.ID, QuestionID: "removed-question", UserAnswer: model.ScalarAnswer("Yes")})

	details, err := newStatsService(store).ResponsesForCreator(context.Background(), "creator1")
	require.NoError(t, err)

	// The detail view keeps answers to questions that no longer resolve,
	// with an empty question text.
	require.Len(t, details, 1)
	require.Len(t, details[0].Responses, 1)
	assert.Equal(t, "", details[0].Responses[0].QuestionText)
}
