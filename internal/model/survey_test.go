package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"surveyhub/internal/model"
)

func TestQuestionByID(t *testing.T) {
	survey := &model.Survey{
		Questions: []model.Question{
			{ID: "q1", Text: "First"},
			{ID: "q2", Text: "Second"},
		},
	}

	q := survey.QuestionByID("q2")
	assert.NotNil(t, q)
	assert.Equal(t, "Second", q.Text)
	assert.Nil(t, survey.QuestionByID("q3"))
}

func TestQuestionKindValid(t *testing.T) {
	assert.True(t, model.QuestionKindSingleChoice.Valid())
	assert.True(t, model.QuestionKindMultiChoice.Valid())
	assert.True(t, model.QuestionKindFreeText.Valid())
	assert.False(t, model.QuestionKind("RANKING").Valid())
}

func TestDisplayName(t *testing.T) {
	u := &model.User{Username: "alice", Email: "a@b.com"}
	assert.Equal(t, "alice", u.DisplayName())

	u = &model.User{Email: "a@b.com"}
	assert.Equal(t, "a@b.com", u.DisplayName())

	u = &model.User{}
	assert.Equal(t, "", u.DisplayName())
}
