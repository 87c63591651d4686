package service

import (
	"context"
	"fmt"

	"surveyhub/internal/log"
	"surveyhub/internal/model"
	"surveyhub/internal/repository"
)

// ResponseService validates and persists survey submissions
type ResponseService struct {
	responseRepo repository.ResponseRepo
	surveyRepo   repository.SurveyRepo
}

// NewResponseService creates a new response service
func NewResponseService(responseRepo repository.ResponseRepo, surveyRepo repository.SurveyRepo) *ResponseService {
	return &ResponseService{
		responseRepo: responseRepo,
		surveyRepo:   surveyRepo,
	}
}

// Submit stores a submission for respondentID. Answers whose survey or
// question cannot be resolved are dropped, not rejected: the submission
// succeeds with whatever validates. The dropped count is returned for
// observability; the stored record only ever holds verified entries.
func (s *ResponseService) Submit(
	ctx context.Context,
	respondentID string,
	intro []model.IntroResponse,
	answers []model.QuestionAnswer,
) (*model.Response, int, error) {
	if respondentID == "" {
		return nil, 0, fmt.Errorf("%w: missing respondent", ErrValidation)
	}
	if answers == nil {
		return nil, 0, fmt.Errorf("%w: missing responses", ErrValidation)
	}

	surveys, err := s.loadReferencedSurveys(ctx, answers)
	if err != nil {
		return nil, 0, err
	}

	kept := make([]model.QuestionAnswer, 0, len(answers))
	for _, ans := range answers {
		survey := surveys[ans.SurveyID]
		if survey == nil || survey.QuestionByID(ans.QuestionID) == nil {
			continue
		}
		kept = append(kept, ans)
	}
	dropped := len(answers) - len(kept)
	if dropped > 0 {
		log.Warnf("submission by %s: dropped %d of %d answers referencing unknown surveys or questions",
			respondentID, dropped, len(answers))
	}

	introKept := make([]model.IntroResponse, 0, len(intro))
	for _, ir := range intro {
		if ir.QuestionText == "" || ir.Answer.IsZero() {
			continue
		}
		introKept = append(introKept, ir)
	}

	response := &model.Response{
		UserID:         respondentID,
		IntroResponses: introKept,
		Answers:        kept,
	}
	if _, err := s.responseRepo.Create(ctx, response); err != nil {
		return nil, 0, err
	}
	return response, dropped, nil
}

func (s *ResponseService) loadReferencedSurveys(ctx context.Context, answers []model.QuestionAnswer) (map[string]*model.Survey, error) {
	ids := make([]string, 0, len(answers))
	seen := map[string]bool{}
	for _, ans := range answers {
		if !seen[ans.SurveyID] {
			seen[ans.SurveyID] = true
			ids = append(ids, ans.SurveyID)
		}
	}

	surveys, err := s.surveyRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	index := make(map[string]*model.Survey, len(surveys))
	for _, sv := range surveys {
		index[sv.ID] = sv
	}
	return index, nil
}
