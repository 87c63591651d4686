package service

import (
	"context"

	"surveyhub/internal/model"
	"surveyhub/internal/repository"
)

const unknownUser = "Unknown User"

// StatsService builds creator-scoped reports from stored responses
type StatsService struct {
	surveyRepo   repository.SurveyRepo
	responseRepo repository.ResponseRepo
	userRepo     repository.UserRepo
}

// NewStatsService creates a new stats service
func NewStatsService(
	surveyRepo repository.SurveyRepo,
	responseRepo repository.ResponseRepo,
	userRepo repository.UserRepo,
) *StatsService {
	return &StatsService{
		surveyRepo:   surveyRepo,
		responseRepo: responseRepo,
		userRepo:     userRepo,
	}
}

// BuildQuestionStats tallies, per question of the creator's surveys, which
// respondents gave which answer. Multi-choice answers fan out into one bucket
// per selected option. Respondent names keep response scan order; a
// respondent answering twice appears twice.
func (s *StatsService) BuildQuestionStats(ctx context.Context, creatorID string) (map[string]*model.QuestionStats, error) {
	owned, ownedIDs, err := s.ownedIndex(ctx, creatorID)
	if err != nil {
		return nil, err
	}

	stats := make(map[string]*model.QuestionStats)
	if len(ownedIDs) == 0 {
		return stats, nil
	}

	// Pre-filter only; a matched response can still hold answers to other
	// creators' surveys.
	responses, err := s.responseRepo.GetBySurveyIDs(ctx, ownedIDs)
	if err != nil {
		return nil, err
	}

	names, err := s.displayNames(ctx, responses)
	if err != nil {
		return nil, err
	}

	for _, resp := range responses {
		name := names[resp.UserID]
		if name == "" {
			name = unknownUser
		}

		for _, ans := range resp.Answers {
			survey := owned[ans.SurveyID]
			if survey == nil || !ownsSurvey(survey, creatorID) {
				continue
			}
			question := survey.QuestionByID(ans.QuestionID)
			if question == nil {
				continue
			}

			qs := stats[ans.QuestionID]
			if qs == nil {
				qs = &model.QuestionStats{
					QuestionText: question.Text,
					Answers:      map[string][]string{},
				}
				stats[ans.QuestionID] = qs
			}
			for _, key := range ans.UserAnswer.Keys() {
				qs.Answers[key] = append(qs.Answers[key], name)
			}
		}
	}
	return stats, nil
}

// ResponsesForCreator returns the per-respondent detail view: every stored
// response containing at least one answer to a survey owned by creatorID,
// with answers to other creators' surveys filtered out. Responses left with
// no answers are omitted entirely.
func (s *StatsService) ResponsesForCreator(ctx context.Context, creatorID string) ([]*model.RespondentDetail, error) {
	owned, ownedIDs, err := s.ownedIndex(ctx, creatorID)
	if err != nil {
		return nil, err
	}

	details := []*model.RespondentDetail{}
	if len(ownedIDs) == 0 {
		return details, nil
	}

	responses, err := s.responseRepo.GetBySurveyIDs(ctx, ownedIDs)
	if err != nil {
		return nil, err
	}

	users, err := s.usersByID(ctx, responses)
	if err != nil {
		return nil, err
	}

	for _, resp := range responses {
		kept := []model.AnswerDetail{}
		for _, ans := range resp.Answers {
			survey := owned[ans.SurveyID]
			if survey == nil || !ownsSurvey(survey, creatorID) {
				continue
			}
			questionText := ""
			if q := survey.QuestionByID(ans.QuestionID); q != nil {
				questionText = q.Text
			}
			kept = append(kept, model.AnswerDetail{
				SurveyTitle:  survey.Title,
				QuestionText: questionText,
				UserAnswer:   ans.UserAnswer,
				SurveyID:     ans.SurveyID,
				QuestionID:   ans.QuestionID,
			})
		}
		if len(kept) == 0 {
			continue
		}

		user := model.PublicUser{ID: resp.UserID}
		if u := users[resp.UserID]; u != nil {
			user = u.Public()
		}
		introResponses := resp.IntroResponses
		if introResponses == nil {
			introResponses = []model.IntroResponse{}
		}
		details = append(details, &model.RespondentDetail{
			User:           user,
			IntroResponses: introResponses,
			Responses:      kept,
			SubmittedAt:    resp.SubmittedAt,
		})
	}
	return details, nil
}

// ownedIndex resolves the creator's surveys into a lookup map plus id list.
func (s *StatsService) ownedIndex(ctx context.Context, creatorID string) (map[string]*model.Survey, []string, error) {
	owned, err := s.surveyRepo.GetByCreator(ctx, creatorID)
	if err != nil {
		return nil, nil, err
	}
	index := make(map[string]*model.Survey, len(owned))
	ids := make([]string, 0, len(owned))
	for _, sv := range owned {
		index[sv.ID] = sv
		ids = append(ids, sv.ID)
	}
	return index, ids, nil
}

func (s *StatsService) usersByID(ctx context.Context, responses []*model.Response) (map[string]*model.User, error) {
	ids := make([]string, 0, len(responses))
	seen := map[string]bool{}
	for _, resp := range responses {
		if !seen[resp.UserID] {
			seen[resp.UserID] = true
			ids = append(ids, resp.UserID)
		}
	}

	users, err := s.userRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	index := make(map[string]*model.User, len(users))
	for _, u := range users {
		index[u.ID] = u
	}
	return index, nil
}

func (s *StatsService) displayNames(ctx context.Context, responses []*model.Response) (map[string]string, error) {
	users, err := s.usersByID(ctx, responses)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(users))
	for id, u := range users {
		names[id] = u.DisplayName()
	}
	return names, nil
}
