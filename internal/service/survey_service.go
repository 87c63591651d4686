package service

import (
	"context"
	"fmt"
	"strings"

	"surveyhub/internal/cache"
	"surveyhub/internal/log"
	"surveyhub/internal/model"
	"surveyhub/internal/repository"
)

// SurveyService handles the survey catalog: creation, lookup, the public
// listing, owner-only mutation and the transactional cascade delete.
type SurveyService struct {
	surveyRepo   repository.SurveyRepo
	responseRepo repository.ResponseRepo
	userRepo     repository.UserRepo
	cache        cache.SurveyCache
	tx           repository.TxRunner
}

// NewSurveyService creates a new survey service. cache may be nil.
func NewSurveyService(
	surveyRepo repository.SurveyRepo,
	responseRepo repository.ResponseRepo,
	userRepo repository.UserRepo,
	surveyCache cache.SurveyCache,
	tx repository.TxRunner,
) *SurveyService {
	return &SurveyService{
		surveyRepo:   surveyRepo,
		responseRepo: responseRepo,
		userRepo:     userRepo,
		cache:        surveyCache,
		tx:           tx,
	}
}

// CreateSurveyInput carries the fields of a new survey.
type CreateSurveyInput struct {
	Title          string                `json:"title"`
	Description    string                `json:"description"`
	ImageURL       string                `json:"imageUrl"`
	IntroQuestions []model.IntroQuestion `json:"introQuestions"`
	Questions      []model.Question      `json:"questions"`
}

// SurveyPatch is a partial update: nil fields are left untouched, non-nil
// fields overwrite, including explicit clears to the zero value.
type SurveyPatch struct {
	Title          *string                `json:"title"`
	Description    *string                `json:"description"`
	ImageURL       *string                `json:"imageUrl"`
	IntroQuestions *[]model.IntroQuestion `json:"introQuestions"`
	Questions      *[]model.Question      `json:"questions"`
}

// Create validates and persists a new survey owned by creatorID.
func (s *SurveyService) Create(ctx context.Context, creatorID string, input *CreateSurveyInput) (*model.Survey, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if err := validateQuestions(input.Questions); err != nil {
		return nil, err
	}
	if err := validateIntroQuestions(input.IntroQuestions); err != nil {
		return nil, err
	}

	survey := &model.Survey{
		Title:          input.Title,
		Description:    input.Description,
		ImageURL:       input.ImageURL,
		IntroQuestions: input.IntroQuestions,
		Questions:      input.Questions,
		CreatedBy:      creatorID,
	}
	if _, err := s.surveyRepo.Create(ctx, survey); err != nil {
		return nil, err
	}
	s.invalidate(ctx, survey.ID)

	log.Infof("survey %s created by %s (%d questions)", survey.ID, creatorID, len(survey.Questions))
	return survey, nil
}

// GetByID returns a survey by id.
func (s *SurveyService) GetByID(ctx context.Context, id string) (*model.Survey, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetSurvey(ctx, id); err == nil && cached != nil {
			return cached, nil
		}
	}

	survey, err := s.surveyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if survey == nil {
		return nil, fmt.Errorf("%w: survey", ErrNotFound)
	}

	if s.cache != nil {
		if err := s.cache.SetSurvey(ctx, survey); err != nil {
			log.Debugf("survey cache set failed: %v", err)
		}
	}
	return survey, nil
}

// List returns every survey as a public summary, creators reduced to their
// public profile. Unknown creators are listed under the "Unknown" name.
func (s *SurveyService) List(ctx context.Context) ([]*model.SurveySummary, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetList(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	surveys, err := s.surveyRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	creatorIDs := make([]string, 0, len(surveys))
	seen := map[string]bool{}
	for _, sv := range surveys {
		if !seen[sv.CreatedBy] {
			seen[sv.CreatedBy] = true
			creatorIDs = append(creatorIDs, sv.CreatedBy)
		}
	}
	creators := map[string]model.PublicUser{}
	users, err := s.userRepo.GetByIDs(ctx, creatorIDs)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		creators[u.ID] = u.Public()
	}

	list := make([]*model.SurveySummary, 0, len(surveys))
	for _, sv := range surveys {
		creator, ok := creators[sv.CreatedBy]
		if !ok {
			creator = model.PublicUser{ID: sv.CreatedBy, Username: "Unknown"}
		}
		list = append(list, &model.SurveySummary{
			ID:             sv.ID,
			Title:          sv.Title,
			Description:    sv.Description,
			ImageURL:       sv.ImageURL,
			IntroQuestions: sv.IntroQuestions,
			Questions:      sv.Questions,
			CreatedBy:      creator,
			CreatedAt:      sv.CreatedAt,
		})
	}

	if s.cache != nil {
		if err := s.cache.SetList(ctx, list); err != nil {
			log.Debugf("survey list cache set failed: %v", err)
		}
	}
	return list, nil
}

// OwnedBy returns the surveys created by creatorID. This is the single
// scoping primitive shared by the catalog and the stats engine.
func (s *SurveyService) OwnedBy(ctx context.Context, creatorID string) ([]*model.Survey, error) {
	return s.surveyRepo.GetByCreator(ctx, creatorID)
}

// Update applies a partial update to a survey. Only the owner may update.
func (s *SurveyService) Update(ctx context.Context, id, callerID string, patch *SurveyPatch) (*model.Survey, error) {
	survey, err := s.surveyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if survey == nil {
		return nil, fmt.Errorf("%w: survey", ErrNotFound)
	}
	if !ownsSurvey(survey, callerID) {
		return nil, ErrForbidden
	}

	if patch.Title != nil {
		if strings.TrimSpace(*patch.Title) == "" {
			return nil, fmt.Errorf("%w: title is required", ErrValidation)
		}
		survey.Title = *patch.Title
	}
	if patch.Description != nil {
		survey.Description = *patch.Description
	}
	if patch.ImageURL != nil {
		survey.ImageURL = *patch.ImageURL
	}
	if patch.IntroQuestions != nil {
		if err := validateIntroQuestions(*patch.IntroQuestions); err != nil {
			return nil, err
		}
		survey.IntroQuestions = *patch.IntroQuestions
	}
	if patch.Questions != nil {
		if err := validateQuestions(*patch.Questions); err != nil {
			return nil, err
		}
		survey.Questions = *patch.Questions
	}

	if err := s.surveyRepo.Update(ctx, survey); err != nil {
		return nil, err
	}
	s.invalidate(ctx, id)
	return survey, nil
}

// Delete removes a survey and every response referencing it in one
// transaction. Only the owner may delete; any failure leaves both the survey
// and its responses untouched.
func (s *SurveyService) Delete(ctx context.Context, id, callerID string) error {
	var deleted int64
	err := s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		survey, err := s.surveyRepo.GetByID(txCtx, id)
		if err != nil {
			return err
		}
		if survey == nil {
			return fmt.Errorf("%w: survey", ErrNotFound)
		}
		if !ownsSurvey(survey, callerID) {
			return ErrForbidden
		}

		deleted, err = s.responseRepo.DeleteBySurveyID(txCtx, id)
		if err != nil {
			return err
		}
		return s.surveyRepo.Delete(txCtx, id)
	})
	if err != nil {
		return err
	}

	s.invalidate(ctx, id)
	log.Infof("survey %s deleted by %s, %d responses cascaded", id, callerID, deleted)
	return nil
}

func (s *SurveyService) invalidate(ctx context.Context, surveyID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, surveyID); err != nil {
		log.Debugf("survey cache invalidate failed: %v", err)
	}
}

// ownsSurvey is the ownership predicate used by update, delete and the stats
// engine alike.
func ownsSurvey(survey *model.Survey, userID string) bool {
	return survey.CreatedBy == userID
}

func validateQuestions(questions []model.Question) error {
	for i, q := range questions {
		if strings.TrimSpace(q.Text) == "" {
			return fmt.Errorf("%w: question %d has no text", ErrValidation, i)
		}
		if !q.Kind.Valid() {
			return fmt.Errorf("%w: question %d has unknown kind %q", ErrValidation, i, q.Kind)
		}
		if q.Kind != model.QuestionKindFreeText && len(q.Options) == 0 {
			return fmt.Errorf("%w: question %d needs at least one option", ErrValidation, i)
		}
	}
	return nil
}

func validateIntroQuestions(questions []model.IntroQuestion) error {
	for i, q := range questions {
		if strings.TrimSpace(q.Text) == "" {
			return fmt.Errorf("%w: intro question %d has no text", ErrValidation, i)
		}
		if !q.FieldType.Valid() {
			return fmt.Errorf("%w: intro question %d has unknown field type %q", ErrValidation, i, q.FieldType)
		}
		if q.FieldType == model.IntroFieldSelect && len(q.Options) == 0 {
			return fmt.Errorf("%w: intro question %d needs at least one option", ErrValidation, i)
		}
	}
	return nil
}
