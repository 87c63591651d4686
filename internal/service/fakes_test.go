package service_test

import (
	"context"
	"fmt"
	"time"

	"surveyhub/internal/model"
)

var fakeNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// fakeStore backs the in-memory repositories used across the service tests.
// Slices keep insertion order so report ordering is deterministic.
type fakeStore struct {
	surveys   []*model.Survey
	responses []*model.Response
	users     []*model.User
	seq       int
}

func newFakeStore() *fakeStore {
	return &fakeStore{}
}

func (s *fakeStore) nextID(prefix string) string {
	s.seq++
	return fmt.Sprintf("%s%d", prefix, s.seq)
}

func (s *fakeStore) addUser(username, email string) *model.User {
	u := &model.User{ID: s.nextID("u"), Username: username, Email: email}
	s.users = append(s.users, u)
	return u
}

type fakeSurveyRepo struct {
	store *fakeStore
}

func (r *fakeSurveyRepo) Create(ctx context.Context, survey *model.Survey) (string, error) {
	survey.ID = r.store.nextID("s")
	for i := range survey.Questions {
		if survey.Questions[i].ID == "" {
			survey.Questions[i].ID = r.store.nextID("q")
		}
	}
	r.store.surveys = append(r.store.surveys, survey)
	return survey.ID, nil
}

func (r *fakeSurveyRepo) GetByID(ctx context.Context, id string) (*model.Survey, error) {
	for _, sv := range r.store.surveys {
		if sv.ID == id {
			return sv, nil
		}
	}
	return nil, nil
}

func (r *fakeSurveyRepo) GetByIDs(ctx context.Context, ids []string) ([]*model.Survey, error) {
	want := map[string]bool{}
	for _, id := range ids {
		want[id] = true
	}
	var out []*model.Survey
	for _, sv := range r.store.surveys {
		if want[sv.ID] {
			out = append(out, sv)
		}
	}
	return out, nil
}

func (r *fakeSurveyRepo) GetAll(ctx context.Context) ([]*model.Survey, error) {
	return append([]*model.Survey(nil), r.store.surveys...), nil
}

func (r *fakeSurveyRepo) GetByCreator(ctx context.Context, creatorID string) ([]*model.Survey, error) {
	var out []*model.Survey
	for _, sv := range r.store.surveys {
		if sv.CreatedBy == creatorID {
			out = append(out, sv)
		}
	}
	return out, nil
}

func (r *fakeSurveyRepo) Update(ctx context.Context, survey *model.Survey) error {
	for i := range survey.Questions {
		if survey.Questions[i].ID == "" {
			survey.Questions[i].ID = r.store.nextID("q")
		}
	}
	for i, sv := range r.store.surveys {
		if sv.ID == survey.ID {
			r.store.surveys[i] = survey
			return nil
		}
	}
	return nil
}

func (r *fakeSurveyRepo) Delete(ctx context.Context, id string) error {
	kept := r.store.surveys[:0]
	for _, sv := range r.store.surveys {
		if sv.ID != id {
			kept = append(kept, sv)
		}
	}
	r.store.surveys = kept
	return nil
}

type fakeResponseRepo struct {
	store      *fakeStore
	failDelete error // injected failure for rollback tests
}

func (r *fakeResponseRepo) Create(ctx context.Context, response *model.Response) (string, error) {
	if response.SubmittedAt.IsZero() {
		response.SubmittedAt = fakeNow
	}
	response.ID = r.store.nextID("r")
	r.store.responses = append(r.store.responses, response)
	return response.ID, nil
}

func (r *fakeResponseRepo) GetByID(ctx context.Context, id string) (*model.Response, error) {
	for _, resp := range r.store.responses {
		if resp.ID == id {
			return resp, nil
		}
	}
	return nil, nil
}

func (r *fakeResponseRepo) GetBySurveyIDs(ctx context.Context, surveyIDs []string) ([]*model.Response, error) {
	want := map[string]bool{}
	for _, id := range surveyIDs {
		want[id] = true
	}
	var out []*model.Response
	for _, resp := range r.store.responses {
		for _, ans := range resp.Answers {
			if want[ans.SurveyID] {
				out = append(out, resp)
				break
			}
		}
	}
	return out, nil
}

func (r *fakeResponseRepo) DeleteBySurveyID(ctx context.Context, surveyID string) (int64, error) {
	if r.failDelete != nil {
		return 0, r.failDelete
	}
	var deleted int64
	kept := r.store.responses[:0]
	for _, resp := range r.store.responses {
		references := false
		for _, ans := range resp.Answers {
			if ans.SurveyID == surveyID {
				references = true
				break
			}
		}
		if references {
			deleted++
		} else {
			kept = append(kept, resp)
		}
	}
	r.store.responses = kept
	return deleted, nil
}

type fakeUserRepo struct {
	store *fakeStore
}

func (r *fakeUserRepo) Create(ctx context.Context, user *model.User) (string, error) {
	user.ID = r.store.nextID("u")
	r.store.users = append(r.store.users, user)
	return user.ID, nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	for _, u := range r.store.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByIDs(ctx context.Context, ids []string) ([]*model.User, error) {
	want := map[string]bool{}
	for _, id := range ids {
		want[id] = true
	}
	var out []*model.User
	for _, u := range r.store.users {
		if want[u.ID] {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	for _, u := range r.store.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

// fakeTxRunner snapshots the store before running fn and restores it when fn
// fails, mirroring transaction rollback.
type fakeTxRunner struct {
	store *fakeStore
}

func (r *fakeTxRunner) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	snapSurveys := append([]*model.Survey(nil), r.store.surveys...)
	snapResponses := append([]*model.Response(nil), r.store.responses...)
	if err := fn(ctx); err != nil {
		r.store.surveys = snapSurveys
		r.store.responses = snapResponses
		return err
	}
	return nil
}
