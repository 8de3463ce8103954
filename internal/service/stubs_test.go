package service

import (
	"context"
	"fmt"
	"sync"

	"surveypulse/internal/model"
	"surveypulse/internal/repository"
)

// In-memory repositories mirroring the storage behavior the services rely
// on, including the unique-pair guarantee of the responses collection.

type memSurveyRepo struct {
	mu      sync.Mutex
	surveys []*model.Survey
	nextID  int
}

func newMemSurveyRepo() *memSurveyRepo {
	return &memSurveyRepo{}
}

func (r *memSurveyRepo) Create(ctx context.Context, survey *model.Survey) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	survey.ID = fmt.Sprintf("s%d", r.nextID)
	cp := *survey
	r.surveys = append(r.surveys, &cp)
	return survey.ID, nil
}

func (r *memSurveyRepo) GetByID(ctx context.Context, id string) (*model.Survey, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.surveys {
		if s.ID == id {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memSurveyRepo) List(ctx context.Context) ([]*model.Survey, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	// newest first
	out := make([]*model.Survey, 0, len(r.surveys))
	for i := len(r.surveys) - 1; i >= 0; i-- {
		cp := *r.surveys[i]
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memSurveyRepo) Update(ctx context.Context, survey *model.Survey) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, s := range r.surveys {
		if s.ID == survey.ID {
			cp := *survey
			r.surveys[i] = &cp
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *memSurveyRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, s := range r.surveys {
		if s.ID == id {
			r.surveys = append(r.surveys[:i], r.surveys[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

type memResponseRepo struct {
	mu        sync.Mutex
	responses []*model.Response
	pairs     map[string]bool
	nextID    int
}

func newMemResponseRepo() *memResponseRepo {
	return &memResponseRepo{pairs: make(map[string]bool)}
}

func (r *memResponseRepo) EnsureIndexes(ctx context.Context) error { return nil }

// Insert is atomic under the mutex, exactly like an InsertOne racing for a
// unique index: the pair check and the append cannot interleave.
func (r *memResponseRepo) Insert(ctx context.Context, response *model.Response) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := response.SurveyID + "|" + response.UserID
	if r.pairs[key] {
		return repository.ErrDuplicateKey
	}
	r.pairs[key] = true

	r.nextID++
	response.ID = fmt.Sprintf("r%d", r.nextID)
	cp := *response
	r.responses = append(r.responses, &cp)
	return nil
}

func (r *memResponseRepo) Exists(ctx context.Context, surveyID, userID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pairs[surveyID+"|"+userID], nil
}

func (r *memResponseRepo) ListBySurveyID(ctx context.Context, surveyID string) ([]*model.Response, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.Response
	for _, resp := range r.responses {
		if resp.SurveyID == surveyID {
			cp := *resp
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memResponseRepo) CountBySurveyID(ctx context.Context, surveyID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, resp := range r.responses {
		if resp.SurveyID == surveyID {
			n++
		}
	}
	return n, nil
}

func (r *memResponseRepo) DeleteBySurveyID(ctx context.Context, surveyID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var kept []*model.Response
	var deleted int64
	for _, resp := range r.responses {
		if resp.SurveyID == surveyID {
			deleted++
			delete(r.pairs, resp.SurveyID+"|"+resp.UserID)
			continue
		}
		kept = append(kept, resp)
	}
	r.responses = kept
	return deleted, nil
}

type memUserRepo struct {
	mu     sync.Mutex
	users  []*model.User
	nextID int
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{}
}

func (r *memUserRepo) EnsureIndexes(ctx context.Context) error { return nil }

func (r *memUserRepo) Create(ctx context.Context, user *model.User) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return "", repository.ErrDuplicateKey
		}
	}
	r.nextID++
	user.ID = fmt.Sprintf("u%d", r.nextID)
	cp := *user
	r.users = append(r.users, &cp)
	return user.ID, nil
}

func (r *memUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

type memRespondedCache struct {
	mu    sync.Mutex
	flags map[string]bool
}

func newMemRespondedCache() *memRespondedCache {
	return &memRespondedCache{flags: make(map[string]bool)}
}

func (c *memRespondedCache) Set(ctx context.Context, surveyID, userID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.flags[surveyID+"|"+userID] = true
	return nil
}

func (c *memRespondedCache) Has(ctx context.Context, surveyID, userID string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.flags[surveyID+"|"+userID], nil
}
