package auth

import (
	"context"

	"github.com/bumbitzu/cheatsheet/internal/common"
	"github.com/bumbitzu/cheatsheet/internal/server/models"
)

type fakeFinder struct {
	byUsernameFn func(ctx context.Context, username string) (*models.User, error)
	byIDFn       func(ctx context.Context, id string) (*models.User, error)
}

func (f *fakeFinder) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	if f.byUsernameFn != nil {
		return f.byUsernameFn(ctx, username)
	}
	return nil, common.ErrorNotFound
}

func (f *fakeFinder) FindByID(ctx context.Context, id string) (*models.User, error) {
	if f.byIDFn != nil {
		return f.byIDFn(ctx, id)
	}
	return nil, common.ErrorNotFound
}

// mapFinder serves a fixed set of users keyed by username.
type mapFinder map[string]*models.User

func (m mapFinder) FindByUsername(_ context.Context, username string) (*models.User, error) {
	if u, ok := m[username]; ok {
		return u, nil
	}
	return nil, common.ErrorNotFound
}

func (m mapFinder) FindByID(_ context.Context, id string) (*models.User, error) {
	for _, u := range m {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, common.ErrorNotFound
}

type fakeHasher struct {
	calls     int
	compareFn func(password, hash string) (bool, error)
}

func (h *fakeHasher) Hash(_ context.Context, password string) (string, error) {
	return "hashed:" + password, nil
}

func (h *fakeHasher) Compare(_ context.Context, password, hash string) (bool, error) {
	h.calls++
	if h.compareFn != nil {
		return h.compareFn(password, hash)
	}
	return hash == "hashed:"+password, nil
}
