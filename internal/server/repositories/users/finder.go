package users

import (
	"context"

	"github.com/bumbitzu/cheatsheet/internal/server/models"
)

// Finder exposes a Repository through the lookup methods the
// authentication core depends on.
type Finder struct {
	Repo Repository
}

func NewFinder(repo Repository) *Finder {
	return &Finder{Repo: repo}
}

func (f *Finder) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return f.Repo.GetUserByLogin(ctx, username)
}

func (f *Finder) FindByID(ctx context.Context, id string) (*models.User, error) {
	return f.Repo.GetUserByID(ctx, id)
}
