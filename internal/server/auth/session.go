package auth

import (
	"context"
	"errors"

	"github.com/bumbitzu/cheatsheet/internal/common"
	"github.com/bumbitzu/cheatsheet/internal/server/models"
)

// SessionID is the persisted form of an authenticated session: the user's ID.
type SessionID string

// SessionCodec is the serialize/deserialize pair a host framework calls once
// per successful login and once per request needing identity resolution.
type SessionCodec interface {
	Serialize(user *models.User) SessionID
	Deserialize(ctx context.Context, id SessionID) (*models.User, error)
}

type SessionMapper struct {
	users UserFinder
}

var _ SessionCodec = (*SessionMapper)(nil)

func NewSessionMapper(users UserFinder) *SessionMapper {
	return &SessionMapper{users: users}
}

// Serialize returns the user's ID. It never fails.
func (m *SessionMapper) Serialize(user *models.User) SessionID {
	return SessionID(user.ID)
}

// Deserialize resolves id back into the full user record. A store fault is
// returned as *LookupError; an id whose user has since been deleted yields
// ErrSessionUserGone.
func (m *SessionMapper) Deserialize(ctx context.Context, id SessionID) (*models.User, error) {
	user, err := m.users.FindByID(ctx, string(id))
	switch {
	case errors.Is(err, common.ErrorNotFound):
		return nil, ErrSessionUserGone
	case err != nil:
		return nil, &LookupError{Op: "find by id", Err: err}
	}
	if user == nil {
		return nil, ErrSessionUserGone
	}
	return user, nil
}
