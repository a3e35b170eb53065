// Package services contains server-side business logic that sits between the
// HTTP host and the repositories.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/bumbitzu/cheatsheet/internal/common"
	"github.com/bumbitzu/cheatsheet/internal/dbx"
	"github.com/bumbitzu/cheatsheet/internal/server/auth"
	"github.com/bumbitzu/cheatsheet/internal/server/models"
	"github.com/bumbitzu/cheatsheet/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// UserService registers accounts. It is the only writer of user records;
// the authentication core reads them through users.Finder.
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      auth.PasswordHasher
	newID       func() string
}

// NewUserService wires a UserService. db may be nil when m is backed by
// memory, in which case registration runs without a transaction.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, hasher auth.PasswordHasher) *UserService {
	return &UserService{
		db:          db,
		repomanager: m,
		hasher:      hasher,
		newID:       uuid.NewString,
	}
}

// Register hashes password and stores a new user under username.
// An existing username yields common.ErrorAlreadyExists.
func (s *UserService) Register(ctx context.Context, username, password string) (*models.User, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return nil, fmt.Errorf("username and password are required: %w", common.ErrorInvalidInput)
	}

	hash, err := s.hasher.Hash(ctx, password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{ID: s.newID(), UserName: username, PasswordHash: hash}

	create := func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		_, err := repo.GetUserByLogin(ctx, username)
		switch {
		case err == nil:
			return common.ErrorAlreadyExists
		case !errors.Is(err, common.ErrorNotFound):
			return fmt.Errorf("error checking username: %w", err)
		}

		user, err = repo.Create(ctx, user)
		if err != nil {
			if errors.Is(err, common.ErrorAlreadyExists) {
				return err
			}
			return fmt.Errorf("error creating user: %w", err)
		}
		return nil
	}

	if s.db == nil {
		err = create(ctx, nil)
	} else {
		err = dbx.WithTx(ctx, s.db, nil, create)
	}
	if err != nil {
		return nil, err
	}

	return user, nil
}
