package auth

import (
	"context"
	"errors"

	"github.com/bumbitzu/cheatsheet/internal/common"
	"github.com/bumbitzu/cheatsheet/internal/logging"
	"github.com/bumbitzu/cheatsheet/internal/server/models"
)

// UserFinder is the read-only view of the user store the core consumes.
// Both methods return common.ErrorNotFound when no record matches; any other
// error is treated as an infrastructure fault.
type UserFinder interface {
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
}

// Strategy is the verification hook a host framework invokes once per login
// attempt.
type Strategy interface {
	Name() string
	Verify(ctx context.Context, username, password string) (Outcome, error)
}

// Verifier is the username/password Strategy.
type Verifier struct {
	users  UserFinder
	hasher PasswordHasher
	logger logging.Logger
}

var _ Strategy = (*Verifier)(nil)

func NewVerifier(users UserFinder, hasher PasswordHasher, logger logging.Logger) *Verifier {
	if logger == nil {
		logger = logging.Nop{}
	}
	return &Verifier{
		users:  users,
		hasher: hasher,
		logger: logger.With("module", "auth", "strategy", common.StrategyLocal),
	}
}

func (v *Verifier) Name() string { return common.StrategyLocal }

// Verify looks the user up by username and, only once a record is in hand,
// compares password against its stored hash.
//
// A returned error is always a *LookupError or *HashComparisonError; unknown
// users and wrong passwords come back as a failed Outcome with a nil error.
func (v *Verifier) Verify(ctx context.Context, username, password string) (Outcome, error) {
	user, err := v.users.FindByUsername(ctx, username)
	switch {
	case errors.Is(err, common.ErrorNotFound):
		user = nil
	case err != nil:
		v.logger.Error(ctx, "user lookup failed", "username", username, "error", err)
		return Outcome{}, &LookupError{Op: "find by username", Err: err}
	}
	if user == nil {
		v.logger.Debug(ctx, "login rejected", "username", username, "reason", ReasonUnknownUser)
		return Failure(ReasonUnknownUser), nil
	}

	match, err := v.hasher.Compare(ctx, password, user.PasswordHash)
	if err != nil {
		v.logger.Error(ctx, "password comparison failed", "user_id", user.ID, "error", err)
		return Outcome{}, &HashComparisonError{Err: err}
	}
	if !match {
		v.logger.Warn(ctx, "login rejected", "user_id", user.ID, "reason", ReasonBadPassword)
		return Failure(ReasonBadPassword), nil
	}

	v.logger.Info(ctx, "login accepted", "user_id", user.ID)
	return Success(user), nil
}
