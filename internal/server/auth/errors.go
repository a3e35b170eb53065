package auth

import (
	"errors"
	"fmt"

	"github.com/bumbitzu/cheatsheet/internal/common"
)

// ErrSessionUserGone is returned by SessionMapper.Deserialize when the
// session identifier no longer resolves to a user. It matches
// common.ErrorUnauthorized: the session must be treated as unauthenticated.
var ErrSessionUserGone = fmt.Errorf("session user no longer exists: %w", common.ErrorUnauthorized)

// LookupError reports an infrastructure fault while reaching the user store.
type LookupError struct {
	Op  string // "find by username" or "find by id"
	Err error
}

func (e *LookupError) Error() string {
	return "user lookup (" + e.Op + "): " + e.Err.Error()
}

func (e *LookupError) Unwrap() error { return e.Err }

func (e *LookupError) Is(target error) bool { return target == common.ErrorInternal }

// HashComparisonError reports a fault raised by the password comparison
// itself, as opposed to a plain mismatch.
type HashComparisonError struct {
	Err error
}

func (e *HashComparisonError) Error() string {
	return "password hash comparison: " + e.Err.Error()
}

func (e *HashComparisonError) Unwrap() error { return e.Err }

func (e *HashComparisonError) Is(target error) bool { return target == common.ErrorInternal }

// IsInfrastructure reports whether err is a LookupError or a
// HashComparisonError.
func IsInfrastructure(err error) bool {
	var le *LookupError
	var he *HashComparisonError
	return errors.As(err, &le) || errors.As(err, &he)
}
