package auth

import "github.com/bumbitzu/cheatsheet/internal/server/models"

// Status discriminates an Outcome.
type Status int

const (
	StatusFailure Status = iota
	StatusSuccess
)

// Reason explains a failed verification.
type Reason string

const (
	ReasonUnknownUser Reason = "unknown-user"
	ReasonBadPassword Reason = "bad-password"
)

// Outcome is the result of a single verification attempt. It is never
// persisted. User is set only on success, Reason only on failure.
type Outcome struct {
	Status Status
	User   *models.User
	Reason Reason
}

func Success(u *models.User) Outcome {
	return Outcome{Status: StatusSuccess, User: u}
}

func Failure(r Reason) Outcome {
	return Outcome{Status: StatusFailure, Reason: r}
}

// OK reports whether the credentials were accepted.
func (o Outcome) OK() bool { return o.Status == StatusSuccess }

func (o Outcome) String() string {
	if o.OK() {
		return "success"
	}
	return "failure(" + string(o.Reason) + ")"
}
