package models

import "time"

// User is a registered principal. Records are written by services.UserService
// and only read by the authentication core.
type User struct {
	ID           string
	UserName     string
	PasswordHash string
	CreatedAt    time.Time
}
