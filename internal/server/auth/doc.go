// Package auth implements the two pieces of the login subsystem that a host
// framework plugs into:
//
//   - Verifier checks a username/password pair against the user store and
//     reports a discriminated Outcome. Unknown users and wrong passwords are
//     outcomes, not errors; store and hashing faults are errors.
//   - SessionMapper turns an authenticated user into a SessionID for the
//     host to persist and resolves that SessionID back into a user on later
//     requests.
//
// Both are constructed explicitly and handed to the host; nothing in this
// package registers itself globally. Neither holds mutable state, so a single
// instance may serve concurrent requests.
package auth
