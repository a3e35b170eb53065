package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/bumbitzu/cheatsheet/internal/common"
	"github.com/bumbitzu/cheatsheet/internal/server/models"
)

type ctxKey string

const userKey ctxKey = "user"

// UserFromContext returns the user resolved by the session middleware, or
// nil when the request is unauthenticated.
func UserFromContext(ctx context.Context) *models.User {
	u, _ := ctx.Value(userKey).(*models.User)
	return u
}

// session resolves the cookie into a user for every request. It never
// rejects a request: failures leave the request unauthenticated.
func (s *Server) session(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := r.Cookie(common.SessionCookieName)
		if err != nil || c.Value == "" {
			next.ServeHTTP(w, r)
			return
		}

		sid, err := s.signer.Parse(c.Value)
		if err != nil {
			s.logger.Debug(r.Context(), "discarding session cookie", "error", err)
			s.clearCookie(w)
			next.ServeHTTP(w, r)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), s.authTimeout)
		user, err := s.codec.Deserialize(ctx, sid)
		cancel()

		switch {
		case errors.Is(err, common.ErrorUnauthorized):
			s.logger.Info(r.Context(), "session user no longer exists", "sid", string(sid))
			s.clearCookie(w)
		case err != nil:
			s.logger.Error(r.Context(), "session lookup failed", "sid", string(sid), "error", err)
		default:
			r = r.WithContext(context.WithValue(r.Context(), userKey, user))
		}

		next.ServeHTTP(w, r)
	})
}

// requireUser answers 401 for requests the session middleware left
// unauthenticated.
func requireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if UserFromContext(r.Context()) == nil {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
