package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/bumbitzu/cheatsheet/internal/common"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type userResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

const msgInvalidCredentials = "invalid credentials"

func (s *Server) ping(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// login runs the configured strategy. Both failure reasons produce the same
// response so that callers cannot probe which usernames exist.
func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var in loginRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.authTimeout)
	defer cancel()

	out, err := s.strategy.Verify(ctx, in.Username, in.Password)
	if err != nil {
		s.logger.Error(r.Context(), "login aborted", "strategy", s.strategy.Name(), "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if !out.OK() {
		s.logger.Info(r.Context(), "login rejected", "strategy", s.strategy.Name(), "reason", string(out.Reason))
		writeError(w, http.StatusUnauthorized, msgInvalidCredentials)
		return
	}

	value, exp, err := s.signer.Sign(s.codec.Serialize(out.User))
	if err != nil {
		s.logger.Error(r.Context(), "cannot issue session cookie", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	s.setCookie(w, value, exp)

	writeJSON(w, http.StatusOK, userResponse{ID: out.User.ID, Username: out.User.UserName})
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	s.clearCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) me(w http.ResponseWriter, r *http.Request) {
	u := UserFromContext(r.Context())
	writeJSON(w, http.StatusOK, userResponse{ID: u.ID, Username: u.UserName})
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var in registerRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	u, err := s.registrar.Register(r.Context(), in.Username, in.Password)
	switch {
	case errors.Is(err, common.ErrorInvalidInput):
		writeError(w, http.StatusBadRequest, "username and password are required")
		return
	case errors.Is(err, common.ErrorAlreadyExists):
		writeError(w, http.StatusConflict, "username already taken")
		return
	case err != nil:
		s.logger.Error(r.Context(), "registration failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusCreated, userResponse{ID: u.ID, Username: u.UserName})
}

func (s *Server) setCookie(w http.ResponseWriter, value string, exp time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     common.SessionCookieName,
		Value:    value,
		Path:     "/",
		Expires:  exp,
		HttpOnly: true,
		Secure:   s.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *Server) clearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     common.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}
