package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/formdesk/formdesk-server/internal/logger"
	"github.com/formdesk/formdesk-server/internal/model"
)

// SessionCookieName is the cookie carrying the opaque session id for
// the cookie login demo.
const SessionCookieName = "session"

// SessionService resolves cookie sessions.
type SessionService interface {
	Login(ctx context.Context, username string) (string, error)
	Resolve(ctx context.Context, sessionID string) (string, error)
	Logout(ctx context.Context, sessionID string) error
}

// Session serves the cookie login demo endpoints.
type Session struct {
	service SessionService
	logger  *logger.Logger
}

// NewSession creates a session handler.
func NewSession(service SessionService, logger *logger.Logger) *Session {
	return &Session{service: service, logger: logger}
}

// Login handles POST /api/login: creates a session and sets its id as
// a cookie. The cookie never carries the username itself.
func (h *Session) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sessionID, err := h.service.Login(r.Context(), req.Username)
	if err != nil {
		h.logger.Error("failed to create session", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, map[string]string{"message": fmt.Sprintf("Logged in as %s", req.Username)})
}

// Logout handles POST /api/logout: drops the session and clears the
// cookie. Requests without a session cookie succeed too.
func (h *Session) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		if err := h.service.Logout(r.Context(), cookie.Value); err != nil {
			h.logger.Error("failed to delete session", "error", err)
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}

// Profile handles GET /api/profile: greets the logged-in user or
// reports unauthenticated.
func (h *Session) Profile(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Not logged in"})
		return
	}

	username, err := h.service.Resolve(r.Context(), cookie.Value)
	if errors.Is(err, model.ErrUnauthorized) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Not logged in"})
		return
	}
	if err != nil {
		h.logger.Error("failed to resolve session", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": fmt.Sprintf("Welcome back, %s!", username)})
}
