package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/formdesk/formdesk-server/internal/api/http/middleware"
	"github.com/formdesk/formdesk-server/internal/logger"
	"github.com/formdesk/formdesk-server/internal/model"
)

// AuthService implements the backend-auth demo operations.
type AuthService interface {
	Signup(ctx context.Context, email, password string) (model.User, string, error)
	Login(ctx context.Context, email, password string) (model.User, string, error)
	EnsureProfile(ctx context.Context, userID uuid.UUID, fullName string) (model.Profile, error)
}

// Auth serves the backend-auth demo endpoints.
type Auth struct {
	service AuthService
	logger  *logger.Logger
}

// NewAuth creates an auth handler.
func NewAuth(service AuthService, logger *logger.Logger) *Auth {
	return &Auth{service: service, logger: logger}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	Token string `json:"token"`
	User  struct {
		ID    uuid.UUID `json:"id"`
		Email string    `json:"email"`
	} `json:"user"`
}

func sessionPayload(user model.User, token string) sessionResponse {
	resp := sessionResponse{Token: token}
	resp.User.ID = user.ID
	resp.User.Email = user.Email
	return resp
}

// Signup handles POST /api/auth/signup.
func (h *Auth) Signup(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	user, token, err := h.service.Signup(r.Context(), req.Email, req.Password)
	if errors.Is(err, model.ErrEmailTaken) {
		writeError(w, http.StatusConflict, "email already registered")
		return
	}
	if err != nil {
		h.logger.Error("failed to sign up user", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, sessionPayload(user, token))
}

// Login handles POST /api/auth/login.
func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, token, err := h.service.Login(r.Context(), req.Email, req.Password)
	if errors.Is(err, model.ErrInvalidCredentials) {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	if err != nil {
		h.logger.Error("failed to log in user", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, sessionPayload(user, token))
}

// EnsureProfile handles POST /api/profile/ensure. The authenticate
// middleware already resolved the session; the body is best-effort (an
// empty or malformed body upserts an empty full name).
func (h *Auth) EnsureProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req struct {
		FullName string `json:"full_name"`
	}
	_ = readJSON(r, &req)

	if _, err := h.service.EnsureProfile(r.Context(), user.ID, req.FullName); err != nil {
		h.logger.Error("failed to ensure profile", "error", err, "user_id", user.ID)
		writeError(w, http.StatusBadRequest, "failed to ensure profile")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
