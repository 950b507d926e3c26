package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/formdesk/formdesk-server/internal/logger"
	"github.com/formdesk/formdesk-server/internal/model"
)

// Auth implements the backend-auth demo: credential checks against the
// users table and profile upserts gated on a valid session token.
type Auth struct {
	userStore    model.UserStore
	profileStore model.ProfileStore
	tokenManager model.TokenManager
	logger       *logger.Logger
}

// NewAuth creates an auth service.
func NewAuth(
	userStore model.UserStore,
	profileStore model.ProfileStore,
	tokenManager model.TokenManager,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		userStore:    userStore,
		profileStore: profileStore,
		tokenManager: tokenManager,
		logger:       logger,
	}
}

// Signup registers a user and returns a session token.
func (s *Auth) Signup(ctx context.Context, email, password string) (model.User, string, error) {
	_, err := s.userStore.GetByEmail(ctx, email)
	if err == nil {
		return model.User{}, "", model.ErrEmailTaken
	}
	if !errors.Is(err, model.ErrNotFound) {
		return model.User{}, "", fmt.Errorf("failed to get user by email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return model.User{}, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.userStore.Create(ctx, model.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
	})
	if err != nil {
		return model.User{}, "", fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.tokenManager.GenerateSessionToken(user.ID)
	if err != nil {
		return model.User{}, "", fmt.Errorf("failed to generate session token: %w", err)
	}

	return user, token, nil
}

// Login checks credentials and returns a session token.
func (s *Auth) Login(ctx context.Context, email, password string) (model.User, string, error) {
	user, err := s.userStore.GetByEmail(ctx, email)
	if errors.Is(err, model.ErrNotFound) {
		return model.User{}, "", model.ErrInvalidCredentials
	}
	if err != nil {
		return model.User{}, "", fmt.Errorf("failed to get user by email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return model.User{}, "", model.ErrInvalidCredentials
	}

	token, err := s.tokenManager.GenerateSessionToken(user.ID)
	if err != nil {
		return model.User{}, "", fmt.Errorf("failed to generate session token: %w", err)
	}

	return user, token, nil
}

// CurrentUser resolves a session token to its user.
func (s *Auth) CurrentUser(ctx context.Context, tokenString string) (model.User, error) {
	userID, err := s.tokenManager.ParseSessionToken(tokenString)
	if err != nil {
		return model.User{}, model.ErrUnauthorized
	}

	user, err := s.userStore.GetByID(ctx, userID)
	if errors.Is(err, model.ErrNotFound) {
		return model.User{}, model.ErrUnauthorized
	}
	if err != nil {
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	return user, nil
}

// EnsureProfile upserts the profile row for the user. Repeated calls
// with the same user overwrite the full name without duplicating rows.
func (s *Auth) EnsureProfile(ctx context.Context, userID uuid.UUID, fullName string) (model.Profile, error) {
	profile, err := s.profileStore.Upsert(ctx, model.Profile{ID: userID, FullName: fullName})
	if err != nil {
		return model.Profile{}, fmt.Errorf("failed to upsert profile: %w", err)
	}
	return profile, nil
}
