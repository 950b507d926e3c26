package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/formdesk/formdesk-server/internal/api/http/handler"
	"github.com/formdesk/formdesk-server/internal/api/http/middleware"
	"github.com/formdesk/formdesk-server/internal/mocks"
	"github.com/formdesk/formdesk-server/internal/model"
	"github.com/formdesk/formdesk-server/internal/service"
	"github.com/formdesk/formdesk-server/internal/testutil"
)

type authFixture struct {
	users    *mocks.UserStore
	profiles *mocks.ProfileStore
	tokens   *mocks.TokenManager
	service  *service.Auth
	handler  *handler.Auth
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	users := mocks.NewUserStore(t)
	profiles := mocks.NewProfileStore(t)
	tokens := mocks.NewTokenManager(t)
	svc := service.NewAuth(users, profiles, tokens, testutil.MakeNoopLogger())

	return &authFixture{
		users:    users,
		profiles: profiles,
		tokens:   tokens,
		service:  svc,
		handler:  handler.NewAuth(svc, testutil.MakeNoopLogger()),
	}
}

func TestAuth_Signup(t *testing.T) {
	t.Parallel()

	t.Run("creates user and returns token", func(t *testing.T) {
		t.Parallel()

		f := newAuthFixture(t)
		userID := uuid.New()

		f.users.On("GetByEmail", mock.Anything, "new@x.com").Return(model.User{}, model.ErrNotFound)
		f.users.On("Create", mock.Anything, mock.MatchedBy(func(u model.User) bool {
			return u.Email == "new@x.com" && bcrypt.CompareHashAndPassword(u.PasswordHash, []byte("hunter22")) == nil
		})).Return(model.User{ID: userID, Email: "new@x.com"}, nil)
		f.tokens.On("GenerateSessionToken", userID).Return("a.jwt.token", nil)

		req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", strings.NewReader(`{"email":"new@x.com","password":"hunter22"}`))
		rec := httptest.NewRecorder()

		f.handler.Signup(rec, req)

		res := rec.Result()
		defer res.Body.Close()

		require.Equal(t, http.StatusCreated, res.StatusCode)

		var payload struct {
			Token string `json:"token"`
			User  struct {
				ID    uuid.UUID `json:"id"`
				Email string    `json:"email"`
			} `json:"user"`
		}
		require.NoError(t, json.NewDecoder(res.Body).Decode(&payload))
		assert.Equal(t, "a.jwt.token", payload.Token)
		assert.Equal(t, userID, payload.User.ID)
		assert.Equal(t, "new@x.com", payload.User.Email)
	})

	t.Run("email already registered", func(t *testing.T) {
		t.Parallel()

		f := newAuthFixture(t)
		f.users.On("GetByEmail", mock.Anything, "taken@x.com").Return(model.User{ID: uuid.New(), Email: "taken@x.com"}, nil)

		req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", strings.NewReader(`{"email":"taken@x.com","password":"hunter22"}`))
		rec := httptest.NewRecorder()

		f.handler.Signup(rec, req)

		res := rec.Result()
		defer res.Body.Close()

		require.Equal(t, http.StatusConflict, res.StatusCode)
		f.users.AssertNotCalled(t, "Create")
	})

	t.Run("missing credentials", func(t *testing.T) {
		t.Parallel()

		f := newAuthFixture(t)

		req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", strings.NewReader(`{"email":"","password":""}`))
		rec := httptest.NewRecorder()

		f.handler.Signup(rec, req)

		res := rec.Result()
		defer res.Body.Close()

		require.Equal(t, http.StatusBadRequest, res.StatusCode)
		f.users.AssertNotCalled(t, "GetByEmail")
	})
}

func TestAuth_Login(t *testing.T) {
	t.Parallel()

	t.Run("valid credentials", func(t *testing.T) {
		t.Parallel()

		f := newAuthFixture(t)
		userID := uuid.New()
		hash, err := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.DefaultCost)
		require.NoError(t, err)

		f.users.On("GetByEmail", mock.Anything, "user@x.com").Return(model.User{ID: userID, Email: "user@x.com", PasswordHash: hash}, nil)
		f.tokens.On("GenerateSessionToken", userID).Return("a.jwt.token", nil)

		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"email":"user@x.com","password":"hunter22"}`))
		rec := httptest.NewRecorder()

		f.handler.Login(rec, req)

		res := rec.Result()
		defer res.Body.Close()

		require.Equal(t, http.StatusOK, res.StatusCode)

		var payload map[string]any
		require.NoError(t, json.NewDecoder(res.Body).Decode(&payload))
		assert.Equal(t, "a.jwt.token", payload["token"])
	})

	t.Run("wrong password", func(t *testing.T) {
		t.Parallel()

		f := newAuthFixture(t)
		hash, err := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.DefaultCost)
		require.NoError(t, err)

		f.users.On("GetByEmail", mock.Anything, "user@x.com").Return(model.User{ID: uuid.New(), PasswordHash: hash}, nil)

		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"email":"user@x.com","password":"wrong"}`))
		rec := httptest.NewRecorder()

		f.handler.Login(rec, req)

		res := rec.Result()
		defer res.Body.Close()

		require.Equal(t, http.StatusUnauthorized, res.StatusCode)

		var payload map[string]string
		require.NoError(t, json.NewDecoder(res.Body).Decode(&payload))
		assert.Equal(t, "invalid credentials", payload["error"])
	})

	t.Run("unknown email", func(t *testing.T) {
		t.Parallel()

		f := newAuthFixture(t)
		f.users.On("GetByEmail", mock.Anything, "ghost@x.com").Return(model.User{}, model.ErrNotFound)

		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"email":"ghost@x.com","password":"hunter22"}`))
		rec := httptest.NewRecorder()

		f.handler.Login(rec, req)

		res := rec.Result()
		defer res.Body.Close()

		require.Equal(t, http.StatusUnauthorized, res.StatusCode)
	})
}

func TestAuth_EnsureProfile(t *testing.T) {
	t.Parallel()

	ensureRoute := func(f *authFixture) http.Handler {
		authenticate := middleware.NewAuthenticate(f.service, testutil.MakeNoopLogger())
		return authenticate.Handle(http.HandlerFunc(f.handler.EnsureProfile))
	}

	t.Run("upserts profile for bearer token", func(t *testing.T) {
		t.Parallel()

		f := newAuthFixture(t)
		userID := uuid.New()

		f.tokens.On("ParseSessionToken", "a.jwt.token").Return(userID, nil)
		f.users.On("GetByID", mock.Anything, userID).Return(model.User{ID: userID, Email: "user@x.com"}, nil)
		f.profiles.On("Upsert", mock.Anything, model.Profile{ID: userID, FullName: "Ada Lovelace"}).
			Return(model.Profile{ID: userID, FullName: "Ada Lovelace"}, nil)

		req := httptest.NewRequest(http.MethodPost, "/api/profile/ensure", strings.NewReader(`{"full_name":"Ada Lovelace"}`))
		req.Header.Set("Authorization", "Bearer a.jwt.token")
		rec := httptest.NewRecorder()

		ensureRoute(f).ServeHTTP(rec, req)

		res := rec.Result()
		defer res.Body.Close()

		require.Equal(t, http.StatusOK, res.StatusCode)

		var payload map[string]bool
		require.NoError(t, json.NewDecoder(res.Body).Decode(&payload))
		assert.True(t, payload["ok"])
	})

	t.Run("empty body upserts empty name", func(t *testing.T) {
		t.Parallel()

		f := newAuthFixture(t)
		userID := uuid.New()

		f.tokens.On("ParseSessionToken", "a.jwt.token").Return(userID, nil)
		f.users.On("GetByID", mock.Anything, userID).Return(model.User{ID: userID}, nil)
		f.profiles.On("Upsert", mock.Anything, model.Profile{ID: userID}).Return(model.Profile{ID: userID}, nil)

		req := httptest.NewRequest(http.MethodPost, "/api/profile/ensure", nil)
		req.Header.Set("Authorization", "Bearer a.jwt.token")
		rec := httptest.NewRecorder()

		ensureRoute(f).ServeHTTP(rec, req)

		res := rec.Result()
		defer res.Body.Close()

		require.Equal(t, http.StatusOK, res.StatusCode)
	})

	t.Run("missing token", func(t *testing.T) {
		t.Parallel()

		f := newAuthFixture(t)

		req := httptest.NewRequest(http.MethodPost, "/api/profile/ensure", nil)
		rec := httptest.NewRecorder()

		ensureRoute(f).ServeHTTP(rec, req)

		res := rec.Result()
		defer res.Body.Close()

		require.Equal(t, http.StatusUnauthorized, res.StatusCode)

		var payload map[string]string
		require.NoError(t, json.NewDecoder(res.Body).Decode(&payload))
		assert.Equal(t, "Unauthorized", payload["error"])
		f.profiles.AssertNotCalled(t, "Upsert")
	})

	t.Run("bad token", func(t *testing.T) {
		t.Parallel()

		f := newAuthFixture(t)
		f.tokens.On("ParseSessionToken", "garbage").Return(uuid.Nil, model.ErrUnauthorized)

		req := httptest.NewRequest(http.MethodPost, "/api/profile/ensure", nil)
		req.Header.Set("Authorization", "Bearer garbage")
		rec := httptest.NewRecorder()

		ensureRoute(f).ServeHTTP(rec, req)

		res := rec.Result()
		defer res.Body.Close()

		require.Equal(t, http.StatusUnauthorized, res.StatusCode)
		f.profiles.AssertNotCalled(t, "Upsert")
	})
}
