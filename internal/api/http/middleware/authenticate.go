package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/formdesk/formdesk-server/internal/logger"
	"github.com/formdesk/formdesk-server/internal/model"
)

type userKey struct{}

// UserResolver resolves session tokens to users.
type UserResolver interface {
	CurrentUser(ctx context.Context, tokenString string) (model.User, error)
}

// Authenticate validates bearer tokens and injects the user into the
// request context.
type Authenticate struct {
	resolver UserResolver
	logger   *logger.Logger
}

// NewAuthenticate creates an Authenticate middleware instance.
func NewAuthenticate(resolver UserResolver, logger *logger.Logger) *Authenticate {
	return &Authenticate{resolver: resolver, logger: logger}
}

// Handle rejects requests without a valid session token.
func (m *Authenticate) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r.Header.Get("Authorization"))
		if token == "" {
			writeUnauthorized(w)
			return
		}

		user, err := m.resolver.CurrentUser(r.Context(), token)
		if err != nil {
			writeUnauthorized(w)
			return
		}

		ctx := context.WithValue(r.Context(), userKey{}, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserFromContext returns the authenticated user set by Handle.
func UserFromContext(ctx context.Context) (model.User, bool) {
	user, ok := ctx.Value(userKey{}).(model.User)
	return user, ok
}

func bearerToken(header string) string {
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}

func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"Unauthorized"}`))
}
