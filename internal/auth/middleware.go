package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/apython1998/ultistats/internal/models"
	"github.com/rs/zerolog/log"
)

// CredentialChecker resolves a username/password pair to a user.
type CredentialChecker interface {
	Authenticate(username, password string) (models.User, error)
}

// TokenValidator resolves a bearer token to the user holding it.
type TokenValidator interface {
	ValidateToken(token string) (models.User, error)
}

type contextKey string

const identityKey = contextKey("authUser")

// UserFrom returns the authenticated user attached to the request context.
func UserFrom(ctx context.Context) (models.User, bool) {
	user, ok := ctx.Value(identityKey).(models.User)
	return user, ok
}

// Basic creates a middleware that authenticates requests with HTTP Basic
// credentials. Any failure collapses to a generic 401 so callers cannot
// probe which part of the credential pair was wrong.
func Basic(checker CredentialChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			username, password, ok := r.BasicAuth()
			if !ok {
				unauthorized(w, true)
				return
			}

			user, err := checker.Authenticate(username, password)
			if err != nil {
				log.Warn().Str("username", username).Msg("Failed basic authentication attempt")
				unauthorized(w, true)
				return
			}

			next.ServeHTTP(w, r.WithContext(withUser(r.Context(), user)))
		})
	}
}

// Bearer creates a middleware that authenticates requests with an opaque
// bearer token.
func Bearer(validator TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				unauthorized(w, false)
				return
			}

			user, err := validator.ValidateToken(parts[1])
			if err != nil {
				log.Warn().Msg("Rejected invalid bearer token")
				unauthorized(w, false)
				return
			}

			next.ServeHTTP(w, r.WithContext(withUser(r.Context(), user)))
		})
	}
}

func withUser(ctx context.Context, user models.User) context.Context {
	return context.WithValue(ctx, identityKey, user)
}

func unauthorized(w http.ResponseWriter, basic bool) {
	if basic {
		w.Header().Set("WWW-Authenticate", `Basic realm="ultistats"`)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error":"unauthorized"}` + "\n"))
}
