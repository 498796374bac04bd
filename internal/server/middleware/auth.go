// Package middleware authenticates bearer tokens on /users/{id} routes and restricts each
// route to the user it names.
package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// Verifier checks a bearer token and returns the user it was issued to
type Verifier interface {
	Verify(token string) (uuid.UUID, error)
}

type userKey struct{}

// WithUser returns a copy of ctx carrying the authenticated user
func WithUser(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, userKey{}, id)
}

// UserFrom returns the authenticated user stored by Authenticate
func UserFrom(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(userKey{}).(uuid.UUID)
	return id, ok && id != uuid.Nil
}

// Authenticate rejects requests without a valid bearer token with 401 and stores the
// token's user in the request context
func Authenticate(v Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				deny(w, http.StatusUnauthorized, "missing bearer token")
				return
			}
			user, err := v.Verify(token)
			if err != nil || user == uuid.Nil {
				deny(w, http.StatusUnauthorized, "invalid bearer token")
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// RequireOwner lets a request through only when the authenticated user equals the {param}
// path value: 401 without a user, 403 for anyone else. It runs inside Authenticate.
func RequireOwner(param string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFrom(r.Context())
			if !ok {
				deny(w, http.StatusUnauthorized, "not authenticated")
				return
			}
			owner, err := uuid.Parse(r.PathValue(param))
			if err != nil || owner != user {
				deny(w, http.StatusForbidden, "access to another user's history is not allowed")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// bearerToken returns the token of an "Authorization: Bearer <token>" header
func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != "" && !strings.ContainsAny(token, " \t")
}

// deny writes the same {"error": ...} body the API uses for every other failure
func deny(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
