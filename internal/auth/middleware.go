package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/sakif/bloglist/internal/apperror"
	"github.com/sakif/bloglist/internal/model"
	"github.com/sakif/bloglist/internal/repository"
)

// contextKey is an unexported type for context keys in this package.
// A package-private key type means no other package can read or shadow the
// user value we store in the context.
type contextKey string

const userKey contextKey = "user"

// Extractor returns middleware that resolves a bearer token to a user.
//
// It reads the `Authorization: Bearer <token>` header. If the header is
// absent, the token fails verification, or the embedded user no longer
// exists, the request simply continues anonymous — this middleware never
// writes a 401. Routes that require identity make that call themselves via
// UserFromContext, which keeps "who needs auth" visible in the handlers
// rather than buried in route wiring. A store failure while resolving the
// user is the one case answered here directly, with a 500.
func Extractor(tokens *TokenService, users repository.UserRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := bearerToken(r)
			if tokenStr == "" {
				next.ServeHTTP(w, r)
				return
			}

			identity, err := tokens.Verify(tokenStr)
			if err != nil {
				// Invalid token == anonymous request. The handler that
				// needs a user will reject it with 401.
				next.ServeHTTP(w, r)
				return
			}

			user, err := users.GetUserByID(r.Context(), identity.UserID)
			if err != nil {
				// A missing user means the account was deleted after the
				// token was issued: continue anonymous. Any other failure is
				// a store problem, and pretending it's an auth problem would
				// surface as a misleading 401.
				if errors.Is(err, apperror.ErrNotFound) {
					next.ServeHTTP(w, r)
					return
				}
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte(`{"error":"internal_error","message":"An internal error occurred"}` + "\n"))
				return
			}

			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext retrieves the authenticated user attached by Extractor.
// Returns (nil, false) for anonymous requests.
func UserFromContext(ctx context.Context) (*model.User, bool) {
	user, ok := ctx.Value(userKey).(*model.User)
	return user, ok && user != nil
}

// ContextWithUser attaches a user to a context directly. Handler tests use
// this to simulate an authenticated request without running the middleware.
func ContextWithUser(ctx context.Context, user *model.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// bearerToken pulls the token out of the Authorization header.
// Returns "" when the header is missing or isn't a Bearer scheme.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}

	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
