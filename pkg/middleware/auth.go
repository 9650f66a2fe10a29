package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/shashiranjanraj/storefront/pkg/auth"
	"github.com/shashiranjanraj/storefront/pkg/response"
)

// SubjectChecker reports whether the token subject still references an
// existing user. Wired to the user repository at construction time.
type SubjectChecker func(ctx context.Context, userID int64) (bool, error)

// Auth resolves the bearer token to a subject id and stores it in the
// request context. Missing, malformed and expired tokens are
// indistinguishable: all yield 401 before any handler runs. A subject
// whose user row no longer exists is also rejected.
func Auth(check SubjectChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				response.Fail(w, http.StatusUnauthorized, "Invalid token")
				return
			}

			claims, err := auth.ValidateToken(token)
			if err != nil {
				response.Fail(w, http.StatusUnauthorized, "Invalid token")
				return
			}

			exists, err := check(r.Context(), claims.UserID)
			if err != nil {
				response.Error(w, err)
				return
			}
			if !exists {
				response.Fail(w, http.StatusUnauthorized, "Author not found")
				return
			}

			ctx := auth.WithSubject(r.Context(), claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
