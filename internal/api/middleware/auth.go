package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rei/cms-backend/internal/config"
	"github.com/rei/cms-backend/internal/domain"
	"github.com/rei/cms-backend/internal/service"
)

type contextKey string

const userKey contextKey = "user"

// Auth gates protected routes on a valid session cookie. Absent cookie,
// malformed token, unknown session and expired session all collapse into the
// same 401 so probing clients learn nothing about session state. The wrapped
// handler never runs on rejection.
func Auth(authService *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(config.SessionCookieName)
			if err != nil {
				unauthorized(w)
				return
			}

			user := authService.ResolveSession(r.Context(), cookie.Value)
			if user == nil {
				unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUser returns the identity the Auth middleware attached for this request.
func GetUser(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(userKey).(*domain.User)
	return user, ok
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
}
