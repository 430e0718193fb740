package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"team-analytics/internal/domain/models"
	"team-analytics/internal/service"
)

type userCtxKey struct{}

// Auth resolves the `Authorization: Token <token>` header to a user and puts
// the principal into the request context. Requests without a valid token get
// a 401.
func Auth(userService *service.UserService, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middleware.Auth"

			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Token ")
			if !ok || token == "" {
				writeUnauthorized(w, "authentication credentials were not provided")
				return
			}

			user, err := userService.Authenticate(r.Context(), token)
			if err != nil {
				log.Warn("rejected request with invalid token", slog.String("op", op))
				writeUnauthorized(w, "invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), userCtxKey{}, *user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext returns the authenticated principal stored by Auth.
func UserFromContext(ctx context.Context) (models.User, bool) {
	user, ok := ctx.Value(userCtxKey{}).(models.User)
	return user, ok
}

func writeUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
