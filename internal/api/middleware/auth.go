package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m-orlv/STB-AvailabilityService/internal/api/handlers"
)

type contextKey string

const userIDKey contextKey = "userID"

// Auth requires the X-User-ID header set by the API gateway after it has
// authenticated the caller. Requests without it are rejected.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userIDStr := r.Header.Get("X-User-ID")
		if userIDStr == "" {
			handlers.RespondUnauthorized(w, "X-User-ID header is required")
			return
		}

		userID, err := strconv.ParseInt(userIDStr, 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, "X-User-ID header must be a positive integer")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserID extracts the authenticated user ID stored by Auth.
func GetUserID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey).(int64)
	return userID, ok
}
