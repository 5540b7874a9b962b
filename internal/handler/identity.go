package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/osse101/StudyGarden_Go/internal/logger"
)

type userIDKey struct{}

// RequireUser rejects requests without an X-User-ID header and stores the id
// in the request context for handlers and logs
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := strings.TrimSpace(r.Header.Get(HeaderUserID))
		if userID == "" {
			logger.FromContext(r.Context()).Warn(LogMsgMissingUserID, "path", r.URL.Path)
			respondError(w, http.StatusUnauthorized, ErrMsgMissingUserID)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey{}, userID)
		ctx = logger.WithUserID(ctx, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserIDFromContext returns the id stored by RequireUser
func UserIDFromContext(ctx context.Context) string {
	userID, _ := ctx.Value(userIDKey{}).(string)
	return userID
}
