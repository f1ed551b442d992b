package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	dErrors "accessexplorer/pkg/domain-errors"
	"accessexplorer/pkg/platform/httputil"
	"accessexplorer/pkg/requestcontext"
)

// SubjectValidator validates a bearer token and returns its subject.
type SubjectValidator interface {
	Subject(tokenString string) (string, error)
}

// RequireBearer rejects requests without a valid bearer token and stores the
// token subject in the request context.
func RequireBearer(validator SubjectValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			requestID := requestcontext.RequestID(ctx)

			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || strings.TrimSpace(token) == "" {
				logger.WarnContext(ctx, "unauthorized access - missing token",
					"request_id", requestID,
				)
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "Missing or invalid Authorization header"))
				return
			}

			subject, err := validator.Subject(token)
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access - invalid token",
					"error", err,
					"request_id", requestID,
				)
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "Invalid or expired token"))
				return
			}

			next.ServeHTTP(w, r.WithContext(requestcontext.WithSubject(ctx, subject)))
		})
	}
}
