package screen

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"classroomclient/internal/ctxdata"
	"classroomclient/internal/domain"
	"classroomclient/internal/logging"
	"classroomclient/internal/session"
)

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// NewLoggingMiddleware stamps every request with a trace id, puts the logger
// on the context and logs the outcome.
func NewLoggingMiddleware(logger *logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			traceID, err := uuid.NewV7()
			if err != nil {
				traceID = uuid.New()
			}

			ctx := ctxdata.WithTraceID(r.Context(), traceID.String())
			ctx = logging.ContextWithLogger(ctx, logger)
			r = r.WithContext(ctx)

			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			w.Header().Set("X-Trace-Id", traceID.String())

			next.ServeHTTP(sw, r)

			logger.Info(ctx, "request completed",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", sw.status),
				zap.Duration("duration", time.Since(start)),
			)
		})
	}
}

// homePath is where each role lands after login; a cross-role request is
// answered with the caller's own home so the UI can bounce them there.
func homePath(role domain.Role) string {
	switch role {
	case domain.RoleAdmin:
		return "/admin/dashboard"
	case domain.RoleTeacher:
		return "/teacher/dashboard"
	default:
		return "/student/dashboard"
	}
}

// NewSessionMiddleware rejects requests with no live session and puts the
// signed-in user's id and role on the context.
func NewSessionMiddleware(store *session.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			profile, ok := store.Current()
			if !ok {
				w.Header().Set("X-Login-Required", "true")
				writeErrorJSON(w, http.StatusUnauthorized, "not signed in")
				return
			}
			ctx := ctxdata.WithUserID(r.Context(), profile.ID)
			ctx = ctxdata.WithUserRole(ctx, string(profile.Role))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole guards a route subtree to one role. It assumes the session
// middleware already ran.
func RequireRole(role domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			current, _ := ctxdata.GetUserRole(r.Context())
			if domain.Role(current) != role {
				w.Header().Set("X-Role-Home", homePath(domain.Role(current)))
				writeErrorJSON(w, http.StatusForbidden, "not available for your role")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
