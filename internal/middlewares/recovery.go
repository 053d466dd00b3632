package middlewares

import (
	"encoding/json"
	"net/http"

	"github.com/sbilibin2017/expense-tracker/internal/logger"
)

// ProblemDetails is the error body returned for unhandled failures,
// following RFC 7807.
type ProblemDetails struct {
	Type    string `json:"type"`
	Title   string `json:"title"`
	Status  int    `json:"status"`
	Detail  string `json:"detail"`
	TraceID string `json:"traceId"`
}

// RecoveryMiddleware catches panics escaping a handler, logs them, and
// responds with a generic problem+json 500 carrying the request's trace id.
// Internal details never reach the client beyond the detail message.
func RecoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				traceID := GetRequestIDFromContext(r.Context())

				logger.Log.Errorw("unhandled panic while processing request",
					"panic", rec,
					"method", r.Method,
					"uri", r.RequestURI,
					"request_id", traceID,
				)

				problem := ProblemDetails{
					Type:    "https://httpstatuses.com/500",
					Title:   "An unexpected error occurred.",
					Status:  http.StatusInternalServerError,
					Detail:  "Internal server error",
					TraceID: traceID,
				}

				w.Header().Set("Content-Type", "application/problem+json")
				w.WriteHeader(http.StatusInternalServerError)
				_ = json.NewEncoder(w).Encode(problem)
			}
		}()

		next.ServeHTTP(w, r)
	})
}
