package middleware

import (
	"net/http"
	"sync/atomic"

	"github.com/nourivox/nourivox-backend/pkg/logger"
)

var requestCounter int64

// RequestID tags each request context with a process-unique id that the
// logger prints on every line of the request.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := atomic.AddInt64(&requestCounter, 1)
		ctx := logger.ContextWithRequestID(r.Context(), requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
