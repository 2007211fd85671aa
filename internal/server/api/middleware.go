package api

import (
	"net/http"

	"github.com/google/uuid"
)

// RequestIDHeader carries the request ID back to the caller, mostly for
// correlating client reports with server logs.
const RequestIDHeader = "X-Request-Id"

// withRequestID tags each request with a fresh ID and logs the call.
func (s *HTTPServer) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set(RequestIDHeader, id)
		s.logger.Debug(r.Context(), "request", "request_id", id, "method", r.Method, "path", r.URL.Path)
		next.ServeHTTP(w, r)
	})
}
