// Package requesttime pins one "now" per HTTP request so every record written while
// handling it (trust log entries, enforcement timestamps, audit events) shares a timestamp.
package requesttime

import (
	"net/http"
	"time"

	"verity/pkg/requestcontext"
)

// Middleware captures the current time at the start of the request.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := requestcontext.WithTime(r.Context(), time.Now())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
