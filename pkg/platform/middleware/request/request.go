// Package request assigns a correlation ID to each HTTP request.
package request

import (
	"net/http"

	"github.com/google/uuid"

	"verity/pkg/requestcontext"
)

// Header carries the correlation ID in and out of the service.
const Header = "X-Request-ID"

// RequestID reuses an inbound X-Request-ID or generates one, and echoes it on the response.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(Header)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		w.Header().Set(Header, id)
		next.ServeHTTP(w, r.WithContext(requestcontext.WithRequestID(r.Context(), id)))
	})
}
