package testutil

import (
	"context"
	"net/http"
	"time"

	"verity/pkg/requestcontext"
)

// AdminTokenHeader is the header checked by the admin middleware.
const AdminTokenHeader = "X-Admin-Token"

// WithAdminToken sets the admin token header on the request.
func WithAdminToken(req *http.Request, token string) *http.Request {
	req.Header.Set(AdminTokenHeader, token)
	return req
}

// WithFixedTime pins the request-scoped clock used by services.
func WithFixedTime(req *http.Request, t time.Time) *http.Request {
	return req.WithContext(requestcontext.WithTime(req.Context(), t))
}

// FixedContext returns a background context with a pinned clock.
func FixedContext(t time.Time) context.Context {
	return requestcontext.WithTime(context.Background(), t)
}
