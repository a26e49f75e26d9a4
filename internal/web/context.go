package web

import (
	"context"
	"net/http"
)

// detachedContext keeps the request's values, including the request ID, but
// drops its cancellation.
func detachedContext(r *http.Request) context.Context {
	return context.WithoutCancel(r.Context())
}
