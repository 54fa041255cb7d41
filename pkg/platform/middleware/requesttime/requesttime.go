// Package requesttime captures one timestamp per request.
// All operations within a single HTTP request use the same "now", so a
// screening run, its snapshots and its audit entry share a timestamp.
package requesttime

import (
	"net/http"
	"time"

	"vendorscreen/pkg/requestcontext"
)

// Middleware stores the request start time in the context.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := requestcontext.WithTime(r.Context(), time.Now())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
