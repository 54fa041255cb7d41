package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"vendorscreen/internal/platform/metrics"
	"vendorscreen/pkg/platform/httputil"
	authmw "vendorscreen/pkg/platform/middleware/auth"
	"vendorscreen/pkg/platform/middleware/metadata"
	request "vendorscreen/pkg/platform/middleware/request"
	"vendorscreen/pkg/platform/middleware/requesttime"
)

// RouteRegistrar is implemented by each bounded context's handler.
type RouteRegistrar interface {
	Register(r chi.Router)
}

// HealthCheck reports whether a dependency is reachable.
type HealthCheck func(ctx context.Context) error

// Options configures NewRouter. Validator may be nil, in which case the actor
// is taken from the X-Actor header.
type Options struct {
	Logger    *slog.Logger
	Metrics   *metrics.Metrics
	Validator authmw.JWTValidator
	Checks    map[string]HealthCheck
	Timeout   time.Duration
}

// NewRouter wires the middleware chain, operational endpoints and the
// registered handlers.
func NewRouter(opts Options, handlers ...RouteRegistrar) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 45 * time.Second
	}

	r := chi.NewRouter()
	r.Use(request.Recovery(logger))
	r.Use(request.RequestID)
	r.Use(request.Logger(logger))
	r.Use(request.Latency(opts.Metrics))
	r.Use(requesttime.Middleware)
	r.Use(metadata.ClientMetadata)

	r.Get("/healthz", healthz(opts.Checks))
	r.Handle("/metrics", metrics.Handler())

	r.Group(func(api chi.Router) {
		api.Use(chimw.Timeout(timeout))
		api.Use(authmw.ResolveActor(opts.Validator, logger))
		for _, h := range handlers {
			h.Register(api)
		}
	})
	return r
}

func healthz(checks map[string]HealthCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		results := map[string]string{}
		overall, code := "ok", http.StatusOK
		for name, check := range checks {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			err := check(ctx)
			cancel()
			if err != nil {
				results[name] = "unavailable"
				overall, code = "degraded", http.StatusServiceUnavailable
				continue
			}
			results[name] = "ok"
		}
		httputil.WriteJSON(w, code, map[string]any{
			"status": overall,
			"checks": results,
		})
	}
}
