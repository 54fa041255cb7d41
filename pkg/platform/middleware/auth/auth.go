package auth

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	request "vendorscreen/pkg/platform/middleware/request"
	"vendorscreen/pkg/requestcontext"
)

// HeaderActor names the acting analyst when bearer tokens are not configured.
const HeaderActor = "X-Actor"

// JWTValidator validates a bearer token and returns its subject.
type JWTValidator interface {
	ValidateToken(tokenString string) (string, error)
}

// writeJSONError writes a JSON error response with the given status code and error details.
func writeJSONError(w http.ResponseWriter, status int, errCode, errDesc string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(fmt.Appendf(nil, `{"error":"%s","error_description":"%s"}`, errCode, errDesc))
}

// ResolveActor puts the acting identity into the request context.
//
// With a validator, a valid bearer token is required and its subject becomes
// the actor. Without one, the X-Actor header is trusted and the actor falls
// back to requestcontext.DefaultActor.
func ResolveActor(validator JWTValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if validator == nil {
				actor := strings.TrimSpace(r.Header.Get(HeaderActor))
				if actor != "" {
					ctx = requestcontext.WithActor(ctx, actor)
				}
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || strings.TrimSpace(token) == "" {
				logger.WarnContext(ctx, "unauthorized access - missing token",
					"request_id", request.GetRequestID(ctx),
				)
				writeJSONError(w, http.StatusUnauthorized, "unauthorized", "Missing or invalid Authorization header")
				return
			}

			actor, err := validator.ValidateToken(strings.TrimSpace(token))
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access - invalid token",
					"error", err,
					"request_id", request.GetRequestID(ctx),
				)
				writeJSONError(w, http.StatusUnauthorized, "unauthorized", "Invalid or expired token")
				return
			}

			next.ServeHTTP(w, r.WithContext(requestcontext.WithActor(ctx, actor)))
		})
	}
}
