package auth

import (
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"vendorscreen/pkg/requestcontext"
)

type stubValidator struct {
	actor string
	err   error
	seen  string
}

func (v *stubValidator) ValidateToken(token string) (string, error) {
	v.seen = token
	return v.actor, v.err
}

func actorEcho() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(requestcontext.Actor(r.Context())))
	})
}

func serve(mw func(http.Handler) http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	mw(actorEcho()).ServeHTTP(rr, req)
	return rr
}

func TestResolveActorWithoutValidator(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)
	mw := ResolveActor(nil, logger)

	t.Run("header actor", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(HeaderActor, " analyst@example.com ")
		rr := serve(mw, req)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "analyst@example.com", rr.Body.String())
	})

	t.Run("default actor", func(t *testing.T) {
		rr := serve(mw, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, requestcontext.DefaultActor, rr.Body.String())
	})
}

func TestResolveActorWithValidator(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)

	t.Run("valid token", func(t *testing.T) {
		v := &stubValidator{actor: "kim"}
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer abc.def")
		rr := serve(ResolveActor(v, logger), req)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "kim", rr.Body.String())
		assert.Equal(t, "abc.def", v.seen)
	})

	t.Run("missing token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(HeaderActor, "spoofed")
		rr := serve(ResolveActor(&stubValidator{actor: "kim"}, logger), req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Contains(t, rr.Body.String(), "Missing or invalid Authorization header")
	})

	t.Run("invalid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer nope")
		rr := serve(ResolveActor(&stubValidator{err: errors.New("bad signature")}, logger), req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Contains(t, rr.Body.String(), "Invalid or expired token")
	})
}
