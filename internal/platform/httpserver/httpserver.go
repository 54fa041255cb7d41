// Package httpserver builds the process HTTP server.
package httpserver

import (
	"net/http"
	"time"
)

const (
	readHeaderTimeout = 5 * time.Second
	idleTimeout       = 2 * time.Minute
	// writeSlack covers scoring, persistence and memo rendering on top of
	// the provider lookups.
	writeSlack = 15 * time.Second
)

// New returns a server for handler on addr. A screening resolves three
// providers one after another, so the write deadline is three provider
// timeouts plus slack.
func New(addr string, handler http.Handler, providerTimeout time.Duration) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       3 * readHeaderTimeout,
		WriteTimeout:      WriteTimeout(providerTimeout),
		IdleTimeout:       idleTimeout,
	}
}

// WriteTimeout is the response deadline New applies.
func WriteTimeout(providerTimeout time.Duration) time.Duration {
	if providerTimeout <= 0 {
		providerTimeout = 5 * time.Second
	}
	return 3*providerTimeout + writeSlack
}
