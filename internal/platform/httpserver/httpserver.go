package httpserver

import (
	"net/http"
	"time"
)

// New builds an HTTP server with the timeouts used by the explorer API.
// WriteTimeout leaves room for the slowest upstream fan-out.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      45 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}
