package httpserver

import (
	"net/http"
	"time"
)

// New builds an HTTP server. WriteTimeout stays unset because websocket
// sessions are long-lived.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}
