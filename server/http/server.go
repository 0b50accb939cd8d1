// Package http exposes the service over JSON HTTP endpoints.
package http

import (
	"context"
	"errors"
	"net/http"
	"time"
)

// Server wraps http.Server with graceful shutdown.
type Server struct {
	options    Options
	httpServer *http.Server
}

func NewServer(handler http.Handler, opts ...Option) *Server {
	options := NewOptions(opts...)

	return &Server{
		options: options,
		httpServer: &http.Server{
			Addr:         options.Address,
			Handler:      handler,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 5 * time.Minute, // a cold query embeds every chunk before the LLM call
		},
	}
}

// Run serves until ctx is done, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		s.options.Logger.WithField("address", s.options.Address).Info("server listening")
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	s.options.Logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	return s.httpServer.Shutdown(shutdownCtx)
}
