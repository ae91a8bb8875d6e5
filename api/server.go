package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/Taqieddin-qattousa/storefront-backend/pkg/logger"
)

const shutdownGrace = 15 * time.Second

// Server wraps the HTTP listener with graceful shutdown.
type Server struct {
	httpServer *http.Server
	logg       *logger.Logger
}

// NewServer builds a server bound to addr serving handler.
func NewServer(addr string, handler http.Handler, logg *logger.Logger) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       2 * time.Minute,
		},
		logg: logg,
	}
}

// Run serves until ctx is canceled, then drains in-flight requests
// within the shutdown grace window.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	if s.logg != nil {
		s.logg.Info(context.Background(), "shutting down api server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
