package workers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

const shutdownTimeout = 10 * time.Second

type httpServer struct {
	server *http.Server
}

func NewHTTPServer(addr string, h http.Handler) (*httpServer, error) {
	if addr == "" {
		return nil, fmt.Errorf("addr is empty")
	}
	return &httpServer{
		server: &http.Server{Addr: addr, Handler: h},
	}, nil
}

func (s *httpServer) Name() string { return "http_server" }

func (s *httpServer) Start(ctx context.Context) error {
	slog.Info("Starting worker", "name", s.Name(), "addr", s.server.Addr)
	defer slog.Info("Worker stopped", "name", s.Name())

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("listening and serving: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancelFn := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelFn()

	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}
	return nil
}
