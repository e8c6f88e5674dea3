package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	httpAdapter "github.com/aretw0/dfsm/pkg/adapters/http"
	mcpAdapter "github.com/aretw0/dfsm/pkg/adapters/mcp"
	"github.com/aretw0/dfsm/pkg/observability"
)

const shutdownTimeout = 5 * time.Second

// Serve exposes the backend over HTTP until ctx is cancelled, then shuts the
// server down gracefully.
func Serve(ctx context.Context, addr string, backend *Backend, logger *slog.Logger) error {
	opts := []httpAdapter.Option{
		httpAdapter.WithLogger(logger),
		httpAdapter.WithMetrics(observability.NewMetrics()),
	}
	if backend.Watcher != nil {
		opts = append(opts, httpAdapter.WithWatcher(backend.Watcher))
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           httpAdapter.NewHandler(backend.Catalog, opts...),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("dfsm server listening", "addr", addr, "writable", backend.Catalog.Writable())
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case <-ctx.Done():
		logger.Info("shutdown requested")

		// Give outstanding requests a deadline for completion.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("graceful shutdown did not complete", "timeout", shutdownTimeout, "err", err)
			if err := srv.Close(); err != nil {
				return fmt.Errorf("could not stop server: %w", err)
			}
		}
		logger.Info("dfsm server stopped")
		return nil
	}
}

// ServeMCP serves the backend as an MCP server over stdio.
func ServeMCP(backend *Backend, logger *slog.Logger) error {
	return mcpAdapter.NewServer(backend.Catalog, logger).ServeStdio()
}
