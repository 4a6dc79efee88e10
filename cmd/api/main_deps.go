package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/mansiruhil/fail-u-forward-sub000/internal/adapter/http/handler"
	"github.com/mansiruhil/fail-u-forward-sub000/internal/app"
	"github.com/mansiruhil/fail-u-forward-sub000/internal/config"

	"github.com/rs/zerolog/log"
)

// Replaceable dependencies of main.go.

type containerFactory func(ctx context.Context, cfg *config.ServerConfig) (*app.Container, error)

type routerFactory func(cfg handler.RouterConfig, container *app.Container) http.Handler

type serverRunner func(ctx context.Context, addr string, h http.Handler) error

type containerCloser func(container *app.Container) error

const shutdownTimeout = 10 * time.Second

var (
	newContainer containerFactory = app.NewContainer
	newRouter    routerFactory    = func(cfg handler.RouterConfig, c *app.Container) http.Handler {
		return handler.NewRouter(cfg, c.Gate, c.EngagementHandler, c.PostHandler)
	}
	closeContainer containerCloser = func(container *app.Container) error {
		return container.Close()
	}
	serve   serverRunner = serveHTTP
	runFunc              = run
	fatalf               = func(format string, args ...any) {
		log.Fatal().Msgf(format, args...)
	}
)

/**
 * Serves h on addr and shuts down gracefully once ctx is cancelled.
 */
func serveHTTP(ctx context.Context, addr string, h http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("Shutting down API server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
