package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mansiruhil/fail-u-forward-sub000/internal/adapter/http/handler"
	"github.com/mansiruhil/fail-u-forward-sub000/internal/app"
	"github.com/mansiruhil/fail-u-forward-sub000/internal/config"
)

// swapDeps restores the package-level dependencies after the test.
func swapDeps(t *testing.T) {
	t.Helper()
	origContainer, origRouter, origClose, origServe := newContainer, newRouter, closeContainer, serve
	t.Cleanup(func() {
		newContainer = origContainer
		newRouter = origRouter
		closeContainer = origClose
		serve = origServe
	})
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("LOG_FORMAT", "")
	t.Setenv("PORT", "9090")
	t.Setenv("GIN_MODE", "test")
	t.Setenv("POST_EDIT_WINDOW", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")
}

func TestRun_Success(t *testing.T) {
	swapDeps(t)

	container := &app.Container{}
	var gotCfg *config.ServerConfig
	newContainer = func(ctx context.Context, cfg *config.ServerConfig) (*app.Container, error) {
		gotCfg = cfg
		return container, nil
	}
	var gotCORS []string
	newRouter = func(cfg handler.RouterConfig, c *app.Container) http.Handler {
		gotCORS = cfg.CORSOrigins
		return http.NotFoundHandler()
	}
	var closed bool
	closeContainer = func(c *app.Container) error {
		closed = c == container
		return nil
	}
	var gotAddr string
	serve = func(ctx context.Context, addr string, h http.Handler) error {
		gotAddr = addr
		return nil
	}

	if err := run(context.Background()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if gotAddr != ":9090" {
		t.Fatalf("unexpected listen address: %q", gotAddr)
	}
	if gotCfg == nil || gotCfg.EditWindow != config.DefaultEditWindow {
		t.Fatalf("server config not passed to the container: %+v", gotCfg)
	}
	if len(gotCORS) != 1 || gotCORS[0] != config.DefaultCORSOrigin {
		t.Fatalf("unexpected CORS origins: %v", gotCORS)
	}
	if !closed {
		t.Fatalf("container should be closed on shutdown")
	}
}

func TestRun_Errors(t *testing.T) {
	t.Run("container", func(t *testing.T) {
		swapDeps(t)
		want := errors.New("wiring failed")
		newContainer = func(ctx context.Context, cfg *config.ServerConfig) (*app.Container, error) {
			return nil, want
		}
		if err := run(context.Background()); !errors.Is(err, want) {
			t.Fatalf("expected %v, got %v", want, err)
		}
	})

	t.Run("serve", func(t *testing.T) {
		swapDeps(t)
		newContainer = func(ctx context.Context, cfg *config.ServerConfig) (*app.Container, error) {
			return &app.Container{}, nil
		}
		newRouter = func(handler.RouterConfig, *app.Container) http.Handler { return http.NotFoundHandler() }
		closeContainer = func(*app.Container) error { return errors.New("close failed") }
		want := errors.New("port in use")
		serve = func(context.Context, string, http.Handler) error { return want }

		if err := run(context.Background()); !errors.Is(err, want) {
			t.Fatalf("expected %v, got %v", want, err)
		}
	})

	t.Run("server config", func(t *testing.T) {
		swapDeps(t)
		t.Setenv("POST_EDIT_WINDOW", "soon")
		if err := run(context.Background()); err == nil {
			t.Fatalf("expected config error")
		}
	})
}

func TestServeHTTP_ShutsDownOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- serveHTTP(ctx, "127.0.0.1:0", http.NotFoundHandler())
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("expected clean shutdown, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("server did not shut down")
	}
}

func TestServeHTTP_ListenError(t *testing.T) {
	err := serveHTTP(context.Background(), "bad-address", http.NotFoundHandler())
	if err == nil || !strings.Contains(err.Error(), "bad-address") {
		t.Fatalf("expected listen error, got %v", err)
	}
}

func TestDefaultRouter(t *testing.T) {
	t.Setenv("GOOGLE_CLOUD_PROJECT", "")
	t.Setenv("POST_REPOSITORY", "")
	t.Setenv("JOB_QUEUE_BACKEND", "firestore")
	t.Setenv("AUTH_PROVIDER", "jwt")
	t.Setenv("JWT_SECRET", "secret")

	// firestore queue without a client fails wiring
	if _, err := app.NewContainer(context.Background(), &config.ServerConfig{}); err == nil {
		t.Fatalf("expected wiring error")
	}

	c := &app.Container{}
	h := newRouter(handler.RouterConfig{}, c)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("healthz: expected 200, got %d", rec.Code)
	}
	if err := closeContainer(c); err != nil {
		t.Fatalf("close empty container: %v", err)
	}
}
