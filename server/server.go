// Package server hosts the IdiomBridge HTTP server.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/idiombridge/idiombridge/internal/profile"
	"github.com/idiombridge/idiombridge/server/middleware"
	apiv1 "github.com/idiombridge/idiombridge/server/router/api/v1"
	"github.com/idiombridge/idiombridge/store"
)

const shutdownTimeout = 10 * time.Second

type Server struct {
	Profile *profile.Profile
	Store   *store.Store

	echoServer *echo.Echo
	apiV1      *apiv1.APIV1Service
}

func NewServer(profile *profile.Profile, store *store.Store) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(middleware.NewRateLimiter(10, 20).Middleware())

	s := &Server{
		Profile:    profile,
		Store:      store,
		echoServer: e,
		apiV1:      apiv1.NewAPIV1Service(profile, store),
	}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "Service ready.")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	s.apiV1.Register(e)

	return s
}

// Start runs the HTTP server until ctx is cancelled, then shuts it down
// gracefully.
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.Profile.Addr, s.Profile.Port)
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.echoServer.Start(addr)
	}()
	slog.Info("server started", "addr", addr, "mode", s.Profile.Mode, "version", s.Profile.Version)

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	case <-ctx.Done():
		return s.Shutdown()
	}
}

// Shutdown stops the HTTP server and closes the store.
func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.echoServer.Shutdown(ctx); err != nil {
		slog.Error("failed to shut down server", "error", err)
	}
	if s.Store != nil {
		if err := s.Store.Close(); err != nil {
			slog.Error("failed to close store", "error", err)
		}
	}
	slog.Info("server stopped")
	return nil
}
