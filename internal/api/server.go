package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/vfg2006/studio-console/internal/api/handler"
	"github.com/vfg2006/studio-console/internal/api/handler/router"
	"github.com/vfg2006/studio-console/internal/config"
	"github.com/vfg2006/studio-console/internal/usecases/authenticating"
	"github.com/vfg2006/studio-console/internal/view"
	"github.com/vfg2006/studio-console/pkg/log"
	"github.com/vfg2006/studio-console/pkg/middleware"
)

const shutdownTimeout = 15 * time.Second

// Sessions is what the server needs from the console session manager.
type Sessions interface {
	handler.SessionManager
	middleware.SessionLoader
}

type Server struct {
	httpServer *http.Server
}

func New(
	config *config.Config,
	authenticator authenticating.Authenticator,
	sessions Sessions,
	screens handler.ScreenRegistry,
) (*Server, error) {
	srv := &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port),
			Handler:           NewHandler(config, authenticator, sessions, screens),
			ReadHeaderTimeout: 2 * time.Second,
		},
	}

	return srv, nil
}

// NewHandler builds the routed console handler behind the global middleware chain.
func NewHandler(
	config *config.Config,
	authenticator authenticating.Authenticator,
	sessions Sessions,
	screens handler.ScreenRegistry,
) http.Handler {
	rt := router.New(
		router.WithRoutes(handler.Healthcheck()...),
		router.WithRoutes(handler.Authentication(authenticator, sessions, screens)...),
		router.WithRoutes(handler.Dashboards(screens, sessions)...),
		router.WithNotFound(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = view.Render(w, http.StatusNotFound, view.NotFoundPage())
		})),
	)

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(config.Cors.AllowedOrigins),
		middleware.SessionMiddleware(sessions),
	}

	return alice.New(middlewares...).Then(rt)
}

func (s Server) Run(ctx context.Context) error {
	go func() {
		log.L.WithField("address", s.httpServer.Addr).Info("server starting")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.L.WithError(err).Error("server stopped unexpectedly")
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	select {
	case <-done:
		log.L.Info("interrupt signal received")
	case <-ctx.Done():
		log.L.Info("application context cancelled")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	log.L.WithField("timeout", shutdownTimeout.String()).Info("shutting down server")

	if err := s.Shutdown(shutdownCtx); err != nil {
		log.L.WithError(err).Error("server shutdown failed")
		return err
	}

	log.L.Info("server stopped")
	return nil
}

func (s Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
