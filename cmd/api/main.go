package main

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/studio-console/infrastructure/database/postgres"
	"github.com/vfg2006/studio-console/infrastructure/integrator/studio/studioclient"
	"github.com/vfg2006/studio-console/infrastructure/repository"
	"github.com/vfg2006/studio-console/internal/api"
	"github.com/vfg2006/studio-console/internal/config"
	"github.com/vfg2006/studio-console/internal/scheduler"
	"github.com/vfg2006/studio-console/internal/session"
	"github.com/vfg2006/studio-console/internal/usecases/authenticating"
	"github.com/vfg2006/studio-console/internal/usecases/dashboarding"
	"github.com/vfg2006/studio-console/pkg/log"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	log.Configure(cfg.App.LogLevel)
	log.L.Infof("log level set to %s", cfg.App.LogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sessionRepo, closeRepo := sessionRepository(ctx, cfg)
	defer closeRepo()

	studioClient := studioclient.NewClient(cfg)
	authenticator := authenticating.NewService(studioClient, cfg)
	sessions := session.NewManager(cfg, sessionRepo, authenticator)
	screens := dashboarding.NewRegistry(studioClient)

	cleanupService := scheduler.NewSessionCleanupService(sessionRepo, screens, cfg)
	if err := cleanupService.Start(ctx); err != nil {
		log.L.WithError(err).Error("failed to start session cleanup scheduler")
	}

	server, err := api.New(cfg, authenticator, sessions, screens)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		log.L.Error(err)
	}
}

// sessionRepository picks the session store selected by SESSION_STORE.
func sessionRepository(ctx context.Context, cfg *config.Config) (repository.SessionRepository, func()) {
	if cfg.Session.Store != config.SessionStorePostgres {
		log.L.Info("using in-memory session store")
		return repository.NewMemorySessionRepository(), func() {}
	}

	conn := pgconn(ctx, cfg.Database)
	if err := repository.EnsureSessionSchema(ctx, conn); err != nil {
		logrus.WithError(err).Fatal("failed to prepare session schema")
	}

	return repository.NewSessionRepository(conn), func() { _ = conn.Close() }
}

func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("failed to connect to PostgreSQL")
	}

	log.L.Info("connected to PostgreSQL")
	return conn
}
