// Command script prepares the Postgres session store and optionally purges
// expired sessions.
package main

import (
	"context"
	"database/sql"
	"flag"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/studio-console/infrastructure/database/postgres"
	"github.com/vfg2006/studio-console/infrastructure/repository"
	"github.com/vfg2006/studio-console/internal/config"
)

func main() {
	purge := flag.Bool("purge", false, "delete expired sessions after migrating")
	flag.Parse()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	conn, err := postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		logrus.WithError(err).Fatal("failed to connect to PostgreSQL")
	}
	defer conn.Close()

	startTime := time.Now()
	err = conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, repository.SessionsSchema)
		return err
	})
	if err != nil {
		logrus.WithError(err).Fatal("session schema migration failed")
	}
	logrus.WithField("duration", time.Since(startTime)).Info("session schema ready")

	if !*purge {
		return
	}

	ids, err := repository.NewSessionRepository(conn).DeleteExpired(ctx, time.Now())
	if err != nil {
		logrus.WithError(err).Fatal("failed to purge expired sessions")
	}
	logrus.WithField("purged", len(ids)).Info("expired sessions purged")
}
