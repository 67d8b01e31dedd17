package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/vfg2006/studio-console/infrastructure/database/postgres"
	"github.com/vfg2006/studio-console/internal/domain"
)

const sessionsTable = "console_sessions"

// SessionsSchema creates the console session table.
const SessionsSchema = `
CREATE TABLE IF NOT EXISTS console_sessions (
	id           TEXT PRIMARY KEY,
	user_id      INTEGER NOT NULL,
	name         TEXT NOT NULL DEFAULT '',
	email        TEXT NOT NULL DEFAULT '',
	access_token TEXT NOT NULL,
	expires_at   TIMESTAMPTZ NOT NULL,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS console_sessions_expires_at_idx ON console_sessions (expires_at);
`

var sessionColumns = []string{"id", "user_id", "name", "email", "access_token", "expires_at", "created_at"}

type SessionRepository interface {
	Create(ctx context.Context, session *domain.Session) error
	// GetByID returns nil, nil when the session does not exist.
	GetByID(ctx context.Context, id string) (*domain.Session, error)
	Delete(ctx context.Context, id string) error
	// DeleteExpired removes every session expired at now and returns their IDs.
	DeleteExpired(ctx context.Context, now time.Time) ([]string, error)
}

type sessionRepository struct {
	conn postgres.Queryer
}

func NewSessionRepository(conn postgres.Queryer) SessionRepository {
	return &sessionRepository{
		conn: conn,
	}
}

// EnsureSessionSchema applies SessionsSchema.
func EnsureSessionSchema(ctx context.Context, conn postgres.Queryer) error {
	_, err := conn.Exec(ctx, SessionsSchema)
	return errors.Wrap(err, "repository: create sessions schema")
}

func (r *sessionRepository) Create(ctx context.Context, session *domain.Session) error {
	query, args, err := squirrel.
		Insert(sessionsTable).
		Columns(sessionColumns...).
		Values(
			session.ID,
			session.UserID,
			session.Name,
			session.Email,
			session.AccessToken,
			session.ExpiresAt,
			session.CreatedAt,
		).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	if _, err := r.conn.Exec(ctx, query, args...); err != nil {
		return errors.Wrap(err, "repository: insert session")
	}

	return nil
}

func (r *sessionRepository) GetByID(ctx context.Context, id string) (*domain.Session, error) {
	query, args, err := squirrel.
		Select(sessionColumns...).
		From(sessionsTable).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var session domain.Session
	err = r.conn.QueryRow(ctx, query, args...).Scan(
		&session.ID,
		&session.UserID,
		&session.Name,
		&session.Email,
		&session.AccessToken,
		&session.ExpiresAt,
		&session.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "repository: get session")
	}

	return &session, nil
}

func (r *sessionRepository) Delete(ctx context.Context, id string) error {
	query, args, err := squirrel.
		Delete(sessionsTable).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	if _, err := r.conn.Exec(ctx, query, args...); err != nil {
		return errors.Wrap(err, "repository: delete session")
	}

	return nil
}

func (r *sessionRepository) DeleteExpired(ctx context.Context, now time.Time) ([]string, error) {
	query, args, err := squirrel.
		Delete(sessionsTable).
		Where(squirrel.LtOrEq{"expires_at": now}).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "repository: delete expired sessions")
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}
