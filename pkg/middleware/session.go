package middleware

import (
	"context"
	"net/http"

	"github.com/vfg2006/studio-console/internal/domain"
	"github.com/vfg2006/studio-console/pkg/log"
)

type contextKey string

const ContextKeySession contextKey = "session"

// SessionLoader resolves the console session of a request, nil when signed out.
type SessionLoader interface {
	Current(r *http.Request) (*domain.Session, error)
}

// SessionMiddleware puts the current session, if any, in the request context.
// It never rejects a request; handlers decide what a missing session means.
func SessionMiddleware(loader SessionLoader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, err := loader.Current(r)
			if err != nil {
				log.ForContext(r.Context()).WithError(err).Warn("failed to load session")
			}

			if sess != nil {
				ctx := context.WithValue(r.Context(), ContextKeySession, sess)
				ctx = log.WithSessionID(ctx, sess.ID)
				r = r.WithContext(ctx)
			}

			next.ServeHTTP(w, r)
		})
	}
}

// SessionFromContext returns the session stored by SessionMiddleware.
func SessionFromContext(ctx context.Context) *domain.Session {
	sess, _ := ctx.Value(ContextKeySession).(*domain.Session)
	return sess
}
