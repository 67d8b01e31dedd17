// Package dashboarding holds the studio dashboard screen controller: its
// per-session state, the fetch-on-mount effect and the rendering contract.
package dashboarding

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"github.com/vfg2006/studio-console/infrastructure/integrator/studio/studioclient"
	"github.com/vfg2006/studio-console/internal/domain"
	"github.com/vfg2006/studio-console/pkg/log"
)

const (
	LoginPath      = "/login"
	TestSeriesPath = "/test-series"

	// Shown when the backend reports a failure without a message.
	fallbackAlert = "Unable to load the dashboard"
)

// Fetcher is the part of the studio backend client the screen needs.
type Fetcher interface {
	GetDashboard(ctx context.Context, accessToken string) (*studioclient.DashboardResponse, error)
}

// LogoutFunc ends the console session. It is invoked when the backend
// rejects the session token.
type LogoutFunc func()

// Outcome tells the caller what the effect did.
type Outcome struct {
	// Redirect is set when the caller must navigate away (no session, or the
	// session was just logged out).
	Redirect  string
	Fetched   bool
	LoggedOut bool
	// Alert is the blocking message to show, if the backend reported a failure.
	Alert string
}

// Screen is the state of one mounted dashboard screen.
//
// snapshot is either nil or the complete payload of one successful response.
// timeframe only changes which widget field each card reads.
type Screen struct {
	fetcher Fetcher

	mu        sync.Mutex
	mounted   bool
	identity  string
	snapshot  *domain.DashboardSnapshot
	timeframe domain.Timeframe
	alert     string
}

func NewScreen(fetcher Fetcher) *Screen {
	return &Screen{
		fetcher:   fetcher,
		timeframe: domain.DefaultTimeframe,
	}
}

// Mount resets the screen to its initial state and runs the effect.
func (s *Screen) Mount(ctx context.Context, sess *domain.Session, logout LogoutFunc) Outcome {
	s.mu.Lock()
	s.mounted = true
	s.identity = ""
	s.snapshot = nil
	s.timeframe = domain.DefaultTimeframe
	s.alert = ""
	s.mu.Unlock()

	return s.run(ctx, sess, logout)
}

// Sync reruns the effect only when the session identity differs from the one
// the effect last ran for. An unmounted screen is mounted first.
func (s *Screen) Sync(ctx context.Context, sess *domain.Session, logout LogoutFunc) Outcome {
	s.mu.Lock()
	mounted := s.mounted
	unchanged := sess != nil && s.identity == sess.Identity()
	s.mu.Unlock()

	if !mounted {
		return s.Mount(ctx, sess, logout)
	}
	if unchanged {
		return Outcome{}
	}

	return s.run(ctx, sess, logout)
}

func (s *Screen) run(ctx context.Context, sess *domain.Session, logout LogoutFunc) Outcome {
	if sess == nil {
		return Outcome{Redirect: LoginPath}
	}

	s.mu.Lock()
	s.identity = sess.Identity()
	s.mu.Unlock()

	logger := log.ForContext(ctx)

	resp, err := s.fetcher.GetDashboard(ctx, sess.AccessToken)
	if err != nil {
		if studioclient.IsUnauthorized(err) {
			logger.Info("studio backend rejected the session token, logging out")
			if logout != nil {
				logout()
			}
			return Outcome{Fetched: true, LoggedOut: true, Redirect: LoginPath}
		}

		fields := log.Fields{"status_code": studioclient.StatusCode(err)}
		var httpErr *studioclient.HTTPError
		if errors.As(err, &httpErr) {
			fields["response_body"] = httpErr.Body
		}
		logger.WithFields(fields).WithError(err).Warn("dashboard request failed")

		return Outcome{Fetched: true}
	}

	if resp == nil || !resp.Success {
		message := fallbackAlert
		if resp != nil && resp.Error != "" {
			message = resp.Error
		}

		s.mu.Lock()
		s.alert = message
		s.mu.Unlock()

		return Outcome{Fetched: true, Alert: message}
	}

	s.mu.Lock()
	s.snapshot = resp.Data
	s.mu.Unlock()

	return Outcome{Fetched: true}
}

// SelectTimeframe changes which widget field the KPI cards read. It never
// triggers a fetch.
func (s *Screen) SelectTimeframe(tf domain.Timeframe) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.timeframe = tf
}

func (s *Screen) Timeframe() domain.Timeframe {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timeframe
}

// Snapshot returns the current snapshot, nil until a successful response.
func (s *Screen) Snapshot() *domain.DashboardSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot
}

// View builds the rendering contract from the current state and consumes the
// pending alert.
func (s *Screen) View() DashboardView {
	s.mu.Lock()
	snapshot, timeframe, alert := s.snapshot, s.timeframe, s.alert
	s.alert = ""
	s.mu.Unlock()

	return buildView(snapshot, timeframe, alert)
}
