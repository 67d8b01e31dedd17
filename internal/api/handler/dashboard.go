package handler

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/studio-console/internal/domain"
	"github.com/vfg2006/studio-console/internal/usecases/dashboarding"
	"github.com/vfg2006/studio-console/internal/view"
	"github.com/vfg2006/studio-console/pkg/apiErrors"
	"github.com/vfg2006/studio-console/pkg/log"
	"github.com/vfg2006/studio-console/pkg/middleware"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const msgSessionExpired = "Your session has expired. Please sign in again."

func Root() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, DashboardPath, http.StatusFound)
	}
}

// logoutOnRejection ends the session the backend no longer accepts.
func logoutOnRejection(w http.ResponseWriter, r *http.Request, sessions SessionManager, screens ScreenRegistry) dashboarding.LogoutFunc {
	return func() {
		id, err := sessions.Logout(w, r)
		if err != nil {
			log.ForContext(r.Context()).WithError(err).Error("failed to end rejected session")
		}
		if id != "" {
			screens.Forget(id)
		}
		sessions.AddFlash(w, r, msgSessionExpired)
	}
}

// Dashboard mounts the dashboard screen and renders it. A valid ?timeframe=
// pre-selects the KPI timeframe.
func Dashboard(screens ScreenRegistry, sessions SessionManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := middleware.SessionFromContext(r.Context())
		screen := screens.ScreenFor(sess)

		outcome := screen.Mount(r.Context(), sess, logoutOnRejection(w, r, sessions, screens))
		if outcome.Redirect != "" {
			http.Redirect(w, r, outcome.Redirect, http.StatusFound)
			return
		}

		if raw := r.URL.Query().Get("timeframe"); raw != "" {
			if tf, err := domain.ParseTimeframe(raw); err == nil {
				screen.SelectTimeframe(tf)
			}
		}

		renderDashboard(w, r, http.StatusOK, sess, screen, sessions)
	}
}

// SelectTimeframe switches the KPI timeframe of the mounted screen without
// refetching.
func SelectTimeframe(screens ScreenRegistry, sessions SessionManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := middleware.SessionFromContext(r.Context())
		if sess == nil {
			http.Redirect(w, r, dashboarding.LoginPath, http.StatusSeeOther)
			return
		}

		screen := screens.ScreenFor(sess)
		outcome := screen.Sync(r.Context(), sess, logoutOnRejection(w, r, sessions, screens))
		if outcome.Redirect != "" {
			http.Redirect(w, r, outcome.Redirect, http.StatusSeeOther)
			return
		}

		status := http.StatusOK
		if err := r.ParseForm(); err != nil {
			status = http.StatusBadRequest
		} else if tf, err := domain.ParseTimeframe(r.PostForm.Get("timeframe")); err != nil {
			status = http.StatusBadRequest
		} else {
			screen.SelectTimeframe(tf)
		}

		renderDashboard(w, r, status, sess, screen, sessions)
	}
}

// DismissAlert re-renders the mounted screen once its alert was shown. The
// screen is synced, not remounted, so a failed load is not fetched again.
func DismissAlert(screens ScreenRegistry, sessions SessionManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := middleware.SessionFromContext(r.Context())
		if sess == nil {
			http.Redirect(w, r, dashboarding.LoginPath, http.StatusFound)
			return
		}

		screen := screens.ScreenFor(sess)
		outcome := screen.Sync(r.Context(), sess, logoutOnRejection(w, r, sessions, screens))
		if outcome.Redirect != "" {
			http.Redirect(w, r, outcome.Redirect, http.StatusFound)
			return
		}

		renderDashboard(w, r, http.StatusOK, sess, screen, sessions)
	}
}

// DashboardJSON returns the view of the mounted screen. It only fetches when
// the screen was never mounted or the session identity changed.
func DashboardJSON(screens ScreenRegistry, sessions SessionManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := middleware.SessionFromContext(r.Context())
		if sess == nil {
			apiErrors.WriteError(w, apiErrors.ErrSessionRequired, "sign in to view the dashboard", nil)
			return
		}

		screen := screens.ScreenFor(sess)
		outcome := screen.Sync(r.Context(), sess, logoutOnRejection(w, r, sessions, screens))
		if outcome.LoggedOut {
			apiErrors.WriteError(w, apiErrors.ErrSessionExpired, msgSessionExpired, nil)
			return
		}

		if raw := r.URL.Query().Get("timeframe"); raw != "" {
			tf, err := domain.ParseTimeframe(raw)
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidTimeframe, err.Error(), domain.Timeframes)
				return
			}
			screen.SelectTimeframe(tf)
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(screen.View()); err != nil {
			log.ForContext(r.Context()).WithError(err).Warn("failed to encode dashboard view")
		}
	}
}

func renderDashboard(w http.ResponseWriter, r *http.Request, status int, sess *domain.Session, screen *dashboarding.Screen, sessions SessionManager) {
	flashes := sessions.Flashes(w, r)
	if err := view.Render(w, status, view.DashboardPage(sess, screen.View(), flashes)); err != nil {
		log.ForContext(r.Context()).WithError(err).Warn("failed to render dashboard")
	}
}
