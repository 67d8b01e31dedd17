package handler

import (
	"net/http"

	"github.com/vfg2006/studio-console/internal/domain"
	"github.com/vfg2006/studio-console/internal/usecases/dashboarding"
)

// SessionManager is the console session API the handlers rely on.
type SessionManager interface {
	Create(w http.ResponseWriter, r *http.Request, accessToken string) (*domain.Session, error)
	Logout(w http.ResponseWriter, r *http.Request) (string, error)
	AddFlash(w http.ResponseWriter, r *http.Request, message string)
	Flashes(w http.ResponseWriter, r *http.Request) []string
}

// ScreenRegistry hands out the dashboard screen of a session.
type ScreenRegistry interface {
	ScreenFor(sess *domain.Session) *dashboarding.Screen
	Forget(sessionIDs ...string)
}
