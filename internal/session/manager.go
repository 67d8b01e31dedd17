package session

import (
	"net/http"
	"time"

	"github.com/gorilla/sessions"
	"github.com/pkg/errors"
	"github.com/vfg2006/studio-console/infrastructure/repository"
	"github.com/vfg2006/studio-console/internal/config"
	"github.com/vfg2006/studio-console/internal/domain"
	"github.com/vfg2006/studio-console/pkg/log"
	"github.com/vfg2006/studio-console/pkg/utils"
)

const (
	sessionIDValue = "sid"
	flashCookie    = "studio_flash"
)

var ErrNoCookie = errors.New("session: no session cookie")

// TokenValidator extracts the claims of a studio backend access token.
type TokenValidator interface {
	ValidateToken(tokenString string) (*domain.Claims, error)
}

// Manager binds console sessions to a signed cookie holding only the session ID.
type Manager struct {
	repo       repository.SessionRepository
	validator  TokenValidator
	store      *sessions.CookieStore
	cookieName string
	ttl        time.Duration
	now        func() time.Time
}

func NewManager(cfg *config.Config, repo repository.SessionRepository, validator TokenValidator) *Manager {
	store := sessions.NewCookieStore([]byte(cfg.Session.Secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(cfg.Session.TTL.Seconds()),
		HttpOnly: true,
		Secure:   !cfg.IsDevelopment(),
		SameSite: http.SameSiteLaxMode,
	}

	return &Manager{
		repo:       repo,
		validator:  validator,
		store:      store,
		cookieName: cfg.Session.CookieName,
		ttl:        cfg.Session.TTL,
		now:        time.Now,
	}
}

// Create starts a console session for a freshly issued backend token. The
// session never outlives the token.
func (m *Manager) Create(w http.ResponseWriter, r *http.Request, accessToken string) (*domain.Session, error) {
	claims, err := m.validator.ValidateToken(accessToken)
	if err != nil {
		return nil, err
	}

	id, err := utils.GenerateSessionID()
	if err != nil {
		return nil, errors.Wrap(err, "session: generate id")
	}

	now := m.now()
	expiresAt := now.Add(m.ttl)
	if claims.ExpiresAt != nil && claims.ExpiresAt.Time.Before(expiresAt) {
		expiresAt = claims.ExpiresAt.Time
	}

	sess := &domain.Session{
		ID:          id,
		UserID:      claims.UserID,
		Name:        claims.UserName,
		Email:       claims.UserEmail,
		AccessToken: accessToken,
		ExpiresAt:   expiresAt,
		CreatedAt:   now,
	}

	if err := m.repo.Create(r.Context(), sess); err != nil {
		return nil, err
	}

	cookie, _ := m.store.Get(r, m.cookieName)
	cookie.Values[sessionIDValue] = id
	if err := cookie.Save(r, w); err != nil {
		return nil, errors.Wrap(err, "session: save cookie")
	}

	return sess, nil
}

// Current returns the session of the request, nil when there is none or it expired.
func (m *Manager) Current(r *http.Request) (*domain.Session, error) {
	id, err := m.sessionID(r)
	if err != nil {
		return nil, nil
	}

	ctx := r.Context()
	sess, err := m.repo.GetByID(ctx, id)
	if err != nil || sess == nil {
		return nil, err
	}

	if sess.Expired(m.now()) {
		if err := m.repo.Delete(ctx, id); err != nil {
			log.ForContext(ctx).WithError(err).Warn("failed to delete expired session")
		}
		return nil, nil
	}

	return sess, nil
}

// Logout ends the request's session and expires its cookie. It returns the
// ended session ID, empty when there was none.
func (m *Manager) Logout(w http.ResponseWriter, r *http.Request) (string, error) {
	id, _ := m.sessionID(r)
	if id != "" {
		if err := m.repo.Delete(r.Context(), id); err != nil {
			return "", err
		}
	}

	cookie, _ := m.store.Get(r, m.cookieName)
	delete(cookie.Values, sessionIDValue)
	cookie.Options.MaxAge = -1
	if err := cookie.Save(r, w); err != nil {
		return id, errors.Wrap(err, "session: expire cookie")
	}

	return id, nil
}

// AddFlash queues a message shown on the next rendered page.
func (m *Manager) AddFlash(w http.ResponseWriter, r *http.Request, message string) {
	flash, _ := m.store.Get(r, flashCookie)
	flash.AddFlash(message)
	if err := flash.Save(r, w); err != nil {
		log.ForContext(r.Context()).WithError(err).Warn("failed to save flash message")
	}
}

// Flashes pops the queued flash messages.
func (m *Manager) Flashes(w http.ResponseWriter, r *http.Request) []string {
	flash, _ := m.store.Get(r, flashCookie)

	var messages []string
	for _, v := range flash.Flashes() {
		if message, ok := v.(string); ok {
			messages = append(messages, message)
		}
	}
	if len(messages) > 0 {
		_ = flash.Save(r, w)
	}

	return messages
}

func (m *Manager) sessionID(r *http.Request) (string, error) {
	cookie, err := m.store.Get(r, m.cookieName)
	if err != nil {
		return "", err
	}

	id, ok := cookie.Values[sessionIDValue].(string)
	if !ok || id == "" {
		return "", ErrNoCookie
	}

	return id, nil
}
