package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/studio-console/infrastructure/repository"
	"github.com/vfg2006/studio-console/infrastructure/repository/mocks"
	"github.com/vfg2006/studio-console/internal/config"
	"github.com/vfg2006/studio-console/internal/domain"
	"go.uber.org/mock/gomock"
)

type stubValidator struct {
	claims *domain.Claims
	err    error
}

func (v stubValidator) ValidateToken(string) (*domain.Claims, error) {
	return v.claims, v.err
}

var testNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newTestManager(repo repository.SessionRepository, validator TokenValidator) *Manager {
	cfg := &config.Config{}
	cfg.Session.Secret = "0123456789abcdef0123456789abcdef"
	cfg.Session.CookieName = "studio_session"
	cfg.Session.TTL = 24 * time.Hour

	m := NewManager(cfg, repo, validator)
	m.now = func() time.Time { return testNow }
	return m
}

func withCookies(r *http.Request, rec *httptest.ResponseRecorder) *http.Request {
	for _, c := range rec.Result().Cookies() {
		r.AddCookie(c)
	}
	return r
}

func TestManager_CreateAndCurrent(t *testing.T) {
	repo := repository.NewMemorySessionRepository()
	manager := newTestManager(repo, stubValidator{claims: &domain.Claims{
		UserID:           7,
		UserName:         "Asha",
		UserEmail:        "asha@example.com",
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(testNow.Add(time.Hour))},
	}})

	rec := httptest.NewRecorder()
	created, err := manager.Create(rec, httptest.NewRequest(http.MethodPost, "/login", nil), "token-7")
	require.NoError(t, err)

	assert.Len(t, created.ID, 32)
	assert.Equal(t, 7, created.UserID)
	assert.Equal(t, "Asha", created.Name)
	assert.Equal(t, "token-7", created.AccessToken)
	assert.Equal(t, testNow.Add(time.Hour), created.ExpiresAt)
	require.NotEmpty(t, rec.Result().Cookies())

	req := withCookies(httptest.NewRequest(http.MethodGet, "/dashboard", nil), rec)
	current, err := manager.Current(req)
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, created.ID, current.ID)
	assert.Equal(t, created.Identity(), current.Identity())
}

func TestManager_CreateCapsExpiryAtTTL(t *testing.T) {
	manager := newTestManager(repository.NewMemorySessionRepository(), stubValidator{claims: &domain.Claims{UserID: 1}})

	created, err := manager.Create(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/login", nil), "token")
	require.NoError(t, err)
	assert.Equal(t, testNow.Add(24*time.Hour), created.ExpiresAt)
}

func TestManager_CreateRejectsInvalidToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockSessionRepository(ctrl)
	invalid := errors.New("invalid token")

	manager := newTestManager(repo, stubValidator{err: invalid})

	rec := httptest.NewRecorder()
	_, err := manager.Create(rec, httptest.NewRequest(http.MethodPost, "/login", nil), "bad")
	assert.ErrorIs(t, err, invalid)
	assert.Empty(t, rec.Result().Cookies())
}

func TestManager_CurrentWithoutCookie(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockSessionRepository(ctrl)
	manager := newTestManager(repo, stubValidator{})

	current, err := manager.Current(httptest.NewRequest(http.MethodGet, "/dashboard", nil))
	assert.NoError(t, err)
	assert.Nil(t, current)
}

func TestManager_CurrentDeletesExpiredSession(t *testing.T) {
	repo := repository.NewMemorySessionRepository()
	manager := newTestManager(repo, stubValidator{claims: &domain.Claims{UserID: 1}})

	rec := httptest.NewRecorder()
	created, err := manager.Create(rec, httptest.NewRequest(http.MethodPost, "/login", nil), "token")
	require.NoError(t, err)

	manager.now = func() time.Time { return testNow.Add(25 * time.Hour) }

	current, err := manager.Current(withCookies(httptest.NewRequest(http.MethodGet, "/dashboard", nil), rec))
	require.NoError(t, err)
	assert.Nil(t, current)

	stored, err := repo.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Nil(t, stored)
}

func TestManager_CurrentRepositoryFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockSessionRepository(ctrl)
	manager := newTestManager(repo, stubValidator{claims: &domain.Claims{UserID: 1}})

	repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
	rec := httptest.NewRecorder()
	_, err := manager.Create(rec, httptest.NewRequest(http.MethodPost, "/login", nil), "token")
	require.NoError(t, err)

	dbErr := errors.New("connection refused")
	repo.EXPECT().GetByID(gomock.Any(), gomock.Any()).Return(nil, dbErr)

	current, err := manager.Current(withCookies(httptest.NewRequest(http.MethodGet, "/dashboard", nil), rec))
	assert.ErrorIs(t, err, dbErr)
	assert.Nil(t, current)
}

func TestManager_Logout(t *testing.T) {
	repo := repository.NewMemorySessionRepository()
	manager := newTestManager(repo, stubValidator{claims: &domain.Claims{UserID: 1}})

	rec := httptest.NewRecorder()
	created, err := manager.Create(rec, httptest.NewRequest(http.MethodPost, "/login", nil), "token")
	require.NoError(t, err)

	logoutRec := httptest.NewRecorder()
	id, err := manager.Logout(logoutRec, withCookies(httptest.NewRequest(http.MethodPost, "/logout", nil), rec))
	require.NoError(t, err)
	assert.Equal(t, created.ID, id)

	stored, err := repo.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Nil(t, stored)

	cookies := logoutRec.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.True(t, cookies[0].MaxAge < 0)
}

func TestManager_Flashes(t *testing.T) {
	manager := newTestManager(repository.NewMemorySessionRepository(), stubValidator{})

	rec := httptest.NewRecorder()
	manager.AddFlash(rec, httptest.NewRequest(http.MethodPost, "/logout", nil), "Your session has expired")

	next := withCookies(httptest.NewRequest(http.MethodGet, "/login", nil), rec)
	assert.Equal(t, []string{"Your session has expired"}, manager.Flashes(httptest.NewRecorder(), next))

	empty := httptest.NewRequest(http.MethodGet, "/login", nil)
	assert.Empty(t, manager.Flashes(httptest.NewRecorder(), empty))
}
