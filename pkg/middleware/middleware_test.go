package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/studio-console/internal/domain"
	"github.com/vfg2006/studio-console/pkg/log"
)

type loaderFunc func(r *http.Request) (*domain.Session, error)

func (f loaderFunc) Current(r *http.Request) (*domain.Session, error) { return f(r) }

func TestSessionMiddleware(t *testing.T) {
	tests := []struct {
		name     string
		loader   loaderFunc
		expected *domain.Session
	}{
		{
			name: "signed in",
			loader: func(*http.Request) (*domain.Session, error) {
				return &domain.Session{ID: "s1", UserID: 1}, nil
			},
			expected: &domain.Session{ID: "s1", UserID: 1},
		},
		{
			name:   "signed out",
			loader: func(*http.Request) (*domain.Session, error) { return nil, nil },
		},
		{
			name: "loader failure does not reject",
			loader: func(*http.Request) (*domain.Session, error) {
				return nil, errors.New("db down")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got *domain.Session
			var called bool
			handler := SessionMiddleware(tt.loader)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				got = SessionFromContext(r.Context())
				if got != nil {
					assert.Equal(t, got.ID, r.Context().Value(log.SessionIDKey))
				}
			}))

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard", nil))

			assert.True(t, called)
			assert.Equal(t, tt.expected, got)
			assert.Equal(t, http.StatusOK, rec.Code)
		})
	}
}

func TestCors(t *testing.T) {
	handler := Cors([]string{"http://localhost:3000"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest(http.MethodGet, "/v1/dashboard", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, http.StatusTeapot, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/v1/dashboard", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/v1/dashboard", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLogPanicMiddleware(t *testing.T) {
	var buf bytes.Buffer
	log.SetupTestLogger(&buf)

	handler := LogPanicMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, buf.String(), "boom")
}

func TestLoggingMiddleware(t *testing.T) {
	var buf bytes.Buffer
	log.SetupTestLogger(&buf)

	var correlationID string
	handler := LoggingMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		correlationID = log.GetCorrelationID(r.Context())
		w.WriteHeader(http.StatusNotFound)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))

	assert.NotEmpty(t, correlationID)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, buf.String(), "status_code=404")
}
