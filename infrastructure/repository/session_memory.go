package repository

import (
	"context"
	"sync"
	"time"

	"github.com/vfg2006/studio-console/internal/domain"
)

// memorySessionRepository keeps sessions in process memory. Sessions are lost
// on restart, which only forces creators to sign in again.
type memorySessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]domain.Session
}

func NewMemorySessionRepository() SessionRepository {
	return &memorySessionRepository{
		sessions: make(map[string]domain.Session),
	}
}

func (r *memorySessionRepository) Create(_ context.Context, session *domain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.ID] = *session
	return nil
}

func (r *memorySessionRepository) GetByID(_ context.Context, id string) (*domain.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, ok := r.sessions[id]
	if !ok {
		return nil, nil
	}
	return &session, nil
}

func (r *memorySessionRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
	return nil
}

func (r *memorySessionRepository) DeleteExpired(_ context.Context, now time.Time) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var ids []string
	for id, session := range r.sessions {
		if session.Expired(now) {
			ids = append(ids, id)
			delete(r.sessions, id)
		}
	}
	return ids, nil
}
