package dashboarding

import (
	"sync"

	"github.com/vfg2006/studio-console/internal/domain"
)

// Registry keeps one Screen per console session.
type Registry struct {
	fetcher Fetcher

	mu      sync.Mutex
	screens map[string]*Screen
}

func NewRegistry(fetcher Fetcher) *Registry {
	return &Registry{
		fetcher: fetcher,
		screens: make(map[string]*Screen),
	}
}

// ScreenFor returns the screen of sess, creating it on first use. Without a
// session a detached screen is returned; its effect only redirects.
func (r *Registry) ScreenFor(sess *domain.Session) *Screen {
	if sess == nil {
		return NewScreen(r.fetcher)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	screen, ok := r.screens[sess.ID]
	if !ok {
		screen = NewScreen(r.fetcher)
		r.screens[sess.ID] = screen
	}
	return screen
}

// Forget drops the screens of the given sessions.
func (r *Registry) Forget(sessionIDs ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, id := range sessionIDs {
		delete(r.screens, id)
	}
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.screens)
}
