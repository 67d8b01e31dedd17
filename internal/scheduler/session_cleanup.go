// Package scheduler runs the console's background jobs.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/vfg2006/studio-console/infrastructure/repository"
	"github.com/vfg2006/studio-console/internal/config"
	"github.com/vfg2006/studio-console/pkg/log"
)

// ScreenForgetter drops the dashboard screens of ended sessions.
type ScreenForgetter interface {
	Forget(sessionIDs ...string)
}

type SessionCleanupConfig struct {
	CronSchedule string
	Enabled      bool
}

// SessionCleanupService purges expired console sessions on a cron schedule.
type SessionCleanupService struct {
	scheduler *gocron.Scheduler
	config    SessionCleanupConfig
	repo      repository.SessionRepository
	screens   ScreenForgetter
	now       func() time.Time

	runMutex        sync.Mutex
	running         bool
	lastCompletedAt time.Time
}

func NewSessionCleanupService(
	repo repository.SessionRepository,
	screens ScreenForgetter,
	cfg *config.Config,
) *SessionCleanupService {
	cleanupConfig := SessionCleanupConfig{
		CronSchedule: cfg.SessionCleanup.CronSchedule,
		Enabled:      cfg.SessionCleanup.Enabled,
	}

	log.L.WithFields(log.Fields{
		"cron_schedule": cleanupConfig.CronSchedule,
		"enabled":       cleanupConfig.Enabled,
	}).Info("session cleanup scheduler configured")

	return &SessionCleanupService{
		scheduler: gocron.NewScheduler(time.Local),
		config:    cleanupConfig,
		repo:      repo,
		screens:   screens,
		now:       time.Now,
	}
}

func (s *SessionCleanupService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		log.L.Info("session cleanup disabled by configuration")
		return nil
	}

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if _, err := s.PurgeExpired(ctx); err != nil {
			log.L.WithError(err).Error("session cleanup failed")
		}
	})
	if err != nil {
		return fmt.Errorf("schedule session cleanup: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		log.L.Info("stopping session cleanup scheduler")
		s.scheduler.Stop()
	}()

	return nil
}

// PurgeExpired deletes expired sessions and forgets their dashboard screens.
// Overlapping runs are skipped.
func (s *SessionCleanupService) PurgeExpired(ctx context.Context) (int, error) {
	s.runMutex.Lock()
	if s.running {
		s.runMutex.Unlock()
		log.L.Warn("session cleanup already running")
		return 0, nil
	}
	s.running = true
	s.runMutex.Unlock()

	defer func() {
		s.runMutex.Lock()
		s.running = false
		s.lastCompletedAt = s.now()
		s.runMutex.Unlock()
	}()

	ids, err := s.repo.DeleteExpired(ctx, s.now())
	if err != nil {
		return 0, err
	}

	if len(ids) > 0 {
		s.screens.Forget(ids...)
	}

	log.L.WithField("purged", len(ids)).Debug("expired sessions purged")

	return len(ids), nil
}

func (s *SessionCleanupService) LastCompletedAt() time.Time {
	s.runMutex.Lock()
	defer s.runMutex.Unlock()
	return s.lastCompletedAt
}
