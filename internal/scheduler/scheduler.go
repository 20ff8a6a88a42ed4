package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"prostock/internal/config"
	"prostock/internal/service/cache"
)

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron   *cron.Cron
	cache  *cache.Cache
	cfg    config.Config
	logger *zap.Logger
}

// NewScheduler creates a new scheduler instance.
func NewScheduler(cfg config.Config, stockCache *cache.Cache, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Scheduler{
		cron:   cron.New(),
		cache:  stockCache,
		cfg:    cfg,
		logger: logger,
	}
}

// Start registers the periodic cache refresh and starts the cron loop.
func (s *Scheduler) Start() {
	if !s.cfg.Refresh.Enabled {
		s.logger.Info("periodic refresh disabled")
		return
	}

	s.logger.Info("starting scheduler", zap.String("schedule", s.cfg.Refresh.CronSchedule))

	_, err := s.cron.AddFunc(s.cfg.Refresh.CronSchedule, s.refreshCache)
	if err != nil {
		s.logger.Error("failed to schedule cache refresh", zap.Error(err))
		return
	}

	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) refreshCache() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := s.cache.Refresh(ctx); err != nil {
		s.logger.Error("scheduled cache refresh failed", zap.Error(err))
		return
	}
	s.logger.Info("scheduled cache refresh completed")
}
