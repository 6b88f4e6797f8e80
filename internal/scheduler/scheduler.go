package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"

	"sisdisfraz-backend/internal/jobs"
	"sisdisfraz-backend/internal/logger"
)

// Scheduler manages cron job scheduling.
type Scheduler struct {
	cron *cron.Cron
	jobs *jobs.JobRunner
}

func NewScheduler(jobRunner *jobs.JobRunner, location *time.Location) *Scheduler {
	c := cron.New(
		cron.WithLocation(location),
		cron.WithSeconds(),
	)

	s := &Scheduler{
		cron: c,
		jobs: jobRunner,
	}

	s.registerJobs()
	return s
}

func (s *Scheduler) registerJobs() {
	cfg := s.jobs.Config().Scheduler

	_, err := s.cron.AddFunc(cfg.MarkOverdueRentals, s.jobs.MarkOverdueRentals)
	if err != nil {
		logger.Error("Failed to register MarkOverdueRentals job", "error", err)
	}

	_, err = s.cron.AddFunc(cfg.EnqueueReminders, s.jobs.EnqueueReminders)
	if err != nil {
		logger.Error("Failed to register EnqueueReminders job", "error", err)
	}

	_, err = s.cron.AddFunc(cfg.DispatchNotifications, s.jobs.DispatchNotifications)
	if err != nil {
		logger.Error("Failed to register DispatchNotifications job", "error", err)
	}

	logger.Info("All cron jobs registered successfully")
}

// Start begins the cron scheduler.
func (s *Scheduler) Start() {
	logger.Info("Starting cron scheduler...")
	s.cron.Start()
	logger.Info("Cron scheduler started successfully")
}

// Stop gracefully stops the cron scheduler, waiting for running jobs.
func (s *Scheduler) Stop() {
	logger.Info("Stopping cron scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info("Cron scheduler stopped")
}
