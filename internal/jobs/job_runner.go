package jobs

import (
	"time"

	"sisdisfraz-backend/internal/config"
	"sisdisfraz-backend/internal/domain"
	"sisdisfraz-backend/internal/logger"
	"sisdisfraz-backend/internal/queue"
	"sisdisfraz-backend/internal/repository/postgres"
)

// JobRunner coordinates all scheduled jobs. Jobs that reason about
// "today" do so on the shop's calendar, in the configured timezone.
type JobRunner struct {
	store     *postgres.Store
	publisher *queue.Publisher
	config    *config.Config
	location  *time.Location
}

// NewJobRunner creates a job runner. publisher may be nil, in which
// case DispatchNotifications logs and skips its run.
func NewJobRunner(store *postgres.Store, publisher *queue.Publisher, cfg *config.Config) *JobRunner {
	loc, err := time.LoadLocation(cfg.Scheduler.Timezone)
	if err != nil {
		logger.Warn("Unknown scheduler timezone, falling back to UTC", "timezone", cfg.Scheduler.Timezone)
		loc = time.UTC
	}
	return &JobRunner{
		store:     store,
		publisher: publisher,
		config:    cfg,
		location:  loc,
	}
}

// today is the shop's current calendar date as midnight UTC.
func (jr *JobRunner) today() time.Time {
	return domain.CivilDate(time.Now().In(jr.location))
}

// Config exposes the loaded configuration to the scheduler.
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery.
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}

// RunAllNightlyJobs runs all nightly jobs (for manual execution).
func (jr *JobRunner) RunAllNightlyJobs() {
	jr.MarkOverdueRentals()
	jr.EnqueueReminders()
	jr.DispatchNotifications()
}
