package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"

	"bloodlink-backend/internal/jobs"
	"bloodlink-backend/internal/logger"
)

// Scheduler manages cron job scheduling
type Scheduler struct {
	cron *cron.Cron
	jobs *jobs.JobRunner
}

// NewScheduler creates a new scheduler with the provided job runner
func NewScheduler(jobRunner *jobs.JobRunner) *Scheduler {
	// Create cron with local timezone and seconds precision; expiration
	// and reminders key off local calendar days.
	c := cron.New(
		cron.WithLocation(time.Local),
		cron.WithSeconds(),
	)

	s := &Scheduler{
		cron: c,
		jobs: jobRunner,
	}

	s.registerJobs()
	return s
}

// registerJobs registers all scheduled jobs with the cron scheduler
func (s *Scheduler) registerJobs() {
	cfg := s.jobs.Config().Scheduler

	// Nightly: reclassify expired inventory lots
	_, err := s.cron.AddFunc(cfg.ExpireInventoryLots, s.jobs.ExpireInventoryLots)
	if err != nil {
		logger.Error("Failed to register ExpireInventoryLots job", "error", err)
	}

	// Morning: remind donors with appointments in the next 24 hours
	_, err = s.cron.AddFunc(cfg.SendAppointmentReminders, s.jobs.SendAppointmentReminders)
	if err != nil {
		logger.Error("Failed to register SendAppointmentReminders job", "error", err)
	}

	logger.Info("All cron jobs registered successfully")
}

// Start begins the cron scheduler
func (s *Scheduler) Start() {
	logger.Info("Starting cron scheduler...")
	s.cron.Start()
	logger.Info("Cron scheduler started successfully")
}

// Stop gracefully stops the cron scheduler
func (s *Scheduler) Stop() {
	logger.Info("Stopping cron scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info("Cron scheduler stopped")
}

// IsRunning returns true if the scheduler is running
func (s *Scheduler) IsRunning() bool {
	return len(s.cron.Entries()) > 0
}
