package services

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Purger drops expired in-memory state and reports how many entries went
type Purger interface {
	PurgeExpired() int
}

type purgeJob struct {
	name   string
	purger Purger
}

// CronService manages scheduled background jobs
type CronService struct {
	cron     *cron.Cron
	schedule string
	jobs     []purgeJob
	logger   *logrus.Logger
}

// NewCronService creates a new CronService.
// schedule uses the standard five field cron format.
func NewCronService(schedule string, logger *logrus.Logger) *CronService {
	return &CronService{
		cron:     cron.New(),
		schedule: schedule,
		logger:   logger,
	}
}

// AddPurger registers a cleanup job. Call before Start.
func (s *CronService) AddPurger(name string, purger Purger) {
	s.jobs = append(s.jobs, purgeJob{name: name, purger: purger})
}

// Start starts all cron jobs
func (s *CronService) Start() error {
	for _, job := range s.jobs {
		job := job
		if _, err := s.cron.AddFunc(s.schedule, func() { s.runPurgeJob(job) }); err != nil {
			return fmt.Errorf("failed to schedule %s cleanup job: %w", job.name, err)
		}
		s.logger.WithFields(logrus.Fields{
			"job":      job.name,
			"schedule": s.schedule,
		}).Info("Scheduled: purge expired entries")
	}

	s.cron.Start()
	s.logger.Info("Cron service started")
	return nil
}

// Stop stops all cron jobs and waits for running ones
func (s *CronService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("Cron service stopped")
}

func (s *CronService) runPurgeJob(job purgeJob) int {
	startTime := time.Now()
	removed := job.purger.PurgeExpired()

	s.logger.WithFields(logrus.Fields{
		"job":         job.name,
		"removed":     removed,
		"duration_ms": time.Since(startTime).Milliseconds(),
	}).Debug("[CRON] Purged expired entries")
	return removed
}
