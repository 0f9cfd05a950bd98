/**
 * @description
 * Cron scheduler setup for scheduled jobs.
 */

package app

import (
	"context"
	"log"

	"github.com/robfig/cron/v3"
)

// Scheduler manages the cron jobs.
type Scheduler struct {
	cron     *cron.Cron
	jobs     *Jobs
	schedule string
}

// NewScheduler creates a new scheduler instance.
func NewScheduler(jobs *Jobs, lowStockDigestSchedule string) *Scheduler {
	c := cron.New(cron.WithChain(cron.Recover(cron.DefaultLogger)))
	return &Scheduler{
		cron:     c,
		jobs:     jobs,
		schedule: lowStockDigestSchedule,
	}
}

// Start registers the jobs and starts the cron scheduler.
func (s *Scheduler) Start() {
	if _, err := s.cron.AddFunc(s.schedule, s.jobs.RunLowStockDigest); err != nil {
		log.Printf("level=error component=scheduler msg=\"failed to schedule low-stock digest job\" schedule=%q err=%v", s.schedule, err)
	} else {
		log.Printf("level=info component=scheduler msg=\"scheduled low-stock digest job\" schedule=%q", s.schedule)
	}

	s.cron.Start()
}

// Stop gracefully stops the cron scheduler.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}
