package usecase

import (
	"context"
	"time"

	"fedwatch/internal/ports"
)

// Scheduler wires the cron-like driver with the workflow.
type Scheduler struct {
	driver   ports.Scheduler
	workflow *Workflow
}

// NewScheduler returns a helper to start/stop recurring runs.
func NewScheduler(driver ports.Scheduler, workflow *Workflow) *Scheduler {
	return &Scheduler{driver: driver, workflow: workflow}
}

// Start registers the workflow with the provided scheduler. Scheduled runs
// always auto-detect the cycle; date overrides are a CLI concern.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.driver == nil || s.workflow == nil {
		return nil
	}

	job := func(time.Time) {
		_, _ = s.workflow.Run(ctx, time.Time{})
	}

	return s.driver.Start(ctx, job)
}

// Stop gracefully tears down the underlying scheduler.
func (s *Scheduler) Stop(ctx context.Context) error {
	if s.driver == nil {
		return nil
	}

	return s.driver.Stop(ctx)
}
