// Package scheduler runs periodic calendar maintenance jobs on cron
// schedules.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Job is a unit of scheduled work.
type Job interface {
	Name() string
	Run(ctx context.Context) error
}

// Scheduler manages background jobs.
type Scheduler struct {
	cron *cron.Cron
	ctx  context.Context
	log  *slog.Logger
}

// New creates a scheduler that evaluates schedules in loc. Jobs receive ctx
// and stop early when it is cancelled.
func New(ctx context.Context, loc *time.Location, log *slog.Logger) *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithLocation(loc)),
		ctx:  ctx,
		log:  log.With("component", "scheduler"),
	}
}

// AddJob registers job on a standard five-field cron spec or a descriptor
// such as "@daily".
func (s *Scheduler) AddJob(spec string, job Job) error {
	_, err := s.cron.AddFunc(spec, func() {
		if err := s.RunNow(job); err != nil {
			s.log.Error("job failed", "job", job.Name(), "error", err)
		}
	})
	if err != nil {
		return err
	}
	s.log.Info("job registered", "job", job.Name(), "schedule", spec)
	return nil
}

// RunNow executes job immediately, outside its schedule.
func (s *Scheduler) RunNow(job Job) error {
	start := time.Now()
	s.log.Debug("running job", "job", job.Name())
	if err := job.Run(s.ctx); err != nil {
		return err
	}
	s.log.Debug("job completed", "job", job.Name(), "elapsed", time.Since(start))
	return nil
}

// Start starts the scheduler in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info("scheduler started")
}

// Stop stops the scheduler and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.log.Info("scheduler stopped")
}
