package scheduler

import (
	"context"
	"fmt"
	"strings"

	"github.com/robfig/cron/v3"
	"github.com/vytor/killstats/internal/logger"
	"github.com/vytor/killstats/internal/worker"
)

// Submitter accepts jobs without blocking; *worker.Pool implements it.
type Submitter interface {
	TrySubmit(job worker.Job) error
}

// Scheduler submits jobs to a worker pool on cron schedules. Jobs run on the
// pool, so a slow job never holds up the cron loop.
type Scheduler struct {
	cron *cron.Cron
	pool Submitter
	log  *logger.Logger
}

// New creates a scheduler using the standard 5-field parser, which also accepts
// descriptors such as "@daily" and "@every 1h".
func New(pool Submitter) *Scheduler {
	return &Scheduler{
		cron: cron.New(),
		pool: pool,
		log:  logger.Default().WithPrefix("scheduler"),
	}
}

// Add registers job under spec. An empty spec leaves the job disabled.
func (s *Scheduler) Add(spec string, job worker.Job) error {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		s.log.Info("job %s disabled (no schedule)", job.Name())
		return nil
	}
	_, err := s.cron.AddFunc(spec, func() {
		if err := s.pool.TrySubmit(job); err != nil {
			s.log.Warn("skipping scheduled %s: %v", job.Name(), err)
		}
	})
	if err != nil {
		return fmt.Errorf("schedule %s %q: %w", job.Name(), spec, err)
	}
	s.log.Info("scheduled %s: %s", job.Name(), spec)
	return nil
}

// Entries exposes the registered schedules.
func (s *Scheduler) Entries() []cron.Entry {
	return s.cron.Entries()
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info("scheduler started with %d jobs", len(s.cron.Entries()))
}

// Stop halts the cron loop. The returned context is done once any in-flight
// submission has returned.
func (s *Scheduler) Stop() context.Context {
	ctx := s.cron.Stop()
	s.log.Info("scheduler stopped")
	return ctx
}
