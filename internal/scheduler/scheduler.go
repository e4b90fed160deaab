// Package scheduler runs periodic maintenance jobs.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// SessionPurger deletes expired sessions and reports how many went.
type SessionPurger interface {
	PurgeExpiredSessions(ctx context.Context) (int64, error)
}

type Scheduler struct {
	cron *cron.Cron
	log  *logrus.Logger
}

// New creates a stopped scheduler. Jobs recover from panics and a run is
// skipped while the previous one is still going.
func New(log *logrus.Logger) *Scheduler {
	logger := cron.PrintfLogger(log)
	return &Scheduler{
		cron: cron.New(cron.WithLogger(logger), cron.WithChain(
			cron.Recover(logger),
			cron.SkipIfStillRunning(logger),
		)),
		log: log,
	}
}

// SchedulePurge registers the session purge under a cron expression such as
// "@hourly" or "*/15 * * * *".
func (s *Scheduler) SchedulePurge(schedule string, purger SessionPurger) error {
	if _, err := s.cron.AddFunc(schedule, purgeJob(purger, s.log)); err != nil {
		return fmt.Errorf("invalid purge schedule %q: %w", schedule, err)
	}
	s.log.Infof("Session purge scheduled: %s", schedule)
	return nil
}

func purgeJob(purger SessionPurger, log *logrus.Logger) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		n, err := purger.PurgeExpiredSessions(ctx)
		if err != nil {
			log.Errorf("Failed to purge expired sessions: %v", err)
			return
		}
		log.Debugf("Session purge removed %d sessions", n)
	}
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop prevents new runs and waits up to ctx for running jobs.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
		s.log.Warn("Scheduler stopped before running jobs finished")
	}
}
