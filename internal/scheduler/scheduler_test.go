package scheduler

import (
	"context"
	"errors"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

type countingPurger struct {
	calls atomic.Int32
	err   error
}

func (p *countingPurger) PurgeExpiredSessions(ctx context.Context) (int64, error) {
	p.calls.Add(1)
	if _, ok := ctx.Deadline(); !ok {
		return 0, errors.New("purge must run with a deadline")
	}
	return 3, p.err
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestSchedulePurgeRejectsBadSpec(t *testing.T) {
	s := New(quietLogger())
	if err := s.SchedulePurge("every now and then", &countingPurger{}); err == nil {
		t.Fatal("expected an error for an invalid schedule")
	}
	if err := s.SchedulePurge("@every 1h", &countingPurger{}); err != nil {
		t.Fatalf("valid schedule rejected: %v", err)
	}
}

func TestPurgeJob(t *testing.T) {
	p := &countingPurger{}
	purgeJob(p, quietLogger())()
	if p.calls.Load() != 1 {
		t.Fatalf("expected one purge, got %d", p.calls.Load())
	}

	// Errors are logged, not propagated.
	failing := &countingPurger{err: errors.New("db down")}
	purgeJob(failing, quietLogger())()
	if failing.calls.Load() != 1 {
		t.Fatalf("expected one purge attempt, got %d", failing.calls.Load())
	}
}

func TestStartStop(t *testing.T) {
	s := New(quietLogger())
	p := &countingPurger{}
	if err := s.SchedulePurge("@every 1h", p); err != nil {
		t.Fatalf("SchedulePurge: %v", err)
	}
	s.Start()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s.Stop(ctx)
	if p.calls.Load() != 0 {
		t.Fatalf("hourly job should not have run, got %d calls", p.calls.Load())
	}
}
