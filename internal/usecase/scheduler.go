package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"NewsRelay/internal/domain"
	"NewsRelay/internal/ports"
)

// CycleRunner is the unit of work driven by the scheduler.
type CycleRunner interface {
	RunCycle(ctx context.Context) (domain.CycleReport, error)
}

// Scheduler wires the delay driver with the pipeline use case.
type Scheduler struct {
	driver   ports.Scheduler
	runner   CycleRunner
	reporter ports.ErrorReporter
	logger   *slog.Logger
}

// NewScheduler returns a helper to start/stop the polling loop.
func NewScheduler(driver ports.Scheduler, runner CycleRunner, reporter ports.ErrorReporter, log *slog.Logger) *Scheduler {
	return &Scheduler{driver: driver, runner: runner, reporter: reporter, logger: log}
}

// Start registers the pipeline with the provided scheduler.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.driver == nil || s.runner == nil {
		return nil
	}

	job := func(trigger time.Time) {
		_ = s.RunOnce(ctx)
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

// RunOnce executes a single cycle. Failures and panics are logged, reported and returned.
func (s *Scheduler) RunOnce(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("cycle panic: %v", r)
			s.fail(err)
		}
	}()

	report, err := s.runner.RunCycle(ctx)
	if err != nil {
		if ctx.Err() == nil {
			s.fail(err)
		}
		return err
	}

	if s.logger != nil {
		s.logger.Info("cycle done",
			"candidates", report.Candidates,
			"skipped", report.Skipped,
			"sent", report.Sent,
			"failed", report.Failed,
			"elapsed", report.Duration,
		)
	}
	return nil
}

func (s *Scheduler) fail(err error) {
	if s.logger != nil {
		s.logger.Error("cycle failed", "error", err)
	}
	if s.reporter != nil {
		s.reporter.Report(err)
	}
}
