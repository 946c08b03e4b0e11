package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"NewsRelay/internal/domain"
)

type scriptedRunner struct {
	mu    sync.Mutex
	steps []func() (domain.CycleReport, error)
	calls int
}

func (s *scriptedRunner) RunCycle(context.Context) (domain.CycleReport, error) {
	s.mu.Lock()
	step := s.steps[s.calls%len(s.steps)]
	s.calls++
	s.mu.Unlock()
	return step()
}

func (s *scriptedRunner) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

type syncReporter struct {
	mu   sync.Mutex
	errs []error
}

func (r *syncReporter) Report(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errs = append(r.errs, err)
}

func (r *syncReporter) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.errs)
}

// inlineDriver runs the job a fixed number of times synchronously.
type inlineDriver struct{ runs int }

func (d *inlineDriver) Start(_ context.Context, job func(time.Time)) error {
	for i := 0; i < d.runs; i++ {
		job(time.Now())
	}
	return nil
}

func (d *inlineDriver) Stop(context.Context) error { return nil }

func TestSchedulerSurvivesErrorsAndPanics(t *testing.T) {
	t.Parallel()

	runner := &scriptedRunner{steps: []func() (domain.CycleReport, error){
		func() (domain.CycleReport, error) { return domain.CycleReport{}, errors.New("search failed") },
		func() (domain.CycleReport, error) { panic("nil map") },
		func() (domain.CycleReport, error) { return domain.CycleReport{Sent: 1}, nil },
	}}
	reporter := &syncReporter{}

	s := NewScheduler(&inlineDriver{runs: 3}, runner, reporter, nil)
	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start error: %v", err)
	}

	if runner.Calls() != 3 {
		t.Fatalf("expected 3 cycles, got %d", runner.Calls())
	}
	if reporter.Len() != 2 {
		t.Fatalf("expected 2 reported failures, got %d", reporter.Len())
	}
	if !strings.Contains(reporter.errs[1].Error(), "panic") {
		t.Fatalf("expected panic to be reported, got %v", reporter.errs[1])
	}
}

func TestRunOnceReturnsCycleError(t *testing.T) {
	t.Parallel()

	runner := &scriptedRunner{steps: []func() (domain.CycleReport, error){
		func() (domain.CycleReport, error) { return domain.CycleReport{}, errors.New("boom") },
	}}
	s := NewScheduler(nil, runner, nil, nil)

	if err := s.RunOnce(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
}

func TestRunOnceDoesNotReportCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runner := &scriptedRunner{steps: []func() (domain.CycleReport, error){
		func() (domain.CycleReport, error) { return domain.CycleReport{}, context.Canceled },
	}}
	reporter := &syncReporter{}
	s := NewScheduler(nil, runner, reporter, nil)

	if err := s.RunOnce(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if reporter.Len() != 0 {
		t.Fatalf("shutdown should not be reported as a failure")
	}
}
