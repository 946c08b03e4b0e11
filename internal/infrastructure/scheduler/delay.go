package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	"NewsRelay/internal/ports"
)

// DelayScheduler runs a job, waits a fixed interval after it returns, and repeats.
// Runs never overlap.
type DelayScheduler struct {
	interval time.Duration

	mu   sync.Mutex
	stop chan struct{}
	done chan struct{}
}

var _ ports.Scheduler = (*DelayScheduler)(nil)

// NewDelayScheduler builds a scheduler with the given pause between runs.
func NewDelayScheduler(interval time.Duration) *DelayScheduler {
	return &DelayScheduler{interval: interval}
}

// Start runs job immediately and then after every pause until ctx is done or Stop is called.
func (d *DelayScheduler) Start(ctx context.Context, job func(time.Time)) error {
	if job == nil {
		return nil
	}
	if d.interval <= 0 {
		return errors.New("delay scheduler: interval must be positive")
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stop != nil {
		return nil
	}

	stop := make(chan struct{})
	done := make(chan struct{})
	d.stop, d.done = stop, done

	go func() {
		defer close(done)
		timer := time.NewTimer(0)
		defer timer.Stop()
		for {
			select {
			case t := <-timer.C:
				job(t)
				timer.Reset(d.interval)
			case <-ctx.Done():
				return
			case <-stop:
				return
			}
		}
	}()

	return nil
}

// Stop halts the loop and waits for an in-flight job to return.
func (d *DelayScheduler) Stop(ctx context.Context) error {
	d.mu.Lock()
	stop, done := d.stop, d.done
	d.stop, d.done = nil, nil
	d.mu.Unlock()

	if stop == nil {
		return nil
	}
	close(stop)

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Done is closed once the loop has exited; nil when not started.
func (d *DelayScheduler) Done() <-chan struct{} {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.done
}
