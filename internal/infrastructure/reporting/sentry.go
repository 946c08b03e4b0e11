package reporting

import (
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"

	"NewsRelay/internal/config"
	"NewsRelay/internal/ports"
)

// SentryReporter forwards cycle failures to Sentry.
type SentryReporter struct {
	hub *sentry.Hub
}

var _ ports.ErrorReporter = (*SentryReporter)(nil)

// NewSentryReporter initialises a dedicated Sentry client. It returns nil when no DSN is set.
func NewSentryReporter(cfg config.SentryConfig) (*SentryReporter, error) {
	if cfg.DSN == "" {
		return nil, nil
	}

	client, err := sentry.NewClient(sentry.ClientOptions{
		Dsn:         cfg.DSN,
		Environment: cfg.Environment,
		Release:     cfg.Release,
	})
	if err != nil {
		return nil, fmt.Errorf("init sentry: %w", err)
	}

	return &SentryReporter{hub: sentry.NewHub(client, sentry.NewScope())}, nil
}

// Report captures err; a nil reporter is a no-op.
func (r *SentryReporter) Report(err error) {
	if r == nil || err == nil {
		return
	}
	r.hub.CaptureException(err)
}

// Flush waits for buffered events to be delivered.
func (r *SentryReporter) Flush(timeout time.Duration) bool {
	if r == nil {
		return true
	}
	return r.hub.Flush(timeout)
}
