package reporting

import (
	"errors"
	"testing"
	"time"

	"NewsRelay/internal/config"
)

func TestNewSentryReporterWithoutDSN(t *testing.T) {
	t.Parallel()

	r, err := NewSentryReporter(config.SentryConfig{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r != nil {
		t.Fatalf("expected nil reporter without DSN")
	}

	// nil reporters must be safe to use.
	r.Report(errors.New("boom"))
	if !r.Flush(time.Millisecond) {
		t.Fatalf("expected nil flush to succeed")
	}
}

func TestNewSentryReporterRejectsBadDSN(t *testing.T) {
	t.Parallel()

	if _, err := NewSentryReporter(config.SentryConfig{DSN: "://not-a-dsn"}); err == nil {
		t.Fatalf("expected error for malformed DSN")
	}
}
