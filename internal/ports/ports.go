package ports

import (
	"context"
	"time"

	"NewsRelay/internal/domain"
)

// SearchClient pulls recent candidates for a query from the news search API.
type SearchClient interface {
	Search(ctx context.Context, query string, limit int) ([]domain.Candidate, error)
}

// MetadataExtractor scrapes display metadata from article pages.
type MetadataExtractor interface {
	FullTitle(ctx context.Context, link string) domain.Lookup[string]
	Publisher(ctx context.Context, link string) string
	PublishedTime(ctx context.Context, link string) domain.Lookup[time.Time]
}

// SeenStore persists the set of already notified links.
type SeenStore interface {
	Load(ctx context.Context) (domain.SeenSet, error)
	Save(ctx context.Context, seen domain.SeenSet) error
}

// Notifier delivers a formatted message to the operator.
type Notifier interface {
	Send(ctx context.Context, text string) error
}

// ErrorReporter forwards failures to an external tracker (e.g., Sentry).
type ErrorReporter interface {
	Report(err error)
}

// Scheduler controls when pipelines execute.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
