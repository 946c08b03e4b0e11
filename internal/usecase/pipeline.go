package usecase

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"NewsRelay/internal/domain"
	"NewsRelay/internal/ports"
)

const defaultLimit = 50

var tagExpr = regexp.MustCompile(`<.*?>`)

// PipelineDeps wires all driven adapters into the polling pipeline.
type PipelineDeps struct {
	Search    ports.SearchClient
	Extractor ports.MetadataExtractor
	Store     ports.SeenStore
	Notifier  ports.Notifier
	Reporter  ports.ErrorReporter
	Logger    *slog.Logger
	Query     string
	Limit     int
}

// Pipeline runs one fetch → enrich → notify → persist cycle.
type Pipeline struct {
	search    ports.SearchClient
	extractor ports.MetadataExtractor
	store     ports.SeenStore
	notifier  ports.Notifier
	reporter  ports.ErrorReporter
	logger    *slog.Logger
	query     string
	limit     int
	now       func() time.Time
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	limit := deps.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	return &Pipeline{
		search:    deps.Search,
		extractor: deps.Extractor,
		store:     deps.Store,
		notifier:  deps.Notifier,
		reporter:  deps.Reporter,
		logger:    deps.Logger,
		query:     deps.Query,
		limit:     limit,
		now:       time.Now,
	}
}

// RunCycle notifies about every new candidate, oldest first, and persists the seen set once at the end.
func (p *Pipeline) RunCycle(ctx context.Context) (domain.CycleReport, error) {
	report := domain.CycleReport{StartedAt: p.now()}

	seen, err := p.store.Load(ctx)
	if err != nil {
		return report, fmt.Errorf("load seen set: %w", err)
	}

	candidates, err := p.search.Search(ctx, p.query, p.limit)
	if err != nil {
		return report, fmt.Errorf("search %q: %w", p.query, err)
	}
	report.Candidates = len(candidates)

	for i := len(candidates) - 1; i >= 0; i-- {
		if ctx.Err() != nil {
			p.warn("cycle interrupted", "remaining", i+1)
			break
		}

		candidate := candidates[i]
		if seen.Has(candidate.Link) {
			report.Skipped++
			continue
		}

		article := p.enrich(ctx, candidate)
		if err := p.notifier.Send(ctx, FormatMessage(article)); err != nil {
			report.Failed++
			p.warn("send failed", "link", candidate.Link, "error", err)
			p.report(fmt.Errorf("notify %s: %w", candidate.Link, err))
			continue
		}

		seen.Add(candidate.Link)
		report.Sent++
		p.debug("notified", "link", candidate.Link, "title", article.Title)
	}

	// Sends that already went out are recorded even when the cycle was interrupted.
	if err := p.store.Save(context.WithoutCancel(ctx), seen); err != nil {
		return report, fmt.Errorf("save seen set: %w", err)
	}

	report.Duration = p.now().Sub(report.StartedAt)
	return report, ctx.Err()
}

// enrich merges API data with page metadata; page values win when present.
func (p *Pipeline) enrich(ctx context.Context, c domain.Candidate) domain.EnrichedArticle {
	title := CleanTitle(c.RawTitle)

	apiTime := domain.ParseDate(c.PubDate)
	pageTime := domain.NotFound[time.Time]()
	if apiTime.Found {
		pageTime = p.extractor.PublishedTime(ctx, c.Link)
	}

	publisher := p.extractor.Publisher(ctx, c.Link)

	if IsTruncated(title) {
		title = p.extractor.FullTitle(ctx, c.Link).Or(title)
	}

	return domain.EnrichedArticle{
		Candidate:   c,
		Title:       title,
		Publisher:   publisher,
		PublishedAt: ResolveTime(pageTime, apiTime),
	}
}

// CleanTitle strips embedded markup from an API title and unescapes entities.
func CleanTitle(raw string) string {
	return html.UnescapeString(tagExpr.ReplaceAllString(raw, ""))
}

// IsTruncated reports whether the search API shortened the title.
func IsTruncated(title string) bool {
	return strings.HasSuffix(title, "...") || strings.HasSuffix(title, "…")
}

// ResolveTime picks the page time, then the API time, then the unknown sentinel.
func ResolveTime(page, api domain.Lookup[time.Time]) string {
	if page.Found {
		return page.Value.Format(domain.DisplayTimeLayout)
	}
	if api.Found {
		return api.Value.Format(domain.DisplayTimeLayout)
	}
	return domain.UnknownTime
}

// FormatMessage renders the Telegram HTML notification for an article.
func FormatMessage(a domain.EnrichedArticle) string {
	return fmt.Sprintf("<a href=\"%s\">%s</a>\n%s / %s",
		html.EscapeString(a.Candidate.Link),
		html.EscapeString(a.Title),
		html.EscapeString(a.Publisher),
		a.PublishedAt,
	)
}

func (p *Pipeline) report(err error) {
	if p.reporter != nil {
		p.reporter.Report(err)
	}
}

func (p *Pipeline) debug(msg string, args ...interface{}) {
	if p.logger != nil {
		p.logger.Debug(msg, args...)
	}
}

func (p *Pipeline) warn(msg string, args ...interface{}) {
	if p.logger != nil {
		p.logger.Warn(msg, args...)
	}
}
