package parser

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"NewsRelay/internal/config"
	"NewsRelay/internal/domain"
	"NewsRelay/internal/ports"
)

const (
	defaultPageTimeout = 5 * time.Second
	defaultUserAgent   = "NewsRelay/1.0"
)

var hostLabelExpr = regexp.MustCompile(`https?://(?:www\.)?([^/.]+)`)

// MetadataExtractor scrapes title, publisher and publish time from article pages.
// Every lookup performs its own page fetch and never returns an error.
type MetadataExtractor struct {
	client    *http.Client
	userAgent string
	logger    *slog.Logger
}

var _ ports.MetadataExtractor = (*MetadataExtractor)(nil)

// NewMetadataExtractor wires an HTTP client; timeout defaults to 5 seconds.
func NewMetadataExtractor(cfg config.ScraperConfig, log *slog.Logger) *MetadataExtractor {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultPageTimeout
	}
	ua := cfg.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}
	return &MetadataExtractor{
		client:    &http.Client{Timeout: timeout},
		userAgent: ua,
		logger:    log,
	}
}

// FullTitle prefers og:title and falls back to the document title.
func (m *MetadataExtractor) FullTitle(ctx context.Context, link string) domain.Lookup[string] {
	doc, err := m.fetchDocument(ctx, link)
	if err != nil {
		m.debug("full title unavailable", "url", link, "error", err)
		return domain.NotFound[string]()
	}
	return titleFromDocument(doc)
}

// Publisher resolves the press name from the page, then the URL host, then a sentinel.
func (m *MetadataExtractor) Publisher(ctx context.Context, link string) string {
	page := domain.NotFound[string]()
	doc, err := m.fetchDocument(ctx, link)
	if err != nil {
		m.debug("publisher page unavailable", "url", link, "error", err)
	} else {
		page = publisherFromDocument(doc)
	}
	return ResolvePublisher(page, link)
}

// PublishedTime reads article:published_time as an RFC 2822 date.
func (m *MetadataExtractor) PublishedTime(ctx context.Context, link string) domain.Lookup[time.Time] {
	doc, err := m.fetchDocument(ctx, link)
	if err != nil {
		m.debug("published time unavailable", "url", link, "error", err)
		return domain.NotFound[time.Time]()
	}
	return publishedTimeFromDocument(doc)
}

// ResolvePublisher applies the publisher fallback chain.
func ResolvePublisher(page domain.Lookup[string], link string) string {
	if page.Found {
		return page.Value
	}
	if host := HostLabel(link); host != "" {
		return host
	}
	return domain.UnknownPublisher
}

// HostLabel returns the first host label of link, skipping a leading "www.".
func HostLabel(link string) string {
	match := hostLabelExpr.FindStringSubmatch(link)
	if len(match) < 2 {
		return ""
	}
	return match[1]
}

func titleFromDocument(doc *goquery.Document) domain.Lookup[string] {
	if og := metaContent(doc, "og:title"); og.Found {
		return og
	}
	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		return domain.Found(title)
	}
	return domain.NotFound[string]()
}

func publisherFromDocument(doc *goquery.Document) domain.Lookup[string] {
	if site := metaContent(doc, "og:site_name"); site.Found {
		return site
	}
	return metaContent(doc, "og:article:author")
}

func publishedTimeFromDocument(doc *goquery.Document) domain.Lookup[time.Time] {
	raw := metaContent(doc, "article:published_time")
	if !raw.Found {
		return domain.NotFound[time.Time]()
	}
	return domain.ParseDate(raw.Value)
}

func metaContent(doc *goquery.Document, property string) domain.Lookup[string] {
	content, ok := doc.Find(fmt.Sprintf(`meta[property=%q]`, property)).First().Attr("content")
	if !ok {
		return domain.NotFound[string]()
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return domain.NotFound[string]()
	}
	return domain.Found(content)
}

func (m *MetadataExtractor) fetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", m.userAgent)

	resp, err := m.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("page returned %s", resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	return doc, nil
}

func (m *MetadataExtractor) debug(msg string, args ...interface{}) {
	if m.logger != nil {
		m.logger.Debug(msg, args...)
	}
}
