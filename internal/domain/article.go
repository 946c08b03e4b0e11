package domain

import (
	"sort"
	"time"
)

const (
	// UnknownTime is displayed when neither the page nor the search API yields a publish time.
	UnknownTime = "시간 미상"
	// UnknownPublisher is used when no publisher can be derived from the page or its URL.
	UnknownPublisher = "언론사 미상"

	// DisplayTimeLayout formats resolved publish times in notifications.
	DisplayTimeLayout = "2006-01-02 15:04"
)

// Candidate is a search result that has not yet been confirmed as new.
type Candidate struct {
	Link        string
	RawTitle    string
	PubDate     string
	Description string
}

// EnrichedArticle is a candidate with display-ready metadata.
type EnrichedArticle struct {
	Candidate   Candidate
	Title       string
	Publisher   string
	PublishedAt string
}

// Lookup is the outcome of a single metadata extraction.
type Lookup[T any] struct {
	Value T
	Found bool
}

// Found wraps a successfully extracted value.
func Found[T any](v T) Lookup[T] {
	return Lookup[T]{Value: v, Found: true}
}

// NotFound reports a missing value.
func NotFound[T any]() Lookup[T] {
	return Lookup[T]{}
}

// Or returns the looked-up value or fallback when nothing was found.
func (l Lookup[T]) Or(fallback T) T {
	if l.Found {
		return l.Value
	}
	return fallback
}

// SeenSet is the ledger of links that were already notified.
type SeenSet map[string]struct{}

// NewSeenSet builds a set from the given links.
func NewSeenSet(links ...string) SeenSet {
	s := make(SeenSet, len(links))
	for _, link := range links {
		s.Add(link)
	}
	return s
}

func (s SeenSet) Has(link string) bool {
	_, ok := s[link]
	return ok
}

func (s SeenSet) Add(link string) {
	s[link] = struct{}{}
}

// Links returns the members in lexical order.
func (s SeenSet) Links() []string {
	links := make([]string, 0, len(s))
	for link := range s {
		links = append(links, link)
	}
	sort.Strings(links)
	return links
}

// CycleReport summarizes one polling cycle.
type CycleReport struct {
	Candidates int
	Skipped    int
	Sent       int
	Failed     int
	StartedAt  time.Time
	Duration   time.Duration
}
