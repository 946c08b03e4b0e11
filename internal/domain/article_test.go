package domain

import "testing"

func TestParseDate(t *testing.T) {
	t.Parallel()

	if got := ParseDate("Mon, 13 Oct 2025 23:05:00 +0900"); !got.Found || got.Value.Format(DisplayTimeLayout) != "2025-10-13 23:05" {
		t.Fatalf("unexpected parse result: %+v", got)
	}
	if got := ParseDate(""); got.Found {
		t.Fatalf("expected empty input to be not found")
	}
	if got := ParseDate("yesterday"); got.Found {
		t.Fatalf("expected garbage input to be not found")
	}
}

func TestLookupOr(t *testing.T) {
	t.Parallel()

	if got := Found("page").Or("api"); got != "page" {
		t.Fatalf("expected found value, got %s", got)
	}
	if got := NotFound[string]().Or("api"); got != "api" {
		t.Fatalf("expected fallback, got %s", got)
	}
}

func TestSeenSetLinksSorted(t *testing.T) {
	t.Parallel()

	s := NewSeenSet("https://b", "https://a")
	s.Add("https://c")
	s.Add("https://a")

	links := s.Links()
	if len(links) != 3 || links[0] != "https://a" || links[2] != "https://c" {
		t.Fatalf("unexpected links: %v", links)
	}
	if !s.Has("https://b") || s.Has("https://d") {
		t.Fatalf("membership mismatch")
	}
}
