package domain

import (
	"net/mail"
	"strings"
	"time"
)

// ParseDate parses RFC 2822 dates such as "Tue, 14 Oct 2025 09:30:00 +0900".
func ParseDate(value string) Lookup[time.Time] {
	value = strings.TrimSpace(value)
	if value == "" {
		return NotFound[time.Time]()
	}
	parsed, err := mail.ParseDate(value)
	if err != nil {
		return NotFound[time.Time]()
	}
	return Found(parsed)
}
