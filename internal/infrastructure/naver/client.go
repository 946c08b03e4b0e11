package naver

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"NewsRelay/internal/config"
	"NewsRelay/internal/domain"
	"NewsRelay/internal/ports"
)

const (
	// DefaultEndpoint is the Naver news search JSON API.
	DefaultEndpoint = "https://openapi.naver.com/v1/search/news.json"

	minDisplay = 1
	maxDisplay = 100
)

// Client queries the Naver news search API.
type Client struct {
	endpoint     string
	clientID     string
	clientSecret string
	httpClient   *http.Client
	logger       *slog.Logger
}

var _ ports.SearchClient = (*Client)(nil)

type searchResponse struct {
	Total int          `json:"total"`
	Items []searchItem `json:"items"`
}

type searchItem struct {
	Title        string `json:"title"`
	OriginalLink string `json:"originallink"`
	Link         string `json:"link"`
	Description  string `json:"description"`
	PubDate      string `json:"pubDate"`
}

// NewClient builds a client from configuration.
func NewClient(cfg config.SearchConfig, log *slog.Logger) *Client {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Client{
		endpoint:     endpoint,
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		httpClient:   &http.Client{Timeout: cfg.Timeout},
		logger:       log,
	}
}

// Search returns up to limit articles matching query, newest first.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]domain.Candidate, error) {
	reqURL, err := buildSearchURL(c.endpoint, query, limit)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("X-Naver-Client-Id", c.clientID)
	req.Header.Set("X-Naver-Client-Secret", c.clientSecret)
	req.Header.Set("Accept", "application/json")

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("naver search error %s: %s", resp.Status, strings.TrimSpace(string(payload)))
	}

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	candidates := make([]domain.Candidate, 0, len(body.Items))
	for _, item := range body.Items {
		link := item.OriginalLink
		if link == "" {
			link = item.Link
		}
		candidates = append(candidates, domain.Candidate{
			Link:        link,
			RawTitle:    item.Title,
			PubDate:     item.PubDate,
			Description: item.Description,
		})
	}

	c.debug("search done", "query", query, "items", len(candidates), "total", body.Total, "elapsed", time.Since(started))
	return candidates, nil
}

func buildSearchURL(base, query string, limit int) (string, error) {
	parsed, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid search endpoint %s: %w", base, err)
	}

	q := parsed.Query()
	q.Set("query", query)
	q.Set("sort", "date")
	q.Set("display", strconv.Itoa(clampDisplay(limit)))
	parsed.RawQuery = q.Encode()
	return parsed.String(), nil
}

func clampDisplay(limit int) int {
	if limit < minDisplay {
		return minDisplay
	}
	if limit > maxDisplay {
		return maxDisplay
	}
	return limit
}

func (c *Client) debug(msg string, args ...interface{}) {
	if c.logger != nil {
		c.logger.Debug(msg, args...)
	}
}
