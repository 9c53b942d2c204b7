// Package feed provides the outbreak-alert collaborator, backed by the WHO
// disease-outbreak-news RSS feed.
package feed

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/nocaptbsm/aarogya--sarthi/internal/models"
)

// DefaultFeedURL is the WHO disease outbreak news RSS feed.
const DefaultFeedURL = "https://www.who.int/rss-feeds/emergencies-disease-outbreak-news-english.xml"

// DefaultTimeout bounds every feed fetch.
const DefaultTimeout = 10 * time.Second

// relevanceKeyword filters the global feed down to alerts for our users.
const relevanceKeyword = "india"

// Opts holds configuration options for the feed client.
type Opts struct {
	URL     string
	Timeout time.Duration
}

// Option defines a configuration option for the feed client.
type Option func(*Opts)

// WithURL overrides the feed URL (used by tests and regional deployments).
func WithURL(url string) Option {
	return func(o *Opts) {
		o.URL = url
	}
}

// WithTimeout overrides the fetch timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(o *Opts) {
		o.Timeout = timeout
	}
}

// Client fetches and filters candidate outbreak alerts.
type Client struct {
	url     string
	timeout time.Duration
	parser  *gofeed.Parser
}

// NewClient creates a feed client.
func NewClient(opts ...Option) *Client {
	cfg := Opts{URL: DefaultFeedURL, Timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Client{url: cfg.URL, timeout: cfg.Timeout, parser: gofeed.NewParser()}
}

// FetchCandidateAlerts fetches the feed and returns the alerts relevant to
// India, in feed order.
func (c *Client) FetchCandidateAlerts(ctx context.Context) ([]models.Alert, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	parsed, err := c.parser.ParseURLWithContext(c.url, ctx)
	if err != nil {
		slog.Error("Feed fetch failed", "error", err, "url", c.url)
		return nil, fmt.Errorf("failed to fetch alert feed: %w", err)
	}

	var alerts []models.Alert
	for _, item := range parsed.Items {
		if item == nil {
			continue
		}
		if !isRelevant(item.Title) && !isRelevant(item.Description) {
			continue
		}
		id := item.GUID
		if id == "" {
			id = item.Link
		}
		alerts = append(alerts, models.Alert{
			ID:      id,
			Title:   item.Title,
			Summary: item.Description,
		})
	}
	slog.Debug("Feed fetch succeeded", "url", c.url, "total", len(parsed.Items), "relevant", len(alerts))
	return alerts, nil
}

func isRelevant(text string) bool {
	return strings.Contains(strings.ToLower(text), relevanceKeyword)
}
