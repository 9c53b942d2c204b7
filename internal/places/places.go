// Package places provides the vaccination-center lookup collaborator,
// backed by the Google Places text-search API.
package places

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"googlemaps.github.io/maps"

	"github.com/nocaptbsm/aarogya--sarthi/internal/models"
)

// DefaultTimeout bounds every outbound search call.
const DefaultTimeout = 10 * time.Second

// Opts holds configuration options for the places client.
type Opts struct {
	APIKey  string
	Timeout time.Duration
}

// Option defines a configuration option for the places client.
type Option func(*Opts)

// WithAPIKey sets the Google Maps API key.
func WithAPIKey(key string) Option {
	return func(o *Opts) {
		o.APIKey = key
	}
}

// WithTimeout overrides the per-call timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(o *Opts) {
		o.Timeout = timeout
	}
}

// Client wraps the Google Maps places client.
type Client struct {
	mapsClient *maps.Client
	timeout    time.Duration
}

// NewClient initializes a places client. The API key is required.
func NewClient(opts ...Option) (*Client, error) {
	cfg := Opts{Timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("Google Maps API key not set")
	}

	mapsClient, err := maps.NewClient(maps.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}

	slog.Debug("Places client initialized", "timeout", cfg.Timeout)
	return &Client{mapsClient: mapsClient, timeout: cfg.Timeout}, nil
}

// Search runs a text search and returns the matching places in ranking
// order. An empty result slice with a nil error means nothing was found.
func (c *Client) Search(ctx context.Context, query string) ([]models.Place, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.mapsClient.TextSearch(ctx, &maps.TextSearchRequest{Query: query})
	if err != nil {
		slog.Error("Places Search failed", "error", err, "query", query)
		return nil, fmt.Errorf("places search failed: %w", err)
	}

	results := make([]models.Place, 0, len(resp.Results))
	for _, r := range resp.Results {
		results = append(results, models.Place{Name: r.Name, Address: r.FormattedAddress})
	}
	slog.Debug("Places Search succeeded", "query", query, "count", len(results))
	return results, nil
}
