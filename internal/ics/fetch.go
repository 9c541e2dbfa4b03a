package ics

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Fetcher downloads ICS feeds over HTTP.
type Fetcher struct {
	client *http.Client
}

// NewFetcher creates a Fetcher with a sane request timeout.
func NewFetcher() *Fetcher {
	return &Fetcher{
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

// Fetch downloads the feed at url and returns its body.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching feed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching feed: unexpected status %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading feed body: %w", err)
	}
	if len(body) == 0 {
		return nil, ErrEmptyFeed
	}

	return body, nil
}
