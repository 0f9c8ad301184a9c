package mapshare

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client fetches route-history KML documents from the share feed.
type Client struct {
	httpClient *http.Client
	feedURL    string // template, %s = share identifier
}

// NewClient creates a feed client. feedURL is a template with a single %s
// placeholder for the share identifier.
func NewClient(feedURL string, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		feedURL:    feedURL,
	}
}

// Fetch retrieves the raw route document for shareID, bounded below by since.
// The since bound is passed to the provider as the d1 query parameter.
func (c *Client) Fetch(ctx context.Context, shareID string, since time.Time) ([]byte, error) {
	if shareID == "" {
		return nil, ErrShareIDMissing
	}
	url := fmt.Sprintf(c.feedURL, shareID) + "?d1=" + since.UTC().Format(time.RFC3339)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &TransportError{URL: url, Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{URL: url, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, &TransportError{
			URL:    url,
			Status: resp.Status,
			Body:   strings.TrimSpace(string(body)),
		}
	}

	return io.ReadAll(resp.Body)
}
