package marinetraffic

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html"
)

// Sentinel is the fallback checkpoint returned when the detail-page lookup
// cannot produce a real report time. It is far enough in the past that the
// subsequent feed fetch requests the full available history.
var Sentinel = time.Date(2010, time.January, 1, 0, 0, 0, 0, time.UTC)

// Client looks up the last public position-report time for a vessel.
type Client struct {
	httpClient *http.Client
	vesselURL  string // template, %s = MMSI
}

// NewClient creates a checkpoint client. vesselURL is a template with a
// single %s placeholder for the MMSI.
func NewClient(vesselURL string, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		vesselURL:  vesselURL,
	}
}

// LastReportTime resolves the timestamp of the vessel's last known public
// position report. The reported time is always UTC.
//
// The upstream page is only parsed on the not-found path; any other status
// yields the Sentinel. This mirrors the behaviour of the system this feed
// logic was ported from and keeps the feed query bounds bit-identical.
// Failures on the lookup or parse path are logged and reported as ok=false;
// callers decide how fatal an absent checkpoint is.
func (c *Client) LastReportTime(ctx context.Context, mmsi string) (time.Time, bool) {
	url := fmt.Sprintf(c.vesselURL, mmsi)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		slog.Error("checkpoint request build failed", "url", url, "error", err)
		return time.Time{}, false
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.Error("checkpoint lookup failed", "url", url, "error", err)
		return time.Time{}, false
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusNotFound {
		return Sentinel, true
	}

	reported, err := secondTimeAttr(resp)
	if err != nil {
		slog.Error("checkpoint page parse failed", "url", url, "error", err)
		return time.Time{}, false
	}

	ts, err := parseUTC(reported)
	if err != nil {
		slog.Error("checkpoint datetime parse failed", "value", reported, "error", err)
		return time.Time{}, false
	}
	return ts, true
}

// secondTimeAttr returns the datetime attribute of the second <time> element
// in the response body.
func secondTimeAttr(resp *http.Response) (string, error) {
	doc, err := html.Parse(resp.Body)
	if err != nil {
		return "", err
	}

	var values []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "time" {
			for _, attr := range n.Attr {
				if attr.Key == "datetime" {
					values = append(values, attr.Val)
					break
				}
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)

	if len(values) < 2 {
		return "", fmt.Errorf("expected at least 2 time elements, found %d", len(values))
	}
	return values[1], nil
}

func parseUTC(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02T15:04:05"} {
		if ts, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return ts.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized datetime %q", value)
}
