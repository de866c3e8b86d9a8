// Package scrape fetches a careers search results page and extracts job
// postings from it, preferring anchor-tag heuristics and falling back to
// embedded JSON-LD structured data.
package scrape

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// DefaultUserAgent is a realistic desktop browser string; the careers
// endpoint rejects obvious non-browser agents.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/142.0.0.0 Safari/537.36"

// DefaultTimeout bounds the single page fetch.
const DefaultTimeout = 10 * time.Second

// StatusError reports a non-success HTTP status from the results page.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status: %d", e.Code)
}

// Client wraps http.Client with the user agent and timeout the results page
// requires. Every search performs exactly one GET: no retries, no caching.
type Client struct {
	HTTPClient *http.Client
	UserAgent  string
	Timeout    time.Duration
}

// Fetch GETs the URL and extracts job entries from the returned HTML.
func (c *Client) Fetch(ctx context.Context, rawURL string) ([]JobEntry, error) {
	body, err := c.get(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	base, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	entries, err := Parse(bytes.NewReader(body), base)
	if err != nil {
		return nil, err
	}
	log.Debug().Int("entries", len(entries)).Str("url", rawURL).Msg("results page scraped")
	return entries, nil
}

func (c *Client) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	if req.URL == nil || !isHTTPScheme(req.URL) {
		return nil, fmt.Errorf("unsupported URL scheme: %q", rawURL)
	}

	ua := c.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}
	req.Header.Set("User-Agent", ua)

	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(req.Context(), timeout)
	defer cancel()
	req = req.WithContext(ctx)

	hc := c.HTTPClient
	if hc == nil {
		hc = http.DefaultClient
	}
	resp, err := hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch results page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Code: resp.StatusCode}
	}
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read results page: %w", err)
	}
	return b, nil
}

func isHTTPScheme(u *url.URL) bool {
	scheme := strings.ToLower(u.Scheme)
	return scheme == "http" || scheme == "https"
}
