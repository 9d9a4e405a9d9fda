// Package httpclient provides a hardened HTTP client for dataset fetches.
//
// Dataset sources are user-configured URLs, so the client enforces a scheme
// allowlist, a redirect cap, a response size ceiling, and a polite request
// rate. One client is shared per loader; it is safe for concurrent use.
package httpclient

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/cinegraph/cinegraph/errors"
)

const (
	defaultMaxRedirects = 5
	defaultMaxBodyBytes = 64 << 20 // datasets top out at a few thousand records
)

// Client wraps http.Client with fetch guards for dataset loading.
type Client struct {
	*http.Client
	allowedSchemes []string
	maxRedirects   int
	maxBodyBytes   int64
	limiter        *rate.Limiter
}

// New creates a dataset fetch client. Requests beyond one per second are
// delayed, not rejected, so a primary-then-fallback sequence never trips it.
func New(timeout time.Duration) *Client {
	client := &Client{
		Client: &http.Client{
			Timeout: timeout,
		},
		allowedSchemes: []string{"http", "https"},
		maxRedirects:   defaultMaxRedirects,
		maxBodyBytes:   defaultMaxBodyBytes,
		limiter:        rate.NewLimiter(rate.Every(time.Second), 2),
	}

	client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		if len(via) >= client.maxRedirects {
			return errors.Newf("stopped after %d redirects", client.maxRedirects)
		}
		if err := client.validateURL(req.URL); err != nil {
			return errors.Wrap(err, "redirect blocked")
		}
		return nil
	}

	return client
}

// Get fetches rawURL and returns the response body. Non-2xx statuses are
// errors; the body is capped at the configured ceiling.
func (c *Client) Get(ctx context.Context, rawURL string) ([]byte, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid URL %q", rawURL)
	}
	if err := c.validateURL(parsed); err != nil {
		return nil, err
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, errors.Wrap(err, "rate limit wait aborted")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "fetch failed for %q", rawURL)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.Newf("unexpected status %d from %q", resp.StatusCode, rawURL)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodyBytes+1))
	if err != nil {
		return nil, errors.Wrap(err, "failed to read response body")
	}
	if int64(len(body)) > c.maxBodyBytes {
		return nil, errors.Newf("response from %q exceeds %d bytes", rawURL, c.maxBodyBytes)
	}

	return body, nil
}

func (c *Client) validateURL(u *url.URL) error {
	for _, scheme := range c.allowedSchemes {
		if u.Scheme == scheme {
			return nil
		}
	}
	return errors.Newf("scheme %q not allowed", u.Scheme)
}
