// Package httpfetch implements ports.Fetcher over net/http.
package httpfetch

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"go.trai.ch/cwaimg/internal/build"
	"go.trai.ch/cwaimg/internal/core/domain"
	"go.trai.ch/zerr"
)

// MaxBodySize caps the size of a single response body.
const MaxBodySize = 64 << 20

// Client fetches upstream resources with GET requests.
type Client struct {
	http      *http.Client
	userAgent string
}

// New creates a Client whose requests give up after timeout, body included.
// A zero timeout leaves requests bounded only by their context.
func New(timeout time.Duration) *Client {
	return &Client{
		http:      &http.Client{Timeout: timeout},
		userAgent: "cwaimg/" + build.Version,
	}
}

// FetchText returns the body of url decoded as text.
func (c *Client) FetchText(ctx context.Context, url string) (string, error) {
	body, err := c.FetchBytes(ctx, url)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// FetchBytes returns the complete body of url. Transport failures, timeouts
// and non-2xx answers are reported with domain.ErrNetwork in the chain.
func (c *Client) FetchBytes(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to build request"), "url", url)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, networkError(zerr.Wrap(err, "request failed"), url)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
		err := zerr.With(zerr.Wrap(domain.ErrUnexpectedStatus, "request failed"), "status", resp.StatusCode)
		return nil, networkError(err, url)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodySize+1))
	if err != nil {
		return nil, networkError(zerr.Wrap(err, "failed to read response body"), url)
	}
	if len(body) > MaxBodySize {
		return nil, networkError(zerr.With(zerr.New("response body too large"), "limit", MaxBodySize), url)
	}
	if resp.ContentLength >= 0 && int64(len(body)) != resp.ContentLength {
		err := zerr.With(zerr.New("truncated response body"), "expected", resp.ContentLength)
		return nil, networkError(zerr.With(err, "received", len(body)), url)
	}

	return body, nil
}

func networkError(err error, url string) error {
	return errors.Join(domain.ErrNetwork, zerr.With(err, "url", url))
}
