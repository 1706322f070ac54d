// Package httpclient holds the JSON-over-HTTP plumbing shared by the gateway clients.
package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"
)

const maxResponseBytes = 1 << 20

// ErrRateLimited is returned when every attempt was answered with 429.
var ErrRateLimited = errors.New("rate limited")

// StatusError is a non-2xx upstream response.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return "upstream returned " + http.StatusText(e.StatusCode) + ": " + e.Body
}

// RetryPolicy retries rate-limited requests only. Other failures return immediately.
type RetryPolicy struct {
	MaxAttempts int
	// Backoff returns the pause after the given failed attempt (1-based).
	Backoff func(attempt int) time.Duration
	// AttemptTimeout bounds every single attempt, including reading the body.
	AttemptTimeout time.Duration
}

// Exponential doubles base per attempt: base*2, base*4, ...
func Exponential(base time.Duration) func(int) time.Duration {
	return func(attempt int) time.Duration {
		return base * time.Duration(1<<attempt)
	}
}

// Constant waits the same delay after every attempt.
func Constant(delay time.Duration) func(int) time.Duration {
	return func(int) time.Duration { return delay }
}

// Request describes one JSON call.
type Request struct {
	Method string
	URL    string
	Body   any
	Header http.Header
}

// Client performs JSON requests under a retry policy.
type Client struct {
	HTTP   *http.Client
	Policy RetryPolicy
}

// DoJSON sends req and decodes a 2xx response into out (which may be nil).
func (c *Client) DoJSON(ctx context.Context, req Request, out any) error {
	var payload []byte
	if req.Body != nil {
		var err error
		payload, err = json.Marshal(req.Body)
		if err != nil {
			return errors.Wrap(err, "failed to encode request body")
		}
	}

	attempts := max(c.Policy.MaxAttempts, 1)
	for attempt := 1; ; attempt++ {
		body, status, err := c.once(ctx, req, payload)
		if err != nil {
			return err
		}

		switch {
		case status == http.StatusTooManyRequests:
			if attempt >= attempts {
				return errors.Wrapf(ErrRateLimited, "after %d attempts", attempt)
			}
			if err := sleep(ctx, c.backoff(attempt)); err != nil {
				return err
			}

			continue
		case status < 200 || status > 299:
			return &StatusError{StatusCode: status, Body: truncate(string(body), 512)}
		}

		if out == nil || len(body) == 0 {
			return nil
		}

		return errors.Wrap(json.Unmarshal(body, out), "failed to decode response body")
	}
}

func (c *Client) once(ctx context.Context, req Request, payload []byte) ([]byte, int, error) {
	if c.Policy.AttemptTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Policy.AttemptTimeout)
		defer cancel()
	}

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, reader)
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to build request")
	}
	for key, values := range req.Header {
		for _, v := range values {
			httpReq.Header.Add(key, v)
		}
	}
	httpReq.Header.Set("Accept", "application/json")
	if payload != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTP.Do(httpReq)
	if err != nil {
		return nil, 0, errors.Wrap(err, "request failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to read response body")
	}

	return body, resp.StatusCode, nil
}

func (c *Client) backoff(attempt int) time.Duration {
	if c.Policy.Backoff == nil {
		return 0
	}

	return c.Policy.Backoff(attempt)
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return errors.WithStack(ctx.Err())
	case <-timer.C:
		return nil
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}

	return s[:n]
}
