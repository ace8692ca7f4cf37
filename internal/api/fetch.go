package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"
)

// Backoff returns the delay schedule for a request with the given number of
// total attempts: base, 2*base, 4*base, ... for attempts-1 retries.
func Backoff(base time.Duration, attempts int) retry.Backoff {
	if attempts < 1 {
		attempts = 1
	}
	return retry.WithMaxRetries(uint64(attempts-1), retry.NewExponential(base))
}

// FetchWithRetry performs the request and returns the response body.
// Network failures, timeouts and non-2xx replies are all retried until the
// attempts run out, after which the last failure is returned. Cancelling
// ctx stops the sequence.
func (c *Client) FetchWithRetry(ctx context.Context, url, method string) ([]byte, error) {
	if c.retries <= 0 {
		return nil, &APIError{Message: "Maximum retries reached"}
	}

	var (
		body    []byte
		attempt int
	)
	err := retry.Do(ctx, Backoff(c.backoff, c.retries), func(ctx context.Context) error {
		attempt++
		data, err := c.attempt(ctx, url, method)
		if err != nil {
			c.logger.Debug("request attempt failed",
				zap.String("method", method),
				zap.String("url", url),
				zap.Int("attempt", attempt),
				zap.Int("max_attempts", c.retries),
				zap.Error(err),
			)
			if ctx.Err() != nil {
				return err
			}
			return retry.RetryableError(err)
		}
		body = data
		return nil
	})
	if err != nil {
		c.logger.Warn("request failed",
			zap.String("url", url),
			zap.Int("attempts", attempt),
			zap.Error(err),
		)
		return nil, err
	}

	c.logger.Debug("request succeeded",
		zap.String("url", url),
		zap.Int("attempts", attempt),
		zap.Int("bytes", len(body)),
	)
	return body, nil
}

// attempt performs one request under the per-attempt timeout.
func (c *Client) attempt(ctx context.Context, url, method string) ([]byte, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(attemptCtx, method, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if timedOut(ctx, attemptCtx) {
			return nil, &APIError{Message: "Request timeout", Status: http.StatusRequestTimeout}
		}
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if timedOut(ctx, attemptCtx) {
			return nil, &APIError{Message: "Request timeout", Status: http.StatusRequestTimeout}
		}
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{
			Message: "API request failed: " + statusText(resp),
			Status:  resp.StatusCode,
			Data:    body,
		}
	}
	return body, nil
}

// timedOut reports whether the attempt hit its own deadline rather than
// the caller cancelling.
func timedOut(parent, attemptCtx context.Context) bool {
	return parent.Err() == nil && errors.Is(attemptCtx.Err(), context.DeadlineExceeded)
}

// statusText returns the reason phrase of resp, e.g. "Not Found".
func statusText(resp *http.Response) string {
	text := strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)+" ")
	if text == "" || text == resp.Status {
		text = http.StatusText(resp.StatusCode)
	}
	return text
}
