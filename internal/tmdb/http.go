package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/lepinkainen/marquee/internal/cache"
	"github.com/lepinkainen/marquee/internal/errors"
)

const maxErrorBody = 4096

// get fetches path relative to the base URL. Cacheable responses go through
// the response store when one is configured.
func (c *Client) get(ctx context.Context, path string, params url.Values, cacheable bool) ([]byte, error) {
	endpoint := c.baseURL + path
	if encoded := params.Encode(); encoded != "" {
		endpoint += "?" + encoded
	}
	key := strings.TrimPrefix(endpoint, c.baseURL)

	if cacheable && c.store != nil {
		if data, ok, err := c.store.Get(cache.CatalogTable, key, c.storeTTL); err != nil {
			c.logger.Warn("Response cache read failed", "key", key, "error", err)
		} else if ok {
			c.logger.Debug("Response cache hit", "key", key)
			return []byte(data), nil
		}
	}

	body, err := c.getWithRetry(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	if cacheable && c.store != nil {
		if err := c.store.Set(cache.CatalogTable, key, string(body)); err != nil {
			c.logger.Warn("Response cache write failed", "key", key, "error", err)
		}
	}
	return body, nil
}

func (c *Client) getWithRetry(ctx context.Context, endpoint string) ([]byte, error) {
	policy := c.retry
	if policy.OnRetry == nil {
		policy.OnRetry = func(attempt int, delay time.Duration, err error) {
			c.logger.Debug("Retrying TMDB request", "attempt", attempt, "delay", delay, "error", err)
		}
	}

	var body []byte
	err := policy.Do(ctx, func(ctx context.Context, _ int) error {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return err
		}
		var err error
		body, err = c.doRequest(ctx, endpoint)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", redact(endpoint), err)
	}
	return body, nil
}

func (c *Client) doRequest(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBody))
		if retryAfter := parseRetryAfter(resp.Header.Get("Retry-After")); retryAfter > 0 {
			return nil, errors.NewRateLimitErrorWithRetry("TMDB rate limit exceeded", retryAfter)
		}
		return nil, errors.NewRateLimitError("TMDB rate limit exceeded")
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, errors.NewStatusError(resp.StatusCode, apiMessage(body))
	}

	return io.ReadAll(resp.Body)
}

// apiMessage extracts status_message from a TMDB error body.
func apiMessage(body []byte) string {
	var payload struct {
		StatusMessage string `json:"status_message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.StatusMessage != "" {
		return payload.StatusMessage
	}
	return strings.TrimSpace(string(body))
}

func parseRetryAfter(value string) time.Duration {
	seconds, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || seconds <= 0 {
		return 0
	}
	return time.Duration(seconds) * time.Second
}

// redact strips the query string so filters and search terms stay out of error text.
func redact(endpoint string) string {
	if i := strings.IndexByte(endpoint, '?'); i >= 0 {
		return endpoint[:i]
	}
	return endpoint
}
