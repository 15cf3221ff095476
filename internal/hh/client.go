package hh

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"vacradar/internal/config"
)

// DefaultBaseURL is the public hh.ru API endpoint.
const DefaultBaseURL = "https://api.hh.ru"

// Client errors.
var (
	ErrUnexpectedStatusCode = errors.New("unexpected status code")
	ErrRetriesExhausted     = errors.New("retries exhausted")
)

// Client talks to the hh.ru API with retry and backoff.
type Client struct {
	baseURL   string
	userAgent string
	token     string
	retry     *config.RetryPolicy
	httpc     *http.Client
}

// NewClient creates an API client. token may be empty; when set it is sent
// as a bearer token (the public endpoints work without one, authenticated
// requests get higher rate limits).
func NewClient(baseURL, userAgent, token string, retry *config.RetryPolicy) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		baseURL:   baseURL,
		userAgent: userAgent,
		token:     token,
		retry:     retry,
		httpc: &http.Client{
			Timeout: retry.GetTimeout(),
		},
	}
}

// SearchPage fetches one page of the vacancy search.
func (c *Client) SearchPage(ctx context.Context, text, area string, page, perPage int) (*SearchResponse, error) {
	params := url.Values{}
	params.Set("text", text)
	params.Set("page", strconv.Itoa(page))
	params.Set("per_page", strconv.Itoa(perPage))

	if area != "" {
		params.Set("area", area)
	}

	var resp SearchResponse
	if err := c.getJSON(ctx, c.baseURL+"/vacancies", params, &resp); err != nil {
		return nil, fmt.Errorf("search page %d: %w", page, err)
	}

	return &resp, nil
}

// VacancyDetail fetches the full vacancy by ID.
func (c *Client) VacancyDetail(ctx context.Context, id string) (*VacancyDetail, error) {
	var detail VacancyDetail
	if err := c.getJSON(ctx, c.baseURL+"/vacancies/"+url.PathEscape(id), nil, &detail); err != nil {
		return nil, fmt.Errorf("vacancy %s: %w", id, err)
	}

	return &detail, nil
}

// getJSON performs a GET with retry. 429 responses honor Retry-After when
// present; 403 and 5xx responses back off exponentially.
func (c *Client) getJSON(ctx context.Context, rawURL string, params url.Values, out any) error {
	target := rawURL
	if len(params) > 0 {
		target = rawURL + "?" + params.Encode()
	}

	var lastErr error

	for attempt := 1; attempt <= c.retry.MaxAttempts; attempt++ {
		if attempt > 1 {
			delay := c.retry.GetRetryDelay(attempt)
			if err := sleepCtx(ctx, delay); err != nil {
				return err
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, http.NoBody)
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}

		req.Header.Set("User-Agent", c.userAgent)
		req.Header.Set("Accept", "application/json")

		if c.token != "" {
			req.Header.Set("Authorization", "Bearer "+c.token)
		}

		resp, err := c.httpc.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}

			lastErr = fmt.Errorf("request failed (attempt %d/%d): %w", attempt, c.retry.MaxAttempts, err)

			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		_ = resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusOK:
			if readErr != nil {
				lastErr = fmt.Errorf("failed to read response body: %w", readErr)

				continue
			}

			if err := json.Unmarshal(body, out); err != nil {
				return fmt.Errorf("failed to decode response: %w", err)
			}

			return nil

		case resp.StatusCode == http.StatusTooManyRequests:
			lastErr = fmt.Errorf("%w: %d", ErrUnexpectedStatusCode, resp.StatusCode)

			if wait, ok := retryAfter(resp); ok {
				if err := sleepCtx(ctx, wait); err != nil {
					return err
				}
			}

		case isRetryableStatus(resp.StatusCode):
			lastErr = fmt.Errorf("%w: %d", ErrUnexpectedStatusCode, resp.StatusCode)

		default:
			return fmt.Errorf("%w: %d", ErrUnexpectedStatusCode, resp.StatusCode)
		}
	}

	return fmt.Errorf("%w: GET %s: %w", ErrRetriesExhausted, rawURL, lastErr)
}

// retryAfter parses the Retry-After header as a delay in seconds.
func retryAfter(resp *http.Response) (time.Duration, bool) {
	header := resp.Header.Get("Retry-After")
	if header == "" {
		return 0, false
	}

	seconds, err := strconv.ParseFloat(header, 64)
	if err != nil || seconds < 0 {
		return 0, false
	}

	return time.Duration(seconds * float64(time.Second)), true
}

// isRetryableStatus determines if we should retry based on HTTP status code.
func isRetryableStatus(statusCode int) bool {
	switch statusCode {
	case http.StatusForbidden: // hh.ru uses 403 for temporary blocks
		return true
	case http.StatusRequestTimeout:
		return true
	case http.StatusTooManyRequests:
		return true
	}

	return statusCode >= 500 && statusCode < 600
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
