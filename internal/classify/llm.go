package classify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"vacradar/internal/models"
	"vacradar/pkg/textutil"
)

// LLM client errors.
var (
	ErrEmptyAPIKey     = errors.New("api key is empty")
	ErrNoChoices       = errors.New("response contains no choices")
	ErrUnparsableReply = errors.New("failed to parse JSON from model reply")
)

const (
	defaultLLMBaseURL = "https://api.openai.com/v1"
	maxPromptChars    = 2000
)

// LLMClient is a minimal OpenAI-compatible chat completions client that asks
// the model for a vacancy field type.
type LLMClient struct {
	apiKey     string
	baseURL    string
	model      string
	maxRetries int
	httpDo     *http.Client
}

// NewLLMClient creates an LLM categorizer client.
func NewLLMClient(apiKey, baseURL, model string, maxRetries int) *LLMClient {
	if baseURL == "" {
		baseURL = defaultLLMBaseURL
	}

	if maxRetries < 1 {
		maxRetries = 1
	}

	return &LLMClient{
		apiKey:     apiKey,
		baseURL:    baseURL,
		model:      model,
		maxRetries: maxRetries,
		httpDo: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatCompletionsRequest struct {
	Model          string          `json:"model"`
	Messages       []message       `json:"messages"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
	Temperature    float32         `json:"temperature,omitempty"`
}

type chatCompletionsResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

// Categorize asks the model to classify one record. The reply must be a JSON
// object with a field_type key; replies wrapped in prose are salvaged by
// extracting the outermost JSON object.
func (c *LLMClient) Categorize(ctx context.Context, rec *models.VacancyRecord) (string, error) {
	if c.apiKey == "" {
		return "", ErrEmptyAPIKey
	}

	payload := map[string]string{
		"vacancy_name": rec.Name,
		"company_name": rec.Employer,
		"description":  textutil.Truncate(rec.Description, maxPromptChars),
		"technologies": strings.Join(rec.Technologies, "; "),
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	system := "You are a strict classifier. Return only a JSON object with a single field_type key. " +
		"field_type must be one of: {" + strings.Join(FieldTypes(), ", ") + "}."
	user := "Vacancy data (condensed JSON):\n" + string(data) + "\n\nRespond with the JSON object only."

	reply, err := c.complete(ctx, system, user)
	if err != nil {
		return "", err
	}

	parsed, err := extractJSON(reply)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrUnparsableReply, textutil.Truncate(reply, 200))
	}

	return CanonicalField(parsed["field_type"]), nil
}

func (c *LLMClient) complete(ctx context.Context, system, user string) (string, error) {
	reqBody := chatCompletionsRequest{
		Model: c.model,
		Messages: []message{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		ResponseFormat: &responseFormat{Type: "json_object"},
		Temperature:    0.2,
	}

	data, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	var lastErr error

	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(data))
		if err != nil {
			return "", err
		}

		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+c.apiKey)

		resp, err := c.httpDo.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}

			lastErr = err

			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		_ = resp.Body.Close()

		if resp.StatusCode == http.StatusTooManyRequests {
			lastErr = fmt.Errorf("rate limited: status %d", resp.StatusCode)

			if err := waitRetryAfter(ctx, resp, attempt); err != nil {
				return "", err
			}

			continue
		}

		if resp.StatusCode != http.StatusOK {
			lastErr = fmt.Errorf("request failed: status %d: %s", resp.StatusCode, textutil.Truncate(string(body), 200))

			continue
		}

		if readErr != nil {
			lastErr = readErr

			continue
		}

		var parsed chatCompletionsResponse
		if err := json.Unmarshal(body, &parsed); err != nil {
			return "", fmt.Errorf("failed to decode response: %w", err)
		}

		if len(parsed.Choices) == 0 {
			return "", ErrNoChoices
		}

		return parsed.Choices[0].Message.Content, nil
	}

	return "", lastErr
}

// waitRetryAfter sleeps according to the Retry-After header, or a growing
// default when the header is missing.
func waitRetryAfter(ctx context.Context, resp *http.Response, attempt int) error {
	wait := time.Duration(attempt) * 5 * time.Second

	if header := resp.Header.Get("Retry-After"); header != "" {
		if seconds, err := strconv.ParseFloat(header, 64); err == nil && seconds >= 0 {
			wait = time.Duration(seconds * float64(time.Second))
		}
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// extractJSON parses text as a JSON object, or salvages the outermost
// {...} snippet when the model wrapped it in prose.
func extractJSON(text string) (map[string]string, error) {
	out := make(map[string]string)
	if err := json.Unmarshal([]byte(text), &out); err == nil {
		return out, nil
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")

	if start == -1 || end <= start {
		return nil, ErrUnparsableReply
	}

	out = make(map[string]string)
	if err := json.Unmarshal([]byte(text[start:end+1]), &out); err != nil {
		return nil, err
	}

	return out, nil
}
