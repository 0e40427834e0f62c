// Package llm implements the chat completion client for the Mistral API,
// including bounded retry under rate-limiting.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Siddharth1254/ai-cold-email-generator/internal/config"
	"github.com/Siddharth1254/ai-cold-email-generator/internal/logger"
)

const maxErrorBodyChars = 500

// Client issues chat completion requests with fixed-delay retry on 429.
// All other failures are terminal for the call:
//
//	2xx                          -> success
//	429, attempts remaining      -> sleep RetryDelay, try again
//	429 on the final attempt     -> *RateLimitError
//	any other status / transport -> *RequestError, no retry
//
// A 429 that is successfully retried past never surfaces as an error.
type Client struct {
	httpClient  *http.Client
	apiKey      string
	chatURL     string
	model       string
	temperature float64
	maxTokens   int
	maxRetries  int
	retryDelay  time.Duration
}

// NewClient creates a chat completion client from process configuration.
// The per-attempt timeout lives on the http.Client so a hung connection
// can never stall a call indefinitely.
func NewClient(cfg *config.Config) *Client {
	return &Client{
		httpClient:  &http.Client{Timeout: cfg.RequestTimeout},
		apiKey:      cfg.MistralAPIKey,
		chatURL:     cfg.MistralChatURL,
		model:       cfg.MistralModel,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		maxRetries:  cfg.MaxRetries,
		retryDelay:  cfg.RetryDelay,
	}
}

// Model returns the configured model identifier.
func (c *Client) Model() string {
	return c.model
}

// Complete sends the message sequence to the chat completion endpoint and
// returns the generated text with token usage.
func (c *Client) Complete(ctx context.Context, messages []ChatMessage) (*Completion, error) {
	payload := chatPayload{
		Model:       c.model,
		Messages:    messages,
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, &RequestError{Err: fmt.Errorf("marshal payload: %w", err)}
	}

	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		completion, retryable, err := c.attempt(ctx, body)
		if err == nil {
			return completion, nil
		}
		if !retryable {
			return nil, err
		}
		if attempt == c.maxRetries {
			return nil, &RateLimitError{Attempts: attempt}
		}

		logger.Warn("Rate limited by chat completion API, backing off", logger.Fields{
			"attempt":     attempt,
			"max_retries": c.maxRetries,
			"delay_ms":    c.retryDelay.Milliseconds(),
		})
		time.Sleep(c.retryDelay)
	}

	// Unreachable with maxRetries >= 1; kept so a zero-value misconfig is loud.
	return nil, &RateLimitError{Attempts: c.maxRetries}
}

// attempt performs one HTTP round trip. The second return value reports
// whether the failure was a 429 and therefore retryable.
func (c *Client) attempt(ctx context.Context, body []byte) (*Completion, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.chatURL, bytes.NewReader(body))
	if err != nil {
		return nil, false, &RequestError{Err: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, false, &RequestError{Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, false, &RequestError{StatusCode: resp.StatusCode, Err: fmt.Errorf("read response: %w", err)}
	}

	switch {
	case resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices:
		completion, err := parseCompletion(respBody)
		return completion, false, err
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, true, &RateLimitError{}
	default:
		return nil, false, &RequestError{
			StatusCode: resp.StatusCode,
			Body:       truncate(string(respBody), maxErrorBodyChars),
		}
	}
}

// parseCompletion navigates the success body to choices[0].message.content.
func parseCompletion(body []byte) (*Completion, error) {
	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, &ResponseShapeError{Detail: "body is not valid JSON"}
	}
	if len(parsed.Choices) == 0 {
		return nil, &ResponseShapeError{Detail: "missing choices array"}
	}
	content := parsed.Choices[0].Message.Content
	if content == "" {
		return nil, &ResponseShapeError{Detail: "choices[0].message.content is empty"}
	}
	return &Completion{Content: content, Usage: parsed.Usage}, nil
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}
