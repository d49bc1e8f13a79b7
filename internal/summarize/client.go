// Package summarize is a pass-through to an OpenAI-compatible chat
// completions endpoint.
package summarize

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"devboard/internal/domain"
	"devboard/internal/metrics"
)

// DefaultFormat is used when the client does not ask for a specific shape.
const DefaultFormat = "a concise paragraph"

type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
}

// New builds a client for the given endpoint, e.g. https://api.openai.com/v1.
func New(baseURL, apiKey, model string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 60 * time.Second},
		baseURL:    baseURL,
		apiKey:     apiKey,
		model:      model,
	}
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Summarize sends text to the model with a system instruction embedding the
// requested output format and returns the generated summary.
func (c *Client) Summarize(ctx context.Context, text, format string) (string, error) {
	if format == "" {
		format = DefaultFormat
	}

	payload, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: fmt.Sprintf("Summarize text as %s.", format)},
			{Role: "user", Content: text},
		},
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.UpstreamRequests.WithLabelValues("openai", "transport_error").Inc()
		return "", &domain.UpstreamError{Service: "openai", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.UpstreamRequests.WithLabelValues("openai", "transport_error").Inc()
		return "", &domain.UpstreamError{Service: "openai", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		metrics.UpstreamRequests.WithLabelValues("openai", "upstream_error").Inc()
		return "", &domain.UpstreamError{
			Service:    "openai",
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}
	}

	var out chatResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", err
	}
	if len(out.Choices) == 0 {
		metrics.UpstreamRequests.WithLabelValues("openai", "empty_response").Inc()
		return "", &domain.EmptyResponseError{Service: "openai"}
	}

	metrics.UpstreamRequests.WithLabelValues("openai", "ok").Inc()
	return out.Choices[0].Message.Content, nil
}
