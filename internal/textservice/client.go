// Package textservice talks to a chat-completions API (Perplexity by default).
package textservice

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ErlanBelekov/easydev/internal/domain"
)

// Responses larger than this are treated as an upstream failure.
const maxResponseBytes = 1 << 20

type Config struct {
	URL     string
	APIKey  string
	Model   string
	Timeout time.Duration
}

type Client struct {
	http   *http.Client
	url    string
	apiKey string
	model  string
}

func NewClient(cfg Config) *Client {
	return &Client{
		http:   &http.Client{Timeout: cfg.Timeout},
		url:    cfg.URL,
		apiKey: cfg.APIKey,
		model:  cfg.Model,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Complete sends prompt as a single user message and returns the first choice.
// Failures are returned as *domain.UpstreamError; Message is set only when the
// provider reported one.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	payload, err := json.Marshal(chatRequest{
		Model:    c.model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", fmt.Errorf("encode completion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", &domain.UpstreamError{Err: fmt.Errorf("do request: %w", err)}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", &domain.UpstreamError{StatusCode: resp.StatusCode, Err: fmt.Errorf("read response: %w", err)}
	}

	var out chatResponse
	decodeErr := json.Unmarshal(body, &out)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		upErr := &domain.UpstreamError{StatusCode: resp.StatusCode, Err: fmt.Errorf("status %d", resp.StatusCode)}
		if decodeErr == nil && out.Error != nil {
			upErr.Message = out.Error.Message
		}
		return "", upErr
	}
	if decodeErr != nil {
		return "", &domain.UpstreamError{StatusCode: resp.StatusCode, Err: fmt.Errorf("decode response: %w", decodeErr)}
	}
	if len(out.Choices) == 0 {
		return "", &domain.UpstreamError{StatusCode: resp.StatusCode, Err: errors.New("no choices in response")}
	}

	return strings.TrimSpace(out.Choices[0].Message.Content), nil
}
