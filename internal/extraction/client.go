package extraction

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// Invoker submits a composed prompt to an inference endpoint and returns
// the raw textual completion.
type Invoker interface {
	Invoke(ctx context.Context, prompt Prompt) (string, error)
}

// Client calls a chat-completions-compatible inference endpoint. It holds
// no per-request state; one HTTP call per Invoke, no internal retries.
type Client struct {
	cfg    Config
	http   *http.Client
	logger *slog.Logger
}

// NewClient creates an inference client from a finalized Config.
func NewClient(cfg Config, logger *slog.Logger) *Client {
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.TimeoutDuration()},
		logger: logger.With("system", "inference"),
	}
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
	Messages    []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Invoke sends the prompt as a single user-role message and returns the
// completion text. A non-2xx upstream status yields an *InferenceError
// carrying the status and response body.
func (c *Client) Invoke(ctx context.Context, prompt Prompt) (string, error) {
	start := time.Now()

	body := chatRequest{
		Model:       c.cfg.Model,
		Temperature: c.cfg.Temperature,
		MaxTokens:   c.cfg.MaxTokens,
		Messages: []chatMessage{
			{Role: "user", Content: messageContent(prompt)},
		},
	}

	bs, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("encode inference request: %w", err)
	}

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(bs))
	if err != nil {
		return "", fmt.Errorf("build inference request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("inference request: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)

	c.logger.Info(
		"inference response",
		"model", c.cfg.Model,
		"status", resp.StatusCode,
		"bytes", len(raw),
		"duration", time.Since(start),
	)

	if resp.StatusCode/100 != 2 {
		return "", &InferenceError{Status: resp.StatusCode, Body: string(raw)}
	}

	var cc chatResponse
	if err := json.Unmarshal(raw, &cc); err != nil {
		return "", fmt.Errorf("decode inference response: %w", err)
	}
	if len(cc.Choices) == 0 {
		return "", fmt.Errorf("inference response contains no choices")
	}

	return cc.Choices[0].Message.Content, nil
}

// messageContent renders text-only prompts as a plain string and image
// prompts as multimodal content blocks with an inline data URI.
func messageContent(prompt Prompt) any {
	if prompt.ImageBase64 == "" {
		return prompt.Text
	}

	dataURI := "data:" + prompt.ImageMIME + ";base64," + prompt.ImageBase64
	return []contentPart{
		{Type: "text", Text: prompt.Text},
		{Type: "image_url", ImageURL: &imageURL{URL: dataURI}},
	}
}
