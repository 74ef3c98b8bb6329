// Package llm provides the client for the reasoning collaborator: an
// OpenAI-compatible chat completions endpoint reached over HTTP.
//
// The client distinguishes transport failures from API failures so callers
// can apply their own retry policy; it never retries internally.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// Completer is the single operation the engine needs from the reasoning
// collaborator.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// Config holds the connection settings for the collaborator endpoint.
type Config struct {
	// APIBase is the base URL, e.g. "https://api.openai.com".
	APIBase string
	// APIKey is the bearer token.
	APIKey string
	// Model is the model identifier.
	Model string
	// MaxTokens caps the completion length. Zero means 4096.
	MaxTokens int
	// Temperature for generation.
	Temperature float64
	// RequestsPerSecond bounds the sustained request rate. Zero means 2.
	RequestsPerSecond float64
}

// TransportError reports a failure to reach the collaborator at all.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("LLM transport error: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// APIError reports a non-success response from the collaborator.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("LLM API error (status %d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("LLM API error: %s", e.Message)
}

// Message is a chat message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Temperature float64   `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// Client talks to an OpenAI-compatible chat completions endpoint.
type Client struct {
	cfg        Config
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient creates a client for the given endpoint configuration.
func NewClient(cfg Config) *Client {
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = 4096
	}
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 2
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 120 * time.Second},
		limiter:    rate.NewLimiter(rate.Limit(rps), 4),
	}
}

// Model returns the configured model identifier.
func (c *Client) Model() string {
	return c.cfg.Model
}

func (c *Client) endpoint() string {
	return strings.TrimSuffix(c.cfg.APIBase, "/") + "/v1/chat/completions"
}

// Chat sends a chat completion request and returns the first choice.
func (c *Client) Chat(ctx context.Context, messages []Message) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	body, err := json.Marshal(chatRequest{
		Model:       c.cfg.Model,
		Messages:    messages,
		MaxTokens:   c.cfg.MaxTokens,
		Temperature: c.cfg.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(), bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &TransportError{Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &TransportError{Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		var parsed chatResponse
		if json.Unmarshal(respBody, &parsed) == nil && parsed.Error != nil {
			return "", &APIError{Status: resp.StatusCode, Message: parsed.Error.Message}
		}
		return "", &APIError{Status: resp.StatusCode, Message: string(respBody)}
	}

	var parsed chatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", &APIError{Message: fmt.Sprintf("malformed response body: %v", err)}
	}
	if parsed.Error != nil {
		return "", &APIError{Message: parsed.Error.Message}
	}
	if len(parsed.Choices) == 0 {
		return "", &APIError{Message: "no choices in response"}
	}

	return parsed.Choices[0].Message.Content, nil
}

// Complete sends a single user prompt with an optional system prompt.
func (c *Client) Complete(ctx context.Context, system, user string) (string, error) {
	var messages []Message
	if system != "" {
		messages = append(messages, Message{Role: "system", Content: system})
	}
	messages = append(messages, Message{Role: "user", Content: user})
	return c.Chat(ctx, messages)
}

// TestConnection sends a trivial prompt and checks the response echoes it.
func (c *Client) TestConnection(ctx context.Context) error {
	response, err := c.Complete(ctx, "", "Say 'hello' and nothing else.")
	if err != nil {
		return err
	}
	if !strings.Contains(strings.ToLower(response), "hello") {
		return &APIError{Message: fmt.Sprintf("unexpected response: %s", response)}
	}
	return nil
}
