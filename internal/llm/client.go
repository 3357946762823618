// Package llm talks to an OpenAI-compatible chat-completion endpoint
// (OpenRouter by default) using a key supplied per call.
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

const (
	// DefaultBaseURL is the OpenRouter API root.
	DefaultBaseURL = "https://openrouter.ai/api/v1"
	// DefaultModel is the model used for summaries and chat.
	DefaultModel = "anthropic/claude-3-haiku"
)

// Message roles.
const (
	RoleSystem = openai.ChatMessageRoleSystem
	RoleUser   = openai.ChatMessageRoleUser
)

var (
	// ErrMissingAPIKey indicates the caller supplied no provider key.
	ErrMissingAPIKey = errors.New("missing provider api key")
	// ErrEmptyResponse indicates the provider returned no choices.
	ErrEmptyResponse = errors.New("provider returned empty response")
)

// Message is one turn of a chat exchange.
type Message struct {
	Role    string
	Content string
}

// Client sends chat completions. It holds no credentials; each call carries
// the end user's key.
type Client struct {
	baseURL    string
	model      string
	httpClient *http.Client
}

// NewClient creates a Client. Empty baseURL or model fall back to the defaults.
func NewClient(baseURL, model string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if model == "" {
		model = DefaultModel
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		model:      model,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Model returns the configured model name.
func (c *Client) Model() string {
	return c.model
}

// Complete sends messages authenticated with apiKey and returns the text of
// the first choice.
func (c *Client) Complete(ctx context.Context, apiKey string, messages []Message) (string, error) {
	if apiKey == "" {
		return "", ErrMissingAPIKey
	}

	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = c.baseURL
	cfg.HTTPClient = c.httpClient
	client := openai.NewClientWithConfig(cfg)

	req := openai.ChatCompletionRequest{
		Model:    c.model,
		Messages: make([]openai.ChatCompletionMessage, 0, len(messages)),
	}
	for _, m := range messages {
		req.Messages = append(req.Messages, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}

	resp, err := client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}

	// Guard the index; some providers answer 200 with no choices on moderation hits.
	if len(resp.Choices) == 0 {
		return "", ErrEmptyResponse
	}

	return resp.Choices[0].Message.Content, nil
}
