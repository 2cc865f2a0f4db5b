// Package llm cleans and classifies comments through an OpenAI-compatible
// chat completion endpoint.
package llm

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	openai "github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"
)

// Config configures a Client.
type Config struct {
	BaseURL string
	APIKey  string
	Model   string
	// RequestsPerMinute throttles calls. Zero means unthrottled.
	RequestsPerMinute int

	HTTPClient *http.Client
}

// Client sends single-turn chat completions.
type Client struct {
	api     *openai.Client
	model   string
	limiter *rate.Limiter
}

// New creates a client. An empty BaseURL uses the OpenAI endpoint.
func New(cfg Config) (*Client, error) {
	if cfg.Model == "" {
		return nil, errors.New("llm: model required")
	}
	oc := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		oc.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	if cfg.HTTPClient != nil {
		oc.HTTPClient = cfg.HTTPClient
	} else {
		oc.HTTPClient = &http.Client{Timeout: 60 * time.Second}
	}

	limit := rate.Inf
	if cfg.RequestsPerMinute > 0 {
		limit = rate.Every(time.Minute / time.Duration(cfg.RequestsPerMinute))
	}
	return &Client{
		api:     openai.NewClientWithConfig(oc),
		model:   cfg.Model,
		limiter: rate.NewLimiter(limit, 1),
	}, nil
}

// Chat sends a system and a user message and returns the trimmed reply.
func (c *Client) Chat(ctx context.Context, system, user string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
	})
	if err != nil {
		return "", errors.Wrap(err, "llm: chat completion")
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("llm: empty response")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
