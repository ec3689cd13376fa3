package ai

import (
	"context"
	"fmt"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"go.uber.org/zap"
)

// Client wraps the OpenAI SDK for the gateway operations. Every call is a
// single blocking round-trip: no retry, no streaming, no client-side timeout
// beyond the transport's own.
type Client struct {
	client      *openai.Client
	model       string
	searchModel string
	logger      *zap.Logger
}

// NewClient creates a new OpenAI client. model serves the structured calls,
// searchModel the web-search-grounded chat.
func NewClient(apiKey, model, searchModel string, logger *zap.Logger) (*Client, error) {
	if apiKey == "" || model == "" || searchModel == "" {
		return nil, fmt.Errorf("apiKey, model, and searchModel are required")
	}

	client := openai.NewClient(
		option.WithAPIKey(apiKey),
	)

	return &Client{
		client:      &client,
		model:       model,
		searchModel: searchModel,
		logger:      logger,
	}, nil
}

// Complete performs a single chat completion request and returns the first
// choice's message.
func (c *Client) Complete(ctx context.Context, params openai.ChatCompletionNewParams) (*openai.ChatCompletionMessage, error) {
	requestStart := time.Now()

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("chat completion request failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no choices returned from OpenAI")
	}

	message := resp.Choices[0].Message
	if message.Content == "" {
		return nil, fmt.Errorf("empty content in response")
	}

	requestTime := time.Since(requestStart)
	c.logger.Info("OpenAI token usage",
		zap.String("model", string(params.Model)),
		zap.Int64("prompt_tokens", resp.Usage.PromptTokens),
		zap.Int64("completion_tokens", resp.Usage.CompletionTokens),
		zap.Int64("total_tokens", resp.Usage.TotalTokens),
		zap.Duration("request_time", requestTime),
	)

	return &message, nil
}
