package ai

import (
	"context"
	"errors"
	"strings"

	"github.com/johnquangdev/meeting-insights/pkg/config"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAIClient calls the OpenAI chat completions API
type OpenAIClient struct {
	client openai.Client
	model  openai.ChatModel
}

// NewOpenAIClient creates an OpenAI backend. SDK retries are disabled; the gateway owns retry policy.
func NewOpenAIClient(cfg *config.LLMConfig) *OpenAIClient {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(withTrailingSlash(cfg.BaseURL)))
	}
	return &OpenAIClient{
		client: openai.NewClient(opts...),
		model:  openai.ChatModel(cfg.Model),
	}
}

// Name identifies the backend in logs
func (c *OpenAIClient) Name() string {
	return config.ProviderOpenAI
}

// Complete sends the prompt as a single user message
func (c *OpenAIClient) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       c.model,
		Messages:    []openai.ChatCompletionMessageParamUnion{openai.UserMessage(req.Prompt)},
		Temperature: openai.Float(req.Temperature),
		MaxTokens:   openai.Int(int64(req.MaxTokens)),
	})
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			return "", &StatusError{Backend: c.Name(), StatusCode: apiErr.StatusCode, Body: apiErr.Error()}
		}
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}

func withTrailingSlash(u string) string {
	if strings.HasSuffix(u, "/") {
		return u
	}
	return u + "/"
}
