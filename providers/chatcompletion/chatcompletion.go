// Package chatcompletion implements a chatbridge.ChatProvider over the
// OpenAI Chat Completions API. With a custom base URL it also talks to
// any OpenAI-compatible runtime, notably Ollama's /v1 endpoint.
package chatcompletion

import (
	"context"
	"errors"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/complycloud/chatbridge"
	"github.com/complycloud/chatbridge/providers/base"
)

// Config configures the Chat Completions provider.
type Config struct {
	base.Config
}

// Option is a functional option for this provider.
type Option func(*Config)

// WithAPIKey sets the API key.
func WithAPIKey(key string) Option {
	return func(c *Config) { c.APIKey = key }
}

// WithBaseURL sets a custom base URL.
func WithBaseURL(url string) Option {
	return func(c *Config) { c.BaseURL = url }
}

// WithTemperature sets the temperature.
func WithTemperature(t float64) Option {
	return func(c *Config) { c.Temperature = &t }
}

// WithMaxOutputTokens sets the max output tokens.
func WithMaxOutputTokens(n int) Option {
	return func(c *Config) { c.MaxOutputTokens = &n }
}

// WithExtraHeader adds a custom header to requests.
func WithExtraHeader(key, value string) Option {
	return func(c *Config) {
		if c.ExtraHeaders == nil {
			c.ExtraHeaders = make(map[string]string)
		}
		c.ExtraHeaders[key] = value
	}
}

// New creates a ChatProvider using the Chat Completions API. It reads
// OPENAI_API_KEY and OPENAI_BASE_URL from the environment if not
// explicitly set.
func New(model string, opts ...Option) chatbridge.ChatProvider {
	cfg := Config{}
	for _, opt := range opts {
		opt(&cfg)
	}
	base.ApplyEnvDefaults(&cfg.Config, "OPENAI_API_KEY", "OPENAI_BASE_URL")

	var clientOpts []option.RequestOption
	if cfg.APIKey != "" {
		clientOpts = append(clientOpts, option.WithAPIKey(cfg.APIKey))
	}
	if cfg.BaseURL != "" {
		clientOpts = append(clientOpts, option.WithBaseURL(cfg.BaseURL))
	}
	for k, v := range cfg.ExtraHeaders {
		clientOpts = append(clientOpts, option.WithHeader(k, v))
	}
	client := openai.NewClient(clientOpts...)
	return &provider{model: model, cfg: cfg, client: client}
}

type provider struct {
	model  string
	cfg    Config
	client openai.Client
}

func (p *provider) Chat(ctx context.Context, req chatbridge.ChatRequest) (string, error) {
	params := BuildParams(req)
	params.Model = p.model

	if p.cfg.Temperature != nil {
		params.Temperature = openai.Float(*p.cfg.Temperature)
	}
	if p.cfg.MaxOutputTokens != nil {
		params.MaxTokens = openai.Int(int64(*p.cfg.MaxOutputTokens))
	}

	completion, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", err
	}
	if len(completion.Choices) == 0 {
		return "", errors.New("chatcompletion: empty choices in response")
	}
	return strings.TrimSpace(completion.Choices[0].Message.Content), nil
}

// BuildParams converts a chat request to Chat Completions params.
func BuildParams(req chatbridge.ChatRequest) openai.ChatCompletionNewParams {
	params := openai.ChatCompletionNewParams{}

	if req.SystemPrompt != "" {
		params.Messages = append(params.Messages, openai.SystemMessage(req.SystemPrompt))
	}

	for _, msg := range req.History {
		switch msg.Role {
		case chatbridge.RoleSystem:
			params.Messages = append(params.Messages, openai.SystemMessage(msg.Content))
		case chatbridge.RoleAssistant:
			params.Messages = append(params.Messages, openai.AssistantMessage(msg.Content))
		default:
			params.Messages = append(params.Messages, openai.UserMessage(msg.Content))
		}
	}

	return params
}
