// Package providers selects a chat provider implementation by name.
package providers

import (
	"fmt"

	"github.com/complycloud/chatbridge"
	"github.com/complycloud/chatbridge/providers/anthropic"
	"github.com/complycloud/chatbridge/providers/chatcompletion"
)

// DefaultOllamaBaseURL is Ollama's OpenAI-compatible endpoint.
const DefaultOllamaBaseURL = "http://localhost:11434/v1"

// Options carries provider settings resolved from configuration.
type Options struct {
	APIKey      string
	BaseURL     string
	Temperature *float64
	MaxTokens   *int
}

// New creates a ChatProvider for the named backend. Supported names:
// ollama, openai, anthropic.
func New(name, model string, opts Options) (chatbridge.ChatProvider, error) {
	switch name {
	case "ollama":
		baseURL := opts.BaseURL
		if baseURL == "" {
			baseURL = DefaultOllamaBaseURL
		}
		apiKey := opts.APIKey
		if apiKey == "" {
			// Ollama ignores the key but the client requires one.
			apiKey = "ollama"
		}
		return chatcompletion.New(model, chatOpts(Options{
			APIKey:      apiKey,
			BaseURL:     baseURL,
			Temperature: opts.Temperature,
			MaxTokens:   opts.MaxTokens,
		})...), nil
	case "openai":
		return chatcompletion.New(model, chatOpts(opts)...), nil
	case "anthropic":
		var aOpts []anthropic.Option
		if opts.APIKey != "" {
			aOpts = append(aOpts, anthropic.WithAPIKey(opts.APIKey))
		}
		if opts.BaseURL != "" {
			aOpts = append(aOpts, anthropic.WithBaseURL(opts.BaseURL))
		}
		if opts.Temperature != nil {
			aOpts = append(aOpts, anthropic.WithTemperature(*opts.Temperature))
		}
		if opts.MaxTokens != nil {
			aOpts = append(aOpts, anthropic.WithMaxOutputTokens(*opts.MaxTokens))
		}
		return anthropic.New(model, aOpts...), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s (supported: ollama, openai, anthropic)", name)
	}
}

func chatOpts(opts Options) []chatcompletion.Option {
	var out []chatcompletion.Option
	if opts.APIKey != "" {
		out = append(out, chatcompletion.WithAPIKey(opts.APIKey))
	}
	if opts.BaseURL != "" {
		out = append(out, chatcompletion.WithBaseURL(opts.BaseURL))
	}
	if opts.Temperature != nil {
		out = append(out, chatcompletion.WithTemperature(*opts.Temperature))
	}
	if opts.MaxTokens != nil {
		out = append(out, chatcompletion.WithMaxOutputTokens(*opts.MaxTokens))
	}
	return out
}
