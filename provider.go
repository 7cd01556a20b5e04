package chatbridge

import "context"

// ChatRequest is the provider-agnostic input for one LLM call. History
// carries the full conversation followed by the message being asked.
type ChatRequest struct {
	SystemPrompt string
	History      []Message
}

// ChatProvider is a synchronous LLM call. Implementations return the
// assistant's text for the given request.
type ChatProvider interface {
	Chat(ctx context.Context, req ChatRequest) (string, error)
}

// ChatFunc adapts a function to the ChatProvider interface.
type ChatFunc func(ctx context.Context, req ChatRequest) (string, error)

func (f ChatFunc) Chat(ctx context.Context, req ChatRequest) (string, error) {
	return f(ctx, req)
}
