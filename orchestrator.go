package chatbridge

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Orchestrator runs the tool-call loop: one decision call to the LLM,
// at most one tool invocation, and an optional narration call, followed
// by a commit of the completed turn to the conversation.
//
// Turns are fully serialized: each turn reads the whole history and
// appends to it, so a mutex is held from decision through commit.
type Orchestrator struct {
	provider ChatProvider
	session  ToolSession
	catalog  *Catalog
	conv     *Conversation
	logger   *zap.Logger

	// systemPrompt is composed once at construction; the catalog is
	// static after startup.
	systemPrompt string

	turnMu sync.Mutex
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithLogger sets the logger. The default is a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *Orchestrator) { o.logger = l }
}

// WithConversation seeds the orchestrator with an existing history.
func WithConversation(c *Conversation) Option {
	return func(o *Orchestrator) { o.conv = c }
}

// NewOrchestrator fetches the tool catalog from the session and returns
// a ready orchestrator. The session must already be initialized;
// failure to list tools is a construction error, not a turn error.
func NewOrchestrator(ctx context.Context, provider ChatProvider, session ToolSession, opts ...Option) (*Orchestrator, error) {
	if provider == nil {
		return nil, ErrNoProvider
	}
	if session == nil {
		return nil, ErrNoSession
	}

	o := &Orchestrator{
		provider: provider,
		session:  session,
		conv:     NewConversation(),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(o)
	}

	tools, err := session.ListTools(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tools: %w", err)
	}
	catalog, err := NewCatalog(tools)
	if err != nil {
		return nil, err
	}
	o.catalog = catalog
	o.systemPrompt = SystemPrompt(catalog)

	o.logger.Info("orchestrator ready", zap.Int("tools", catalog.Len()))
	return o, nil
}

// Catalog returns the tool catalog loaded at construction.
func (o *Orchestrator) Catalog() *Catalog { return o.catalog }

// Conversation returns the conversation owned by this orchestrator.
func (o *Orchestrator) Conversation() *Conversation { return o.conv }

// Submit runs one full turn for the given user utterance and returns
// the final answer. Collaborator failures (LLM unreachable, backend
// errors, malformed tool-call syntax) never surface as errors; they are
// folded into the answer text and the turn is still committed. The only
// error condition is caller misuse.
func (o *Orchestrator) Submit(ctx context.Context, utterance string) (string, error) {
	if utterance == "" {
		return "", ErrEmptyUtterance
	}

	o.turnMu.Lock()
	defer o.turnMu.Unlock()

	decision := o.chat(ctx, utterance)

	answer := decision
	if inv, ok := ParseToolCall(decision); ok {
		o.logger.Info("invoking tool",
			zap.String("tool", inv.ToolName),
			zap.ByteString("args", inv.ArgumentsJSON()))

		result := o.session.Invoke(ctx, inv.ToolName, inv.Arguments)
		answer = o.chat(ctx, NarrationPrompt(inv.ToolName, result))
	}

	o.conv.CommitTurn(utterance, answer)
	return answer, nil
}

// chat performs one LLM call against the committed history. A provider
// failure is converted to an error-description string and used as the
// call's output, so the turn always completes.
func (o *Orchestrator) chat(ctx context.Context, content string) string {
	history := o.conv.Messages()
	history = append(history, Message{Role: RoleUser, Content: content})

	text, err := o.provider.Chat(ctx, ChatRequest{
		SystemPrompt: o.systemPrompt,
		History:      history,
	})
	if err != nil {
		o.logger.Warn("llm call failed", zap.Error(err))
		return fmt.Sprintf("Error calling LLM: %v", err)
	}
	return text
}
