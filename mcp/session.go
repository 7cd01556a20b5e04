package mcp

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/complycloud/chatbridge"
)

// Session is a synchronous MCP tool session. It implements
// chatbridge.ToolSession: ListTools surfaces protocol errors, Invoke
// never does — backend failures are flattened into the result text so
// the orchestrator can narrate them.
type Session struct {
	transport *Transport
	logger    *zap.Logger

	mu    sync.Mutex
	ready bool
}

var _ chatbridge.ToolSession = (*Session)(nil)

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithLogger sets the session logger. The default is a no-op logger.
func WithLogger(l *zap.Logger) SessionOption {
	return func(s *Session) { s.logger = l }
}

// NewSession wraps a transport. Initialize must succeed before the
// session can list or invoke tools.
func NewSession(t *Transport, opts ...SessionOption) *Session {
	s := &Session{transport: t, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Initialize performs the MCP handshake: an initialize request followed
// by the initialized notification. It is idempotent.
func (s *Session) Initialize(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ready {
		return nil
	}

	result, err := s.transport.Call(ctx, methodInitialize, initializeParams{
		ProtocolVersion: ProtocolVersion,
		Capabilities:    map[string]any{},
		ClientInfo:      clientInfo{Name: "chatbridge", Version: "1.0.0"},
	})
	if err != nil {
		return fmt.Errorf("initialize: %w", err)
	}
	if err := s.transport.Notify(methodInitialized, nil); err != nil {
		return fmt.Errorf("initialized notification: %w", err)
	}

	s.logger.Info("mcp session initialized", zap.ByteString("server", result))
	s.ready = true
	return nil
}

func (s *Session) initialized() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ready
}

// ListTools fetches the backend's tool descriptors.
func (s *Session) ListTools(ctx context.Context) ([]chatbridge.ToolDescriptor, error) {
	if !s.initialized() {
		return nil, ErrNotInitialized
	}

	result, err := s.transport.Call(ctx, methodListTools, nil)
	if err != nil {
		return nil, fmt.Errorf("tools/list: %w", err)
	}

	tools := toolsFromListResult(result)
	s.logger.Info("tools listed", zap.Int("count", len(tools)))
	return tools, nil
}

// Invoke calls one tool and flattens the reply. Every failure path —
// uninitialized session, transport error, JSON-RPC error reply — yields
// a textual result naming the tool and the error.
func (s *Session) Invoke(ctx context.Context, name string, args map[string]any) chatbridge.ToolResult {
	if args == nil {
		args = map[string]any{}
	}
	if !s.initialized() {
		return errResult(name, ErrNotInitialized)
	}

	result, err := s.transport.Call(ctx, methodCallTool, callToolParams{Name: name, Arguments: args})
	if err != nil {
		s.logger.Warn("tool call failed", zap.String("tool", name), zap.Error(err))
		return errResult(name, err)
	}

	return chatbridge.ToolResult{Text: resultText(result)}
}

// Close tears the underlying transport down.
func (s *Session) Close() error {
	return s.transport.Close()
}

func errResult(name string, err error) chatbridge.ToolResult {
	return chatbridge.ToolResult{Text: fmt.Sprintf("Error calling tool %s: %v", name, err)}
}
