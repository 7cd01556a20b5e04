package chatbridge

import "sync"

// Conversation is an ordered, append-only log of role-tagged messages.
// It grows by exactly one user/assistant pair per completed turn; no
// eviction or truncation exists, the full history is replayed to the
// LLM on every call.
type Conversation struct {
	mu       sync.RWMutex
	messages []Message
}

// NewConversation returns an empty conversation.
func NewConversation() *Conversation {
	return &Conversation{}
}

// Append adds one message to the end of the log.
func (c *Conversation) Append(role Role, content string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = append(c.messages, Message{Role: role, Content: content})
}

// CommitTurn appends the user/assistant pair of one completed turn.
func (c *Conversation) CommitTurn(utterance, answer string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = append(c.messages,
		Message{Role: RoleUser, Content: utterance},
		Message{Role: RoleAssistant, Content: answer},
	)
}

// Messages returns a copy of the log in chronological order.
func (c *Conversation) Messages() []Message {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// Len reports the number of messages in the log.
func (c *Conversation) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.messages)
}
