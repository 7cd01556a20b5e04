package chatbridge

import "encoding/json"

// Role is the speaker role.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one entry in a conversation. It is immutable once created.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// ToolParameter describes one parameter of a tool, in declaration order.
type ToolParameter struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
	Required    bool   `json:"required,omitempty"`
}

// ToolDescriptor is the static metadata for one backend-exposed tool.
// Name is unique within a catalog; the orchestrator relies on that for
// dispatch. Parameters keep the order the backend declared them in.
type ToolDescriptor struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Parameters  []ToolParameter `json:"parameters,omitempty"`
}

// ToolInvocation is a parsed tool call extracted from one LLM response.
// It is consumed immediately and never persisted.
type ToolInvocation struct {
	ToolName  string         `json:"tool_name"`
	Arguments map[string]any `json:"arguments"`
}

// ArgumentsJSON returns the argument mapping encoded as a JSON object.
func (inv ToolInvocation) ArgumentsJSON() json.RawMessage {
	if len(inv.Arguments) == 0 {
		return json.RawMessage("{}")
	}
	b, err := json.Marshal(inv.Arguments)
	if err != nil {
		return json.RawMessage("{}")
	}
	return b
}

// ToolResult is the flattened textual outcome of one tool invocation.
// Backend failures are reported here as text, never as errors.
type ToolResult struct {
	Text string `json:"text"`
}
