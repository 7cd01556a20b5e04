// Package mcp implements a minimal Model Context Protocol client over a
// child process's standard streams: JSON-RPC 2.0 requests on stdin,
// newline-delimited replies on stdout.
package mcp

import (
	"encoding/json"
	"errors"

	"github.com/tidwall/gjson"

	"github.com/complycloud/chatbridge"
)

// ProtocolVersion is the MCP revision this client speaks.
const ProtocolVersion = "2024-11-05"

const (
	methodInitialize  = "initialize"
	methodInitialized = "notifications/initialized"
	methodListTools   = "tools/list"
	methodCallTool    = "tools/call"
)

var (
	ErrNotInitialized = errors.New("mcp: session not initialized")
	ErrClosed         = errors.New("mcp: transport closed")
)

type clientInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type initializeParams struct {
	ProtocolVersion string         `json:"protocolVersion"`
	Capabilities    map[string]any `json:"capabilities"`
	ClientInfo      clientInfo     `json:"clientInfo"`
}

type callToolParams struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}

// RPCError is a JSON-RPC error reply surfaced as a Go error.
type RPCError struct {
	Code    int64
	Message string
}

func (e *RPCError) Error() string { return e.Message }

// toolsFromListResult converts a raw tools/list result into catalog
// descriptors. Parameters come from the tool's JSON Schema; walking the
// raw document keeps them in the order the backend declared them, which
// the catalog preserves into the prompt.
func toolsFromListResult(raw json.RawMessage) []chatbridge.ToolDescriptor {
	var tools []chatbridge.ToolDescriptor
	gjson.GetBytes(raw, "tools").ForEach(func(_, tool gjson.Result) bool {
		desc := chatbridge.ToolDescriptor{
			Name:        tool.Get("name").String(),
			Description: tool.Get("description").String(),
		}

		required := map[string]bool{}
		tool.Get("inputSchema.required").ForEach(func(_, name gjson.Result) bool {
			required[name.String()] = true
			return true
		})

		tool.Get("inputSchema.properties").ForEach(func(name, prop gjson.Result) bool {
			desc.Parameters = append(desc.Parameters, chatbridge.ToolParameter{
				Name:        name.String(),
				Type:        prop.Get("type").String(),
				Description: prop.Get("description").String(),
				Required:    required[name.String()],
			})
			return true
		})

		tools = append(tools, desc)
		return true
	})
	return tools
}

// resultText flattens a tools/call result to text: the first content
// part's text when the reply carries a content list, otherwise the
// reply's raw string form.
func resultText(raw json.RawMessage) string {
	content := gjson.GetBytes(raw, "content")
	if content.IsArray() {
		parts := content.Array()
		if len(parts) > 0 {
			if text := parts[0].Get("text"); text.Exists() {
				return text.String()
			}
			return parts[0].Raw
		}
	} else if content.Exists() {
		return content.Raw
	}
	return string(raw)
}
