package chatbridge

import (
	"strings"

	"github.com/tidwall/gjson"
)

// ToolCallMarker is the literal token an LLM response must contain for
// the rest of the line to be read as a tool invocation.
const ToolCallMarker = "TOOL_CALL:"

// ParseToolCall scans an LLM response for an embedded tool invocation.
// The wire format is a single line:
//
//	TOOL_CALL: tool_name {"param": "value"}
//
// A missing JSON object means an empty argument mapping. The second
// return value is false when the response carries no invocation, which
// includes the malformed-JSON case: a bad argument object degrades to
// "no tool call" rather than failing the turn.
//
// Parsing is pure and never returns an error.
func ParseToolCall(response string) (ToolInvocation, bool) {
	_, rest, found := strings.Cut(response, ToolCallMarker)
	if !found {
		return ToolInvocation{}, false
	}

	// Only the first line after the marker is the invocation; any
	// explanatory prose on following lines is discarded.
	line, _, _ := strings.Cut(strings.TrimSpace(rest), "\n")
	line = strings.TrimSpace(line)

	name, args, hasArgs := strings.Cut(line, "{")
	if !hasArgs {
		return ToolInvocation{ToolName: line, Arguments: map[string]any{}}, true
	}

	argsJSON := "{" + args
	if !gjson.Valid(argsJSON) {
		return ToolInvocation{}, false
	}
	parsed, ok := gjson.Parse(argsJSON).Value().(map[string]any)
	if !ok {
		return ToolInvocation{}, false
	}

	return ToolInvocation{
		ToolName:  strings.TrimSpace(name),
		Arguments: parsed,
	}, true
}
