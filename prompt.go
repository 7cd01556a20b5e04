package chatbridge

import "fmt"

// systemPromptFormat instructs the LLM to either answer directly or
// emit a single TOOL_CALL line. The %s is the catalog description.
const systemPromptFormat = `You are a helpful cloud compliance assistant. You have access to tools that can check AWS cloud compliance and list resources.

%s

When a user asks a question that requires using a tool, respond with:
TOOL_CALL: tool_name {"param1": "value1", "param2": "value2"}

For example:
- If asked to list S3 buckets: TOOL_CALL: list_s3_buckets {}
- If asked to check compliance: TOOL_CALL: check_resource_compliance {"resourceType": "storage", "standard": "SOC2"}

After receiving tool results, provide a helpful natural language explanation to the user.`

// narrationPromptFormat quotes a tool's name and textual result and
// asks for a user-facing explanation.
const narrationPromptFormat = "The tool '%s' returned:\n%s\n\nPlease explain these results to the user in a helpful way."

// SystemPrompt renders the per-process system prompt for a catalog.
func SystemPrompt(catalog *Catalog) string {
	return fmt.Sprintf(systemPromptFormat, catalog.Describe())
}

// NarrationPrompt renders the follow-up message sent to the LLM after a
// tool invocation so it can narrate the (possibly error) result.
func NarrationPrompt(toolName string, result ToolResult) string {
	return fmt.Sprintf(narrationPromptFormat, toolName, result.Text)
}
