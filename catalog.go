package chatbridge

import (
	"fmt"
	"strings"
)

// Catalog holds the set of tool descriptors obtained from the backend
// session at startup. It is read-only for the lifetime of the process.
type Catalog struct {
	tools []ToolDescriptor
}

// NewCatalog builds a catalog from descriptors in the given order.
// Tool names must be unique within the catalog.
func NewCatalog(tools []ToolDescriptor) (*Catalog, error) {
	seen := make(map[string]struct{}, len(tools))
	for _, t := range tools {
		if _, ok := seen[t.Name]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateTool, t.Name)
		}
		seen[t.Name] = struct{}{}
	}
	out := make([]ToolDescriptor, len(tools))
	copy(out, tools)
	return &Catalog{tools: out}, nil
}

// Tools returns the descriptors in catalog order.
func (c *Catalog) Tools() []ToolDescriptor {
	out := make([]ToolDescriptor, len(c.tools))
	copy(out, c.tools)
	return out
}

// Len reports the number of tools in the catalog.
func (c *Catalog) Len() int { return len(c.tools) }

// Describe renders the catalog into the natural-language capability
// block shown to the LLM. Output is a pure function of the descriptor
// sequence: same input, byte-identical output.
func (c *Catalog) Describe() string {
	var b strings.Builder
	b.WriteString("Available tools:\n\n")

	for _, tool := range c.tools {
		fmt.Fprintf(&b, "- **%s**: %s\n", tool.Name, tool.Description)
		if len(tool.Parameters) > 0 {
			b.WriteString("  Parameters:\n")
			for _, p := range tool.Parameters {
				typ := p.Type
				if typ == "" {
					typ = "string"
				}
				marker := " (optional)"
				if p.Required {
					marker = " (required)"
				}
				fmt.Fprintf(&b, "    - %s (%s)%s: %s\n", p.Name, typ, marker, p.Description)
			}
		}
		b.WriteString("\n")
	}

	return b.String()
}
