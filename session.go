package chatbridge

import "context"

// ToolSession is the request/response channel to the external process
// that actually executes tools.
//
// Invoke never reports failure to the caller: any error from the
// underlying protocol (timeout, backend error, malformed reply) must be
// converted into a ToolResult whose text names the failing tool and the
// error, so tool failures reach the LLM as data and the narration step
// can always proceed.
type ToolSession interface {
	ListTools(ctx context.Context) ([]ToolDescriptor, error)
	Invoke(ctx context.Context, name string, args map[string]any) ToolResult
}
