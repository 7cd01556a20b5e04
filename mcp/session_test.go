package mcp

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

// fakeServer answers JSON-RPC requests read from one pipe on another,
// standing in for the backend process.
type fakeServer struct {
	in  *io.PipeReader
	out *io.PipeWriter

	// handle maps a request to the raw result or error JSON to reply
	// with. Notifications are not answered.
	handle func(method string, params gjson.Result) (result string, rpcErr string)
}

func startSessionPair(t *testing.T, handle func(method string, params gjson.Result) (string, string)) (*Session, *Transport) {
	t.Helper()

	clientReader, serverWriter := io.Pipe()
	serverReader, clientWriter := io.Pipe()

	srv := &fakeServer{in: serverReader, out: serverWriter, handle: handle}
	go srv.serve()

	tr := NewTransport(clientReader, clientWriter)
	t.Cleanup(func() { _ = tr.Close(); _ = serverWriter.Close() })
	return NewSession(tr), tr
}

func (s *fakeServer) serve() {
	scanner := bufio.NewScanner(s.in)
	for scanner.Scan() {
		req := gjson.ParseBytes(scanner.Bytes())
		id := req.Get("id")
		if !id.Exists() {
			continue
		}
		result, rpcErr := s.handle(req.Get("method").String(), req.Get("params"))
		var frame string
		if rpcErr != "" {
			frame = fmt.Sprintf(`{"jsonrpc":"2.0","id":%q,"error":%s}`, id.String(), rpcErr)
		} else {
			frame = fmt.Sprintf(`{"jsonrpc":"2.0","id":%q,"result":%s}`, id.String(), result)
		}
		fmt.Fprintln(s.out, frame)
	}
}

// complianceHandle emulates the cloud-compliance backend used in the
// examples: one no-parameter tool and one with an ordered schema.
func complianceHandle(method string, params gjson.Result) (string, string) {
	switch method {
	case methodInitialize:
		return `{"protocolVersion":"2024-11-05","serverInfo":{"name":"compliance","version":"0.1.0"}}`, ""
	case methodListTools:
		return `{"tools":[` +
			`{"name":"list_s3_buckets","description":"List all S3 buckets"},` +
			`{"name":"check_resource_compliance","description":"Check compliance",` +
			`"inputSchema":{"type":"object",` +
			`"properties":{` +
			`"resourceType":{"type":"string","description":"Resource category"},` +
			`"standard":{"type":"string","description":"Standard name"},` +
			`"region":{"type":"string","description":"Region filter"}},` +
			`"required":["resourceType","standard"]}}]}`, ""
	case methodCallTool:
		switch params.Get("name").String() {
		case "list_s3_buckets":
			return `{"content":[{"type":"text","text":"bucket-a, bucket-b"}]}`, ""
		case "check_resource_compliance":
			return fmt.Sprintf(`{"content":[{"type":"text","text":"COMPLIANT: %s/%s"}]}`,
				params.Get("arguments.resourceType").String(),
				params.Get("arguments.standard").String()), ""
		default:
			return "", `{"code":-32602,"message":"unknown tool"}`
		}
	}
	return "", `{"code":-32601,"message":"method not found"}`
}

func TestSession_InitializeAndListTools(t *testing.T) {
	sess, _ := startSessionPair(t, complianceHandle)
	ctx := context.Background()

	require.NoError(t, sess.Initialize(ctx))
	require.NoError(t, sess.Initialize(ctx), "initialize is idempotent")

	tools, err := sess.ListTools(ctx)
	require.NoError(t, err)
	require.Len(t, tools, 2)

	assert.Equal(t, "list_s3_buckets", tools[0].Name)
	assert.Empty(t, tools[0].Parameters)

	compliance := tools[1]
	assert.Equal(t, "check_resource_compliance", compliance.Name)
	require.Len(t, compliance.Parameters, 3)
	// Parameter order follows the schema document, not map iteration.
	assert.Equal(t, "resourceType", compliance.Parameters[0].Name)
	assert.Equal(t, "standard", compliance.Parameters[1].Name)
	assert.Equal(t, "region", compliance.Parameters[2].Name)
	assert.True(t, compliance.Parameters[0].Required)
	assert.True(t, compliance.Parameters[1].Required)
	assert.False(t, compliance.Parameters[2].Required)
	assert.Equal(t, "Resource category", compliance.Parameters[0].Description)
}

func TestSession_RequiresInitialize(t *testing.T) {
	sess, _ := startSessionPair(t, complianceHandle)

	_, err := sess.ListTools(context.Background())
	assert.ErrorIs(t, err, ErrNotInitialized)

	res := sess.Invoke(context.Background(), "list_s3_buckets", nil)
	assert.Contains(t, res.Text, "Error calling tool list_s3_buckets")
}

func TestSession_InvokeFlattensContent(t *testing.T) {
	sess, _ := startSessionPair(t, complianceHandle)
	ctx := context.Background()
	require.NoError(t, sess.Initialize(ctx))

	res := sess.Invoke(ctx, "list_s3_buckets", nil)
	assert.Equal(t, "bucket-a, bucket-b", res.Text)

	res = sess.Invoke(ctx, "check_resource_compliance", map[string]any{
		"resourceType": "storage",
		"standard":     "SOC2",
	})
	assert.Equal(t, "COMPLIANT: storage/SOC2", res.Text)
}

func TestSession_InvokeErrorReplyBecomesText(t *testing.T) {
	sess, _ := startSessionPair(t, complianceHandle)
	ctx := context.Background()
	require.NoError(t, sess.Initialize(ctx))

	res := sess.Invoke(ctx, "no_such_tool", nil)
	assert.Equal(t, "Error calling tool no_such_tool: unknown tool", res.Text)
}

func TestSession_InvokeResultWithoutContentList(t *testing.T) {
	sess, _ := startSessionPair(t, func(method string, params gjson.Result) (string, string) {
		if method == methodCallTool {
			return `{"status":"done"}`, ""
		}
		return complianceHandle(method, params)
	})
	ctx := context.Background()
	require.NoError(t, sess.Initialize(ctx))

	res := sess.Invoke(ctx, "list_s3_buckets", nil)
	assert.Equal(t, `{"status":"done"}`, res.Text)
}

func TestSession_InvokeFirstPartWithoutText(t *testing.T) {
	sess, _ := startSessionPair(t, func(method string, params gjson.Result) (string, string) {
		if method == methodCallTool {
			return `{"content":[{"type":"image","data":"aGk="}]}`, ""
		}
		return complianceHandle(method, params)
	})
	ctx := context.Background()
	require.NoError(t, sess.Initialize(ctx))

	res := sess.Invoke(ctx, "list_s3_buckets", nil)
	assert.Equal(t, `{"type":"image","data":"aGk="}`, res.Text)
}

func TestSession_TransportClosedBecomesText(t *testing.T) {
	sess, tr := startSessionPair(t, complianceHandle)
	ctx := context.Background()
	require.NoError(t, sess.Initialize(ctx))
	require.NoError(t, tr.Close())

	res := sess.Invoke(ctx, "list_s3_buckets", nil)
	assert.Contains(t, res.Text, "Error calling tool list_s3_buckets")
}

func TestTransport_OutOfOrderReplies(t *testing.T) {
	clientReader, serverWriter := io.Pipe()
	serverReader, clientWriter := io.Pipe()

	// Hold the first request's reply until the second request arrives,
	// then answer in reverse order.
	go func() {
		scanner := bufio.NewScanner(serverReader)
		var frames []gjson.Result
		for scanner.Scan() {
			frames = append(frames, gjson.ParseBytes(append([]byte(nil), scanner.Bytes()...)))
			if len(frames) == 2 {
				break
			}
		}
		for i := len(frames) - 1; i >= 0; i-- {
			fmt.Fprintf(serverWriter, `{"jsonrpc":"2.0","id":%q,"result":{"echo":%q}}`+"\n",
				frames[i].Get("id").String(), frames[i].Get("params.n").String())
		}
	}()

	tr := NewTransport(clientReader, clientWriter)
	defer tr.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	type call struct {
		n   string
		raw string
		err error
	}
	results := make(chan call, 2)
	for _, n := range []string{"one", "two"} {
		go func(n string) {
			raw, err := tr.Call(ctx, "echo", map[string]any{"n": n})
			results <- call{n: n, raw: string(raw), err: err}
		}(n)
	}

	for i := 0; i < 2; i++ {
		c := <-results
		require.NoError(t, c.err)
		assert.Equal(t, c.n, gjson.Get(c.raw, "echo").String(), "reply must match its request")
	}
}

func TestTransport_ContextCancellation(t *testing.T) {
	clientReader, serverWriter := io.Pipe() // server never replies
	serverReader, clientWriter := io.Pipe()
	go io.Copy(io.Discard, serverReader)
	t.Cleanup(func() { _ = serverWriter.Close() })

	tr := NewTransport(clientReader, clientWriter)
	defer tr.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := tr.Call(ctx, "tools/list", nil)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
