package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os/exec"
	"sync"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
	"go.uber.org/zap"
)

// maxFrameSize bounds one newline-delimited reply from the server.
const maxFrameSize = 4 * 1024 * 1024

type reply struct {
	result json.RawMessage
	err    error
}

// Transport sends JSON-RPC 2.0 requests over a writer and correlates
// newline-delimited replies read from a reader. Replies may arrive out
// of request order; a pending map keyed by request ID pairs them up.
type Transport struct {
	w      io.Writer
	logger *zap.Logger
	cmd    *exec.Cmd

	writeMu sync.Mutex
	pending sync.Map // request id -> chan reply

	closeOnce sync.Once
	done      chan struct{}
}

// TransportOption configures a Transport.
type TransportOption func(*Transport)

// WithTransportLogger sets the logger. The default is a no-op logger.
func WithTransportLogger(l *zap.Logger) TransportOption {
	return func(t *Transport) { t.logger = l }
}

// NewTransport wraps an already-connected stream pair. The reader is
// consumed by a background goroutine until EOF or Close.
func NewTransport(r io.Reader, w io.Writer, opts ...TransportOption) *Transport {
	t := &Transport{
		w:      w,
		logger: zap.NewNop(),
		done:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(t)
	}
	go t.readLoop(r)
	return t
}

// StartCommand launches the backend process and returns a transport
// speaking over its stdin/stdout. Stderr is drained to the logger.
func StartCommand(ctx context.Context, command string, args []string, opts ...TransportOption) (*Transport, error) {
	cmd := exec.CommandContext(ctx, command, args...)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("stdin pipe: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start %s: %w", command, err)
	}

	t := NewTransport(stdout, stdin, opts...)
	t.cmd = cmd
	go t.drainStderr(stderr)

	t.logger.Info("backend process started",
		zap.String("command", command),
		zap.Strings("args", args),
		zap.Int("pid", cmd.Process.Pid))
	return t, nil
}

// Call sends one request and blocks until its reply arrives, the
// context is done, or the transport closes.
func (t *Transport) Call(ctx context.Context, method string, params any) (json.RawMessage, error) {
	id := uuid.NewString()

	ch := make(chan reply, 1)
	t.pending.Store(id, ch)
	defer t.pending.Delete(id)

	if err := t.send(id, method, params); err != nil {
		return nil, err
	}

	select {
	case r := <-ch:
		return r.result, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-t.done:
		return nil, ErrClosed
	}
}

// Notify sends a notification; no reply is expected.
func (t *Transport) Notify(method string, params any) error {
	return t.send("", method, params)
}

func (t *Transport) send(id, method string, params any) error {
	frame := []byte(`{"jsonrpc":"2.0"}`)
	var err error
	if id != "" {
		if frame, err = sjson.SetBytes(frame, "id", id); err != nil {
			return err
		}
	}
	if frame, err = sjson.SetBytes(frame, "method", method); err != nil {
		return err
	}
	if params != nil {
		if frame, err = sjson.SetBytes(frame, "params", params); err != nil {
			return err
		}
	}

	t.writeMu.Lock()
	defer t.writeMu.Unlock()

	select {
	case <-t.done:
		return ErrClosed
	default:
	}

	t.logger.Debug("-> request", zap.String("method", method), zap.String("id", id))
	if _, err := t.w.Write(append(frame, '\n')); err != nil {
		return fmt.Errorf("write %s: %w", method, err)
	}
	return nil
}

func (t *Transport) readLoop(r io.Reader) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxFrameSize)

	for scanner.Scan() {
		if len(scanner.Bytes()) == 0 {
			continue
		}
		// Copy: the scanner reuses its buffer and replies outlive the
		// iteration once handed to the waiting caller.
		line := append([]byte(nil), scanner.Bytes()...)

		id := gjson.GetBytes(line, "id")
		if !id.Exists() {
			t.logger.Debug("<- notification", zap.String("method", gjson.GetBytes(line, "method").String()))
			continue
		}

		ch, ok := t.pending.Load(id.String())
		if !ok {
			t.logger.Warn("<- reply with unknown id", zap.String("id", id.String()))
			continue
		}

		var rep reply
		if errField := gjson.GetBytes(line, "error"); errField.Exists() {
			rep.err = &RPCError{
				Code:    errField.Get("code").Int(),
				Message: errField.Get("message").String(),
			}
		} else {
			rep.result = json.RawMessage(gjson.GetBytes(line, "result").Raw)
		}
		ch.(chan reply) <- rep
	}

	if err := scanner.Err(); err != nil {
		t.logger.Warn("backend read failed", zap.Error(err))
	}
	t.Close()
}

func (t *Transport) drainStderr(r io.Reader) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		t.logger.Debug("backend stderr", zap.String("line", scanner.Text()))
	}
}

// Close shuts the transport down, fails all in-flight calls and, when
// the transport owns a child process, waits for it to exit.
func (t *Transport) Close() error {
	t.closeOnce.Do(func() {
		close(t.done)
		t.pending.Range(func(_, v any) bool {
			select {
			case v.(chan reply) <- reply{err: ErrClosed}:
			default:
			}
			return true
		})
		if t.cmd != nil {
			if c, ok := t.w.(io.Closer); ok {
				_ = c.Close()
			}
			_ = t.cmd.Wait()
		}
	})
	return nil
}
