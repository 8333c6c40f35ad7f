// Package rpc runs highlighters out of process over JSON-RPC 2.0 with
// LSP-style Content-Length framing.
//
// The only method is highlight/once:
//
//	--> {"method": "highlight/once", "params": {"content": "...", "language": "go"}}
//	<-- {"result": {"highlights": [...], "warning": "...", "error": "..."}}
//
// The result uses the JSON form understood by syntax.DecodeResult.
package rpc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/sourcegraph/jsonrpc2"
	"github.com/tidwall/sjson"

	"github.com/dshills/tuikit/internal/syntax"
)

// Method names.
const (
	MethodHighlight = "highlight/once"
	MethodShutdown  = "shutdown"
)

// Error codes beyond the JSON-RPC reserved range.
const (
	CodeHighlightFailed     int64 = -32000
	CodeUnsupportedLanguage int64 = -32001
)

// ErrClosed is returned by calls on a client whose connection is gone.
var ErrClosed = errors.New("highlight server connection closed")

// Client is a syntax.Client that forwards requests to a highlight server.
type Client struct {
	conn *jsonrpc2.Conn
}

// NewClient speaks the protocol over rwc. The connection is closed when
// ctx is cancelled or Close is called.
func NewClient(ctx context.Context, rwc io.ReadWriteCloser) *Client {
	stream := jsonrpc2.NewBufferedStream(rwc, jsonrpc2.VSCodeObjectCodec{})
	// The server never calls back; any request it sends is refused.
	refuse := jsonrpc2.HandlerWithError(func(context.Context, *jsonrpc2.Conn, *jsonrpc2.Request) (any, error) {
		return nil, errMethodNotFound
	})
	return &Client{conn: jsonrpc2.NewConn(ctx, stream, refuse)}
}

// Highlight sends content to the server and decodes its answer.
func (c *Client) Highlight(ctx context.Context, content, language string) (syntax.Result, error) {
	params, err := encodeParams(content, language)
	if err != nil {
		return syntax.Result{}, err
	}

	var raw json.RawMessage
	if err := c.conn.Call(ctx, MethodHighlight, json.RawMessage(params), &raw); err != nil {
		return syntax.Result{}, c.callError(err)
	}
	if len(raw) == 0 || string(raw) == "null" {
		return syntax.Result{}, nil
	}
	return syntax.DecodeResult(raw)
}

func (c *Client) callError(err error) error {
	var rpcErr *jsonrpc2.Error
	if errors.As(err, &rpcErr) {
		switch rpcErr.Code {
		case CodeUnsupportedLanguage:
			return fmt.Errorf("%w: %s", syntax.ErrUnsupportedLanguage, rpcErr.Message)
		default:
			return fmt.Errorf("highlight server: %s", rpcErr.Message)
		}
	}
	if errors.Is(err, jsonrpc2.ErrClosed) {
		return ErrClosed
	}
	return err
}

// Shutdown asks the server to refuse further requests. The connection
// stays open until Close.
func (c *Client) Shutdown(ctx context.Context) error {
	var ack json.RawMessage
	if err := c.conn.Call(ctx, MethodShutdown, nil, &ack); err != nil {
		return c.callError(err)
	}
	return nil
}

// Close closes the connection. Pending calls fail with ErrClosed.
func (c *Client) Close() error {
	err := c.conn.Close()
	if errors.Is(err, jsonrpc2.ErrClosed) {
		return nil
	}
	return err
}

// Done is closed when the connection is gone.
func (c *Client) Done() <-chan struct{} {
	return c.conn.DisconnectNotify()
}

func encodeParams(content, language string) ([]byte, error) {
	params, err := sjson.SetBytes([]byte(`{}`), "content", content)
	if err != nil {
		return nil, fmt.Errorf("encode params: %w", err)
	}
	params, err = sjson.SetBytes(params, "language", language)
	if err != nil {
		return nil, fmt.Errorf("encode params: %w", err)
	}
	return params, nil
}
