package rpc

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"sync/atomic"

	"github.com/sourcegraph/jsonrpc2"
	"github.com/tidwall/gjson"

	"github.com/dshills/tuikit/internal/syntax"
)

var (
	errMethodNotFound = &jsonrpc2.Error{
		Code: jsonrpc2.CodeMethodNotFound, Message: "method not found"}
	errInvalidParams = &jsonrpc2.Error{
		Code: jsonrpc2.CodeInvalidParams, Message: "invalid params"}
	errShuttingDown = &jsonrpc2.Error{
		Code: jsonrpc2.CodeInvalidRequest, Message: "server is shutting down"}
)

type method func(context.Context, json.RawMessage) (any, error)

// Server answers highlight requests with a local client.
type Server struct {
	client   syntax.Client
	stopping atomic.Bool
}

// NewServer creates a server backed by client.
func NewServer(client syntax.Client) *Server {
	return &Server{client: client}
}

// Handler returns the JSON-RPC handler. Requests are handled concurrently
// so a slow highlight does not hold up the next one.
func (s *Server) Handler() jsonrpc2.Handler {
	return jsonrpc2.AsyncHandler(routingHandler(map[string]method{
		MethodHighlight: s.highlight,
		MethodShutdown:  s.stop,
	}))
}

// Serve answers requests on rwc until the peer disconnects or ctx is
// cancelled.
func (s *Server) Serve(ctx context.Context, rwc io.ReadWriteCloser) error {
	conn := jsonrpc2.NewConn(ctx,
		jsonrpc2.NewBufferedStream(rwc, jsonrpc2.VSCodeObjectCodec{}),
		s.Handler())

	select {
	case <-conn.DisconnectNotify():
	case <-ctx.Done():
	}
	if err := conn.Close(); err != nil && !errors.Is(err, jsonrpc2.ErrClosed) {
		return err
	}
	return nil
}

func routingHandler(methods map[string]method) jsonrpc2.Handler {
	return jsonrpc2.HandlerWithError(func(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) (any, error) {
		fn, ok := methods[req.Method]
		if !ok {
			return nil, errMethodNotFound
		}
		var params json.RawMessage
		if req.Params != nil {
			params = *req.Params
		}
		return fn(ctx, params)
	})
}

func (s *Server) highlight(ctx context.Context, params json.RawMessage) (any, error) {
	if s.stopping.Load() {
		return nil, errShuttingDown
	}
	if !gjson.ValidBytes(params) {
		return nil, errInvalidParams
	}
	p := gjson.ParseBytes(params)
	content, language := p.Get("content"), p.Get("language")
	if content.Type != gjson.String || language.Type != gjson.String {
		return nil, errInvalidParams
	}

	res, err := s.client.Highlight(ctx, content.String(), language.String())
	if err != nil {
		code := CodeHighlightFailed
		if errors.Is(err, syntax.ErrUnsupportedLanguage) {
			code = CodeUnsupportedLanguage
		}
		return nil, &jsonrpc2.Error{Code: code, Message: err.Error()}
	}

	data, err := syntax.EncodeResult(res)
	if err != nil {
		return nil, &jsonrpc2.Error{Code: jsonrpc2.CodeInternalError, Message: err.Error()}
	}
	return json.RawMessage(data), nil
}

// stop refuses further highlight requests. The client closes the
// connection once it has the reply.
func (s *Server) stop(context.Context, json.RawMessage) (any, error) {
	s.stopping.Store(true)
	return nil, nil
}

// Stopping reports whether a shutdown request has been received.
func (s *Server) Stopping() bool {
	return s.stopping.Load()
}
