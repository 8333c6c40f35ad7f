// Package script provides a highlight client driven by a user Lua script.
//
// The script must define a global function
//
//	function highlight(content, language)
//	    return {highlights = spans, warning = nil, error = nil}
//	end
//
// where spans is an array of tables with fields start, end, scope and
// optionally conceal. start and end use Lua's string indexing: 1-based and
// inclusive, exactly as string.find returns them. A conceal string marks
// the span concealable and gives its replacement; conceal = true hides it.
// A result with error set still settles, with the error as a diagnostic.
// Calling error() fails the highlight.
//
// Older scripts may instead return the span array and an optional warning
// string, and may name the end field finish.
//
// Scripts run in a sandbox with only the base, table, string and math
// libraries. Each call gets a fresh interpreter, so scripts cannot keep
// state between calls.
package script

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	lua "github.com/yuin/gopher-lua"
	"github.com/yuin/gopher-lua/parse"

	"github.com/dshills/tuikit/internal/syntax"
)

// EntryPoint is the global function a script must define.
const EntryPoint = "highlight"

// Errors for script loading and execution.
var (
	// ErrNoEntryPoint is returned when the script does not define highlight.
	ErrNoEntryPoint = errors.New("script does not define a highlight function")

	// ErrBadSpan is returned when the script returns a malformed span.
	ErrBadSpan = errors.New("script returned a malformed span")
)

// Client runs a compiled Lua script as a highlighter. It implements
// syntax.Client and is safe for concurrent use.
type Client struct {
	name  string
	proto *lua.FunctionProto
	print func(string)
}

// Option configures a Client.
type Option func(*Client)

// WithPrint routes the script's print calls to fn. By default output is
// discarded since stdout belongs to the terminal UI.
func WithPrint(fn func(string)) Option {
	return func(c *Client) {
		c.print = fn
	}
}

// Compile parses and compiles source. name is used in error messages.
func Compile(name, source string, opts ...Option) (*Client, error) {
	chunk, err := parse.Parse(strings.NewReader(source), name)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}
	proto, err := lua.Compile(chunk, name)
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", name, err)
	}

	c := &Client{name: name, proto: proto}
	for _, opt := range opts {
		opt(c)
	}

	// Fail early on scripts that cannot be used at all.
	L := c.newState(context.Background())
	defer L.Close()
	if _, err := c.entryPoint(L); err != nil {
		return nil, err
	}
	return c, nil
}

// Load reads and compiles the script at path.
func Load(path string, opts ...Option) (*Client, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return Compile(path, string(data), opts...)
}

// Name returns the script name.
func (c *Client) Name() string {
	return c.name
}

// Highlight runs the script's highlight function.
func (c *Client) Highlight(ctx context.Context, content, language string) (syntax.Result, error) {
	if content == "" {
		return syntax.Result{}, syntax.ErrEmptyContent
	}
	if language == "" {
		return syntax.Result{}, syntax.ErrNoLanguage
	}

	L := c.newState(ctx)
	defer L.Close()

	fn, err := c.entryPoint(L)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return syntax.Result{}, ctxErr
		}
		return syntax.Result{}, err
	}

	err = L.CallByParam(lua.P{Fn: fn, NRet: 2, Protect: true},
		lua.LString(content), lua.LString(language))
	if err != nil {
		return syntax.Result{}, c.wrap(ctx, err)
	}
	ret, warn := L.Get(-2), L.Get(-1)
	L.Pop(2)

	res, err := toResult(ret, warn)
	if err != nil {
		return syntax.Result{}, fmt.Errorf("%s: %w", c.name, err)
	}
	return res, nil
}

// entryPoint runs the chunk in L and returns the highlight function.
func (c *Client) entryPoint(L *lua.LState) (*lua.LFunction, error) {
	L.Push(L.NewFunctionFromProto(c.proto))
	if err := L.PCall(0, lua.MultRet, nil); err != nil {
		return nil, fmt.Errorf("run %s: %w", c.name, err)
	}
	fn, ok := L.GetGlobal(EntryPoint).(*lua.LFunction)
	if !ok {
		return nil, fmt.Errorf("%s: %w", c.name, ErrNoEntryPoint)
	}
	return fn, nil
}

// wrap prefers the context error so cancellation is reported as such.
func (c *Client) wrap(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return fmt.Errorf("%s: %w", c.name, err)
}

// toResult converts the script's return values into a result. ret is
// either a result table or a bare span array followed by a warning.
func toResult(ret, warn lua.LValue) (syntax.Result, error) {
	tbl, ok := ret.(*lua.LTable)
	if !ok || !isResultTable(tbl) {
		spans, err := toSpans(ret)
		if err != nil {
			return syntax.Result{}, err
		}
		res := syntax.Result{Highlights: spans}
		if s, ok := warn.(lua.LString); ok {
			res.Warning = string(s)
		}
		return res, nil
	}

	spans, err := toSpans(tbl.RawGetString("highlights"))
	if err != nil {
		return syntax.Result{}, err
	}
	res := syntax.Result{Highlights: spans}
	if s, ok := tbl.RawGetString("warning").(lua.LString); ok {
		res.Warning = string(s)
	}
	if s, ok := tbl.RawGetString("error").(lua.LString); ok {
		res.Error = string(s)
	}
	return res, nil
}

func isResultTable(tbl *lua.LTable) bool {
	for _, key := range []string{"highlights", "warning", "error"} {
		if tbl.RawGetString(key) != lua.LNil {
			return true
		}
	}
	return false
}

// toSpans converts a span array into spans.
func toSpans(v lua.LValue) ([]syntax.Span, error) {
	if v == lua.LNil {
		return nil, nil
	}
	tbl, ok := v.(*lua.LTable)
	if !ok {
		return nil, fmt.Errorf("%w: spans must be a table, got %s", ErrBadSpan, v.Type())
	}

	n := tbl.Len()
	if n == 0 {
		return nil, nil
	}
	spans := make([]syntax.Span, 0, n)
	for i := 1; i <= n; i++ {
		entry, ok := tbl.RawGetInt(i).(*lua.LTable)
		if !ok {
			return nil, fmt.Errorf("%w: entry %d is not a table", ErrBadSpan, i)
		}
		start, ok1 := entry.RawGetString("start").(lua.LNumber)
		finish, ok2 := entry.RawGetString("end").(lua.LNumber)
		if !ok2 {
			finish, ok2 = entry.RawGetString("finish").(lua.LNumber)
		}
		scope, ok3 := entry.RawGetString("scope").(lua.LString)
		if !ok1 || !ok2 || !ok3 {
			return nil, fmt.Errorf("%w: entry %d needs start, end and scope", ErrBadSpan, i)
		}
		span := syntax.Span{
			Start: int(start) - 1,
			End:   int(finish),
			Scope: string(scope),
		}
		switch v := entry.RawGetString("conceal").(type) {
		case lua.LBool:
			span.Conceal = bool(v)
		case lua.LString:
			span.Conceal = true
			span.Replacement = string(v)
		}
		if r, ok := entry.RawGetString("replacement").(lua.LString); ok {
			span.Replacement = string(r)
		}
		spans = append(spans, span)
	}
	return spans, nil
}
