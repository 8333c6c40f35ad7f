package syntax

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Errors reported by highlight clients.
var (
	// ErrEmptyContent is returned when a client is asked to highlight nothing.
	ErrEmptyContent = errors.New("empty content")

	// ErrNoLanguage is returned when a client is called without a language.
	ErrNoLanguage = errors.New("no language")

	// ErrUnsupportedLanguage indicates the client has no grammar for the language.
	ErrUnsupportedLanguage = errors.New("unsupported language")

	// ErrTimeout indicates a call exceeded the deadline set by WithTimeout.
	ErrTimeout = errors.New("highlight timed out")

	// ErrClientPanic indicates the client panicked while highlighting.
	ErrClientPanic = errors.New("highlight client panicked")
)

// Result is the loosely shaped answer of a highlighter. Any combination of
// fields may be set; Outcome folds it into the tagged form.
type Result struct {
	Highlights []Span
	Warning    string
	Error      string
}

// Outcome converts the result into its tagged form.
//
// A result that reports an error is still a settled highlight: it becomes a
// warning outcome with no spans so the error text stays available as a
// diagnostic.
func (r Result) Outcome() Outcome {
	switch {
	case r.Error != "":
		return SuccessWithWarning(nil, r.Error)
	case r.Warning != "":
		return SuccessWithWarning(r.Highlights, r.Warning)
	default:
		return Success(r.Highlights)
	}
}

// Client is a highlighter service.
//
// Highlight may block for a long time, may fail, and may never return.
// Callers must not invoke it with empty content or an empty language.
type Client interface {
	Highlight(ctx context.Context, content, language string) (Result, error)
}

// ClientFunc adapts an ordinary function to the Client interface.
type ClientFunc func(ctx context.Context, content, language string) (Result, error)

// Highlight calls f(ctx, content, language).
func (f ClientFunc) Highlight(ctx context.Context, content, language string) (Result, error) {
	return f(ctx, content, language)
}

// Run calls the client and folds every way it can finish into an Outcome.
// Returned errors and panics become Failure outcomes.
func Run(ctx context.Context, c Client, content, language string) (out Outcome) {
	defer func() {
		if r := recover(); r != nil {
			out = Failure(fmt.Sprintf("%v: %v", ErrClientPanic, r))
		}
	}()

	res, err := c.Highlight(ctx, content, language)
	if err != nil {
		return Failure(err.Error())
	}
	return res.Outcome()
}

type timeoutClient struct {
	inner Client
	limit time.Duration
}

// WithTimeout wraps a client so that calls running longer than limit are
// rejected with ErrTimeout. The inner call keeps running in the background
// until it returns or its context is cancelled.
func WithTimeout(c Client, limit time.Duration) Client {
	if limit <= 0 {
		return c
	}
	return &timeoutClient{inner: c, limit: limit}
}

func (t *timeoutClient) Highlight(ctx context.Context, content, language string) (Result, error) {
	ctx, cancel := context.WithTimeout(ctx, t.limit)
	defer cancel()

	type reply struct {
		res Result
		err error
	}
	done := make(chan reply, 1)
	go func() {
		out := Run(ctx, t.inner, content, language)
		switch out.Kind() {
		case KindFailure:
			done <- reply{err: errors.New(out.Message())}
		default:
			done <- reply{res: Result{Highlights: out.Spans(), Warning: out.Message()}}
		}
	}()

	select {
	case r := <-done:
		return r.res, r.err
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return Result{}, fmt.Errorf("%w after %s", ErrTimeout, t.limit)
		}
		return Result{}, ctx.Err()
	}
}
