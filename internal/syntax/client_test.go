package syntax

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestResultOutcome(t *testing.T) {
	spans := []Span{{Start: 0, End: 5, Scope: "keyword"}}

	t.Run("plain success", func(t *testing.T) {
		out := Result{Highlights: spans}.Outcome()
		if out.Kind() != KindSuccess {
			t.Fatalf("Kind() = %v, want success", out.Kind())
		}
		if diff := cmp.Diff(spans, out.Spans()); diff != "" {
			t.Errorf("Spans() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("warning keeps spans", func(t *testing.T) {
		out := Result{Highlights: spans, Warning: "partial parse"}.Outcome()
		if out.Kind() != KindWarning {
			t.Fatalf("Kind() = %v, want warning", out.Kind())
		}
		if out.Message() != "partial parse" {
			t.Errorf("Message() = %q, want %q", out.Message(), "partial parse")
		}
		if len(out.Spans()) != 1 {
			t.Errorf("len(Spans()) = %d, want 1", len(out.Spans()))
		}
	})

	t.Run("reported error settles with no spans", func(t *testing.T) {
		out := Result{Highlights: spans, Error: "grammar missing"}.Outcome()
		if !out.Succeeded() {
			t.Fatalf("reported error should still be a settled highlight, got %v", out)
		}
		if len(out.Spans()) != 0 {
			t.Errorf("len(Spans()) = %d, want 0", len(out.Spans()))
		}
		if out.Message() != "grammar missing" {
			t.Errorf("Message() = %q", out.Message())
		}
	})
}

func TestRun(t *testing.T) {
	ctx := context.Background()

	t.Run("rejection becomes failure", func(t *testing.T) {
		c := ClientFunc(func(context.Context, string, string) (Result, error) {
			return Result{}, errors.New("parser crashed")
		})
		out := Run(ctx, c, "x", "go")
		if out.Kind() != KindFailure || out.Message() != "parser crashed" {
			t.Errorf("Run() = %v, want failure(parser crashed)", out)
		}
	})

	t.Run("panic becomes failure", func(t *testing.T) {
		c := ClientFunc(func(context.Context, string, string) (Result, error) {
			panic("boom")
		})
		out := Run(ctx, c, "x", "go")
		if out.Kind() != KindFailure {
			t.Fatalf("Run() = %v, want failure", out)
		}
		if !strings.Contains(out.Message(), "boom") {
			t.Errorf("Message() = %q, should mention panic value", out.Message())
		}
	})

	t.Run("passes arguments", func(t *testing.T) {
		var gotContent, gotLang string
		c := ClientFunc(func(_ context.Context, content, language string) (Result, error) {
			gotContent, gotLang = content, language
			return Result{}, nil
		})
		Run(ctx, c, "const x=1", "javascript")
		if gotContent != "const x=1" || gotLang != "javascript" {
			t.Errorf("client got (%q, %q)", gotContent, gotLang)
		}
	})
}

func TestWithTimeout(t *testing.T) {
	t.Run("zero limit returns same client", func(t *testing.T) {
		c := ClientFunc(func(context.Context, string, string) (Result, error) { return Result{}, nil })
		if _, ok := WithTimeout(c, 0).(ClientFunc); !ok {
			t.Error("WithTimeout(c, 0) should return c unchanged")
		}
	})

	t.Run("slow call rejected", func(t *testing.T) {
		release := make(chan struct{})
		defer close(release)
		c := ClientFunc(func(ctx context.Context, _, _ string) (Result, error) {
			select {
			case <-release:
			case <-ctx.Done():
			}
			return Result{}, nil
		})
		_, err := WithTimeout(c, 10*time.Millisecond).Highlight(context.Background(), "x", "go")
		if !errors.Is(err, ErrTimeout) {
			t.Errorf("err = %v, want ErrTimeout", err)
		}
	})

	t.Run("fast call passes through", func(t *testing.T) {
		c := ClientFunc(func(context.Context, string, string) (Result, error) {
			return Result{Highlights: []Span{{Start: 0, End: 1, Scope: "a"}}}, nil
		})
		res, err := WithTimeout(c, time.Second).Highlight(context.Background(), "x", "go")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(res.Highlights) != 1 {
			t.Errorf("len(Highlights) = %d, want 1", len(res.Highlights))
		}
	})
}
