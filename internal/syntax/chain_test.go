package syntax

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestChain(t *testing.T) {
	unsupported := ClientFunc(func(_ context.Context, _, language string) (Result, error) {
		return Result{}, fmt.Errorf("%w: %s", ErrUnsupportedLanguage, language)
	})
	ok := ClientFunc(func(context.Context, string, string) (Result, error) {
		return Result{Highlights: []Span{{Start: 0, End: 1, Scope: "second"}}}, nil
	})
	broken := ClientFunc(func(context.Context, string, string) (Result, error) {
		return Result{}, errors.New("grammar exploded")
	})
	called := false
	never := ClientFunc(func(context.Context, string, string) (Result, error) {
		called = true
		return Result{}, nil
	})

	t.Run("falls through unsupported", func(t *testing.T) {
		res, err := Chain(unsupported, ok).Highlight(context.Background(), "x", "cobol")
		if err != nil {
			t.Fatalf("Highlight: %v", err)
		}
		if len(res.Highlights) != 1 || res.Highlights[0].Scope != "second" {
			t.Errorf("res = %+v", res)
		}
	})

	t.Run("failure is final", func(t *testing.T) {
		_, err := Chain(broken, never).Highlight(context.Background(), "x", "go")
		if err == nil || err.Error() != "grammar exploded" {
			t.Errorf("err = %v", err)
		}
		if called {
			t.Error("later clients should not run after a failure")
		}
	})

	t.Run("all unsupported", func(t *testing.T) {
		_, err := Chain(unsupported, unsupported).Highlight(context.Background(), "x", "cobol")
		if !errors.Is(err, ErrUnsupportedLanguage) {
			t.Errorf("err = %v", err)
		}
	})

	t.Run("empty chain", func(t *testing.T) {
		_, err := Chain().Highlight(context.Background(), "x", "go")
		if !errors.Is(err, ErrUnsupportedLanguage) {
			t.Errorf("err = %v", err)
		}
	})
}
