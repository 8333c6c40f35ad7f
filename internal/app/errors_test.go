package app

import (
	"errors"
	"io/fs"
	"strings"
	"testing"
)

func TestOperationError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *OperationError
		expected string
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: "",
		},
		{
			name:     "op only",
			err:      &OperationError{Op: "highlight"},
			expected: "highlight",
		},
		{
			name:     "op and target",
			err:      &OperationError{Op: "read", Target: "main.go"},
			expected: "read main.go",
		},
		{
			name:     "op, target and context",
			err:      &OperationError{Op: "read", Target: "main.go", Context: "reload"},
			expected: "read main.go (reload)",
		},
		{
			name:     "full error chain",
			err:      &OperationError{Op: "read", Target: "main.go", Context: "reload", Err: errors.New("io error")},
			expected: "read main.go (reload): io error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestOperationError_Unwrap(t *testing.T) {
	err := NewOperationError("read", "missing.go", fs.ErrNotExist).WithContext("startup")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Error("expected errors.Is to find fs.ErrNotExist")
	}
	var opErr *OperationError
	if !errors.As(error(err), &opErr) || opErr.Context != "startup" {
		t.Errorf("errors.As = %+v", opErr)
	}

	var nilErr *OperationError
	if nilErr.WithContext("x") != nil || nilErr.Unwrap() != nil {
		t.Error("nil receiver should stay nil")
	}
}

func TestComponentError_Error(t *testing.T) {
	inner := errors.New("boom")
	tests := []struct {
		name     string
		err      *ComponentError
		expected string
	}{
		{"component only", &ComponentError{Component: "theme"}, "theme"},
		{"with action", &ComponentError{Component: "theme", Action: "resolve"}, "theme: resolve"},
		{"with error", &ComponentError{Component: "theme", Err: inner}, "theme: boom"},
		{"full", NewComponentError("highlighter", "spawn", inner), "highlighter: spawn: boom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}

	if !errors.Is(NewComponentError("x", "y", inner), inner) {
		t.Error("expected ComponentError to unwrap")
	}
}

func TestRecoveredPanicError(t *testing.T) {
	err := &RecoveredPanicError{Value: "bad", Stack: "goroutine 1"}
	if got := err.Error(); got != "panic: bad\ngoroutine 1" {
		t.Errorf("Error() = %q", got)
	}
	if got := (&RecoveredPanicError{Value: 3}).Error(); got != "panic: 3" {
		t.Errorf("Error() = %q", got)
	}
}

func TestErrorList(t *testing.T) {
	var el ErrorList
	if el.AsError() != nil {
		t.Error("empty list should be nil")
	}

	first := errors.New("first")
	el.Add(nil)
	el.Add(first)
	if el.Len() != 1 || el.Error() != "first" {
		t.Errorf("after one add: len=%d err=%q", el.Len(), el.Error())
	}

	el.Add(fs.ErrClosed)
	err := el.AsError()
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.HasPrefix(err.Error(), "2 errors: first: first") {
		t.Errorf("Error() = %q", err.Error())
	}
	if !errors.Is(err, fs.ErrClosed) || !errors.Is(err, first) {
		t.Error("expected errors.Is to see every collected error")
	}
}

func TestSentinelErrors(t *testing.T) {
	sentinels := []error{ErrQuit, ErrAlreadyRunning, ErrNotRunning, ErrNoBackend}
	for i, err1 := range sentinels {
		for j, err2 := range sentinels {
			if i != j && errors.Is(err1, err2) {
				t.Errorf("sentinel errors %d and %d should be distinct", i, j)
			}
		}
	}
}
