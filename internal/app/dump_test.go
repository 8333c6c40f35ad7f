package app

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/dshills/tuikit/internal/syntax"
)

func TestDump(t *testing.T) {
	tests := []struct {
		name    string
		client  syntax.Client
		content string
		opts    DumpOptions
		want    string
	}{
		{
			name:    "styled",
			client:  keywordClient,
			content: "package main\n",
			opts:    DumpOptions{Language: "go"},
			want:    "package main\n--- 1 spans\n0-7 keyword.other\n",
		},
		{
			name:    "concealed",
			client:  markdownClient,
			content: "**bold**",
			opts:    DumpOptions{Language: "markdown", Conceal: true},
			want:    "bold\n--- 1 spans\n0-4 markup.bold\n",
		},
		{
			name:    "revealed",
			client:  markdownClient,
			content: "**bold**",
			opts:    DumpOptions{Language: "markdown"},
			want:    "**bold**\n--- 3 spans\n0-2 punctuation\n2-6 markup.bold\n6-8 punctuation\n",
		},
		{
			name: "warning",
			client: syntax.ClientFunc(func(context.Context, string, string) (syntax.Result, error) {
				return syntax.Result{Warning: "partial parse"}, nil
			}),
			content: "x",
			opts:    DumpOptions{Language: "go"},
			want:    "x\n--- warning: partial parse\n--- 0 spans\n",
		},
		{
			name:    "no language",
			client:  keywordClient,
			content: "plain text",
			want:    "plain text\n",
		},
		{
			name:    "empty",
			client:  keywordClient,
			content: "",
			opts:    DumpOptions{Language: "go"},
			want:    "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := Dump(context.Background(), &buf, tt.client, tt.content, tt.opts); err != nil {
				t.Fatalf("Dump: %v", err)
			}
			if got := buf.String(); got != tt.want {
				t.Errorf("Dump output:\n%q\nwant:\n%q", got, tt.want)
			}
		})
	}
}

func TestDumpFailure(t *testing.T) {
	client := syntax.ClientFunc(func(context.Context, string, string) (syntax.Result, error) {
		return syntax.Result{}, errors.New("grammar missing")
	})

	var buf bytes.Buffer
	err := Dump(context.Background(), &buf, client, "x", DumpOptions{Name: "main.go", Language: "go"})
	var opErr *OperationError
	if !errors.As(err, &opErr) {
		t.Fatalf("err = %v, want OperationError", err)
	}
	if opErr.Op != "highlight" || opErr.Target != "main.go" || !strings.Contains(err.Error(), "grammar missing") {
		t.Errorf("err = %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("wrote %q on failure", buf.String())
	}
}

func TestDumpContextCancel(t *testing.T) {
	client := syntax.ClientFunc(func(ctx context.Context, _, _ string) (syntax.Result, error) {
		<-ctx.Done()
		return syntax.Result{}, ctx.Err()
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := Dump(ctx, &bytes.Buffer{}, client, "x", DumpOptions{Language: "go"})
	if err == nil {
		t.Fatal("expected error")
	}
}
