package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dshills/tuikit/internal/codeview"
	"github.com/dshills/tuikit/internal/syntax"
)

// DumpOptions configures Dump.
type DumpOptions struct {
	// Name identifies the content in errors.
	Name     string
	Language string
	Conceal  bool
	Logger   *Logger
}

// Dump highlights content once and writes the presented text followed by
// a listing of its spans, one "start-end scope" line each. On a highlight
// failure nothing is written and an *OperationError is returned.
func Dump(ctx context.Context, w io.Writer, client syntax.Client, content string, opts DumpOptions) error {
	exec := codeview.NewManualExecutor()
	log := opts.Logger
	if log == nil {
		log = NullLogger
	}
	ctrl := codeview.New(client,
		codeview.WithContent(content),
		codeview.WithLanguage(opts.Language),
		codeview.WithConceal(opts.Conceal),
		codeview.WithExecutor(exec),
		codeview.WithContext(ctx),
		codeview.WithLogger(log.WithComponent("dump")),
	)
	defer ctrl.Destroy()

	exec.Flush()
	for ctrl.IsHighlighting() {
		if _, err := exec.Await(ctx); err != nil {
			return NewOperationError("highlight", opts.Name, err)
		}
	}

	p := ctrl.Presentation()
	if p.Kind == codeview.PresentUnstyled && p.Diagnostic != "" {
		return NewOperationError("highlight", opts.Name, errors.New(p.Diagnostic))
	}
	return writeDump(w, p)
}

func writeDump(w io.Writer, p codeview.Presentation) error {
	bw := bufio.NewWriter(w)
	bw.WriteString(p.Text)
	if p.Text != "" && !strings.HasSuffix(p.Text, "\n") {
		bw.WriteByte('\n')
	}
	if p.Diagnostic != "" {
		fmt.Fprintf(bw, "--- warning: %s\n", p.Diagnostic)
	}
	if p.Kind == codeview.PresentStyled {
		fmt.Fprintf(bw, "--- %d spans\n", len(p.Spans))
		for _, span := range p.Spans {
			fmt.Fprintf(bw, "%d-%d %s\n", span.Start, span.End, span.Scope)
		}
	}
	return bw.Flush()
}
