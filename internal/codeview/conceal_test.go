package codeview

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/dshills/tuikit/internal/syntax"
)

func TestConceal(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		spans     []syntax.Span
		wantText  string
		wantSpans []syntax.Span
	}{
		{
			name:      "no concealable spans",
			text:      "plain",
			spans:     []syntax.Span{{Start: 0, End: 5, Scope: "text"}},
			wantText:  "plain",
			wantSpans: []syntax.Span{{Start: 0, End: 5, Scope: "text"}},
		},
		{
			name: "inline code",
			text: "a `b` c",
			spans: []syntax.Span{
				{Start: 2, End: 3, Scope: "punctuation", Conceal: true},
				{Start: 3, End: 4, Scope: "markup.raw"},
				{Start: 4, End: 5, Scope: "punctuation", Conceal: true},
				{Start: 6, End: 7, Scope: "text"},
			},
			wantText: "a b c",
			wantSpans: []syntax.Span{
				{Start: 2, End: 3, Scope: "markup.raw"},
				{Start: 4, End: 5, Scope: "text"},
			},
		},
		{
			name: "replacement keeps scope",
			text: "[link](http://x)",
			spans: []syntax.Span{
				{Start: 0, End: 1, Scope: "punctuation", Conceal: true},
				{Start: 1, End: 5, Scope: "markup.link"},
				{Start: 5, End: 16, Scope: "markup.url", Conceal: true, Replacement: "↗"},
			},
			wantText: "link↗",
			wantSpans: []syntax.Span{
				{Start: 0, End: 4, Scope: "markup.link"},
				{Start: 4, End: 4 + len("↗"), Scope: "markup.url"},
			},
		},
		{
			name: "span crossing region is truncated",
			text: "**ab**",
			spans: []syntax.Span{
				{Start: 0, End: 6, Scope: "markup.bold"},
				{Start: 0, End: 2, Scope: "punctuation", Conceal: true},
				{Start: 4, End: 6, Scope: "punctuation", Conceal: true},
			},
			wantText:  "ab",
			wantSpans: []syntax.Span{{Start: 0, End: 2, Scope: "markup.bold"}},
		},
		{
			name: "span inside region is dropped",
			text: "x<!-- c -->y",
			spans: []syntax.Span{
				{Start: 1, End: 11, Scope: "comment", Conceal: true},
				{Start: 6, End: 7, Scope: "comment.body"},
				{Start: 11, End: 12, Scope: "text"},
			},
			wantText:  "xy",
			wantSpans: []syntax.Span{{Start: 1, End: 2, Scope: "text"}},
		},
		{
			name: "overlapping regions keep the first",
			text: "abcdef",
			spans: []syntax.Span{
				{Start: 1, End: 4, Conceal: true},
				{Start: 2, End: 5, Conceal: true},
			},
			wantText:  "aef",
			wantSpans: nil,
		},
		{
			name: "out of range region leaves input alone",
			text: "abc",
			spans: []syntax.Span{
				{Start: 5, End: 9, Conceal: true},
				{Start: 0, End: 3, Scope: "text"},
			},
			wantText: "abc",
			wantSpans: []syntax.Span{
				{Start: 5, End: 9, Conceal: true},
				{Start: 0, End: 3, Scope: "text"},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotText, gotSpans := Conceal(tt.text, tt.spans)
			if gotText != tt.wantText {
				t.Errorf("text = %q, want %q", gotText, tt.wantText)
			}
			if diff := cmp.Diff(tt.wantSpans, gotSpans, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("spans mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestConcealDoesNotModifyInput(t *testing.T) {
	spans := []syntax.Span{
		{Start: 0, End: 1, Conceal: true},
		{Start: 1, End: 3, Scope: "text"},
	}
	orig := append([]syntax.Span(nil), spans...)
	Conceal("*ab", spans)
	if diff := cmp.Diff(orig, spans); diff != "" {
		t.Errorf("input modified (-orig +now):\n%s", diff)
	}
}
