package codeview

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/dshills/tuikit/internal/syntax"
)

func TestPresent(t *testing.T) {
	spans := []syntax.Span{{Start: 0, End: 3, Scope: "keyword"}, {Start: 4, End: 9, Scope: "string"}}
	cached := &spanCache{}
	cached.store(1, "go", spans)

	tests := []struct {
		name  string
		state ContentState
		gen   uint64
		last  *applied
		cache *spanCache
		want  Presentation
	}{
		{
			name:  "empty content overrides everything",
			state: ContentState{Language: "go", Streaming: true},
			gen:   2,
			last:  &applied{generation: 2, outcome: syntax.Success(spans)},
			cache: cached,
			want:  Unstyled(""),
		},
		{
			name:  "no language",
			state: ContentState{Content: "var x"},
			gen:   1,
			last:  &applied{generation: 1, outcome: syntax.Success(spans)},
			want:  Unstyled("var x"),
		},
		{
			name:  "current success",
			state: ContentState{Content: "var x = 1", Language: "go"},
			gen:   3,
			last:  &applied{generation: 3, outcome: syntax.Success(spans)},
			want:  Styled("var x = 1", spans),
		},
		{
			name:  "success spans clamped",
			state: ContentState{Content: "var x", Language: "go"},
			gen:   3,
			last:  &applied{generation: 3, outcome: syntax.Success(spans)},
			want:  Styled("var x", []syntax.Span{{Start: 0, End: 3, Scope: "keyword"}, {Start: 4, End: 5, Scope: "string"}}),
		},
		{
			name:  "current failure ignores draw unstyled",
			state: ContentState{Content: "var x", Language: "go"},
			gen:   3,
			last:  &applied{generation: 3, outcome: syntax.Failure("boom")},
			want:  Presentation{Kind: PresentUnstyled, Text: "var x", Diagnostic: "boom"},
		},
		{
			name:  "old outcome ignored",
			state: ContentState{Content: "var x", Language: "go", DrawUnstyledBeforeReady: true},
			gen:   4,
			last:  &applied{generation: 3, outcome: syntax.Success(spans)},
			want:  Unstyled("var x"),
		},
		{
			name:  "interim blank",
			state: ContentState{Content: "var x", Language: "go"},
			gen:   4,
			want:  Blank(),
		},
		{
			name:  "interim from cache",
			state: ContentState{Content: "var", Language: "go", Streaming: true},
			gen:   4,
			cache: cached,
			want: Presentation{
				Kind:    PresentStyled,
				Text:    "var",
				Spans:   []syntax.Span{{Start: 0, End: 3, Scope: "keyword"}},
				Interim: true,
			},
		},
		{
			name:  "cache needs streaming",
			state: ContentState{Content: "var", Language: "go"},
			gen:   4,
			cache: cached,
			want:  Blank(),
		},
		{
			name:  "cache language mismatch",
			state: ContentState{Content: "var", Language: "rust", Streaming: true, DrawUnstyledBeforeReady: true},
			gen:   4,
			cache: cached,
			want:  Unstyled("var"),
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			cache := tt.cache
			if cache == nil {
				cache = &spanCache{}
			}
			got := present(tt.state, tt.gen, tt.last, cache)
			if diff := cmp.Diff(tt.want, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("present() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSpanCache(t *testing.T) {
	var c spanCache
	if _, ok := c.lookup("go", 10); ok {
		t.Error("lookup on empty cache succeeded")
	}
	if c.snapshot() != nil {
		t.Error("snapshot of empty cache is not nil")
	}

	spans := []syntax.Span{{Start: 0, End: 8, Scope: "comment"}}
	c.store(7, "go", spans)

	got, ok := c.lookup("go", 4)
	if !ok {
		t.Fatal("lookup failed")
	}
	if diff := cmp.Diff([]syntax.Span{{Start: 0, End: 4, Scope: "comment"}}, got); diff != "" {
		t.Errorf("lookup mismatch (-want +got):\n%s", diff)
	}
	if _, ok := c.lookup("c", 4); ok {
		t.Error("lookup with another language succeeded")
	}

	snap := c.snapshot()
	snap.Spans[0].Scope = "changed"
	if c.entry.Spans[0].Scope != "comment" {
		t.Error("snapshot shares spans with the cache")
	}

	c.clear()
	if _, ok := c.lookup("go", 4); ok {
		t.Error("lookup after clear succeeded")
	}
}

func TestPresentationString(t *testing.T) {
	tests := []struct {
		p    Presentation
		want string
	}{
		{Blank(), "Blank"},
		{Unstyled("a"), `Unstyled("a")`},
		{Styled("ab", []syntax.Span{{Start: 0, End: 1}}), `Styled("ab", 1 spans)`},
	}
	for _, tt := range tests {
		if got := tt.p.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
