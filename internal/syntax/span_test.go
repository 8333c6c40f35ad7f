package syntax

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		name   string
		spans  []Span
		length int
		want   []Span
	}{
		{
			name:   "inside range untouched",
			spans:  []Span{{Start: 0, End: 5, Scope: "keyword"}, {Start: 6, End: 7, Scope: "variable"}},
			length: 10,
			want:   []Span{{Start: 0, End: 5, Scope: "keyword"}, {Start: 6, End: 7, Scope: "variable"}},
		},
		{
			name:   "fully outside dropped",
			spans:  []Span{{Start: 0, End: 2, Scope: "a"}, {Start: 4, End: 8, Scope: "b"}},
			length: 3,
			want:   []Span{{Start: 0, End: 2, Scope: "a"}},
		},
		{
			name:   "partial overlap truncated",
			spans:  []Span{{Start: 1, End: 9, Scope: "string"}},
			length: 4,
			want:   []Span{{Start: 1, End: 4, Scope: "string"}},
		},
		{
			name:   "negative start truncated",
			spans:  []Span{{Start: -3, End: 2, Scope: "comment"}},
			length: 4,
			want:   []Span{{Start: 0, End: 2, Scope: "comment"}},
		},
		{
			name:   "span starting at length dropped",
			spans:  []Span{{Start: 4, End: 6, Scope: "x"}},
			length: 4,
			want:   []Span{},
		},
		{
			name:   "empty spans dropped",
			spans:  []Span{{Start: 2, End: 2, Scope: "x"}, {Start: 3, End: 1, Scope: "y"}},
			length: 4,
			want:   []Span{},
		},
		{
			name:   "zero length content",
			spans:  []Span{{Start: 0, End: 2, Scope: "x"}},
			length: 0,
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Clamp(tt.spans, tt.length)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Clamp() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestClampDoesNotModifyInput(t *testing.T) {
	spans := []Span{{Start: 0, End: 10, Scope: "string"}}
	_ = Clamp(spans, 3)
	if spans[0].End != 10 {
		t.Errorf("Clamp modified input: End = %d, want 10", spans[0].End)
	}
}

func TestSpanHelpers(t *testing.T) {
	s := Span{Start: 2, End: 5, Scope: "keyword"}
	if s.Len() != 3 {
		t.Errorf("Len() = %d, want 3", s.Len())
	}
	if s.Empty() {
		t.Error("Empty() = true, want false")
	}
	if !s.Contains(2) || !s.Contains(4) {
		t.Error("Contains should include start and last byte")
	}
	if s.Contains(5) {
		t.Error("Contains(5) should be false (end is exclusive)")
	}
	if (Span{Start: 4, End: 1}).Len() != 0 {
		t.Error("inverted span should have zero length")
	}
}

func TestSort(t *testing.T) {
	spans := []Span{
		{Start: 5, End: 6, Scope: "c"},
		{Start: 0, End: 4, Scope: "b"},
		{Start: 0, End: 2, Scope: "a"},
	}
	Sort(spans)
	want := []Span{
		{Start: 0, End: 2, Scope: "a"},
		{Start: 0, End: 4, Scope: "b"},
		{Start: 5, End: 6, Scope: "c"},
	}
	if diff := cmp.Diff(want, spans); diff != "" {
		t.Errorf("Sort() mismatch (-want +got):\n%s", diff)
	}
}
