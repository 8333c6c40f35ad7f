package highlight

import (
	"context"
	"fmt"
	"strings"

	"github.com/dshills/tuikit/internal/syntax"
)

// ctxCheckInterval is how many lines are tokenized between checks of the
// caller's context.
const ctxCheckInterval = 256

// Client highlights whole documents in-process using the registry's
// line highlighters. It implements syntax.Client.
type Client struct {
	registry *Registry

	// KeepIdentifiers emits spans for plain identifiers. Off by default
	// since themes rarely style them.
	KeepIdentifiers bool
}

// NewClient creates a client over registry. A nil registry uses
// DefaultRegistry.
func NewClient(registry *Registry) *Client {
	if registry == nil {
		registry = DefaultRegistry()
	}
	return &Client{registry: registry}
}

// Highlight tokenizes content line by line, carrying lexer state across
// lines, and returns spans addressed by byte offset into content.
func (c *Client) Highlight(ctx context.Context, content, language string) (syntax.Result, error) {
	if content == "" {
		return syntax.Result{}, syntax.ErrEmptyContent
	}
	if language == "" {
		return syntax.Result{}, syntax.ErrNoLanguage
	}
	h, ok := c.registry.GetByLanguage(language)
	if !ok {
		return syntax.Result{}, fmt.Errorf("%w: %q", syntax.ErrUnsupportedLanguage, language)
	}

	var spans []syntax.Span
	state := LexerStateNormal
	offset := 0
	for n := 0; offset <= len(content); n++ {
		if n%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return syntax.Result{}, err
			}
		}

		end := strings.IndexByte(content[offset:], '\n')
		next := 0
		if end < 0 {
			end = len(content)
			next = end + 1
		} else {
			end += offset
			next = end + 1
		}
		line := strings.TrimSuffix(content[offset:end], "\r")

		var tokens []Token
		tokens, state = h.HighlightLine(line, state)
		for _, tok := range tokens {
			if !c.emit(tok) {
				continue
			}
			spans = append(spans, syntax.Span{
				Start:   offset + tok.Start,
				End:     offset + tok.End,
				Scope:   tok.Type.Scope(),
				Conceal: tok.Conceal,
			})
		}
		offset = next
	}

	return syntax.Result{Highlights: spans}, nil
}

func (c *Client) emit(tok Token) bool {
	if tok.Len() <= 0 || tok.Type == TokenNone {
		return false
	}
	if tok.Type == TokenIdentifier && !c.KeepIdentifiers {
		return false
	}
	return true
}
