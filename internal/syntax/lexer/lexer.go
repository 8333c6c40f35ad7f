// Package lexer provides a highlight client backed by chroma's lexers. It
// covers the long tail of languages the built-in rule highlighters do not.
package lexer

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"

	"github.com/dshills/tuikit/internal/syntax"
)

// ctxCheckInterval is how many tokens are converted between context checks.
const ctxCheckInterval = 1024

// Client highlights content with chroma. It implements syntax.Client and
// is safe for concurrent use.
type Client struct {
	mu    sync.RWMutex
	cache map[string]chroma.Lexer
}

// New creates a chroma client.
func New() *Client {
	return &Client{cache: make(map[string]chroma.Lexer)}
}

// Supports reports whether chroma has a lexer for language.
func (c *Client) Supports(language string) bool {
	return c.lexer(language) != nil
}

// LanguageForPath returns the lowercased name of the lexer chroma picks for
// the file name, or "" if none matches.
func LanguageForPath(path string) string {
	l := lexers.Match(filepath.Base(path))
	if l == nil {
		return ""
	}
	return strings.ToLower(l.Config().Name)
}

func (c *Client) lexer(language string) chroma.Lexer {
	key := strings.ToLower(strings.TrimSpace(language))
	if key == "" {
		return nil
	}

	c.mu.RLock()
	l, ok := c.cache[key]
	c.mu.RUnlock()
	if ok {
		return l
	}

	l = lexers.Get(key)
	if l == nil {
		// Try with file extension
		l = lexers.Match("file." + key)
	}
	if l != nil {
		l = chroma.Coalesce(l)
	}

	c.mu.Lock()
	c.cache[key] = l
	c.mu.Unlock()
	return l
}

// Highlight tokenizes content and converts chroma tokens into spans.
// Whitespace and plain text produce no spans.
func (c *Client) Highlight(ctx context.Context, content, language string) (syntax.Result, error) {
	if content == "" {
		return syntax.Result{}, syntax.ErrEmptyContent
	}
	if language == "" {
		return syntax.Result{}, syntax.ErrNoLanguage
	}
	l := c.lexer(language)
	if l == nil {
		return syntax.Result{}, fmt.Errorf("%w: %q", syntax.ErrUnsupportedLanguage, language)
	}

	// Line endings are left alone so token offsets match content.
	it, err := l.Tokenise(&chroma.TokeniseOptions{State: "root"}, content)
	if err != nil {
		return syntax.Result{}, fmt.Errorf("tokenise %s: %w", language, err)
	}

	var spans []syntax.Span
	offset := 0
	n := 0
	for tok := it(); tok != chroma.EOF; tok = it() {
		if n%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return syntax.Result{}, err
			}
		}
		n++

		start := offset
		offset += len(tok.Value)
		scope := ScopeFor(tok.Type)
		if scope == "" || tok.Value == "" || start >= len(content) {
			continue
		}
		spans = append(spans, syntax.Span{
			Start: start,
			End:   min(offset, len(content)),
			Scope: scope,
		})
	}

	return syntax.Result{Highlights: spans}, nil
}

// ScopeFor maps a chroma token type to a dotted scope name. Plain text,
// whitespace and unknown types map to "".
func ScopeFor(t chroma.TokenType) string {
	if s, ok := exactScopes[t]; ok {
		return s
	}

	switch {
	case t.InSubCategory(chroma.LiteralString):
		return "string"
	case t.InSubCategory(chroma.LiteralNumber):
		return "number"
	case t.InCategory(chroma.Keyword):
		return "keyword"
	case t.InCategory(chroma.Comment):
		return "comment"
	case t.InCategory(chroma.Operator):
		return "operator"
	case t.InCategory(chroma.Punctuation):
		return "punctuation"
	case t.InCategory(chroma.Generic):
		return "markup"
	case t.InCategory(chroma.Literal):
		return "constant"
	}
	return ""
}

var exactScopes = map[chroma.TokenType]string{
	chroma.Error: "invalid",

	chroma.Keyword:            "keyword",
	chroma.KeywordConstant:    "constant.language",
	chroma.KeywordDeclaration: "keyword.declaration",
	chroma.KeywordNamespace:   "keyword.other",
	chroma.KeywordPseudo:      "keyword.other",
	chroma.KeywordReserved:    "keyword.control",
	chroma.KeywordType:        "type.builtin",

	chroma.NameBuiltin:       "function.builtin",
	chroma.NameBuiltinPseudo: "variable",
	chroma.NameClass:         "type",
	chroma.NameConstant:      "constant",
	chroma.NameDecorator:     "meta",
	chroma.NameException:     "type",
	chroma.NameFunction:      "function",
	chroma.NameFunctionMagic: "function.builtin",
	chroma.NameAttribute:     "variable.property",
	chroma.NameProperty:      "variable.property",
	chroma.NameTag:           "keyword",
	chroma.NameVariable:      "variable",
	chroma.NameOther:         "variable",
	chroma.NameLabel:         "constant",

	chroma.LiteralStringEscape: "string.escape",
	chroma.LiteralStringRegex:  "string.regexp",
	chroma.LiteralStringDoc:    "comment.block",

	chroma.CommentSingle:    "comment.line",
	chroma.CommentMultiline: "comment.block",
	chroma.CommentPreproc:   "meta",

	chroma.OperatorWord: "keyword.other",

	chroma.GenericHeading:    "markup.heading",
	chroma.GenericSubheading: "markup.heading",
	chroma.GenericStrong:     "markup.bold",
	chroma.GenericEmph:       "markup.italic",
	chroma.GenericDeleted:    "markup.strike",
	chroma.GenericInserted:   "markup.list",
}
