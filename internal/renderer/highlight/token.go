// Package highlight provides the built-in regex highlighters and the color
// themes that map highlight scopes to terminal styles.
package highlight

import "strings"

// TokenType represents the semantic type of a token.
type TokenType uint16

// Token types for syntax highlighting.
// These follow TextMate/VS Code scope naming conventions at a high level.
const (
	TokenNone TokenType = iota

	// Comments
	TokenComment
	TokenCommentLine
	TokenCommentBlock

	// Strings
	TokenString
	TokenStringEscape
	TokenStringRegexp

	// Numbers
	TokenNumber

	// Keywords
	TokenKeyword
	TokenKeywordControl     // if, else, for, return
	TokenKeywordDeclaration // var, let, const, func, type
	TokenKeywordOther       // package, import, export

	// Operators and punctuation
	TokenOperator
	TokenPunctuation

	// Identifiers
	TokenIdentifier
	TokenVariable
	TokenProperty
	TokenConstant
	TokenConstantLanguage // true, false, nil, null

	// Functions
	TokenFunction
	TokenFunctionBuiltin

	// Types
	TokenTypeName
	TokenTypeBuiltin

	// Markup (markdown)
	TokenMarkup
	TokenMarkupHeading
	TokenMarkupBold
	TokenMarkupItalic
	TokenMarkupStrike
	TokenMarkupCode
	TokenMarkupQuote
	TokenMarkupList
	TokenMarkupLink
	TokenMarkupURL

	TokenMeta // decorators, attributes, preprocessor
	TokenInvalid

	tokenTypeCount
)

// tokenScopes maps token types to their dotted scope names.
var tokenScopes = [tokenTypeCount]string{
	TokenNone: "",

	TokenComment:      "comment",
	TokenCommentLine:  "comment.line",
	TokenCommentBlock: "comment.block",

	TokenString:       "string",
	TokenStringEscape: "string.escape",
	TokenStringRegexp: "string.regexp",

	TokenNumber: "number",

	TokenKeyword:            "keyword",
	TokenKeywordControl:     "keyword.control",
	TokenKeywordDeclaration: "keyword.declaration",
	TokenKeywordOther:       "keyword.other",

	TokenOperator:    "operator",
	TokenPunctuation: "punctuation",

	TokenIdentifier:       "identifier",
	TokenVariable:         "variable",
	TokenProperty:         "variable.property",
	TokenConstant:         "constant",
	TokenConstantLanguage: "constant.language",

	TokenFunction:        "function",
	TokenFunctionBuiltin: "function.builtin",

	TokenTypeName:    "type",
	TokenTypeBuiltin: "type.builtin",

	TokenMarkup:        "markup",
	TokenMarkupHeading: "markup.heading",
	TokenMarkupBold:    "markup.bold",
	TokenMarkupItalic:  "markup.italic",
	TokenMarkupStrike:  "markup.strike",
	TokenMarkupCode:    "markup.code",
	TokenMarkupQuote:   "markup.quote",
	TokenMarkupList:    "markup.list",
	TokenMarkupLink:    "markup.link",
	TokenMarkupURL:     "markup.url",

	TokenMeta:    "meta",
	TokenInvalid: "invalid",
}

// scopeToToken maps scope strings to token types.
var scopeToToken = func() map[string]TokenType {
	m := make(map[string]TokenType, len(tokenScopes))
	for i, name := range tokenScopes {
		if name != "" {
			m[name] = TokenType(i)
		}
	}
	return m
}()

// Scope returns the dotted scope name for this token type.
func (t TokenType) Scope() string {
	if t < tokenTypeCount {
		return tokenScopes[t]
	}
	return ""
}

// String returns the scope name, or "none".
func (t TokenType) String() string {
	if s := t.Scope(); s != "" {
		return s
	}
	return "none"
}

// IsComment returns true if this is a comment token.
func (t TokenType) IsComment() bool {
	return t >= TokenComment && t <= TokenCommentBlock
}

// IsMarkup returns true if this is a markup token.
func (t TokenType) IsMarkup() bool {
	return t >= TokenMarkup && t <= TokenMarkupURL
}

// TokenTypeFromScope converts a scope string to a TokenType. Unknown
// scopes fall back to their nearest known parent, so "keyword.control.go"
// resolves to TokenKeywordControl.
func TokenTypeFromScope(scope string) TokenType {
	for scope != "" {
		if t, ok := scopeToToken[scope]; ok {
			return t
		}
		i := strings.LastIndexByte(scope, '.')
		if i < 0 {
			break
		}
		scope = scope[:i]
	}
	return TokenNone
}

// Token represents a highlighted token within one line.
type Token struct {
	// Type is the semantic type of the token.
	Type TokenType

	// Start and End are byte offsets within the line, End exclusive.
	Start, End int

	// Conceal marks markup delimiters that may be hidden.
	Conceal bool
}

// Len returns the length of the token in bytes.
func (t Token) Len() int {
	return t.End - t.Start
}

// LexerState carries multi-line constructs from one line to the next.
// Zero is the normal state; other values index the highlighter's
// multi-line rules.
type LexerState uint32

// LexerStateNormal is the state outside any multi-line construct.
const LexerStateNormal LexerState = 0
