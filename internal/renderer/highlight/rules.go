package highlight

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Highlighter tokenizes source one line at a time.
type Highlighter interface {
	// HighlightLine tokenizes a single line. prevState is the state at the
	// end of the previous line; the returned state is the state at the end
	// of this one.
	HighlightLine(line string, prevState LexerState) ([]Token, LexerState)

	// Language returns the language this highlighter supports.
	Language() string

	// Aliases returns other names the language is known by.
	Aliases() []string

	// FileExtensions returns the file extensions this highlighter handles.
	FileExtensions() []string
}

// Rule defines a highlighting rule.
type Rule struct {
	// Pattern is the regex pattern to match.
	Pattern *regexp.Regexp

	// TokenType is the type to assign to matches.
	TokenType TokenType

	// Submatch is the submatch index to use (0 for whole match).
	Submatch int

	// Conceal splits the match around submatch 1: the submatch gets
	// TokenType and the text before and after it becomes concealable
	// punctuation, such as the asterisks around bold text.
	Conceal bool
}

// multiLineRule defines a construct that may span lines, such as a block
// comment. Its state is its index in RuleHighlighter.multiLine plus one.
type multiLineRule struct {
	start     string
	end       string
	tokenType TokenType
}

// RuleHighlighter is a regex and keyword based highlighter.
type RuleHighlighter struct {
	language   string
	aliases    []string
	extensions []string
	rules      []Rule
	keywords   map[string]TokenType
	multiLine  []multiLineRule
}

// NewRuleHighlighter creates an empty highlighter for language.
func NewRuleHighlighter(language string, extensions ...string) *RuleHighlighter {
	return &RuleHighlighter{
		language:   language,
		extensions: extensions,
		keywords:   make(map[string]TokenType),
	}
}

// AddRule adds a highlighting rule. Rules are tried in the order added;
// earlier matches win.
func (h *RuleHighlighter) AddRule(pattern string, tokenType TokenType) *RuleHighlighter {
	h.rules = append(h.rules, Rule{Pattern: regexp.MustCompile(pattern), TokenType: tokenType})
	return h
}

// AddSubmatchRule adds a rule that highlights only the given submatch.
func (h *RuleHighlighter) AddSubmatchRule(pattern string, submatch int, tokenType TokenType) *RuleHighlighter {
	h.rules = append(h.rules, Rule{Pattern: regexp.MustCompile(pattern), TokenType: tokenType, Submatch: submatch})
	return h
}

// AddConcealRule adds a markup rule. Submatch 1 is the visible body; the
// rest of the match is concealable.
func (h *RuleHighlighter) AddConcealRule(pattern string, tokenType TokenType) *RuleHighlighter {
	h.rules = append(h.rules, Rule{Pattern: regexp.MustCompile(pattern), TokenType: tokenType, Conceal: true})
	return h
}

// AddKeywords adds keywords with a specific token type.
func (h *RuleHighlighter) AddKeywords(tokenType TokenType, keywords ...string) *RuleHighlighter {
	for _, kw := range keywords {
		h.keywords[kw] = tokenType
	}
	return h
}

// AddMultiLine adds a construct delimited by start and end that may span
// lines.
func (h *RuleHighlighter) AddMultiLine(start, end string, tokenType TokenType) *RuleHighlighter {
	h.multiLine = append(h.multiLine, multiLineRule{start: start, end: end, tokenType: tokenType})
	return h
}

// WithAliases sets alternative language names.
func (h *RuleHighlighter) WithAliases(aliases ...string) *RuleHighlighter {
	h.aliases = aliases
	return h
}

// Language returns the language name.
func (h *RuleHighlighter) Language() string {
	return h.language
}

// Aliases returns alternative language names.
func (h *RuleHighlighter) Aliases() []string {
	return h.aliases
}

// FileExtensions returns the supported file extensions.
func (h *RuleHighlighter) FileExtensions() []string {
	return h.extensions
}

// HighlightLine tokenizes a single line.
func (h *RuleHighlighter) HighlightLine(line string, prevState LexerState) ([]Token, LexerState) {
	if prevState == LexerStateNormal {
		return h.highlightNormal(line, 0)
	}

	rule, ok := h.ruleForState(prevState)
	if !ok {
		return h.highlightNormal(line, 0)
	}
	idx := strings.Index(line, rule.end)
	if idx < 0 {
		// Entire line is part of the construct.
		if line == "" {
			return nil, prevState
		}
		return []Token{{Type: rule.tokenType, Start: 0, End: len(line)}}, prevState
	}

	end := idx + len(rule.end)
	tokens := []Token{{Type: rule.tokenType, Start: 0, End: end}}
	rest, state := h.highlightNormal(line[end:], end)
	return append(tokens, rest...), state
}

func (h *RuleHighlighter) ruleForState(state LexerState) (multiLineRule, bool) {
	i := int(state) - 1
	if i < 0 || i >= len(h.multiLine) {
		return multiLineRule{}, false
	}
	return h.multiLine[i], true
}

// highlightNormal highlights a line in normal state. offset is added to
// every token position.
func (h *RuleHighlighter) highlightNormal(line string, offset int) ([]Token, LexerState) {
	var tokens []Token
	covered := make([]bool, len(line))
	state := LexerStateNormal

	// Rules first, in order; they claim their bytes.
	for _, rule := range h.rules {
		for _, match := range rule.Pattern.FindAllStringSubmatchIndex(line, -1) {
			start, end := match[0], match[1]
			if rule.Submatch > 0 && !rule.Conceal && len(match) > rule.Submatch*2+1 {
				start, end = match[rule.Submatch*2], match[rule.Submatch*2+1]
			}
			if start < 0 || end <= start || isCovered(covered, start, end) {
				continue
			}
			tokens = append(tokens, ruleTokens(rule, match)...)
			markCovered(covered, start, end)
		}
	}

	// Multi-line constructs that start on uncovered bytes. The earliest
	// opening wins; a construct left open sets the state.
	for pos := 0; pos < len(line); {
		i, r := h.nextOpening(line, pos, covered)
		if i < 0 {
			break
		}
		rule := h.multiLine[r]
		bodyStart := i + len(rule.start)
		if j := strings.Index(line[bodyStart:], rule.end); j >= 0 {
			end := bodyStart + j + len(rule.end)
			tokens = append(tokens, Token{Type: rule.tokenType, Start: i, End: end})
			markCovered(covered, i, end)
			pos = end
			continue
		}
		tokens = append(tokens, Token{Type: rule.tokenType, Start: i, End: len(line)})
		markCovered(covered, i, len(line))
		state = LexerState(r + 1)
		break
	}

	tokens = append(tokens, h.findIdentifiers(line, covered)...)
	// Drop rule tokens that a multi-line construct now overlaps.
	tokens = dropOverlaps(tokens)

	for i := range tokens {
		tokens[i].Start += offset
		tokens[i].End += offset
	}
	return tokens, state
}

// ruleTokens converts a match into tokens, splitting out concealable
// delimiters for conceal rules.
func ruleTokens(rule Rule, match []int) []Token {
	start, end := match[0], match[1]
	if !rule.Conceal || len(match) < 4 || match[2] < 0 {
		if rule.Submatch > 0 && len(match) > rule.Submatch*2+1 {
			start, end = match[rule.Submatch*2], match[rule.Submatch*2+1]
		}
		return []Token{{Type: rule.TokenType, Start: start, End: end}}
	}

	bodyStart, bodyEnd := match[2], match[3]
	var tokens []Token
	if bodyStart > start {
		tokens = append(tokens, Token{Type: TokenPunctuation, Start: start, End: bodyStart, Conceal: true})
	}
	if bodyEnd > bodyStart {
		tokens = append(tokens, Token{Type: rule.TokenType, Start: bodyStart, End: bodyEnd})
	}
	if end > bodyEnd {
		tokens = append(tokens, Token{Type: TokenPunctuation, Start: bodyEnd, End: end, Conceal: true})
	}
	return tokens
}

// nextOpening finds the earliest multi-line opening at or after pos that
// does not start inside a covered region. It returns the byte index and the
// rule index, or -1.
func (h *RuleHighlighter) nextOpening(line string, pos int, covered []bool) (int, int) {
	best, bestRule := -1, -1
	for r, rule := range h.multiLine {
		from := pos
		for from < len(line) {
			i := strings.Index(line[from:], rule.start)
			if i < 0 {
				break
			}
			i += from
			if !covered[i] {
				if best < 0 || i < best {
					best, bestRule = i, r
				}
				break
			}
			from = i + 1
		}
	}
	return best, bestRule
}

// findIdentifiers finds identifiers in the line and checks for keywords.
func (h *RuleHighlighter) findIdentifiers(line string, covered []bool) []Token {
	var tokens []Token

	for i := 0; i < len(line); {
		if covered[i] {
			i++
			continue
		}
		r, size := utf8.DecodeRuneInString(line[i:])
		if !unicode.IsLetter(r) && r != '_' {
			i += size
			continue
		}

		start := i
		for i < len(line) {
			r, size = utf8.DecodeRuneInString(line[i:])
			if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
				break
			}
			i += size
		}
		if isCovered(covered, start, i) {
			continue
		}

		word := line[start:i]
		tokenType, ok := h.keywords[word]
		if !ok {
			if len(h.keywords) == 0 {
				// Languages without keywords (markup, data) leave words plain.
				continue
			}
			tokenType = TokenIdentifier
		}
		tokens = append(tokens, Token{Type: tokenType, Start: start, End: i})
	}

	return tokens
}

// dropOverlaps sorts tokens and removes any token overlapping an earlier
// one.
func dropOverlaps(tokens []Token) []Token {
	sort.SliceStable(tokens, func(i, j int) bool {
		return tokens[i].Start < tokens[j].Start
	})
	out := tokens[:0]
	lastEnd := 0
	for _, t := range tokens {
		if t.Start < lastEnd {
			continue
		}
		out = append(out, t)
		lastEnd = t.End
	}
	return out
}

// isCovered checks if any byte of a range is already covered.
func isCovered(covered []bool, start, end int) bool {
	for i := max(start, 0); i < end && i < len(covered); i++ {
		if covered[i] {
			return true
		}
	}
	return false
}

// markCovered marks a range as covered.
func markCovered(covered []bool, start, end int) {
	for i := max(start, 0); i < end && i < len(covered); i++ {
		covered[i] = true
	}
}
