package highlight

// GoHighlighter returns a highlighter for Go.
func GoHighlighter() *RuleHighlighter {
	h := NewRuleHighlighter("go", ".go").WithAliases("golang")

	// Multi-line constructs
	h.AddMultiLine("/*", "*/", TokenCommentBlock)
	h.AddMultiLine("`", "`", TokenString)

	// Single-line patterns
	h.AddRule(`//.*$`, TokenCommentLine)
	h.AddRule(`"(?:[^"\\]|\\.)*"`, TokenString)
	h.AddRule(`'(?:[^'\\]|\\.)+'`, TokenString)
	h.AddRule(`\b0[xX][0-9a-fA-F_]+\b`, TokenNumber)
	h.AddRule(`\b0[oO][0-7_]+\b`, TokenNumber)
	h.AddRule(`\b0[bB][01_]+\b`, TokenNumber)
	h.AddRule(`\b\d[\d_]*\.?\d*(?:[eE][+-]?\d+)?i?\b`, TokenNumber)
	h.AddSubmatchRule(`\bfunc\s+(?:\([^)]*\)\s*)?([A-Za-z_]\w*)`, 1, TokenFunction)

	h.AddKeywords(TokenKeywordControl,
		"if", "else", "for", "range", "switch", "case", "default",
		"break", "continue", "return", "goto", "fallthrough", "select")
	h.AddKeywords(TokenKeywordDeclaration,
		"func", "var", "const", "type", "struct", "interface", "map", "chan")
	h.AddKeywords(TokenKeywordOther,
		"package", "import", "defer", "go")
	h.AddKeywords(TokenConstantLanguage,
		"true", "false", "nil", "iota")
	h.AddKeywords(TokenTypeBuiltin,
		"int", "int8", "int16", "int32", "int64",
		"uint", "uint8", "uint16", "uint32", "uint64", "uintptr",
		"float32", "float64", "complex64", "complex128",
		"bool", "byte", "rune", "string", "error", "any", "comparable")
	h.AddKeywords(TokenFunctionBuiltin,
		"make", "new", "len", "cap", "append", "copy", "delete",
		"close", "panic", "recover", "print", "println",
		"real", "imag", "complex", "min", "max", "clear")

	return h
}

// PythonHighlighter returns a highlighter for Python.
func PythonHighlighter() *RuleHighlighter {
	h := NewRuleHighlighter("python", ".py", ".pyw", ".pyi").WithAliases("py")

	h.AddMultiLine(`"""`, `"""`, TokenString)
	h.AddMultiLine(`'''`, `'''`, TokenString)

	h.AddRule(`#.*$`, TokenCommentLine)
	h.AddRule(`[rbfu]?"(?:[^"\\]|\\.)*"`, TokenString)
	h.AddRule(`[rbfu]?'(?:[^'\\]|\\.)*'`, TokenString)
	h.AddRule(`\b0[xX][0-9a-fA-F_]+\b`, TokenNumber)
	h.AddRule(`\b0[oO][0-7_]+\b`, TokenNumber)
	h.AddRule(`\b0[bB][01_]+\b`, TokenNumber)
	h.AddRule(`\b\d[\d_]*\.?\d*(?:[eE][+-]?\d+)?j?\b`, TokenNumber)
	h.AddRule(`@[\w.]+`, TokenMeta)
	h.AddSubmatchRule(`\bdef\s+([A-Za-z_]\w*)`, 1, TokenFunction)
	h.AddSubmatchRule(`\bclass\s+([A-Za-z_]\w*)`, 1, TokenTypeName)

	h.AddKeywords(TokenKeywordControl,
		"if", "elif", "else", "for", "while", "break", "continue",
		"return", "try", "except", "finally", "raise", "with", "as",
		"match", "case")
	h.AddKeywords(TokenKeywordDeclaration,
		"def", "class", "lambda", "async", "await")
	h.AddKeywords(TokenKeywordOther,
		"import", "from", "global", "nonlocal", "pass", "yield",
		"assert", "del", "in", "is", "not", "and", "or")
	h.AddKeywords(TokenConstantLanguage,
		"True", "False", "None")
	h.AddKeywords(TokenTypeBuiltin,
		"int", "float", "str", "bool", "list", "dict", "set", "tuple",
		"bytes", "bytearray", "complex", "frozenset", "type", "object")
	h.AddKeywords(TokenFunctionBuiltin,
		"print", "len", "range", "enumerate", "zip", "map", "filter",
		"open", "input", "isinstance", "issubclass", "hasattr", "getattr",
		"setattr", "delattr", "callable", "iter", "next", "sorted", "reversed",
		"sum", "min", "max", "abs", "round", "pow", "divmod", "all", "any",
		"format", "repr", "id", "hash", "dir", "vars", "super", "property",
		"staticmethod", "classmethod")

	return h
}

// JavaScriptHighlighter returns a highlighter for JavaScript and
// TypeScript.
func JavaScriptHighlighter() *RuleHighlighter {
	h := NewRuleHighlighter("javascript", ".js", ".jsx", ".mjs", ".cjs", ".ts", ".tsx").
		WithAliases("js", "jsx", "typescript", "ts", "tsx")

	h.AddMultiLine("/*", "*/", TokenCommentBlock)
	h.AddMultiLine("`", "`", TokenString)

	h.AddRule(`//.*$`, TokenCommentLine)
	h.AddRule(`"(?:[^"\\]|\\.)*"`, TokenString)
	h.AddRule(`'(?:[^'\\]|\\.)*'`, TokenString)
	h.AddRule(`\b0[xX][0-9a-fA-F_]+n?\b`, TokenNumber)
	h.AddRule(`\b0[oO][0-7_]+n?\b`, TokenNumber)
	h.AddRule(`\b0[bB][01_]+n?\b`, TokenNumber)
	h.AddRule(`\b\d[\d_]*\.?\d*(?:[eE][+-]?\d+)?n?\b`, TokenNumber)
	h.AddRule(`@\w+`, TokenMeta)
	h.AddSubmatchRule(`\bfunction\s*\*?\s*([A-Za-z_$][\w$]*)`, 1, TokenFunction)
	h.AddSubmatchRule(`\b(?:class|interface|enum)\s+([A-Za-z_$][\w$]*)`, 1, TokenTypeName)

	h.AddKeywords(TokenKeywordControl,
		"if", "else", "for", "while", "do", "switch", "case", "default",
		"break", "continue", "return", "throw", "try", "catch", "finally")
	h.AddKeywords(TokenKeywordDeclaration,
		"function", "var", "let", "const", "class", "extends", "implements",
		"async", "await", "type", "interface", "enum", "namespace", "module",
		"declare", "public", "private", "protected", "readonly", "abstract",
		"override")
	h.AddKeywords(TokenKeywordOther,
		"import", "export", "from", "as", "new", "delete",
		"typeof", "instanceof", "in", "of", "this", "super", "static",
		"get", "set", "yield", "debugger", "with", "keyof", "satisfies")
	h.AddKeywords(TokenConstantLanguage,
		"true", "false", "null", "undefined", "NaN", "Infinity")
	h.AddKeywords(TokenTypeBuiltin,
		"string", "number", "boolean", "bigint", "symbol", "object",
		"unknown", "never", "void", "any")

	return h
}

// RustHighlighter returns a highlighter for Rust.
func RustHighlighter() *RuleHighlighter {
	h := NewRuleHighlighter("rust", ".rs").WithAliases("rs")

	h.AddMultiLine("/*", "*/", TokenCommentBlock)

	h.AddRule(`//.*$`, TokenCommentLine)
	h.AddRule(`b?"(?:[^"\\]|\\.)*"`, TokenString)
	h.AddRule(`r#*"[^"]*"#*`, TokenString)
	h.AddRule(`'(?:[^'\\]|\\.)'`, TokenString)
	h.AddRule(`\b0[xX][0-9a-fA-F_]+\b`, TokenNumber)
	h.AddRule(`\b0[oO][0-7_]+\b`, TokenNumber)
	h.AddRule(`\b0[bB][01_]+\b`, TokenNumber)
	h.AddRule(`\b\d[\d_]*\.?[\d_]*(?:[eE][+-]?[\d_]+)?(?:f32|f64|i\d+|u\d+|isize|usize)?\b`, TokenNumber)
	h.AddRule(`#!?\[.*?\]`, TokenMeta)
	h.AddSubmatchRule(`\bfn\s+([A-Za-z_]\w*)`, 1, TokenFunction)
	h.AddRule(`\b[a-z_]\w*!`, TokenFunctionBuiltin)

	h.AddKeywords(TokenKeywordControl,
		"if", "else", "match", "for", "while", "loop", "break", "continue",
		"return", "yield")
	h.AddKeywords(TokenKeywordDeclaration,
		"fn", "let", "mut", "const", "static", "struct", "enum", "trait",
		"impl", "type", "mod")
	h.AddKeywords(TokenKeywordOther,
		"use", "crate", "super", "self", "Self", "pub", "where", "as",
		"async", "await", "dyn", "move", "ref", "unsafe", "extern", "in")
	h.AddKeywords(TokenConstantLanguage,
		"true", "false", "None", "Some", "Ok", "Err")
	h.AddKeywords(TokenTypeBuiltin,
		"i8", "i16", "i32", "i64", "i128", "isize",
		"u8", "u16", "u32", "u64", "u128", "usize",
		"f32", "f64", "bool", "char", "str", "String",
		"Vec", "Box", "Option", "Result")

	return h
}

// JSONHighlighter returns a highlighter for JSON.
func JSONHighlighter() *RuleHighlighter {
	h := NewRuleHighlighter("json", ".json", ".jsonc").WithAliases("jsonc")

	h.AddSubmatchRule(`("(?:[^"\\]|\\.)*")\s*:`, 1, TokenProperty)
	h.AddRule(`"(?:[^"\\]|\\.)*"`, TokenString)
	h.AddRule(`-?\b\d+(?:\.\d+)?(?:[eE][+-]?\d+)?\b`, TokenNumber)
	h.AddRule(`//.*$`, TokenCommentLine)

	h.AddKeywords(TokenConstantLanguage, "true", "false", "null")

	return h
}

// MarkdownHighlighter returns a highlighter for Markdown. Emphasis, code,
// strike and link delimiters are emitted as concealable tokens.
func MarkdownHighlighter() *RuleHighlighter {
	h := NewRuleHighlighter("markdown", ".md", ".markdown").WithAliases("md")

	h.AddMultiLine("```", "```", TokenMarkupCode)

	// Order matters: more specific first.
	h.AddRule(`^#{1,6}\s+.*$`, TokenMarkupHeading)
	h.AddRule(`^>\s?.*$`, TokenMarkupQuote)
	h.AddRule(`^\s*[-*+]\s+`, TokenMarkupList)
	h.AddRule(`^\s*\d+[.)]\s+`, TokenMarkupList)
	h.AddConcealRule("`([^`]+)`", TokenMarkupCode)
	h.AddConcealRule(`\*\*([^*]+)\*\*`, TokenMarkupBold)
	h.AddConcealRule(`__([^_]+)__`, TokenMarkupBold)
	h.AddConcealRule(`~~([^~]+)~~`, TokenMarkupStrike)
	h.AddConcealRule(`\*([^*\s][^*]*)\*`, TokenMarkupItalic)
	h.AddConcealRule(`\b_([^_]+)_\b`, TokenMarkupItalic)
	h.AddConcealRule(`\[([^\]]+)\]\([^)\s]+\)`, TokenMarkupLink)
	h.AddRule(`<https?://[^>\s]+>`, TokenMarkupURL)

	return h
}

// RegisterBuiltinHighlighters registers all built-in highlighters.
func RegisterBuiltinHighlighters(r *Registry) {
	r.Register(GoHighlighter())
	r.Register(PythonHighlighter())
	r.Register(JavaScriptHighlighter())
	r.Register(RustHighlighter())
	r.Register(JSONHighlighter())
	r.Register(MarkdownHighlighter())
}
