package ident

// RustReserved is agenterra's literal Rust reserved-word list, including
// the 2018-edition reserved-for-future-use keywords.
var RustReserved = wordSet(
	"as", "break", "const", "continue", "crate", "else", "enum", "extern",
	"false", "fn", "for", "if", "impl", "in", "let", "loop", "match",
	"mod", "move", "mut", "pub", "ref", "return", "self", "Self",
	"static", "struct", "super", "trait", "true", "type", "unsafe",
	"use", "where", "while", "async", "await", "dyn", "abstract",
	"become", "box", "do", "final", "macro", "override", "priv",
	"typeof", "unsized", "virtual", "yield", "try",
)

// PythonReserved is Python 3's keyword list, used by the Python context
// builder's field sanitization.
var PythonReserved = wordSet(
	"False", "None", "True", "and", "as", "assert", "async", "await",
	"break", "class", "continue", "def", "del", "elif", "else", "except",
	"finally", "for", "from", "global", "if", "import", "in", "is",
	"lambda", "nonlocal", "not", "or", "pass", "raise", "return", "try",
	"while", "with", "yield",
)

// TypeScriptReserved is the ECMAScript/TypeScript reserved-word list
// relevant to identifier sanitization.
var TypeScriptReserved = wordSet(
	"break", "case", "catch", "class", "const", "continue", "debugger",
	"default", "delete", "do", "else", "enum", "export", "extends",
	"false", "finally", "for", "function", "if", "import", "in",
	"instanceof", "new", "null", "return", "super", "switch", "this",
	"throw", "true", "try", "typeof", "var", "void", "while", "with",
	"as", "implements", "interface", "let", "package", "private",
	"protected", "public", "static", "yield", "any", "boolean",
	"constructor", "declare", "get", "module", "require", "number",
	"set", "string", "symbol", "type", "from", "of",
)

func wordSet(words ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}
