// Package ident implements the identifier-case transforms shared by
// every context builder: snake_case, PascalCase, camelCase, and
// reserved-keyword sanitization. The algorithms are a direct port of
// agenterra's string utilities, including the deliberate policy that a
// run of uppercase letters collapses to a single token
// (HTTPResponse -> httpresponse) rather than being re-split per word.
package ident

import "strings"

// ToSnakeCase converts camelCase, PascalCase, kebab-case, or
// space-separated input into snake_case. Runs of uppercase letters are
// treated as one token, not re-split at each letter.
func ToSnakeCase(s string) string {
	var b strings.Builder
	prevLower := false

	for i, ch := range s {
		switch {
		case isUpper(ch):
			if i > 0 && prevLower {
				b.WriteRune('_')
			}
			b.WriteRune(toLower(ch))
			prevLower = false
		case isAlnum(ch):
			b.WriteRune(ch)
			prevLower = isLower(ch)
		case ch == '-' || ch == '_' || ch == ' ':
			cur := b.String()
			if cur != "" && !strings.HasSuffix(cur, "_") {
				b.WriteRune('_')
			}
			prevLower = false
		}
	}

	// Collapse duplicate underscores and trim leading/trailing ones.
	var out strings.Builder
	prevUnderscore := false
	for _, ch := range b.String() {
		if ch == '_' {
			if !prevUnderscore && out.Len() > 0 {
				out.WriteRune(ch)
			}
			prevUnderscore = true
		} else {
			out.WriteRune(ch)
			prevUnderscore = false
		}
	}

	return strings.Trim(out.String(), "_")
}

// ToProperCase converts input to PascalCase via ToSnakeCase, then
// title-casing each underscore-separated token.
func ToProperCase(s string) string {
	snake := ToSnakeCase(s)
	var b strings.Builder
	for _, word := range strings.Split(snake, "_") {
		if word == "" {
			continue
		}
		r := []rune(word)
		r[0] = toUpper(r[0])
		b.WriteString(string(r))
	}
	return b.String()
}

// ToCamelCase converts input to camelCase: ToProperCase with the first
// rune lowered.
func ToCamelCase(s string) string {
	pascal := ToProperCase(s)
	if pascal == "" {
		return pascal
	}
	r := []rune(pascal)
	r[0] = toLower(r[0])
	return string(r)
}

// ToKebabCase converts input to kebab-case (snake_case with '_' -> '-'),
// used by the TypeScript context builder for package names.
func ToKebabCase(s string) string {
	return strings.ReplaceAll(ToSnakeCase(s), "_", "-")
}

// SanitizeFieldName snake-cases s and, if the result collides with one
// of the reserved words, appends an underscore. The reserved-word set
// is language-specific; callers pass the set for their target language
// (see RustReserved, PythonReserved, TypeScriptReserved).
func SanitizeFieldName(s string, reserved map[string]struct{}) string {
	snake := ToSnakeCase(s)
	if _, ok := reserved[snake]; ok {
		return snake + "_"
	}
	return snake
}

func isUpper(ch rune) bool { return ch >= 'A' && ch <= 'Z' }
func isLower(ch rune) bool { return ch >= 'a' && ch <= 'z' }
func isAlnum(ch rune) bool {
	return isUpper(ch) || isLower(ch) || (ch >= '0' && ch <= '9') || (ch > 127 && isLetterLike(ch))
}

// isLetterLike lets every non-ASCII rune through verbatim; unlike
// Rust's Unicode-aware char::is_alphanumeric it does not check whether
// the rune is a letter or digit, which avoids the unicode tables for a case
// this scaffolder's identifiers never actually need (project names are
// validated to [A-Za-z0-9_-] before reaching here).
func isLetterLike(ch rune) bool { return true }

func toLower(ch rune) rune {
	if isUpper(ch) {
		return ch - 'A' + 'a'
	}
	return ch
}

func toUpper(ch rune) rune {
	if isLower(ch) {
		return ch - 'a' + 'A'
	}
	return ch
}
