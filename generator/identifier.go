package generator

import (
	"strings"
	"unicode"

	"github.com/go-openapi/inflect"
)

// goReservedWords are the Go keywords, which cannot be used as a Go
// identifier outright (predeclared identifiers are not listed). Go has no raw-identifier escape
// mechanism, so collisions are resolved with a trailing underscore
// (`type` -> `type_`, `Self` would become `Self_` in a language with
// raw idents; here every escape is the same underscore suffix).
var goReservedWords = map[string]bool{
	"break": true, "default": true, "func": true, "interface": true, "select": true,
	"case": true, "defer": true, "go": true, "map": true, "struct": true,
	"chan": true, "else": true, "goto": true, "package": true, "switch": true,
	"const": true, "fallthrough": true, "if": true, "range": true, "type": true,
	"continue": true, "for": true, "import": true, "return": true, "var": true,
}

// Escape appends an underscore if name collides with a Go keyword,
// mirroring the teacher's builderField escaping convention.
func Escape(name string) string {
	if goReservedWords[name] {
		return name + "_"
	}
	return name
}

// ToSnakeCase converts a camel/Pascal-case identifier to lower_snake_case
// using the acronym-aware boundary rule: a break is inserted before
// position i>0 when s[i] is uppercase and either s[i-1] is lowercase, or
// s[i-1] is uppercase and s[i+1] is lowercase with at least two lowercase
// letters following from i+1 (an acronym run ending and a new word
// beginning).
func ToSnakeCase(s string) string {
	r := []rune(s)
	var b strings.Builder
	for i, c := range r {
		if i > 0 && unicode.IsUpper(c) && shouldBreak(r, i) {
			b.WriteByte('_')
		}
		b.WriteRune(unicode.ToLower(c))
	}
	return b.String()
}

func shouldBreak(r []rune, i int) bool {
	if unicode.IsLower(r[i-1]) {
		return true
	}
	if !unicode.IsUpper(r[i-1]) {
		return false
	}
	if i+1 >= len(r) || !unicode.IsLower(r[i+1]) {
		return false
	}
	return countLowerFrom(r, i+1) >= 2
}

func countLowerFrom(r []rune, start int) int {
	n := 0
	for j := start; j < len(r) && unicode.IsLower(r[j]); j++ {
		n++
	}
	return n
}

// ToPascalCase converts a snake_case or already-Pascal identifier to
// UpperCamelCase, used for Go type names.
func ToPascalCase(s string) string {
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == '_' })
	var b strings.Builder
	for _, p := range parts {
		if p == "" {
			continue
		}
		r := []rune(p)
		b.WriteRune(unicode.ToUpper(r[0]))
		b.WriteString(string(r[1:]))
	}
	return b.String()
}

// FieldName produces an escaped lower-snake-case Go field identifier from
// a schema property name.
func FieldName(name string) string { return Escape(ToSnakeCase(name)) }

// TypeName produces an escaped UpperCamelCase Go type identifier from a
// schema declaration name.
func TypeName(name string) string { return Escape(ToPascalCase(ToSnakeCase(name))) }

// PackageName produces a lower-snake-case Go package identifier from a
// namespace segment, acronym-aware like every other identifier here.
func PackageName(segment string) string { return ToSnakeCase(segment) }

// Pluralize returns the English plural of word via go-openapi/inflect.
// The generator's own naming does not call it.
func Pluralize(word string) string { return inflect.Pluralize(word) }
