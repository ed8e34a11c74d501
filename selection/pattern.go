// Package selection implements the pattern-based entity-type filter
// described in spec.md §4.3: a dotted segment grammar with wildcard
// segments, plus restrictive/permissive filter semantics used to decide
// which entity types the compiler includes.
package selection

import (
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/csdlc/csdlc/ast"
)

// Pattern is a parsed selection pattern: a sequence of dotted segments,
// each either a literal identifier or the wildcard "*". The grammar admits
// a wildcard in any segment position.
type Pattern struct {
	Segments []*Segment `parser:"@@ ('.' @@)*"`
}

// Segment is one dot-separated component of a Pattern.
type Segment struct {
	Wildcard bool   `parser:"( @'*'"`
	Literal  string `parser:"| @Ident )"`
}

var patternLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
	{Name: "Star", Pattern: `\*`},
	{Name: "Dot", Pattern: `\.`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var patternParser = participle.MustBuild[Pattern](
	participle.Lexer(patternLexer),
	participle.Elide("Whitespace"),
	participle.UseLookahead(2),
)

// Parse compiles a dotted pattern string like "Org.Service.*" or
// "Org.Service.Widget" into a Pattern.
func Parse(s string) (*Pattern, error) {
	return patternParser.ParseString("", s)
}

// Match reports whether q satisfies the pattern: every literal segment
// must match the corresponding namespace/name segment exactly, a
// non-trailing wildcard matches exactly one segment, and a trailing
// wildcard matches any remaining depth (including zero).
func (p *Pattern) Match(q ast.QualifiedName) bool {
	full := append(append([]string{}, namespaceStrings(q.Namespace)...), string(q.Name))
	for i, seg := range p.Segments {
		if seg.Wildcard && i == len(p.Segments)-1 {
			return true // a trailing wildcard consumes everything remaining
		}
		if i >= len(full) || (!seg.Wildcard && full[i] != seg.Literal) {
			return false
		}
	}
	return len(p.Segments) == len(full)
}

func namespaceStrings(ns ast.Namespace) []string {
	parts := ns.Parts()
	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = string(p)
	}
	return out
}

// String renders the pattern back to its dotted form.
func (p *Pattern) String() string {
	segs := make([]string, len(p.Segments))
	for i, s := range p.Segments {
		if s.Wildcard {
			segs[i] = "*"
		} else {
			segs[i] = s.Literal
		}
	}
	return strings.Join(segs, ".")
}
