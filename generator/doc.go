package generator

import (
	"github.com/dave/jennifer/jen"

	"github.com/csdlc/csdlc/ir"
)

// withDoc prepends name/d's doc comment (see docLines) to stmt, one
// jen.Comment per line so blank lines render as empty comment-free lines
// between paragraphs, matching how gofmt lays out multi-paragraph doc
// comments.
func withDoc(stmt *jen.Statement, name string, d ir.Doc) *jen.Statement {
	lines := docLines(name, d)
	if len(lines) == 0 {
		return stmt
	}
	out := jen.Empty()
	for _, l := range lines {
		if l == "" {
			out.Line()
			continue
		}
		out.Comment(l).Line()
	}
	return out.Add(stmt)
}

// docLines renders a Doc to the comment lines that should precede a
// declaration named name, per spec.md §4.6: description alone is one
// line; long-description alone is the name followed by a blank line and
// the long description; both present is description, a blank line, then
// the long description.
func docLines(name string, d ir.Doc) []string {
	switch {
	case d.Description == "" && d.LongDescription == "":
		return nil
	case d.LongDescription == "" :
		return []string{d.Description}
	case d.Description == "":
		return []string{name, "", d.LongDescription}
	default:
		return []string{d.Description, "", d.LongDescription}
	}
}
