package compiler

import (
	"strings"

	"github.com/csdlc/csdlc/ast"
	"github.com/csdlc/csdlc/ir"
)

// extractDoc pulls the Description/LongDescription annotation values off
// a declaration's annotation list, matched by the term's local name
// (case-insensitively, independent of which vocabulary namespace declares
// it, since the bundle's actual term namespace is deployment-specific).
func extractDoc(anns []ast.Annotation) ir.Doc {
	var d ir.Doc
	for _, a := range anns {
		switch strings.ToLower(string(a.Term.Name)) {
		case "description":
			if a.Value.Kind == ast.AnnotationString {
				d.Description = a.Value.String
			}
		case "longdescription":
			if a.Value.Kind == ast.AnnotationString {
				d.LongDescription = a.Value.String
			}
		}
	}
	return d
}

// extractRedfishFlags pulls the boolean Redfish side-table attributes off
// a property's annotation list (is_required, is_required_on_create,
// is_excerpt_only, excerpt, excerpt_copy per spec.md §3).
func extractRedfishFlags(f *ir.Field, anns []ast.Annotation) {
	for _, a := range anns {
		if a.Value.Kind != ast.AnnotationBool {
			continue
		}
		switch strings.ToLower(string(a.Term.Name)) {
		case "required":
			f.Required = a.Value.Bool
		case "requiredoncreate":
			f.RequiredOnCreate = a.Value.Bool
		case "excerptonly":
			f.ExcerptOnly = a.Value.Bool
		case "excerpt":
			f.Excerpt = a.Value.Bool
		case "excerptcopy":
			f.ExcerptCopy = a.Value.Bool
		}
	}
}
