package generator

import (
	"github.com/dave/jennifer/jen"

	"github.com/csdlc/csdlc/ir"
)

// recordFields renders a complex/entity type's structural and navigation
// fields as jen struct fields: nullable properties become pointers,
// navigation properties become Nav[T] (collection navs become []Nav[T]).
// Base fields are already folded into fields/navs by the compiler (the IR
// fully flattens inheritance rather than embedding a base field), so
// there is no separate base-embedding step here.
func recordFields(fields []ir.Field, navs []ir.NavField, resolver qualifiedNameResolver) []jen.Code {
	var out []jen.Code
	for _, f := range fields {
		fieldStmt := jenStatementForType(f.Type, resolver)
		if f.Nullable {
			fieldStmt = jen.Op("*").Add(fieldStmt)
		}
		decl := jen.Id(TypeName(string(f.Name))).Add(fieldStmt).Tag(map[string]string{"json": string(f.Name)})
		out = append(out, withDocStatement(decl, TypeName(string(f.Name)), f.Doc))
	}
	for _, n := range navs {
		target := jenStatementForType(ir.Type{Named: n.Target}, resolver)
		inst := jen.Id("Nav").Index(target)
		if n.Collection {
			inst = jen.Index().Add(inst)
		}
		out = append(out, jen.Id(TypeName(string(n.Name))).Add(inst).Tag(map[string]string{"json": string(n.Name)}))
	}
	return out
}

// withDocStatement attaches a doc comment to a single struct-field
// statement using the same rule as withDoc, rendered as line comments
// immediately above the field.
func withDocStatement(stmt *jen.Statement, name string, d ir.Doc) jen.Code {
	lines := docLines(name, d)
	if len(lines) == 0 {
		return stmt
	}
	g := jen.Empty()
	for _, l := range lines {
		if l == "" {
			continue // blank paragraph separators collapse in field comments
		}
		g.Comment(l).Line()
	}
	return g.Add(stmt)
}

// recordDecl renders one complex/entity type as a top-level struct
// declaration, doc-commented per withDoc.
func recordDecl(f *jen.File, typeName string, doc ir.Doc, fields []ir.Field, navs []ir.NavField, resolver qualifiedNameResolver) {
	stmt := jen.Type().Id(typeName).Struct(recordFields(fields, navs, resolver)...)
	f.Add(withDoc(stmt, typeName, doc))
	f.Line()
}
