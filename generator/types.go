package generator

import (
	"github.com/dave/jennifer/jen"

	"github.com/csdlc/csdlc/ir"
)

// primitiveGoType maps an Edm primitive kind to its idiomatic Go type.
var primitiveGoType = map[ir.PrimitiveKind]string{
	ir.String:         "string",
	ir.Boolean:        "bool",
	ir.Int32:          "int32",
	ir.Int64:          "int64",
	ir.Double:         "float64",
	ir.Decimal:        "float64",
	ir.DateTimeOffset: "time.Time",
	ir.Duration:       "time.Duration",
	ir.Guid:           "string",
	ir.Binary:         "[]byte",
}

// qualifiedNameResolver answers where a named IR entry lives (its Go
// import path and type name), so jen.Qual can be used for cross-package
// references in the generated module tree.
type qualifiedNameResolver interface {
	ImportPath(namespace string) string
	TypeName(localName string) string
}

// jenStatementForType renders t as a jennifer type expression, resolving
// Named references through resolver for cross-package qualification.
func jenStatementForType(t ir.Type, resolver qualifiedNameResolver) *jen.Statement {
	if t.Collection != nil {
		return jen.Index().Add(jenStatementForType(*t.Collection, resolver))
	}
	if t.Primitive != nil {
		goType := primitiveGoType[*t.Primitive]
		if goType == "time.Time" {
			return jen.Qual("time", "Time")
		}
		if goType == "time.Duration" {
			return jen.Qual("time", "Duration")
		}
		return jen.Id(goType)
	}
	pkg := resolver.ImportPath(t.Named.Namespace.String())
	name := resolver.TypeName(string(t.Named.Name))
	return jen.Qual(pkg, name)
}
