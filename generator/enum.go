package generator

import (
	"github.com/dave/jennifer/jen"

	"github.com/csdlc/csdlc/ir"
)

// enumDecl renders an IR enum SimpleType as a tagged sum: a named integer
// type plus one constant per member, each carrying its on-the-wire name
// as a String() serialization hint (spec.md §4.6's "tagged sum ... each
// carrying the original on-the-wire name as a serialization hint").
func enumDecl(f *jen.File, typeName string, st *ir.SimpleType) {
	underlying := "int32"
	if st.Underlying == ir.Int64 {
		underlying = "int64"
	}

	stmt := jen.Type().Id(typeName).Id(underlying)
	f.Add(withDoc(stmt, typeName, st.Doc))
	f.Line()

	var constDefs []jen.Code
	for _, m := range st.Members {
		constDefs = append(constDefs, jen.Id(typeName+TypeName(string(m.Name))).Id(typeName).Op("=").Lit(int(m.Value)))
	}
	f.Const().Defs(constDefs...)
	f.Line()

	f.Comment("String renders the on-the-wire member name.")
	f.Func().Params(jen.Id("v").Id(typeName)).Id("String").Params().String().Block(
		jen.Switch(jen.Id("v")).Block(enumStringCases(typeName, st)...),
	)
	f.Line()
}

func enumStringCases(typeName string, st *ir.SimpleType) []jen.Code {
	var cases []jen.Code
	for _, m := range st.Members {
		cases = append(cases, jen.Case(jen.Id(typeName+TypeName(string(m.Name)))).Block(
			jen.Return(jen.Lit(string(m.Name))),
		))
	}
	cases = append(cases, jen.Default().Block(jen.Return(jen.Lit(""))))
	return cases
}

// typeDefDecl renders an IR type-definition SimpleType as a transparent
// wrapper over its underlying primitive, per spec.md §4.6.
func typeDefDecl(f *jen.File, typeName string, st *ir.SimpleType) {
	underlying := st.Underlying
	stmt := jen.Type().Id(typeName).Add(jenStatementForType(ir.Type{Primitive: &underlying}, nil))
	f.Add(withDoc(stmt, typeName, st.Doc))
	f.Line()
}
