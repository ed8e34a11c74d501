package generator

import (
	"github.com/dave/jennifer/jen"

	"github.com/csdlc/csdlc/ir"
)

// ParamThreshold is the configured cutoff above which an action's
// parameters are lowered to a struct literal instead of a function
// parameter list, per spec.md §4.6. Redfish actions routinely take 4+
// parameters, so the threshold favors readability over a long positional
// signature.
const ParamThreshold = 3

// actionDecl renders an IR Action as either a function (≤ ParamThreshold
// parameters) or a parameter-struct-plus-function pair (above it).
func actionDecl(f *jen.File, typeName string, a *ir.Action, resolver qualifiedNameResolver) {
	if len(a.Parameters) > ParamThreshold {
		actionParamStruct(f, typeName, a, resolver)
		return
	}
	var params []jen.Code
	for _, p := range a.Parameters {
		t := jenStatementForType(p.Type, resolver)
		if p.Nullable {
			t = jen.Op("*").Add(t)
		}
		params = append(params, jen.Id(FieldName(string(p.Name))).Add(t))
	}
	ret := []jen.Code{}
	if a.ReturnType != nil {
		ret = append(ret, jenStatementForType(*a.ReturnType, resolver))
	}
	ret = append(ret, jen.Error())

	stmt := jen.Func().Id(typeName).Params(params...).Params(ret...).Block(actionStubBody(a, resolver)...)
	f.Add(withDoc(stmt, typeName, a.Doc))
	f.Line()
}

// actionStubBody renders the unimplemented-operation body every generated
// action stub shares: schema compilation names an action's shape, never
// its behavior, so callers implement the real body by replacing the stub.
func actionStubBody(a *ir.Action, resolver qualifiedNameResolver) []jen.Code {
	zero := []jen.Code{}
	if a.ReturnType != nil {
		zero = append(zero, zeroValueFor(*a.ReturnType, resolver))
	}
	zero = append(zero, jen.Qual("fmt", "Errorf").Call(jen.Lit("not implemented: "+a.Name.String())))
	return []jen.Code{jen.Return(zero...)}
}

func zeroValueFor(t ir.Type, resolver qualifiedNameResolver) jen.Code {
	if t.Collection != nil {
		return jen.Nil()
	}
	if t.Primitive != nil {
		switch *t.Primitive {
		case ir.String, ir.Guid:
			return jen.Lit("")
		case ir.Boolean:
			return jen.False()
		case ir.Binary:
			return jen.Nil()
		default:
			return jen.Lit(0)
		}
	}
	return jenStatementForType(t, resolver).Values()
}

func actionParamStruct(f *jen.File, typeName string, a *ir.Action, resolver qualifiedNameResolver) {
	var fields []jen.Code
	for _, p := range a.Parameters {
		t := jenStatementForType(p.Type, resolver)
		if p.Nullable {
			t = jen.Op("*").Add(t)
		}
		fields = append(fields, jen.Id(TypeName(string(p.Name))).Add(t).Tag(map[string]string{"json": string(p.Name)}))
	}
	paramsType := typeName + "Parameters"
	f.Type().Id(paramsType).Struct(fields...)
	f.Line()

	ret := []jen.Code{}
	if a.ReturnType != nil {
		ret = append(ret, jenStatementForType(*a.ReturnType, resolver))
	}
	ret = append(ret, jen.Error())

	stmt := jen.Func().Id(typeName).Params(jen.Id("params").Id(paramsType)).Params(ret...).Block(actionStubBody(a, resolver)...)
	f.Add(withDoc(stmt, typeName, a.Doc))
	f.Line()
}
