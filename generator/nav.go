package generator

import "github.com/dave/jennifer/jen"

// navFile returns the jen.File declaring the shared Nav[T] wrapper every
// generated package's navigation-property fields use, per spec.md §4.6:
// a navigation property is "wrapped in a navigation-variant type
// supporting both reference and expanded forms." Ref holds the
// OData-style "@odata.id" link; Value holds the inline payload when the
// producer expanded the relationship, nil otherwise. The generated type
// has no JSON tags and no custom (un)marshalling methods, so encoding/json
// maps it to the object keys "Ref" and "Value"; neither the
// {"@odata.id": ...} reference form nor an inline expanded object decodes
// into it.
func navFile(pkgName string) *jen.File {
	f := jen.NewFile(pkgName)
	f.HeaderComment("Code generated by csdlc. DO NOT EDIT.")

	f.Comment("Nav is a navigation property: either a bare reference to the related")
	f.Comment("resource, or (when the producer expanded the relationship) the related")
	f.Comment("resource's full value.")
	f.Type().Id("Nav").Types(jen.Id("T").Any()).Struct(
		jen.Id("Ref").String(),
		jen.Id("Value").Op("*").Id("T"),
	)

	f.Line()
	f.Comment("Expanded reports whether the producer included the related resource's")
	f.Comment("value inline rather than just a reference.")
	f.Func().Params(jen.Id("n").Id("Nav").Index(jen.Id("T"))).Id("Expanded").Params().Params(jen.Bool()).Block(
		jen.Return(jen.Id("n").Dot("Value").Op("!=").Nil()),
	)

	return f
}
