package generator

import (
	"testing"

	"github.com/dave/jennifer/jen"
	"github.com/stretchr/testify/assert"

	"github.com/csdlc/csdlc/ast"
	"github.com/csdlc/csdlc/ir"
)

func TestActionDeclFunctionForm(t *testing.T) {
	resolver := Module{RootImportPath: "github.com/example/model"}
	ret := ir.Type{Primitive: primKind(ir.Boolean)}
	a := &ir.Action{
		Name: ast.ParseQualifiedName("Org.Widgets.Reset"),
		Parameters: []ir.ActionParameter{
			{Name: ast.Identifier("force"), Type: ir.Type{Primitive: primKind(ir.Boolean)}},
		},
		ReturnType: &ret,
	}

	f := jen.NewFile("widgets")
	actionDecl(f, "Reset", a, resolver)
	out := renderFile(t, f)

	assert.Contains(t, out, "func Reset(force bool) (bool, error)")
	assert.Contains(t, out, "not implemented: Org.Widgets.Reset")
	assert.Contains(t, out, "return false,")
}

func TestActionDeclStructFormAboveThreshold(t *testing.T) {
	resolver := Module{RootImportPath: "github.com/example/model"}
	var params []ir.ActionParameter
	for _, n := range []string{"a", "b", "c", "d"} {
		params = append(params, ir.ActionParameter{Name: ast.Identifier(n), Type: ir.Type{Primitive: primKind(ir.String)}})
	}
	a := &ir.Action{Name: ast.ParseQualifiedName("Org.Widgets.Bulk"), Parameters: params}

	f := jen.NewFile("widgets")
	actionDecl(f, "Bulk", a, resolver)
	out := renderFile(t, f)

	assert.Contains(t, out, "type BulkParameters struct")
	assert.Contains(t, out, `A string`)
	assert.Contains(t, out, "func Bulk(params BulkParameters) error")
	assert.Contains(t, out, "not implemented: Org.Widgets.Bulk")
}
