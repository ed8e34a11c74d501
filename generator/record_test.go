package generator

import (
	"testing"

	"github.com/dave/jennifer/jen"
	"github.com/stretchr/testify/assert"

	"github.com/csdlc/csdlc/ast"
	"github.com/csdlc/csdlc/ir"
)

func TestRecordDeclExportsFields(t *testing.T) {
	resolver := Module{RootImportPath: "github.com/example/model"}
	fields := []ir.Field{
		{Name: "weight", Type: ir.Type{Primitive: primKind(ir.Decimal)}},
		{Name: "serial_number", Type: ir.Type{Primitive: primKind(ir.String)}, Nullable: true},
	}
	navs := []ir.NavField{
		{Name: "owner", Target: ast.ParseQualifiedName("Org.Widgets.Owner")},
		{Name: "parts", Target: ast.ParseQualifiedName("Org.Widgets.Part"), Collection: true},
	}

	f := jen.NewFile("widgets")
	recordDecl(f, "Widget", ir.Doc{}, fields, navs, resolver)
	out := renderFile(t, f)

	assert.Contains(t, out, "type Widget struct", "struct uses the Go type name, not the schema name")
	assert.Regexp(t, `Weight\s+float64`, out, "struct fields are exported, not snake_case, so json.Marshal can see them")
	assert.Contains(t, out, "SerialNumber *string", "nullable properties become pointers")
	assert.Contains(t, out, `json:"serial_number"`, "the json tag preserves the wire name")
	assert.Regexp(t, `Owner\s+Nav\[`, out)
	assert.Regexp(t, `Parts\s+\[\]Nav\[`, out)
}

func primKind(k ir.PrimitiveKind) *ir.PrimitiveKind { return &k }
