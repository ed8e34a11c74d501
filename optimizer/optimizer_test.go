package optimizer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csdlc/csdlc/ast"
	"github.com/csdlc/csdlc/compiler"
	"github.com/csdlc/csdlc/index"
	"github.com/csdlc/csdlc/ir"
)

func named(t ast.QualifiedName) ir.Type { return ir.Type{Named: t} }

func TestRemoveEmptyComplexTypesDropsAndLeavesDanglingRef(t *testing.T) {
	in := ir.New()
	empty := ast.ParseQualifiedName("Org.Empty")
	used := ast.ParseQualifiedName("Org.Widget")
	in.ComplexTypes[empty.Key()] = &ir.ComplexType{Name: empty}
	in.EntityTypes[used.Key()] = &ir.EntityType{
		Name:   used,
		Fields: []ir.Field{{Name: "Extra", Type: named(empty)}},
	}

	out, rep := RemoveEmptyComplexTypes(in)
	assert.Empty(t, out.ComplexTypes, "the empty complex type is dropped")
	assert.Empty(t, rep, "no surviving ancestor, so no replacement is recorded (spec's dangling-reference case)")
	widget := out.EntityTypes[used.Key()]
	require.NotNil(t, widget)
	assert.Equal(t, empty.Key(), widget.Fields[0].Type.Named.Key(), "dangling reference is left as-is, not silently rewritten")
}

func TestRemoveEmptyEntityTypesDropsNavsAndRoots(t *testing.T) {
	in := ir.New()
	empty := ast.ParseQualifiedName("Org.Marker")
	widget := ast.ParseQualifiedName("Org.Widget")
	in.EntityTypes[empty.Key()] = &ir.EntityType{Name: empty}
	in.EntityTypes[widget.Key()] = &ir.EntityType{
		Name: widget,
		Navs: []ir.NavField{{Name: "Marker", Target: empty}},
		Key:  []ast.Identifier{"Id"},
	}
	in.RootSingletons = []ir.RootSingleton{{Name: "Root", Type: empty}}

	out, _ := RemoveEmptyEntityTypes(in)
	_, ok := out.EntityTypes[empty.Key()]
	assert.False(t, ok, "an entity type with no fields, navs, or key is dropped")
	assert.Empty(t, out.RootSingletons, "a root singleton pointing at a dropped entity type is dropped too")
	w := out.EntityTypes[widget.Key()]
	require.NotNil(t, w)
	assert.Empty(t, w.Navs, "a nav pointing at a dropped entity type is pruned from the surviving type")
}

func TestPruneComplexTypeInheritanceCollapsesEmptyIntermediate(t *testing.T) {
	// Mid sits between Base and Leaf, contributes nothing of its own, and
	// is pruned out of the chain: Leaf ends up pointing directly at Base.
	// Base itself is never prunable — it has no Base of its own to
	// redirect callers to, regardless of whether it's empty.
	in := ir.New()
	base := ast.ParseQualifiedName("Org.Base")
	mid := ast.ParseQualifiedName("Org.Mid")
	leaf := ast.ParseQualifiedName("Org.Leaf")
	in.ComplexTypes[base.Key()] = &ir.ComplexType{Name: base}
	in.ComplexTypes[mid.Key()] = &ir.ComplexType{Name: mid, Base: &base}
	in.ComplexTypes[leaf.Key()] = &ir.ComplexType{
		Name: leaf, Base: &mid,
		OwnFields: []ir.Field{{Name: "Real"}},
		Fields:    []ir.Field{{Name: "Real"}},
	}

	out, rep := PruneComplexTypeInheritance(in)
	_, ok := out.ComplexTypes[base.Key()]
	assert.True(t, ok, "Base has no base of its own to chain through, so it always survives")
	_, ok = out.ComplexTypes[mid.Key()]
	assert.False(t, ok, "Mid has no own members and is pruned out of the chain")
	require.Contains(t, rep, mid.Key())
	assert.Equal(t, base.Key(), rep[mid.Key()].Key())

	l, ok := out.ComplexTypes[leaf.Key()]
	require.True(t, ok)
	require.NotNil(t, l.Base)
	assert.Equal(t, base.Key(), l.Base.Key(), "Leaf's base pointer is rewritten past the pruned Mid")
}

func TestPruneComplexTypeInheritanceKeepsNonEmptyBase(t *testing.T) {
	in := ir.New()
	base := ast.ParseQualifiedName("Org.Base")
	leaf := ast.ParseQualifiedName("Org.Leaf")
	in.ComplexTypes[base.Key()] = &ir.ComplexType{
		Name: base, OwnFields: []ir.Field{{Name: "Shared"}}, Fields: []ir.Field{{Name: "Shared"}},
	}
	in.ComplexTypes[leaf.Key()] = &ir.ComplexType{
		Name: leaf, Base: &base,
		OwnFields: []ir.Field{{Name: "Real"}},
		Fields:    []ir.Field{{Name: "Shared"}, {Name: "Real"}},
	}

	out, rep := PruneComplexTypeInheritance(in)
	assert.Empty(t, rep, "Base has its own field, so it's not prunable")
	_, ok := out.ComplexTypes[base.Key()]
	assert.True(t, ok)
	l := out.ComplexTypes[leaf.Key()]
	require.NotNil(t, l.Base)
	assert.Equal(t, base.Key(), l.Base.Key())
}

func TestPruneNamespacesHoistsCommonPrefix(t *testing.T) {
	in := ir.New()
	a := ast.ParseQualifiedName("Org.Service.v1_0_0.Widget")
	b := ast.ParseQualifiedName("Org.Service.v1_1_0.Gadget")
	in.EntityTypes[a.Key()] = &ir.EntityType{Name: a}
	in.EntityTypes[b.Key()] = &ir.EntityType{Name: b}

	out, rep := PruneNamespaces(in)
	assert.NotEmpty(t, rep)
	for _, e := range out.EntityTypes {
		assert.Equal(t, "Org.Service", e.Name.Namespace.String())
	}
}

func TestPruneNamespacesNoopWhenSingleNamespace(t *testing.T) {
	in := ir.New()
	a := ast.ParseQualifiedName("Org.Service.Widget")
	in.EntityTypes[a.Key()] = &ir.EntityType{Name: a}

	out, rep := PruneNamespaces(in)
	assert.Empty(t, rep)
	assert.Same(t, in, out)
}

func TestRunAppliesFullPipeline(t *testing.T) {
	in := ir.New()
	widget := ast.ParseQualifiedName("Org.Service.v1.Widget")
	in.EntityTypes[widget.Key()] = &ir.EntityType{
		Name: widget,
		Key:  []ast.Identifier{"Id"},
	}

	out, _ := Run(in)
	require.Len(t, out.EntityTypes, 1)
}

// TestNamespaceHoistingEndToEnd runs the real XML-parse-to-optimize
// pipeline: a sole enum declared under a versioned namespace with no
// sibling of the same name anywhere else in the IR is hoisted to its
// namespace's common prefix, and every property referencing it follows.
func TestNamespaceHoistingEndToEnd(t *testing.T) {
	const doc = `<edmx:Edmx Version="4.0" xmlns:edmx="http://docs.oasis-open.org/odata/ns/edmx">
  <edmx:DataServices>
    <Schema Namespace="A.v1_0_0" xmlns="http://docs.oasis-open.org/odata/ns/edm">
      <EnumType Name="Color">
        <Member Name="Red" Value="0"/>
      </EnumType>
    </Schema>
    <Schema Namespace="A.v1_1_0" xmlns="http://docs.oasis-open.org/odata/ns/edm">
      <EntityType Name="Widget">
        <Key><PropertyRef Name="Id"/></Key>
        <Property Name="Id" Type="Edm.String" Nullable="false"/>
        <Property Name="Shade" Type="A.v1_0_0.Color"/>
      </EntityType>
    </Schema>
  </edmx:DataServices>
</edmx:Edmx>`
	d, err := ast.Parse(strings.NewReader(doc))
	require.NoError(t, err)
	idx, err := index.Build(&index.Bundle{Documents: []*ast.EdmxDocument{d}})
	require.NoError(t, err)

	compiled, err := compiler.Compile(idx, []ast.QualifiedName{ast.ParseQualifiedName("A.v1_1_0.Widget")}, nil, compiler.Config{})
	require.NoError(t, err)

	out, rep := Run(compiled)
	assert.NotEmpty(t, rep)

	var color *ir.SimpleType
	for _, st := range out.SimpleTypes {
		if st.Name.Name == "Color" {
			color = st
		}
	}
	require.NotNil(t, color, "Color survives the pipeline under its hoisted name")
	assert.Equal(t, "A", color.Name.Namespace.String(), "hoisted to the namespace's common prefix")

	widget := out.EntityTypes[ast.ParseQualifiedName("A.Widget").Key()]
	require.NotNil(t, widget, "Widget is hoisted to the same common prefix")
	require.Len(t, widget.Fields, 2)
	shade := widget.Fields[1]
	assert.Equal(t, ast.Identifier("Shade"), shade.Name)
	assert.Equal(t, "A.Color", shade.Type.Named.String(), "the property's reference follows the rewrite")
}
