package compiler

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csdlc/csdlc/ast"
	"github.com/csdlc/csdlc/index"
	"github.com/csdlc/csdlc/ir"
)

func buildIndex(t *testing.T, doc string) *index.Index {
	t.Helper()
	d, err := ast.Parse(strings.NewReader(doc))
	require.NoError(t, err)
	idx, err := index.Build(&index.Bundle{Documents: []*ast.EdmxDocument{d}})
	require.NoError(t, err)
	return idx
}

func TestCompileFlattensInheritedFields(t *testing.T) {
	const doc = `<edmx:Edmx Version="4.0" xmlns:edmx="http://docs.oasis-open.org/odata/ns/edmx">
  <edmx:DataServices>
    <Schema Namespace="Org" xmlns="http://docs.oasis-open.org/odata/ns/edm">
      <EntityType Name="Base">
        <Key><PropertyRef Name="Id"/></Key>
        <Property Name="Id" Type="Edm.String" Nullable="false"/>
      </EntityType>
      <EntityType Name="Widget" BaseType="Org.Base">
        <Property Name="Weight" Type="Edm.Decimal"/>
      </EntityType>
    </Schema>
  </edmx:DataServices>
</edmx:Edmx>`
	idx := buildIndex(t, doc)

	out, err := Compile(idx, []ast.QualifiedName{ast.ParseQualifiedName("Org.Widget")}, nil, Config{})
	require.NoError(t, err)

	widget, ok := out.EntityTypes[ast.ParseQualifiedName("Org.Widget").Key()]
	require.True(t, ok)
	require.Len(t, widget.Fields, 2, "flattened view folds Base's fields in")
	assert.Equal(t, ast.Identifier("Id"), widget.Fields[0].Name)
	assert.Equal(t, ast.Identifier("Weight"), widget.Fields[1].Name)
	require.Len(t, widget.OwnFields, 1, "own-only view excludes inherited fields")
	assert.Equal(t, ast.Identifier("Weight"), widget.OwnFields[0].Name)
	assert.Equal(t, []ast.Identifier{"Id"}, widget.Key, "Key resolves up the base chain")
	assert.Empty(t, widget.OwnKey, "OwnKey is unset on a derived type that declares no Key itself")

	base, ok := out.EntityTypes[ast.ParseQualifiedName("Org.Base").Key()]
	require.True(t, ok, "a dependency reached through BaseType is compiled too")
	assert.Equal(t, []ast.Identifier{"Id"}, base.OwnKey)
}

func TestCompileBaseCycleIsError(t *testing.T) {
	const doc = `<edmx:Edmx Version="4.0" xmlns:edmx="http://docs.oasis-open.org/odata/ns/edmx">
  <edmx:DataServices>
    <Schema Namespace="Org" xmlns="http://docs.oasis-open.org/odata/ns/edm">
      <EntityType Name="A" BaseType="Org.B"/>
      <EntityType Name="B" BaseType="Org.A"/>
    </Schema>
  </edmx:DataServices>
</edmx:Edmx>`
	idx := buildIndex(t, doc)

	_, err := Compile(idx, []ast.QualifiedName{ast.ParseQualifiedName("Org.A")}, nil, Config{})
	require.Error(t, err)
	assert.True(t, ir.IsAmbiguousHierarchy(err))
}

func TestCompileMutualNavigationIsNotError(t *testing.T) {
	const doc = `<edmx:Edmx Version="4.0" xmlns:edmx="http://docs.oasis-open.org/odata/ns/edmx">
  <edmx:DataServices>
    <Schema Namespace="Org" xmlns="http://docs.oasis-open.org/odata/ns/edm">
      <EntityType Name="A">
        <NavigationProperty Name="Bs" Type="Collection(Org.B)"/>
      </EntityType>
      <EntityType Name="B">
        <NavigationProperty Name="A" Type="Org.A" Nullable="false"/>
      </EntityType>
    </Schema>
  </edmx:DataServices>
</edmx:Edmx>`
	idx := buildIndex(t, doc)

	out, err := Compile(idx, []ast.QualifiedName{ast.ParseQualifiedName("Org.A")}, nil, Config{})
	require.NoError(t, err)
	assert.Len(t, out.EntityTypes, 2)

	a := out.EntityTypes[ast.ParseQualifiedName("Org.A").Key()]
	require.Len(t, a.Navs, 1)
	assert.True(t, a.Navs[0].Collection)

	b := out.EntityTypes[ast.ParseQualifiedName("Org.B").Key()]
	require.Len(t, b.Navs, 1)
	assert.False(t, b.Navs[0].Nullable)
}

func TestCompileMissingEntityTypeIsError(t *testing.T) {
	const doc = `<edmx:Edmx Version="4.0" xmlns:edmx="http://docs.oasis-open.org/odata/ns/edmx">
  <edmx:DataServices>
    <Schema Namespace="Org" xmlns="http://docs.oasis-open.org/odata/ns/edm"></Schema>
  </edmx:DataServices>
</edmx:Edmx>`
	idx := buildIndex(t, doc)

	_, err := Compile(idx, []ast.QualifiedName{ast.ParseQualifiedName("Org.Missing")}, nil, Config{})
	require.Error(t, err)
	assert.True(t, ir.IsTypeNotFound(err))
}

func TestCompileUnresolvedBaseIsError(t *testing.T) {
	const doc = `<edmx:Edmx Version="4.0" xmlns:edmx="http://docs.oasis-open.org/odata/ns/edmx">
  <edmx:DataServices>
    <Schema Namespace="A.v1" xmlns="http://docs.oasis-open.org/odata/ns/edm">
      <EntityType Name="X" BaseType="A.v1.Y"/>
    </Schema>
  </edmx:DataServices>
</edmx:Edmx>`
	idx := buildIndex(t, doc)

	_, err := Compile(idx, []ast.QualifiedName{ast.ParseQualifiedName("A.v1.X")}, nil, Config{})
	require.Error(t, err)
	assert.True(t, ir.IsTypeNotFound(err), "an entity type whose BaseType can't be found fails as EntityTypeNotFound")
}

func TestCompileEmptyEnumIsError(t *testing.T) {
	const doc = `<edmx:Edmx Version="4.0" xmlns:edmx="http://docs.oasis-open.org/odata/ns/edmx">
  <edmx:DataServices>
    <Schema Namespace="Org" xmlns="http://docs.oasis-open.org/odata/ns/edm">
      <EnumType Name="Empty"/>
      <EntityType Name="Widget">
        <Property Name="Status" Type="Org.Empty"/>
      </EntityType>
    </Schema>
  </edmx:DataServices>
</edmx:Edmx>`
	idx := buildIndex(t, doc)

	_, err := Compile(idx, []ast.QualifiedName{ast.ParseQualifiedName("Org.Widget")}, nil, Config{})
	require.Error(t, err)
}
