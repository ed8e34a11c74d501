package ast

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalDocument = `<?xml version="1.0"?>
<edmx:Edmx Version="4.0" xmlns:edmx="http://docs.oasis-open.org/odata/ns/edmx">
  <edmx:DataServices>
    <Schema Namespace="Acme.Widgets" xmlns="http://docs.oasis-open.org/odata/ns/edm">
      <EntityType Name="Widget">
        <Key>
          <PropertyRef Name="Id"/>
        </Key>
        <Property Name="Id" Type="Edm.String" Nullable="false"/>
        <Property Name="Weight" Type="Edm.Decimal"/>
        <Annotation Term="OData.Description" String="A widget."/>
      </EntityType>
      <EntityContainer Name="Service">
        <Singleton Name="Root" Type="Acme.Widgets.Widget"/>
      </EntityContainer>
    </Schema>
  </edmx:DataServices>
</edmx:Edmx>`

func TestParseMinimalDocument(t *testing.T) {
	doc, err := Parse(strings.NewReader(minimalDocument))
	require.NoError(t, err)
	require.NotNil(t, doc.DataServices)
	require.Len(t, doc.DataServices.Schemas, 1)

	s := doc.DataServices.Schemas[0]
	assert.Equal(t, "Acme.Widgets", s.Namespace.String())
	require.Len(t, s.Declarations, 2)

	d, ok := s.Lookup("Widget")
	require.True(t, ok)
	require.NotNil(t, d.EntityType)
	assert.Equal(t, []Identifier{"Id"}, d.EntityType.Key.PropertyRefs)
	require.Len(t, d.EntityType.Properties, 2)
	assert.False(t, d.EntityType.Properties[0].Nullable)
	assert.True(t, d.EntityType.Properties[1].Nullable)
	require.Len(t, d.EntityType.Annotations, 1)
	assert.Equal(t, AnnotationString, d.EntityType.Annotations[0].Value.Kind)

	c, ok := s.Lookup("Service")
	require.True(t, ok)
	require.NotNil(t, c.EntityContainer)
	require.Len(t, c.EntityContainer.Singletons, 1)
	assert.Equal(t, "Acme.Widgets.Widget", c.EntityContainer.Singletons[0].Type.String())
}

func TestParseMissingDataServicesIsError(t *testing.T) {
	const doc = `<edmx:Edmx Version="4.0" xmlns:edmx="http://docs.oasis-open.org/odata/ns/edmx"></edmx:Edmx>`
	_, err := Parse(strings.NewReader(doc))
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
}

func TestParseTwoDataServicesIsError(t *testing.T) {
	const doc = `<edmx:Edmx Version="4.0" xmlns:edmx="http://docs.oasis-open.org/odata/ns/edmx">
  <edmx:DataServices></edmx:DataServices>
  <edmx:DataServices></edmx:DataServices>
</edmx:Edmx>`
	_, err := Parse(strings.NewReader(doc))
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
}

func TestParseTwoKeysIsError(t *testing.T) {
	const doc = `<edmx:Edmx Version="4.0" xmlns:edmx="http://docs.oasis-open.org/odata/ns/edmx">
  <edmx:DataServices>
    <Schema Namespace="A" xmlns="http://docs.oasis-open.org/odata/ns/edm">
      <EntityType Name="Widget">
        <Key><PropertyRef Name="Id"/></Key>
        <Key><PropertyRef Name="Other"/></Key>
      </EntityType>
    </Schema>
  </edmx:DataServices>
</edmx:Edmx>`
	_, err := Parse(strings.NewReader(doc))
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
	assert.Contains(t, Chain(err), "EntityType(Widget)")
}

func TestParseDuplicateNameIsError(t *testing.T) {
	const doc = `<edmx:Edmx Version="4.0" xmlns:edmx="http://docs.oasis-open.org/odata/ns/edmx">
  <edmx:DataServices>
    <Schema Namespace="A" xmlns="http://docs.oasis-open.org/odata/ns/edm">
      <EntityType Name="Widget"/>
      <ComplexType Name="Widget"/>
    </Schema>
  </edmx:DataServices>
</edmx:Edmx>`
	_, err := Parse(strings.NewReader(doc))
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
}

func TestParseCollectionType(t *testing.T) {
	const doc = `<edmx:Edmx Version="4.0" xmlns:edmx="http://docs.oasis-open.org/odata/ns/edmx">
  <edmx:DataServices>
    <Schema Namespace="A" xmlns="http://docs.oasis-open.org/odata/ns/edm">
      <EntityType Name="Widget">
        <NavigationProperty Name="Parts" Type="Collection(A.Part)"/>
      </EntityType>
    </Schema>
  </edmx:DataServices>
</edmx:Edmx>`
	doc2, err := Parse(strings.NewReader(doc))
	require.NoError(t, err)
	d, _ := doc2.DataServices.Schemas[0].Lookup("Widget")
	np := d.EntityType.NavProps[0]
	require.True(t, np.Type.IsCollection())
	assert.Equal(t, "A.Part", np.Type.Collection.Named.String())
}

func TestChainFormatsNestedContext(t *testing.T) {
	err := Wrap("Schema", "A.v1", Wrap("EntityType", "Widget", ErrTooManyKeys))
	got := Chain(err)
	assert.Equal(t, "Schema(A.v1)\n  EntityType(Widget)\n    csdl: entity type has more than one Key", got)
}
