package index

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csdlc/csdlc/ast"
)

const widgetDoc = `<edmx:Edmx Version="4.0" xmlns:edmx="http://docs.oasis-open.org/odata/ns/edmx">
  <edmx:DataServices>
    <Schema Namespace="Org.Widgets" xmlns="http://docs.oasis-open.org/odata/ns/edm">
      <EntityType Name="Widget">
        <Key><PropertyRef Name="Id"/></Key>
        <Property Name="Id" Type="Edm.String" Nullable="false"/>
      </EntityType>
    </Schema>
  </edmx:DataServices>
</edmx:Edmx>`

const gadgetDoc = `<edmx:Edmx Version="4.0" xmlns:edmx="http://docs.oasis-open.org/odata/ns/edmx">
  <edmx:DataServices>
    <Schema Namespace="Org.Gadgets" xmlns="http://docs.oasis-open.org/odata/ns/edm">
      <EntityType Name="Gadget"/>
    </Schema>
  </edmx:DataServices>
</edmx:Edmx>`

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func parseQN(t *testing.T, s string) ast.QualifiedName {
	t.Helper()
	return ast.ParseQualifiedName(s)
}

func TestLoadFilesConcurrent(t *testing.T) {
	p1 := writeFixture(t, "widget.xml", widgetDoc)
	p2 := writeFixture(t, "gadget.xml", gadgetDoc)

	b, err := LoadFiles(context.Background(), []string{p1, p2}, 2)
	require.NoError(t, err)
	require.Len(t, b.Documents, 2)

	idx, err := Build(b)
	require.NoError(t, err)
	_, ok := idx.FindEntityType(parseQN(t, "Org.Widgets.Widget"))
	assert.True(t, ok)
	_, ok = idx.FindEntityType(parseQN(t, "Org.Gadgets.Gadget"))
	assert.True(t, ok)
}

func TestLoadFilesAggregatesErrors(t *testing.T) {
	p1 := writeFixture(t, "widget.xml", widgetDoc)
	p2 := writeFixture(t, "broken.xml", "not xml at all <<<")

	_, err := LoadFiles(context.Background(), []string{p1, p2}, 2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.xml")
}
