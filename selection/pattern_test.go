package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csdlc/csdlc/ast"
)

func TestPatternMatch(t *testing.T) {
	cases := []struct {
		pattern string
		name    string
		want    bool
	}{
		{"Org.Service.Widget", "Org.Service.Widget", true},
		{"Org.Service.Widget", "Org.Service.Gadget", false},
		{"Org.Service.*", "Org.Service.Widget", true},
		{"Org.Service.*", "Org.Service.v1.Widget", true},
		{"Org.Service.*", "Org.Other.Widget", false},
		{"Org.*", "Org.Service.v1.Widget", true},
		{"*", "Anything.At.All", true},
	}
	for _, c := range cases {
		t.Run(c.pattern+"/"+c.name, func(t *testing.T) {
			p, err := Parse(c.pattern)
			require.NoError(t, err)
			got := p.Match(ast.ParseQualifiedName(c.name))
			assert.Equal(t, c.want, got)
		})
	}
}

func TestPatternString(t *testing.T) {
	p, err := Parse("Org.Service.*")
	require.NoError(t, err)
	assert.Equal(t, "Org.Service.*", p.String())
}

func TestPatternRejectsEmpty(t *testing.T) {
	_, err := Parse("")
	assert.Error(t, err)
}
