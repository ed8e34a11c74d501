package generator

import (
	"reflect"
	"testing"

	"github.com/csdlc/csdlc/ir"
)

func TestDocLines(t *testing.T) {
	cases := []struct {
		name string
		doc  ir.Doc
		want []string
	}{
		{"Widget", ir.Doc{}, nil},
		{"Widget", ir.Doc{Description: "A widget."}, []string{"A widget."}},
		{"Widget", ir.Doc{LongDescription: "Longer."}, []string{"Widget", "", "Longer."}},
		{"Widget", ir.Doc{Description: "Short.", LongDescription: "Longer."}, []string{"Short.", "", "Longer."}},
	}
	for _, c := range cases {
		got := docLines(c.name, c.doc)
		if !reflect.DeepEqual(got, c.want) {
			t.Errorf("docLines(%q, %+v) = %v, want %v", c.name, c.doc, got, c.want)
		}
	}
}
