// Package index builds a queryable, immutable-once-built view over a
// bundle of parsed CSDL documents: every schema's declarations indexed by
// qualified name for O(1) average lookup, independent of how many
// documents the bundle was assembled from.
package index

import (
	"fmt"

	"github.com/csdlc/csdlc/ast"
)

// Bundle is an ordered collection of parsed documents. Order matters only
// for diagnostics (which document a declaration came from); lookups are
// namespace-qualified and therefore order-independent.
type Bundle struct {
	Documents []*ast.EdmxDocument
}

// Index is a read-only lookup table over a Bundle's declarations, built
// once and never mutated afterward.
type Index struct {
	schemas map[string]*ast.Schema                 // keyed by Namespace string
	decls   map[string]*ast.NamedDeclaration        // keyed by QualifiedName.Key()
	byKind  map[string][]ast.QualifiedName          // keyed by declaration kind, for enumeration
}

// Build indexes every schema in the bundle. Returns an error if two
// documents declare the same namespace with conflicting content (detected
// as a duplicate qualified name declared as a different kind of
// declaration; a same-kind redeclaration is not reported).
func Build(b *Bundle) (*Index, error) {
	idx := &Index{
		schemas: make(map[string]*ast.Schema),
		decls:   make(map[string]*ast.NamedDeclaration),
		byKind:  make(map[string][]ast.QualifiedName),
	}
	for _, doc := range b.Documents {
		if doc.DataServices == nil {
			continue
		}
		for _, s := range doc.DataServices.Schemas {
			idx.schemas[s.Namespace.String()] = s
			for i := range s.Declarations {
				nd := &s.Declarations[i]
				q := ast.NewQualifiedName(s.Namespace, nd.Name)
				if existing, dup := idx.decls[q.Key()]; dup && !sameShape(existing, nd) {
					return nil, fmt.Errorf("index: conflicting declarations for %s", q.String())
				}
				idx.decls[q.Key()] = nd
				idx.byKind[kindOf(&nd.Declaration)] = append(idx.byKind[kindOf(&nd.Declaration)], q)
			}
		}
	}
	return idx, nil
}

func sameShape(a, b *ast.NamedDeclaration) bool {
	return kindOf(&a.Declaration) == kindOf(&b.Declaration)
}

func kindOf(d *ast.Declaration) string {
	switch {
	case d.EntityType != nil:
		return "EntityType"
	case d.ComplexType != nil:
		return "ComplexType"
	case d.EnumType != nil:
		return "EnumType"
	case d.TypeDefinition != nil:
		return "TypeDefinition"
	case d.Action != nil:
		return "Action"
	case d.Term != nil:
		return "Term"
	case d.EntityContainer != nil:
		return "EntityContainer"
	default:
		return "Unknown"
	}
}

// find looks up the raw declaration for a qualified name.
func (idx *Index) find(q ast.QualifiedName) (*ast.Declaration, bool) {
	nd, ok := idx.decls[q.Key()]
	if !ok {
		return nil, false
	}
	return &nd.Declaration, true
}

// FindEntityType resolves q to an *ast.EntityType, if it names one.
func (idx *Index) FindEntityType(q ast.QualifiedName) (*ast.EntityType, bool) {
	d, ok := idx.find(q)
	if !ok || d.EntityType == nil {
		return nil, false
	}
	return d.EntityType, true
}

// FindComplexType resolves q to an *ast.ComplexType, if it names one.
func (idx *Index) FindComplexType(q ast.QualifiedName) (*ast.ComplexType, bool) {
	d, ok := idx.find(q)
	if !ok || d.ComplexType == nil {
		return nil, false
	}
	return d.ComplexType, true
}

// FindEnumType resolves q to an *ast.EnumType, if it names one.
func (idx *Index) FindEnumType(q ast.QualifiedName) (*ast.EnumType, bool) {
	d, ok := idx.find(q)
	if !ok || d.EnumType == nil {
		return nil, false
	}
	return d.EnumType, true
}

// FindTypeDefinition resolves q to an *ast.TypeDefinition, if it names one.
func (idx *Index) FindTypeDefinition(q ast.QualifiedName) (*ast.TypeDefinition, bool) {
	d, ok := idx.find(q)
	if !ok || d.TypeDefinition == nil {
		return nil, false
	}
	return d.TypeDefinition, true
}

// FindAction resolves q to an *ast.Action, if it names one.
func (idx *Index) FindAction(q ast.QualifiedName) (*ast.Action, bool) {
	d, ok := idx.find(q)
	if !ok || d.Action == nil {
		return nil, false
	}
	return d.Action, true
}

// FindEntityContainer resolves q to an *ast.EntityContainer, if it names one.
func (idx *Index) FindEntityContainer(q ast.QualifiedName) (*ast.EntityContainer, bool) {
	d, ok := idx.find(q)
	if !ok || d.EntityContainer == nil {
		return nil, false
	}
	return d.EntityContainer, true
}

// SchemasInNamespacePrefix returns every indexed namespace whose dotted
// string starts with prefix.
func (idx *Index) SchemasInNamespacePrefix(prefix string) []*ast.Schema {
	var out []*ast.Schema
	for ns, s := range idx.schemas {
		if hasNamespacePrefix(ns, prefix) {
			out = append(out, s)
		}
	}
	return out
}

func hasNamespacePrefix(ns, prefix string) bool {
	if ns == prefix {
		return true
	}
	return len(ns) > len(prefix) && ns[:len(prefix)] == prefix && ns[len(prefix)] == '.'
}

// EntityTypes returns every entity type's qualified name across the bundle.
func (idx *Index) EntityTypes() []ast.QualifiedName { return idx.byKind["EntityType"] }

// DescendantsOf returns every entity type whose (possibly transitive) base
// is base.
func (idx *Index) DescendantsOf(base ast.QualifiedName) []ast.QualifiedName {
	var out []ast.QualifiedName
	for _, q := range idx.byKind["EntityType"] {
		e, _ := idx.FindEntityType(q)
		cur := e.Base
		for cur != nil {
			if cur.Key() == base.Key() {
				out = append(out, q)
				break
			}
			next, ok := idx.FindEntityType(*cur)
			if !ok {
				break
			}
			cur = next.Base
		}
	}
	return out
}
