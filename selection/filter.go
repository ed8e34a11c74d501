package selection

import "github.com/csdlc/csdlc/ast"

// Mode distinguishes the two filter senses spec.md §4.3 describes: a
// restrictive filter compiles only matched entity types (plus whatever
// they pull in transitively), a permissive filter compiles everything
// except matched entity types.
type Mode int

const (
	Restrictive Mode = iota
	Permissive
)

// EntityTypeFilter decides, given a set of patterns and a mode, whether a
// given entity type should seed compilation.
type EntityTypeFilter struct {
	Mode     Mode
	Patterns []*Pattern
}

// New builds a filter from raw pattern strings, parsing each with Parse.
func New(mode Mode, raw []string) (*EntityTypeFilter, error) {
	f := &EntityTypeFilter{Mode: mode}
	for _, s := range raw {
		p, err := Parse(s)
		if err != nil {
			return nil, err
		}
		f.Patterns = append(f.Patterns, p)
	}
	return f, nil
}

func (f *EntityTypeFilter) anyMatch(q ast.QualifiedName) bool {
	for _, p := range f.Patterns {
		if p.Match(q) {
			return true
		}
	}
	return false
}

// Includes reports whether q is selected under this filter's mode.
func (f *EntityTypeFilter) Includes(q ast.QualifiedName) bool {
	matched := f.anyMatch(q)
	if f.Mode == Restrictive {
		return matched
	}
	return !matched
}

// RootService selects the entity types reachable from an entity
// container's singletons, used to seed a "whole service" compilation
// independent of any pattern filter.
type RootService struct {
	Container *ast.EntityContainer
}

// Roots returns the qualified entity type names anchored by the
// container's singletons, in declaration order.
func (r RootService) Roots() []ast.QualifiedName {
	out := make([]ast.QualifiedName, 0, len(r.Container.Singletons))
	for _, s := range r.Container.Singletons {
		out = append(out, s.Type)
	}
	return out
}
