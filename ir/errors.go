package ir

import (
	"errors"
	"fmt"

	"github.com/csdlc/csdlc/ast"
)

// Sentinel errors for the IR invariant violations named in spec.md §4.4/§9:
// every Named(q) must resolve to an IR entry or an Edm primitive, base
// chains must be acyclic and kind-consistent, action bindings must resolve
// to entity types, and enum members must be non-empty.
var (
	ErrTypeNotFound                     = errors.New("ir: referenced type not found")
	ErrEntityTypeNotFound                = errors.New("ir: referenced entity type not found")
	ErrTypeDefinitionOfNotPrimitiveType  = errors.New("ir: type definition underlying type is not a primitive")
	ErrAmbiguousHierarchy                = errors.New("ir: ambiguous base type hierarchy (cycle detected)")
	ErrActionBindingNotEntityType        = errors.New("ir: bound action's first parameter is not an entity type")
	ErrEmptyEnum                         = errors.New("ir: enum type has no members")
)

// Error is the leaf IR compilation error, naming the qualified name under
// compilation when the sentinel fired.
type Error struct {
	Kind error
	Name ast.QualifiedName
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind.Error(), e.Name.String())
}

func (e *Error) Unwrap() error { return e.Kind }

// Wrap builds an *Error for a failed qualified-name resolution.
func Wrap(kind error, name ast.QualifiedName) error {
	return &Error{Kind: kind, Name: name}
}

// IsAmbiguousHierarchy reports whether err is (or wraps) an
// ErrAmbiguousHierarchy.
func IsAmbiguousHierarchy(err error) bool {
	return errors.Is(err, ErrAmbiguousHierarchy)
}

// IsTypeNotFound reports whether err is (or wraps) an ErrTypeNotFound or
// ErrEntityTypeNotFound.
func IsTypeNotFound(err error) bool {
	return errors.Is(err, ErrTypeNotFound) || errors.Is(err, ErrEntityTypeNotFound)
}
