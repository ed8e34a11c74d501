// Package ast provides a typed representation of the CSDL schema XML
// (EDMX: EntityDataModel XML) plus the structural validation that turns raw
// XML into a faithful abstract syntax model.
package ast

import "strings"

// Identifier is an opaque, non-empty token matching the schema's identifier
// grammar. Identifiers compare by byte equality.
type Identifier string

// Valid reports whether id is a non-empty identifier.
func (id Identifier) Valid() bool { return id != "" }

// Namespace is an ordered sequence of identifiers. Namespaces are
// structurally-shared views over a backing sequence with a length cursor: a
// namespace can be truncated (via Parent) without copying the backing slice,
// and never holds more identifiers than its cursor admits.
type Namespace struct {
	parts []Identifier // backing sequence, shared across truncated views
	n     int          // number of parts visible through this view (1..len(parts))
}

// NewNamespace builds a namespace view over the given identifiers.
// Panics if parts is empty: a namespace always has at least one segment.
func NewNamespace(parts ...Identifier) Namespace {
	if len(parts) == 0 {
		panic("ast: namespace must have at least one segment")
	}
	cp := make([]Identifier, len(parts))
	copy(cp, parts)
	return Namespace{parts: cp, n: len(cp)}
}

// ParseNamespace splits a dotted string like "A.v1_0_0" into a Namespace.
func ParseNamespace(s string) Namespace {
	segs := strings.Split(s, ".")
	parts := make([]Identifier, len(segs))
	for i, s := range segs {
		parts[i] = Identifier(s)
	}
	return NewNamespace(parts...)
}

// Len returns the number of segments visible through this view.
func (ns Namespace) Len() int { return ns.n }

// Parts returns the segments visible through this view, in order.
func (ns Namespace) Parts() []Identifier {
	return ns.parts[:ns.n]
}

// Parent returns the namespace truncated by one segment (the cursor
// decremented by one). ok is false when ns has only one segment.
func (ns Namespace) Parent() (parent Namespace, ok bool) {
	if ns.n <= 1 {
		return Namespace{}, false
	}
	return Namespace{parts: ns.parts, n: ns.n - 1}, true
}

// IsEdm reports whether ns is the single-segment "Edm" namespace, the home
// of CSDL's built-in primitive types.
func (ns Namespace) IsEdm() bool {
	return ns.n == 1 && ns.parts[0] == "Edm"
}

// Equal reports whether ns and other denote the same sequence of segments.
func (ns Namespace) Equal(other Namespace) bool {
	if ns.n != other.n {
		return false
	}
	for i := 0; i < ns.n; i++ {
		if ns.parts[i] != other.parts[i] {
			return false
		}
	}
	return true
}

// String renders the namespace in dotted form.
func (ns Namespace) String() string {
	var b strings.Builder
	for i := 0; i < ns.n; i++ {
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(string(ns.parts[i]))
	}
	return b.String()
}

// key returns a comparable value suitable for use as a map key: Namespace
// itself cannot be a map key directly because Go compares struct fields
// (including the unexported backing slice's header) rather than calling
// Equal, so two structurally-equal truncated views of different backing
// arrays would otherwise hash and compare unequal.
func (ns Namespace) key() string { return ns.String() }

// QualifiedName identifies a declaration uniquely within a bundle of
// schemas: a namespace plus a local name.
type QualifiedName struct {
	Namespace Namespace
	Name      Identifier
}

// NewQualifiedName builds a QualifiedName.
func NewQualifiedName(ns Namespace, name Identifier) QualifiedName {
	return QualifiedName{Namespace: ns, Name: name}
}

// ParseQualifiedName splits "A.v1.Widget" into namespace "A.v1" and name
// "Widget". Panics if s has no dot (every qualified name has a namespace).
func ParseQualifiedName(s string) QualifiedName {
	i := strings.LastIndexByte(s, '.')
	if i < 0 {
		panic("ast: qualified name has no namespace: " + s)
	}
	return QualifiedName{Namespace: ParseNamespace(s[:i]), Name: Identifier(s[i+1:])}
}

// String renders the qualified name as "ns.parts.joined.by.dots.Name".
func (q QualifiedName) String() string {
	return q.Namespace.String() + "." + string(q.Name)
}

// Key returns a value usable as a map key for QualifiedName, since
// QualifiedName embeds a Namespace whose equality is semantic, not
// structural (see Namespace.key).
func (q QualifiedName) Key() string { return q.Namespace.key() + "\x00" + string(q.Name) }
