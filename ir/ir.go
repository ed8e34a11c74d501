// Package ir defines the Compiled intermediate representation the
// compiler produces: a flattened, fully-resolved view of the selected
// schema subset, free of the AST's inheritance indirection and amenable
// to the optimizer's IR-to-IR rewrite passes.
package ir

import "github.com/csdlc/csdlc/ast"

// PrimitiveKind enumerates the Edm primitive kinds the IR can reference
// directly, so downstream consumers never have to re-parse "Edm.*" names.
type PrimitiveKind int

const (
	String PrimitiveKind = iota
	Boolean
	Int32
	Int64
	Double
	Decimal
	DateTimeOffset
	Duration
	Guid
	Binary
)

// Doc holds the two OData description annotations a declaration may carry,
// per spec.md §3's "description?, long_description?" side annotations.
type Doc struct {
	Description     string
	LongDescription string
}

// Empty reports whether neither description is set.
func (d Doc) Empty() bool { return d.Description == "" && d.LongDescription == "" }

// SimpleType is a flattened enum or type-definition entry: both reduce to
// a name plus either enum members or a primitive kind.
type SimpleType struct {
	Name       ast.QualifiedName
	IsEnum     bool
	Underlying PrimitiveKind
	IsFlags    bool
	Members    []EnumMember // non-empty when IsEnum
	Doc        Doc
}

// EnumMember mirrors ast.EnumMember after resolution.
type EnumMember struct {
	Name  ast.Identifier
	Value int64
}

// Field is a flattened, fully-typed structural member (base-inherited
// properties already folded in, per the compiler's flattening pass).
type Field struct {
	Name     ast.Identifier
	Type     Type
	Nullable bool
	// Redfish side-table tags, carried as booleans rather than a
	// generic annotation bag so the generator never re-interprets
	// annotation values.
	Required        bool
	RequiredOnCreate bool
	ExcerptOnly      bool
	Excerpt          bool
	ExcerptCopy      bool
	Doc              Doc
}

// NavField is a flattened navigation edge.
type NavField struct {
	Name       ast.Identifier
	Target     ast.QualifiedName // entity type
	Collection bool
	Nullable   bool
}

// Type is a reference to an IR type: a primitive, a named IR entry
// (SimpleType/ComplexType/EntityType), or a collection of either.
type Type struct {
	Collection *Type
	Primitive  *PrimitiveKind
	Named      ast.QualifiedName // valid when Primitive is nil and Collection is nil
}

// ComplexType is a value type. Fields/Navs are the flattened view (every
// base's members folded in, for consumers like the generator that want
// one complete member list); OwnFields/OwnNavs are just this
// declaration's own members, which the optimizer's inheritance-pruning
// pass needs to decide whether a base contributes anything of its own.
type ComplexType struct {
	Name      ast.QualifiedName
	Base      *ast.QualifiedName
	Fields    []Field
	Navs      []NavField
	OwnFields []Field
	OwnNavs   []NavField
	Doc       Doc
}

// EntityType is an identity type. See ComplexType's doc comment for the
// Fields/Navs vs OwnFields/OwnNavs distinction; Key is resolved to the
// first key found walking up the base chain (§4.4), OwnKey is set only
// when this declaration itself declares a Key.
type EntityType struct {
	Name      ast.QualifiedName
	Base      *ast.QualifiedName
	Key       []ast.Identifier
	OwnKey    []ast.Identifier
	Fields    []Field
	Navs      []NavField
	OwnFields []Field
	OwnNavs   []NavField
	Doc       Doc
}

// ActionParameter mirrors ast.Parameter after type resolution.
type ActionParameter struct {
	Name     ast.Identifier
	Type     Type
	Nullable bool
}

// Action is a flattened, bound-or-unbound operation.
type Action struct {
	Name       ast.QualifiedName
	IsBound    bool
	BindingTo  *ast.QualifiedName // entity type the first parameter binds to, when IsBound
	Parameters []ActionParameter
	ReturnType *Type
	Doc        Doc
}

// Compiled is the full output of one compilation: every IR table the
// generator and optimizer need. The type tables are maps keyed by
// QualifiedName.Key(), so their iteration order is not defined;
// RootSingletons is the only ordered table.
type Compiled struct {
	SimpleTypes   map[string]*SimpleType
	ComplexTypes  map[string]*ComplexType
	EntityTypes   map[string]*EntityType
	Actions       map[string]*Action
	RootSingletons []RootSingleton // ordered; the service's entry points
}

// RootSingleton is one named, typed entry point into the compiled model.
type RootSingleton struct {
	Name ast.Identifier
	Type ast.QualifiedName
}

// New returns an empty Compiled, ready for the compiler to populate.
func New() *Compiled {
	return &Compiled{
		SimpleTypes:  make(map[string]*SimpleType),
		ComplexTypes: make(map[string]*ComplexType),
		EntityTypes:  make(map[string]*EntityType),
		Actions:      make(map[string]*Action),
	}
}

// Merge combines two Compiled IRs into one: a per-table union where an
// entry present in both keeps b's copy, and RootSingletons is a's list
// followed by b's. The compiler does not call it; it fills a single
// Compiled in place.
func Merge(a, b *Compiled) *Compiled {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	out := New()
	for k, v := range a.SimpleTypes {
		out.SimpleTypes[k] = v
	}
	for k, v := range b.SimpleTypes {
		out.SimpleTypes[k] = v
	}
	for k, v := range a.ComplexTypes {
		out.ComplexTypes[k] = v
	}
	for k, v := range b.ComplexTypes {
		out.ComplexTypes[k] = v
	}
	for k, v := range a.EntityTypes {
		out.EntityTypes[k] = v
	}
	for k, v := range b.EntityTypes {
		out.EntityTypes[k] = v
	}
	for k, v := range a.Actions {
		out.Actions[k] = v
	}
	for k, v := range b.Actions {
		out.Actions[k] = v
	}
	out.RootSingletons = append(append([]RootSingleton{}, a.RootSingletons...), b.RootSingletons...)
	return out
}
