package ast

// TypeRef is a reference to a type as written in the schema: a primitive
// (namespace Edm), a named declaration, or a collection of either.
type TypeRef struct {
	// Collection holds the element type when this reference is
	// "Collection(T)"; nil for non-collection references.
	Collection *TypeRef
	// Named holds the qualified name for primitive and named references.
	// For primitives this is a qualified name in the Edm namespace.
	Named QualifiedName
}

// IsCollection reports whether the reference is a Collection(T).
func (t TypeRef) IsCollection() bool { return t.Collection != nil }

// IsPrimitive reports whether the (non-collection) reference names an Edm
// primitive.
func (t TypeRef) IsPrimitive() bool { return !t.IsCollection() && t.Named.Namespace.IsEdm() }

// Annotation is a term-name/value pair attached to a declaration. Values are
// a closed sum so the IR never has to surface a generic JSON value (see
// SPEC_FULL §9 / spec.md §9).
type Annotation struct {
	Term  QualifiedName
	Value AnnotationValue
}

// AnnotationValueKind discriminates the AnnotationValue union.
type AnnotationValueKind int

const (
	AnnotationNone AnnotationValueKind = iota
	AnnotationString
	AnnotationBool
	AnnotationInt
	AnnotationEnumMember
	AnnotationStringCollection
	AnnotationRecord
)

// AnnotationValue is a closed sum of the value shapes CSDL annotations can
// carry. Exactly one field is meaningful per Kind.
type AnnotationValue struct {
	Kind             AnnotationValueKind
	String           string
	Bool             bool
	Int              int64
	EnumMember       QualifiedName // enum type of a member reference such as Core.Permission/Read (member name not kept)
	StringCollection []string
	Record           []PropertyValue
}

// PropertyValue is one property-value pair inside an annotation Record,
// possibly carrying further nested annotations.
type PropertyValue struct {
	Property    Identifier
	Value       AnnotationValue
	Annotations []Annotation
}

// Property is a structural (non-navigation) field of an entity or complex
// type.
type Property struct {
	Name        Identifier
	Type        TypeRef
	Nullable    bool
	Annotations []Annotation
}

// NavigationProperty is a typed edge between entity types.
type NavigationProperty struct {
	Name        Identifier
	Type        TypeRef // single entity type, or Collection(entity type)
	Nullable    bool
	Annotations []Annotation
}

// Key is an entity type's identity: an ordered list of property names.
type Key struct {
	PropertyRefs []Identifier
}

// EntityType is a schema declaration with identity (via Key) and possible
// navigation edges.
type EntityType struct {
	Name        Identifier
	Base        *QualifiedName // optional base entity type
	Key         *Key           // at most one per §3.2 invariant; absent on derived types
	Properties  []Property
	NavProps    []NavigationProperty
	Annotations []Annotation
}

// ComplexType is a schema declaration without identity; used as a value.
type ComplexType struct {
	Name        Identifier
	Base        *QualifiedName
	Properties  []Property
	NavProps    []NavigationProperty
	Annotations []Annotation
}

// EnumUnderlyingKind is the integer width/signedness backing an EnumType.
type EnumUnderlyingKind int

const (
	EnumInt8 EnumUnderlyingKind = iota
	EnumInt16
	EnumInt32
	EnumInt64
)

// EnumMember is one member of an enum: a name and its ordinal/flag value.
type EnumMember struct {
	Name        Identifier
	Value       int64
	Annotations []Annotation
}

// EnumType is a named enumeration over an integer kind.
type EnumType struct {
	Name        Identifier
	Underlying  EnumUnderlyingKind
	IsFlags     bool
	Members     []EnumMember // non-empty, schema order preserved
	Annotations []Annotation
}

// TypeDefinition is a named alias over an Edm primitive.
type TypeDefinition struct {
	Name        Identifier
	Underlying  QualifiedName // must resolve to a primitive in Edm
	Annotations []Annotation
}

// Parameter is one parameter of an Action.
type Parameter struct {
	Name     Identifier
	Type     TypeRef
	Nullable bool
}

// Action is a named, possibly bound, parameterized operation with an
// optional return type. When IsBound is true, the first parameter is the
// binding target.
type Action struct {
	Name        Identifier
	IsBound     bool
	Parameters  []Parameter
	ReturnType  *TypeRef
	Annotations []Annotation
}

// Term declares an annotation term's shape (name + default value, as used
// by annotation applications elsewhere in the bundle).
type Term struct {
	Name        Identifier
	Type        TypeRef
	Default     *AnnotationValue
	Annotations []Annotation
}

// Singleton is a root-level named instance of an entity type, anchored
// under the service root.
type Singleton struct {
	Name Identifier
	Type QualifiedName
}

// EntityContainer carries the root singletons (and, structurally, would
// carry entity sets; the core only needs singletons to seed compilation).
type EntityContainer struct {
	Name       Identifier
	Singletons []Singleton
}

// Declaration is the tagged union of everything a Schema's local-name map
// can hold.
type Declaration struct {
	EntityType      *EntityType
	ComplexType     *ComplexType
	EnumType        *EnumType
	TypeDefinition  *TypeDefinition
	Action          *Action
	Term            *Term
	EntityContainer *EntityContainer
}

// Schema is one <Schema> element: a namespace plus its local declarations,
// order-preserved for deterministic downstream iteration.
type Schema struct {
	Namespace    Namespace
	Declarations []NamedDeclaration
	// byName indexes Declarations for O(1) local lookup; built at
	// validation time.
	byName map[Identifier]*Declaration
}

// NamedDeclaration pairs a local name with its declaration, preserving the
// document's original ordering.
type NamedDeclaration struct {
	Name        Identifier
	Declaration Declaration
}

// Lookup returns the declaration for a local name within this schema.
func (s *Schema) Lookup(name Identifier) (*Declaration, bool) {
	d, ok := s.byName[name]
	return d, ok
}

// Reference is a <Reference> element: a URI plus the namespaces it
// includes, used to stitch multi-document bundles together.
type Reference struct {
	URI      string
	Includes []ReferenceInclude
}

// ReferenceInclude names one included namespace (with an optional alias).
type ReferenceInclude struct {
	Namespace Namespace
	Alias     Identifier
}

// DataServices wraps the Schemas declared by one document. Exactly one must
// appear per EdmxDocument (§3.2 invariant).
type DataServices struct {
	Schemas []*Schema
}

// EdmxDocument is the root of one parsed CSDL document.
type EdmxDocument struct {
	Version      string
	DataServices *DataServices
	References   []Reference
}
