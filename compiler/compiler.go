// Package compiler implements the demand-driven compilation pipeline
// described in spec.md §4.4: starting from a set of root entity types, it
// walks dependencies on demand (base types, property types, navigation
// targets), memoizing each qualified name's compilation state so cyclic
// schema references are handled safely while true base-type cycles are
// rejected as errors. Action declarations are not compiled.
package compiler

import (
	"github.com/csdlc/csdlc/ast"
	"github.com/csdlc/csdlc/index"
	"github.com/csdlc/csdlc/ir"
	"github.com/csdlc/csdlc/selection"
)

// state is the memoization state for one qualified name under compilation.
type state int

const (
	notStarted state = iota
	onStack
	done
)

// Config holds compiler-wide options.
type Config struct {
	// IncludeActions is not read by Compile: no bound or unbound action is
	// compiled whatever its value, and the result's Actions table stays
	// empty.
	IncludeActions bool
}

// compilation carries the mutable state for one Compile call.
type compilation struct {
	idx    *index.Index
	filter *selection.EntityTypeFilter
	cfg    Config

	states map[string]state
	out    *ir.Compiled
}

// Compile produces the Compiled IR for the entity types selected by
// filter, seeded from roots, plus everything they transitively depend on.
func Compile(idx *index.Index, roots []ast.QualifiedName, filter *selection.EntityTypeFilter, cfg Config) (*ir.Compiled, error) {
	c := &compilation{
		idx:    idx,
		filter: filter,
		cfg:    cfg,
		states: make(map[string]state),
		out:    ir.New(),
	}
	for _, root := range roots {
		if filter != nil && !filter.Includes(root) {
			continue
		}
		if _, err := c.compileEntityType(root); err != nil {
			return nil, err
		}
	}
	return c.out, nil
}

// compileEntityType compiles q (and everything it depends on) exactly
// once, returning the cached result on subsequent calls. An onStack state
// re-encountered indicates a base-type cycle, which is rejected.
func (c *compilation) compileEntityType(q ast.QualifiedName) (*ir.EntityType, error) {
	if e, ok := c.out.EntityTypes[q.Key()]; ok {
		return e, nil
	}
	switch c.states[q.Key()] {
	case onStack:
		return nil, ir.Wrap(ir.ErrAmbiguousHierarchy, q)
	case done:
		// Compiled but filtered out of the map (shouldn't happen since we
		// only mark done after inserting); treat as not-yet-found.
	}
	c.states[q.Key()] = onStack
	defer func() { c.states[q.Key()] = done }()

	ast_, ok := c.idx.FindEntityType(q)
	if !ok {
		return nil, ir.Wrap(ir.ErrEntityTypeNotFound, q)
	}

	var flat ir.EntityType
	flat.Name = q
	flat.Base = ast_.Base
	flat.Doc = extractDoc(ast_.Annotations)

	if ast_.Base != nil {
		base, err := c.compileEntityType(*ast_.Base)
		if err != nil {
			return nil, err
		}
		flat.Fields = append(flat.Fields, base.Fields...)
		flat.Navs = append(flat.Navs, base.Navs...)
		flat.Key = base.Key
	}

	if ast_.Key != nil {
		flat.Key = ast_.Key.PropertyRefs
		flat.OwnKey = ast_.Key.PropertyRefs
	}

	for _, p := range ast_.Properties {
		t, err := c.resolveType(p.Type)
		if err != nil {
			return nil, err
		}
		f := ir.Field{Name: p.Name, Type: t, Nullable: p.Nullable, Doc: extractDoc(p.Annotations)}
		extractRedfishFlags(&f, p.Annotations)
		flat.Fields = append(flat.Fields, f)
		flat.OwnFields = append(flat.OwnFields, f)
	}
	for _, np := range ast_.NavProps {
		nf, err := c.resolveNav(np)
		if err != nil {
			return nil, err
		}
		flat.Navs = append(flat.Navs, nf)
		flat.OwnNavs = append(flat.OwnNavs, nf)
	}

	c.out.EntityTypes[q.Key()] = &flat
	return &flat, nil
}

func (c *compilation) compileComplexType(q ast.QualifiedName) (*ir.ComplexType, error) {
	if ct, ok := c.out.ComplexTypes[q.Key()]; ok {
		return ct, nil
	}
	if c.states[q.Key()] == onStack {
		return nil, ir.Wrap(ir.ErrAmbiguousHierarchy, q)
	}
	c.states[q.Key()] = onStack
	defer func() { c.states[q.Key()] = done }()

	ast_, ok := c.idx.FindComplexType(q)
	if !ok {
		return nil, ir.Wrap(ir.ErrTypeNotFound, q)
	}
	var flat ir.ComplexType
	flat.Name = q
	flat.Base = ast_.Base
	flat.Doc = extractDoc(ast_.Annotations)
	if ast_.Base != nil {
		base, err := c.compileComplexType(*ast_.Base)
		if err != nil {
			return nil, err
		}
		flat.Fields = append(flat.Fields, base.Fields...)
		flat.Navs = append(flat.Navs, base.Navs...)
	}
	for _, p := range ast_.Properties {
		t, err := c.resolveType(p.Type)
		if err != nil {
			return nil, err
		}
		f := ir.Field{Name: p.Name, Type: t, Nullable: p.Nullable, Doc: extractDoc(p.Annotations)}
		extractRedfishFlags(&f, p.Annotations)
		flat.Fields = append(flat.Fields, f)
		flat.OwnFields = append(flat.OwnFields, f)
	}
	for _, np := range ast_.NavProps {
		nf, err := c.resolveNav(np)
		if err != nil {
			return nil, err
		}
		flat.Navs = append(flat.Navs, nf)
		flat.OwnNavs = append(flat.OwnNavs, nf)
	}
	c.out.ComplexTypes[q.Key()] = &flat
	return &flat, nil
}

func (c *compilation) compileSimpleType(q ast.QualifiedName) (*ir.SimpleType, error) {
	if st, ok := c.out.SimpleTypes[q.Key()]; ok {
		return st, nil
	}
	if enum, ok := c.idx.FindEnumType(q); ok {
		if len(enum.Members) == 0 {
			return nil, ir.Wrap(ir.ErrEmptyEnum, q)
		}
		st := &ir.SimpleType{Name: q, IsEnum: true, IsFlags: enum.IsFlags, Underlying: enumPrimitive(enum.Underlying), Doc: extractDoc(enum.Annotations)}
		for _, m := range enum.Members {
			st.Members = append(st.Members, ir.EnumMember{Name: m.Name, Value: m.Value})
		}
		c.out.SimpleTypes[q.Key()] = st
		return st, nil
	}
	if td, ok := c.idx.FindTypeDefinition(q); ok {
		prim, ok := edmPrimitive(td.Underlying)
		if !ok {
			return nil, ir.Wrap(ir.ErrTypeDefinitionOfNotPrimitiveType, q)
		}
		st := &ir.SimpleType{Name: q, Underlying: prim, Doc: extractDoc(td.Annotations)}
		c.out.SimpleTypes[q.Key()] = st
		return st, nil
	}
	return nil, ir.Wrap(ir.ErrTypeNotFound, q)
}

// resolveType lowers an ast.TypeRef to an ir.Type, compiling whatever
// named declaration it points to on demand.
func (c *compilation) resolveType(ref ast.TypeRef) (ir.Type, error) {
	if ref.IsCollection() {
		inner, err := c.resolveType(*ref.Collection)
		if err != nil {
			return ir.Type{}, err
		}
		return ir.Type{Collection: &inner}, nil
	}
	if ref.IsPrimitive() {
		prim, _ := edmPrimitive(ref.Named)
		return ir.Type{Primitive: &prim}, nil
	}
	if _, ok := c.idx.FindEntityType(ref.Named); ok {
		if _, err := c.compileEntityType(ref.Named); err != nil {
			return ir.Type{}, err
		}
		return ir.Type{Named: ref.Named}, nil
	}
	if _, ok := c.idx.FindComplexType(ref.Named); ok {
		if _, err := c.compileComplexType(ref.Named); err != nil {
			return ir.Type{}, err
		}
		return ir.Type{Named: ref.Named}, nil
	}
	if _, err := c.compileSimpleType(ref.Named); err != nil {
		return ir.Type{}, err
	}
	return ir.Type{Named: ref.Named}, nil
}

// resolveNav lowers a navigation property. Unlike base-type resolution, a
// navigation target that is already mid-compilation (the common case of
// two entity types holding mutual navigation properties) is not an error:
// the target completes on its own call frame, so resolveNav only forces
// compilation for targets not yet touched at all.
func (c *compilation) resolveNav(np ast.NavigationProperty) (ir.NavField, error) {
	target := np.Type
	collection := target.IsCollection()
	if collection {
		target = *target.Collection
	}
	if c.states[target.Named.Key()] != onStack {
		if _, err := c.compileEntityType(target.Named); err != nil {
			return ir.NavField{}, err
		}
	}
	return ir.NavField{Name: np.Name, Target: target.Named, Collection: collection, Nullable: np.Nullable}, nil
}

func enumPrimitive(k ast.EnumUnderlyingKind) ir.PrimitiveKind {
	switch k {
	case ast.EnumInt8, ast.EnumInt16, ast.EnumInt32:
		return ir.Int32
	case ast.EnumInt64:
		return ir.Int64
	default:
		return ir.Int32
	}
}

var edmPrimitives = map[string]ir.PrimitiveKind{
	"Edm.String":         ir.String,
	"Edm.Boolean":        ir.Boolean,
	"Edm.Int32":          ir.Int32,
	"Edm.Int64":          ir.Int64,
	"Edm.Double":         ir.Double,
	"Edm.Decimal":        ir.Decimal,
	"Edm.DateTimeOffset": ir.DateTimeOffset,
	"Edm.Duration":       ir.Duration,
	"Edm.Guid":           ir.Guid,
	"Edm.Binary":         ir.Binary,
}

func edmPrimitive(q ast.QualifiedName) (ir.PrimitiveKind, bool) {
	p, ok := edmPrimitives[q.String()]
	return p, ok
}
