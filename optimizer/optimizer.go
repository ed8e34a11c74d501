// Package optimizer implements the fixed IR-to-IR optimization pipeline
// described in spec.md §4.5: five passes, run in a fixed order, each
// producing a new Compiled IR plus a replacement map that every later pass
// (and the generator) must honor uniformly at every reference site.
package optimizer

import (
	"github.com/csdlc/csdlc/ast"
	"github.com/csdlc/csdlc/ir"
)

// Replacements maps a qualified name's Key() to the qualified name it was
// folded into. A name absent from the map is unaffected.
type Replacements map[string]ast.QualifiedName

// Pass is one optimization step: given the current IR, it returns a
// rewritten IR plus the replacements it performed.
type Pass func(*ir.Compiled) (*ir.Compiled, Replacements)

// Pipeline is the fixed five-pass sequence spec.md §4.5 names. Order
// matters: complex-type pruning must precede entity-type pruning (an
// entity type's fields may reference a complex type only just emptied),
// and namespace pruning runs last since it depends on the final occupied
// qualified-name set.
var Pipeline = []Pass{
	RemoveEmptyComplexTypes,
	RemoveEmptyEntityTypes,
	PruneComplexTypeInheritance,
	PruneEntityTypeInheritance,
	PruneNamespaces,
}

// Run applies every pass in Pipeline in order, threading the IR through
// each and accumulating every replacement performed (later passes see
// already-replaced names, so the accumulated map composes front-to-back).
func Run(in *ir.Compiled) (*ir.Compiled, Replacements) {
	cur := in
	all := Replacements{}
	for _, pass := range Pipeline {
		next, rep := pass(cur)
		for k, v := range rep {
			all[k] = v
		}
		cur = next
	}
	return cur, all
}

// applyToType rewrites an ir.Type through rep, following Collection
// wrapping and leaving primitives untouched.
func applyToType(t ir.Type, rep Replacements) ir.Type {
	if t.Collection != nil {
		inner := applyToType(*t.Collection, rep)
		return ir.Type{Collection: &inner}
	}
	if t.Primitive != nil {
		return t
	}
	if to, ok := rep[t.Named.Key()]; ok {
		return ir.Type{Named: to}
	}
	return t
}

// resolve follows a chain of replacements to its final name (a name
// replaced by a name that was itself later replaced), so every reference
// site lands on the pipeline's final surviving qualified name.
func resolve(q ast.QualifiedName, rep Replacements) ast.QualifiedName {
	seen := map[string]bool{}
	for {
		next, ok := rep[q.Key()]
		if !ok || seen[next.Key()] {
			return q
		}
		seen[q.Key()] = true
		q = next
	}
}
