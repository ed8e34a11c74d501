package optimizer

import "github.com/csdlc/csdlc/ir"

// A base type is "prunable" per spec.md §9's first Open Question iff it
// contributes nothing of its own beyond what it already inherits: zero own
// fields, zero own navigation properties, and (for entity types) no own
// key. Pruning a prunable base collapses it out of the inheritance chain:
// every type that named it as Base is rewritten to point at its base's own
// base instead, and every other reference to the pruned type is
// redirected to the nearest surviving ancestor.

// PruneComplexTypeInheritance removes prunable complex-type bases from
// every inheritance chain, recording a replacement from each pruned type
// to its nearest surviving ancestor (or itself, if it has no ancestor to
// fall back to and is therefore not actually prunable in isolation).
func PruneComplexTypeInheritance(in *ir.Compiled) (*ir.Compiled, Replacements) {
	rep := Replacements{}
	survivor := make(map[string]string) // key -> surviving key it resolves to

	for k, ct := range in.ComplexTypes {
		survivor[k] = k
		if len(ct.OwnFields) == 0 && len(ct.OwnNavs) == 0 && ct.Base != nil {
			survivor[k] = ct.Base.Key()
		}
	}
	// Resolve transitively: a chain of prunable bases collapses to the
	// first non-prunable ancestor (or the root of the chain).
	resolveChain := func(k string) string {
		seen := map[string]bool{}
		cur := k
		for {
			next, ok := survivor[cur]
			if !ok || next == cur || seen[cur] {
				return cur
			}
			seen[cur] = true
			cur = next
		}
	}

	out := ir.New()
	for k, v := range in.SimpleTypes {
		out.SimpleTypes[k] = v
	}
	for k, ct := range in.ComplexTypes {
		final := resolveChain(k)
		if final != k {
			rep[k] = in.ComplexTypes[final].Name
			continue // pruned out of the IR; callers now land on `final`
		}
		cp := *ct
		if cp.Base != nil {
			newBase := resolveChain(cp.Base.Key())
			if newBase != cp.Base.Key() {
				if target, ok := in.ComplexTypes[newBase]; ok {
					b := target.Name
					cp.Base = &b
				}
			}
		}
		out.ComplexTypes[k] = &cp
	}
	for k, e := range in.EntityTypes {
		out.EntityTypes[k] = e
	}
	for k, a := range in.Actions {
		out.Actions[k] = a
	}
	out.RootSingletons = in.RootSingletons
	rewriteTypeRefs(out, rep)
	return out, rep
}

// PruneEntityTypeInheritance is the entity-type counterpart of
// PruneComplexTypeInheritance; see that function's doc comment.
func PruneEntityTypeInheritance(in *ir.Compiled) (*ir.Compiled, Replacements) {
	rep := Replacements{}
	survivor := make(map[string]string)

	for k, e := range in.EntityTypes {
		survivor[k] = k
		if len(e.OwnFields) == 0 && len(e.OwnNavs) == 0 && len(e.OwnKey) == 0 && e.Base != nil {
			survivor[k] = e.Base.Key()
		}
	}
	resolveChain := func(k string) string {
		seen := map[string]bool{}
		cur := k
		for {
			next, ok := survivor[cur]
			if !ok || next == cur || seen[cur] {
				return cur
			}
			seen[cur] = true
			cur = next
		}
	}

	out := ir.New()
	for k, v := range in.SimpleTypes {
		out.SimpleTypes[k] = v
	}
	for k, v := range in.ComplexTypes {
		out.ComplexTypes[k] = v
	}
	for k, e := range in.EntityTypes {
		final := resolveChain(k)
		if final != k {
			rep[k] = in.EntityTypes[final].Name
			continue
		}
		cp := *e
		if cp.Base != nil {
			newBase := resolveChain(cp.Base.Key())
			if newBase != cp.Base.Key() {
				if target, ok := in.EntityTypes[newBase]; ok {
					b := target.Name
					cp.Base = &b
				}
			}
		}
		out.EntityTypes[k] = &cp
	}
	for k, a := range in.Actions {
		out.Actions[k] = a
	}
	for _, rs := range in.RootSingletons {
		if to, ok := rep[rs.Type.Key()]; ok {
			out.RootSingletons = append(out.RootSingletons, ir.RootSingleton{Name: rs.Name, Type: to})
			continue
		}
		out.RootSingletons = append(out.RootSingletons, rs)
	}

	for _, e := range out.EntityTypes {
		for i, n := range e.Navs {
			if to, ok := rep[n.Target.Key()]; ok {
				e.Navs[i].Target = to
			}
		}
		for i, n := range e.OwnNavs {
			if to, ok := rep[n.Target.Key()]; ok {
				e.OwnNavs[i].Target = to
			}
		}
	}
	rewriteTypeRefs(out, rep)
	return out, rep
}
