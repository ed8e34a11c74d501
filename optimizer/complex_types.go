package optimizer

import "github.com/csdlc/csdlc/ir"

// RemoveEmptyComplexTypes drops complex types with no fields and no
// navigation properties at all (an empty value type contributes nothing
// to the generated model). Since the compiler's flattening pass already
// folds every base's fields into Fields/Navs, an empty complex type's
// entire base chain was empty too — there is no "nearest non-empty
// ancestor" to redirect references to. Any other type still referencing
// the dropped type is left with a dangling Named reference: spec.md §9's
// first Open Question resolves this as intentional, not a bug — the
// optimizer does not invent a fallback type, and the generator emits the
// dangling reference as written; no invariant check reports it.
func RemoveEmptyComplexTypes(in *ir.Compiled) (*ir.Compiled, Replacements) {
	rep := Replacements{}
	empty := map[string]bool{}
	for k, ct := range in.ComplexTypes {
		if len(ct.Fields) == 0 && len(ct.Navs) == 0 {
			empty[k] = true
		}
	}
	out := ir.New()
	for k, v := range in.SimpleTypes {
		out.SimpleTypes[k] = v
	}
	for k, ct := range in.ComplexTypes {
		if empty[k] {
			continue
		}
		out.ComplexTypes[k] = ct
	}
	for k, e := range in.EntityTypes {
		out.EntityTypes[k] = e
	}
	for k, a := range in.Actions {
		out.Actions[k] = a
	}
	out.RootSingletons = in.RootSingletons

	// An empty complex type has no fields, so it cannot itself be a
	// replacement target for anything else; nearest-ancestor lookup is
	// not needed here because flattening already folded all base fields
	// in during compilation — an empty complex type has no base
	// contributing fields either, by construction. Empty entries were
	// already excluded from out.ComplexTypes by the loop above.
	rewriteTypeRefs(out, rep)
	return out, rep
}

func rewriteTypeRefs(c *ir.Compiled, rep Replacements) {
	if len(rep) == 0 {
		return
	}
	for _, ct := range c.ComplexTypes {
		for i := range ct.Fields {
			ct.Fields[i].Type = applyToType(ct.Fields[i].Type, rep)
		}
	}
	for _, et := range c.EntityTypes {
		for i := range et.Fields {
			et.Fields[i].Type = applyToType(et.Fields[i].Type, rep)
		}
	}
	for _, a := range c.Actions {
		for i := range a.Parameters {
			a.Parameters[i].Type = applyToType(a.Parameters[i].Type, rep)
		}
		if a.ReturnType != nil {
			t := applyToType(*a.ReturnType, rep)
			a.ReturnType = &t
		}
	}
}
