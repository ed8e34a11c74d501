package optimizer

import "github.com/csdlc/csdlc/ir"

// RemoveEmptyEntityTypes drops entity types with no fields, no navigation
// properties, and no key in their flattened view, so inherited members
// count (a marker type that exists purely to be a base in the schema
// author's original hierarchy is the typical case). Navigation properties
// targeting a dropped type and root singletons typed as one are removed,
// not rewritten; a structural field or action parameter typed as a dropped
// entity type is left unchanged.
func RemoveEmptyEntityTypes(in *ir.Compiled) (*ir.Compiled, Replacements) {
	empty := map[string]bool{}
	for k, e := range in.EntityTypes {
		if len(e.Fields) == 0 && len(e.Navs) == 0 && len(e.Key) == 0 {
			empty[k] = true
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
		if empty[k] {
			continue
		}
		out.EntityTypes[k] = e
	}
	for k, a := range in.Actions {
		out.Actions[k] = a
	}
	for _, rs := range in.RootSingletons {
		if !empty[rs.Type.Key()] {
			out.RootSingletons = append(out.RootSingletons, rs)
		}
	}

	for _, e := range out.EntityTypes {
		keep := e.Navs[:0]
		for _, n := range e.Navs {
			if empty[n.Target.Key()] {
				continue
			}
			keep = append(keep, n)
		}
		e.Navs = keep
	}
	return out, Replacements{}
}
