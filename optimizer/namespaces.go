package optimizer

import (
	"sort"
	"strings"

	"github.com/csdlc/csdlc/ast"
	"github.com/csdlc/csdlc/ir"
)

// PruneNamespaces hoists every surviving declaration into the longest
// common dotted prefix of the namespaces still in use after the preceding
// passes ran, so declarations spread over several versioned namespaces
// (Org.Service.v1_0_0, Org.Service.v1_1_0, ...) land in one Go package
// instead of one package per version. When only one namespace is in use,
// or the namespaces share no leading segment, the IR is returned
// unchanged. A namespace is "in use" if at least
// one surviving declaration (simple type, complex type, entity type, or
// action) still names it.
func PruneNamespaces(in *ir.Compiled) (*ir.Compiled, Replacements) {
	used := map[string]bool{}
	for _, st := range in.SimpleTypes {
		used[st.Name.Namespace.String()] = true
	}
	for _, ct := range in.ComplexTypes {
		used[ct.Name.Namespace.String()] = true
	}
	for _, e := range in.EntityTypes {
		used[e.Name.Namespace.String()] = true
	}
	for _, a := range in.Actions {
		used[a.Name.Namespace.String()] = true
	}

	if len(used) <= 1 {
		return in, Replacements{}
	}

	prefix := commonPrefix(used)
	if prefix == "" {
		return in, Replacements{}
	}

	rewrite := func(q ast.QualifiedName) ast.QualifiedName {
		if q.Namespace.String() == prefix {
			return q
		}
		return ast.NewQualifiedName(ast.ParseNamespace(prefix), q.Name)
	}

	rep := Replacements{}
	out := ir.New()
	for k, st := range in.SimpleTypes {
		cp := *st
		cp.Name = rewrite(st.Name)
		if cp.Name.Key() != k {
			rep[k] = cp.Name
		}
		out.SimpleTypes[cp.Name.Key()] = &cp
	}
	for k, ct := range in.ComplexTypes {
		cp := *ct
		cp.Name = rewrite(ct.Name)
		if cp.Name.Key() != k {
			rep[k] = cp.Name
		}
		out.ComplexTypes[cp.Name.Key()] = &cp
	}
	for k, e := range in.EntityTypes {
		cp := *e
		cp.Name = rewrite(e.Name)
		if cp.Name.Key() != k {
			rep[k] = cp.Name
		}
		out.EntityTypes[cp.Name.Key()] = &cp
	}
	for k, a := range in.Actions {
		cp := *a
		cp.Name = rewrite(a.Name)
		if cp.Name.Key() != k {
			rep[k] = cp.Name
		}
		out.Actions[cp.Name.Key()] = &cp
	}
	for _, rs := range in.RootSingletons {
		out.RootSingletons = append(out.RootSingletons, ir.RootSingleton{Name: rs.Name, Type: rewrite(rs.Type)})
	}

	rewriteTypeRefs(out, rep)
	for _, e := range out.EntityTypes {
		for i, n := range e.Navs {
			e.Navs[i].Target = rewrite(n.Target)
		}
		if e.Base != nil {
			b := rewrite(*e.Base)
			e.Base = &b
		}
	}
	for _, ct := range out.ComplexTypes {
		for i, n := range ct.Navs {
			ct.Navs[i].Target = rewrite(n.Target)
		}
		if ct.Base != nil {
			b := rewrite(*ct.Base)
			ct.Base = &b
		}
	}
	return out, rep
}

// commonPrefix returns the longest dotted prefix shared by every
// namespace in used, or "" if they share no common segment (e.g. two
// unrelated top-level namespaces).
func commonPrefix(used map[string]bool) string {
	namespaces := make([]string, 0, len(used))
	for ns := range used {
		namespaces = append(namespaces, ns)
	}
	sort.Strings(namespaces)
	first := strings.Split(namespaces[0], ".")
	last := strings.Split(namespaces[len(namespaces)-1], ".")
	var common []string
	for i := 0; i < len(first) && i < len(last); i++ {
		if first[i] != last[i] {
			break
		}
		common = append(common, first[i])
	}
	return strings.Join(common, ".")
}
