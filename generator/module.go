package generator

import "strings"

// Module maps CSDL namespaces onto the Go module tree: each namespace
// segment becomes a nested package directory under the configured root
// import path, mirroring spec.md §4.6's "each namespace segment becomes a
// nested module" rule.
type Module struct {
	RootImportPath string
}

// ImportPath returns the Go import path a namespace's declarations live
// under.
func (m Module) ImportPath(namespace string) string {
	if namespace == "" {
		return m.RootImportPath
	}
	segs := strings.Split(namespace, ".")
	for i, s := range segs {
		segs[i] = PackageName(s)
	}
	return m.RootImportPath + "/" + strings.Join(segs, "/")
}

// Dir returns the filesystem directory (relative to the generator's
// OutDir) a namespace's generated files are written into.
func (m Module) Dir(namespace string) string {
	segs := strings.Split(namespace, ".")
	for i, s := range segs {
		segs[i] = PackageName(s)
	}
	return strings.Join(segs, "/")
}

// PackageIdent returns the Go package identifier a namespace's files
// declare, i.e. the last segment.
func (m Module) PackageIdent(namespace string) string {
	segs := strings.Split(namespace, ".")
	return PackageName(segs[len(segs)-1])
}

// TypeName delegates to the package-level TypeName helper; Module exists
// to satisfy qualifiedNameResolver alongside ImportPath.
func (m Module) TypeName(localName string) string { return TypeName(localName) }
