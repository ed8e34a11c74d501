package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/csdlc/csdlc/ast"
	"github.com/csdlc/csdlc/compiler"
	"github.com/csdlc/csdlc/generator"
	"github.com/csdlc/csdlc/index"
	"github.com/csdlc/csdlc/optimizer"
	"github.com/csdlc/csdlc/selection"
)

// newCompileOEMCmd builds the `compile-oem` subcommand: compile a vendor
// extension bundle against a standard bundle it resolves references
// against. Root CSDLs supply the entity types to include in the output;
// resolve CSDLs supply base and referenced types only — their own entity
// types are never emitted as roots.
//
//	compile-oem --root-csdl <file>... --resolve-csdl <file>... [--pattern <pattern>...] --output <path>
func newCompileOEMCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compile-oem",
		Short: "Compile a vendor extension bundle against a standard bundle",
		Args:  cobra.NoArgs,
		RunE:  runCompileOEM,
	}
	cmd.Flags().StringArray("root-csdl", nil, "vendor CSDL files whose entity types become roots")
	cmd.Flags().StringArray("resolve-csdl", nil, "standard CSDL files providing base/referenced types only")
	cmd.Flags().StringArray("pattern", nil, "restrictive entity-type selection patterns")
	cmd.Flags().String("output", "", "output directory for generated Go source")
	cmd.Flags().String("package", "github.com/example/model", "root Go import path for generated packages")
	return cmd
}

func runCompileOEM(cmd *cobra.Command, args []string) error {
	rootFiles, _ := cmd.Flags().GetStringArray("root-csdl")
	if len(rootFiles) == 0 {
		return &ParameterError{Msg: "--root-csdl is required"}
	}
	resolveFiles, _ := cmd.Flags().GetStringArray("resolve-csdl")
	output, err := requireFlag(cmd, "output")
	if err != nil {
		return err
	}
	patterns, _ := cmd.Flags().GetStringArray("pattern")
	pkg, _ := cmd.Flags().GetString("package")

	ctx := context.Background()

	rootBundle, err := index.LoadFiles(ctx, rootFiles, 4)
	if err != nil {
		return err
	}
	roots := entityTypeRoots(rootBundle)
	if len(roots) == 0 {
		return &ParameterError{Msg: "--root-csdl files declare no entity types"}
	}

	resolveDocs, err := loadResolveDocs(ctx, resolveFiles)
	if err != nil {
		return err
	}
	all := &index.Bundle{Documents: append(append([]*ast.EdmxDocument{}, rootBundle.Documents...), resolveDocs...)}
	idx, err := index.Build(all)
	if err != nil {
		return err
	}

	var filter *selection.EntityTypeFilter
	if len(patterns) > 0 {
		filter, err = selection.New(selection.Restrictive, patterns)
		if err != nil {
			return err
		}
	}

	compiled, err := compiler.Compile(idx, roots, filter, compiler.Config{IncludeActions: true})
	if err != nil {
		return err
	}

	optimized, _ := optimizer.Run(compiled)

	cfg, err := generator.NewConfig(generator.WithPackage(pkg), generator.WithOutDir(output))
	if err != nil {
		return err
	}
	return generator.Generate(ctx, cfg, optimized)
}

// loadResolveDocs loads the resolve-csdl file set. An empty set is valid —
// a vendor bundle that is entirely self-contained doesn't need one.
func loadResolveDocs(ctx context.Context, files []string) ([]*ast.EdmxDocument, error) {
	if len(files) == 0 {
		return nil, nil
	}
	b, err := index.LoadFiles(ctx, files, 4)
	if err != nil {
		return nil, err
	}
	return b.Documents, nil
}

// entityTypeRoots collects every entity type declared directly in a
// bundle's documents, in document and declaration order.
func entityTypeRoots(b *index.Bundle) []ast.QualifiedName {
	var out []ast.QualifiedName
	for _, doc := range b.Documents {
		if doc.DataServices == nil {
			continue
		}
		for _, s := range doc.DataServices.Schemas {
			for _, nd := range s.Declarations {
				if nd.Declaration.EntityType != nil {
					out = append(out, ast.NewQualifiedName(s.Namespace, nd.Name))
				}
			}
		}
	}
	return out
}
