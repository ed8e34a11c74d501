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

// newCompileCmd builds the `compile` subcommand: the full pipeline for a
// standard schema bundle.
//
//	compile --root <QName> [--include-root <pattern>...] [--pattern <pattern>...] --output <path> <csdl-file>...
func newCompileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compile <csdl-file>...",
		Short: "Compile a standard schema bundle into generated Go model code",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runCompile,
	}
	cmd.Flags().String("root", "", "qualified name of the root entity type")
	cmd.Flags().StringArray("include-root", nil, "patterns selecting additional root entity types")
	cmd.Flags().StringArray("pattern", nil, "restrictive entity-type selection patterns")
	cmd.Flags().String("output", "", "output directory for generated Go source")
	cmd.Flags().String("package", "github.com/example/model", "root Go import path for generated packages")
	return cmd
}

func runCompile(cmd *cobra.Command, args []string) error {
	root, err := requireFlag(cmd, "root")
	if err != nil {
		return err
	}
	output, err := requireFlag(cmd, "output")
	if err != nil {
		return err
	}
	includeRoots, _ := cmd.Flags().GetStringArray("include-root")
	patterns, _ := cmd.Flags().GetStringArray("pattern")
	pkg, _ := cmd.Flags().GetString("package")

	ctx := context.Background()
	bundle, err := index.LoadFiles(ctx, args, 4)
	if err != nil {
		return err
	}
	idx, err := index.Build(bundle)
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

	roots := []ast.QualifiedName{ast.ParseQualifiedName(root)}
	for _, r := range includeRoots {
		p, err := selection.Parse(r)
		if err != nil {
			return err
		}
		for _, q := range idx.EntityTypes() {
			if p.Match(q) {
				roots = append(roots, q)
			}
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
