package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/csdlc/csdlc/ast"
)

// newParseCmd builds the `parse <csdl-file>` diagnostic subcommand:
// validate and dump the AST.
func newParseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <csdl-file>",
		Short: "Validate and dump the AST of a CSDL document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			doc, err := ast.Parse(f)
			if err != nil {
				return err
			}
			for _, s := range doc.DataServices.Schemas {
				fmt.Printf("Schema %s (%d declarations)\n", s.Namespace.String(), len(s.Declarations))
				for _, d := range s.Declarations {
					fmt.Printf("  %s\n", d.Name)
				}
			}
			return nil
		},
	}
}
