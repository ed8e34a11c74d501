// Command csdlc compiles CSDL/EDM schema documents into generated Go
// model code: it parses one or more CSDL documents, compiles a
// demand-driven IR starting from a set of root entity types, optimizes
// the IR, and generates Go source from the result.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/csdlc/csdlc/ast"
	"github.com/csdlc/csdlc/cmd/csdlc/cli"
	"github.com/csdlc/csdlc/generator"
	"github.com/csdlc/csdlc/ir"
)

// Exit codes, per spec.md §6.1's exit-code table. 0 is success; every
// other phase gets its own distinct code so calling scripts can
// distinguish failure modes without parsing stderr.
const (
	exitParameterError = 1
	exitIOError        = 2
	exitValidationError = 3
	exitCompilationError = 4
	exitGenerationError = 5
	exitWriteError      = 6
)

func main() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ast.Chain(err))
		os.Exit(exitCodeFor(err))
	}
}

// exitCodeFor maps an error's kind to the driver's exit-code table
// (spec.md §6.1): 0 only on success, distinct non-zero codes for each
// phase so scripts can distinguish a parameter error from a validation
// failure from a write failure.
func exitCodeFor(err error) int {
	switch {
	case cli.IsParameterError(err):
		return exitParameterError
	case ast.IsValidationError(err):
		return exitValidationError
	case ir.IsAmbiguousHierarchy(err), ir.IsTypeNotFound(err), errors.As(err, new(*ir.Error)):
		return exitCompilationError
	case generator.IsEmitError(err):
		return exitWriteError
	case generator.IsConfigError(err):
		return exitGenerationError
	default:
		return exitIOError
	}
}
