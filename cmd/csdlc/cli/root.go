// Package cli wires csdlc's cobra command tree: parse, compile, and
// compile-oem, matching the flag surface spec.md §6.1 names.
package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

// ParameterError reports a missing or malformed required flag, the
// driver's "parameter needed" exit-code class.
type ParameterError struct{ Msg string }

func (e *ParameterError) Error() string { return "parameter: " + e.Msg }

// IsParameterError reports whether err is (or wraps) a ParameterError.
func IsParameterError(err error) bool {
	var e *ParameterError
	return errors.As(err, &e)
}

func requireFlag(cmd *cobra.Command, name string) (string, error) {
	v, err := cmd.Flags().GetString(name)
	if err != nil || v == "" {
		return "", &ParameterError{Msg: fmt.Sprintf("--%s is required", name)}
	}
	return v, nil
}

// Execute builds and runs the root command.
func Execute() error {
	root := &cobra.Command{
		Use:   "csdlc",
		Short: "Compile CSDL/EDM schema documents into generated Go model code",
	}
	root.AddCommand(newParseCmd())
	root.AddCommand(newCompileCmd())
	root.AddCommand(newCompileOEMCmd())
	return root.Execute()
}
