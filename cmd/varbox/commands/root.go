// SPDX-License-Identifier: MIT

// Package commands holds the cobra command tree of the varbox binary.
package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/varbox/basis"
	"github.com/katalvlaran/varbox/eigen"
	"github.com/katalvlaran/varbox/logger"
	"github.com/katalvlaran/varbox/matrix"
)

// Process exit codes.
const (
	ExitOK                    = 0
	ExitFailure               = 1
	ExitInvalidParameter      = 2
	ExitDimensionMismatch     = 3
	ExitDiagonalizationFailed = 4
)

// DefaultConfigFile is picked up from the working directory when --config
// is not given.
const DefaultConfigFile = "varbox.toml"

// NewRootCmd builds the command tree writing results to out.
func NewRootCmd(out io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:   "varbox",
		Short: "Variational particle-in-a-box solver",
		Long: `varbox approximates the bound states of a particle in a box of length L
with the linear potential V(x) = b·x. The Hamiltonian is built analytically
in the basis of the first N box eigenfunctions and diagonalized.

Configuration sources (lowest to highest precedence):
  1. Defaults
  2. TOML file (--config, or ./varbox.toml when present)
  3. Environment variables (VARBOX_* prefix)
  4. Command line flags

Examples:
  varbox solve                       # defaults: N=10, L=1, m=1, b=1
  varbox solve -n 30 -b 50 --states 4
  varbox solve --print-arrays -n 4
  varbox solve --plot density.png
  varbox config init                 # write ./varbox.toml`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			verbosity, _ := cmd.Flags().GetCount("verbose")
			if err := logger.Initialize(false, verbosity); err != nil {
				return errors.Wrap(err, "failed to initialize logger")
			}
			return nil
		},
	}
	root.SetOut(out)

	root.PersistentFlags().String("config", "", "TOML config file (default ./"+DefaultConfigFile+" if present)")
	root.PersistentFlags().CountP("verbose", "v", "Increase log verbosity (-v info, -vv debug)")

	root.AddCommand(newSolveCmd())
	root.AddCommand(newConfigCmd())
	root.AddCommand(newVersionCmd())

	return root
}

// Execute runs the command tree with args and returns the process exit code.
// Errors and their hints go to errOut.
func Execute(args []string, out, errOut io.Writer) int {
	root := NewRootCmd(out)
	root.SetErr(errOut)
	root.SetArgs(args)

	err := root.Execute()
	logger.Cleanup()
	if err == nil {
		return ExitOK
	}
	fmt.Fprintf(errOut, "Error: %v\n", err)
	if hint := errors.FlattenHints(err); hint != "" {
		fmt.Fprintf(errOut, "Hint: %s\n", hint)
	}

	return ExitCode(err)
}

// ExitCode maps an error to the process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, basis.ErrInvalidParameter), errors.Is(err, eigen.ErrUnknownSolver):
		return ExitInvalidParameter
	case errors.Is(err, matrix.ErrDimensionMismatch):
		return ExitDimensionMismatch
	case errors.Is(err, eigen.ErrDiagonalizationFailed):
		return ExitDiagonalizationFailed
	default:
		return ExitFailure
	}
}

// configPath resolves --config, falling back to DefaultConfigFile.
func configPath(cmd *cobra.Command) string {
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		return path
	}
	if _, err := os.Stat(DefaultConfigFile); err == nil {
		return DefaultConfigFile
	}

	return ""
}
