// SPDX-License-Identifier: MIT

// Command varbox solves a particle in a box with a linear potential by
// diagonalizing the Hamiltonian in the box eigenfunction basis.
package main

import (
	"os"

	"github.com/katalvlaran/varbox/cmd/varbox/commands"
)

func main() {
	os.Exit(commands.Execute(os.Args[1:], os.Stdout, os.Stderr))
}
