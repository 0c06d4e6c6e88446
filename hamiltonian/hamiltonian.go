// SPDX-License-Identifier: MIT

// Package hamiltonian assembles H = T + V from the basis matrices.
//
// Both inputs are symmetric by construction, so H is symmetric as well;
// no symmetrization pass is needed before diagonalization.
package hamiltonian

import (
	"fmt"

	"github.com/katalvlaran/varbox/basis"
	"github.com/katalvlaran/varbox/matrix"
)

// Set groups the three matrices of one calculation.
type Set struct {
	Kinetic     *matrix.Dense
	Potential   *matrix.Dense
	Hamiltonian *matrix.Dense
}

// Assemble returns H[i,j] = T[i,j] + V[i,j].
//
// Errors:
//   - matrix.ErrNilMatrix when either operand is nil.
//   - matrix.ErrDimensionMismatch when the shapes differ or are not square.
func Assemble(T, V matrix.Matrix) (*matrix.Dense, error) {
	if err := matrix.ValidateSquare(T); err != nil {
		return nil, fmt.Errorf("Assemble: kinetic: %w", err)
	}
	if err := matrix.ValidateSquare(V); err != nil {
		return nil, fmt.Errorf("Assemble: potential: %w", err)
	}
	H, err := matrix.Add(T, V)
	if err != nil {
		return nil, fmt.Errorf("Assemble: %w", err)
	}

	return H, nil
}

// Build runs the kinetic, potential and assembly stages for p.
func Build(p basis.Params) (*Set, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	T, err := p.Kinetic()
	if err != nil {
		return nil, err
	}
	V, err := p.Potential()
	if err != nil {
		return nil, err
	}
	H, err := Assemble(T, V)
	if err != nil {
		return nil, err
	}

	return &Set{Kinetic: T, Potential: V, Hamiltonian: H}, nil
}
