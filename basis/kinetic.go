// SPDX-License-Identifier: MIT

package basis

import (
	"math"

	"github.com/katalvlaran/varbox/matrix"
)

// KineticPrefactor returns π²/(2·mass·L²), the energy of the n=1 box state.
// Inputs are not validated.
func KineticPrefactor(length, mass float64) float64 {
	return math.Pi * math.Pi / (2 * mass * length * length)
}

// ExactEnergy returns the b=0 energy E_n = (π²/(2·mass·L²))·n².
func ExactEnergy(n int, length, mass float64) float64 {
	fn := float64(n)

	return KineticPrefactor(length, mass) * fn * fn
}

// Kinetic fills the N×N kinetic energy matrix. The basis functions are
// eigenfunctions of the free box, so T is exactly diagonal:
//
//	T[i,i] = (π²/(2·mass·L²))·n²,  n = i+1.
//
// Errors: ErrInvalidParameter when N < 1, L ≤ 0 or mass ≤ 0.
func Kinetic(n int, length, mass float64) (*matrix.Dense, error) {
	if err := checkSize(n); err != nil {
		return nil, err
	}
	if err := checkLength(length); err != nil {
		return nil, err
	}
	if err := checkMass(mass); err != nil {
		return nil, err
	}

	diag := make([]float64, n)
	for i := range diag {
		diag[i] = ExactEnergy(i+1, length, mass)
	}

	T, err := matrix.NewDiagonal(diag)
	if err != nil {
		return nil, overflow("kinetic", err)
	}

	return T, nil
}
