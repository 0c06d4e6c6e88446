// SPDX-License-Identifier: MIT

// Package basis builds the kinetic and potential energy matrices of a
// particle in a one-dimensional box of length L with an added linear
// potential V(x) = b·x, expressed in the basis of the first N exact
// box eigenfunctions
//
//	ψ_n(x) = sqrt(2/L)·sin(nπx/L),  n = 1..N,  0 ≤ x ≤ L.
//
// Units are atomic-style with ħ = 1. Row/column i of every matrix holds
// quantum number n = i+1.
package basis

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/varbox/matrix"
)

// ErrInvalidParameter is returned when N < 1, L ≤ 0, mass ≤ 0, or any
// real parameter is NaN/±Inf.
var ErrInvalidParameter = errors.New("basis: invalid parameter")

// Params describes one calculation. It is immutable for the duration of a run.
type Params struct {
	N      int     // basis size (number of box eigenfunctions)
	Length float64 // box length L
	Mass   float64 // particle mass
	Slope  float64 // potential slope b in V(x) = b·x
}

// Validate checks every precondition of Kinetic and Potential.
func (p Params) Validate() error {
	if err := checkSize(p.N); err != nil {
		return err
	}
	if err := checkLength(p.Length); err != nil {
		return err
	}
	if err := checkMass(p.Mass); err != nil {
		return err
	}

	return checkSlope(p.Slope)
}

// Kinetic is Kinetic(p.N, p.Length, p.Mass).
func (p Params) Kinetic() (*matrix.Dense, error) { return Kinetic(p.N, p.Length, p.Mass) }

// Potential is Potential(p.N, p.Length, p.Slope).
func (p Params) Potential() (*matrix.Dense, error) { return Potential(p.N, p.Length, p.Slope) }

// String renders the parameters for logs.
func (p Params) String() string {
	return fmt.Sprintf("N=%d L=%g mass=%g b=%g", p.N, p.Length, p.Mass, p.Slope)
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

func checkSize(n int) error {
	if n < 1 {
		return fmt.Errorf("%w: basis size N=%d, want N >= 1", ErrInvalidParameter, n)
	}

	return nil
}

func checkLength(length float64) error {
	if !finite(length) || length <= 0 {
		return fmt.Errorf("%w: box length L=%g, want finite L > 0", ErrInvalidParameter, length)
	}

	return nil
}

func checkMass(mass float64) error {
	if !finite(mass) || mass <= 0 {
		return fmt.Errorf("%w: mass=%g, want finite mass > 0", ErrInvalidParameter, mass)
	}

	return nil
}

func checkSlope(slope float64) error {
	if !finite(slope) {
		return fmt.Errorf("%w: slope b=%g, want a finite value", ErrInvalidParameter, slope)
	}

	return nil
}
