// SPDX-License-Identifier: MIT

package basis

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/varbox/matrix"
)

// parityFactor returns cos(dπ) − 1 for integer d, evaluated exactly:
// 0 when d is even, −2 when d is odd.
func parityFactor(d int) float64 {
	if d%2 == 0 {
		return 0
	}

	return -2
}

// PotentialElement returns <ψ_ni|b·x|ψ_nj> for quantum numbers ni, nj ≥ 1.
//
//	ni == nj: b·L/2
//	ni != nj: (b·L/π²)·(cos(dπ) − 1)·(1/d² − 1/(ni+nj)²),  d = ni − nj
//
// Elements with even d are exactly zero (parity selection rule).
// Inputs are not validated.
func PotentialElement(ni, nj int, length, slope float64) float64 {
	if ni == nj {
		return slope * length / 2
	}
	d := ni - nj
	pf := parityFactor(d)
	if pf == 0 {
		return 0
	}
	fd, fs := float64(d), float64(ni+nj)

	return slope * length / (math.Pi * math.Pi) * pf * (1/(fd*fd) - 1/(fs*fs))
}

// Potential fills the dense N×N matrix of the linear potential b·x.
// Each off-diagonal value is computed once and written to both (i,j) and
// (j,i), so V is symmetric bit for bit.
//
// Errors: ErrInvalidParameter when N < 1, L ≤ 0 or b is not finite.
func Potential(n int, length, slope float64) (*matrix.Dense, error) {
	if err := checkSize(n); err != nil {
		return nil, err
	}
	if err := checkLength(length); err != nil {
		return nil, err
	}
	if err := checkSlope(slope); err != nil {
		return nil, err
	}

	V, err := matrix.NewDense(n, n)
	if err != nil {
		return nil, err
	}
	var v float64
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			v = PotentialElement(i+1, j+1, length, slope)
			if err = V.Set(i, j, v); err != nil {
				return nil, overflow("potential", err)
			}
			if err = V.Set(j, i, v); err != nil {
				return nil, overflow("potential", err)
			}
		}
	}

	return V, nil
}

// overflow maps a non-finite matrix element back onto the parameters that
// produced it; any other error is passed through.
func overflow(what string, err error) error {
	if errors.Is(err, matrix.ErrNaNInf) {
		return fmt.Errorf("%w: %s element is not finite for these parameters: %v", ErrInvalidParameter, what, err)
	}

	return err
}
