// SPDX-License-Identifier: MIT

package eigen

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/varbox/matrix"
)

const (
	jacobiRelTol      = 1e-13 // off-diagonal threshold relative to max(1, max|H|)
	jacobiRotationsN2 = 100   // rotation budget per n² elements
)

// Jacobi diagonalizes with the matrix package's classical Jacobi rotations.
// Convergence is judged internally: off-diagonals below 1e-13·max(1, max|H|)
// within 100·n²+100 rotations. Like LAPACK, it exposes no tolerance knobs.
type Jacobi struct {
	relTol       float64 // <=0 means jacobiRelTol
	maxRotations int     // <=0 means jacobiRotationsN2·n² + 100
}

// Name implements Solver.
func (Jacobi) Name() string { return NameJacobi }

// Diagonalize implements Solver. The lower triangle of h is mirrored into a
// full symmetric copy before rotating, so the upper triangle is never read.
//
// Errors:
//   - matrix.ErrNilMatrix / matrix.ErrDimensionMismatch for bad shapes.
//   - *DiagonalizationError{Code: CodeIllegalMatrix} for NaN/±Inf input.
//   - *DiagonalizationError{Code: k} when k off-diagonal elements are still
//     above tolerance once the rotation budget is spent.
func (j Jacobi) Diagonalize(h matrix.Matrix) (*Spectrum, error) {
	n, err := checkInput(NameJacobi, h)
	if err != nil {
		return nil, err
	}
	data, err := lowerSymmetric(h, n)
	if err != nil {
		return nil, fmt.Errorf("Diagonalize: %w", err)
	}
	a, err := matrix.NewDenseFrom(n, n, data)
	if err != nil {
		return nil, fmt.Errorf("Diagonalize: %w", err)
	}

	relTol := j.relTol
	if relTol <= 0 {
		relTol = jacobiRelTol
	}
	tol := relTol * math.Max(1, matrix.MaxAbs(a))
	rotations := j.maxRotations
	if rotations <= 0 {
		rotations = jacobiRotationsN2*n*n + 100
	}

	values, q, err := matrix.Eigen(a, tol, rotations)
	if err != nil {
		var ce *matrix.ConvergenceError
		if errors.As(err, &ce) {
			return nil, &DiagonalizationError{Solver: NameJacobi, Code: ce.Unconverged, Err: err}
		}

		return nil, fmt.Errorf("Diagonalize: %w", err)
	}

	return newSpectrum(NameJacobi, values, q.RawData(), n)
}
