// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
// All kernels return these sentinels (optionally wrapped with an operation tag)
// and tests check them via errors.Is. User-triggered conditions never panic.

package matrix

import (
	"errors"
	"fmt"
)

// NOTE ON NAMING & PREFIXING
// --------------------------
// Every message is prefixed with "matrix: ..." so it can be grepped in logs.
// Wrap with matrixErrorf(op, ErrX) at the kernel boundary; callers still use
// errors.Is to match.
//
// ERROR PRIORITY (enforced in tests):
// nil -> shape/dimension -> NaN/Inf -> symmetry -> convergence.

var (
	// ErrInvalidDimensions indicates that requested matrix dimensions are non-positive.
	ErrInvalidDimensions = errors.New("matrix: dimensions must be > 0")

	// ErrOutOfRange indicates that an index (row or column) is outside valid bounds.
	// Public indexers (At/Set) return this, never panic.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates incompatible dimensions between operands,
	// e.g. Add of different shapes, Mul where a.Cols != b.Rows, or a
	// non-square input to a square-only kernel.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrAsymmetry signals that a matrix expected to be symmetric violated symmetry
	// within the given tolerance.
	ErrAsymmetry = errors.New("matrix: matrix is not symmetric within eps")

	// ErrNaNInf signals a NaN or ±Inf value where finite values are required.
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")

	// ErrNilMatrix indicates that a nil Matrix (receiver or argument) was used.
	ErrNilMatrix = errors.New("matrix: nil receiver")

	// ErrMatrixEigenFailed indicates that the Jacobi routine failed to converge
	// under the given tolerance/rotation budget.
	ErrMatrixEigenFailed = errors.New("matrix: eigen decomposition failed")
)

// ConvergenceError reports a Jacobi run that hit its rotation budget with
// off-diagonal elements still above tolerance. It matches ErrMatrixEigenFailed.
type ConvergenceError struct {
	Unconverged int // strict upper-triangle entries with |a| >= tol
	Rotations   int // rotations applied before giving up
}

// Error implements error.
func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("%s: %d off-diagonal elements above tolerance after %d rotations",
		ErrMatrixEigenFailed.Error(), e.Unconverged, e.Rotations)
}

// Unwrap exposes the sentinel for errors.Is.
func (e *ConvergenceError) Unwrap() error { return ErrMatrixEigenFailed }
