// SPDX-License-Identifier: MIT

// Package eigen diagonalizes real symmetric Hamiltonians.
//
// Two backends implement Solver:
//
//	LAPACK  gonum's pure-Go LAPACK: tridiagonal reduction (Dsytrd),
//	        explicit Q (Dorgtr) and implicit QL/QR iteration (Dsteqr).
//	Jacobi  the matrix package's classical Jacobi rotations.
//
// Both read only the lower triangle of H and return a Spectrum with
// eigenvalues in non-decreasing order and orthonormal eigenvectors stored
// column-wise. A failure never comes with a partial Spectrum.
package eigen

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/katalvlaran/varbox/matrix"
)

// Sentinel errors.
var (
	// ErrDiagonalizationFailed is matched by every *DiagonalizationError.
	ErrDiagonalizationFailed = errors.New("eigen: diagonalization failed")

	// ErrUnknownSolver is returned by New for an unrecognised backend name.
	ErrUnknownSolver = errors.New("eigen: unknown solver")
)

// CodeIllegalMatrix is the diagnostic code for a matrix holding NaN/±Inf.
// It follows the LAPACK convention where −i flags the i-th argument of
// DSYEV(JOBZ, UPLO, N, A, ...) as illegal.
const CodeIllegalMatrix = -4

// DiagonalizationError carries the backend's diagnostic code.
//   - Code < 0: an input argument was illegal (see CodeIllegalMatrix).
//   - Code > 0: that many off-diagonal elements failed to converge, or
//     that many eigenvalues came out non-finite.
type DiagonalizationError struct {
	Solver string
	Code   int
	Err    error // underlying cause, may be nil
}

// Error implements error.
func (e *DiagonalizationError) Error() string {
	msg := fmt.Sprintf("%s (%s, code %d)", ErrDiagonalizationFailed.Error(), e.Solver, e.Code)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}

	return msg
}

// Is reports true for ErrDiagonalizationFailed.
func (e *DiagonalizationError) Is(target error) bool { return target == ErrDiagonalizationFailed }

// Unwrap exposes the underlying cause.
func (e *DiagonalizationError) Unwrap() error { return e.Err }

// Solver is a dense symmetric eigensolver.
type Solver interface {
	// Name returns the backend name accepted by New.
	Name() string

	// Diagonalize returns the full spectrum of the symmetric matrix h.
	// Only the lower triangle of h is read.
	Diagonalize(h matrix.Matrix) (*Spectrum, error)
}

// Backend names.
const (
	NameLAPACK = "lapack"
	NameJacobi = "jacobi"
)

// Names lists the accepted backend names.
func Names() []string { return []string{NameLAPACK, NameJacobi} }

// New returns the backend registered under name (case-insensitive).
// An empty name selects LAPACK.
func New(name string) (Solver, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", NameLAPACK:
		return LAPACK{}, nil
	case NameJacobi:
		return Jacobi{}, nil
	default:
		return nil, fmt.Errorf("%w: %q (want one of %s)", ErrUnknownSolver, name, strings.Join(Names(), ", "))
	}
}

// checkInput validates shape and finiteness of the lower triangle.
func checkInput(solver string, h matrix.Matrix) (int, error) {
	if err := matrix.ValidateSquare(h); err != nil {
		return 0, fmt.Errorf("Diagonalize: %w", err)
	}
	n := h.Rows()
	for i := 0; i < n; i++ {
		for j := 0; j <= i; j++ {
			v, err := h.At(i, j)
			if err != nil {
				return 0, fmt.Errorf("Diagonalize: %w", err)
			}
			if !finite(v) {
				return 0, &DiagonalizationError{
					Solver: solver,
					Code:   CodeIllegalMatrix,
					Err:    fmt.Errorf("H[%d,%d]=%v: %w", i, j, v, matrix.ErrNaNInf),
				}
			}
		}
	}

	return n, nil
}

// lowerSymmetric packs the lower triangle of h into a row-major n×n buffer
// and mirrors it into the upper triangle.
func lowerSymmetric(h matrix.Matrix, n int) ([]float64, error) {
	a := make([]float64, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j <= i; j++ {
			v, err := h.At(i, j)
			if err != nil {
				return nil, err
			}
			a[i*n+j], a[j*n+i] = v, v
		}
	}

	return a, nil
}

// order returns the permutation sorting values ascending; ties keep their
// original relative order.
func order(values []float64) []int {
	idx := make([]int, len(values))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return values[idx[a]] < values[idx[b]] })

	return idx
}
