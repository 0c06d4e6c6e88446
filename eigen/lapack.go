// SPDX-License-Identifier: MIT

package eigen

import (
	"fmt"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/lapack"
	"gonum.org/v1/gonum/lapack/gonum"

	"github.com/katalvlaran/varbox/matrix"
)

// LAPACK diagonalizes with gonum's LAPACK routines, the same sequence DSYEV
// runs when eigenvectors are requested:
//
//  1. Dsytrd reduces the lower triangle of A to tridiagonal form Qᵀ·A·Q.
//  2. Dorgtr overwrites A with the orthogonal Q.
//  3. Dsteqr(EVOrig) diagonalizes the tridiagonal matrix, accumulating the
//     rotations into Q, and leaves eigenvalues in ascending order.
//
// Storage is row-major with lda = n, matching gonum's convention.
type LAPACK struct{}

// Name implements Solver.
func (LAPACK) Name() string { return NameLAPACK }

// Diagonalize implements Solver.
//
// Errors:
//   - matrix.ErrNilMatrix / matrix.ErrDimensionMismatch for bad shapes.
//   - *DiagonalizationError{Code: CodeIllegalMatrix} for NaN/±Inf input.
//   - *DiagonalizationError{Code: k} when Dsteqr leaves k off-diagonal
//     elements unconverged.
func (LAPACK) Diagonalize(h matrix.Matrix) (*Spectrum, error) {
	n, err := checkInput(NameLAPACK, h)
	if err != nil {
		return nil, err
	}
	a, err := packLower(h, n)
	if err != nil {
		return nil, fmt.Errorf("Diagonalize: %w", err)
	}
	if n == 1 {
		return newSpectrum(NameLAPACK, []float64{a[0]}, []float64{1}, 1)
	}

	impl := gonum.Implementation{}
	d := make([]float64, n)
	e := make([]float64, n-1)
	tau := make([]float64, n-1)

	// Workspace queries; one buffer serves both routines.
	query := make([]float64, 1)
	impl.Dsytrd(blas.Lower, n, a, n, d, e, tau, query, -1)
	lwork := int(query[0])
	impl.Dorgtr(blas.Lower, n, a, n, tau, query, -1)
	lwork = max(lwork, int(query[0]), n-1, 1)
	work := make([]float64, lwork)

	impl.Dsytrd(blas.Lower, n, a, n, d, e, tau, work, lwork)
	impl.Dorgtr(blas.Lower, n, a, n, tau, work, lwork)
	if ok := impl.Dsteqr(lapack.EVOrig, n, d, e, a, n, make([]float64, 2*n-2)); !ok {
		return nil, &DiagonalizationError{Solver: NameLAPACK, Code: unconverged(e)}
	}

	return newSpectrum(NameLAPACK, d, a, n)
}

// packLower copies the lower triangle of h into a row-major n×n buffer.
// The strict upper triangle stays zero; Dsytrd(blas.Lower) never reads it.
func packLower(h matrix.Matrix, n int) ([]float64, error) {
	a := make([]float64, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j <= i; j++ {
			v, err := h.At(i, j)
			if err != nil {
				return nil, err
			}
			a[i*n+j] = v
		}
	}

	return a, nil
}

// unconverged counts the off-diagonal elements Dsteqr left nonzero, which
// is the INFO value LAPACK reports on failure. At least 1 is returned.
func unconverged(e []float64) int {
	count := 0
	for _, v := range e {
		if v != 0 {
			count++
		}
	}

	return max(count, 1)
}
