// SPDX-License-Identifier: MIT
// Package matrix provides universal operations on any Matrix implementation,
// including element-wise addition, subtraction, matrix multiplication,
// transpose, scalar scaling, norms and the Jacobi eigen-decomposition.
// All functions perform strict fail-fast validation and return clear errors
// on dimension mismatches.
//
// Notes:
//   - Every kernel allocates a fresh *Dense result; operands are never mutated.
//   - *Dense operands are read straight from the flat slice; other
//     implementations are first copied through At in fixed i→j order.

package matrix

import (
	"fmt"
	"math"
)

// NormZero is the additive identity for norm and accumulation operations.
const NormZero = 0.0

// Operation name constants for unified error wrapping.
const (
	opAdd       = "Add"
	opSub       = "Sub"
	opMul       = "Mul"
	opTranspose = "Transpose"
	opScale     = "Scale"
	opMatVec    = "MatVec"
	opDot       = "Dot"
	opAllClose  = "AllClose"
	opEigen     = "Eigen"
)

// matrixErrorf wraps err with an operation tag, preserving the original error via %w.
// Use only when err != nil.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// toDense returns m itself when it already is *Dense, otherwise a *Dense copy
// read through At. Callers must not mutate the result when m is *Dense.
func toDense(m Matrix) (*Dense, error) {
	if d, ok := m.(*Dense); ok {
		return d, nil
	}
	rows, cols := m.Rows(), m.Cols()
	out, err := NewDense(rows, cols)
	if err != nil {
		return nil, err
	}
	var v float64
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, fmt.Errorf("At(%d,%d): %w", i, j, err)
			}
			out.data[i*cols+j] = v
		}
	}

	return out, nil
}

// addSub computes elementwise out = a + sign*b for sign ∈ {+1, -1}.
//
// Implementation:
//   - Stage 1: ValidateSameShape(a, b). Allocate result Dense(rows, cols).
//   - Stage 2: flat loop over both backing buffers.
//
// Complexity:
//   - Time O(r*c), Space O(r*c) for the new result.
func addSub(a, b Matrix, sign float64, opTag string) (*Dense, error) {
	if err := ValidateSameShape(a, b); err != nil {
		return nil, matrixErrorf(opTag, err)
	}
	da, err := toDense(a)
	if err != nil {
		return nil, matrixErrorf(opTag, err)
	}
	db, err := toDense(b)
	if err != nil {
		return nil, matrixErrorf(opTag, err)
	}

	res, err := NewDense(da.r, da.c)
	if err != nil {
		return nil, matrixErrorf(opTag, err)
	}
	for idx := range res.data { // deterministic 0..n-1
		res.data[idx] = da.data[idx] + sign*db.data[idx]
	}

	return res, nil
}

// Add computes the element-wise sum C = A + B and returns a fresh Dense result.
//
// Errors:
//   - ErrNilMatrix (nil input), ErrDimensionMismatch (shape mismatch).
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func Add(a, b Matrix) (*Dense, error) { return addSub(a, b, +1, opAdd) }

// Sub computes the element-wise difference C = A − B.
// Same contract as Add.
func Sub(a, b Matrix) (*Dense, error) { return addSub(a, b, -1, opSub) }

// Mul computes the matrix product C = A × B (i→k→j loop order).
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (a.Cols != b.Rows).
//
// Complexity:
//   - Time O(r*n*c), Space O(r*c).
func Mul(a, b Matrix) (*Dense, error) {
	if err := ValidateNotNil(a); err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	if err := ValidateNotNil(b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	if a.Cols() != b.Rows() {
		return nil, matrixErrorf(opMul, ErrDimensionMismatch)
	}
	da, err := toDense(a)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	db, err := toDense(b)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}

	rows, inner, cols := da.r, da.c, db.c
	res, err := NewDense(rows, cols)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	var i, k, j int
	var aik float64
	for i = 0; i < rows; i++ {
		for k = 0; k < inner; k++ {
			aik = da.data[i*inner+k]
			if aik == 0 {
				continue // sparse rows (diagonal T) skip a full inner sweep
			}
			for j = 0; j < cols; j++ {
				res.data[i*cols+j] += aik * db.data[k*cols+j]
			}
		}
	}

	return res, nil
}

// Transpose returns mᵀ as a new Dense.
// Complexity: O(r*c).
func Transpose(m Matrix) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	dm, err := toDense(m)
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	res, err := NewDense(dm.c, dm.r)
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	for i := 0; i < dm.r; i++ {
		for j := 0; j < dm.c; j++ {
			res.data[j*dm.r+i] = dm.data[i*dm.c+j]
		}
	}

	return res, nil
}

// Scale returns alpha*m as a new Dense. A non-finite alpha is rejected with ErrNaNInf.
// Complexity: O(r*c).
func Scale(m Matrix, alpha float64) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opScale, err)
	}
	if math.IsNaN(alpha) || math.IsInf(alpha, 0) {
		return nil, matrixErrorf(opScale, ErrNaNInf)
	}
	dm, err := toDense(m)
	if err != nil {
		return nil, matrixErrorf(opScale, err)
	}
	res, err := NewDense(dm.r, dm.c)
	if err != nil {
		return nil, matrixErrorf(opScale, err)
	}
	for idx, v := range dm.data {
		res.data[idx] = alpha * v
	}

	return res, nil
}

// MatVec computes y = m·x.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (len(x) != m.Cols()).
//
// Complexity:
//   - Time O(r*c), Space O(r).
func MatVec(m Matrix, x []float64) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	if err := ValidateVecLen(x, m.Cols()); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	dm, err := toDense(m)
	if err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}

	y := make([]float64, dm.r)
	var base int
	for i := 0; i < dm.r; i++ {
		base = i * dm.c
		for j := 0; j < dm.c; j++ {
			y[i] += dm.data[base+j] * x[j]
		}
	}

	return y, nil
}

// Dot returns the standard inner product Σ x[i]*y[i].
func Dot(x, y []float64) (float64, error) {
	if err := ValidateVecLen(y, len(x)); err != nil {
		return 0, matrixErrorf(opDot, err)
	}
	sum := NormZero
	for i := range x {
		sum += x[i] * y[i]
	}

	return sum, nil
}

// Norm2 returns the Euclidean norm of x, scaled to avoid overflow.
func Norm2(x []float64) float64 {
	scale, ssq := NormZero, 1.0
	for _, v := range x {
		if v == 0 {
			continue
		}
		a := math.Abs(v)
		if scale < a {
			ssq = 1 + ssq*(scale/a)*(scale/a)
			scale = a
		} else {
			ssq += (a / scale) * (a / scale)
		}
	}

	return scale * math.Sqrt(ssq)
}

// FrobeniusNorm returns sqrt(Σ m[i,j]²). A nil matrix has norm 0.
func FrobeniusNorm(m Matrix) float64 {
	if ValidateNotNil(m) != nil {
		return NormZero
	}
	dm, err := toDense(m)
	if err != nil {
		return math.NaN()
	}

	return Norm2(dm.data)
}

// MaxAbs returns max |m[i,j]|. A nil matrix yields 0.
func MaxAbs(m Matrix) float64 {
	if ValidateNotNil(m) != nil {
		return NormZero
	}
	dm, err := toDense(m)
	if err != nil {
		return math.NaN()
	}
	maxAbs := NormZero
	for _, v := range dm.data {
		if a := math.Abs(v); a > maxAbs {
			maxAbs = a
		}
	}

	return maxAbs
}

// AllClose checks element-wise |a-b| ≤ atol + rtol*|b| for identical shapes.
// rtol and atol are taken by absolute value.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch.
func AllClose(a, b Matrix, rtol, atol float64) (bool, error) {
	if err := ValidateSameShape(a, b); err != nil {
		return false, matrixErrorf(opAllClose, err)
	}
	da, err := toDense(a)
	if err != nil {
		return false, matrixErrorf(opAllClose, err)
	}
	db, err := toDense(b)
	if err != nil {
		return false, matrixErrorf(opAllClose, err)
	}
	rtol, atol = math.Abs(rtol), math.Abs(atol)
	for idx := range da.data {
		if math.Abs(da.data[idx]-db.data[idx]) > atol+rtol*math.Abs(db.data[idx]) {
			return false, nil
		}
	}

	return true, nil
}

// Eigen computes eigenvalues and eigenvectors of a symmetric matrix via Jacobi rotations.
//
// Implementation:
//   - Stage 1: Validate symmetric square input within tol.
//   - Stage 2: Repeatedly pick (p,q) with the largest |A[p,q]| in i→j order and
//     apply a Jacobi rotation, accumulating it into Q.
//   - Stage 3: Recount off-diagonals ≥ tol; any left means non-convergence.
//
// Inputs:
//   - m: symmetric Matrix (within tol).
//   - tol: absolute convergence threshold on off-diagonal magnitude.
//   - maxIter: cap on the number of rotations.
//
// Returns:
//   - []float64: eigenvalues (diagonal of the rotated matrix, unsorted).
//   - *Dense: Q whose columns are the matching orthonormal eigenvectors.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (non-square), ErrAsymmetry,
//     *ConvergenceError (matches ErrMatrixEigenFailed).
//
// Determinism:
//   - Fixed i→j pivot search and fixed update order produce stable results.
//
// Complexity:
//   - Time O(maxIter * n^2) for the scans plus O(n) per rotation, Space O(n^2).
func Eigen(m Matrix, tol float64, maxIter int) ([]float64, *Dense, error) {
	if err := ValidateSymmetric(m, tol); err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}
	tol = math.Abs(tol)

	src, err := toDense(m)
	if err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}
	n := src.r
	a := src.Clone().(*Dense) // working copy; the input stays untouched
	q, err := NewDense(n, n)
	if err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}
	for i := 0; i < n; i++ {
		q.data[i*n+i] = 1.0
	}

	var (
		iter               int     // rotations applied
		i, j, p, q2        int     // loop and pivot indices
		maxOff, off        float64 // current max |A[p,q]|
		app, aqq, apq      float64 // pivot block
		aip, aiq, qip, qiq float64 // temporaries for A[i,p], A[i,q] and Q[i,p], Q[i,q]
		newIP, newIQ       float64 // rotated A[i,p], A[i,q]
		theta, t, c, s     float64 // rotation parameters
	)
	for iter = 0; iter < maxIter; iter++ {
		// J.1: find pivot (p,q) maximizing |A[p,q]|
		maxOff = NormZero
		for i = 0; i < n; i++ {
			for j = i + 1; j < n; j++ {
				if off = math.Abs(a.data[i*n+j]); off > maxOff {
					maxOff, p, q2 = off, i, j
				}
			}
		}
		// J.2: converged (an exactly diagonal A also ends here when tol == 0)
		if maxOff < tol || maxOff == 0 {
			break
		}

		// J.3: rotation parameters from A[p,p], A[q,q], A[p,q]
		app = a.data[p*n+p]
		aqq = a.data[q2*n+q2]
		apq = a.data[p*n+q2]
		theta = (aqq - app) / (2 * apq)
		t = math.Copysign(1.0/(math.Abs(theta)+math.Hypot(theta, 1)), theta)
		c = 1.0 / math.Sqrt(t*t+1)
		s = t * c

		// J.4: apply rotation to A, keeping both triangles in sync
		for i = 0; i < n; i++ {
			if i == p || i == q2 {
				continue
			}
			aip = a.data[i*n+p]
			aiq = a.data[i*n+q2]
			newIP = c*aip - s*aiq
			newIQ = s*aip + c*aiq
			a.data[i*n+p], a.data[p*n+i] = newIP, newIP
			a.data[i*n+q2], a.data[q2*n+i] = newIQ, newIQ
		}
		a.data[p*n+p] = c*c*app - 2*c*s*apq + s*s*aqq
		a.data[q2*n+q2] = s*s*app + 2*c*s*apq + c*c*aqq
		a.data[p*n+q2], a.data[q2*n+p] = 0, 0

		// J.5: accumulate rotation into Q
		for i = 0; i < n; i++ {
			qip = q.data[i*n+p]
			qiq = q.data[i*n+q2]
			q.data[i*n+p] = c*qip - s*qiq
			q.data[i*n+q2] = s*qip + c*qiq
		}
	}

	// Final convergence check: count what is still above tolerance.
	unconverged := 0
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			if off = math.Abs(a.data[i*n+j]); off > 0 && off >= tol {
				unconverged++
			}
		}
	}
	if unconverged > 0 {
		return nil, nil, matrixErrorf(opEigen, &ConvergenceError{Unconverged: unconverged, Rotations: iter})
	}

	eigs := make([]float64, n)
	for i = 0; i < n; i++ {
		eigs[i] = a.data[i*n+i]
	}

	return eigs, q, nil
}
