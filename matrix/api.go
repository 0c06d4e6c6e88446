// SPDX-License-Identifier: MIT
// Package matrix: public API facades.
//
// Purpose:
//   - Provide thin entry points for common constructions.
//   - Avoid logic duplication: each facade delegates to the canonical kernel.

package matrix

// NewIdentity returns I_n (n×n identity).
// Complexity: O(n^2) zeroing (constructor) + O(n) diagonal writes.
func NewIdentity(n int) (*Dense, error) {
	I, err := NewDense(n, n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		I.data[i*n+i] = 1.0
	}

	return I, nil
}

// NewDiagonal returns a square matrix with diag on its main diagonal.
// An empty diag is rejected with ErrInvalidDimensions.
func NewDiagonal(diag []float64) (*Dense, error) {
	n := len(diag)
	D, err := NewDense(n, n)
	if err != nil {
		return nil, err
	}
	for i, v := range diag {
		if err = D.Set(i, i, v); err != nil {
			return nil, err
		}
	}

	return D, nil
}

// Diagonal returns a copy of the main diagonal of a square matrix.
func Diagonal(m Matrix) ([]float64, error) {
	if err := ValidateSquare(m); err != nil {
		return nil, matrixErrorf("Diagonal", err)
	}
	n := m.Rows()
	out := make([]float64, n)
	var err error
	for i := 0; i < n; i++ {
		if out[i], err = m.At(i, i); err != nil {
			return nil, matrixErrorf("Diagonal", err)
		}
	}

	return out, nil
}

// Symmetrize returns (m + mᵀ)/2. Deterministic composition: Transpose → Add → Scale.
// Useful to repair rounding drift before handing a matrix to Eigen.
func Symmetrize(m Matrix) (*Dense, error) {
	mt, err := Transpose(m)
	if err != nil {
		return nil, matrixErrorf("Symmetrize", err)
	}
	sum, err := Add(m, mt)
	if err != nil {
		return nil, matrixErrorf("Symmetrize", err)
	}

	return Scale(sum, 0.5)
}
