// SPDX-License-Identifier: MIT
// Package matrix_test contains test helpers
//
// Purpose:
//   • Provide small, deterministic test fixtures and utilities for kernels.
//   • Keep all data finite and well-formed to avoid numeric-policy interference.

package matrix_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/katalvlaran/varbox/matrix"
	"github.com/stretchr/testify/require"
)

// hide wraps any Matrix to hide its concrete type from type assertions,
// forcing kernels onto their non-*Dense path.
type hide struct{ matrix.Matrix }

// MustDense allocates an r×c *Dense or fails the test.
func MustDense(t *testing.T, r, c int) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDense(r, c)
	require.NoError(t, err, "NewDense(%d,%d)", r, c)

	return m
}

// NewFilledDense builds an r×c *Dense from row-major vals.
func NewFilledDense(t *testing.T, r, c int, vals []float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDenseFrom(r, c, vals)
	require.NoError(t, err)

	return m
}

// MustSet writes m[i,j] = v or fails the test.
func MustSet(t *testing.T, m matrix.Matrix, i, j int, v float64) {
	t.Helper()
	require.NoError(t, m.Set(i, j, v), "Set(%d,%d)", i, j)
}

// MustAt reads m[i,j] or fails the test.
func MustAt(t *testing.T, m matrix.Matrix, i, j int) float64 {
	t.Helper()
	v, err := m.At(i, j)
	require.NoError(t, err, "At(%d,%d)", i, j)

	return v
}

// RandSymmetric returns an n×n symmetric matrix with entries in [-1,1).
func RandSymmetric(t *testing.T, n int, seed int64) *matrix.Dense {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	m := MustDense(t, n, n)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			v := 2*rng.Float64() - 1
			MustSet(t, m, i, j, v)
			MustSet(t, m, j, i, v)
		}
	}

	return m
}

// propOrthonormal checks QᵀQ ≈ I within tol.
func propOrthonormal(t *testing.T, Q matrix.Matrix, tol float64) {
	t.Helper()
	n := Q.Cols()
	for a := 0; a < n; a++ {
		for b := a; b < n; b++ {
			dot := 0.0
			for i := 0; i < Q.Rows(); i++ {
				dot += MustAt(t, Q, i, a) * MustAt(t, Q, i, b)
			}
			want := 0.0
			if a == b {
				want = 1.0
			}
			require.InDelta(t, want, dot, tol, "q%d·q%d", a, b)
		}
	}
}

// propEigenEquation checks ‖A·q_k − λ_k·q_k‖ ≤ tol·max(1,‖A‖_F) for every column k.
func propEigenEquation(t *testing.T, A, Q matrix.Matrix, vals []float64, tol float64) {
	t.Helper()
	scale := math.Max(1, matrix.FrobeniusNorm(A))
	for k := range vals {
		col := make([]float64, Q.Rows())
		for i := range col {
			col[i] = MustAt(t, Q, i, k)
		}
		av, err := matrix.MatVec(A, col)
		require.NoError(t, err)
		for i := range av {
			av[i] -= vals[k] * col[i]
		}
		require.LessOrEqual(t, matrix.Norm2(av), tol*scale, "residual for eigenpair %d", k)
	}
}
