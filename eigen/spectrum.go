// SPDX-License-Identifier: MIT

package eigen

import (
	"fmt"
	"math"

	"github.com/katalvlaran/varbox/matrix"
)

// Spectrum is the terminal output of a calculation.
// Values are non-decreasing; column k of Vectors is the unit eigenvector
// for Values[k]. Each eigenvector's largest-magnitude component is positive.
type Spectrum struct {
	Values  []float64
	Vectors *matrix.Dense
}

// newSpectrum reorders raw solver output into ascending order, fixes the
// sign convention and rejects non-finite results.
func newSpectrum(solver string, values []float64, vectors []float64, n int) (*Spectrum, error) {
	bad := 0
	for _, v := range values {
		if !finite(v) {
			bad++
		}
	}
	for _, v := range vectors {
		if !finite(v) {
			bad++
		}
	}
	if bad > 0 {
		return nil, &DiagonalizationError{Solver: solver, Code: bad, Err: matrix.ErrNaNInf}
	}

	perm := order(values)
	sorted := make([]float64, n)
	data := make([]float64, n*n)
	for k, src := range perm {
		sorted[k] = values[src]

		// largest |component| decides the sign; first index wins ties
		pivot := 0
		for i := 1; i < n; i++ {
			if math.Abs(vectors[i*n+src]) > math.Abs(vectors[pivot*n+src]) {
				pivot = i
			}
		}
		sign := 1.0
		if vectors[pivot*n+src] < 0 {
			sign = -1.0
		}
		for i := 0; i < n; i++ {
			data[i*n+k] = sign * vectors[i*n+src]
		}
	}
	V, err := matrix.NewDenseFrom(n, n, data)
	if err != nil {
		return nil, err
	}

	return &Spectrum{Values: sorted, Vectors: V}, nil
}

// Len returns the number of eigenpairs.
func (s *Spectrum) Len() int { return len(s.Values) }

// Value returns the k-th eigenvalue.
func (s *Spectrum) Value(k int) (float64, error) {
	if k < 0 || k >= s.Len() {
		return 0, fmt.Errorf("Spectrum.Value(%d): %w", k, matrix.ErrOutOfRange)
	}

	return s.Values[k], nil
}

// Vector returns a copy of the k-th eigenvector.
func (s *Spectrum) Vector(k int) ([]float64, error) {
	if k < 0 || k >= s.Len() {
		return nil, fmt.Errorf("Spectrum.Vector(%d): %w", k, matrix.ErrOutOfRange)
	}

	return s.Vectors.Col(k)
}

// GroundState returns the lowest eigenvalue and its eigenvector.
func (s *Spectrum) GroundState() (float64, []float64) {
	v, _ := s.Vectors.Col(0) // a Spectrum always holds at least one pair

	return s.Values[0], v
}

// Residual returns ‖H·v_k − λ_k·v_k‖₂.
func (s *Spectrum) Residual(h matrix.Matrix, k int) (float64, error) {
	v, err := s.Vector(k)
	if err != nil {
		return 0, err
	}
	hv, err := matrix.MatVec(h, v)
	if err != nil {
		return 0, fmt.Errorf("Spectrum.Residual: %w", err)
	}
	for i := range hv {
		hv[i] -= s.Values[k] * v[i]
	}

	return matrix.Norm2(hv), nil
}

// MaxResidual returns the largest Residual over all eigenpairs.
func (s *Spectrum) MaxResidual(h matrix.Matrix) (float64, error) {
	worst := 0.0
	for k := 0; k < s.Len(); k++ {
		r, err := s.Residual(h, k)
		if err != nil {
			return 0, err
		}
		worst = math.Max(worst, r)
	}

	return worst, nil
}

// Orthonormality returns max_{i,j} |v_i·v_j − δ_ij|.
func (s *Spectrum) Orthonormality() float64 {
	n := s.Len()
	cols := make([][]float64, n)
	for k := range cols {
		cols[k], _ = s.Vectors.Col(k)
	}
	worst := 0.0
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			d, _ := matrix.Dot(cols[i], cols[j])
			if i == j {
				d -= 1
			}
			worst = math.Max(worst, math.Abs(d))
		}
	}

	return worst
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
