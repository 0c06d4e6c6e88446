// SPDX-License-Identifier: MIT

package eigen_test

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/katalvlaran/varbox/basis"
	"github.com/katalvlaran/varbox/eigen"
	"github.com/katalvlaran/varbox/hamiltonian"
	"github.com/katalvlaran/varbox/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// solvers lists every backend under test.
var solvers = []eigen.Solver{eigen.LAPACK{}, eigen.Jacobi{}}

// rawMatrix is a minimal Matrix that accepts any value, NaN included.
type rawMatrix struct {
	n    int
	data []float64
}

func (m *rawMatrix) Rows() int { return m.n }
func (m *rawMatrix) Cols() int { return m.n }
func (m *rawMatrix) At(i, j int) (float64, error) {
	if i < 0 || j < 0 || i >= m.n || j >= m.n {
		return 0, matrix.ErrOutOfRange
	}
	return m.data[i*m.n+j], nil
}
func (m *rawMatrix) Set(i, j int, v float64) error {
	if i < 0 || j < 0 || i >= m.n || j >= m.n {
		return matrix.ErrOutOfRange
	}
	m.data[i*m.n+j] = v
	return nil
}
func (m *rawMatrix) Clone() matrix.Matrix {
	return &rawMatrix{n: m.n, data: append([]float64(nil), m.data...)}
}

func mustHamiltonian(t testing.TB, p basis.Params) *matrix.Dense {
	t.Helper()
	set, err := hamiltonian.Build(p)
	require.NoError(t, err, p.String())

	return set.Hamiltonian
}

func TestNew(t *testing.T) {
	for name, want := range map[string]string{
		"":         eigen.NameLAPACK,
		"lapack":   eigen.NameLAPACK,
		" LAPACK ": eigen.NameLAPACK,
		"jacobi":   eigen.NameJacobi,
		"Jacobi":   eigen.NameJacobi,
	} {
		s, err := eigen.New(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, s.Name())
	}

	_, err := eigen.New("qr")
	require.ErrorIs(t, err, eigen.ErrUnknownSolver)
	assert.Equal(t, []string{"lapack", "jacobi"}, eigen.Names())
}

func TestDiagonalize_FreeParticleGroundState(t *testing.T) {
	H := mustHamiltonian(t, basis.Params{N: 5, Length: 1, Mass: 1, Slope: 0})
	for _, s := range solvers {
		spec, err := s.Diagonalize(H)
		require.NoError(t, err, s.Name())

		e0, v0 := spec.GroundState()
		assert.InDelta(t, 4.9348, e0, 1e-4, s.Name())
		assert.InDelta(t, 1.0, v0[0], 1e-12, s.Name())
		for i := 1; i < len(v0); i++ {
			assert.InDelta(t, 0.0, v0[i], 1e-12, s.Name())
		}
	}
}

func TestDiagonalize_FreeParticleMatchesExact(t *testing.T) {
	p := basis.Params{N: 12, Length: 2, Mass: 0.5, Slope: 0}
	H := mustHamiltonian(t, p)
	for _, s := range solvers {
		spec, err := s.Diagonalize(H)
		require.NoError(t, err, s.Name())
		for k, e := range spec.Values {
			want := basis.ExactEnergy(k+1, p.Length, p.Mass)
			assert.InDelta(t, want, e, 1e-9*want, "%s level %d", s.Name(), k)
		}
	}
}

func TestDiagonalize_TwoByTwoClosedForm(t *testing.T) {
	H := mustHamiltonian(t, basis.Params{N: 2, Length: 1, Mass: 1, Slope: 1})
	h11, _ := H.At(0, 0)
	h22, _ := H.At(1, 1)
	h12, _ := H.At(1, 0)
	mean := (h11 + h22) / 2
	split := math.Hypot((h11-h22)/2, h12)

	for _, s := range solvers {
		spec, err := s.Diagonalize(H)
		require.NoError(t, err, s.Name())
		require.Equal(t, 2, spec.Len())
		assert.InDelta(t, mean-split, spec.Values[0], 1e-12, s.Name())
		assert.InDelta(t, mean+split, spec.Values[1], 1e-12, s.Name())
		// (H12, λ−H11) solves (H − λ)v = 0 for either root
		for k, lambda := range []float64{mean - split, mean + split} {
			want := signFixed([]float64{h12, lambda - h11})
			got, err := spec.Vector(k)
			require.NoError(t, err)
			assert.InDeltaSlice(t, want, got, 1e-12, "%s vector %d", s.Name(), k)
		}
		res, err := spec.MaxResidual(H)
		require.NoError(t, err)
		assert.LessOrEqual(t, res, 1e-12, s.Name())
		assert.LessOrEqual(t, spec.Orthonormality(), 1e-12, s.Name())
	}
}

// signFixed normalizes v and makes its largest-magnitude component positive.
func signFixed(v []float64) []float64 {
	norm := math.Hypot(v[0], v[1])
	pivot := 0
	for i := range v {
		if math.Abs(v[i]) > math.Abs(v[pivot]) {
			pivot = i
		}
	}
	if v[pivot] < 0 {
		norm = -norm
	}
	out := make([]float64, len(v))
	for i := range v {
		out[i] = v[i] / norm
	}

	return out
}

func TestDiagonalize_DegenerateSubspace(t *testing.T) {
	pair, err := matrix.NewDenseFrom(4, 4, []float64{
		2, 1, 0, 0,
		1, 2, 0, 0,
		0, 0, 3, 0,
		0, 0, 0, 1,
	})
	require.NoError(t, err)
	identity, err := matrix.NewIdentity(5)
	require.NoError(t, err)

	tests := []struct {
		name   string
		h      *matrix.Dense
		values []float64
	}{
		{"double pairs", pair, []float64{1, 1, 3, 3}},
		{"identity", identity, []float64{1, 1, 1, 1, 1}},
	}
	for _, tt := range tests {
		for _, s := range solvers {
			name := tt.name + "/" + s.Name()
			spec, err := s.Diagonalize(tt.h)
			require.NoError(t, err, name)
			assert.InDeltaSlice(t, tt.values, spec.Values, 1e-12, name)
			for k := 1; k < spec.Len(); k++ {
				require.LessOrEqual(t, spec.Values[k-1], spec.Values[k], name)
			}
			res, err := spec.MaxResidual(tt.h)
			require.NoError(t, err, name)
			assert.LessOrEqual(t, res, 1e-8, name)
			assert.LessOrEqual(t, spec.Orthonormality(), 1e-8, name)
		}
	}
}

func TestDiagonalize_Properties(t *testing.T) {
	cases := []basis.Params{
		{N: 1, Length: 1, Mass: 1, Slope: 3},
		{N: 8, Length: 1, Mass: 1, Slope: 1},
		{N: 15, Length: 3, Mass: 2, Slope: -20},
		{N: 30, Length: 1, Mass: 1, Slope: 100},
	}
	for _, p := range cases {
		H := mustHamiltonian(t, p)
		norm := math.Max(1, matrix.FrobeniusNorm(H))
		for _, s := range solvers {
			name := fmt.Sprintf("%s/%s", s.Name(), p)
			spec, err := s.Diagonalize(H)
			require.NoError(t, err, name)
			require.Equal(t, p.N, spec.Len(), name)

			for k := 1; k < spec.Len(); k++ {
				require.LessOrEqual(t, spec.Values[k-1], spec.Values[k], name)
			}
			res, err := spec.MaxResidual(H)
			require.NoError(t, err, name)
			assert.LessOrEqual(t, res, 1e-8*norm, name)
			assert.LessOrEqual(t, spec.Orthonormality(), 1e-8, name)

			for k := 0; k < spec.Len(); k++ {
				v, err := spec.Vector(k)
				require.NoError(t, err)
				pivot := 0
				for i := range v {
					if math.Abs(v[i]) > math.Abs(v[pivot]) {
						pivot = i
					}
				}
				assert.Positive(t, v[pivot], "%s vector %d", name, k)
			}
		}
	}
}

func TestDiagonalize_BackendsAgree(t *testing.T) {
	H := mustHamiltonian(t, basis.Params{N: 20, Length: 1, Mass: 1, Slope: 25})
	a, err := eigen.LAPACK{}.Diagonalize(H)
	require.NoError(t, err)
	b, err := eigen.Jacobi{}.Diagonalize(H)
	require.NoError(t, err)

	assert.InDeltaSlice(t, a.Values, b.Values, 1e-9*math.Abs(a.Values[a.Len()-1]))
	// spectrum is non-degenerate, so eigenvectors agree up to the fixed sign
	ok, err := matrix.AllClose(a.Vectors, b.Vectors, 0, 1e-7)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestDiagonalize_ReadsLowerTriangleOnly(t *testing.T) {
	H := mustHamiltonian(t, basis.Params{N: 6, Length: 1, Mass: 1, Slope: 5})
	want, err := eigen.LAPACK{}.Diagonalize(H)
	require.NoError(t, err)

	skewed := H.Clone().(*matrix.Dense)
	for i := 0; i < 6; i++ {
		for j := i + 1; j < 6; j++ {
			require.NoError(t, skewed.Set(i, j, 1e6))
		}
	}
	for _, s := range solvers {
		got, err := s.Diagonalize(skewed)
		require.NoError(t, err, s.Name())
		assert.InDeltaSlice(t, want.Values, got.Values, 1e-9, s.Name())
	}
}

func TestDiagonalize_InputUntouched(t *testing.T) {
	H := mustHamiltonian(t, basis.Params{N: 4, Length: 1, Mass: 1, Slope: 2})
	before := append([]float64(nil), H.RawData()...)
	for _, s := range solvers {
		_, err := s.Diagonalize(H)
		require.NoError(t, err)
		assert.Equal(t, before, H.RawData(), s.Name())
	}
}

func TestDiagonalize_ShapeErrors(t *testing.T) {
	rect, err := matrix.NewDense(2, 3)
	require.NoError(t, err)
	for _, s := range solvers {
		_, err := s.Diagonalize(rect)
		require.ErrorIs(t, err, matrix.ErrDimensionMismatch, s.Name())
		assert.False(t, errors.Is(err, eigen.ErrDiagonalizationFailed))

		_, err = s.Diagonalize(nil)
		require.ErrorIs(t, err, matrix.ErrNilMatrix, s.Name())
	}
}

func TestDiagonalize_NaNInput(t *testing.T) {
	m := &rawMatrix{n: 3, data: []float64{
		1, 0, 0,
		0, 2, 0,
		0, math.NaN(), 3,
	}}
	for _, s := range solvers {
		_, err := s.Diagonalize(m)
		require.ErrorIs(t, err, eigen.ErrDiagonalizationFailed, s.Name())
		require.ErrorIs(t, err, matrix.ErrNaNInf, s.Name())

		var de *eigen.DiagonalizationError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, eigen.CodeIllegalMatrix, de.Code)
		assert.Equal(t, s.Name(), de.Solver)
		assert.Contains(t, err.Error(), "code -4")
	}

	// the strict upper triangle is never read
	m.data[2*3+1], m.data[1*3+2] = 0, math.Inf(1)
	for _, s := range solvers {
		spec, err := s.Diagonalize(m)
		require.NoError(t, err, s.Name())
		assert.InDeltaSlice(t, []float64{1, 2, 3}, spec.Values, 1e-12)
	}
}

func TestJacobi_RotationBudgetExhausted(t *testing.T) {
	H := mustHamiltonian(t, basis.Params{N: 5, Length: 1, Mass: 1, Slope: 1})
	_, err := eigen.JacobiWithLimits_TestOnly(0, 1).Diagonalize(H)
	require.ErrorIs(t, err, eigen.ErrDiagonalizationFailed)
	require.ErrorIs(t, err, matrix.ErrMatrixEigenFailed)

	var de *eigen.DiagonalizationError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, eigen.NameJacobi, de.Solver)
	assert.Positive(t, de.Code)
}

func TestSpectrum_VectorOutOfRange(t *testing.T) {
	H := mustHamiltonian(t, basis.Params{N: 3, Length: 1, Mass: 1, Slope: 1})
	spec, err := eigen.LAPACK{}.Diagonalize(H)
	require.NoError(t, err)

	_, err = spec.Vector(3)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
	_, err = spec.Vector(-1)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
	_, err = spec.Value(3)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
	e, err := spec.Value(0)
	require.NoError(t, err)
	assert.Equal(t, spec.Values[0], e)
	_, err = spec.Residual(H, 5)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
}

func TestDiagonalizationError_Message(t *testing.T) {
	err := &eigen.DiagonalizationError{Solver: "lapack", Code: 3}
	assert.Equal(t, "eigen: diagonalization failed (lapack, code 3)", err.Error())
	assert.True(t, errors.Is(err, eigen.ErrDiagonalizationFailed))
	assert.Nil(t, errors.Unwrap(err))
}
