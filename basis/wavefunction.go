// SPDX-License-Identifier: MIT

package basis

import "math"

// Wavefunction evaluates ψ_n(x) = sqrt(2/L)·sin(nπx/L). It is zero outside [0, L].
func Wavefunction(n int, length, x float64) float64 {
	if x < 0 || x > length {
		return 0
	}

	return math.Sqrt(2/length) * math.Sin(float64(n)*math.Pi*x/length)
}

// Superpose evaluates Σ_k coeffs[k]·ψ_{k+1}(x), i.e. the position-space
// wavefunction of an eigenvector expressed in the box basis.
func Superpose(coeffs []float64, length, x float64) float64 {
	sum := 0.0
	for k, c := range coeffs {
		if c == 0 {
			continue
		}
		sum += c * Wavefunction(k+1, length, x)
	}

	return sum
}
