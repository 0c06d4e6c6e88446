// SPDX-License-Identifier: MIT

package eigen

// JacobiWithLimits_TestOnly builds a Jacobi backend with an explicit
// relative tolerance and rotation budget; zero keeps the default.
func JacobiWithLimits_TestOnly(relTol float64, maxRotations int) Jacobi {
	return Jacobi{relTol: relTol, maxRotations: maxRotations}
}
