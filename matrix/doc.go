// SPDX-License-Identifier: MIT

// Package matrix provides the dense linear-algebra layer used by the
// variational box solver.
//
// The matrix package provides:
//
//   - Matrix, a bounds-checked interface over 2-D float64 arrays, and Dense,
//     its row-major implementation with an O(1) index formula i*cols + j.
//   - Validators (nil, shape, square, symmetry) that every kernel calls first.
//   - Kernels: Add, Sub, Mul, Transpose, Scale, MatVec, norms and AllClose.
//   - Eigen, a deterministic Jacobi eigen-decomposition for symmetric input.
//
// Kernels never mutate their operands; they allocate a fresh *Dense result.
// All failures are reported through the sentinels in errors.go.
package matrix
