// Package varbox approximates the bound states of a particle in a
// one-dimensional box of length L with an added linear potential V(x) = b·x.
//
// The Hamiltonian is expanded in the first N box eigenfunctions
//
//	ψ_n(x) = sqrt(2/L)·sin(nπx/L),  n = 1..N,
//
// where both the kinetic and the potential matrix elements have closed
// forms, and is then diagonalized as a dense real symmetric matrix.
// The lowest eigenvalue is a variational upper bound on the true ground
// state energy and decreases monotonically as N grows. Units take ħ = 1.
//
// Layout:
//
//	matrix/      dense row-major storage, validators, kernels, Jacobi eigen
//	basis/       analytic T and V matrices, box eigenfunctions
//	hamiltonian/ H = T + V
//	eigen/       Solver backends (gonum LAPACK, Jacobi) and Spectrum
//	calc/        the timed, logged pipeline
//	config/      viper/TOML settings
//	report/      pterm tables and gonum/plot density charts
//	logger/      process-wide zap logger for the CLI
//	cmd/varbox/  the cobra command line
//
// Quick example:
//
//	res, err := calc.Run(basis.Params{N: 20, Length: 1, Mass: 1, Slope: 5}, eigen.LAPACK{})
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Printf("E0 = %.6f\n", res.GroundEnergy())
//
// For N=2 the 2×2 problem has the closed form
// λ = (H11+H22)/2 ± sqrt(((H11−H22)/2)² + H12²), which the tests use as an
// independent check of both backends.
package varbox
