// SPDX-License-Identifier: MIT

// Package calc runs one variational calculation end to end:
// kinetic → potential → assemble → diagonalize.
//
// Each stage is timed and logged; a failure stops the pipeline and is
// returned wrapped with the stage name, keeping its sentinel for errors.Is.
package calc

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/katalvlaran/varbox/basis"
	"github.com/katalvlaran/varbox/eigen"
	"github.com/katalvlaran/varbox/hamiltonian"
	"github.com/katalvlaran/varbox/matrix"
)

// Stage names, in execution order.
const (
	StageKinetic     = "kinetic"
	StagePotential   = "potential"
	StageAssemble    = "assemble"
	StageDiagonalize = "diagonalize"
)

// Stages lists the pipeline stages in execution order.
func Stages() []string {
	return []string{StageKinetic, StagePotential, StageAssemble, StageDiagonalize}
}

// Timing is the wall-clock duration of one stage.
type Timing struct {
	Stage    string
	Duration time.Duration
}

// Timings records every completed stage in order.
type Timings []Timing

// Total sums all stage durations.
func (ts Timings) Total() time.Duration {
	var total time.Duration
	for _, t := range ts {
		total += t.Duration
	}

	return total
}

// Of returns the duration recorded for stage, or false if it never ran.
func (ts Timings) Of(stage string) (time.Duration, bool) {
	for _, t := range ts {
		if t.Stage == stage {
			return t.Duration, true
		}
	}

	return 0, false
}

// Result bundles everything a run produced.
type Result struct {
	Params      basis.Params
	Solver      string
	Kinetic     *matrix.Dense
	Potential   *matrix.Dense
	Hamiltonian *matrix.Dense
	Spectrum    *eigen.Spectrum
	Timings     Timings
}

// GroundEnergy returns the lowest eigenvalue.
func (r *Result) GroundEnergy() float64 { return r.Spectrum.Values[0] }

// Option configures Run.
type Option func(*runner)

// WithLogger routes stage logging to l. A nil logger is ignored.
func WithLogger(l *zap.Logger) Option {
	return func(r *runner) {
		if l != nil {
			r.log = l
		}
	}
}

// WithClock overrides the time source used for stage timings.
func WithClock(now func() time.Time) Option {
	return func(r *runner) {
		if now != nil {
			r.now = now
		}
	}
}

type runner struct {
	log *zap.Logger
	now func() time.Time
	res *Result
}

// stage times fn, logs its outcome and wraps its error with the stage name.
func (r *runner) stage(name string, fn func() error) error {
	start := r.now()
	err := fn()
	elapsed := r.now().Sub(start)
	if err != nil {
		r.log.Debug("stage failed", zap.String("stage", name), zap.Error(err))
		return fmt.Errorf("%s: %w", name, err)
	}
	r.res.Timings = append(r.res.Timings, Timing{Stage: name, Duration: elapsed})
	r.log.Debug("stage done", zap.String("stage", name), zap.Duration("elapsed", elapsed))

	return nil
}

// Run validates p, builds T and V, assembles H and diagonalizes it with
// solver (nil selects eigen.LAPACK).
//
// Errors:
//   - basis.ErrInvalidParameter for bad parameters (stage "kinetic" or
//     "potential", or "params" when caught up front).
//   - matrix.ErrDimensionMismatch from assembly.
//   - eigen.ErrDiagonalizationFailed from the solver.
func Run(p basis.Params, solver eigen.Solver, opts ...Option) (*Result, error) {
	if solver == nil {
		solver = eigen.LAPACK{}
	}
	r := &runner{
		log: zap.NewNop(),
		now: time.Now,
		res: &Result{Params: p, Solver: solver.Name()},
	}
	for _, opt := range opts {
		opt(r)
	}
	log := r.log.With(zap.String("solver", solver.Name()), zap.Int("basis", p.N))

	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("params: %w", err)
	}

	res := r.res
	steps := []struct {
		name string
		fn   func() error
	}{
		{StageKinetic, func() (err error) {
			res.Kinetic, err = p.Kinetic()
			return err
		}},
		{StagePotential, func() (err error) {
			res.Potential, err = p.Potential()
			return err
		}},
		{StageAssemble, func() (err error) {
			res.Hamiltonian, err = hamiltonian.Assemble(res.Kinetic, res.Potential)
			return err
		}},
		{StageDiagonalize, func() (err error) {
			res.Spectrum, err = solver.Diagonalize(res.Hamiltonian)
			return err
		}},
	}
	r.log = log
	for _, s := range steps {
		if err := r.stage(s.name, s.fn); err != nil {
			log.Warn("calculation aborted", zap.String("stage", s.name), zap.Error(err))
			return nil, err
		}
	}

	log.Info("ground state",
		zap.Float64("energy", res.GroundEnergy()),
		zap.Float64("length", p.Length),
		zap.Float64("mass", p.Mass),
		zap.Float64("slope", p.Slope),
		zap.Duration("total", res.Timings.Total()),
	)

	return res, nil
}
