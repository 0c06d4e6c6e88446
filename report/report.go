// SPDX-License-Identifier: MIT

// Package report renders calculation results for humans: pterm tables on
// a terminal and gonum/plot charts of the probability densities.
package report

import (
	"fmt"
	"io"

	"github.com/pterm/pterm"

	"github.com/katalvlaran/varbox/calc"
	"github.com/katalvlaran/varbox/matrix"
)

// Reporter writes formatted sections to an io.Writer.
type Reporter struct {
	w    io.Writer
	prec int
}

// New returns a Reporter writing to w with DefaultPrecision.
func New(w io.Writer) *Reporter {
	return &Reporter{w: w, prec: DefaultPrecision}
}

// WithPrecision sets the number of decimals and returns r.
func (r *Reporter) WithPrecision(prec int) *Reporter {
	if prec >= 0 {
		r.prec = prec
	}

	return r
}

// Section prints a section title.
func (r *Reporter) Section(title string) error {
	_, err := fmt.Fprint(r.w, pterm.DefaultSection.Sprint(title))

	return err
}

func (r *Reporter) table(rows [][]string) error {
	out, err := pterm.DefaultTable.WithHasHeader().WithData(pterm.TableData(rows)).Srender()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(r.w, out)

	return err
}

// Matrix prints m under title.
func (r *Reporter) Matrix(title string, m matrix.Matrix) error {
	rows, err := MatrixRows(m, r.prec)
	if err != nil {
		return err
	}
	if err = r.Section(title); err != nil {
		return err
	}

	return r.table(rows)
}

// Spectrum prints the lowest states levels next to the b=0 energies.
func (r *Reporter) Spectrum(res *calc.Result, states int) error {
	if err := r.Section("Spectrum"); err != nil {
		return err
	}

	return r.table(SpectrumRows(res, states, r.prec))
}

// GroundState prints the ground state energy line.
func (r *Reporter) GroundState(res *calc.Result) error {
	_, err := fmt.Fprintf(r.w, "%s %s\n",
		pterm.Bold.Sprint("Ground state energy:"),
		pterm.LightGreen(formatFloat(res.GroundEnergy(), r.prec)))

	return err
}

// Timings prints the stage timing table.
func (r *Reporter) Timings(ts calc.Timings) error {
	if err := r.Section("Timings"); err != nil {
		return err
	}

	return r.table(TimingRows(ts))
}

// Options selects the optional parts of Report.
type Options struct {
	PrintArrays bool
	States      int
	Timings     bool
}

// Report prints a full run: the run parameters, optionally T, V and H,
// the spectrum, the ground state line and optionally the timings.
func (r *Reporter) Report(res *calc.Result, opts Options) error {
	if _, err := fmt.Fprintf(r.w, "%s %s (solver %s)\n",
		pterm.Bold.Sprint("Parameters:"), res.Params, res.Solver); err != nil {
		return err
	}
	if opts.PrintArrays {
		for _, m := range []struct {
			title string
			m     *matrix.Dense
		}{
			{"Kinetic energy T", res.Kinetic},
			{"Potential energy V", res.Potential},
			{"Hamiltonian H", res.Hamiltonian},
		} {
			if err := r.Matrix(m.title, m.m); err != nil {
				return err
			}
		}
	}
	if opts.States > 0 {
		if err := r.Spectrum(res, opts.States); err != nil {
			return err
		}
	}
	if err := r.GroundState(res); err != nil {
		return err
	}
	if opts.Timings {
		return r.Timings(res.Timings)
	}

	return nil
}
