// SPDX-License-Identifier: MIT

package report

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/katalvlaran/varbox/basis"
	"github.com/katalvlaran/varbox/calc"
)

// Plot geometry.
const (
	DefaultSamples = 400
	plotWidth      = 8 * vg.Inch
	plotHeight     = 6 * vg.Inch
)

// ErrNoSpectrum is returned when a result carries nothing to plot.
var ErrNoSpectrum = errors.New("report: result has no spectrum")

// Density samples |ψ_k(x)|² on [0, L], where ψ_k is the k-th eigenvector
// expanded in the box basis.
func Density(res *calc.Result, k, samples int) (plotter.XYs, error) {
	if res == nil || res.Spectrum == nil {
		return nil, ErrNoSpectrum
	}
	coeffs, err := res.Spectrum.Vector(k)
	if err != nil {
		return nil, fmt.Errorf("Density: %w", err)
	}
	if samples < 2 {
		samples = 2
	}
	L := res.Params.Length
	pts := make(plotter.XYs, samples)
	for i := range pts {
		x := L * float64(i) / float64(samples-1)
		psi := basis.Superpose(coeffs, L, x)
		pts[i].X, pts[i].Y = x, psi*psi
	}

	return pts, nil
}

// PlotDensities draws |ψ_k(x)|² for the lowest states levels, each shifted
// up to its energy E_k, over the potential line b·x. The output format
// follows the extension of path (.png, .svg, .pdf, ...).
func PlotDensities(res *calc.Result, states int, path string) error {
	if res == nil || res.Spectrum == nil {
		return ErrNoSpectrum
	}
	n := res.Spectrum.Len()
	if states <= 0 || states > n {
		states = n
	}
	values := res.Spectrum.Values
	L, b := res.Params.Length, res.Params.Slope

	// densities peak near 2/L; scale them to most of one level spacing
	spacing := math.Abs(values[0])
	if states > 1 {
		spacing = (values[states-1] - values[0]) / float64(states-1)
	}
	if spacing == 0 {
		spacing = 1
	}
	scale := 0.8 * spacing * L / 2

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Probability densities (N=%d, L=%g, m=%g, b=%g)",
		res.Params.N, L, res.Params.Mass, b)
	p.X.Label.Text = "x"
	p.Y.Label.Text = "E + |ψ(x)|²"
	p.Add(plotter.NewGrid())

	potential, err := plotter.NewLine(plotter.XYs{{X: 0, Y: 0}, {X: L, Y: b * L}})
	if err != nil {
		return fmt.Errorf("PlotDensities: %w", err)
	}
	potential.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
	p.Add(potential)
	p.Legend.Add("V(x) = b·x", potential)

	for k := 0; k < states; k++ {
		pts, err := Density(res, k, DefaultSamples)
		if err != nil {
			return fmt.Errorf("PlotDensities: %w", err)
		}
		for i := range pts {
			pts[i].Y = values[k] + scale*pts[i].Y
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("PlotDensities: %w", err)
		}
		line.Color = plotutil.Color(k)
		p.Add(line)
		p.Legend.Add(fmt.Sprintf("E%d = %.4f", k, values[k]), line)
	}
	p.Legend.Top = true

	if err := p.Save(plotWidth, plotHeight, path); err != nil {
		return fmt.Errorf("PlotDensities: %w", err)
	}

	return nil
}
